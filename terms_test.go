package excerpt

import (
	"errors"
	"strings"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TERM EXTRACTION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

// compile is the common path: query string in, compiled Query out.
func compile(t *testing.T, query string, cfg *Config) *Query {
	t.Helper()
	q, err := NewWithConfig(query, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig(%q) failed: %v", query, err)
	}
	return q
}

func stopwordConfig(words ...string) *Config {
	cfg := DefaultConfig()
	cfg.Stopwords = make(map[string]struct{})
	for _, w := range words {
		cfg.Stopwords[w] = struct{}{}
	}
	return cfg
}

// TestTerms_StopwordRemoval covers scenario A: stopwords vanish from bare
// queries.
func TestTerms_StopwordRemoval(t *testing.T) {
	q := compile(t, "the quick", stopwordConfig("the"))

	want := []string{"quick"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// TestTerms_FieldValuesKept covers scenario B: a field prefix does not drop
// the value unless the field is ignored.
func TestTerms_FieldValuesKept(t *testing.T) {
	q := compile(t, "color:brown fox", DefaultConfig())

	want := []string{"brown", "fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTerms_IgnoredField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoreFields = map[string]struct{}{"color": {}}
	q := compile(t, "color:brown fox", cfg)

	want := []string{"fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// TestTerms_RequiredAndExcluded covers scenario C: '+' clauses are terms,
// '-' clauses are not, operator words never leak into the term list.
func TestTerms_RequiredAndExcluded(t *testing.T) {
	q := compile(t, "+jumped and +ran -quickly", DefaultConfig())

	want := []string{"jumped", "ran"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// TestTerms_PhraseKeepsStopwords covers scenario D: a quoted phrase keeps
// its interior words, stopwords included.
func TestTerms_PhraseKeepsStopwords(t *testing.T) {
	q := compile(t, `"over the lazy dog"`, stopwordConfig("the"))

	terms := q.Terms()
	if len(terms) != 1 {
		t.Fatalf("got %d terms, want 1", len(terms))
	}
	if !terms[0].Phrase || terms[0].Text != "over the lazy dog" {
		t.Errorf("term = %+v, want phrase 'over the lazy dog'", terms[0])
	}
}

// TestTerms_WildcardDominance covers scenario E: "foo*" absorbs every
// literal it matches.
func TestTerms_WildcardDominance(t *testing.T) {
	q := compile(t, "foo* food bar", DefaultConfig())

	want := []string{"foo*", "bar"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTerms_EdgeStripping(t *testing.T) {
	q := compile(t, "'tis dog-", DefaultConfig())

	want := []string{"tis", "dog"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTerms_URITreatedAsPhrase(t *testing.T) {
	q := compile(t, "user@example.com", DefaultConfig())

	terms := q.Terms()
	if len(terms) != 1 {
		t.Fatalf("got %d terms, want 1", len(terms))
	}
	if !terms[0].Phrase || terms[0].Text != "user example com" {
		t.Errorf("term = %+v, want phrase 'user example com'", terms[0])
	}
}

func TestTerms_URIPhraseDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreatURIsLikePhrases = false
	q := compile(t, "user@example.com", cfg)

	want := []string{"user", "example", "com"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// TestTerms_PhraseCollapsesToWord: a quoted single word is a plain term.
func TestTerms_PhraseCollapsesToWord(t *testing.T) {
	q := compile(t, `"quick"`, DefaultConfig())

	terms := q.Terms()
	if len(terms) != 1 || terms[0].Phrase {
		t.Fatalf("terms = %+v, want single non-phrase term", terms)
	}
	if terms[0].Text != "quick" {
		t.Errorf("term text = %q, want %q", terms[0].Text, "quick")
	}
}

func TestTerms_CaseSensitivePreservesCase(t *testing.T) {
	cfg := stopwordConfig("the")
	cfg.IgnoreCase = false
	q := compile(t, "The QUICK Fox", cfg)

	// "The" is still recognized as a stopword (the comparison lowercases),
	// the surviving terms keep their original case.
	want := []string{"QUICK", "Fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// ─── Stemming ────────────────────────────────────────────────────────────────

func TestTerms_StemmingProducesWildcardPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stemmer = func(w string) string {
		if w == "running" {
			return "run"
		}
		return w
	}
	q := compile(t, "running fox", cfg)

	want := []string{"run*", "fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}

	terms := q.Terms()
	if !terms[0].HasWildcard {
		t.Errorf("stemmed term should carry the wildcard flag: %+v", terms[0])
	}
}

func TestTerms_StemmingDeduplicates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stemmer = func(w string) string {
		return strings.TrimSuffix(strings.TrimSuffix(w, "ning"), "s")
	}
	q := compile(t, "runs running fox", cfg)

	want := []string{"run*", "fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTerms_StemmingInsidePhrase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stemmer = func(w string) string {
		if w == "states" {
			return "state"
		}
		return w
	}
	q := compile(t, `"united states"`, cfg)

	terms := q.Terms()
	if len(terms) != 1 || terms[0].Text != "united state*" {
		t.Errorf("terms = %+v, want phrase 'united state*'", terms)
	}
}

// TestTerms_StemWithNoCommonPrefix: the literal word survives rather than
// collapsing to a match-everything bare wildcard.
func TestTerms_StemWithNoCommonPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stemmer = func(w string) string { return "zzz" }
	q := compile(t, "fox", cfg)

	want := []string{"fox"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestTerms_StemmerViolations(t *testing.T) {
	tests := []struct {
		name    string
		stemmer Stemmer
	}{
		{"empty result", func(string) string { return "" }},
		{"panic", func(string) string { panic("boom") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Stemmer = tt.stemmer
			_, err := NewWithConfig("fox", cfg)
			var serr *StemmerError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want StemmerError", err)
			}
		})
	}
}

func TestTerms_SnowballStemmer(t *testing.T) {
	cfg := DefaultConfig()
	lang := mustNormalize(t, cfg).Lang
	var err error
	cfg.Stemmer, err = Snowball(lang)
	if err != nil {
		t.Fatalf("Snowball(%q) failed: %v", lang, err)
	}
	q := compile(t, "running", cfg)

	want := []string{"run*"}
	if got := q.Keywords(); !stringSlicesEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

func TestSnowball_UnknownLanguage(t *testing.T) {
	if _, err := Snowball("tlh"); err == nil {
		t.Fatal("Snowball(tlh) should fail")
	}
}
