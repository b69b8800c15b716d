// ═══════════════════════════════════════════════════════════════════════════════
// TERM EXTRACTION
// ═══════════════════════════════════════════════════════════════════════════════
// Walks the parsed clause tree and boils it down to the ordered list of
// normalized terms a document will actually be matched against.
//
// THE PIPELINE:
// -------------
//  1. Collect leaves     → '+' and neutral buckets only, ignored fields out
//  2. Collapse spaces    → internal whitespace runs become single spaces
//  3. Case folding       → lowercase iff IgnoreCase
//  4. Classification     → phrase vs single word (URIs may upgrade)
//  5. Tokenization       → word-character runs, edges stripped
//  6. Stopword removal   → non-phrase values only; phrases keep their interior
//  7. Wildcard dedup     → "foo" is dropped when "foo*" is also present
//  8. Stemming           → common prefix of word and stem, plus wildcard
//
// EXAMPLE TRANSFORMATION (stopwords = the, English Snowball stemmer):
// -------------------------------------------------------------------
// Input:  the running fox "over the lazy dog"
// Step 1: [the running fox] [over the lazy dog]
// Step 6: [running fox] [over the lazy dog]        (phrase keeps "the")
// Step 8: [run* fox]    [over the laz* dog]        (lazy → stem lazi → laz*)
// Output: terms = "run*", "fox", "over the laz* dog"
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// StemmerError reports a stemmer that violated its contract (panicked or
// returned an empty string).
type StemmerError struct {
	Word string
	Msg  string
}

func (e *StemmerError) Error() string {
	return fmt.Sprintf("excerpt: stemmer failed on %q: %s", e.Word, e.Msg)
}

// Term is one normalized query term: a single word or a phrase.
//
// INVARIANTS:
// -----------
// Text is NFC UTF-8, lowercased iff the config says so, stripped of
// ignorable edge characters, and a phrase's words are joined by single
// spaces. HasWildcard is true when any word carries the wildcard character.
type Term struct {
	Text        string
	Phrase      bool
	HasWildcard bool
	Order       int

	// Proximity carries a phrase's ~N slop (0 means exact adjacency).
	Proximity int
}

// leaf is a flattened tree leaf tagged with its occurrence order in the
// original query string.
type leaf struct {
	value     string
	phrase    bool
	proximity int
	seq       int
}

// extractor bundles the state term extraction needs. The accumulator is
// explicit: the tree walk returns leaves instead of closing over a shared
// counter.
type extractor struct {
	cfg *Config
	b   *boundaries

	firstSet map[rune]struct{}
	lastSet  map[rune]struct{}

	opRE *regexp.Regexp
}

func newExtractor(cfg *Config, b *boundaries) (*extractor, error) {
	ops := strings.Join([]string{cfg.AndWord, cfg.OrWord, cfg.NotWord, cfg.NearWord}, "|")
	opRE, err := regexp.Compile(`(?i)\A(?:` + ops + `)\z`)
	if err != nil {
		return nil, &InvalidConfigError{Field: "AndWord", Msg: err.Error()}
	}
	return &extractor{
		cfg:      cfg,
		b:        b,
		firstSet: classRunes(cfg.IgnoreFirstChar),
		lastSet:  classRunes(cfg.IgnoreLastChar),
		opRE:     opRE,
	}, nil
}

// extractTerms produces the ordered, deduplicated term list for a parsed
// query tree.
func extractTerms(tree *Tree, cfg *Config, b *boundaries) ([]Term, error) {
	ex, err := newExtractor(cfg, b)
	if err != nil {
		return nil, err
	}

	leaves := collectLeaves(tree, cfg, nil)
	sortLeavesBySeq(leaves)

	// Ordered map: terms slice plus index-by-text, so dedup can replace in
	// place without disturbing first-occurrence order.
	var terms []Term
	index := make(map[string]int)
	put := func(t Term) {
		if i, ok := index[t.Text]; ok {
			t.Order = terms[i].Order
			terms[i] = t
			return
		}
		t.Order = len(terms)
		index[t.Text] = t.Order
		terms = append(terms, t)
	}

	for _, lf := range leaves {
		for _, t := range ex.termsFromLeaf(lf) {
			put(t)
		}
	}

	terms = dropWildcardSubsumed(terms, cfg.Wildcard)

	if cfg.Stemmer != nil {
		var err error
		terms, err = ex.stemTerms(terms)
		if err != nil {
			return nil, err
		}
	}

	for i := range terms {
		terms[i].Order = i
	}
	return terms, nil
}

// collectLeaves walks the '+' and neutral buckets of every node, skipping
// excluded clauses and ignored fields, appending to acc.
func collectLeaves(t *Tree, cfg *Config, acc []leaf) []leaf {
	for _, bucket := range [][]Clause{t.Required, t.Optional} {
		for _, c := range bucket {
			if c.Field != "" {
				if _, drop := cfg.IgnoreFields[c.Field]; drop {
					continue
				}
			}
			if c.Sub != nil {
				acc = collectLeaves(c.Sub, cfg, acc)
				continue
			}
			acc = append(acc, leaf{value: c.Value, phrase: c.Phrase, proximity: c.Proximity, seq: c.seq})
		}
	}
	return acc
}

func sortLeavesBySeq(leaves []leaf) {
	// Insertion sort: bucket lists are already nearly ordered and queries
	// are short.
	for i := 1; i < len(leaves); i++ {
		for j := i; j > 0 && leaves[j-1].seq > leaves[j].seq; j-- {
			leaves[j-1], leaves[j] = leaves[j], leaves[j-1]
		}
	}
}

// termsFromLeaf normalizes one leaf value into zero or more terms.
func (ex *extractor) termsFromLeaf(lf leaf) []Term {
	value := strings.Join(strings.Fields(lf.value), " ")
	if ex.cfg.IgnoreCase {
		value = strings.ToLower(value)
	}
	if value == "" {
		return nil
	}

	isPhrase := lf.phrase || strings.ContainsRune(value, ' ')
	if !isPhrase && ex.cfg.TreatURIsLikePhrases && ex.b.uriLike.MatchString(value) {
		isPhrase = true
	}

	tokens := ex.b.queryScan.FindAllString(value, -1)
	var words []string
	for _, tok := range tokens {
		tok = ex.stripEdges(tok)
		if tok == "" || tok == string(ex.cfg.Wildcard) {
			continue
		}
		if !isPhrase {
			folded := strings.ToLower(tok)
			if _, stop := ex.cfg.Stopwords[folded]; stop {
				continue
			}
			if ex.opRE.MatchString(tok) {
				continue
			}
		}
		words = append(words, tok)
	}
	if len(words) == 0 {
		slog.Debug("query leaf produced no terms", "value", lf.value)
		return nil
	}

	wc := string(ex.cfg.Wildcard)
	if isPhrase {
		// A phrase that boils down to one word is just a word.
		if len(words) == 1 {
			return []Term{{Text: words[0], HasWildcard: strings.Contains(words[0], wc)}}
		}
		text := strings.Join(words, " ")
		return []Term{{
			Text:        text,
			Phrase:      true,
			HasWildcard: strings.Contains(text, wc),
			Proximity:   lf.proximity,
		}}
	}

	out := make([]Term, 0, len(words))
	for _, w := range words {
		out = append(out, Term{Text: w, HasWildcard: strings.Contains(w, wc)})
	}
	return out
}

// stripEdges removes ignorable leading and trailing characters from a token.
// A trailing wildcard survives stripping.
func (ex *extractor) stripEdges(tok string) string {
	runes := []rune(tok)
	wild := false
	if n := len(runes); n > 0 && runes[n-1] == ex.cfg.Wildcard {
		wild = true
		runes = runes[:n-1]
	}
	start, end := 0, len(runes)
	for start < end {
		if _, ok := ex.firstSet[runes[start]]; !ok {
			break
		}
		start++
	}
	for end > start {
		if _, ok := ex.lastSet[runes[end-1]]; !ok {
			break
		}
		end--
	}
	out := string(runes[start:end])
	if wild && out != "" {
		out += string(ex.cfg.Wildcard)
	}
	if wild && out == "" {
		// A bare wildcard matches everything; nothing useful remains.
		return ""
	}
	return out
}

// dropWildcardSubsumed removes any literal word term that some wildcard
// term already covers: with "foo*" in the list, "foo" and "food" are both
// redundant.
func dropWildcardSubsumed(terms []Term, wildcard rune) []Term {
	var prefixes []string
	for _, t := range terms {
		if !t.Phrase && strings.HasSuffix(t.Text, string(wildcard)) {
			prefixes = append(prefixes, strings.TrimSuffix(t.Text, string(wildcard)))
		}
	}
	if len(prefixes) == 0 {
		return terms
	}
	out := terms[:0]
	for _, t := range terms {
		if !t.Phrase && !t.HasWildcard && coveredByPrefix(t.Text, prefixes) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func coveredByPrefix(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// stemTerms rewrites every word of every term into its wildcarded stem
// prefix. Duplicate keys created by stemming resolve in favor of the later
// (stemmed) entry while keeping the earlier slot's position.
func (ex *extractor) stemTerms(terms []Term) ([]Term, error) {
	out := make([]Term, 0, len(terms))
	index := make(map[string]int)
	wc := string(ex.cfg.Wildcard)

	for _, t := range terms {
		words := strings.Split(t.Text, " ")
		for i, w := range words {
			if strings.HasSuffix(w, wc) {
				continue // already a prefix match
			}
			stemmed, err := ex.stemWord(w)
			if err != nil {
				return nil, err
			}
			words[i] = stemmed
		}
		t.Text = strings.Join(words, " ")
		t.HasWildcard = strings.Contains(t.Text, wc)

		if i, ok := index[t.Text]; ok {
			out[i] = t
			continue
		}
		index[t.Text] = len(out)
		out = append(out, t)
	}
	return out, nil
}

// stemWord applies the configured stemmer to one word, returning the common
// prefix of word and stem with the wildcard appended. Words the stemmer
// leaves alone come back unchanged, as do words whose stem shares no prefix
// at all (a bare wildcard would match every token in the document).
func (ex *extractor) stemWord(w string) (stemmed string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StemmerError{Word: w, Msg: fmt.Sprintf("panic: %v", r)}
		}
	}()
	stem := ex.cfg.Stemmer(w)
	if stem == "" {
		return "", &StemmerError{Word: w, Msg: "returned empty string"}
	}
	if stem == w {
		return w, nil
	}
	prefix := commonPrefix(w, stem)
	if prefix == "" {
		slog.Debug("stem shares no prefix with word, keeping literal", "word", w, "stem", stem)
		return w, nil
	}
	return prefix + string(ex.cfg.Wildcard), nil
}

func commonPrefix(a, b string) string {
	ar, br := []rune(a), []rune(b)
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	i := 0
	for i < n && ar[i] == br[i] {
		i++
	}
	return string(ar[:i])
}

// classRunes enumerates the literal characters of a character-class body.
// Escaped literals ("\\-") are unescaped; class shorthands like \w cannot be
// enumerated and are skipped.
func classRunes(body string) map[rune]struct{} {
	set := make(map[rune]struct{})
	escaped := false
	for _, r := range body {
		if escaped {
			switch r {
			case 'w', 'd', 's', 'W', 'D', 'S':
				// shorthand class, not a literal
			default:
				set[r] = struct{}{}
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		set[r] = struct{}{}
	}
	return set
}
