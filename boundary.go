// ═══════════════════════════════════════════════════════════════════════════════
// CHARACTER CLASSES & BOUNDARY TABLES
// ═══════════════════════════════════════════════════════════════════════════════
// The regex synthesizer never works with raw strings. It composes typed
// fragments — character classes, alternations, repetitions — and only at the
// very end flattens them into one pattern handed to regexp.Compile. That
// keeps each boundary table testable on its own.
//
// THE TABLES:
// -----------
//  startBound       what may legally precede a matched term:
//                   start-of-text, '>', an entity, whitespace, a non-word
//                   character, or an ignorable leading character
//  endBound         the mirror image: end-of-text, '<', '&', whitespace,
//                   non-word, ignorable trailing character
//  plainPhraseBound what separates two words of a phrase in plain text
//  htmlPhraseBound  the same separator when markup may intervene
//  htmlSafeWord     word characters with '<', '>', '&' removed, so wildcard
//                   expansion can never run across a tag
//
// WHY EXCLUDE <, >, & FROM WORD CHARACTERS?
// -----------------------------------------
// Inside markup those characters delimit structure. If the matcher treated
// them as word characters it would try to align terms across raw tags;
// treating them as boundaries (and '&' as an entity prefix) keeps the HTML
// matcher honest.
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"fmt"
	"regexp"
	"strings"
)

// frag is one composable piece of a regular expression. Fragments are
// already-valid pattern text; the combinators below only ever add
// non-capturing structure around them.
type frag string

// alt composes (?:a|b|...).
func alt(fs ...frag) frag {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return frag("(?:" + strings.Join(parts, "|") + ")")
}

// seq concatenates fragments in order.
func seq(fs ...frag) frag {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(string(f))
	}
	return frag(b.String())
}

// star wraps a fragment with zero-or-more repetition.
func star(f frag) frag { return frag(string(f) + "*") }

// opt wraps a fragment with zero-or-one repetition.
func opt(f frag) frag { return frag(string(f) + "?") }

// capture wraps a fragment in a numbered group. The synthesized matchers
// expose exactly three: (start boundary)(term)(end boundary).
func capture(f frag) frag { return frag("(" + string(f) + ")") }

// class builds [body]; negClass builds [^body].
func class(body string) frag    { return frag("[" + body + "]") }
func negClass(body string) frag { return frag("[^" + body + "]") }

// boundaries holds every derived pattern for one normalized Config. Built
// once per Query and shared read-only afterwards.
type boundaries struct {
	wordClass    frag // [word characters]
	notWordClass frag // negation of the word class
	htmlSafeWord frag // word class minus <, >, &
	htmlWS       frag
	tag          frag

	startBound       frag
	endBound         frag
	plainPhraseBound frag
	htmlPhraseBound  frag

	// wordScan tokenizes source buffers: one maximal run of word
	// characters. queryScan additionally admits a trailing wildcard so
	// "foo*" survives query tokenization as one token.
	wordScan  *regexp.Regexp
	queryScan *regexp.Regexp

	// uriLike detects word-char '@' or '.' word-char, the signature of an
	// address or hostname inside a bare query word.
	uriLike *regexp.Regexp
}

// newBoundaries derives all tables from a normalized Config. Any class body
// or pattern that fails to compile is reported as an InvalidConfigError
// naming the offending field.
func newBoundaries(cfg *Config) (*boundaries, error) {
	b := &boundaries{
		wordClass:    class(cfg.WordCharacters),
		notWordClass: negClass(cfg.WordCharacters),
		htmlSafeWord: class(htmlSafeClassBody(cfg.WordCharacters)),
		htmlWS:       frag(cfg.WhitespacePattern),
		tag:          frag("(?:" + cfg.TagPattern + ")"),
	}

	entity := frag(`&[\w#]+;`)

	// What may precede a term: text start, the tail of a tag, an entity,
	// whitespace, any non-word character, or an ignorable leading char.
	startAlts := []frag{`\A`, `>`, entity, b.htmlWS, b.notWordClass}
	if cfg.IgnoreFirstChar != "" {
		startAlts = append(startAlts, class(cfg.IgnoreFirstChar))
	}
	b.startBound = alt(startAlts...)

	// What may follow: text end, the head of a tag, an entity prefix,
	// whitespace, non-word, or an ignorable trailing char.
	endAlts := []frag{`\z`, `<`, `&`, b.htmlWS, b.notWordClass}
	if cfg.IgnoreLastChar != "" {
		endAlts = append(endAlts, class(cfg.IgnoreLastChar))
	}
	b.endBound = alt(endAlts...)

	// Inter-word gap inside a phrase, plain text: optional trailing
	// ignorables, one separator, an optional leading ignorable.
	sep := alt(`\s`, b.notWordClass)
	if cfg.IgnoreLastChar != "" {
		b.plainPhraseBound = seq(star(class(cfg.IgnoreLastChar)), sep)
	} else {
		b.plainPhraseBound = sep
	}
	if cfg.IgnoreFirstChar != "" {
		b.plainPhraseBound = seq(b.plainPhraseBound, opt(class(cfg.IgnoreFirstChar)))
	}

	// The HTML variant tolerates entity whitespace in the gap.
	htmlSep := alt(b.htmlWS, b.notWordClass)
	if cfg.IgnoreFirstChar != "" {
		b.htmlPhraseBound = seq(star(class(cfg.IgnoreFirstChar)), htmlSep)
	} else {
		b.htmlPhraseBound = htmlSep
	}
	if cfg.IgnoreLastChar != "" {
		b.htmlPhraseBound = seq(b.htmlPhraseBound, opt(class(cfg.IgnoreLastChar)))
	}

	var err error
	if b.wordScan, err = regexp.Compile(string(b.wordClass) + "+"); err != nil {
		return nil, &InvalidConfigError{Field: "WordCharacters", Msg: err.Error()}
	}
	wc := regexp.QuoteMeta(string(cfg.Wildcard))
	if b.queryScan, err = regexp.Compile(string(b.wordClass) + "+" + wc + "?"); err != nil {
		return nil, &InvalidConfigError{Field: "WordCharacters", Msg: err.Error()}
	}
	uri := fmt.Sprintf("%s[@.]%s", b.wordClass, b.wordClass)
	if b.uriLike, err = regexp.Compile(uri); err != nil {
		return nil, &InvalidConfigError{Field: "WordCharacters", Msg: err.Error()}
	}

	// Compile the remaining tables once to surface bad TagPattern or
	// WhitespacePattern values at construction time, not at match time.
	for field, f := range map[string]frag{
		"TagPattern":        b.tag,
		"WhitespacePattern": b.htmlWS,
		"IgnoreFirstChar":   b.startBound,
		"IgnoreLastChar":    b.endBound,
	} {
		if _, err := regexp.Compile(string(f)); err != nil {
			return nil, &InvalidConfigError{Field: field, Msg: err.Error()}
		}
	}
	return b, nil
}

// htmlSafeClassBody strips the literal markup delimiters from a class body.
// Escape sequences like \w pass through untouched.
func htmlSafeClassBody(body string) string {
	var b strings.Builder
	escaped := false
	for _, r := range body {
		if escaped {
			b.WriteByte('\\')
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '<' || r == '>' || r == '&' {
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
