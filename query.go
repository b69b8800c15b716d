// ═══════════════════════════════════════════════════════════════════════════════
// COMPILED QUERY
// ═══════════════════════════════════════════════════════════════════════════════
// A Query is the immutable result of compiling one user query string:
//
//	raw string → parse tree → normalized terms → regex pair per term
//
// It sits between a search index (which said the document matched) and a
// presentation layer (which wants to highlight matches and show excerpts).
//
// EXAMPLE:
// --------
//
//	q, err := excerpt.New(`+"united states" census`)
//	q.Keywords()            // ["united states", "census"]
//	pair, _ := q.RegexFor("united states")
//	pair.HTML.MatchString("united <b>states</b>")   // true
//
// A Query is safe for concurrent readers. It owns its regexes exclusively
// and never mutates after construction.
// ═══════════════════════════════════════════════════════════════════════════════

// Package excerpt compiles compact Boolean search queries into matchers for
// plain and HTML text, and extracts contextual snippets around matches.
package excerpt

import (
	"regexp"
	"strings"
)

// termMatcher holds the token-level machinery for one term: a whole-token
// matcher for single words, per-word matchers for phrases.
type termMatcher struct {
	term  Term
	word  *regexp.Regexp
	words []*regexp.Regexp
}

// Query is a compiled, immutable search query.
type Query struct {
	cfg      *Config
	bounds   *boundaries
	original string
	tree     *Tree
	terms    []Term
	pairs    map[string]RegexPair
	matchers []termMatcher
}

// New compiles a query string with the default configuration.
func New(q string) (*Query, error) {
	return NewWithConfig(q, DefaultConfig())
}

// NewWithConfig compiles a query string. All construction failures surface
// here: bad configuration, malformed query syntax, a misbehaving stemmer, or
// a synthesized regex that does not compile.
func NewWithConfig(q string, cfg *Config) (*Query, error) {
	ncfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	bounds, err := newBoundaries(ncfg)
	if err != nil {
		return nil, err
	}
	text, err := normalizeQueryText(q, ncfg)
	if err != nil {
		return nil, err
	}
	tree, err := parseQuery(text, ncfg)
	if err != nil {
		return nil, err
	}
	terms, err := extractTerms(tree, ncfg, bounds)
	if err != nil {
		return nil, err
	}

	query := &Query{
		cfg:      ncfg,
		bounds:   bounds,
		original: q,
		tree:     tree,
		terms:    terms,
		pairs:    make(map[string]RegexPair, len(terms)),
		matchers: make([]termMatcher, 0, len(terms)),
	}
	for _, t := range terms {
		pair, err := synthesizePair(t, ncfg, bounds)
		if err != nil {
			return nil, err
		}
		query.pairs[t.Text] = pair

		tm := termMatcher{term: t}
		if t.Phrase {
			for _, w := range strings.Split(t.Text, " ") {
				re, err := compileWordMatcher(w, ncfg, bounds)
				if err != nil {
					return nil, err
				}
				tm.words = append(tm.words, re)
			}
		} else {
			if tm.word, err = compileWordMatcher(t.Text, ncfg, bounds); err != nil {
				return nil, err
			}
		}
		query.matchers = append(query.matchers, tm)
	}
	return query, nil
}

// Terms returns the normalized terms in query order. The slice is a copy.
func (q *Query) Terms() []Term {
	out := make([]Term, len(q.terms))
	copy(out, q.terms)
	return out
}

// Keywords returns just the term texts, in query order.
func (q *Query) Keywords() []string {
	out := make([]string, len(q.terms))
	for i, t := range q.terms {
		out[i] = t.Text
	}
	return out
}

// RegexFor returns the compiled matcher pair for a term text as returned by
// Keywords.
func (q *Query) RegexFor(term string) (RegexPair, bool) {
	pair, ok := q.pairs[term]
	return pair, ok
}

// Original returns the query string as the caller supplied it.
func (q *Query) Original() string { return q.original }

// Tree returns the parse tree for introspection. Callers must not modify it.
func (q *Query) Tree() *Tree { return q.tree }

// MatchesAny reports whether any term matches anywhere in text. The
// HTML-aware matcher is used, so text may carry markup; plain text matches
// too. This plus FirstMatch is the whole interface a highlighter front-end
// needs.
func (q *Query) MatchesAny(text string) bool {
	for _, t := range q.terms {
		if q.pairs[t.Text].HTML.MatchString(text) {
			return true
		}
	}
	return false
}

// FirstMatch returns the first term (in query order) that matches text, and
// whether one did.
func (q *Query) FirstMatch(text string) (string, bool) {
	for _, t := range q.terms {
		if q.pairs[t.Text].HTML.MatchString(text) {
			return t.Text, true
		}
	}
	return "", false
}
