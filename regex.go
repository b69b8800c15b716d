// ═══════════════════════════════════════════════════════════════════════════════
// REGEX SYNTHESIS
// ═══════════════════════════════════════════════════════════════════════════════
// Every term compiles to two matchers:
//
//	plain  matches the term in raw text
//	html   additionally tolerates tags and character entities interleaved
//	       with the matched characters
//
// Both expose exactly three capture groups — (start boundary)(term)(end
// boundary) — so a highlighter can wrap group 2 and re-emit groups 1 and 3
// untouched.
//
// THE HTML MATCHER, CHARACTER BY CHARACTER:
// -----------------------------------------
// Term: "foo"
//
//	(?:f|&#102;|&#x66;) (?:<[^>]+>)*
//	(?:o|&#111;|&#x6f;) (?:<[^>]+>)*
//	(?:o|&#111;|&#x6f;)
//
// Any number of tags may sit between any two consecutive characters, and
// each character may be spelled literally, as a named entity, or as a
// numeric entity. That is how "<b>f</b>oo" and "f&#111;o" both match.
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexPair is the pair of compiled matchers for one term.
type RegexPair struct {
	Plain *regexp.Regexp
	HTML  *regexp.Regexp
}

// matchFlags returns the inline flag prefix shared by every synthesized pattern:
// dot-matches-newline always, case-insensitive iff the config folds case.
func matchFlags(cfg *Config) string {
	if cfg.IgnoreCase {
		return "(?si)"
	}
	return "(?s)"
}

// synthesizePair builds and compiles both matchers for a term. Compilation
// failure is fatal for the Query under construction.
func synthesizePair(t Term, cfg *Config, b *boundaries) (RegexPair, error) {
	plain, err := regexp.Compile(plainPattern(t, cfg, b))
	if err != nil {
		return RegexPair{}, fmt.Errorf("excerpt: plain regex for %q: %w", t.Text, err)
	}
	html, err := regexp.Compile(htmlPattern(t, cfg, b))
	if err != nil {
		return RegexPair{}, fmt.Errorf("excerpt: html regex for %q: %w", t.Text, err)
	}
	return RegexPair{Plain: plain, HTML: html}, nil
}

// plainPattern: (\A|bound)(escaped term)(\z|bound), with wildcards expanded
// and phrase spaces widened to phrase boundaries.
func plainPattern(t Term, cfg *Config, b *boundaries) string {
	body := regexp.QuoteMeta(t.Text)
	body = strings.ReplaceAll(body, regexp.QuoteMeta(string(cfg.Wildcard)), string(star(b.htmlSafeWord)))
	body = strings.ReplaceAll(body, " ", string(b.plainPhraseBound))

	return matchFlags(cfg) + string(seq(
		capture(alt(`\A`, b.plainPhraseBound)),
		capture(frag(body)),
		capture(alt(`\z`, b.plainPhraseBound)),
	))
}

// htmlPattern: (start_bound)(per-character body)(end_bound).
func htmlPattern(t Term, cfg *Config, b *boundaries) string {
	runes := []rune(t.Text)
	var parts []frag
	for i, r := range runes {
		switch r {
		case cfg.Wildcard:
			parts = append(parts, star(b.htmlSafeWord))
		case ' ':
			// The phrase boundary swallows the inter-word gap and any
			// tags that follow it; no extra tag gap after.
			parts = append(parts, seq(b.htmlPhraseBound, star(b.tag)))
			continue
		default:
			parts = append(parts, charAlternation(r))
		}
		if i < len(runes)-1 {
			parts = append(parts, star(b.tag))
		}
	}

	return matchFlags(cfg) + string(seq(
		capture(b.startBound),
		capture(seq(parts...)),
		capture(b.endBound),
	))
}

// charAlternation matches one character in any of its spellings: literal,
// named entity (when one exists), decimal entity, hex entity.
func charAlternation(r rune) frag {
	alts := []frag{frag(regexp.QuoteMeta(string(r)))}
	if ent, ok := namedEntity(r); ok {
		alts = append(alts, frag(ent))
	}
	alts = append(alts,
		frag(fmt.Sprintf("&#%d;", r)),
		frag(fmt.Sprintf("&#x%x;", r)),
	)
	return alt(alts...)
}

// compileWordMatcher builds the whole-token matcher used when marking a
// TokenList: the single word (wildcard expanded) anchored at both ends.
func compileWordMatcher(word string, cfg *Config, b *boundaries) (*regexp.Regexp, error) {
	body := regexp.QuoteMeta(word)
	body = strings.ReplaceAll(body, regexp.QuoteMeta(string(cfg.Wildcard)), string(star(b.htmlSafeWord)))
	re, err := regexp.Compile(matchFlags(cfg) + `\A(?:` + body + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("excerpt: word matcher for %q: %w", word, err)
	}
	return re, nil
}
