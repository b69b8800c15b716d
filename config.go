// ═══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Everything the query compiler does is driven by a Config: which characters
// belong inside a word, which words are noise, which single character acts as
// a wildcard, how a phrase is quoted, and how markup and whitespace look in
// the documents being matched.
//
// A Config is built once, validated once, and never mutated afterwards. Every
// Query compiled from it captures the derived state (character classes,
// boundary patterns) at compile time, so a Config can be shared freely.
//
// EXAMPLE:
// --------
//
//	cfg := excerpt.DefaultConfig()
//	cfg.Stopwords = excerpt.DefaultStopwords()
//	q, err := excerpt.NewWithConfig(`"united states" +census`, cfg)
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Stemmer reduces a word to its root form.
//
// CONTRACT:
// ---------
// A Stemmer must be deterministic, must not panic, and must return a
// non-empty string. The compiler defends against violations: a panic or an
// empty result surfaces as a *StemmerError at Query construction time.
//
// The compiler never substitutes the stem for the word directly. It takes
// the longest common prefix of word and stem and appends the wildcard, so
// "running" with stem "run" becomes the term "run*" and still matches
// "runs", "runner", and "running" itself.
type Stemmer func(word string) string

// InvalidConfigError reports a configuration field that cannot be used.
type InvalidConfigError struct {
	Field string
	Msg   string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("excerpt: invalid config field %q: %s", e.Field, e.Msg)
}

// Config holds every knob recognized by the query compiler and the snippet
// extractor. The zero value is not usable; start from DefaultConfig.
//
// The character-set fields (WordCharacters, IgnoreFirstChar, IgnoreLastChar)
// are regular-expression character-class bodies, not plain strings:
// `\p{L}\p{N}_'-` means letters and digits plus underscore, apostrophe and
// hyphen. They are composed into larger classes verbatim, and validation
// compiles them to catch mistakes early.
type Config struct {
	// Locale in lang_REGION.CHARSET form, e.g. "en_US.UTF-8". Supplies the
	// defaults for Lang and Charset when those are empty. The process
	// locale is never consulted and never mutated.
	Locale string

	// Lang is the two-letter language code used by the Snowball stemmer
	// constructor. Derived from Locale when empty.
	Lang string

	// Charset is the declared encoding of query strings and documents.
	// Inputs are transcoded to UTF-8 internally. Derived from Locale when
	// empty; empty after derivation means UTF-8.
	Charset string

	// Stopwords are lowercased words dropped from non-phrase query values.
	// Words inside a quoted phrase always survive. Empty by default; use
	// DefaultStopwords for the standard English set.
	Stopwords map[string]struct{}

	// Wildcard is the single character standing for zero or more word
	// characters at the end of a word. Default '*'.
	Wildcard rune

	// WordCharacters is the class body defining what belongs inside a
	// term. The default covers Unicode letters and digits plus underscore,
	// apostrophe and hyphen (RE2's \w is ASCII-only, so the default spells
	// out the Unicode properties).
	WordCharacters string

	// IgnoreFirstChar and IgnoreLastChar are class bodies of characters
	// stripped from the edges of every token. Default `'-` for both, so
	// "'tis" tokenizes as "tis" and "dog-" as "dog".
	IgnoreFirstChar string
	IgnoreLastChar  string

	// AndWord, OrWord, NotWord, NearWord are case-insensitive patterns
	// recognized as Boolean operators between clauses. NearWord may carry
	// a digit suffix ("near3") giving the proximity window.
	AndWord  string
	OrWord   string
	NotWord  string
	NearWord string

	// PhraseDelim is the quote character grouping a phrase. Default '"'.
	PhraseDelim rune

	// IgnoreCase lowercases query terms and makes all matching
	// case-insensitive. Default true.
	IgnoreCase bool

	// IgnoreFields names query fields whose values are discarded entirely
	// (the field exists for the index, not for highlighting).
	IgnoreFields map[string]struct{}

	// TreatURIsLikePhrases upgrades a bare word containing '@' or '.'
	// between word characters to a phrase, so "user@example.com" matches
	// as a unit instead of three words. Default true.
	TreatURIsLikePhrases bool

	// Stemmer, when set, is applied to every word of every term. See the
	// Stemmer type for the contract. Nil disables stemming.
	Stemmer Stemmer

	// TagPattern matches exactly one HTML tag. Default `<[^>]+>`.
	TagPattern string

	// WhitespacePattern matches one unit of whitespace including the
	// HTML-entity spellings of a space. The default covers \s, U+00A0,
	// &nbsp; and the numeric forms.
	WhitespacePattern string
}

// DefaultConfig returns the standard configuration: English locale, UTF-8,
// case-insensitive, '*' wildcard, no stopwords, no stemming.
func DefaultConfig() *Config {
	return &Config{
		Locale:               "en_US.UTF-8",
		Wildcard:             '*',
		WordCharacters:       `\p{L}\p{N}_'-`,
		IgnoreFirstChar:      `'-`,
		IgnoreLastChar:       `'-`,
		AndWord:              `and`,
		OrWord:               `or`,
		NotWord:              `not`,
		NearWord:             `near\d*`,
		PhraseDelim:          '"',
		IgnoreCase:           true,
		TreatURIsLikePhrases: true,
		TagPattern:           `<[^>]+>`,
		WhitespacePattern:    `(?:[\s\x{00a0}]|&nbsp;|&#0*32;|&#0*160;|&#x0*[aA]0;|&#x0*20;)`,
	}
}

// normalize fills derived fields and validates the configuration. It is
// called once at Query construction; the Config itself is left untouched
// and the normalized copy is what the compiler works from.
func (c *Config) normalize() (*Config, error) {
	cp := *c

	if cp.Locale == "" {
		cp.Locale = "en_US.UTF-8"
	}
	lang, charset := splitLocale(cp.Locale)
	if cp.Lang == "" {
		cp.Lang = lang
	}
	if cp.Charset == "" {
		cp.Charset = charset
	}

	if cp.Wildcard == 0 {
		cp.Wildcard = '*'
	}
	if utf8.RuneLen(cp.Wildcard) < 1 || cp.Wildcard == ' ' {
		return nil, &InvalidConfigError{Field: "Wildcard", Msg: "must be a single printable non-space character"}
	}
	if cp.PhraseDelim == 0 {
		cp.PhraseDelim = '"'
	}
	if cp.WordCharacters == "" {
		return nil, &InvalidConfigError{Field: "WordCharacters", Msg: "must not be empty"}
	}
	if strings.ContainsRune(cp.WordCharacters, cp.Wildcard) {
		return nil, &InvalidConfigError{Field: "Wildcard", Msg: "must not be a word character"}
	}
	if cp.AndWord == "" || cp.OrWord == "" || cp.NotWord == "" {
		return nil, &InvalidConfigError{Field: "AndWord", Msg: "operator words must not be empty"}
	}
	if cp.TagPattern == "" {
		cp.TagPattern = `<[^>]+>`
	}
	if cp.WhitespacePattern == "" {
		cp.WhitespacePattern = DefaultConfig().WhitespacePattern
	}
	if cp.NearWord == "" {
		cp.NearWord = `near\d*`
	}
	return &cp, nil
}

// splitLocale tears "en_US.UTF-8" into ("en", "UTF-8"). Missing pieces come
// back empty; the caller decides the fallback.
func splitLocale(locale string) (lang, charset string) {
	rest := locale
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		charset = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexAny(rest, "_-"); i >= 0 {
		rest = rest[:i]
	}
	lang = strings.ToLower(rest)
	return lang, charset
}
