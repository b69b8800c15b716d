package excerpt

import (
	"strings"

	"github.com/kljensen/snowball"
)

// snowballLangs maps ISO language codes (and locale lang tokens) to the
// names the snowball library dispatches on.
var snowballLangs = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"hu": "hungarian",
	"nb": "norwegian",
	"nn": "norwegian",
	"no": "norwegian",
	"ru": "russian",
	"sv": "swedish",
}

// Snowball returns a Stemmer backed by the Snowball stemmer for the given
// language. lang accepts either an ISO code ("en") or a full snowball
// language name ("english"). DefaultConfig leaves Lang empty (it is derived
// from Locale only when a Query is compiled), so pass the code explicitly:
//
//	cfg := DefaultConfig()
//	cfg.Stemmer, err = Snowball("en")
//
// Words the stemmer cannot handle come back unchanged, satisfying the
// Stemmer contract.
func Snowball(lang string) (Stemmer, error) {
	name, ok := snowballLangs[strings.ToLower(lang)]
	if !ok {
		name = strings.ToLower(lang)
	}
	// Probe once so an unsupported language fails at configuration time
	// rather than on the first query.
	if _, err := snowball.Stem("probe", name, false); err != nil {
		return nil, &InvalidConfigError{Field: "Lang", Msg: "unsupported stemmer language " + lang}
	}
	return func(word string) string {
		stem, err := snowball.Stem(word, name, false)
		if err != nil || stem == "" {
			return word
		}
		return stem
	}, nil
}
