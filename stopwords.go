package excerpt

// DefaultStopwords returns the standard English stopword set.
//
// The Config default is deliberately empty — whether stopwording is wanted
// depends on whether the index the caller sits behind stripped these words
// too. Pass this set when it did:
//
//	cfg := DefaultConfig()
//	cfg.Stopwords = DefaultStopwords()
//
// The returned map is a fresh copy each call; callers may add or delete
// entries freely.
func DefaultStopwords() map[string]struct{} {
	m := make(map[string]struct{}, len(englishStopwords))
	for w := range englishStopwords {
		m[w] = struct{}{}
	}
	return m
}

// englishStopwords holds common English words with little selectivity.
//
// Uses struct{} values (0 bytes per entry) for memory efficiency, the same
// trick the rest of the package uses for every word set.
var englishStopwords = map[string]struct{}{
	"a":       {},
	"about":   {},
	"after":   {},
	"all":     {},
	"also":    {},
	"an":      {},
	"and":     {},
	"any":     {},
	"are":     {},
	"as":      {},
	"at":      {},
	"be":      {},
	"because": {},
	"been":    {},
	"before":  {},
	"being":   {},
	"between": {},
	"both":    {},
	"but":     {},
	"by":      {},
	"can":     {},
	"could":   {},
	"did":     {},
	"do":      {},
	"does":    {},
	"down":    {},
	"during":  {},
	"each":    {},
	"few":     {},
	"for":     {},
	"from":    {},
	"further": {},
	"had":     {},
	"has":     {},
	"have":    {},
	"he":      {},
	"her":     {},
	"here":    {},
	"hers":    {},
	"him":     {},
	"his":     {},
	"how":     {},
	"i":       {},
	"if":      {},
	"in":      {},
	"into":    {},
	"is":      {},
	"it":      {},
	"its":     {},
	"just":    {},
	"may":     {},
	"me":      {},
	"might":   {},
	"more":    {},
	"most":    {},
	"must":    {},
	"my":      {},
	"no":      {},
	"nor":     {},
	"not":     {},
	"now":     {},
	"of":      {},
	"off":     {},
	"on":      {},
	"once":    {},
	"only":    {},
	"or":      {},
	"other":   {},
	"our":     {},
	"out":     {},
	"over":    {},
	"own":     {},
	"same":    {},
	"she":     {},
	"should":  {},
	"so":      {},
	"some":    {},
	"such":    {},
	"than":    {},
	"that":    {},
	"the":     {},
	"their":   {},
	"them":    {},
	"then":    {},
	"there":   {},
	"these":   {},
	"they":    {},
	"this":    {},
	"those":   {},
	"through": {},
	"to":      {},
	"too":     {},
	"under":   {},
	"until":   {},
	"up":      {},
	"very":    {},
	"was":     {},
	"we":      {},
	"were":    {},
	"what":    {},
	"when":    {},
	"where":   {},
	"which":   {},
	"while":   {},
	"who":     {},
	"whom":    {},
	"why":     {},
	"will":    {},
	"with":    {},
	"would":   {},
	"you":     {},
	"your":    {},
	"yours":   {},
}
