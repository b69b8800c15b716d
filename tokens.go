// ═══════════════════════════════════════════════════════════════════════════════
// TOKEN LIST
// ═══════════════════════════════════════════════════════════════════════════════
// A TokenList is the positional view of one source buffer: every maximal run
// of word characters, with its original byte span, so the surrounding
// whitespace, punctuation and markup can be reconstructed verbatim later.
//
// After tokenization each token is marked against a compiled Query:
//
//	single-word term  → whole-token regex match
//	phrase term       → walk forward from a candidate start, requiring
//	                    each phrase word in order (or, with a ~N slop,
//	                    any order within N positions)
//
// The positions of matched tokens live in a roaring bitmap, which gives the
// snippet extractor cheap ordered iteration and next-match-after lookups no
// matter how sparse or dense the matches are.
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"errors"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ErrOutOfRange reports a token index outside the TokenList.
var ErrOutOfRange = errors.New("excerpt: token index out of range")

// Token is one word of the source buffer.
//
// Start and End are byte offsets into the buffer the TokenList was built
// from; Text is exactly the slice between them. Tokens never overlap and
// appear in buffer order.
type Token struct {
	Text    string
	Start   int
	End     int
	Pos     int
	IsMatch bool
}

// span is an inclusive range of token positions covered by one phrase
// occurrence.
type span struct {
	start, end int
}

// TokenList is the ordered token sequence for one (document, query) pair.
// It borrows the source buffer for its lifetime and is not safe for
// concurrent use.
type TokenList struct {
	src    string
	tokens []Token

	matches *roaring.Bitmap // every matched token position
	singles *roaring.Bitmap // positions matched by single-word terms
	spans   []span          // one entry per complete phrase occurrence
}

// NewTokenList tokenizes src and marks every token against q.
func NewTokenList(src string, q *Query) *TokenList {
	tl := &TokenList{
		src:     src,
		matches: roaring.New(),
		singles: roaring.New(),
	}

	idxs := q.bounds.wordScan.FindAllStringIndex(src, -1)
	tl.tokens = make([]Token, len(idxs))
	for i, se := range idxs {
		tl.tokens[i] = Token{
			Text:  src[se[0]:se[1]],
			Start: se[0],
			End:   se[1],
			Pos:   i,
		}
	}
	if len(tl.tokens) == 0 {
		return tl
	}

	for _, tm := range q.matchers {
		if tm.term.Phrase {
			tl.markPhrase(tm)
		} else {
			tl.markWord(tm)
		}
	}
	return tl
}

func (tl *TokenList) markWord(tm termMatcher) {
	for i := range tl.tokens {
		if tm.word.MatchString(tl.tokens[i].Text) {
			tl.tokens[i].IsMatch = true
			tl.matches.Add(uint32(i))
			tl.singles.Add(uint32(i))
		}
	}
}

// markPhrase records every occurrence of a phrase term. Like the classic
// next-phrase walk over positional postings, but the postings here are just
// the token slice: try each candidate start, extend forward, validate the
// span, move on.
func (tl *TokenList) markPhrase(tm termMatcher) {
	for i := 0; i < len(tl.tokens); i++ {
		sp, ok := tl.phraseSpanAt(i, tm)
		if !ok {
			continue
		}
		for j := sp.start; j <= sp.end; j++ {
			tl.tokens[j].IsMatch = true
			tl.matches.Add(uint32(j))
		}
		tl.spans = append(tl.spans, sp)
		// Continue from the token after the span start so overlapping
		// occurrences are still found.
		i = sp.start
	}
}

// phraseSpanAt reports whether a phrase occurrence starts at token i.
//
// With zero slop the phrase words must appear in order at consecutive
// positions. With slop N the words may appear in any order, provided no gap
// between successive found words exceeds N positions.
func (tl *TokenList) phraseSpanAt(i int, tm termMatcher) (span, bool) {
	words := tm.words
	slop := tm.term.Proximity

	if slop <= 0 {
		if i+len(words) > len(tl.tokens) {
			return span{}, false
		}
		for k, re := range words {
			if !re.MatchString(tl.tokens[i+k].Text) {
				return span{}, false
			}
		}
		return span{start: i, end: i + len(words) - 1}, true
	}

	matched := make([]bool, len(words))
	remaining := len(words)
	last := i - 1
	for j := i; j < len(tl.tokens); j++ {
		if j > i && j-last > slop {
			return span{}, false
		}
		hit := false
		for k, re := range words {
			if !matched[k] && re.MatchString(tl.tokens[j].Text) {
				matched[k] = true
				remaining--
				last = j
				hit = true
				break
			}
		}
		if j == i && !hit {
			// A span must begin on a phrase word.
			return span{}, false
		}
		if remaining == 0 {
			return span{start: i, end: j}, true
		}
	}
	return span{}, false
}

// Len returns the number of tokens.
func (tl *TokenList) Len() int { return len(tl.tokens) }

// Get returns the token at position i.
func (tl *TokenList) Get(i int) (Token, error) {
	if i < 0 || i >= len(tl.tokens) {
		return Token{}, ErrOutOfRange
	}
	return tl.tokens[i], nil
}

// Join renders the token texts separated by sep. There is deliberately no
// String method: a token list has no single obvious rendering, so callers
// must choose a joiner.
func (tl *TokenList) Join(sep string) string {
	parts := make([]string, len(tl.tokens))
	for i, t := range tl.tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, sep)
}

// MatchPositions returns the positions of all matched tokens in ascending
// order.
func (tl *TokenList) MatchPositions() []int {
	out := make([]int, 0, tl.matches.GetCardinality())
	it := tl.matches.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Window returns the tokens around pos, at most size positions on either
// side, shrunk so the slice begins and ends on a match token. When no match
// exists on one side the window clamps to the buffer edge instead.
func (tl *TokenList) Window(pos, size int) ([]Token, error) {
	start, end, err := tl.windowRange(pos, size)
	if err != nil {
		return nil, err
	}
	return tl.tokens[start : end+1], nil
}

func (tl *TokenList) windowRange(pos, size int) (int, int, error) {
	if pos < 0 || pos >= len(tl.tokens) {
		return 0, 0, ErrOutOfRange
	}
	start := pos - size
	if start < 0 {
		start = 0
	}
	for start < len(tl.tokens) && !tl.tokens[start].IsMatch {
		start++
	}
	if start > pos {
		start = 0
	}
	end := pos + size
	if end > len(tl.tokens)-1 {
		end = len(tl.tokens) - 1
	}
	for end >= 0 && !tl.tokens[end].IsMatch {
		end--
	}
	if end < pos {
		end = len(tl.tokens) - 1
	}
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}
