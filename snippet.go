// ═══════════════════════════════════════════════════════════════════════════════
// SNIPPET EXTRACTION
// ═══════════════════════════════════════════════════════════════════════════════
// Given a source buffer and a compiled Query, pick up to `occur` windows of
// roughly 2*context words around matches and render them as one string with
// ellipsis markers between non-adjacent windows.
//
// THE ALGORITHM:
// --------------
//  1. Tokenize and mark the buffer
//  2. Collect match positions (phrases count once, or per word — see
//     TreatPhrasesAsSingles)
//  3. Spread picks greedily so windows don't pile onto one hot paragraph
//  4. Bound each window on match tokens, optionally stretch to sentence
//     boundaries
//  5. Slice the original buffer verbatim — whitespace, punctuation and
//     markup inside a window survive untouched
//  6. Truncate to the character budget at a token boundary
//
// Snippet extraction never fails: no tokens, no terms, or no matches all
// degrade to a well-defined result rather than an error.
// ═══════════════════════════════════════════════════════════════════════════════

package excerpt

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
)

// SnippetOptions control snippet extraction. Snip replaces a zero Occur,
// Context or Ellipsis with the default; the other zero values (Show and
// TreatPhrasesAsSingles false, MaxChars 0 meaning no budget) differ from
// DefaultSnippetOptions, so start from it.
type SnippetOptions struct {
	// Occur is the maximum number of windows to return.
	Occur int

	// Context is the window half-width in tokens; a window spans roughly
	// 2*Context words.
	Context int

	// AsSentences stretches each window outward to sentence boundaries,
	// at most Context extra tokens in each direction.
	AsSentences bool

	// IgnoreLength disables the MaxChars budget.
	IgnoreLength bool

	// MaxChars is the total character budget across all windows.
	MaxChars int

	// Show controls the no-match fallback: when true the head of the
	// document is returned; when false the result is empty.
	Show bool

	// TreatPhrasesAsSingles counts every matched word of a phrase as a
	// window anchor. When false a whole phrase occurrence anchors one
	// window at its first word.
	TreatPhrasesAsSingles bool

	// Ellipsis separates non-adjacent windows and marks truncation.
	Ellipsis string
}

// DefaultSnippetOptions returns the standard extraction settings: up to 5
// windows of ±8 tokens, 300 characters total.
func DefaultSnippetOptions() SnippetOptions {
	return SnippetOptions{
		Occur:                 5,
		Context:               8,
		MaxChars:              300,
		Show:                  true,
		TreatPhrasesAsSingles: true,
		Ellipsis:              " ... ",
	}
}

// Snip extracts a snippet from src for the compiled query.
func Snip(src string, q *Query, opts SnippetOptions) string {
	if opts.Ellipsis == "" {
		opts.Ellipsis = " ... "
	}
	if opts.Context <= 0 {
		opts.Context = DefaultSnippetOptions().Context
	}
	if opts.Occur <= 0 {
		opts.Occur = DefaultSnippetOptions().Occur
	}
	if len(q.terms) == 0 {
		return ""
	}

	tl := NewTokenList(src, q)
	if tl.Len() == 0 {
		return ""
	}

	positions := anchorPositions(tl, opts)
	if len(positions) == 0 {
		if !opts.Show {
			return ""
		}
		return truncate(tl.headSlice(2*opts.Context), opts)
	}

	picks := spreadPicks(positions, opts.Occur, opts.Context)

	type window struct{ start, end int }
	var windows []window
	for _, pos := range picks {
		start, end, err := tl.windowRange(pos, opts.Context)
		if err != nil {
			continue
		}
		if opts.AsSentences {
			start, end = tl.stretchToSentences(start, end, opts.Context)
		}
		windows = append(windows, window{start, end})
	}

	// Merge overlapping or adjacent windows so a snippet never repeats a
	// slice of the buffer.
	merged := windows[:0]
	for _, w := range windows {
		if n := len(merged); n > 0 && w.start <= merged[n-1].end+1 {
			if w.end > merged[n-1].end {
				merged[n-1].end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}

	parts := make([]string, len(merged))
	for i, w := range merged {
		parts[i] = tl.slice(w.start, w.end)
	}
	return truncate(strings.Join(parts, opts.Ellipsis), opts)
}

// anchorPositions gathers the token positions snippets may center on.
func anchorPositions(tl *TokenList, opts SnippetOptions) []int {
	anchors := roaring.New()
	anchors.Or(tl.singles)
	if opts.TreatPhrasesAsSingles {
		anchors.Or(tl.matches)
	} else {
		for _, sp := range tl.spans {
			anchors.Add(uint32(sp.start))
		}
	}
	out := make([]int, 0, anchors.GetCardinality())
	it := anchors.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	sort.Ints(out)
	return out
}

// spreadPicks selects up to occur positions, greedily skipping forward so
// consecutive picks sit at least context tokens apart.
func spreadPicks(positions []int, occur, context int) []int {
	picks := make([]int, 0, occur)
	last := -1 << 30
	for _, pos := range positions {
		if pos-last < context {
			continue
		}
		picks = append(picks, pos)
		last = pos
		if len(picks) == occur {
			break
		}
	}
	return picks
}

// stretchToSentences widens [start, end] until a sentence boundary (or the
// buffer edge) is found on each side, moving at most context extra tokens.
func (tl *TokenList) stretchToSentences(start, end, context int) (int, int) {
	for extra := 0; start > 0 && extra < context; extra++ {
		if tl.sentenceBreakBefore(start) {
			break
		}
		start--
	}
	for extra := 0; end < len(tl.tokens)-1 && extra < context; extra++ {
		if tl.sentenceBreakAfter(end) {
			break
		}
		end++
	}
	return start, end
}

// sentenceBreakBefore reports whether the gap preceding token i ends a
// sentence: terminating punctuation followed by whitespace.
func (tl *TokenList) sentenceBreakBefore(i int) bool {
	if i == 0 {
		return true
	}
	return gapEndsSentence(tl.src[tl.tokens[i-1].End:tl.tokens[i].Start])
}

// sentenceBreakAfter reports whether the gap following token i ends a
// sentence.
func (tl *TokenList) sentenceBreakAfter(i int) bool {
	if i >= len(tl.tokens)-1 {
		return true
	}
	return gapEndsSentence(tl.src[tl.tokens[i].End:tl.tokens[i+1].Start])
}

func gapEndsSentence(gap string) bool {
	for j, r := range gap {
		if r == '.' || r == '!' || r == '?' {
			rest := gap[j+utf8.RuneLen(r):]
			for _, nr := range rest {
				if unicode.IsSpace(nr) {
					return true
				}
				if nr != '.' && nr != '!' && nr != '?' && nr != '"' && nr != '\'' && nr != ')' {
					break
				}
			}
			// Terminator at the very end of the gap counts too.
			if strings.TrimRight(rest, `.!?"')`) == "" {
				return true
			}
		}
	}
	return false
}

// slice renders tokens [start, end] straight from the source buffer,
// carrying any sentence-terminating punctuation that immediately follows.
func (tl *TokenList) slice(start, end int) string {
	from := tl.tokens[start].Start
	to := tl.tokens[end].End
	for to < len(tl.src) {
		r, n := utf8.DecodeRuneInString(tl.src[to:])
		if r != '.' && r != '!' && r != '?' {
			break
		}
		to += n
	}
	return tl.src[from:to]
}

// headSlice renders the first n+1 tokens of the buffer, the no-match
// fallback when Show is set.
func (tl *TokenList) headSlice(n int) string {
	end := n
	if end > len(tl.tokens)-1 {
		end = len(tl.tokens) - 1
	}
	return tl.src[tl.tokens[0].Start:tl.tokens[end].End]
}

// truncate enforces the character budget, cutting at a token boundary and
// appending the ellipsis marker.
func truncate(s string, opts SnippetOptions) string {
	if opts.IgnoreLength || opts.MaxChars <= 0 || utf8.RuneCountInString(s) <= opts.MaxChars {
		return s
	}
	// Byte offset of the first character past the budget.
	cut := 0
	for n := 0; n < opts.MaxChars; n++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	if i := strings.LastIndexFunc(s[:cut], unicode.IsSpace); i > 0 {
		cut = i
	}
	return strings.TrimRightFunc(s[:cut], unicode.IsSpace) + strings.TrimRight(opts.Ellipsis, " ")
}
