package excerpt

import (
	"errors"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TOKEN LIST TESTS
// ═══════════════════════════════════════════════════════════════════════════════

const foxSentence = "The quick brown fox jumps over the lazy dog"

func foxTokens(t *testing.T) *TokenList {
	t.Helper()
	q := compile(t, "fox lazy", DefaultConfig())
	return NewTokenList(foxSentence, q)
}

func TestTokenList_OffsetsAreVerbatim(t *testing.T) {
	tl := foxTokens(t)

	if tl.Len() != 9 {
		t.Fatalf("Len = %d, want 9", tl.Len())
	}
	for i := 0; i < tl.Len(); i++ {
		tok, err := tl.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if got := foxSentence[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("token %d: buffer slice %q != Text %q", i, got, tok.Text)
		}
		if tok.Pos != i {
			t.Errorf("token %d: Pos = %d", i, tok.Pos)
		}
	}
}

func TestTokenList_TokensNeverOverlap(t *testing.T) {
	tl := foxTokens(t)

	for i := 0; i < tl.Len()-1; i++ {
		cur, _ := tl.Get(i)
		next, _ := tl.Get(i + 1)
		if cur.End > next.Start {
			t.Errorf("token %d ends at %d, token %d starts at %d", i, cur.End, i+1, next.Start)
		}
	}
}

func TestTokenList_MatchMarking(t *testing.T) {
	tl := foxTokens(t)

	want := []int{3, 7} // fox, lazy
	if got := tl.MatchPositions(); !intSlicesEqual(got, want) {
		t.Errorf("MatchPositions = %v, want %v", got, want)
	}
	for i := 0; i < tl.Len(); i++ {
		tok, _ := tl.Get(i)
		if tok.IsMatch != (i == 3 || i == 7) {
			t.Errorf("token %d (%q): IsMatch = %v", i, tok.Text, tok.IsMatch)
		}
	}
}

func TestTokenList_WildcardMarking(t *testing.T) {
	q := compile(t, "foo*", DefaultConfig())
	tl := NewTokenList("food bar foot", q)

	want := []int{0, 2}
	if got := tl.MatchPositions(); !intSlicesEqual(got, want) {
		t.Errorf("MatchPositions = %v, want %v", got, want)
	}
}

func TestTokenList_PhraseMarking(t *testing.T) {
	q := compile(t, `"united states"`, DefaultConfig())
	tl := NewTokenList("the united states of america", q)

	want := []int{1, 2}
	if got := tl.MatchPositions(); !intSlicesEqual(got, want) {
		t.Errorf("MatchPositions = %v, want %v", got, want)
	}
	if len(tl.spans) != 1 || tl.spans[0] != (span{1, 2}) {
		t.Errorf("spans = %v, want [{1 2}]", tl.spans)
	}
}

// TestTokenList_ProximityPhrase covers the ~N slop: words out of order and
// separated, but within the window.
func TestTokenList_ProximityPhrase(t *testing.T) {
	q := compile(t, `"live united"~5`, DefaultConfig())
	tl := NewTokenList("we live as one united people", q)

	want := []int{1, 2, 3, 4}
	if got := tl.MatchPositions(); !intSlicesEqual(got, want) {
		t.Errorf("MatchPositions = %v, want %v", got, want)
	}
}

func TestTokenList_ProximityTooFar(t *testing.T) {
	q := compile(t, `"live united"~2`, DefaultConfig())
	tl := NewTokenList("we live far too distant from the united people", q)

	if got := tl.MatchPositions(); len(got) != 0 {
		t.Errorf("MatchPositions = %v, want none (gap exceeds slop)", got)
	}
}

func TestTokenList_PhraseNotSplitWords(t *testing.T) {
	q := compile(t, `"united states"`, DefaultConfig())
	tl := NewTokenList("united nations and many states", q)

	if got := tl.MatchPositions(); len(got) != 0 {
		t.Errorf("MatchPositions = %v, want none", got)
	}
}

func TestTokenList_Window(t *testing.T) {
	tl := foxTokens(t)

	// Wide window: spans from the first match to the last.
	window, err := tl.Window(3, 5)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if window[0].Text != "fox" || window[len(window)-1].Text != "lazy" {
		t.Errorf("window = %q..%q, want fox..lazy", window[0].Text, window[len(window)-1].Text)
	}

	// Narrow window: shrinks to the match itself.
	window, err = tl.Window(3, 2)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if len(window) != 1 || window[0].Text != "fox" {
		t.Errorf("window = %v, want [fox]", window)
	}
}

// TestTokenList_WindowBoundedness is the invariant: any window begins and
// ends on a match and never exceeds 2k+1 tokens.
func TestTokenList_WindowBoundedness(t *testing.T) {
	q := compile(t, "quick fox lazy dog", DefaultConfig())
	tl := NewTokenList(foxSentence, q)

	for _, pos := range tl.MatchPositions() {
		for k := 1; k <= 5; k++ {
			window, err := tl.Window(pos, k)
			if err != nil {
				t.Fatalf("Window(%d, %d) failed: %v", pos, k, err)
			}
			if len(window) > 2*k+1 {
				t.Errorf("Window(%d, %d) has %d tokens, max %d", pos, k, len(window), 2*k+1)
			}
			if !window[0].IsMatch || !window[len(window)-1].IsMatch {
				t.Errorf("Window(%d, %d) does not start and end on matches", pos, k)
			}
		}
	}
}

func TestTokenList_OutOfRange(t *testing.T) {
	tl := foxTokens(t)

	if _, err := tl.Get(99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(99) err = %v, want ErrOutOfRange", err)
	}
	if _, err := tl.Window(-1, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Window(-1, 2) err = %v, want ErrOutOfRange", err)
	}
}

func TestTokenList_Join(t *testing.T) {
	q := compile(t, "fox", DefaultConfig())
	tl := NewTokenList("a-b, c!", q)

	if got := tl.Join(" "); got != "a-b c" {
		t.Errorf("Join = %q, want %q", got, "a-b c")
	}
}

func TestTokenList_EmptyBuffer(t *testing.T) {
	q := compile(t, "fox", DefaultConfig())
	tl := NewTokenList("", q)

	if tl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tl.Len())
	}
	if got := tl.MatchPositions(); len(got) != 0 {
		t.Errorf("MatchPositions = %v, want none", got)
	}
}

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
