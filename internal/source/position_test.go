package source

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrackerAdvance(t *testing.T) {
	tests := []struct {
		Name     string
		Chunks   []string
		Expected Position
	}{
		{
			Name:     "empty",
			Chunks:   nil,
			Expected: Position{Line: 1, Column: 1, Offset: 0},
		},
		{
			Name:     "single-line",
			Chunks:   []string{"let", " ", "x"},
			Expected: Position{Line: 1, Column: 6, Offset: 5},
		},
		{
			Name:     "newline-resets-column",
			Chunks:   []string{"a;", "\n", "  b"},
			Expected: Position{Line: 2, Column: 4, Offset: 6},
		},
		{
			Name:     "newline-inside-chunk",
			Chunks:   []string{"/* one\ntwo\n*/"},
			Expected: Position{Line: 3, Column: 3, Offset: 13},
		},
		{
			Name:     "columns-count-runes",
			Chunks:   []string{`"héllo"`},
			Expected: Position{Line: 1, Column: 8, Offset: 8},
		},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			tr := NewTracker()
			for _, chunk := range tc.Chunks {
				tr.Advance([]byte(chunk))
			}
			assert.Equal(t, tc.Expected, tr.Pos())
		})
	}
}

func TestPositionAtMatchesTracker(t *testing.T) {
	src := []byte("func f() {\n  return \"ü\";\n}\n")
	tr := NewTracker()
	for i := 0; i < len(src); {
		assert.Equal(t, tr.Pos(), PositionAt(src, i), "offset %d", i)
		_, size := utf8.DecodeRune(src[i:])
		tr.Advance(src[i : i+size])
		i += size
	}
	assert.Equal(t, tr.Pos(), PositionAt(src, len(src)))
	assert.Equal(t, Position{Line: 4, Column: 1, Offset: len(src)}, PositionAt(src, len(src)+10))
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "2:4", NewLocation(Position{Line: 2, Column: 4}, Position{Line: 2, Column: 9}).String())
	assert.Equal(t, "1:1-3:2", NewLocation(Position{Line: 1, Column: 1}, Position{Line: 3, Column: 2}).String())

	var nilLoc *Location
	assert.Equal(t, "<unknown>", nilLoc.String())
}

func TestPositionOrdering(t *testing.T) {
	a := Position{Line: 1, Column: 3, Offset: 2}
	b := Position{Line: 2, Column: 1, Offset: 9}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, a.IsValid())
	assert.False(t, Position{}.IsValid())
}
