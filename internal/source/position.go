package source

import (
	"fmt"
	"unicode/utf8"
)

// Position is a point in a source buffer.
// Line and Column are 1-based, Column counts runes. Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Start returns the position of the first byte of a buffer
func Start() Position {
	return Position{Line: 1, Column: 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was produced by a Tracker
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before compares by offset
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Location is a span of source text. End is exclusive.
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation creates a location from two positions
func NewLocation(start, end Position) *Location {
	return &Location{Start: &start, End: &end}
}

func (l *Location) String() string {
	if l == nil || l.Start == nil {
		return "<unknown>"
	}
	if l.End == nil || l.End.Line == l.Start.Line {
		return l.Start.String()
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Tracker advances a Position over consumed text.
// A newline increments Line and resets Column to 1.
type Tracker struct {
	pos Position
}

// NewTracker creates a tracker positioned at the start of a buffer
func NewTracker() *Tracker {
	return &Tracker{pos: Start()}
}

// Pos returns the current position
func (t *Tracker) Pos() Position {
	return t.pos
}

// Advance moves the tracker past text, which must be valid UTF-8.
func (t *Tracker) Advance(text []byte) Position {
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		t.pos.Offset += size
		if r == '\n' {
			t.pos.Line++
			t.pos.Column = 1
			continue
		}
		t.pos.Column++
	}
	return t.pos
}

// PositionAt computes the position of a byte offset by scanning from the start of src.
// Offsets past the end of src are clamped.
func PositionAt(src []byte, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	pos := Start()
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		i += size
		pos.Offset = i
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	pos.Offset = offset
	return pos
}
