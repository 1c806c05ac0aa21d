// Package content assembles logical editing segments (hint, field text,
// composition holdings, action label) into one position-mapped cell
// buffer, and maps routing-key taps on that buffer back to logical
// cursor positions.
package content

import (
	"errors"
	"fmt"
)

// None marks an absent index.
const None = -1

// ErrUnmappablePosition is returned when a tapped cell is not covered
// by any clickable range. Callers must treat it as "ignore this tap".
var ErrUnmappablePosition = errors.New("content: unmappable position")

// Range is a closed-open integer interval [Lower, Upper).
type Range struct {
	Lower int
	Upper int
}

// NoRange is the absent-range sentinel.
var NoRange = Range{Lower: None, Upper: None}

// IsNone reports whether the range is the absent sentinel.
func (r Range) IsNone() bool {
	return r.Lower == None
}

// Len returns the number of positions covered.
func (r Range) Len() int {
	if r.IsNone() || r.Upper < r.Lower {
		return 0
	}
	return r.Upper - r.Lower
}

// Contains reports whether i falls inside the interval.
func (r Range) Contains(i int) bool {
	return !r.IsNone() && i >= r.Lower && i < r.Upper
}

func (r Range) String() string {
	if r.IsNone() {
		return "[none)"
	}
	return fmt.Sprintf("[%d,%d)", r.Lower, r.Upper)
}

// CursorKind identifies which logical segment a mapped cursor points into.
type CursorKind int

const (
	// CursorText addresses a rune offset in the field text.
	CursorText CursorKind = iota
	// CursorHoldings addresses an offset in the in-progress composition.
	CursorHoldings
	// CursorAction addresses the action label; it carries no offset.
	CursorAction
)

func (k CursorKind) String() string {
	switch k {
	case CursorText:
		return "text"
	case CursorHoldings:
		return "holdings"
	case CursorAction:
		return "action"
	default:
		return "unknown"
	}
}

// Cursor is the result of mapping a tapped cell back to a logical
// editing position.
type Cursor struct {
	Position int
	Kind     CursorKind
}
