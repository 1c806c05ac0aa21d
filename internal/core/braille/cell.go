// Package braille defines the primitive tactile units rendered on a
// refreshable braille display: single cells and ordered cell sequences.
package braille

// Cell is one tactile braille character position, a bitmask of up to
// eight raised dots. Dot 1 is the least significant bit, dot 8 the most.
type Cell byte

// Dot masks for the eight pins of a cell.
const (
	Dot1 Cell = 1 << iota
	Dot2
	Dot3
	Dot4
	Dot5
	Dot6
	Dot7
	Dot8
)

// CursorDots is the overlay pattern used to mark the cursor or an
// active selection: both pins of the bottom row raised.
const CursorDots = Dot7 | Dot8

// Blank reports whether the cell has no raised dots.
func (c Cell) Blank() bool {
	return c == 0
}

// Has reports whether all dots in mask are raised on c.
func (c Cell) Has(mask Cell) bool {
	return c&mask == mask
}

// WithDots returns a copy of c with the dots in mask raised.
func (c Cell) WithDots(mask Cell) Cell {
	return c | mask
}

// Rune returns the Unicode braille pattern for the cell. The braille
// block is laid out so that U+2800 plus the dot bitmask is exactly the
// glyph with those dots raised.
func (c Cell) Rune() rune {
	return rune(0x2800 + int(c))
}
