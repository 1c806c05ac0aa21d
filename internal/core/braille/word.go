package braille

import "strings"

// Word is an ordered sequence of cells, the unit of translated output.
// Words are treated as immutable once produced; all operations that
// would modify a word return a new one.
type Word []Cell

// NewWord copies cells into a fresh word.
func NewWord(cells ...Cell) Word {
	w := make(Word, len(cells))
	copy(w, cells)
	return w
}

// Blank returns a word of n empty cells.
func Blank(n int) Word {
	if n <= 0 {
		return nil
	}
	return make(Word, n)
}

// Len returns the number of cells in the word.
func (w Word) Len() int {
	return len(w)
}

// Concat returns a new word holding w followed by each of parts in order.
func (w Word) Concat(parts ...Word) Word {
	n := len(w)
	for _, p := range parts {
		n += len(p)
	}
	out := make(Word, 0, n)
	out = append(out, w...)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Slice returns a copy of the cells in [lo, hi). Bounds are clamped to
// the word; an inverted or empty interval yields an empty word.
func (w Word) Slice(lo, hi int) Word {
	if lo < 0 {
		lo = 0
	}
	if hi > len(w) {
		hi = len(w)
	}
	if lo >= hi {
		return nil
	}
	out := make(Word, hi-lo)
	copy(out, w[lo:hi])
	return out
}

// Overlay returns a copy of the word with mask raised on every cell in
// [lo, hi). Used to mark the cursor and selection with dots 7 and 8.
func (w Word) Overlay(lo, hi int, mask Cell) Word {
	out := make(Word, len(w))
	copy(out, w)
	if lo < 0 {
		lo = 0
	}
	if hi > len(out) {
		hi = len(out)
	}
	for i := lo; i < hi; i++ {
		out[i] |= mask
	}
	return out
}

// Bytes returns the raw dot bitmasks, one byte per cell, in the shape
// device transports consume.
func (w Word) Bytes() []byte {
	out := make([]byte, len(w))
	for i, c := range w {
		out[i] = byte(c)
	}
	return out
}

// String renders the word as Unicode braille patterns.
func (w Word) String() string {
	var b strings.Builder
	b.Grow(len(w) * 3)
	for _, c := range w {
		b.WriteRune(c.Rune())
	}
	return b.String()
}
