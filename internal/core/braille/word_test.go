package braille

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellRune(t *testing.T) {
	assert.Equal(t, '⠀', Cell(0).Rune())
	assert.Equal(t, '⠁', Dot1.Rune())
	// "b" in computer braille is dots 1-2.
	assert.Equal(t, '⠃', (Dot1 | Dot2).Rune())
	assert.Equal(t, '⣿', Cell(0xFF).Rune())
}

func TestWordConcat(t *testing.T) {
	a := NewWord(Dot1, Dot2)
	b := NewWord(Dot3)

	got := a.Concat(b, Blank(2))

	require.Equal(t, 5, got.Len())
	assert.Equal(t, Word{Dot1, Dot2, Dot3, 0, 0}, got)

	// Concatenation must not alias the receiver.
	got[0] = 0
	assert.Equal(t, Dot1, a[0])
}

func TestWordSlice(t *testing.T) {
	w := NewWord(Dot1, Dot2, Dot3, Dot4)

	tests := []struct {
		name   string
		lo, hi int
		want   Word
	}{
		{name: "middle", lo: 1, hi: 3, want: Word{Dot2, Dot3}},
		{name: "clamped low", lo: -2, hi: 2, want: Word{Dot1, Dot2}},
		{name: "clamped high", lo: 3, hi: 99, want: Word{Dot4}},
		{name: "inverted", lo: 3, hi: 1, want: nil},
		{name: "empty", lo: 2, hi: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Slice(tt.lo, tt.hi))
		})
	}
}

func TestWordOverlay(t *testing.T) {
	w := NewWord(Dot1, Dot2, Dot3)

	got := w.Overlay(1, 3, CursorDots)

	assert.Equal(t, Word{Dot1, Dot2 | Dot7 | Dot8, Dot3 | Dot7 | Dot8}, got)
	// Original word untouched.
	assert.Equal(t, Word{Dot1, Dot2, Dot3}, w)
}

func TestWordBytes(t *testing.T) {
	w := NewWord(Dot1, 0, Cell(0xFF))
	assert.Equal(t, []byte{0x01, 0x00, 0xFF}, w.Bytes())
}

func TestWordString(t *testing.T) {
	w := NewWord(Dot1, Dot1|Dot2)
	assert.Equal(t, "⠁⠃", w.String())
}
