package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

// testTranslator is a 1:1 table over the characters the tests use.
func testTranslator(t *testing.T) translate.Translator {
	t.Helper()
	tbl, err := translate.CompileTable(translate.TableDef{
		ID: "test",
		Chars: map[string][]int{
			" ": {}, ":": {1, 5, 6}, "[": {1, 2, 3, 5, 6}, "]": {2, 3, 4, 5, 6},
			"a": {1}, "b": {1, 2}, "c": {1, 4}, "d": {1, 4, 5}, "e": {1, 5},
			"f": {1, 2, 4}, "m": {1, 3, 4}, "n": {1, 3, 4, 5}, "o": {1, 3, 5},
			"D": {1, 4, 5, 7}, "G": {1, 2, 4, 5, 7}, "N": {1, 3, 4, 5, 7},
		},
	})
	require.NoError(t, err)
	return tbl
}

type failingTranslator struct{}

func (failingTranslator) Translate(string, int, bool) (*translate.Result, error) {
	return nil, errors.New("translator unavailable")
}

var holdingsXY = braille.NewWord(
	braille.Dot1|braille.Dot3|braille.Dot4|braille.Dot6,
	braille.Dot1|braille.Dot3|braille.Dot4|braille.Dot5|braille.Dot6,
)

// The composition scenario: hint "Name: ", field text "abc" with the
// cursor collapsed at its end, two holdings cells, and a "Done" action.
func compositionFields() Fields {
	return Fields{
		Hint:     "Name",
		Text:     "abc",
		SelStart: 3,
		SelEnd:   3,
		Holdings: holdingsXY,
		Action:   "Done",
	}
}

func TestAssembleComposition(t *testing.T) {
	er := Assemble(testTranslator(t), compositionFields())

	// "Name: " = 6 cells, "abc" = 3, holdings = 2, cursor-slot filler,
	// separator, "[Done]" = 6.
	require.Equal(t, 19, er.Result.Cells.Len())

	assert.Equal(t, []Range{{Lower: 6, Upper: 9}}, er.TextFieldCellRanges())
	assert.Equal(t, Range{Lower: 9, Upper: 11}, er.HoldingsRange)
	assert.Equal(t, Range{Lower: 13, Upper: 19}, er.ActionRange)
	assert.True(t, er.Selection.IsNone())

	// Cursor sits on the filler slot just past the holdings.
	assert.Equal(t, 11, er.CursorCell())

	// Fillers and separators carry blank cells.
	assert.True(t, er.Result.Cells[11].Blank())
	assert.True(t, er.Result.Cells[12].Blank())
}

func TestMapComposition(t *testing.T) {
	er := Assemble(testTranslator(t), compositionFields())

	tests := []struct {
		name  string
		index int
		want  Cursor
	}{
		{name: "after ab before holdings", index: 8, want: Cursor{Position: 2, Kind: CursorText}},
		{name: "first holdings cell", index: 9, want: Cursor{Position: 0, Kind: CursorHoldings}},
		{name: "second holdings cell", index: 10, want: Cursor{Position: 1, Kind: CursorHoldings}},
		{name: "inside action label", index: 14, want: Cursor{Position: None, Kind: CursorAction}},
		{name: "filler clamps to end of composition", index: 11, want: Cursor{Position: 2, Kind: CursorHoldings}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := er.MapToCursor(tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapHintIsUnmappable(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{Hint: "Name", Text: "abc", SelStart: 1, SelEnd: 1})

	// Hint cells belong to no clickable range.
	_, err := er.MapToCursor(0)
	assert.ErrorIs(t, err, ErrUnmappablePosition)
}

func TestAssembleSelection(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{Text: "abcdef", SelStart: 1, SelEnd: 4})

	require.Equal(t, 6, er.Result.Cells.Len())
	assert.Equal(t, []Range{{Lower: 0, Upper: 1}, {Lower: 1, Upper: 4}, {Lower: 4, Upper: 6}}, er.TextFieldCellRanges())
	assert.Equal(t, Range{Lower: 1, Upper: 4}, er.Selection)
	assert.Equal(t, 1, er.CursorCell())

	// Taps across all three segments resolve to field-text offsets.
	for i := 0; i < 6; i++ {
		got, err := er.MapToCursor(i)
		require.NoError(t, err)
		assert.Equal(t, Cursor{Position: i, Kind: CursorText}, got)
	}
}

func TestAssembleCursorAtEnd(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{Text: "abc", SelStart: 3, SelEnd: 3})

	// Three text cells plus the end-of-text filler.
	require.Equal(t, 4, er.Result.Cells.Len())
	assert.Equal(t, 3, er.CursorCell())

	// The filler itself is not clickable.
	_, err := er.MapToCursor(3)
	assert.ErrorIs(t, err, ErrUnmappablePosition)
}

func TestAssembleEmptyFields(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{})

	require.Equal(t, 1, er.Result.Cells.Len(), "a lone cursor filler")
	assert.Equal(t, 0, er.CursorCell())

	_, err := er.MapToCursor(0)
	assert.ErrorIs(t, err, ErrUnmappablePosition)
}

func TestAssembleTranslationFailure(t *testing.T) {
	er := Assemble(failingTranslator{}, compositionFields())

	// Dummy substitution keeps every index table well-formed; only the
	// cells are degraded to blanks.
	require.Equal(t, 19, er.Result.Cells.Len())
	assert.Len(t, er.Result.TextToCell, len(er.Result.Text)+1)
	assert.Len(t, er.Result.CellToText, er.Result.Cells.Len()+1)

	got, err := er.MapToCursor(8)
	require.NoError(t, err)
	assert.Equal(t, Cursor{Position: 2, Kind: CursorText}, got)
}

func TestMapOutOfBounds(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{Text: "abc"})

	_, err := er.MapToCursor(-1)
	assert.ErrorIs(t, err, ErrUnmappablePosition)
	_, err = er.MapToCursor(99)
	assert.ErrorIs(t, err, ErrUnmappablePosition)
}

func TestAssembleHoldingsMidText(t *testing.T) {
	er := Assemble(testTranslator(t), Fields{Text: "abcdef", SelStart: 3, SelEnd: 3, Holdings: holdingsXY})

	// "abc" + holdings (no filler mid-text) + "def".
	require.Equal(t, 8, er.Result.Cells.Len())
	assert.Equal(t, Range{Lower: 3, Upper: 5}, er.HoldingsRange)

	// Cursor lands on the first post-holdings text cell.
	assert.Equal(t, 5, er.CursorCell())

	// Text to the right of the holdings clamps to end-of-composition.
	got, err := er.MapToCursor(6)
	require.NoError(t, err)
	assert.Equal(t, Cursor{Position: 2, Kind: CursorHoldings}, got)

	// Text to the left still maps normally.
	got, err = er.MapToCursor(1)
	require.NoError(t, err)
	assert.Equal(t, Cursor{Position: 1, Kind: CursorText}, got)
}
