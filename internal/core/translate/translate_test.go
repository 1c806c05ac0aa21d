package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactilehq/dotwin/internal/core/braille"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := CompileTable(TableDef{
		ID: "test",
		Chars: map[string][]int{
			" ": {},
			"a": {1},
			"b": {1, 2},
			"c": {1, 4},
			"d": {1, 4, 5},
			"e": {1, 5},
			"h": {1, 2, 5},
			"n": {1, 3, 4, 5},
			"r": {1, 2, 3, 5},
			"t": {2, 3, 4, 5},
		},
		Contractions: map[string][][]int{
			"and": {{1, 2, 3, 4, 6}},
			"th":  {{1, 4, 5, 6}},
		},
	})
	require.NoError(t, err)
	return tbl
}

func TestTranslateIndexTables(t *testing.T) {
	tbl := testTable(t)

	r, err := tbl.Translate("abc", None, false)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Cells.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, r.TextToCell)
	assert.Equal(t, []int{0, 1, 2, 3}, r.CellToText)
	assert.Equal(t, None, r.CursorCell)
}

func TestTranslateContraction(t *testing.T) {
	tbl := testTable(t)

	// "and" collapses to a single cell; "a" keeps its own cell.
	r, err := tbl.Translate("a and", None, false)
	require.NoError(t, err)

	require.Equal(t, 3, r.Cells.Len()) // "a", " ", contraction
	assert.Equal(t, []int{0, 1, 2, 2, 2, 3}, r.TextToCell)
	assert.Equal(t, []int{0, 1, 2, 5}, r.CellToText)
}

func TestTranslateMonotonicInverse(t *testing.T) {
	tbl := testTable(t)

	r, err := tbl.Translate("the rat and the cat", None, false)
	require.NoError(t, err)

	for i := 1; i < len(r.TextToCell); i++ {
		assert.GreaterOrEqual(t, r.TextToCell[i], r.TextToCell[i-1], "TextToCell not monotonic at %d", i)
	}
	for i := 1; i < len(r.CellToText); i++ {
		assert.GreaterOrEqual(t, r.CellToText[i], r.CellToText[i-1], "CellToText not monotonic at %d", i)
	}
	for ti := 0; ti < r.TextLen(); ti++ {
		assert.LessOrEqual(t, r.CellToText[r.TextToCell[ti]], ti, "inverse property broken at %d", ti)
	}
}

func TestTranslateComputerBrailleAtCursor(t *testing.T) {
	tbl := testTable(t)

	// Cursor inside "and": contraction suppressed for that word only.
	r, err := tbl.Translate("and then", 1, true)
	require.NoError(t, err)

	// "a" "n" "d" " " + "th"-contraction + "e" "n"
	assert.Equal(t, 7, r.Cells.Len())
	assert.Equal(t, 1, r.CursorCell)
}

func TestTranslateCursorCell(t *testing.T) {
	tbl := testTable(t)

	r, err := tbl.Translate("abc", 3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, r.CursorCell, "cursor at end of text maps past last cell")

	r, err = tbl.Translate("abc", 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0, r.CursorCell)
}

func TestTranslateUnknownRune(t *testing.T) {
	tbl := testTable(t)

	r, err := tbl.Translate("a€b", None, false)
	require.NoError(t, err)

	require.Equal(t, 3, r.Cells.Len())
	assert.Equal(t, fallbackCell, r.Cells[1])
}

func TestTranslateNewlineIsBlank(t *testing.T) {
	tbl := testTable(t)

	r, err := tbl.Translate("ab\ncd", None, false)
	require.NoError(t, err)

	require.Equal(t, 5, r.Cells.Len())
	assert.True(t, r.Cells[2].Blank())
}

func TestDummy(t *testing.T) {
	r := Dummy("abc")

	assert.Equal(t, braille.Blank(3), r.Cells)
	assert.Equal(t, []int{0, 1, 2, 3}, r.TextToCell)
	assert.Equal(t, []int{0, 1, 2, 3}, r.CellToText)
	assert.Equal(t, None, r.CursorCell)
}

func TestOrDummy(t *testing.T) {
	ok := &Result{Text: "x"}
	assert.Same(t, ok, OrDummy(ok, nil, "x"))

	sub := OrDummy(nil, ErrNoTable, "xy")
	assert.Equal(t, 2, sub.Cells.Len())
}

func TestCompileTableValidation(t *testing.T) {
	_, err := CompileTable(TableDef{ID: "bad", Chars: map[string][]int{"a": {9}}})
	assert.Error(t, err)

	_, err = CompileTable(TableDef{ID: "bad", Chars: map[string][]int{"ab": {1}}})
	assert.Error(t, err)

	_, err = CompileTable(TableDef{Chars: map[string][]int{"a": {1}}})
	assert.Error(t, err, "missing id")
}
