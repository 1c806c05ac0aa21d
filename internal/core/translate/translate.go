// Package translate defines the contract between the display engine and
// a braille translator: text in, cells plus bidirectional index tables
// out. The engine never assumes a translation succeeds; every caller
// substitutes Dummy on failure so downstream index arithmetic stays
// well-formed.
package translate

import (
	"errors"

	"github.com/tactilehq/dotwin/internal/core/braille"
)

// None marks an absent position in any index field.
const None = -1

// ErrNoTable is returned when no translation table is active or a
// requested table id is unknown.
var ErrNoTable = errors.New("translate: no such table")

// Result is the output of one translation call. All offsets are rune
// offsets into Text.
//
// TextToCell has len(Text)+1 entries and CellToText has Cells.Len()+1
// entries; both are monotonically non-decreasing and are mutual
// approximate inverses: CellToText[TextToCell[t]] <= t for any t.
type Result struct {
	Text       string
	Cells      braille.Word
	TextToCell []int
	CellToText []int

	// CursorCell is the cell corresponding to the requested cursor
	// text offset, or None when no cursor was requested.
	CursorCell int
}

// Translator converts text to braille cells. A nil result or an error
// signals translation failure; callers must tolerate both.
type Translator interface {
	// Translate renders text as cells. cursor is a rune offset into
	// text (or None). When computerBrailleAtCursor is set, the word
	// under the cursor is rendered uncontracted so in-progress typing
	// stays character-aligned.
	Translate(text string, cursor int, computerBrailleAtCursor bool) (*Result, error)
}

// TextLen returns the rune length of the translated text.
func (r *Result) TextLen() int {
	return len(r.TextToCell) - 1
}

// Dummy builds a degenerate result over text: one blank cell per rune
// with identity index tables. It is substituted whenever a translator
// fails, so assembly never aborts; degraded output beats no output.
func Dummy(text string) *Result {
	runes := []rune(text)
	n := len(runes)

	tables := make([]int, n+1)
	for i := range tables {
		tables[i] = i
	}
	cellToText := make([]int, n+1)
	copy(cellToText, tables)

	return &Result{
		Text:       text,
		Cells:      braille.Blank(n),
		TextToCell: tables,
		CellToText: cellToText,
		CursorCell: None,
	}
}

// OrDummy returns r when the translation succeeded and a Dummy over
// text otherwise.
func OrDummy(r *Result, err error, text string) *Result {
	if err != nil || r == nil {
		return Dummy(text)
	}
	return r
}
