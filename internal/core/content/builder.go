package content

import (
	"strings"

	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

// builder accumulates segments into one linear cell buffer, shifting
// each segment's index tables by the running cell and text offsets.
type builder struct {
	text       strings.Builder
	textLen    int // runes
	cells      braille.Word
	textToCell []int
	cellToText []int
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) cellLen() int {
	return len(b.cells)
}

// append splices a translated segment onto the buffer and returns the
// cell and text offsets where it begins.
func (b *builder) append(r *translate.Result) (cellStart, textStart int) {
	cellStart = len(b.cells)
	textStart = b.textLen

	for i := 0; i < r.TextLen(); i++ {
		b.textToCell = append(b.textToCell, cellStart+r.TextToCell[i])
	}
	for j := 0; j < r.Cells.Len(); j++ {
		b.cellToText = append(b.cellToText, textStart+r.CellToText[j])
	}

	b.cells = append(b.cells, r.Cells...)
	b.text.WriteString(r.Text)
	b.textLen += r.TextLen()

	return cellStart, textStart
}

// appendCells adds cells that carry no text; their cell-to-text entries
// all point at the current text position.
func (b *builder) appendCells(cells braille.Word) (cellStart int) {
	cellStart = len(b.cells)
	for range cells {
		b.cellToText = append(b.cellToText, b.textLen)
	}
	b.cells = append(b.cells, cells...)
	return cellStart
}

// finish closes both index tables with their sentinel entries and
// returns the assembled result.
func (b *builder) finish() *translate.Result {
	b.textToCell = append(b.textToCell, len(b.cells))
	b.cellToText = append(b.cellToText, b.textLen)

	return &translate.Result{
		Text:       b.text.String(),
		Cells:      b.cells,
		TextToCell: b.textToCell,
		CellToText: b.cellToText,
		CursorCell: translate.None,
	}
}
