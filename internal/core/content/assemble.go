package content

import (
	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

// Fields are the logical segments of an editing surface. Any of them
// may independently be empty. SelStart and SelEnd are rune offsets into
// Text; a collapsed selection has SelStart == SelEnd.
type Fields struct {
	Hint     string
	Text     string
	SelStart int
	SelEnd   int
	Holdings braille.Word
	Action   string
}

// textSegment is one clickable stretch of field text in the assembled
// buffer: its cell range, where its text begins in the assembled text,
// and where it begins in the original field text.
type textSegment struct {
	cells      Range
	textStart  int
	fieldStart int
}

// EditResult is a position-mapped assembly of all Fields segments: one
// linear cell buffer with global index tables, plus the disjoint
// clickable ranges needed to map taps back to editing positions.
type EditResult struct {
	Result *translate.Result

	segments      []textSegment
	HoldingsRange Range
	ActionRange   Range

	// Selection is the cell range of the active text selection, or
	// NoRange when the selection is collapsed.
	Selection Range
}

// Assemble builds the display buffer for an editing surface, ordered:
// hint, field text before the selection, selected text, holdings,
// field text after the selection, then the action label. Failed
// translations are substituted with dummy results; assembly never
// aborts.
func Assemble(tr translate.Translator, f Fields) *EditResult {
	runes := []rune(f.Text)

	lo, hi := f.SelStart, f.SelEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = clamp(lo, 0, len(runes))
	hi = clamp(hi, 0, len(runes))

	b := newBuilder()
	er := &EditResult{
		HoldingsRange: NoRange,
		ActionRange:   NoRange,
		Selection:     NoRange,
	}

	// Hint prefix; all subsequent text offsets are shifted by its length.
	hintDisp := 0
	if f.Hint != "" {
		hint := f.Hint + ": "
		r := translateOr(tr, hint, translate.None, false)
		b.append(r)
		hintDisp = r.TextLen()
	}

	// Field text strictly before the selection. The word under the
	// cursor stays uncontracted so typing remains character-aligned.
	if lo > 0 {
		seg := string(runes[:lo])
		r := translateOr(tr, seg, lo, true)
		cs, ts := b.append(r)
		er.segments = append(er.segments, textSegment{
			cells:      Range{Lower: cs, Upper: b.cellLen()},
			textStart:  ts,
			fieldStart: 0,
		})
	}

	// Selected text.
	if hi > lo {
		r := translateOr(tr, string(runes[lo:hi]), translate.None, false)
		cs, ts := b.append(r)
		sel := Range{Lower: cs, Upper: b.cellLen()}
		er.segments = append(er.segments, textSegment{cells: sel, textStart: ts, fieldStart: lo})
		er.Selection = sel
	}

	// Holdings carry real cells but blank text, so the text overlay
	// reads as a gap at the composition point.
	cursorFallback := None
	if len(f.Holdings) > 0 {
		cs := b.appendCells(f.Holdings)
		er.HoldingsRange = Range{Lower: cs, Upper: b.cellLen()}
		cursorFallback = b.cellLen()
		if lo == hi && hi == len(runes) {
			// Composition at the very end: guarantee a clickable
			// cursor slot past the holdings.
			b.appendCells(braille.Blank(1))
		}
	}

	// Field text after the selection.
	if hi < len(runes) {
		r := translateOr(tr, string(runes[hi:]), translate.None, false)
		cs, ts := b.append(r)
		er.segments = append(er.segments, textSegment{
			cells:      Range{Lower: cs, Upper: b.cellLen()},
			textStart:  ts,
			fieldStart: hi,
		})
	}

	// Cursor at content end with nothing composed or selected: one
	// blank filler so routing keys past the end still resolve.
	if cursorFallback == None {
		cursorFallback = b.cellLen()
	}
	if lo == hi && hi == len(runes) && len(f.Holdings) == 0 {
		b.appendCells(braille.Blank(1))
	}

	// Action label, set off by one blank separator cell.
	if f.Action != "" {
		b.appendCells(braille.Blank(1))
		r := translateOr(tr, "["+f.Action+"]", translate.None, false)
		cs, _ := b.append(r)
		er.ActionRange = Range{Lower: cs, Upper: b.cellLen()}
	}

	er.Result = b.finish()

	// Final cursor cell: the cell of the displacement-adjusted lower
	// selection index, or the first cell past the assembled field
	// content when the cursor sits at the very end.
	adjusted := hintDisp + lo
	if adjusted >= hintDisp+len(runes) {
		er.Result.CursorCell = cursorFallback
	} else {
		er.Result.CursorCell = er.Result.TextToCell[adjusted]
	}

	return er
}

// CursorCell returns the cell position of the logical cursor.
func (er *EditResult) CursorCell() int {
	return er.Result.CursorCell
}

// TextFieldCellRanges returns the ordered clickable cell ranges of the
// field-text segments.
func (er *EditResult) TextFieldCellRanges() []Range {
	out := make([]Range, len(er.segments))
	for i, s := range er.segments {
		out[i] = s.cells
	}
	return out
}

func translateOr(tr translate.Translator, text string, cursor int, computerBraille bool) *translate.Result {
	r, err := tr.Translate(text, cursor, computerBraille)
	return translate.OrDummy(r, err, text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
