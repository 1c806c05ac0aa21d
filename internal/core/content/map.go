package content

import "fmt"

// MapToCursor resolves a whole-buffer cell index to a logical cursor.
//
// The action range wins first, then the holdings range. When holdings
// exist, any index to their right clamps to end-of-composition: during
// composition the trailing text cannot be addressed directly. Otherwise
// the ordered text segments are scanned; taps on separator or filler
// cells are covered by no range and fail with ErrUnmappablePosition.
func (er *EditResult) MapToCursor(index int) (Cursor, error) {
	if index < 0 || index >= er.Result.Cells.Len() {
		return Cursor{}, fmt.Errorf("%w: index %d outside buffer of %d cells",
			ErrUnmappablePosition, index, er.Result.Cells.Len())
	}

	if er.ActionRange.Contains(index) {
		return Cursor{Position: None, Kind: CursorAction}, nil
	}

	if er.HoldingsRange.Contains(index) {
		return Cursor{Position: index - er.HoldingsRange.Lower, Kind: CursorHoldings}, nil
	}
	if !er.HoldingsRange.IsNone() && index >= er.HoldingsRange.Upper {
		return Cursor{Position: er.HoldingsRange.Len(), Kind: CursorHoldings}, nil
	}

	for _, seg := range er.segments {
		if seg.cells.Contains(index) {
			offset := er.Result.CellToText[index] - seg.textStart
			return Cursor{Position: seg.fieldStart + offset, Kind: CursorText}, nil
		}
	}

	return Cursor{}, fmt.Errorf("%w: cell %d has no clickable range", ErrUnmappablePosition, index)
}
