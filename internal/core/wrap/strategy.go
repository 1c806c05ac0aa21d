package wrap

import (
	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

// Strategy wraps a cell buffer into stable lines for a display of
// fixed width and tracks the currently visible window [Start, End).
//
// Three position tables are kept over the buffer: forced split points
// at paragraph boundaries, candidate break points at word boundaries,
// and the memoized line-break set computed around a pivot that is
// guaranteed to be a line start.
type Strategy struct {
	width int

	// wordPivot enables the editable-field behavior: a pivot falling
	// mid-word is moved back to the start of its word before the line
	// set is recomputed.
	wordPivot bool

	cells  braille.Word
	splits *pointSet
	breaks *pointSet
	lines  *pointSet

	start int
	end   int
}

// NewWordWrap returns a strategy that breaks lines at word-boundary
// blanks.
func NewWordWrap(width int) *Strategy {
	return &Strategy{
		width:  width,
		splits: newPointSet(),
		breaks: newPointSet(),
		lines:  newPointSet(),
	}
}

// NewEditWordWrap returns the editable-field variant, which keeps the
// word under a repositioned pivot intact.
func NewEditWordWrap(width int) *Strategy {
	s := NewWordWrap(width)
	s.wordPivot = true
	return s
}

// valid reports whether the strategy holds pannable state. With a
// non-positive width or empty content every pan operation is a no-op.
func (s *Strategy) valid() bool {
	return s.width > 0 && len(s.cells) > 0
}

// SetContent installs a translated buffer, recomputes the point tables
// and resets the window to the first line. Split points are only
// produced when splitParagraphs is set: each newline in the source
// text maps, through the text-to-cell table, to the cell immediately
// after it.
func (s *Strategy) SetContent(r *translate.Result, splitParagraphs bool) {
	s.splits.clear()
	s.breaks.clear()
	s.lines.clear()
	s.start, s.end = 0, 0

	if r == nil {
		s.cells = nil
		return
	}
	s.cells = r.Cells
	if !s.valid() {
		return
	}

	s.calculatePoints(r, splitParagraphs)
	s.calculateLineBreaks(0)
	s.start = 0
	s.end = s.lineEnd(0)
}

// calculatePoints scans the buffer for break points (a removable point
// at every blank cell, an unremovable one at each word start and after
// each hyphen) and the source text for paragraph split points.
func (s *Strategy) calculatePoints(r *translate.Result, splitParagraphs bool) {
	prevBlank := false
	for i, c := range s.cells {
		if c.Blank() {
			s.breaks.add(i, Removable)
			prevBlank = true
			continue
		}
		if prevBlank {
			s.breaks.add(i, Unremovable)
		}
		prevBlank = false
	}

	for t, rn := range []rune(r.Text) {
		switch rn {
		case '-':
			after := r.TextToCell[t+1]
			if after > 0 && after < len(s.cells) {
				s.breaks.add(after, Unremovable)
			}
		case '\n':
			if !splitParagraphs {
				continue
			}
			after := r.TextToCell[t+1]
			if after > 0 && after < len(s.cells) {
				s.splits.add(after, Unremovable)
			}
		}
	}
}

// Width returns the display width the strategy wraps against.
func (s *Strategy) Width() int {
	return s.width
}

// Len returns the cell length of the installed buffer.
func (s *Strategy) Len() int {
	return len(s.cells)
}

// DisplayStart returns the first visible cell offset; never negative.
func (s *Strategy) DisplayStart() int {
	if s.start < 0 {
		return 0
	}
	return s.start
}

// DisplayEnd returns the offset one past the last visible cell; never
// beyond the buffer.
func (s *Strategy) DisplayEnd() int {
	if s.end > len(s.cells) {
		return len(s.cells)
	}
	return s.end
}

// displayEnd derives where the line starting at start must end: at a
// forced split point inside the window if one exists, else at the best
// break point, swallowing any blank run that immediately follows it,
// else at the bare width limit.
func (s *Strategy) displayEnd(start int) int {
	limit := start + s.width

	if sp, ok := s.splits.ceil(start + 1); ok && sp <= limit {
		return sp
	}
	if limit >= len(s.cells) {
		return len(s.cells)
	}

	if b, ok := s.breaks.floor(limit); ok && b > start {
		b = s.skipRemovableRight(b)
		if b > start {
			return b
		}
	}

	return limit
}

// displayStart is the mirror derivation: retract the end over any
// immediately preceding removable points, then search backward from
// end minus the width.
func (s *Strategy) displayStart(end int) int {
	for end > 0 {
		if k, ok := s.breaks.kindAt(end - 1); ok && k == Removable {
			end--
			continue
		}
		break
	}

	limit := end - s.width

	if sp, ok := s.splits.floor(end - 1); ok && sp > 0 && sp >= limit {
		return sp
	}
	if limit <= 0 {
		return 0
	}

	if b, ok := s.breaks.ceil(limit); ok && b < end {
		b = s.skipRemovableRight(b)
		if b < end {
			return b
		}
	}

	return limit
}

// skipRemovableRight moves past a contiguous run of removable points
// so a line never begins with trailing separators.
func (s *Strategy) skipRemovableRight(pos int) int {
	for pos < len(s.cells) {
		if k, ok := s.breaks.kindAt(pos); ok && k == Removable {
			pos++
			continue
		}
		break
	}
	return pos
}

// calculateLineBreaks rebuilds the memoized line set around pivot,
// walking displayEnd forward to the buffer end and displayStart
// backward to zero.
func (s *Strategy) calculateLineBreaks(pivot int) {
	s.lines.clear()
	s.lines.add(pivot, Unremovable)

	for i := pivot; i < len(s.cells); {
		e := s.displayEnd(i)
		if e <= i || e >= len(s.cells) {
			break
		}
		s.lines.add(e, Unremovable)
		i = e
	}

	for i := pivot; i > 0; {
		st := s.displayStart(i)
		if st >= i {
			st = i - s.width
		}
		if st <= 0 {
			s.lines.add(0, Unremovable)
			break
		}
		s.lines.add(st, Unremovable)
		i = st
	}
}

// lineEnd returns the end of the line starting at start: the next line
// break, or the buffer end for the last line.
func (s *Strategy) lineEnd(start int) int {
	if n, ok := s.lines.next(start); ok {
		return n
	}
	return len(s.cells)
}

// PanTo moves the window to the line containing position. When fix is
// false and the position is not already a known line break, the whole
// line set is recomputed pivoting on it, so the position becomes
// exactly a line start rather than merely falling inside one.
// It reports whether the strategy held valid state to pan within.
func (s *Strategy) PanTo(position int, fix bool) bool {
	if !s.valid() {
		return false
	}

	if position < 0 {
		position = 0
	}
	if position >= len(s.cells) {
		position = len(s.cells) - 1
	}

	if !fix && !s.lines.contains(position) {
		pivot := position
		if s.wordPivot {
			pivot = s.wordWrapPivot(position)
		}
		s.calculateLineBreaks(pivot)
	}
	if s.lines.len() == 0 {
		s.calculateLineBreaks(0)
	}

	start, ok := s.lines.floor(position)
	if !ok {
		start = 0
	}
	s.start = start
	s.end = s.lineEnd(start)
	return true
}

// wordWrapPivot repositions a pivot that falls inside a word back to
// the word's first cell, provided the word start still fits within one
// display width of the requested position.
func (s *Strategy) wordWrapPivot(position int) int {
	b, ok := s.breaks.floor(position)
	if !ok {
		return position
	}
	p := s.skipRemovableRight(b)
	if p > position || position-p >= s.width {
		return position
	}
	return p
}

// PanUp moves the window to the previous line. It reports false at the
// top edge.
func (s *Strategy) PanUp() bool {
	if !s.valid() {
		return false
	}
	st, ok := s.lines.prev(s.start)
	if !ok {
		return false
	}
	s.start = st
	s.end = s.lineEnd(st)
	return true
}

// PanDown moves the window to the next line. It reports false at the
// bottom edge.
func (s *Strategy) PanDown() bool {
	if !s.valid() {
		return false
	}
	nxt, ok := s.lines.next(s.start)
	if !ok || nxt >= len(s.cells) {
		return false
	}
	s.start = nxt
	s.end = s.lineEnd(nxt)
	return true
}

// Reset pans back to the first line.
func (s *Strategy) Reset() {
	if !s.valid() {
		s.start, s.end = 0, 0
		return
	}
	s.PanTo(0, false)
}
