// Package display owns what is currently shown on the cell array: it
// translates and assembles content, wraps it, applies cursor overlays,
// drives the blink timer, and pushes visible windows to the device
// output callback.
package display

import (
	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/content"
)

// Source identifies who produced the current content.
type Source int

const (
	// SourceDefault content is re-translated automatically when the
	// active translation table changes.
	SourceDefault Source = iota
	// SourceIME content is owned by the editor, which re-pushes on its
	// own changes.
	SourceIME
)

// PanStrategy selects where the visible window lands after new content
// is installed.
type PanStrategy int

const (
	// PanReset always starts at offset zero.
	PanReset PanStrategy = iota
	// PanCursor positions the window over the first selection or focus
	// marker, falling back to PanReset.
	PanCursor
	// PanKeep re-uses the previous offset by matching a stable anchor
	// tag between old and new content, falling back to PanCursor.
	PanKeep
)

// Well-known span tags.
const (
	TagSelection = "selection"
	TagFocus     = "focus"
)

// Span tags a rune range of content text, replacing platform-typed
// text spans with an explicit side table.
type Span struct {
	Range content.Range
	Tag   string
}

// Content is plain (non-editing) display content: text plus its span
// side table.
type Content struct {
	Text  string
	Spans []Span
}

// marker returns the first selection or focus span.
func (c Content) marker() (Span, bool) {
	for _, s := range c.Spans {
		if s.Tag == TagSelection || s.Tag == TagFocus {
			return s, true
		}
	}
	return Span{}, false
}

// spanByTag finds a span by exact tag.
func (c Content) spanByTag(tag string) (Span, bool) {
	for _, s := range c.Spans {
		if s.Tag == tag {
			return s, true
		}
	}
	return Span{}, false
}

// Info is an immutable snapshot of renderable display state. Cells is
// the full untrimmed buffer; Overlaid is the same buffer with the
// cursor/selection dots raised. The visible subset is a window into
// either, chosen by the blink phase.
type Info struct {
	Cells      braille.Word
	Overlaid   braille.Word
	Text       string
	CellToText []int
	Blink      bool
	Source     Source
}
