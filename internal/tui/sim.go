package tui

import (
	"fmt"
	"strings"

	"github.com/tactilehq/dotwin/internal/core/braille"
	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/display"
	"github.com/tactilehq/dotwin/internal/core/input"
)

// simItem is one navigable entry of the demo document.
type simItem struct {
	label    string
	text     string
	editable bool
}

func demoItems() []simItem {
	return []simItem{
		{label: "Welcome", text: "Welcome to the dotwin simulator. Pan with the arrow keys and move between items with up and down."},
		{label: "Reading", text: "This item holds a longer passage so panning has somewhere to go.\nIt even has a second paragraph, which becomes its own line when paragraph splitting is on."},
		{label: "Name", text: "", editable: true},
		{label: "About", text: "dotwin renders text as braille cells and routes input through navigation modes."},
	}
}

// simNavigator walks the demo items and reports the focused one as
// display content.
type simNavigator struct {
	items []simItem
	pos   int
	comp  *simComposer
}

func newSimNavigator(items []simItem, comp *simComposer) *simNavigator {
	return &simNavigator{items: items, comp: comp}
}

func (n *simNavigator) item() simItem { return n.items[n.pos] }

func (n *simNavigator) Next() bool {
	if n.pos+1 >= len(n.items) {
		return false
	}
	n.pos++
	n.syncComposer()
	return true
}

func (n *simNavigator) Prev() bool {
	if n.pos == 0 {
		return false
	}
	n.pos--
	n.syncComposer()
	return true
}

func (n *simNavigator) syncComposer() {
	n.comp.editableFocused = n.item().editable
	if !n.item().editable {
		n.comp.inputFocused = false
	}
}

// Activate gives an editable item input focus; on anything else it is
// a no-op tap.
func (n *simNavigator) Activate(cur content.Cursor) bool {
	if !n.item().editable {
		return true
	}
	n.comp.editableFocused = true
	n.comp.inputFocused = true
	if cur.Kind == content.CursorText && cur.Position != content.None {
		n.comp.cursor = clampCursor(cur.Position, len(n.comp.text))
	}
	return true
}

func (n *simNavigator) LongPress(cur content.Cursor) bool {
	return false
}

func (n *simNavigator) Current() (display.Content, bool) {
	it := n.item()
	text := fmt.Sprintf("%s: %s", it.label, it.text)
	if it.editable {
		text = fmt.Sprintf("%s: %s", it.label, string(n.comp.text))
	}
	lo := len([]rune(it.label)) + 2
	return display.Content{
		Text: text,
		Spans: []display.Span{
			{Range: content.Range{Lower: 0, Upper: lo - 2}, Tag: "label-" + it.label},
			{Range: content.Range{Lower: lo, Upper: lo}, Tag: display.TagFocus},
		},
	}, true
}

func clampCursor(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// simComposer holds the demo editing session: dot chords accumulate as
// holdings, Flush commits them as braille pattern runes.
type simComposer struct {
	editableFocused bool
	inputFocused    bool

	hint     string
	text     []rune
	cursor   int
	holdings braille.Word
}

func (c *simComposer) EditableFocused() bool { return c.editableFocused }
func (c *simComposer) InputFocused() bool    { return c.inputFocused }
func (c *simComposer) Composing() bool       { return len(c.holdings) > 0 }

func (c *simComposer) AppendDots(mask int) {
	c.holdings = append(c.holdings, braille.Cell(mask))
}

func (c *simComposer) Flush() {
	if len(c.holdings) == 0 {
		return
	}
	committed := []rune(c.holdings.String())
	out := make([]rune, 0, len(c.text)+len(committed))
	out = append(out, c.text[:c.cursor]...)
	out = append(out, committed...)
	out = append(out, c.text[c.cursor:]...)
	c.text = out
	c.cursor += len(committed)
	c.holdings = nil
}

func (c *simComposer) MoveCursor(cur content.Cursor) bool {
	switch cur.Kind {
	case content.CursorText:
		c.Flush()
		c.cursor = clampCursor(cur.Position, len(c.text))
		return true
	case content.CursorHoldings:
		// Taps inside the composition buffer drop the cells after the
		// tapped one.
		if cur.Position >= 0 && cur.Position <= len(c.holdings) {
			c.holdings = c.holdings.Slice(0, cur.Position)
			return true
		}
		return false
	case content.CursorAction:
		c.Flush()
		c.inputFocused = false
		return true
	}
	return false
}

func (c *simComposer) Fields() content.Fields {
	return content.Fields{
		Hint:     c.hint,
		Text:     string(c.text),
		SelStart: c.cursor,
		SelEnd:   c.cursor,
		Holdings: c.holdings,
		Action:   "Done",
	}
}

// simWalker exposes the demo items as a flat node list for debug mode.
type simWalker struct {
	nav *simNavigator
	pos int
}

func (w *simWalker) Next() bool {
	if w.pos+1 >= len(w.nav.items) {
		return false
	}
	w.pos++
	return true
}

func (w *simWalker) Prev() bool {
	if w.pos == 0 {
		return false
	}
	w.pos--
	return true
}

func (w *simWalker) Parent() bool { return false }
func (w *simWalker) Child() bool  { return false }

func (w *simWalker) Describe() string {
	it := w.nav.items[w.pos]
	kind := "text"
	if it.editable {
		kind = "edit"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%d/%d] %s %s", w.pos+1, len(w.nav.items), kind, it.label)
	if it.text != "" {
		fmt.Fprintf(&b, ": %s", it.text)
	}
	return b.String()
}

// overflowRelay breaks the construction cycle between the display
// manager and the event manager.
type overflowRelay struct {
	em *input.EventManager
}

func (r *overflowRelay) OnPanLeftOverflow() {
	if r.em != nil {
		r.em.OnPanLeftOverflow()
	}
}

func (r *overflowRelay) OnPanRightOverflow() {
	if r.em != nil {
		r.em.OnPanRightOverflow()
	}
}
