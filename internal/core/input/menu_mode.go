package input

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/display"
)

// MenuItem is one entry of the modal menu overlay.
type MenuItem struct {
	Label string
	// Run performs the item's action; false means it was rejected.
	Run func() bool
}

// MenuMode is a modal overlay listing labeled actions on one line.
// It is installed as the switcher's override mode and closed through
// the Close callback after an item runs.
type MenuMode struct {
	log      zerolog.Logger
	display  *display.Manager
	feedback Feedback
	items    []MenuItem
	index    int

	// Close is invoked after an item ran (or on back-out); the owner
	// clears the override there.
	Close func()
}

var _ Mode = (*MenuMode)(nil)

// NewMenuMode builds a menu over items.
func NewMenuMode(log zerolog.Logger, dm *display.Manager, fb Feedback, items []MenuItem) *MenuMode {
	return &MenuMode{log: log, display: dm, feedback: fb, items: items}
}

func (m *MenuMode) Name() string { return "menu" }

// Index returns the selected item position.
func (m *MenuMode) Index() int { return m.index }

func (m *MenuMode) Activate() {
	m.index = 0
	m.show()
}

func (m *MenuMode) Deactivate() {}

// show renders all labels on one line with the selected one focused.
func (m *MenuMode) show() {
	var b strings.Builder
	spans := make([]display.Span, 0, len(m.items)+1)

	for i, it := range m.items {
		if i > 0 {
			b.WriteString("  ")
		}
		lo := len([]rune(b.String()))
		b.WriteString(it.Label)
		hi := len([]rune(b.String()))

		r := content.Range{Lower: lo, Upper: hi}
		spans = append(spans, display.Span{Range: r, Tag: itemTag(i)})
		if i == m.index {
			spans = append(spans, display.Span{Range: r, Tag: display.TagFocus})
		}
	}

	m.display.SetContent(display.Content{Text: b.String(), Spans: spans}, display.PanCursor, false)
}

func itemTag(i int) string {
	return fmt.Sprintf("menu-item-%d", i)
}

func (m *MenuMode) OnUIEvent(ev UIEvent) bool {
	// The menu is modal: UI churn underneath is invisible until close.
	return true
}

func (m *MenuMode) OnInputEvent(ev Event) bool {
	switch ev.Command {
	case CmdPanUp:
		m.display.PanLeft()
	case CmdPanDown:
		m.display.PanRight()
	case CmdNavNext:
		m.selectIndex(m.index + 1)
	case CmdNavPrev:
		m.selectIndex(m.index - 1)
	case CmdActivate:
		m.run(m.index)
	case CmdRoute:
		m.tap(ev.Argument)
	default:
		return false
	}
	return true
}

func (m *MenuMode) selectIndex(i int) {
	if len(m.items) == 0 {
		return
	}
	m.index = ((i % len(m.items)) + len(m.items)) % len(m.items)
	m.show()
}

func (m *MenuMode) run(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}
	if !m.items[i].Run() {
		m.feedback.CommandFailed()
	}
	if m.Close != nil {
		m.Close()
	}
}

// tap runs the item under a routing-key press.
func (m *MenuMode) tap(index int) {
	cur, err := m.display.MapRoutingKey(index)
	if err != nil {
		m.log.Debug().Err(err).Msg("ignoring unmappable tap")
		return
	}

	pos := 0
	for i, it := range m.items {
		if i > 0 {
			pos += 2
		}
		n := len([]rune(it.Label))
		if cur.Position >= pos && cur.Position < pos+n {
			m.run(i)
			return
		}
		pos += n
	}
}

func (m *MenuMode) OnPanLeftOverflow() bool  { return true }
func (m *MenuMode) OnPanRightOverflow() bool { return true }
