// Package tui is a terminal simulator for the display engine: it
// renders the visible cell window as Unicode braille and feeds mapped
// keyboard input through the event manager, standing in for a physical
// display and its transport.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/config"
	"github.com/tactilehq/dotwin/internal/core/display"
	"github.com/tactilehq/dotwin/internal/core/input"
	"github.com/tactilehq/dotwin/internal/core/sched"
	"github.com/tactilehq/dotwin/internal/core/translate"
)

const tickInterval = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")).Padding(0, 1)
	rulerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model drives the simulator. It is the device end of the engine: the
// display manager pushes frames into it, and it feeds events back.
type Model struct {
	log      zerolog.Logger
	cfg      *config.Config
	registry *translate.Registry

	queue *sched.Queue
	dm    *display.Manager
	em    *input.EventManager
	sw    *input.Switcher
	comp  *simComposer
	menu  *input.MenuMode

	keymap map[string]input.Command
	keys   keyMap
	help   help.Model

	// Last frame received from the display manager.
	cells []byte
	text  string

	routeIdx int
	cue      string
	termW    int
}

// New assembles the full engine around a simulator device.
func New(log zerolog.Logger, cfg *config.Config, registry *translate.Registry) *Model {
	m := &Model{
		log:      log,
		cfg:      cfg,
		registry: registry,
		queue:    sched.NewQueue(),
		keymap:   cfg.Commands(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.queue.Advance(time.Now())

	relay := &overflowRelay{}
	m.dm = display.NewManager(display.Config{
		Width:         cfg.Display.Width,
		BlinkInterval: cfg.Display.BlinkInterval(),
		FlashBase:     cfg.Display.FlashBase(),
		FlashPerCell:  cfg.Display.FlashPerCell(),
	}, registry, m, relay, m.queue, log)

	m.comp = &simComposer{hint: "Name"}
	nav := newSimNavigator(demoItems(), m.comp)
	walker := &simWalker{nav: nav}

	defaultMode := input.NewDefaultMode(log, m.dm, nav, m, cfg.Display.SplitParagraphs)
	editor := input.NewEditorMode(log, m.dm, defaultMode, m.comp, m, func() bool {
		return m.em != nil && m.em.Suspended()
	})
	debug := input.NewDebugMode(log, m.dm, walker, m)

	m.sw = input.NewSwitcher(log, editor, debug)
	m.em = input.NewEventManager(log, m.sw, m, m)
	m.em.OnAutoScroll = func(on bool) {
		m.dm.FlashMessage(fmt.Sprintf("auto-scroll %s", onOff(on)))
	}
	relay.em = m.em

	m.menu = m.buildMenu()

	registry.OnChange(func(id string) {
		m.dm.OnTranslationTableChanged()
		m.dm.FlashMessage("table: " + id)
	})

	m.sw.Start()
	return m
}

// buildMenu lists every known table plus a suspend toggle.
func (m *Model) buildMenu() *input.MenuMode {
	var items []input.MenuItem
	for _, t := range m.registry.List() {
		id := t.ID
		items = append(items, input.MenuItem{
			Label: id,
			Run:   func() bool { return m.registry.SetActive(id) == nil },
		})
	}
	items = append(items, input.MenuItem{
		Label: "suspend",
		Run: func() bool {
			m.em.Suspend()
			return true
		},
	})

	menu := input.NewMenuMode(m.log, m.dm, m, items)
	menu.Close = func() { m.sw.ClearOverride() }
	return menu
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// DisplayDots implements display.Displayer.
func (m *Model) DisplayDots(cells []byte, text string, _ []int) {
	m.cells = append(m.cells[:0], cells...)
	m.text = text
}

// UnknownCommand implements input.Feedback.
func (m *Model) UnknownCommand() { m.cue = "unknown command" }

// CommandFailed implements input.Feedback.
func (m *Model) CommandFailed() { m.cue = "command failed" }

// ModeChanged implements input.Feedback.
func (m *Model) ModeChanged(name string) { m.cue = "mode: " + name }

// GlobalAction implements input.Actions. The simulator has no host OS
// behind it; back drops input focus, the rest just acknowledge.
func (m *Model) GlobalAction(cmd input.Command) bool {
	if cmd == input.CmdGlobalBack {
		m.comp.inputFocused = false
	}
	m.cue = cmd.String()
	return true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.queue.Advance(time.Time(msg))
		return m, tick()

	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dm.Shutdown()
		m.sw.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Menu):
		m.sw.SetOverride(m.menu)
		return m, nil

	case key.Matches(msg, m.keys.Suspend):
		m.em.Suspend()
		m.cue = "suspended; send a dot chord to resume"
		return m, nil

	case key.Matches(msg, m.keys.RouteLeft):
		if m.routeIdx > 0 {
			m.routeIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.RouteRight):
		if m.routeIdx < m.cfg.Display.Width-1 {
			m.routeIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.RouteTap):
		m.em.OnInputEvent(input.Event{Command: input.CmdRoute, Argument: m.routeIdx})
		return m, nil

	case key.Matches(msg, m.keys.RouteHold):
		m.em.OnInputEvent(input.Event{Command: input.CmdLongPressRoute, Argument: m.routeIdx})
		return m, nil

	case key.Matches(msg, m.keys.Dots):
		dot := int(msg.String()[0] - '1')
		m.em.OnInputEvent(input.Event{Command: input.CmdDots, Argument: 1 << dot})
		return m, nil
	}

	if cmd, ok := m.keymap[msg.String()]; ok {
		m.cue = ""
		m.em.OnInputEvent(input.Event{Command: cmd})
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("dotwin (%d cells)", m.cfg.Display.Width)))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, cellStyle.Render(m.brailleRow()))
	fmt.Fprintln(&b, rulerStyle.Render(m.rulerRow()))
	fmt.Fprintln(&b, textStyle.Render(m.text))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, statusStyle.Render(m.statusRow()))
	if m.cue != "" {
		fmt.Fprintln(&b, cueStyle.Render("♪ "+m.cue))
	}
	fmt.Fprintln(&b)
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// brailleRow renders the last frame padded to the device width.
func (m *Model) brailleRow() string {
	var b strings.Builder
	for _, c := range m.cells {
		b.WriteRune(rune(0x2800 + int(c)))
	}
	for i := len(m.cells); i < m.cfg.Display.Width; i++ {
		b.WriteRune('⠀')
	}
	return b.String()
}

// rulerRow marks the virtual routing-key position.
func (m *Model) rulerRow() string {
	var b strings.Builder
	b.WriteString(" ") // cell row padding
	for i := 0; i < m.cfg.Display.Width; i++ {
		if i == m.routeIdx {
			b.WriteByte('^')
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func (m *Model) statusRow() string {
	parts := []string{
		"mode: " + m.sw.Current().Name(),
		"table: " + m.registry.ActiveID(),
	}
	if m.em.Suspended() {
		parts = append(parts, "suspended")
	}
	if m.em.AutoScroll() {
		parts = append(parts, "auto-scroll")
	}
	return strings.Join(parts, "  |  ")
}
