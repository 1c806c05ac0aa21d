package input

import "github.com/rs/zerolog"

// EventManager is the single entry point for mapped input events. It
// evaluates an ordered chain of handler stages and stops at the first
// one that consumes the event: globals, the suspended gate,
// high-priority commands, the current mode, the overridden cycled
// mode, and finally the unknown-command cue.
type EventManager struct {
	log      zerolog.Logger
	switcher *Switcher
	actions  Actions
	feedback Feedback

	// suspended means a hardware keyboard is preferred over on-display
	// braille entry: dot chords act as a resume signal instead of
	// keystrokes.
	suspended bool

	autoScroll bool

	// OnAutoScroll, when set, is notified of auto-scroll toggles.
	OnAutoScroll func(on bool)
}

// NewEventManager wires the dispatch chain.
func NewEventManager(log zerolog.Logger, sw *Switcher, actions Actions, fb Feedback) *EventManager {
	return &EventManager{
		log:      log,
		switcher: sw,
		actions:  actions,
		feedback: fb,
	}
}

// Suspended reports whether dot-chord input is currently diverted.
func (m *EventManager) Suspended() bool {
	return m.suspended
}

// Suspend diverts braille input to the hardware keyboard until a
// resume signal arrives.
func (m *EventManager) Suspend() {
	m.suspended = true
}

// Resume restores normal braille input routing.
func (m *EventManager) Resume() {
	m.suspended = false
}

// AutoScroll reports the auto-scroll toggle state.
func (m *EventManager) AutoScroll() bool {
	return m.autoScroll
}

// OnInputEvent dispatches one mapped event. It always reports true:
// every event ends in a handler or in a cue, never dropped.
func (m *EventManager) OnInputEvent(ev Event) bool {
	m.log.Debug().Stringer("command", ev.Command).Int("argument", ev.Argument).Msg("input event")

	// Globals own the event regardless of success.
	if ev.Command.Global() {
		if m.actions == nil || !m.actions.GlobalAction(ev.Command) {
			m.feedback.CommandFailed()
		}
		return true
	}

	if m.suspended {
		switch {
		case ev.Command == CmdDots:
			// A chord is the resume signal; it is not a keystroke.
			m.suspended = false
			return true
		case ev.Command == CmdPanUp || ev.Command == CmdPanDown:
			// Reading continues while suspended.
		case ev.Command.Pan():
			m.suspended = false
		}
	}

	if m.handleHighPriority(ev) {
		return true
	}

	if cur := m.switcher.Current(); cur != nil && cur.OnInputEvent(ev) {
		return true
	}
	if under := m.switcher.Underlying(); under != nil && under.OnInputEvent(ev) {
		return true
	}

	m.feedback.UnknownCommand()
	return true
}

// handleHighPriority consumes the commands that work in any mode.
func (m *EventManager) handleHighPriority(ev Event) bool {
	switch ev.Command {
	case CmdToggleAutoScroll:
		m.autoScroll = !m.autoScroll
		if m.OnAutoScroll != nil {
			m.OnAutoScroll(m.autoScroll)
		}
		return true
	case CmdSwitchMode:
		next := m.switcher.Next()
		if next != nil {
			m.feedback.ModeChanged(next.Name())
		}
		return true
	}
	return false
}

// OnUIEvent delivers an accessibility-change event to the active mode,
// falling through to the overridden cycled mode.
func (m *EventManager) OnUIEvent(ev UIEvent) bool {
	if cur := m.switcher.Current(); cur != nil && cur.OnUIEvent(ev) {
		return true
	}
	if under := m.switcher.Underlying(); under != nil && under.OnUIEvent(ev) {
		return true
	}
	return false
}

// OnPanLeftOverflow forwards a pan-past-start to the active mode.
func (m *EventManager) OnPanLeftOverflow() {
	if cur := m.switcher.Current(); cur != nil && cur.OnPanLeftOverflow() {
		return
	}
	if under := m.switcher.Underlying(); under != nil {
		under.OnPanLeftOverflow()
	}
}

// OnPanRightOverflow forwards a pan-past-end to the active mode.
func (m *EventManager) OnPanRightOverflow() {
	if cur := m.switcher.Current(); cur != nil && cur.OnPanRightOverflow() {
		return
	}
	if under := m.switcher.Underlying(); under != nil {
		under.OnPanRightOverflow()
	}
}
