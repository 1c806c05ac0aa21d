package input

import (
	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/display"
)

// EditorState is the editor wrapper's internal condition, recomputed on
// every event that could plausibly change focus or composition status.
type EditorState int

const (
	// EditorInactive delegates everything to the wrapped mode.
	EditorInactive EditorState = iota
	// EditorTextOnly intercepts composition commands while the wrapped
	// mode keeps the display.
	EditorTextOnly
	// EditorModal takes exclusive control of the display: an editable
	// field holds both accessibility and input focus.
	EditorModal
)

var editorStateNames = map[EditorState]string{
	EditorInactive: "inactive",
	EditorTextOnly: "text-only",
	EditorModal:    "modal-editor",
}

func (s EditorState) String() string {
	if n, ok := editorStateNames[s]; ok {
		return n
	}
	return "unknown"
}

// EditorMode wraps the default mode and intercepts text-composition
// commands. Entering the modal state deactivates the wrapped mode;
// leaving it reactivates the wrapped mode and flushes any composition
// still pending.
type EditorMode struct {
	log      zerolog.Logger
	display  *display.Manager
	wrapped  Mode
	composer Composer
	feedback Feedback

	// suspended reports the hardware-keyboard-preferred condition, in
	// which the modal state is forced.
	suspended func() bool

	state  EditorState
	active bool
}

var _ Mode = (*EditorMode)(nil)

// NewEditorMode wraps a mode with editor semantics.
func NewEditorMode(log zerolog.Logger, dm *display.Manager, wrapped Mode, c Composer, fb Feedback, suspended func() bool) *EditorMode {
	if suspended == nil {
		suspended = func() bool { return false }
	}
	return &EditorMode{
		log:       log,
		display:   dm,
		wrapped:   wrapped,
		composer:  c,
		feedback:  fb,
		suspended: suspended,
	}
}

func (e *EditorMode) Name() string { return "editor" }

// State returns the editor's current internal state.
func (e *EditorMode) State() EditorState { return e.state }

func (e *EditorMode) Activate() {
	e.active = true
	e.state = EditorInactive
	e.wrapped.Activate()
	// May immediately enter the modal state, deactivating the wrapped
	// mode again.
	e.recompute()
}

func (e *EditorMode) Deactivate() {
	if e.composer.Composing() {
		e.composer.Flush()
	}
	if e.state != EditorModal {
		e.wrapped.Deactivate()
	}
	e.state = EditorInactive
	e.active = false
}

// recompute rederives the editor state from focus and composition
// status and performs the entry/exit transitions.
func (e *EditorMode) recompute() {
	if !e.active {
		return
	}

	next := EditorInactive
	switch {
	case (e.composer.EditableFocused() && e.composer.InputFocused()) || e.suspended():
		next = EditorModal
	case e.composer.InputFocused() || e.composer.Composing():
		next = EditorTextOnly
	}
	if next == e.state {
		return
	}

	prev := e.state
	e.state = next
	e.log.Debug().Stringer("from", prev).Stringer("to", next).Msg("editor state")

	if next == EditorModal {
		e.wrapped.Deactivate()
		e.refresh()
		return
	}
	if prev == EditorModal {
		e.wrapped.Activate()
		if e.composer.Composing() {
			e.composer.Flush()
		}
	}
}

// refresh re-assembles and pushes the editing surface.
func (e *EditorMode) refresh() {
	e.display.SetEditContent(e.composer.Fields())
}

func (e *EditorMode) OnUIEvent(ev UIEvent) bool {
	e.recompute()
	if e.state != EditorModal {
		return e.wrapped.OnUIEvent(ev)
	}
	switch ev.Kind {
	case UITextChanged, UISelectionChanged:
		e.refresh()
	}
	return true
}

func (e *EditorMode) OnInputEvent(ev Event) bool {
	e.recompute()

	switch e.state {
	case EditorModal:
		return e.onModalEvent(ev)
	case EditorTextOnly:
		if ev.Command == CmdDots {
			e.composer.AppendDots(ev.Argument)
			return true
		}
		return e.wrapped.OnInputEvent(ev)
	default:
		return e.wrapped.OnInputEvent(ev)
	}
}

func (e *EditorMode) onModalEvent(ev Event) bool {
	switch ev.Command {
	case CmdDots:
		e.composer.AppendDots(ev.Argument)
		e.refresh()
	case CmdRoute:
		cur, err := e.display.MapRoutingKey(ev.Argument)
		if err != nil {
			e.log.Debug().Err(err).Msg("ignoring unmappable tap")
			return true
		}
		if !e.composer.MoveCursor(cur) {
			e.feedback.CommandFailed()
			return true
		}
		e.refresh()
	case CmdActivate:
		e.composer.Flush()
		e.refresh()
	case CmdPanUp:
		e.display.PanLeft()
	case CmdPanDown:
		e.display.PanRight()
	case CmdPanToStart:
		e.display.PanToStart()
	case CmdPanToEnd:
		e.display.PanToEnd()
	default:
		return false
	}
	return true
}

// OnPanLeftOverflow is absorbed in the modal state; the editing surface
// has no neighboring item to move to.
func (e *EditorMode) OnPanLeftOverflow() bool {
	if e.state == EditorModal {
		return true
	}
	return e.wrapped.OnPanLeftOverflow()
}

func (e *EditorMode) OnPanRightOverflow() bool {
	if e.state == EditorModal {
		return true
	}
	return e.wrapped.OnPanRightOverflow()
}
