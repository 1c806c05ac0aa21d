package input

import (
	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/display"
)

// DebugMode walks the raw UI node tree for developers: next/prev move
// between siblings, activate descends, long-press ascends. Each step
// shows the node description.
type DebugMode struct {
	log      zerolog.Logger
	display  *display.Manager
	walker   TreeWalker
	feedback Feedback
}

var _ Mode = (*DebugMode)(nil)

// NewDebugMode builds the developer tree walker.
func NewDebugMode(log zerolog.Logger, dm *display.Manager, w TreeWalker, fb Feedback) *DebugMode {
	return &DebugMode{log: log, display: dm, walker: w, feedback: fb}
}

func (d *DebugMode) Name() string { return "debug" }

func (d *DebugMode) Activate() {
	d.show()
}

func (d *DebugMode) Deactivate() {}

func (d *DebugMode) show() {
	d.display.SetContent(display.Content{Text: d.walker.Describe()}, display.PanReset, false)
}

func (d *DebugMode) OnUIEvent(ev UIEvent) bool {
	// The walker holds its own position; UI churn does not move it.
	return false
}

func (d *DebugMode) OnInputEvent(ev Event) bool {
	switch ev.Command {
	case CmdPanUp:
		d.display.PanLeft()
	case CmdPanDown:
		d.display.PanRight()
	case CmdNavNext:
		d.step(d.walker.Next)
	case CmdNavPrev:
		d.step(d.walker.Prev)
	case CmdActivate:
		d.step(d.walker.Child)
	case CmdLongPressRoute:
		d.step(d.walker.Parent)
	default:
		return false
	}
	return true
}

func (d *DebugMode) step(move func() bool) {
	if !move() {
		d.feedback.CommandFailed()
		return
	}
	d.show()
}

func (d *DebugMode) OnPanLeftOverflow() bool  { return false }
func (d *DebugMode) OnPanRightOverflow() bool { return false }
