package input

import (
	"github.com/rs/zerolog"

	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/display"
)

// DefaultMode is the ordinary reading mode: item navigation through the
// host UI plus window panning. Routing-key taps activate the tapped
// position.
type DefaultMode struct {
	log      zerolog.Logger
	display  *display.Manager
	nav      Navigator
	feedback Feedback

	splitParagraphs bool
}

var _ Mode = (*DefaultMode)(nil)

// NewDefaultMode builds the reading mode.
func NewDefaultMode(log zerolog.Logger, dm *display.Manager, nav Navigator, fb Feedback, splitParagraphs bool) *DefaultMode {
	return &DefaultMode{
		log:             log,
		display:         dm,
		nav:             nav,
		feedback:        fb,
		splitParagraphs: splitParagraphs,
	}
}

func (d *DefaultMode) Name() string { return "default" }

func (d *DefaultMode) Activate() {
	d.show(display.PanReset)
}

func (d *DefaultMode) Deactivate() {}

func (d *DefaultMode) show(pan display.PanStrategy) {
	c, ok := d.nav.Current()
	if !ok {
		return
	}
	d.display.SetContent(c, pan, d.splitParagraphs)
}

func (d *DefaultMode) OnUIEvent(ev UIEvent) bool {
	switch ev.Kind {
	case UIFocusChanged, UIWindowChanged:
		d.show(display.PanCursor)
	case UITextChanged, UISelectionChanged:
		d.show(display.PanKeep)
	default:
		return false
	}
	return true
}

func (d *DefaultMode) OnInputEvent(ev Event) bool {
	switch ev.Command {
	case CmdPanUp:
		d.display.PanLeft()
	case CmdPanDown:
		d.display.PanRight()
	case CmdPanToStart:
		d.display.PanToStart()
	case CmdPanToEnd:
		d.display.PanToEnd()
	case CmdNavNext:
		d.move(d.nav.Next)
	case CmdNavPrev:
		d.move(d.nav.Prev)
	case CmdActivate:
		if !d.nav.Activate(content.Cursor{Position: content.None, Kind: content.CursorText}) {
			d.feedback.CommandFailed()
		}
	case CmdRoute:
		d.tap(ev.Argument, d.nav.Activate)
	case CmdLongPressRoute:
		d.tap(ev.Argument, d.nav.LongPress)
	default:
		return false
	}
	return true
}

func (d *DefaultMode) move(step func() bool) {
	if !step() {
		d.feedback.CommandFailed()
		return
	}
	d.show(display.PanCursor)
}

// tap resolves a routing-key index and applies act. Unmappable taps
// are consumed without a cue.
func (d *DefaultMode) tap(index int, act func(content.Cursor) bool) {
	cur, err := d.display.MapRoutingKey(index)
	if err != nil {
		d.log.Debug().Err(err).Int("index", index).Msg("ignoring unmappable tap")
		return
	}
	if !act(cur) {
		d.feedback.CommandFailed()
	}
}

// OnPanLeftOverflow moves focus to the previous item.
func (d *DefaultMode) OnPanLeftOverflow() bool {
	if !d.nav.Prev() {
		return false
	}
	d.show(display.PanCursor)
	return true
}

// OnPanRightOverflow moves focus to the next item.
func (d *DefaultMode) OnPanRightOverflow() bool {
	if !d.nav.Next() {
		return false
	}
	d.show(display.PanReset)
	return true
}
