package input

import (
	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/display"
)

// Mode is one mutually exclusive consumer of input and UI events.
// OnInputEvent and OnUIEvent report whether the event was handled;
// returning false is explicit pass-through, not an error.
type Mode interface {
	Name() string
	Activate()
	Deactivate()
	OnUIEvent(ev UIEvent) bool
	OnInputEvent(ev Event) bool
	OnPanLeftOverflow() bool
	OnPanRightOverflow() bool
}

// Feedback emits audible or tactile cues. No event is ever dropped
// silently; the terminal dispatch fallback always cues.
type Feedback interface {
	UnknownCommand()
	CommandFailed()
	ModeChanged(name string)
}

// Actions performs device-global actions (home, back, recents, ...).
// A false return means the underlying performer rejected the action.
type Actions interface {
	GlobalAction(cmd Command) bool
}

// Navigator is the default mode's view of the host UI: move focus
// between items and act on the item under a tap.
type Navigator interface {
	Next() bool
	Prev() bool
	Activate(cur content.Cursor) bool
	LongPress(cur content.Cursor) bool

	// Current returns the display content for the focused item.
	Current() (display.Content, bool)
}

// Composer abstracts the text-composition session during braille text
// entry.
type Composer interface {
	// EditableFocused reports whether an editable field holds
	// accessibility focus.
	EditableFocused() bool
	// InputFocused reports whether that field also holds input focus.
	InputFocused() bool
	// Composing reports whether uncommitted holdings exist.
	Composing() bool

	AppendDots(mask int)
	// Flush commits any pending holdings to the field.
	Flush()
	MoveCursor(cur content.Cursor) bool

	// Fields returns the current editing surface for assembly.
	Fields() content.Fields
}

// TreeWalker is the debug mode's view of the UI node tree.
type TreeWalker interface {
	Next() bool
	Prev() bool
	Parent() bool
	Child() bool
	Describe() string
}
