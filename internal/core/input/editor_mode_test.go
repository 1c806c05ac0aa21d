package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactilehq/dotwin/internal/core/content"
	"github.com/tactilehq/dotwin/internal/core/display"
)

type fakeComposer struct {
	editableFocused bool
	inputFocused    bool
	composing       bool

	fields  content.Fields
	dots    []int
	flushes int
	moved   []content.Cursor
	moveOK  bool
}

func (c *fakeComposer) EditableFocused() bool { return c.editableFocused }
func (c *fakeComposer) InputFocused() bool    { return c.inputFocused }
func (c *fakeComposer) Composing() bool       { return c.composing }

func (c *fakeComposer) AppendDots(mask int) {
	c.dots = append(c.dots, mask)
	c.composing = true
}

func (c *fakeComposer) Flush() {
	c.flushes++
	c.composing = false
}

func (c *fakeComposer) MoveCursor(cur content.Cursor) bool {
	c.moved = append(c.moved, cur)
	return c.moveOK
}

func (c *fakeComposer) Fields() content.Fields { return c.fields }

func newEditorMode(suspended func() bool) (*EditorMode, *spyMode, *fakeComposer, *textRecorder, *fakeFeedback) {
	dm, rec := newTestDisplay(20)
	wrapped := &spyMode{name: "default", handled: true}
	comp := &fakeComposer{moveOK: true, fields: content.Fields{Text: "abc", SelStart: 1, SelEnd: 1}}
	fb := &fakeFeedback{}
	mode := NewEditorMode(zerolog.Nop(), dm, wrapped, comp, fb, suspended)
	return mode, wrapped, comp, rec, fb
}

func TestEditorInactiveDelegatesEverything(t *testing.T) {
	mode, wrapped, _, _, _ := newEditorMode(nil)
	mode.Activate()
	assert.Equal(t, EditorInactive, mode.State())
	assert.Equal(t, []string{"activate"}, wrapped.calls)

	assert.True(t, mode.OnInputEvent(Event{Command: CmdNavNext}))
	require.Len(t, wrapped.events, 1)

	assert.True(t, mode.OnUIEvent(UIEvent{Kind: UIFocusChanged}))
	assert.Contains(t, wrapped.calls, "ui")
}

func TestEditorEntersModalOnDualFocus(t *testing.T) {
	mode, wrapped, comp, _, _ := newEditorMode(nil)
	mode.Activate()

	comp.editableFocused = true
	comp.inputFocused = true
	assert.True(t, mode.OnUIEvent(UIEvent{Kind: UIInputFocusChanged}))

	assert.Equal(t, EditorModal, mode.State())
	assert.Equal(t, []string{"activate", "deactivate"}, wrapped.calls, "modal entry deactivates the wrapped mode")
	require.NotNil(t, mode.display.Current())
	assert.Equal(t, display.SourceIME, mode.display.Current().Source, "the editor owns the display")
}

func TestEditorLeavingModalReactivatesAndFlushes(t *testing.T) {
	mode, wrapped, comp, _, _ := newEditorMode(nil)
	mode.Activate()

	comp.editableFocused = true
	comp.inputFocused = true
	mode.OnUIEvent(UIEvent{Kind: UIInputFocusChanged})
	require.Equal(t, EditorModal, mode.State())

	// Compose something, then lose input focus.
	mode.OnInputEvent(Event{Command: CmdDots, Argument: 0b1})
	comp.inputFocused = false
	comp.editableFocused = false

	mode.OnUIEvent(UIEvent{Kind: UIInputFocusChanged})
	assert.NotEqual(t, EditorModal, mode.State())
	assert.Equal(t, []string{"activate", "deactivate", "activate"}, wrapped.calls)
	assert.Equal(t, 1, comp.flushes, "pending composition is flushed on leave")
}

func TestEditorTextOnlyInterceptsDotsOnly(t *testing.T) {
	mode, wrapped, comp, _, _ := newEditorMode(nil)
	mode.Activate()

	comp.inputFocused = true // input focus without accessibility focus
	assert.True(t, mode.OnInputEvent(Event{Command: CmdDots, Argument: 0b101}))
	assert.Equal(t, EditorTextOnly, mode.State())
	assert.Equal(t, []int{0b101}, comp.dots)
	assert.Empty(t, wrapped.events, "dots never reach the wrapped mode")

	assert.True(t, mode.OnInputEvent(Event{Command: CmdNavNext}))
	require.Len(t, wrapped.events, 1, "everything else is delegated")
}

func TestEditorModalComposition(t *testing.T) {
	mode, _, comp, rec, _ := newEditorMode(nil)
	mode.Activate()

	comp.editableFocused = true
	comp.inputFocused = true
	mode.OnInputEvent(Event{Command: CmdDots, Argument: 0b11})
	assert.Equal(t, EditorModal, mode.State())
	assert.Equal(t, []int{0b11}, comp.dots)

	frames := len(rec.texts)
	mode.OnInputEvent(Event{Command: CmdDots, Argument: 0b100})
	assert.Greater(t, len(rec.texts), frames, "each chord refreshes the surface")
}

func TestEditorModalRoutingKeyMovesCursor(t *testing.T) {
	mode, _, comp, _, fb := newEditorMode(nil)
	mode.Activate()

	comp.editableFocused = true
	comp.inputFocused = true
	mode.OnUIEvent(UIEvent{Kind: UIInputFocusChanged})

	assert.True(t, mode.OnInputEvent(Event{Command: CmdRoute, Argument: 1}))
	require.Len(t, comp.moved, 1)
	assert.Equal(t, content.CursorText, comp.moved[0].Kind)

	comp.moveOK = false
	mode.OnInputEvent(Event{Command: CmdRoute, Argument: 1})
	assert.Equal(t, 1, fb.failed)
}

func TestEditorSuspendedForcesModal(t *testing.T) {
	suspended := true
	mode, wrapped, _, _, _ := newEditorMode(func() bool { return suspended })
	mode.Activate()

	assert.Equal(t, EditorModal, mode.State())
	assert.Equal(t, []string{"activate", "deactivate"}, wrapped.calls, "forced modal on activation")

	suspended = false
	mode.OnInputEvent(Event{Command: CmdNavNext})
	assert.Equal(t, EditorInactive, mode.State())
	assert.Equal(t, []string{"activate", "deactivate", "activate"}, wrapped.calls)
}

func TestEditorModalAbsorbsOverflow(t *testing.T) {
	mode, wrapped, comp, _, _ := newEditorMode(nil)
	mode.Activate()

	comp.editableFocused = true
	comp.inputFocused = true
	mode.OnUIEvent(UIEvent{Kind: UIInputFocusChanged})

	assert.True(t, mode.OnPanLeftOverflow())
	assert.True(t, mode.OnPanRightOverflow())
	assert.NotContains(t, wrapped.calls, "overflow-left")
}
