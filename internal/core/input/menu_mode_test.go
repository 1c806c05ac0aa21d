package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuMode(width int, ran *[]string, ok bool) (*MenuMode, *textRecorder, *fakeFeedback) {
	dm, rec := newTestDisplay(width)
	fb := &fakeFeedback{}
	items := []MenuItem{
		{Label: "rename", Run: func() bool { *ran = append(*ran, "rename"); return ok }},
		{Label: "delete", Run: func() bool { *ran = append(*ran, "delete"); return ok }},
		{Label: "help", Run: func() bool { *ran = append(*ran, "help"); return ok }},
	}
	return NewMenuMode(zerolog.Nop(), dm, fb, items), rec, fb
}

func TestMenuModeShowsAllLabels(t *testing.T) {
	var ran []string
	mode, rec, _ := newMenuMode(40, &ran, true)
	mode.Activate()

	assert.Equal(t, "rename  delete  help", rec.lastText(t))
	assert.Equal(t, 0, mode.Index())
}

func TestMenuModeNavigationWraps(t *testing.T) {
	var ran []string
	mode, _, _ := newMenuMode(40, &ran, true)
	mode.Activate()

	mode.OnInputEvent(Event{Command: CmdNavNext})
	assert.Equal(t, 1, mode.Index())

	mode.OnInputEvent(Event{Command: CmdNavPrev})
	mode.OnInputEvent(Event{Command: CmdNavPrev})
	assert.Equal(t, 2, mode.Index(), "selection wraps around")
}

func TestMenuModeActivateRunsAndCloses(t *testing.T) {
	var ran []string
	mode, _, fb := newMenuMode(40, &ran, true)
	closed := 0
	mode.Close = func() { closed++ }
	mode.Activate()

	mode.OnInputEvent(Event{Command: CmdNavNext})
	assert.True(t, mode.OnInputEvent(Event{Command: CmdActivate}))
	assert.Equal(t, []string{"delete"}, ran)
	assert.Equal(t, 1, closed)
	assert.Zero(t, fb.failed)
}

func TestMenuModeRejectedItemCues(t *testing.T) {
	var ran []string
	mode, _, fb := newMenuMode(40, &ran, false)
	mode.Activate()

	mode.OnInputEvent(Event{Command: CmdActivate})
	assert.Equal(t, 1, fb.failed)
}

func TestMenuModeTapRunsItemUnderKey(t *testing.T) {
	var ran []string
	mode, _, _ := newMenuMode(40, &ran, true)
	mode.Activate()

	// "rename  delete  help": "delete" occupies cells 8..13.
	require.True(t, mode.OnInputEvent(Event{Command: CmdRoute, Argument: 10}))
	assert.Equal(t, []string{"delete"}, ran)

	// A tap on the separator runs nothing.
	mode.OnInputEvent(Event{Command: CmdRoute, Argument: 7})
	assert.Equal(t, []string{"delete"}, ran)
}

func TestMenuModeSwallowsUIEvents(t *testing.T) {
	var ran []string
	mode, _, _ := newMenuMode(40, &ran, true)
	mode.Activate()
	assert.True(t, mode.OnUIEvent(UIEvent{Kind: UITextChanged}))
}
