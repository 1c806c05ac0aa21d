package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactilehq/dotwin/internal/core/config"
	"github.com/tactilehq/dotwin/internal/core/input"
	"github.com/tactilehq/dotwin/internal/core/translate"
	"github.com/tactilehq/dotwin/pkg/tuitest"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	reg, err := translate.NewRegistry(zerolog.Nop())
	require.NoError(t, err)
	cfg := config.DefaultConfig()
	return New(zerolog.Nop(), &cfg, reg)
}

func TestModelShowsFirstItemOnStart(t *testing.T) {
	m := newTestModel(t)
	assert.NotEmpty(t, m.cells, "start pushes a frame")
	assert.Contains(t, m.text, "Welcome")
}

func TestModelRoutesKeymapCommands(t *testing.T) {
	m := newTestModel(t)

	before := append([]byte(nil), m.cells...)
	_, _ = m.Update(tuitest.Key(tea.KeyRight)) // pan-down
	assert.NotEqual(t, before, m.cells, "panning changes the visible window")

	_, _ = m.Update(tuitest.KeyDown()) // nav-next
	assert.Contains(t, m.text, "Reading")
}

func TestModelUnknownKeyIsIgnored(t *testing.T) {
	m := newTestModel(t)
	before := append([]byte(nil), m.cells...)
	_, _ = m.Update(tuitest.KeyRune('z'))
	assert.Equal(t, before, m.cells)
}

func TestModelSuspendAndChordResume(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(tuitest.Key(tea.KeyCtrlS))
	assert.True(t, m.em.Suspended())

	// The first chord only resumes.
	_, _ = m.Update(tuitest.KeyRune('3'))
	assert.False(t, m.em.Suspended())
}

func TestModelMenuOverride(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(tuitest.KeyRune('m'))
	assert.Equal(t, "menu", m.sw.Current().Name())
	assert.Contains(t, m.text, "en-comp8", "menu lists the builtin tables")

	// Running an item switches the table and closes the menu.
	_, _ = m.Update(tuitest.KeyDown())  // nav-next
	_, _ = m.Update(tuitest.KeyEnter()) // activate
	assert.NotEqual(t, "menu", m.sw.Current().Name())
	assert.Equal(t, "en-g2", m.registry.ActiveID())
}

func TestModelTickPumpsTimers(t *testing.T) {
	m := newTestModel(t)

	// Arm the blink by entering the editable item.
	_, _ = m.Update(tuitest.KeyDown())
	_, _ = m.Update(tuitest.KeyDown()) // "Name" (editable)
	_, _ = m.Update(tuitest.KeyEnter())

	_, cmd := m.Update(tickMsg(time.Now().Add(time.Second)))
	assert.NotNil(t, cmd, "tick reschedules itself")
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel(t)
	v := tuitest.StripANSI(m.View())
	assert.Contains(t, v, "dotwin")
	assert.Contains(t, v, "mode: editor")
}

func TestModelDotChordEntersComposition(t *testing.T) {
	m := newTestModel(t)

	// Focus and enter the editable item.
	_, _ = m.Update(tuitest.KeyDown())
	_, _ = m.Update(tuitest.KeyDown())
	_, _ = m.Update(tuitest.KeyEnter())

	_, _ = m.Update(tuitest.KeyRune('1'))
	assert.True(t, m.comp.Composing())
	assert.Equal(t, input.CmdDots.String(), "dots") // keymap sanity
}
