package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyMode records lifecycle calls and answers events with a canned
// handled flag.
type spyMode struct {
	name    string
	handled bool

	calls  []string
	events []Event
}

func (s *spyMode) Name() string     { return s.name }
func (s *spyMode) Activate()        { s.calls = append(s.calls, "activate") }
func (s *spyMode) Deactivate()      { s.calls = append(s.calls, "deactivate") }
func (s *spyMode) OnUIEvent(UIEvent) bool {
	s.calls = append(s.calls, "ui")
	return s.handled
}
func (s *spyMode) OnInputEvent(ev Event) bool {
	s.events = append(s.events, ev)
	return s.handled
}
func (s *spyMode) OnPanLeftOverflow() bool  { s.calls = append(s.calls, "overflow-left"); return s.handled }
func (s *spyMode) OnPanRightOverflow() bool { s.calls = append(s.calls, "overflow-right"); return s.handled }

func TestSwitcherStartActivatesFirstMode(t *testing.T) {
	a := &spyMode{name: "a"}
	b := &spyMode{name: "b"}
	sw := NewSwitcher(zerolog.Nop(), a, b)

	assert.Same(t, Mode(a), sw.Current(), "current is defined before Start")
	assert.Empty(t, a.calls)

	sw.Start()
	assert.Equal(t, []string{"activate"}, a.calls)
	assert.Empty(t, b.calls)
}

func TestSwitcherCycleDeactivatesBeforeActivate(t *testing.T) {
	a := &spyMode{name: "a"}
	b := &spyMode{name: "b"}
	sw := NewSwitcher(zerolog.Nop(), a, b)
	sw.Start()

	next := sw.Next()
	require.Same(t, Mode(b), next)
	assert.Equal(t, []string{"activate", "deactivate"}, a.calls)
	assert.Equal(t, []string{"activate"}, b.calls)

	// Wraps around.
	sw.Next()
	assert.Same(t, Mode(a), sw.Current())
	assert.Equal(t, []string{"activate", "deactivate", "activate"}, a.calls)
}

func TestSwitcherOverride(t *testing.T) {
	a := &spyMode{name: "a"}
	b := &spyMode{name: "b"}
	over := &spyMode{name: "menu"}
	sw := NewSwitcher(zerolog.Nop(), a, b)
	sw.Start()

	sw.SetOverride(over)
	assert.Same(t, Mode(over), sw.Current())
	assert.Same(t, Mode(a), sw.Underlying())
	assert.Equal(t, []string{"activate", "deactivate"}, a.calls)
	assert.Equal(t, []string{"activate"}, over.calls)

	// Cycling moves the position but the override stays active.
	sw.Next()
	assert.Same(t, Mode(over), sw.Current())
	assert.Same(t, Mode(b), sw.Underlying())
	assert.Empty(t, b.calls, "cycled mode stays inactive behind the override")

	sw.ClearOverride()
	assert.Same(t, Mode(b), sw.Current())
	assert.Nil(t, sw.Underlying(), "no underlying without an override")
	assert.Equal(t, []string{"activate", "deactivate"}, over.calls)
	assert.Equal(t, []string{"activate"}, b.calls)
}

func TestSwitcherShutdown(t *testing.T) {
	a := &spyMode{name: "a"}
	sw := NewSwitcher(zerolog.Nop(), a)
	sw.Start()
	sw.Shutdown()
	assert.Equal(t, []string{"activate", "deactivate"}, a.calls)

	// Idempotent.
	sw.Shutdown()
	assert.Equal(t, []string{"activate", "deactivate"}, a.calls)
}
