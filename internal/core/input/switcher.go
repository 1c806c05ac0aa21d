package input

import "github.com/rs/zerolog"

// Switcher owns the ordered list of cyclable modes plus an optional
// override mode. Exactly one mode is active at a time; every switch
// deactivates the old mode before activating the new one. Setting an
// override never moves the cycle position.
type Switcher struct {
	log      zerolog.Logger
	modes    []Mode
	pos      int
	override Mode
	started  bool
}

// NewSwitcher builds a switcher over modes; the first entry is the
// initial mode. Start must be called before dispatching.
func NewSwitcher(log zerolog.Logger, modes ...Mode) *Switcher {
	return &Switcher{log: log, modes: modes}
}

// Start activates the initial mode.
func (s *Switcher) Start() {
	if s.started || len(s.modes) == 0 {
		return
	}
	s.started = true
	s.Current().Activate()
}

// Current returns the active mode: the override when one is set, else
// the cycled mode.
func (s *Switcher) Current() Mode {
	if s.override != nil {
		return s.override
	}
	return s.cycled()
}

func (s *Switcher) cycled() Mode {
	if len(s.modes) == 0 {
		return nil
	}
	return s.modes[s.pos]
}

// Underlying returns the cycled mode even while an override is active,
// or nil when no override is set (the current mode already is the
// cycled one, and dispatching to it twice would double-handle).
func (s *Switcher) Underlying() Mode {
	if s.override == nil {
		return nil
	}
	return s.cycled()
}

// Next advances the cycle position. While an override is active the
// position still moves, but the active mode stays the override.
func (s *Switcher) Next() Mode {
	if len(s.modes) == 0 {
		return nil
	}
	prev := s.Current()
	s.pos = (s.pos + 1) % len(s.modes)
	next := s.Current()
	if s.started && prev != next {
		prev.Deactivate()
		next.Activate()
	}
	s.log.Debug().Str("mode", next.Name()).Msg("mode cycled")
	return next
}

// SetOverride installs m as the override mode, deactivating whatever
// was active. A nil m clears the override, reactivating the cycled
// mode.
func (s *Switcher) SetOverride(m Mode) {
	prev := s.Current()
	s.override = m
	next := s.Current()
	if !s.started || prev == next {
		return
	}
	if prev != nil {
		prev.Deactivate()
	}
	if next != nil {
		next.Activate()
	}
}

// ClearOverride removes the override mode.
func (s *Switcher) ClearOverride() {
	s.SetOverride(nil)
}

// Shutdown deactivates the active mode.
func (s *Switcher) Shutdown() {
	if !s.started {
		return
	}
	if m := s.Current(); m != nil {
		m.Deactivate()
	}
	s.started = false
}
