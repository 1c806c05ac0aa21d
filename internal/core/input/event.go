// Package input routes physical display input through a mode state
// machine: an ordered dispatch chain hands each event to global
// handlers, high-priority handlers, the current mode and finally an
// unknown-command cue, stopping at the first consumer.
package input

// Command identifies a mapped input command from the device keymap.
type Command int

const (
	CmdNone Command = iota

	// Panning.
	CmdPanUp
	CmdPanDown
	CmdPanToStart
	CmdPanToEnd

	// Per-cell routing keys; Argument carries the display cell index.
	CmdRoute
	CmdLongPressRoute

	// Braille keyboard chord; Argument carries the dot bitmask.
	CmdDots

	// Navigation within the current mode.
	CmdNavNext
	CmdNavPrev
	CmdActivate

	// High-priority: work in any mode.
	CmdToggleAutoScroll
	CmdSwitchMode

	// Globals: intercepted before mode dispatch, never delegated.
	CmdGlobalHome
	CmdGlobalBack
	CmdGlobalRecents
	CmdGlobalNotifications
	CmdGlobalHelp
	CmdGlobalSettings
)

var commandNames = map[Command]string{
	CmdNone:                "none",
	CmdPanUp:               "pan-up",
	CmdPanDown:             "pan-down",
	CmdPanToStart:          "pan-to-start",
	CmdPanToEnd:            "pan-to-end",
	CmdRoute:               "route",
	CmdLongPressRoute:      "long-press-route",
	CmdDots:                "dots",
	CmdNavNext:             "nav-next",
	CmdNavPrev:             "nav-prev",
	CmdActivate:            "activate",
	CmdToggleAutoScroll:    "toggle-auto-scroll",
	CmdSwitchMode:          "switch-mode",
	CmdGlobalHome:          "global-home",
	CmdGlobalBack:          "global-back",
	CmdGlobalRecents:       "global-recents",
	CmdGlobalNotifications: "global-notifications",
	CmdGlobalHelp:          "global-help",
	CmdGlobalSettings:      "global-settings",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// CommandFromName resolves a keymap command name.
func CommandFromName(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CmdNone, false
}

// Global reports whether the command is a device-global action that the
// event manager owns regardless of mode.
func (c Command) Global() bool {
	return c >= CmdGlobalHome && c <= CmdGlobalSettings
}

// Pan reports whether the command moves the visible window.
func (c Command) Pan() bool {
	return c >= CmdPanUp && c <= CmdPanToEnd
}

// Event is one mapped input event. Argument carries a display-relative
// routing-key index for routing commands or a dot-chord bitmask for
// braille-key commands; it is zero otherwise.
type Event struct {
	Command  Command
	Argument int
}

// UIEventKind classifies accessibility-change events from the host UI.
type UIEventKind int

const (
	UIFocusChanged UIEventKind = iota
	UIInputFocusChanged
	UITextChanged
	UISelectionChanged
	UIWindowChanged
)

var uiEventNames = map[UIEventKind]string{
	UIFocusChanged:      "focus-changed",
	UIInputFocusChanged: "input-focus-changed",
	UITextChanged:       "text-changed",
	UISelectionChanged:  "selection-changed",
	UIWindowChanged:     "window-changed",
}

func (k UIEventKind) String() string {
	if n, ok := uiEventNames[k]; ok {
		return n
	}
	return "unknown"
}

// UIEvent is an accessibility-change notification delivered to modes.
type UIEvent struct {
	Kind UIEventKind
}
