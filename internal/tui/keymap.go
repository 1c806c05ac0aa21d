package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the simulator's own bindings; everything else is routed
// through the configured engine keymap.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Menu       key.Binding
	Suspend    key.Binding
	RouteLeft  key.Binding
	RouteRight key.Binding
	RouteTap   key.Binding
	RouteHold  key.Binding
	Dots       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Suspend:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "suspend braille input")),
		RouteLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "routing key left")),
		RouteRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "routing key right")),
		RouteTap:   key.NewBinding(key.WithKeys("."), key.WithHelp(".", "press routing key")),
		RouteHold:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "long-press routing key")),
		Dots:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "braille dot chord")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Menu, k.RouteTap, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.Menu, k.Suspend, k.Quit},
		{k.RouteLeft, k.RouteRight, k.RouteTap, k.RouteHold},
		{k.Dots},
	}
}
