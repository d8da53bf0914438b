package introwizard

import "charm.land/bubbles/v2/key"

// KeyMap holds the wizard key bindings.
type KeyMap struct {
	Next      key.Binding
	Back      key.Binding
	Yes       key.Binding
	No        key.Binding
	Skip      key.Binding
	Exit      key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "enter"),
			key.WithHelp("→/enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "skip"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
