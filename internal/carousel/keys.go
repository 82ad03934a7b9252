package carousel

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keyboard affordances of a focused carousel. Prev and
// Next act like the on-screen buttons: they move immediately and leave the
// auto-advance cadence alone.
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Activate key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Activate}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
