package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	Refresh   key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	PickImage key.Binding
	Retry     key.Binding
	Dismiss   key.Binding
}

var Keys = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "down")),
	Home:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	PickImage: key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "set image")),
	Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Dismiss:   key.NewBinding(key.WithKeys("esc", "o"), key.WithHelp("esc", "dismiss")),
}

// helpFor returns the bindings worth showing for the given screen.
func helpFor(listing, failed bool) []key.Binding {
	switch {
	case failed:
		return []key.Binding{Keys.Retry, Keys.Dismiss, Keys.Quit}
	case listing:
		return []key.Binding{Keys.Down, Keys.Up, Keys.PickImage, Keys.Refresh, Keys.Quit}
	default:
		return []key.Binding{Keys.Refresh, Keys.Quit}
	}
}
