package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Quit     key.Binding
	Devices  key.Binding
	Alerts   key.Binding
	New      key.Binding
	Delete   key.Binding
	Ping     key.Binding
	Poll     key.Binding
	Raw      key.Binding
	Refresh  key.Binding
	Settings key.Binding
	Help     key.Binding
	Tab      key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Devices:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "devices")),
	Alerts:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "alerts")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Ping:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ping")),
	Poll:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "poll now")),
	Raw:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "raw output")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
}
