package tui

import "github.com/charmbracelet/bubbles/key"

// Letters are typed into the form, so every global binding is a control
// or navigation key
type KeyMap struct {
	Quit key.Binding

	// Movement
	Next key.Binding
	Prev key.Binding

	// Actions
	Select  key.Binding
	Print   key.Binding
	Remove  key.Binding
	Dismiss key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
	Print:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "print")),
	Remove:  key.NewBinding(key.WithKeys("delete", "backspace", "d"), key.WithHelp("del", "remove item")),
	Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "close")),
}
