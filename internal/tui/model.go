package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings of the confirmation prompt.
type KeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var keys = KeyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc", "q")),
}

// ConfirmModel holds the state of a yes/no prompt.
type ConfirmModel struct {
	Prompt string

	// UI State
	Choice    bool // currently highlighted answer
	Done      bool
	Confirmed bool
}

// NewConfirm returns a prompt defaulting to "no".
func NewConfirm(prompt string) ConfirmModel {
	return ConfirmModel{Prompt: prompt}
}
