package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Yes):
		return m.finish(true)
	case key.Matches(keyMsg, keys.No), key.Matches(keyMsg, keys.Quit):
		return m.finish(false)
	case key.Matches(keyMsg, keys.Toggle):
		m.Choice = !m.Choice
	case key.Matches(keyMsg, keys.Submit):
		return m.finish(m.Choice)
	}
	return m, nil
}

func (m ConfirmModel) finish(answer bool) (tea.Model, tea.Cmd) {
	m.Done = true
	m.Confirmed = answer
	m.Choice = answer
	return m, tea.Quit
}
