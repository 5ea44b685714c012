package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m ConfirmModel) View() string {
	if m.Done {
		answer := "no"
		if m.Confirmed {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", promptStyle.Render(m.Prompt), answer)
	}

	yes, no := unselectedStyle.Render("Yes"), selectedStyle.Render("No")
	if m.Choice {
		yes, no = selectedStyle.Render("Yes"), unselectedStyle.Render("No")
	}
	return fmt.Sprintf("%s %s %s\n", promptStyle.Render(m.Prompt), yes, no)
}

// Confirm asks a yes/no question on the given terminal streams.
func Confirm(prompt string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(NewConfirm(prompt), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, errors.Wrap(err, "confirmation prompt")
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Confirmed, nil
}
