package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// Loading is a spinner with a message, shown while content is generated.
type Loading struct {
	spinner spinner.Model
	Message string
}

// NewLoading creates a Loading indicator.
func NewLoading(message string) Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Loading{spinner: s, Message: message}
}

// Tick starts the spinner animation.
func (l Loading) Tick() tea.Msg {
	return l.spinner.Tick()
}

// Update advances the spinner on its own tick messages.
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the spinner and message.
func (l Loading) View() string {
	return l.spinner.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(l.Message)
}
