package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// OptionLabels prefixes the options of a question.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders the options of one question. Before the answer is
// submitted the selection is highlighted; afterwards the correct option
// is shown in green and a wrong selection in red.
type MultiChoice struct {
	Options  []string
	Selected int // -1 when nothing is selected
	Correct  int // -1 when unknown
	Answered bool
	Width    int
}

// View renders one bordered row per option.
func (m MultiChoice) View() string {
	rows := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}

		style := lipgloss.NewStyle().
			Width(m.Width).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

		marker := "  "
		switch {
		case m.Answered && i == m.Correct:
			style = style.Foreground(theme.Success).BorderForeground(theme.Success).Bold(true)
			marker = "✓ "
		case m.Answered && i == m.Selected:
			style = style.Foreground(theme.Error).BorderForeground(theme.Error).Bold(true)
			marker = "✗ "
		case m.Answered:
			style = style.Foreground(theme.TextDim).BorderForeground(theme.BgInput)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).BorderForeground(theme.Primary).Bold(true)
			marker = "▸ "
		default:
			style = style.Foreground(theme.Text).BorderForeground(theme.Border)
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s)  %s", marker, label, opt)))
	}
	return strings.Join(rows, "\n")
}
