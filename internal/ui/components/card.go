package components

import (
	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// Card wraps content in a rounded-border card at the given outer width.
func Card(content string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.CardFocused
	}
	return style.
		Width(width).
		Render(content)
}

// Button renders a fixed-width button. Disabled buttons are dimmed and
// never shown as selected.
func Button(label string, selected, disabled bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case disabled:
		return style.
			Foreground(theme.TextFaint).
			BorderForeground(theme.BgInput).
			Render(label)
	case selected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			BorderForeground(theme.Primary).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
