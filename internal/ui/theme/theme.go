package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: blue and purple accents on deep slate.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#A855F7") // Purple
	Accent    = lipgloss.Color("#FACC15") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	TextFaint = lipgloss.Color("#64748B") // Muted slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	BgInput   = lipgloss.Color("#334155") // Input slate
	Border    = lipgloss.Color("#475569") // Slate
)

// ConfettiColors are cycled by the results celebration.
var ConfettiColors = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(Primary),
	lipgloss.NewStyle().Foreground(Secondary),
	lipgloss.NewStyle().Foreground(Accent),
	lipgloss.NewStyle().Foreground(Success),
	lipgloss.NewStyle().Foreground(Error),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Label = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Faint = lipgloss.NewStyle().
		Foreground(TextFaint)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	CardFocused = Card.
			BorderForeground(Primary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
