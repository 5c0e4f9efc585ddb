// Package unavailable is shown in place of a study screen when no LLM
// provider is configured.
package unavailable

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// DefaultHint tells the user how to enable generation.
const DefaultHint = "Set GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY (or FLASHY_LLM_PROVIDER) and restart Flashy."

// UnavailableScreen explains why content cannot be generated.
type UnavailableScreen struct {
	title string
	hint  string
}

var _ screen.Screen = (*UnavailableScreen)(nil)
var _ screen.KeyHintProvider = (*UnavailableScreen)(nil)

// New creates an UnavailableScreen titled title. An empty hint uses
// DefaultHint.
func New(title, hint string) *UnavailableScreen {
	if hint == "" {
		hint = DefaultHint
	}
	return &UnavailableScreen{title: title, hint: hint}
}

func (u *UnavailableScreen) Init() tea.Cmd {
	return nil
}

func (u *UnavailableScreen) Title() string {
	return u.title
}

func (u *UnavailableScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Back"}}
}

func (u *UnavailableScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return u, screens.Back
	}
	return u, nil
}

func (u *UnavailableScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("AI unavailable"),
		"",
		theme.Subtitle.Render(wordwrap.String("No LLM provider is configured, so flashcards and quizzes cannot be generated.", cw-6)),
		"",
		theme.Body.Render(wordwrap.String(u.hint, cw-6)),
	)
	return layout.Center(components.Card(body, cw, false), width, height)
}
