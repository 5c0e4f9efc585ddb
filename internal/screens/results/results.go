// Package results shows the score of a finished quiz.
package results

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// CelebrationDuration is how long confetti falls after a perfect score.
const CelebrationDuration = 5 * time.Second

const trophy = `    ___________
   '._==_==_=_.'
   .-\:      /-.
  | (|:.     |) |
   '-|:.     |-'
     \::.    /
      '::. .'
        ) (
      _.' '._
     '-------'`

const medal = `    \   /
     \ /
    .-'-.
   / ★★★ \
   \     /
    '-.-'`

// Outcome is the final tally of a quiz.
type Outcome struct {
	Request    content.Request
	Score      int
	Total      int
	Percentage int
}

// Perfect reports whether every question was answered correctly.
func (o Outcome) Perfect() bool {
	return o.Total > 0 && o.Score == o.Total
}

// ResultsScreen displays an Outcome and what to do next.
type ResultsScreen struct {
	deps     screens.Deps
	outcome  Outcome
	menu     components.Menu
	confetti components.Confetti
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.ContextProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for o.
func New(deps screens.Deps, o Outcome) *ResultsScreen {
	r := &ResultsScreen{deps: deps, outcome: o}
	noFactory := deps.Screens == nil
	r.menu = components.NewMenu([]components.MenuItem{
		{Label: "Try Another Quiz", Action: func() tea.Cmd { return screens.Back }},
		{Label: "Retake This Quiz", Action: r.retake, Disabled: noFactory},
		{Label: "Study Flashcards", Action: r.study, Disabled: noFactory},
	}, 32)
	r.confetti = components.NewConfetti(CelebrationDuration, uint64(time.Now().UnixNano()))
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	if r.outcome.Perfect() {
		return r.confetti.Start()
	}
	r.confetti.Stop()
	return nil
}

func (r *ResultsScreen) retake() tea.Cmd {
	next := r.deps.Screens.Quiz(r.outcome.Request)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultsScreen) study() tea.Cmd {
	next := r.deps.Screens.Flashcards(r.outcome.Request)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) HeaderContext() string {
	return screens.RequestLabel(r.outcome.Request)
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// Outcome returns the displayed outcome.
func (r *ResultsScreen) Outcome() Outcome {
	return r.outcome
}

// Celebrating reports whether the confetti is still falling.
func (r *ResultsScreen) Celebrating() bool {
	return r.confetti.Running()
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ConfettiTickMsg:
		var cmd tea.Cmd
		r.confetti, cmd = r.confetti.Update(msg)
		return r, cmd
	case tea.KeyPressMsg:
		var cmd tea.Cmd
		r.menu, cmd = r.menu.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	o := r.outcome

	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(medal)
	if o.Perfect() {
		art = lipgloss.NewStyle().Foreground(theme.Accent).Render(trophy)
	}

	lines := []string{
		art,
		"",
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quiz Complete!"),
		"",
		theme.Label.Render(fmt.Sprintf("Your score: %d/%d (%d%%)", o.Score, o.Total, o.Percentage)),
		theme.Subtitle.Render(verdict(o)),
	}
	if !layout.IsCompactHeight(height) {
		lines = append(lines, "", components.NewProgressBar("", float64(o.Percentage)/100, false, 32).View())
	}
	lines = append(lines, "", r.menu.View())

	view := layout.Center(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
	if r.confetti.Running() {
		r.confetti.Resize(width, height)
		view = r.confetti.Overlay(view)
	}
	return view
}

func verdict(o Outcome) string {
	switch {
	case o.Perfect():
		return "Perfect score! You've mastered " + o.Request.Topic + "."
	case o.Percentage >= 80:
		return "Great job! Almost perfect."
	case o.Percentage >= 50:
		return "Good effort. Review the flashcards and try again."
	}
	return "Keep practicing. Study the flashcards and give it another go."
}
