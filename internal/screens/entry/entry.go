// Package entry is the start screen: pick a topic and a level, then
// start flashcards or a quiz.
package entry

import (
	"strings"

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

// Focus targets, in Tab order.
const (
	focusTopic = iota
	focusGrade
	focusFlashcards
	focusQuiz
	focusCount
)

const inputCharLimit = 120

var proTips = []string{
	"Be specific with your topic for better results",
	"Mention the grade level for appropriate difficulty",
	"Start with flashcards to learn, then quiz to test",
}

// Footer is the line shown under the form.
const Footer = "Powered by AI • No login required • Always free"

// EntryScreen collects the topic and grade level.
type EntryScreen struct {
	screens screens.Factory
	topic   components.TextInput
	grade   components.TextInput
	focus   int
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)
var _ screen.InputCapturer = (*EntryScreen)(nil)

// New creates an EntryScreen that opens study screens through f.
func New(f screens.Factory) *EntryScreen {
	return &EntryScreen{
		screens: f,
		topic:   components.NewTextInput("What do you want to learn?", "e.g., Photosynthesis, World War II, Calculus...", inputCharLimit),
		grade:   components.NewTextInput("Grade level or age", "e.g., 5th Grade, 14 years old, College...", inputCharLimit),
	}
}

func (e *EntryScreen) Init() tea.Cmd {
	return e.setFocus(e.focus)
}

func (e *EntryScreen) Title() string {
	return "Get Started Learning"
}

func (e *EntryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Select"},
	}
	if !e.CapturingInput() {
		hints = append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return hints
}

// CapturingInput is true while one of the text fields has focus.
func (e *EntryScreen) CapturingInput() bool {
	return e.focus == focusTopic || e.focus == focusGrade
}

// Request returns the trimmed inputs and whether both are filled in.
func (e *EntryScreen) Request() (content.Request, bool) {
	req, err := content.NewRequest(e.topic.Value(), e.grade.Value())
	return req, err == nil
}

func (e *EntryScreen) setFocus(f int) tea.Cmd {
	e.focus = (f + focusCount) % focusCount
	e.topic.Blur()
	e.grade.Blur()
	switch e.focus {
	case focusTopic:
		return e.topic.Focus()
	case focusGrade:
		return e.grade.Focus()
	}
	return nil
}

func (e *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return e, e.updateInput(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return e, e.setFocus(e.focus + 1)
	case "shift+tab", "up":
		return e, e.setFocus(e.focus - 1)
	case "left", "right":
		if !e.CapturingInput() {
			if e.focus == focusFlashcards {
				return e, e.setFocus(focusQuiz)
			}
			return e, e.setFocus(focusFlashcards)
		}
	case "enter":
		switch e.focus {
		case focusTopic, focusGrade:
			return e, e.setFocus(e.focus + 1)
		case focusFlashcards, focusQuiz:
			return e, e.start()
		}
	}

	return e, e.updateInput(msg)
}

func (e *EntryScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case focusTopic:
		e.topic, cmd = e.topic.Update(msg)
	case focusGrade:
		e.grade, cmd = e.grade.Update(msg)
	}
	return cmd
}

// start opens the focused mode. Nothing happens until both fields are
// filled in.
func (e *EntryScreen) start() tea.Cmd {
	req, ok := e.Request()
	if !ok {
		return nil
	}
	var next screen.Screen
	if e.focus == focusQuiz {
		next = e.screens.Quiz(req)
	} else {
		next = e.screens.Flashcards(req)
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (e *EntryScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	compact := layout.IsCompactHeight(height + 6)

	var sections []string
	if !compact {
		sections = append(sections,
			theme.Title.Render("Flashy"),
			theme.Subtitle.Render("Master Any Subject in Minutes"),
			"",
		)
	}

	_, ready := e.Request()
	buttonWidth := (cw - 8) / 2
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		components.Button("Start Flashcards", e.focus == focusFlashcards, !ready, buttonWidth),
		"  ",
		components.Button("Take Quiz", e.focus == focusQuiz, !ready, buttonWidth),
	)

	form := []string{
		e.topic.View(cw - 6),
		"",
		e.grade.View(cw - 6),
		"",
		buttons,
	}
	if !compact {
		form = append(form, "", renderTips())
	}
	sections = append(sections, components.Card(strings.Join(form, "\n"), cw, false))

	sections = append(sections, "", theme.Faint.Render(Footer))

	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}

func renderTips() string {
	lines := []string{theme.Label.Render("Pro Tips:")}
	for _, tip := range proTips {
		lines = append(lines, theme.Faint.Render("• "+tip))
	}
	return strings.Join(lines, "\n")
}
