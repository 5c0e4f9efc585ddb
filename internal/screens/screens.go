// Package screens holds what the individual TUI screens share: their
// dependencies and the loading and error views.
package screens

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// Factory builds the study screens for a request. Screens use it to
// move between modes without importing each other.
type Factory interface {
	Flashcards(req content.Request) screen.Screen
	Quiz(req content.Request) screen.Screen
}

// Deps are the dependencies every study screen receives.
type Deps struct {
	Source  content.Source
	Tokens  *activation.Counter
	Log     logrus.FieldLogger
	Screens Factory
}

// Logger returns d.Log, or a logger that discards everything.
func (d Deps) Logger() logrus.FieldLogger {
	if d.Log != nil {
		return d.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Back pops the current screen.
func Back() tea.Msg {
	return router.PopScreenMsg{}
}

// RequestLabel is the header context for a request.
func RequestLabel(req content.Request) string {
	if req.Topic == "" {
		return ""
	}
	return req.Topic + " · " + req.GradeLevel
}

// RenderLoading centers the loading indicator with a line about what is
// being generated.
func RenderLoading(l components.Loading, req content.Request, width, height int) string {
	lines := []string{
		l.View(),
		"",
		theme.Faint.Render("Topic: " + req.Topic + "   Level: " + req.GradeLevel),
	}
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

// RenderError shows a generation failure with its short reason.
func RenderError(err error, width, height int) string {
	cw := layout.ContentWidth(width)
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Incorrect.Render("Something went wrong"),
		"",
		theme.Subtitle.Render(content.Reason(err)),
		"",
		theme.Hint.Render("Press any key to go back and try again."),
	)
	return layout.Center(components.Card(body, cw, false), width, height)
}
