// Package flashcards is the deck viewer screen.
package flashcards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/llm"
	nav "github.com/EkalavyanS/Flashy/internal/flashcards"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

// deckMsg delivers a generation result for one activation.
type deckMsg struct {
	Token activation.Token
	Deck  content.Deck
	Err   error
}

// FlashcardsScreen generates a deck and pages through it.
type FlashcardsScreen struct {
	deps    screens.Deps
	req     content.Request
	nav     *nav.Navigator
	loading components.Loading
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)
var _ screen.ContextProvider = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen for req. Generation starts on Init.
func New(deps screens.Deps, req content.Request) *FlashcardsScreen {
	return &FlashcardsScreen{
		deps:    deps,
		req:     req,
		nav:     nav.New(deps.Tokens),
		loading: components.NewLoading("Creating your flashcards..."),
	}
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	tok := f.nav.Activate(f.req)
	return tea.Batch(f.loading.Tick, f.generate(tok))
}

func (f *FlashcardsScreen) generate(tok activation.Token) tea.Cmd {
	src, req := f.deps.Source, f.req
	ctx := llm.WithSession(context.Background(), uuid.NewString())
	return func() tea.Msg {
		deck, err := src.Flashcards(ctx, req)
		return deckMsg{Token: tok, Deck: deck, Err: err}
	}
}

func (f *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (f *FlashcardsScreen) HeaderContext() string {
	return screens.RequestLabel(f.req)
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	switch f.nav.State() {
	case nav.Ready:
		hints := []layout.KeyHint{
			{Key: "←→", Description: "Navigate"},
		}
		if f.nav.AtEnd() && f.deps.Screens != nil {
			hints = append(hints, layout.KeyHint{Key: "t", Description: "Take Quiz"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	case nav.Failed:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckMsg:
		if !f.nav.Load(msg.Token, msg.Deck, msg.Err) {
			return f, nil
		}
		log := f.deps.Logger().WithFields(logrus.Fields{"topic": f.req.Topic, "grade": f.req.GradeLevel})
		if msg.Err != nil {
			log.WithError(msg.Err).Warn("flashcard generation failed")
		} else {
			log.WithField("slides", len(msg.Deck)).Debug("flashcards ready")
		}
		return f, nil

	case tea.KeyPressMsg:
		return f.handleKey(msg)
	}

	if f.nav.State() == nav.Loading {
		var cmd tea.Cmd
		f.loading, cmd = f.loading.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FlashcardsScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch f.nav.State() {
	case nav.Failed:
		return f, screens.Back
	case nav.Ready:
	default:
		return f, nil
	}

	switch msg.String() {
	case "right", "l", "n", "space":
		f.nav.Advance(nav.Forward)
	case "left", "h", "p":
		f.nav.Advance(nav.Backward)
	case "t":
		if f.nav.AtEnd() && f.deps.Screens != nil {
			next := f.deps.Screens.Quiz(f.req)
			return f, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return f, nil
}

func (f *FlashcardsScreen) View(width, height int) string {
	switch f.nav.State() {
	case nav.Failed:
		return screens.RenderError(f.nav.Err(), width, height)
	case nav.Ready:
		return f.renderCard(width, height)
	}
	return screens.RenderLoading(f.loading, f.req, width, height)
}

func (f *FlashcardsScreen) renderCard(width, height int) string {
	slide, ok := f.nav.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	progress := f.nav.Progress()
	left := theme.Label.Render(fmt.Sprintf("Card %d of %d", f.nav.Index()+1, f.nav.Len()))
	right := theme.Faint.Render(fmt.Sprintf("%d%% complete", int(progress*100+0.5)))
	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	status := left + strings.Repeat(" ", gap) + right
	bar := components.NewProgressBar("", progress, false, cw).View()

	body := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(wordwrap.String(slide.Title, cw-6)) +
		"\n\n" +
		theme.Body.Render(wordwrap.String(slide.Explanation, cw-6))
	card := components.Card(body, cw, true)

	dots := renderDots(f.nav.Index(), f.nav.Len())
	if !f.nav.AtStart() {
		dots = theme.Faint.Render("◂ prev  ") + dots
	}
	if !f.nav.AtEnd() {
		dots += theme.Faint.Render("  next ▸")
	}
	lines := []string{status, bar, "", card, "", dots}
	if f.nav.AtEnd() && f.deps.Screens != nil {
		lines = append(lines, "", theme.Hint.Render("Press t to test yourself with a quiz"))
	}
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func renderDots(current, total int) string {
	var b strings.Builder
	for i := range total {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == current {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("●"))
		} else {
			b.WriteString(theme.Faint.Render("○"))
		}
	}
	return b.String()
}
