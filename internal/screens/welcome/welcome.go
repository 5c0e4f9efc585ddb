package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const cardArt = `╭───────────────╮
│  ⚡           │
│   Q: ?        │
│   ─────────   │
│   A: ✓        │
╰───────────────╯`

// sparkle frames cycle around the card
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the
// entry screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by the screen next builds.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// The first key during the animation skips to its end; once it
		// has played, any key continues.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(cardArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 5 {
			lines[5] = s2 + "  " + lines[5] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Master Any Subject in Minutes"),
			theme.Subtitle.Render("AI-powered flashcards and quizzes for smarter learning"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
