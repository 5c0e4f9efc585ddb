// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/screens/entry"
	"github.com/EkalavyanS/Flashy/internal/screens/flashcards"
	"github.com/EkalavyanS/Flashy/internal/screens/quiz"
	"github.com/EkalavyanS/Flashy/internal/screens/unavailable"
	"github.com/EkalavyanS/Flashy/internal/screens/welcome"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Source generates content. When nil the study screens are replaced
	// by an explanation of how to configure a provider.
	Source content.Source

	// UnavailableHint overrides the configuration advice shown when
	// Source is nil.
	UnavailableHint string

	Log logrus.FieldLogger

	// SkipWelcome starts on the entry screen.
	SkipWelcome bool
}

// factory builds the study screens and is shared by all of them.
type factory struct {
	deps screens.Deps
	hint string
}

func (f *factory) Flashcards(req content.Request) screen.Screen {
	if f.deps.Source == nil {
		return unavailable.New("Flashcards", f.hint)
	}
	return flashcards.New(f.deps, req)
}

func (f *factory) Quiz(req content.Request) screen.Screen {
	if f.deps.Source == nil {
		return unavailable.New("Quiz", f.hint)
	}
	return quiz.New(f.deps, req)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    logrus.FieldLogger
	width  int
	height int
}

// newAppModel creates an AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	f := &factory{hint: opts.UnavailableHint}
	f.deps = screens.Deps{
		Source:  opts.Source,
		Tokens:  &activation.Counter{},
		Log:     log,
		Screens: f,
	}

	entryScreen := entry.New(f)
	var root screen.Screen = entryScreen
	if !opts.SkipWelcome {
		root = welcome.New(func() screen.Screen { return entryScreen })
	}
	return AppModel{router: router.New(root), log: log}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, screens.Back
			}
			return m, nil
		case "q":
			if m.router.Depth() == 1 && !m.capturing() {
				return m, tea.Quit
			}
		}

	case router.PushScreenMsg:
		m.log.WithField("screen", msg.Screen.Title()).Debug("push screen")
	case router.ReplaceScreenMsg:
		m.log.WithField("screen", msg.Screen.Title()).Debug("replace screen")
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen wants plain letters.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the active screen inside the header and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	if active == nil {
		return ""
	}

	// Screens without a title, like the welcome splash, own the whole frame.
	if active.Title() == "" {
		return m.router.View(m.width, m.height)
	}

	label := ""
	if cp, ok := active.(screen.ContextProvider); ok {
		label = cp.HeaderContext()
	}
	header := layout.RenderHeader(active.Title(), label, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, body, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
