// Package quiz is the question-by-question quiz screen.
package quiz

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
	nav "github.com/EkalavyanS/Flashy/internal/quiz"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screen"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/screens/results"
	"github.com/EkalavyanS/Flashy/internal/ui/components"
	"github.com/EkalavyanS/Flashy/internal/ui/layout"
	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

type questionsMsg struct {
	Token activation.Token
	Set   content.QuestionSet
	Err   error
}

// QuizScreen generates a question set and walks the learner through it.
type QuizScreen struct {
	deps    screens.Deps
	req     content.Request
	nav     *nav.Navigator
	loading components.Loading
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.ContextProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for req. Generation starts on Init.
func New(deps screens.Deps, req content.Request) *QuizScreen {
	return &QuizScreen{
		deps:    deps,
		req:     req,
		nav:     nav.New(deps.Tokens),
		loading: components.NewLoading("Writing your quiz..."),
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	tok := q.nav.Activate(q.req)
	return tea.Batch(q.loading.Tick, q.generate(tok))
}

func (q *QuizScreen) generate(tok activation.Token) tea.Cmd {
	src, req := q.deps.Source, q.req
	ctx := llm.WithSession(context.Background(), uuid.NewString())
	return func() tea.Msg {
		set, err := src.Quiz(ctx, req)
		return questionsMsg{Token: tok, Set: set, Err: err}
	}
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) HeaderContext() string {
	return screens.RequestLabel(q.req)
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.nav.State() {
	case nav.Ready:
		if q.nav.Answered() {
			return []layout.KeyHint{
				{Key: "Enter", Description: q.nav.NextLabel()},
				{Key: "Esc", Description: "Quit Quiz"},
			}
		}
		hints := []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
		}
		if q.nav.CanBack() {
			hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit Quiz"})
	case nav.Failed:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		if !q.nav.Load(msg.Token, msg.Set, msg.Err) {
			return q, nil
		}
		log := q.deps.Logger().WithFields(logrus.Fields{"topic": q.req.Topic, "grade": q.req.GradeLevel})
		if q.nav.State() == nav.Failed {
			log.WithError(q.nav.Err()).Warn("quiz generation failed")
		} else {
			log.WithField("questions", q.nav.Total()).Debug("quiz ready")
		}
		return q, nil

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}

	if q.nav.State() == nav.Loading {
		var cmd tea.Cmd
		q.loading, cmd = q.loading.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch q.nav.State() {
	case nav.Failed:
		return q, screens.Back
	case nav.Ready:
	default:
		return q, nil
	}

	key := msg.String()
	switch key {
	case "up", "k":
		q.moveSelection(-1)
	case "down", "j":
		q.moveSelection(1)
	case "1", "2", "3", "4":
		q.nav.SelectIndex(int(key[0] - '1'))
	case "a", "b", "c", "d":
		q.nav.SelectIndex(int(key[0] - 'a'))
	case "left", "backspace":
		q.nav.Back()
	case "enter", "space":
		if !q.nav.Answered() {
			q.submit()
			return q, nil
		}
		return q, q.next()
	case "n", "right":
		return q, q.next()
	}
	return q, nil
}

func (q *QuizScreen) moveSelection(delta int) {
	cur, ok := q.nav.Current()
	if !ok {
		return
	}
	i := q.nav.SelectedIndex()
	if i < 0 {
		if delta < 0 {
			i = len(cur.Options) - 1
		} else {
			i = 0
		}
	} else {
		i = (i + delta + len(cur.Options)) % len(cur.Options)
	}
	q.nav.SelectIndex(i)
}

func (q *QuizScreen) submit() {
	correct, ok := q.nav.Submit()
	if !ok {
		return
	}
	q.deps.Logger().WithFields(logrus.Fields{
		"question": q.nav.Index() + 1,
		"correct":  correct,
	}).Debug("answer submitted")
}

// next advances past an answered question and, after the last one,
// replaces the quiz with its results.
func (q *QuizScreen) next() tea.Cmd {
	if !q.nav.Next() {
		return nil
	}
	if q.nav.State() != nav.Complete {
		return nil
	}
	outcome := results.Outcome{
		Request:    q.req,
		Score:      q.nav.Score(),
		Total:      q.nav.Total(),
		Percentage: q.nav.Percentage(),
	}
	q.deps.Logger().WithFields(logrus.Fields{
		"topic": q.req.Topic,
		"score": outcome.Score,
		"total": outcome.Total,
	}).Info("quiz complete")
	next := results.New(q.deps, outcome)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (q *QuizScreen) View(width, height int) string {
	switch q.nav.State() {
	case nav.Failed:
		return screens.RenderError(q.nav.Err(), width, height)
	case nav.Ready:
		return q.renderQuestion(width, height)
	}
	return screens.RenderLoading(q.loading, q.req, width, height)
}

func (q *QuizScreen) renderQuestion(width, height int) string {
	cur, ok := q.nav.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	left := theme.Label.Render(fmt.Sprintf("Question %d of %d", q.nav.Index()+1, q.nav.Total()))
	right := theme.Faint.Render(fmt.Sprintf("Score: %d", q.nav.Score()))
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	status := left + strings.Repeat(" ", gap) + right
	bar := components.NewProgressBar("", float64(q.nav.Index()+1)/float64(q.nav.Total()), false, cw).View()

	prompt := components.Card(theme.Title.Render(wordwrap.String(cur.Prompt, cw-6)), cw, false)

	correct := -1
	for i, opt := range cur.Options {
		if cur.IsCorrect(opt) {
			correct = i
		}
	}
	choices := components.MultiChoice{
		Options:  cur.Options,
		Selected: q.nav.SelectedIndex(),
		Correct:  correct,
		Answered: q.nav.Answered(),
		Width:    cw,
	}.View()

	lines := []string{status, bar, "", prompt, "", choices, ""}
	if fb := q.nav.Feedback(); fb != "" {
		style := theme.Incorrect
		if q.nav.LastCorrect() {
			style = theme.Correct
		}
		lines = append(lines, style.Render(fb), "")
	}
	lines = append(lines, q.renderButtons(cw))
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func (q *QuizScreen) renderButtons(cw int) string {
	bw := (cw - 2) / 2
	back := components.Button("Back", false, !q.nav.CanBack(), bw)
	var primary string
	if q.nav.Answered() {
		primary = components.Button(q.nav.NextLabel(), true, false, bw)
	} else {
		_, selected := q.nav.Selected()
		primary = components.Button("Submit Answer", selected, !selected, bw)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, back, "  ", primary)
}
