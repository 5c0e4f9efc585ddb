package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
	nav "github.com/EkalavyanS/Flashy/internal/quiz"
	"github.com/EkalavyanS/Flashy/internal/router"
	"github.com/EkalavyanS/Flashy/internal/screens"
	"github.com/EkalavyanS/Flashy/internal/screens/results"
)

type fakeSource struct {
	set content.QuestionSet
	err error
}

func (f *fakeSource) Flashcards(context.Context, content.Request) (content.Deck, error) {
	return nil, errors.New("not used")
}

func (f *fakeSource) Quiz(context.Context, content.Request) (content.QuestionSet, error) {
	return f.set, f.err
}

var photosynthesis = content.Request{Topic: "Photosynthesis", GradeLevel: "5th Grade"}

// questions has the correct answer at option index i%4 for question i.
func questions(n int) content.QuestionSet {
	set := make(content.QuestionSet, n)
	for i := range set {
		opts := []string{"Sunlight", "Water", "Soil", "Air"}
		set[i] = content.Question{
			Prompt:        fmt.Sprintf("Question %d?", i+1),
			Options:       opts,
			CorrectAnswer: opts[i%4],
		}
	}
	return set
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func ready(t *testing.T, src *fakeSource) *QuizScreen {
	t.Helper()
	q := New(screens.Deps{Source: src, Tokens: &activation.Counter{}}, photosynthesis)
	q.Init()
	q.Update(q.generate(q.nav.Token())())
	return q
}

func TestLoadsQuestions(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})
	if q.nav.State() != nav.Ready {
		t.Fatalf("state = %v, want ready", q.nav.State())
	}
	view := q.View(100, 50)
	for _, want := range []string{"Question 1 of 5", "Score: 0", "Question 1?", "Sunlight", "Submit Answer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSelectAndSubmit(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})

	q.Update(key("enter"))
	if q.nav.Answered() {
		t.Fatal("enter without a selection must not submit")
	}

	q.Update(key("c"))
	if q.nav.SelectedIndex() != 2 {
		t.Fatalf("selected = %d, want 2", q.nav.SelectedIndex())
	}
	q.Update(key("1"))
	if q.nav.SelectedIndex() != 0 {
		t.Fatalf("selected = %d, want 0", q.nav.SelectedIndex())
	}
	q.Update(key("enter"))
	if !q.nav.Answered() || q.nav.Score() != 1 {
		t.Fatalf("answered=%v score=%d", q.nav.Answered(), q.nav.Score())
	}
	view := q.View(100, 50)
	if !strings.Contains(view, "Correct!") || !strings.Contains(view, "Next Question") {
		t.Error("feedback or next button missing")
	}

	q.Update(key("b"))
	if q.nav.SelectedIndex() != 0 {
		t.Error("selection must be locked after submit")
	}
}

func TestArrowSelectionWraps(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})
	q.Update(key("up"))
	if q.nav.SelectedIndex() != 3 {
		t.Fatalf("selected = %d, want 3", q.nav.SelectedIndex())
	}
	q.Update(key("down"))
	if q.nav.SelectedIndex() != 0 {
		t.Fatalf("selected = %d, want 0", q.nav.SelectedIndex())
	}
	q.Update(key("j"))
	if q.nav.SelectedIndex() != 1 {
		t.Fatalf("selected = %d, want 1", q.nav.SelectedIndex())
	}
}

func TestIncorrectFeedback(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})
	q.Update(key("b"))
	q.Update(key("enter"))
	if !strings.Contains(q.View(100, 50), "Incorrect! Correct: Sunlight") {
		t.Error("incorrect feedback missing")
	}
}

func TestBackOnlyBeforeAnswering(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})
	q.Update(key("a"))
	q.Update(key("enter"))
	q.Update(key("enter"))
	if q.nav.Index() != 1 {
		t.Fatalf("index = %d, want 1", q.nav.Index())
	}

	q.Update(key("left"))
	if q.nav.Index() != 0 {
		t.Fatalf("index = %d, back should return to the first question", q.nav.Index())
	}
}

func TestCompletionShowsResults(t *testing.T) {
	q := ready(t, &fakeSource{set: questions(5)})

	var cmd tea.Cmd
	for i := range 5 {
		pick := "abcd"[i%4 : i%4+1]
		if i == 2 {
			pick = "a"
		}
		q.Update(key(pick))
		q.Update(key("enter"))
		_, cmd = q.Update(key("enter"))
	}
	if q.nav.State() != nav.Complete {
		t.Fatalf("state = %v, want complete", q.nav.State())
	}
	if cmd == nil {
		t.Fatal("completion should switch to results")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want ReplaceScreenMsg", cmd())
	}
	res, ok := msg.Screen.(*results.ResultsScreen)
	if !ok {
		t.Fatalf("screen = %T, want results", msg.Screen)
	}
	got := res.Outcome()
	if got.Score != 4 || got.Total != 5 || got.Percentage != 80 || got.Request != photosynthesis {
		t.Errorf("outcome = %+v", got)
	}
}

func TestFailureGoesBack(t *testing.T) {
	q := ready(t, &fakeSource{err: &content.ExtractionError{Index: 0, Field: "options", Reason: "has 3 options, want 4"}})
	if q.nav.State() != nav.Failed {
		t.Fatalf("state = %v, want failed", q.nav.State())
	}
	if !strings.Contains(q.View(100, 50), "Something went wrong") {
		t.Error("error view missing")
	}
	_, cmd := q.Update(key("enter"))
	if cmd == nil {
		t.Fatal("any key should go back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("msg = %T, want PopScreenMsg", cmd())
	}
}
