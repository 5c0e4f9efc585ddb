// Package quiz implements the question-by-question quiz state machine:
// select an option, submit it, then move on until the quiz is complete.
package quiz

import (
	"fmt"
	"math"

	"github.com/EkalavyanS/Flashy/internal/activation"
	"github.com/EkalavyanS/Flashy/internal/content"
)

// State is the lifecycle of one quiz activation.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Navigator owns one quiz session over an immutable QuestionSet.
//
// Within Ready a question is either unanswered or answered. Options can
// be selected and changed only while unanswered; Submit locks the answer
// and scores it; Next is only possible once answered. Back is only
// possible while unanswered, so an answered question is always left
// through Next and can never be scored twice.
//
// It is not safe for concurrent use; drive it from one goroutine.
type Navigator struct {
	tokens *activation.Counter
	token  activation.Token

	req   content.Request
	state State
	set   content.QuestionSet
	err   error

	index       int
	score       int
	selected    string
	hasSelected bool
	answered    bool
	lastCorrect bool
}

// New creates a Navigator that draws activation tokens from tokens.
// A nil counter gives the navigator a private one.
func New(tokens *activation.Counter) *Navigator {
	if tokens == nil {
		tokens = &activation.Counter{}
	}
	return &Navigator{tokens: tokens}
}

// Activate discards any current session, enters Loading and returns the
// token the generation result must be delivered with.
func (n *Navigator) Activate(req content.Request) activation.Token {
	n.token = n.tokens.Next()
	n.req = req
	n.state = Loading
	n.set = nil
	n.err = nil
	n.resetSession()
	return n.token
}

func (n *Navigator) resetSession() {
	n.index = 0
	n.score = 0
	n.answered = false
	n.lastCorrect = false
	n.clearSelection()
}

func (n *Navigator) clearSelection() {
	n.selected = ""
	n.hasSelected = false
}

// Load delivers the generation result for tok. Stale tokens, and results
// arriving when nothing is loading, are ignored and reported as false.
// A failure leaves the navigator in Failed with no questions and no score.
func (n *Navigator) Load(tok activation.Token, set content.QuestionSet, err error) bool {
	if tok != n.token || n.state != Loading {
		return false
	}
	if err == nil && len(set) == 0 {
		err = &content.ExtractionError{Index: -1, Field: "questions", Reason: "no questions"}
	}
	if err != nil {
		n.state = Failed
		n.err = err
		return true
	}
	n.set = set
	n.resetSession()
	n.state = Ready
	return true
}

// SelectOption records opt as the pending answer. It is only allowed
// while the current question is unanswered and opt is one of its
// options; a later selection replaces an earlier one.
func (n *Navigator) SelectOption(opt string) bool {
	if n.state != Ready || n.answered {
		return false
	}
	if !n.set[n.index].HasOption(opt) {
		return false
	}
	n.selected = opt
	n.hasSelected = true
	return true
}

// SelectIndex selects the i-th option of the current question.
func (n *Navigator) SelectIndex(i int) bool {
	q, ok := n.Current()
	if !ok || i < 0 || i >= len(q.Options) {
		return false
	}
	return n.SelectOption(q.Options[i])
}

// Submit scores the pending selection. ok is false, and nothing changes,
// when there is no selection or the question was already answered.
func (n *Navigator) Submit() (correct, ok bool) {
	if n.state != Ready || n.answered || !n.hasSelected {
		return false, false
	}
	correct = n.set[n.index].IsCorrect(n.selected)
	if correct {
		n.score++
	}
	n.answered = true
	n.lastCorrect = correct
	return correct, true
}

// Next leaves an answered question: to Complete after the last
// question, otherwise to the next question, unanswered.
func (n *Navigator) Next() bool {
	if n.state != Ready || !n.answered {
		return false
	}
	if n.IsLast() {
		n.state = Complete
		return true
	}
	n.index++
	n.answered = false
	n.lastCorrect = false
	n.clearSelection()
	return true
}

// Back returns to the previous question. It is only allowed while the
// current question is unanswered and is not the first.
func (n *Navigator) Back() bool {
	if !n.CanBack() {
		return false
	}
	n.index--
	n.clearSelection()
	return true
}

// CanBack reports whether Back would succeed.
func (n *Navigator) CanBack() bool {
	return n.state == Ready && !n.answered && n.index > 0
}

// Current returns the question at the current index while Ready.
func (n *Navigator) Current() (content.Question, bool) {
	if n.state != Ready {
		return content.Question{}, false
	}
	return n.set[n.index], true
}

// Selected returns the pending selection, if any.
func (n *Navigator) Selected() (string, bool) {
	return n.selected, n.hasSelected
}

// SelectedIndex returns the position of the pending selection within the
// current question's options, or -1.
func (n *Navigator) SelectedIndex() int {
	q, ok := n.Current()
	if !ok || !n.hasSelected {
		return -1
	}
	for i, o := range q.Options {
		if o == n.selected {
			return i
		}
	}
	return -1
}

// IsLast reports whether the current question is the final one.
func (n *Navigator) IsLast() bool {
	return n.index == len(n.set)-1
}

// Percentage is the score as a whole percentage, rounded half away from
// zero.
func (n *Navigator) Percentage() int {
	if len(n.set) == 0 {
		return 0
	}
	return int(math.Round(float64(n.score) / float64(len(n.set)) * 100))
}

// Perfect reports a completed quiz with every answer correct.
func (n *Navigator) Perfect() bool {
	return n.state == Complete && len(n.set) > 0 && n.score == len(n.set)
}

// Feedback describes the last submitted answer, or "" when the current
// question is unanswered.
func (n *Navigator) Feedback() string {
	if n.state != Ready || !n.answered {
		return ""
	}
	if n.lastCorrect {
		return "Correct!"
	}
	return fmt.Sprintf("Incorrect! Correct: %s", n.set[n.index].CorrectAnswer)
}

// NextLabel is the caption for the button that calls Next.
func (n *Navigator) NextLabel() string {
	if n.IsLast() {
		return "See Results"
	}
	return "Next Question"
}

func (n *Navigator) Index() int { return n.index }
func (n *Navigator) Total() int { return len(n.set) }
func (n *Navigator) Score() int { return n.score }
func (n *Navigator) Answered() bool { return n.answered }
func (n *Navigator) LastCorrect() bool { return n.lastCorrect }
func (n *Navigator) State() State { return n.state }
func (n *Navigator) Err() error { return n.err }
func (n *Navigator) Request() content.Request { return n.req }
func (n *Navigator) Token() activation.Token { return n.token }
