package content

import (
	"strings"
)

// Request is a validated generation request: what to learn and for whom.
type Request struct {
	Topic      string `json:"topic"`
	GradeLevel string `json:"gradeLevel"`
}

// NewRequest trims both fields and returns ErrMissingInput when either
// is empty afterwards.
func NewRequest(topic, gradeLevel string) (Request, error) {
	r := Request{
		Topic:      strings.TrimSpace(topic),
		GradeLevel: strings.TrimSpace(gradeLevel),
	}
	if r.Topic == "" || r.GradeLevel == "" {
		return Request{}, ErrMissingInput
	}
	return r, nil
}

// Slide is one flashcard. The JSON field names match the public
// flashcard API, which calls the title "Topic".
type Slide struct {
	Title       string `json:"Topic"`
	Explanation string `json:"explanation"`
}

// Deck is the ordered set of slides produced by one generation.
// It is never mutated after creation.
type Deck []Slide

// Question is one multiple-choice quiz question.
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// IsCorrect reports whether answer matches the correct answer after
// trimming surrounding whitespace on both sides.
func (q Question) IsCorrect(answer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectAnswer)
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// QuestionSet is the ordered set of questions produced by one generation.
type QuestionSet []Question
