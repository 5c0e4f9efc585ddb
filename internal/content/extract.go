package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/EkalavyanS/Flashy/internal/llm"
)

// UntitledSlide is the title given to a slide whose first line is blank.
const UntitledSlide = "Untitled Slide"

// ExtractSlides turns normalized model output into a Deck.
//
// Text that is a well-formed JSON array is decoded as
// [{"Topic","explanation"}]. Anything else, including text that merely
// starts with "[", is read as blocks separated by blank lines, where the
// first line of a block is the title and the remaining lines are the
// explanation. Whitespace-only blocks are dropped; order is preserved.
func ExtractSlides(text string) (Deck, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "[") && json.Valid([]byte(trimmed)) {
		return extractSlideArray(trimmed)
	}

	var deck Deck
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		title, rest, _ := strings.Cut(strings.Trim(block, "\n"), "\n")
		title = strings.TrimSpace(stripEmphasis(title))
		if title == "" {
			title = UntitledSlide
		}
		deck = append(deck, Slide{
			Title:       title,
			Explanation: strings.TrimSpace(stripEmphasis(rest)),
		})
	}

	if len(deck) == 0 {
		return nil, &ExtractionError{Index: -1, Field: "slides", Reason: "no slides found"}
	}
	return deck, nil
}

func extractSlideArray(text string) (Deck, error) {
	raw := json.RawMessage(text)
	if err := llm.ValidateJSON(SlideArraySchema, raw); err != nil {
		return nil, schemaError(err)
	}

	var deck Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, &ExtractionError{Index: -1, Field: "$", Reason: "invalid JSON", Err: err}
	}
	for i := range deck {
		deck[i].Title = strings.TrimSpace(deck[i].Title)
		deck[i].Explanation = strings.TrimSpace(deck[i].Explanation)
		if deck[i].Title == "" {
			deck[i].Title = UntitledSlide
		}
		if deck[i].Explanation == "" {
			return nil, &ExtractionError{Index: i, Field: "explanation", Reason: "is empty"}
		}
	}
	return deck, nil
}

// ExtractQuestions turns normalized model output into a QuestionSet.
// The text must be a JSON array matching QuizSchema, and every question
// must have a non-blank prompt, non-blank distinct options and a correct
// answer equal to one of its options. The first violation fails the
// whole set.
func ExtractQuestions(text string) (QuestionSet, error) {
	raw := json.RawMessage(text)
	if !json.Valid(raw) {
		var probe any
		err := json.Unmarshal(raw, &probe)
		return nil, &ExtractionError{Index: -1, Field: "$", Reason: "invalid JSON", Err: err}
	}

	if err := llm.ValidateJSON(QuizSchema, raw); err != nil {
		return nil, schemaError(err)
	}

	var set QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, &ExtractionError{Index: -1, Field: "$", Reason: "invalid JSON", Err: err}
	}

	for i := range set {
		if err := checkQuestion(i, &set[i]); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// checkQuestion applies the rules JSON Schema cannot express and trims
// the question in place.
func checkQuestion(i int, q *Question) error {
	q.Prompt = strings.TrimSpace(q.Prompt)
	if q.Prompt == "" {
		return &ExtractionError{Index: i, Field: "question", Reason: "is blank"}
	}

	if len(q.Options) != OptionsPerQuestion {
		return &ExtractionError{Index: i, Field: "options", Reason: fmt.Sprintf("has %d options, want %d", len(q.Options), OptionsPerQuestion)}
	}
	seen := make(map[string]bool, len(q.Options))
	for j, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return &ExtractionError{Index: i, Field: "options", Reason: fmt.Sprintf("option %d is blank", j+1)}
		}
		if seen[opt] {
			return &ExtractionError{Index: i, Field: "options", Reason: fmt.Sprintf("duplicate option %q", opt)}
		}
		seen[opt] = true
		q.Options[j] = opt
	}

	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	if !seen[q.CorrectAnswer] {
		return &ExtractionError{Index: i, Field: "correctAnswer", Reason: fmt.Sprintf("%q is not one of the options", q.CorrectAnswer)}
	}
	return nil
}

// schemaError converts a schema validation failure into an
// ExtractionError pointing at the first offending location.
func schemaError(err error) error {
	ext := &ExtractionError{Index: -1, Field: "$", Reason: "does not match the expected shape", Err: err}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return ext
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	loc := ve.InstanceLocation
	if len(loc) > 0 {
		if idx, convErr := strconv.Atoi(loc[0]); convErr == nil {
			ext.Index = idx
			ext.Field = "item"
		}
	}
	if len(loc) > 1 {
		ext.Field = loc[1]
	}
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			ext.Reason = "violates " + strings.Join(kw, "/")
		}
	}
	return ext
}
