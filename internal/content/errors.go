package content

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingInput is returned when the topic or grade level is blank.
var ErrMissingInput = errors.New("missing topic or grade level")

// Kind classifies pipeline failures for callers that map them to
// user-facing messages or HTTP statuses.
type Kind int

const (
	KindNone Kind = iota
	KindMissingInput
	KindGeneration
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingInput:
		return "missing_input"
	case KindGeneration:
		return "generation_failure"
	case KindExtraction:
		return "extraction_failure"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// GenerationError wraps a failed call to the text-generation service,
// including an empty response.
type GenerationError struct {
	Op  string // purpose label, e.g. "flashcards" or "quiz"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ExtractionError reports model output that could not be turned into
// typed records. Index is the offending record, or -1 when the failure
// concerns the whole payload.
type ExtractionError struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	var msg string
	if e.Index >= 0 {
		msg = fmt.Sprintf("extract: item %d: %s: %s", e.Index, e.Field, e.Reason)
	} else {
		msg = fmt.Sprintf("extract: %s: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// KindOf classifies err. Errors that are not pipeline errors report
// KindGeneration, since anything else escaping the pipeline comes from
// the transport.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrMissingInput) {
		return KindMissingInput
	}
	var ext *ExtractionError
	if errors.As(err, &ext) {
		return KindExtraction
	}
	return KindGeneration
}

// Reason returns a short, user-presentable description of err.
func Reason(err error) string {
	var ext *ExtractionError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "Missing topic or grade level"
	case errors.As(err, &ext):
		return "The AI answer was not in the expected format."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI took too long to answer."
	}
	return "The AI service could not be reached."
}
