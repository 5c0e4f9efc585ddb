package content

import "time"

// Config controls generation for both flashcards and quizzes.
type Config struct {
	// DeckSize is the number of slides requested. A deck of another
	// size is accepted with a warning.
	DeckSize int

	// QuizSize is the exact number of questions a quiz must contain.
	QuizSize int

	// Timeout bounds a single generation call.
	Timeout time.Duration

	// FlashcardModel and QuizModel override the provider's model for
	// each mode. Empty uses the provider default.
	FlashcardModel string
	QuizModel      string

	// MaxTokens is the token budget for one response. Zero lets the
	// provider decide.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// StructuredQuiz requests quizzes in the provider's JSON output
	// mode, shaped by QuizEnvelopeSchema, instead of free text.
	StructuredQuiz bool
}

// DefaultConfig returns the standard deck and quiz sizes.
func DefaultConfig() Config {
	return Config{
		DeckSize:    10,
		QuizSize:    5,
		Timeout:     60 * time.Second,
		Temperature: 0.7,
	}
}
