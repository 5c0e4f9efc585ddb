package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/llm"
)

// Purpose labels attached to generation calls for the request trace.
const (
	PurposeFlashcards = "flashcards"
	PurposeQuiz       = "quiz"
)

// Source produces decks and quizzes. Generator is the production
// implementation; screens and the HTTP server depend on this interface.
type Source interface {
	Flashcards(ctx context.Context, req Request) (Deck, error)
	Quiz(ctx context.Context, req Request) (QuestionSet, error)
}

// Generator runs the prompt → generate → normalize → extract pipeline.
type Generator struct {
	client *Client
	config Config
	log    logrus.FieldLogger
}

// New creates a Generator that calls provider with cfg.
func New(provider llm.Provider, cfg Config) *Generator {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Generator{client: NewClient(provider, cfg), config: cfg, log: discard}
}

// WithLogger sets the logger for pipeline warnings and returns g.
func (g *Generator) WithLogger(log logrus.FieldLogger) *Generator {
	if log != nil {
		g.log = log
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Flashcards generates a deck of DeckSize slides. Block splitting can
// merge or split slides, so a deck of another size is kept and only
// logged; a deck with no slides fails.
func (g *Generator) Flashcards(ctx context.Context, req Request) (Deck, error) {
	req, err := NewRequest(req.Topic, req.GradeLevel)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, PurposeFlashcards)
	text, err := g.client.Generate(ctx, FlashcardPrompt(req, g.config.DeckSize), g.config.FlashcardModel)
	if err != nil {
		return nil, err
	}

	deck, err := ExtractSlides(NormalizeSlides(text))
	if err != nil {
		return nil, err
	}
	if g.config.DeckSize > 0 && len(deck) != g.config.DeckSize {
		g.log.WithFields(logrus.Fields{
			"topic":   req.Topic,
			"session": llm.SessionFrom(ctx),
			"slides":  len(deck),
			"want":    g.config.DeckSize,
		}).Warn("deck size differs from request")
	}
	return deck, nil
}

// Quiz generates exactly QuizSize four-option questions.
func (g *Generator) Quiz(ctx context.Context, req Request) (QuestionSet, error) {
	req, err := NewRequest(req.Topic, req.GradeLevel)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, PurposeQuiz)
	prompt := QuizPrompt(req, g.config.QuizSize)

	var text string
	if g.config.StructuredQuiz {
		text, err = g.structuredQuiz(ctx, prompt)
	} else {
		text, err = g.client.Generate(ctx, prompt, g.config.QuizModel)
		text = NormalizeQuiz(text)
	}
	if err != nil {
		return nil, err
	}

	set, err := ExtractQuestions(text)
	if err != nil {
		return nil, err
	}
	if g.config.QuizSize > 0 && len(set) != g.config.QuizSize {
		return nil, &ExtractionError{
			Index:  -1,
			Field:  "questions",
			Reason: fmt.Sprintf("got %d questions, want %d", len(set), g.config.QuizSize),
		}
	}
	return set, nil
}

// structuredQuiz asks the provider for JSON output shaped by
// QuizEnvelopeSchema and returns the bare question array.
func (g *Generator) structuredQuiz(ctx context.Context, prompt string) (string, error) {
	text, err := g.client.GenerateJSON(ctx, prompt, g.config.QuizModel, QuizEnvelopeSchema)
	if err != nil {
		return "", err
	}
	var envelope struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return "", &ExtractionError{Index: -1, Field: "$", Reason: "invalid JSON", Err: err}
	}
	if len(envelope.Questions) == 0 {
		return "", &ExtractionError{Index: -1, Field: "questions", Reason: "is missing"}
	}
	return string(envelope.Questions), nil
}
