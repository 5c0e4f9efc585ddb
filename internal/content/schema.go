package content

import "github.com/EkalavyanS/Flashy/internal/llm"

// QuizSchema is the shape a normalized quiz answer must have before it
// is turned into a QuestionSet. Counts of questions are checked by the
// Generator, which knows the configured quiz size.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "An array of four-option multiple-choice questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    OptionsPerQuestion,
					"maxItems":    OptionsPerQuestion,
					"uniqueItems": true,
				},
				"correctAnswer": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	},
}

// SlideArraySchema is the shape of a deck returned as a JSON array.
var SlideArraySchema = &llm.Schema{
	Name:        "flashcard-slides",
	Description: "An array of slides with a title and an explanation",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"Topic":       map[string]any{"type": "string"},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"Topic", "explanation"},
		},
	},
}

// QuizEnvelopeSchema is sent with structured quiz requests. Providers
// with a strict JSON mode need an object at the root, closed objects and
// every property required, so the questions are wrapped in an object and
// the finer rules are left to QuizSchema after unwrapping.
var QuizEnvelopeSchema = &llm.Schema{
	Name:        "quiz-envelope",
	Description: "Multiple-choice questions, each with four options and the correct answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
