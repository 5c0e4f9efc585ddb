package llm_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/llm"
)

const photosynthesisQuestion = `{"question":"What gas do plants take in?","options":["Oxygen","Carbon dioxide","Nitrogen","Helium"],"correctAnswer":"Carbon dioxide"}`

func TestValidateJSON_Quiz(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `[` + photosynthesisQuestion + `]`, false},
		{"missing answer", `[{"question":"What gas do plants take in?","options":["Oxygen","Carbon dioxide","Nitrogen","Helium"]}]`, true},
		{"three options", `[{"question":"Q","options":["A","B","C"],"correctAnswer":"A"}]`, true},
		{"five options", `[{"question":"Q","options":["A","B","C","D","E"],"correctAnswer":"A"}]`, true},
		{"duplicate options", `[{"question":"Q","options":["A","A","C","D"],"correctAnswer":"A"}]`, true},
		{"empty question", `[{"question":"","options":["A","B","C","D"],"correctAnswer":"A"}]`, true},
		{"empty array", `[]`, true},
		{"object instead of array", photosynthesisQuestion, true},
		{"malformed", `[{"question":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.ValidateJSON(content.QuizSchema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateJSON: %v", err)
				}
				return
			}
			var invalid *llm.ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want ErrInvalidResponse", err)
			}
			if string(invalid.Content) != tt.raw {
				t.Errorf("Content = %q, want the rejected answer", invalid.Content)
			}
		})
	}
}

func TestValidateJSON_Slides(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `[{"Topic":"Sunlight","explanation":"Plants turn light into food."}]`, false},
		{"extra fields allowed", `[{"Topic":"Sunlight","explanation":"Light.","image":"sun.png"}]`, false},
		{"missing explanation", `[{"Topic":"Sunlight"}]`, true},
		{"lowercase topic key", `[{"topic":"Sunlight","explanation":"Light."}]`, true},
		{"numbers", `[1, 2, 3]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.ValidateJSON(content.SlideArraySchema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON(%s) = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidateJSON_QuizEnvelope(t *testing.T) {
	valid := `{"questions":[` + photosynthesisQuestion + `]}`
	if err := llm.ValidateJSON(content.QuizEnvelopeSchema, json.RawMessage(valid)); err != nil {
		t.Fatalf("ValidateJSON: %v", err)
	}

	for _, raw := range []string{
		`{"quiz":[` + photosynthesisQuestion + `]}`,
		`{"questions":[` + photosynthesisQuestion + `],"topic":"Photosynthesis"}`,
		`{"questions":[{"question":"Q","options":["A","B","C","D"],"correctAnswer":"A","hint":"x"}]}`,
		`[` + photosynthesisQuestion + `]`,
	} {
		if err := llm.ValidateJSON(content.QuizEnvelopeSchema, json.RawMessage(raw)); err == nil {
			t.Errorf("ValidateJSON(%s) = nil, want error", raw)
		}
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := llm.ValidateJSON(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("nil schema should accept anything, got: %v", err)
	}
}

func TestValidateJSON_SchemasSharingAName(t *testing.T) {
	titles := &llm.Schema{Name: content.SlideArraySchema.Name, Definition: map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}}

	// SlideArraySchema is compiled first so a cache keyed by name would
	// hand its result to titles.
	if err := llm.ValidateJSON(content.SlideArraySchema, json.RawMessage(`[{"Topic":"Sun","explanation":"Light."}]`)); err != nil {
		t.Fatalf("slides: %v", err)
	}

	if err := llm.ValidateJSON(titles, json.RawMessage(`["Sun","Water"]`)); err != nil {
		t.Fatalf("titles: %v", err)
	}
	if err := llm.ValidateJSON(titles, json.RawMessage(`[{"Topic":"Sun","explanation":"Light."}]`)); err == nil {
		t.Fatal("titles schema accepted slide objects")
	}
}
