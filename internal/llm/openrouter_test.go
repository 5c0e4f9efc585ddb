package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// openRouterCall is what the fake OpenRouter endpoint saw.
type openRouterCall struct {
	path    string
	headers http.Header
	body    map[string]any
}

func newTestOpenRouter(t *testing.T, model, answer string) (*OpenRouterProvider, *openRouterCall) {
	t.Helper()
	call := &openRouterCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call.path = r.URL.Path
		call.headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&call.body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(model, answer))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   model,
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	return p, call
}

func TestOpenRouterProvider_Generate(t *testing.T) {
	p, call := newTestOpenRouter(t, "google/gemini-2.5-flash", "**Sunlight**\nPlants turn light into food.")

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Create 10 informative slides about Photosynthesis"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := resp.Text(); got != "**Sunlight**\nPlants turn light into food." {
		t.Errorf("text = %q", got)
	}

	if call.path != "/api/v1/chat/completions" {
		t.Errorf("path = %q", call.path)
	}
	if got := call.headers.Get("Authorization"); got != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", got)
	}
	if got := call.headers.Get("HTTP-Referer"); got != "https://github.com/EkalavyanS/Flashy" {
		t.Errorf("HTTP-Referer = %q", got)
	}
	if got := call.headers.Get("X-Title"); got != "Flashy" {
		t.Errorf("X-Title = %q", got)
	}
	if got := call.body["model"]; got != "google/gemini-2.5-flash" {
		t.Errorf("model sent = %v, want vendor-prefixed ID unchanged", got)
	}
	if _, ok := call.body["response_format"]; ok {
		t.Error("free-text request should not ask for a response format")
	}
}

func TestOpenRouterProvider_ModelIDPassThrough(t *testing.T) {
	for _, model := range []string{"google/gemini-2.5-flash", "anthropic/claude-3.5-haiku", "gemini-flash"} {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
		if err != nil {
			t.Fatalf("NewOpenRouterProvider(%q): %v", model, err)
		}
		if p.ModelID() != model {
			t.Errorf("ModelID() = %q, want %q", p.ModelID(), model)
		}
	}
}

func TestOpenRouterProvider_MissingKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestOpenRouterProvider_StructuredQuiz(t *testing.T) {
	schema := &Schema{
		Name:        "openrouter-quiz",
		Description: "Questions with options",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}

	t.Run("schema is sent", func(t *testing.T) {
		p, call := newTestOpenRouter(t, "openai/gpt-4o-mini", `{"questions":["What do plants make?"]}`)
		_, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "Make a quiz about Photosynthesis"}},
			Schema:   schema,
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		format, _ := call.body["response_format"].(map[string]any)
		if format["type"] != "json_schema" {
			t.Fatalf("response_format = %v", call.body["response_format"])
		}
		spec, _ := format["json_schema"].(map[string]any)
		if spec["name"] != "openrouter-quiz" {
			t.Errorf("json_schema name = %v", spec["name"])
		}
	})

	t.Run("answer outside the schema", func(t *testing.T) {
		p, _ := newTestOpenRouter(t, "openai/gpt-4o-mini", `{"questions":"none"}`)
		_, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "Make a quiz about Photosynthesis"}},
			Schema:   schema,
		})
		var invalid *ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want ErrInvalidResponse", err)
		}
	})
}
