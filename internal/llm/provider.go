package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM. When the request carries a Schema
	// the response Content is JSON validated against it; otherwise Content
	// holds the model's raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Flashy sends the whole instruction as a
	// single user message, so this is usually empty.
	System string

	// Messages is the conversation history. Single-turn generation sends
	// exactly one user message.
	Messages []Message

	// Model overrides the provider's configured model for this request.
	// Friendly names are resolved the same way as in the config.
	Model string

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	// Zero lets the provider pick its default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Prompt builds a single-turn request carrying one user message.
func Prompt(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, e.g. "quiz-questions". Compiled schemas
	// are cached by name.
	Name string

	// Description is sent to providers that support it.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as a string with surrounding
// whitespace removed.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
