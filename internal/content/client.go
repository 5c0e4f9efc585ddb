package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/EkalavyanS/Flashy/internal/llm"
)

// Client makes single text-generation calls. It never retries; retry
// policy, if any, belongs to the provider decorators.
type Client struct {
	provider    llm.Provider
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// NewClient creates a Client. A zero timeout leaves the caller's context
// as the only bound.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{
		provider:    provider,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Generate sends prompt to the model and returns its raw text. An empty
// model uses the provider default. Every failure, including an empty or
// whitespace-only answer, is reported as a *GenerationError labelled with
// the context's purpose.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	return c.generate(ctx, prompt, model, nil)
}

// GenerateJSON is Generate in the provider's structured-output mode: the
// answer is JSON matching schema. An answer the provider rejects against
// schema is reported as an *ExtractionError.
func (c *Client) GenerateJSON(ctx context.Context, prompt, model string, schema *llm.Schema) (string, error) {
	text, err := c.generate(ctx, prompt, model, schema)
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return "", &ExtractionError{Index: -1, Field: "$", Reason: "does not match the expected shape", Err: invalid}
	}
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt, model string, schema *llm.Schema) (string, error) {
	op := llm.PurposeFrom(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := llm.Prompt(prompt)
	req.Model = model
	req.MaxTokens = c.maxTokens
	req.Temperature = c.temperature
	req.Schema = schema

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", &GenerationError{Op: op, Err: err}
	}

	var text string
	if resp != nil {
		text = strings.TrimSpace(string(resp.Content))
	}
	if text == "" {
		return "", &GenerationError{Op: op, Err: errEmptyResponse}
	}
	return text, nil
}

var errEmptyResponse = errors.New("empty response")
