package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterReferer        = "https://github.com/EkalavyanS/Flashy"
	openRouterTitle          = "Flashy"
)

// OpenRouterProvider sends requests through OpenRouter's OpenAI-compatible
// API. Model IDs are vendor-prefixed ("google/gemini-2.5-flash") and are
// passed through unmapped. Every request carries OpenRouter's app
// attribution headers.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: attributionTransport{next: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: newOpenAIProviderWithConfig(config, cfg.Model, nil)}, nil
}

// attributionTransport adds the headers OpenRouter uses to credit
// traffic to an app.
type attributionTransport struct {
	next http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.next.RoundTrip(req)
}
