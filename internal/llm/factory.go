package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// A nil eventRepo disables the request trace.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(base, cfg.Provider, eventRepo, log)
	}
	return WithRetry(wrapped, cfg.Retry, log), nil
}
