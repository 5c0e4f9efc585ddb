// Package config assembles runtime configuration from an optional .env
// file, FLASHY_* environment variables and defaults.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/llm"
	"github.com/EkalavyanS/Flashy/internal/logging"
	"github.com/EkalavyanS/Flashy/internal/server"
	"github.com/EkalavyanS/Flashy/internal/store"
)

// Config is everything the commands need to start.
type Config struct {
	LLM     llm.Config
	Content content.Config
	Server  server.Config
	DBPath  string
	Log     logging.Options

	// ProviderFound is false when no provider has an API key, so no
	// generation can succeed.
	ProviderFound bool
}

// Load reads .env (if present) and the environment. Variables already
// set in the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		LLM:     llm.ConfigFromEnv(),
		Content: content.DefaultConfig(),
		Server:  server.DefaultConfig(),
		Log:     logging.DefaultOptions(),
	}

	cfg.ProviderFound = cfg.LLM.Validate() == nil
	if !cfg.ProviderFound && os.Getenv("FLASHY_LLM_PROVIDER") == "" {
		cfg.LLM, cfg.ProviderFound = llm.DiscoverConfig(cfg.LLM)
	}

	cfg.Content.Timeout = cfg.LLM.Timeout
	cfg.Content.FlashcardModel = os.Getenv("FLASHY_FLASHCARD_MODEL")
	cfg.Content.QuizModel = os.Getenv("FLASHY_QUIZ_MODEL")
	cfg.Content.StructuredQuiz = getBool("FLASHY_STRUCTURED_QUIZ", false)

	cfg.Server.Addr = getEnv("FLASHY_ADDR", cfg.Server.Addr)
	cfg.Server.ReadTimeout = getDuration("FLASHY_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getDuration("FLASHY_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.Model = cfg.LLM.ModelID()

	cfg.Log.Level = getEnv("FLASHY_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("FLASHY_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = logging.DefaultLogFile()

	path, err := store.DefaultDBPath()
	if err != nil {
		return cfg, err
	}
	cfg.DBPath = path
	return cfg, nil
}

// SetProvider switches the LLM provider and re-derives the fields that
// depend on it.
func (c *Config) SetProvider(name string) {
	c.LLM.Provider = name
	c.ProviderFound = c.LLM.Validate() == nil
	c.Server.Model = c.LLM.ModelID()
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.LLM.Provider {
	case llm.ProviderGemini:
		c.LLM.Gemini.Model = model
	case llm.ProviderOpenAI:
		c.LLM.OpenAI.Model = model
	case llm.ProviderAnthropic:
		c.LLM.Anthropic.Model = model
	case llm.ProviderOpenRouter:
		c.LLM.OpenRouter.Model = model
	}
	c.Server.Model = c.LLM.ModelID()
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
