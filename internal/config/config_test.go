package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/EkalavyanS/Flashy/internal/llm"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"FLASHY_LLM_PROVIDER", "FLASHY_GEMINI_API_KEY", "FLASHY_OPENAI_API_KEY",
		"FLASHY_LLM_TIMEOUT", "FLASHY_ADDR", "FLASHY_LOG_LEVEL", "FLASHY_LOG_FORMAT",
		"FLASHY_LOG_FILE", "FLASHY_DB", "FLASHY_FLASHCARD_MODEL", "FLASHY_QUIZ_MODEL",
		"FLASHY_READ_TIMEOUT", "FLASHY_WRITE_TIMEOUT", "FLASHY_STRUCTURED_QUIZ",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func TestFromEnv_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ProviderFound {
		t.Error("no provider key is set")
	}
	if cfg.Content.DeckSize != 10 || cfg.Content.QuizSize != 5 {
		t.Errorf("sizes = %d/%d, want 10/5", cfg.Content.DeckSize, cfg.Content.QuizSize)
	}
	if cfg.Content.Timeout != 60*time.Second {
		t.Errorf("content timeout = %s", cfg.Content.Timeout)
	}
	if cfg.Content.StructuredQuiz {
		t.Error("structured quiz mode is opt-in")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if want := filepath.Join(dir, "data", "flashy", "flashy.db"); cfg.DBPath != want {
		t.Errorf("db path = %q, want %q", cfg.DBPath, want)
	}
	if _, err := os.Stat(filepath.Dir(cfg.DBPath)); err != nil {
		t.Errorf("db directory not created: %v", err)
	}
	if want := filepath.Join(dir, "state", "flashy", "flashy.log"); cfg.Log.File != want {
		t.Errorf("log file = %q, want %q", cfg.Log.File, want)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("FLASHY_LLM_PROVIDER", "openai")
	t.Setenv("FLASHY_OPENAI_API_KEY", "sk-test")
	t.Setenv("FLASHY_LLM_TIMEOUT", "20s")
	t.Setenv("FLASHY_ADDR", "127.0.0.1:9000")
	t.Setenv("FLASHY_WRITE_TIMEOUT", "bogus")
	t.Setenv("FLASHY_LOG_LEVEL", "debug")
	t.Setenv("FLASHY_DB", filepath.Join(dir, "custom", "trace.db"))
	t.Setenv("FLASHY_QUIZ_MODEL", "gpt-4o")
	t.Setenv("FLASHY_STRUCTURED_QUIZ", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if !cfg.ProviderFound || cfg.LLM.Provider != llm.ProviderOpenAI {
		t.Errorf("provider = %q found=%v", cfg.LLM.Provider, cfg.ProviderFound)
	}
	if cfg.Content.Timeout != 20*time.Second {
		t.Errorf("content timeout = %s, want 20s", cfg.Content.Timeout)
	}
	if cfg.Content.QuizModel != "gpt-4o" || cfg.Content.FlashcardModel != "" {
		t.Errorf("models = %q/%q", cfg.Content.FlashcardModel, cfg.Content.QuizModel)
	}
	if !cfg.Content.StructuredQuiz {
		t.Error("FLASHY_STRUCTURED_QUIZ=true should enable structured quizzes")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.WriteTimeout != 90*time.Second {
		t.Errorf("write timeout = %s, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Server.Model != "gpt-4o-mini" {
		t.Errorf("server model = %q", cfg.Server.Model)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.DBPath != filepath.Join(dir, "custom", "trace.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestFromEnv_DiscoversStandardKey(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if !cfg.ProviderFound || cfg.LLM.Provider != llm.ProviderAnthropic {
		t.Errorf("provider = %q found=%v", cfg.LLM.Provider, cfg.ProviderFound)
	}
}

func TestFromEnv_ExplicitProviderIsNotReplaced(t *testing.T) {
	isolate(t)
	t.Setenv("FLASHY_LLM_PROVIDER", "openai")
	t.Setenv("GEMINI_API_KEY", "AIza")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ProviderFound || cfg.LLM.Provider != llm.ProviderOpenAI {
		t.Errorf("provider = %q found=%v", cfg.LLM.Provider, cfg.ProviderFound)
	}
}

func TestSetProviderAndModel(t *testing.T) {
	isolate(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	cfg.SetProvider(llm.ProviderMock)
	if !cfg.ProviderFound || cfg.Server.Model != "mock" {
		t.Errorf("found=%v model=%q", cfg.ProviderFound, cfg.Server.Model)
	}

	cfg.SetProvider(llm.ProviderGemini)
	cfg.SetModel("gemini-pro")
	if cfg.Server.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q, want gemini-2.5-pro", cfg.Server.Model)
	}
}
