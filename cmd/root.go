package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/config"
	"github.com/EkalavyanS/Flashy/internal/content"
	"github.com/EkalavyanS/Flashy/internal/llm"
	"github.com/EkalavyanS/Flashy/internal/logging"
	"github.com/EkalavyanS/Flashy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "flashy",
	Short: "AI flashcards and quizzes for any topic",
	Long:  "Flashy: turn a topic and a grade level into flashcards or a quick quiz, generated by an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLASHY_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides FLASHY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter, mock (overrides FLASHY_LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("model", "", "Model for the selected provider")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.SetProvider(p)
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.SetModel(m)
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	path, err := resolveDBPath(cmd)
	if err != nil {
		return cfg, fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = path
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FLASHY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the trace database at the --db / FLASHY_DB path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newSource builds the content generator for cfg. It returns a nil
// Source and a non-nil error when no provider is usable.
func newSource(ctx context.Context, cfg config.Config, repo store.EventRepo, log logrus.FieldLogger) (content.Source, error) {
	if !cfg.ProviderFound {
		return nil, fmt.Errorf("no API key for provider %q", cfg.LLM.Provider)
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, repo, log)
	if err != nil {
		return nil, err
	}
	return content.New(provider, cfg.Content).WithLogger(log), nil
}

// stderrLogger is the logger for the non-TUI commands.
func stderrLogger(cfg config.Config) *logrus.Logger {
	opts := cfg.Log
	opts.Output = os.Stderr
	return logging.New(opts)
}
