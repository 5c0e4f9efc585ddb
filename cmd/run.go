package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/app"
	"github.com/EkalavyanS/Flashy/internal/logging"
	"github.com/EkalavyanS/Flashy/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log)
	logFile := logging.RedirectToFile(log, cfg.Log.File)
	defer logFile.Close()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{Log: log}
	source, err := newSource(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Flashcards and quizzes will be unavailable.")
		log.WithError(err).Warn("starting without an LLM provider")
	} else {
		opts.Source = source
	}

	log.WithField("provider", cfg.LLM.Provider).Info("starting tui")
	return app.Run(ctx, opts)
}
