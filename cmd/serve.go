package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/server"
	"github.com/EkalavyanS/Flashy/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the flashcard and quiz HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		log := stderrLogger(cfg)

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		source, err := newSource(ctx, cfg, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		return server.New(source, cfg.Server, log).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides FLASHY_ADDR, default :8080)")
}
