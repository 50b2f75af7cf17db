package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nordique-ai/nordique/internal/adapters/history"
	"github.com/nordique-ai/nordique/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the REST API server: scoring, consensus analysis, presets,
and analysis history.

Examples:
  # Start with defaults (:8470)
  nordique serve

  # Custom address, no persistence
  nordique serve --addr 127.0.0.1:9000 --no-history`,
	RunE: runServe,
}

var (
	serveAddr      string
	serveNoHistory bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default from config, :8470)")
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false,
		"disable analysis persistence and the history endpoints")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	opts := []api.ServerOption{api.WithLogger(logger.Logger)}
	if !serveNoHistory {
		store, err := history.Open(cfg.State.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, api.WithHistory(store))
		logger.Info("history store opened", "path", cfg.State.Path)
	}

	server := api.NewServer(cfg.Analysis, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
