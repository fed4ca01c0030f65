package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/alcheck/internal/config"
	"github.com/JonMunkholm/alcheck/internal/logging"
	"github.com/JonMunkholm/alcheck/internal/web"
	"github.com/spf13/cobra"
)

var servePreload bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lookup web server",
	Long:  `Serve the lookup page and JSON API. The spreadsheet is fetched on the first lookup unless --preload is set.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&servePreload, "preload", false, "Fetch the spreadsheet at startup instead of on first lookup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	slog.Info("schema selected",
		"schema", a.loader.Schema().Name,
		"flags", len(a.loader.Schema().Flags),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if servePreload {
		go func() {
			if err := a.loader.EnsureLoaded(ctx); err != nil {
				slog.Warn("preload failed; will retry on first lookup", "error", err)
			}
		}()
	}

	go a.loader.StartRefreshScheduler(ctx, cfg.Source.RefreshInterval)

	server := web.NewServer(a.service, a.board, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
