package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/audit"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only review server",
	Long: `Serve starts an HTTP server exposing run history and CSV previews
as a JSON API. The server never modifies any data.

Run history endpoints require DATABASE_URL; without it they answer 503 while
previews keep working.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var auditSvc *audit.Service
	if cfg.Audit.URL != "" {
		svc, err := audit.New(ctx, cfg.Audit)
		if err != nil {
			return err
		}
		defer svc.Close()
		auditSvc = svc
		slog.Info("run history enabled")
	} else {
		slog.Info("no database configured, run history disabled")
	}

	server := web.NewServer(cfg.Server, auditSvc)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("review server listening", "addr", cfg.Server.Addr())
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("review server stopped")
	return nil
}
