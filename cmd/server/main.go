package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/lister/internal/config"
	"github.com/JonMunkholm/lister/internal/core"
	"github.com/JonMunkholm/lister/internal/database"
	"github.com/JonMunkholm/lister/internal/logging"
	"github.com/JonMunkholm/lister/internal/metrics"
	"github.com/JonMunkholm/lister/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Security.AuthEnabled() {
		slog.Info("authentication enabled")
	} else {
		slog.Warn("authentication disabled, API is open")
	}

	var m *metrics.Collector
	opts := []core.Option{core.WithOperationTimeout(cfg.Database.QueryTimeout)}
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
		opts = append(opts, core.WithMetrics(m))
	}

	service := core.NewService(st, opts...)
	server := web.NewServer(service, cfg, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
