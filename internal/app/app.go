package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/notes-app/internal/adapter/postgres"
	"github.com/heartmarshall/notes-app/internal/config"
	"github.com/heartmarshall/notes-app/migrations"
)

// Run is the notes API entry point. It loads configuration, connects to and
// migrates the database, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting notes api",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
		return err
	}

	api, err := NewAPI(cfg, pool, logger)
	if err != nil {
		return err
	}
	defer api.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.Handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}
