package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/notes-app/internal/config"
	"github.com/heartmarshall/notes-app/internal/transport/middleware"
	"github.com/heartmarshall/notes-app/internal/webui"
	"github.com/heartmarshall/notes-app/internal/webui/notesapi"
	"github.com/heartmarshall/notes-app/internal/webui/session"
)

// NewWeb wires the UI handler against the notes API at cfg.Web.APIURL.
func NewWeb(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	client, err := notesapi.New(cfg.Web.APIURL, cfg.Web.APITimeout)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg.Web.CookieSecure)
	ui, err := webui.NewHandler(client, sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("create ui handler: %w", err)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		sessions.Load(),
		middleware.Logger(logger),
	)(ui.Routes()), nil
}

// RunWeb is the UI entry point. It serves the UI until ctx is cancelled.
func RunWeb(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting notes web",
		slog.String("version", BuildVersion()),
		slog.String("api_url", cfg.Web.APIURL),
	)

	handler, err := NewWeb(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}
