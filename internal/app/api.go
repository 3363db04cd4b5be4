package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/notes-app/internal/adapter/kafka"
	"github.com/heartmarshall/notes-app/internal/adapter/postgres/note"
	"github.com/heartmarshall/notes-app/internal/config"
	notesvc "github.com/heartmarshall/notes-app/internal/service/note"
	mcptransport "github.com/heartmarshall/notes-app/internal/transport/mcp"
	"github.com/heartmarshall/notes-app/internal/transport/middleware"
	"github.com/heartmarshall/notes-app/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

// API is the fully wired notes HTTP handler together with the resources it
// owns.
type API struct {
	Handler http.Handler
	closers []func()
}

// Close releases resources owned by the API (event publisher, rate limiter).
// The database pool belongs to the caller.
func (a *API) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// NewAPI wires repositories, services and transports on top of pool.
func NewAPI(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*API, error) {
	api := &API{}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Services.
	svcMetrics := notesvc.NewMetrics()
	if err := svcMetrics.RegisterCollectors(reg); err != nil {
		return nil, fmt.Errorf("register note metrics: %w", err)
	}
	opts := []notesvc.Option{notesvc.WithMetrics(svcMetrics)}

	if cfg.Kafka.Enabled() {
		pub := kafka.NewPublisher(cfg.Kafka)
		api.closers = append(api.closers, func() {
			if err := pub.Close(); err != nil {
				logger.Warn("close event publisher", slog.String("error", err.Error()))
			}
		})
		opts = append(opts, notesvc.WithPublisher(pub))
		logger.Info("note events enabled",
			slog.String("brokers", cfg.Kafka.Brokers),
			slog.String("topic", cfg.Kafka.Topic),
		)
	}

	noteService := notesvc.NewService(logger, note.New(pool), opts...)

	// Transports.
	deps := RouterDeps{
		Notes:  rest.NewNotesHandler(noteService, logger),
		Health: rest.NewHealthHandler(pool, BuildVersion()),
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
		deps.MetricsPath = cfg.Metrics.Path
	}
	if cfg.MCP.Enabled {
		deps.MCP = server.NewStreamableHTTPServer(
			mcptransport.NewServer(cfg.MCP.Name, Version, noteService),
		)
	}

	// Middleware, outermost first. HTTP metrics sit next to the mux so the
	// matched route pattern is visible to them.
	httpMetrics := middleware.NewHTTPMetrics()
	if err := httpMetrics.RegisterCollectors(reg); err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled() {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimitCleanupInterval)
		api.closers = append(api.closers, rl.Stop)
		if err := rl.RegisterCollectors(reg); err != nil {
			return nil, fmt.Errorf("register rate limit metrics: %w", err)
		}
		mws = append(mws, rl.Limit())
	}
	mws = append(mws, httpMetrics.Middleware())

	api.Handler = middleware.Chain(mws...)(NewRouter(deps))
	return api, nil
}
