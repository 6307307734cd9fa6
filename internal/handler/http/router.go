package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/health"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/httputil"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/middleware"
)

// RouterConfig holds the middleware settings for NewRouter.
type RouterConfig struct {
	ServiceName    string
	CORS           middleware.CORSConfig
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with the panel, health and metrics routes.
// ctx bounds the lifetime of the rate limiter's background cleanup.
func NewRouter(
	ctx context.Context,
	cfg RouterConfig,
	panelHandler *PanelHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Panel
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		r.Get("/", panelHandler.Page)
		r.Get("/api/v1/panel", panelHandler.Get)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteError(w, req, apperrors.NotFound("route", req.URL.Path), logger)
	})

	return r
}
