package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/catalog"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/config"
	handler "github.com/imrulkk89/ebiw-grafana-ui/internal/handler/http"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/panel"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/render"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/health"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/httpclient"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/middleware"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/tracing"
)

// ServiceName identifies this process in logs, metrics and traces.
const ServiceName = "product-panel"

const serviceVersion = "0.1.0"

// Snapshot output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// App wires together all dependencies and runs the panel host.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	theme          theme.Theme
	tableOpts      render.TableOptions
	panel          *panel.Panel
	httpServer     *http.Server
	stopBackground context.CancelFunc
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "init tracer")
	}

	th, err := theme.ByName(cfg.Theme)
	if err != nil {
		return nil, apperrors.Wrap(err, "resolve theme")
	}

	client := httpclient.New(httpclient.Config{
		Timeout:         cfg.CatalogTimeout,
		MaxConnsPerHost: httpclient.DefaultConfig().MaxConnsPerHost,
		UserAgent:       ServiceName + "/" + serviceVersion,
	})
	fetcher := catalog.NewFetcher(client, cfg.CatalogURL, cfg.CatalogProductsPath, logger)
	pnl := panel.New(fetcher, logger)
	logger.Info("catalog fetcher initialized",
		slog.String("url", cfg.CatalogURL),
		slog.String("products_path", cfg.CatalogProductsPath),
		slog.Duration("timeout", cfg.CatalogTimeout),
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("panel", pnl.Check)
	healthHandler.RegisterNonCritical("catalog", fetcher.Check)

	tableOpts := render.TableOptions{
		Height:         cfg.TableHeight,
		Width:          cfg.TableWidth,
		ColumnMinWidth: cfg.TableColumnMinWidth,
		Resizable:      cfg.TableResizable,
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(bgCtx, handler.RouterConfig{
		ServiceName:    ServiceName,
		CORS:           corsCfg,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, handler.NewPanelHandler(pnl, th, tableOpts, logger), healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		theme:          th,
		tableOpts:      tableOpts,
		panel:          pnl,
		httpServer:     httpServer,
		stopBackground: stopBackground,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Panel returns the hosted panel.
func (a *App) Panel() *panel.Panel { return a.panel }

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.httpServer.Handler }

// Run mounts the panel in the background and serves HTTP, blocking until the
// context is canceled. The server does not wait for the fetch.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go a.panel.Mount(ctx)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Snapshot mounts the panel, waiting for the fetch, and writes one render in
// the given format. A failed fetch still renders, as the loading placeholder.
func (a *App) Snapshot(ctx context.Context, format string, w io.Writer) error {
	var r render.Renderer
	switch format {
	case FormatHTML:
		r = render.NewHTMLRenderer(a.tableOpts)
	case FormatJSON:
		r = render.NewJSONRenderer(a.tableOpts, true)
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}

	a.panel.Mount(ctx)
	return r.Render(w, a.panel.View(a.theme))
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.stopBackground()

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
