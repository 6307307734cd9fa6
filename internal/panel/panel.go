// Package panel owns the product panel's lifecycle: a single fetch on mount
// and the loading to ready transition.
package panel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/domain"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/frame"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/table"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/logger"
)

// State is the panel's user-visible state.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// ErrLoading is reported by Check while no fetch has succeeded.
var ErrLoading = apperrors.Unavailable("panel still loading")

// ProductSource supplies the product list. *catalog.Fetcher satisfies it.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// View is a snapshot of the panel for rendering.
type View struct {
	State  State
	Theme  theme.Theme
	Frames []*frame.Frame
}

// Loading reports whether the view should show the loading placeholder.
func (v View) Loading() bool { return v.State != StateReady }

// Panel holds the fetched products. It moves from loading to ready at most
// once and never back. A failed fetch leaves it loading for good; the error
// is logged and exposed through Check only.
type Panel struct {
	source ProductSource
	logger *slog.Logger

	mountOnce sync.Once

	mu       sync.RWMutex
	state    State
	products []domain.Product
	fetchErr error
}

// New creates a panel in the loading state.
func New(source ProductSource, logger *slog.Logger) *Panel {
	return &Panel{
		source: source,
		logger: logger,
		state:  StateLoading,
	}
}

// Mount fetches the products once. Later calls return immediately, whatever
// the outcome of the first.
func (p *Panel) Mount(ctx context.Context) {
	p.mountOnce.Do(func() { p.load(ctx) })
}

func (p *Panel) load(ctx context.Context) {
	products, err := p.source.FetchProducts(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.fetchErr = err
		logger.WithContext(ctx, p.logger).ErrorContext(ctx, "error fetching data",
			slog.String("error", err.Error()),
		)
		return
	}

	p.products = products
	p.fetchErr = nil
	p.state = StateReady
	logger.WithContext(ctx, p.logger).InfoContext(ctx, "panel ready",
		slog.Int("products", len(products)),
	)
}

// State returns the current state.
func (p *Panel) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Products returns the fetched products, or nil while loading.
func (p *Panel) Products() []domain.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.products
}

// View returns the panel as seen under th. Frames are built only when the
// panel is ready with at least one product; otherwise they are nil.
func (p *Panel) View(th theme.Theme) View {
	p.mu.RLock()
	state, products := p.state, p.products
	p.mu.RUnlock()

	v := View{State: state, Theme: th}
	if state == StateReady && len(products) > 0 {
		v.Frames = table.Build(th, products)
	}
	return v
}

// Check is a readiness checker. It returns the last fetch error, or
// ErrLoading if the panel is not ready yet.
func (p *Panel) Check(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.state == StateReady {
		return nil
	}
	if p.fetchErr != nil {
		return p.fetchErr
	}
	return ErrLoading
}
