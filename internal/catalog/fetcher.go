// Package catalog fetches the product list from the upstream catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/domain"
	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/httpclient"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/logger"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/tracing"
)

const (
	serviceName = "catalog"
	tracerName  = "github.com/imrulkk89/ebiw-grafana-ui/internal/catalog"

	// DefaultURL is the public product catalog.
	DefaultURL = "https://dummyjson.com/products"
	// DefaultProductsPath locates the product array in the response body.
	DefaultProductsPath = "products"

	maxBodyBytes = 32 << 20
)

// HTTPGetter issues GET requests. *httpclient.Client satisfies it.
type HTTPGetter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Fetcher loads products from the catalog endpoint. Every call issues exactly
// one GET; nothing is retried or cached.
type Fetcher struct {
	client       HTTPGetter
	url          string
	productsPath string
	logger       *slog.Logger

	mu      sync.RWMutex
	lastErr error
}

// NewFetcher creates a Fetcher. Empty url or productsPath fall back to the
// defaults.
func NewFetcher(client HTTPGetter, url, productsPath string, logger *slog.Logger) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if productsPath == "" {
		productsPath = DefaultProductsPath
	}
	return &Fetcher{
		client:       client,
		url:          url,
		productsPath: productsPath,
		logger:       logger,
	}
}

// FetchProducts returns the products in upstream order. Failures are
// returned as upstream AppErrors.
func (f *Fetcher) FetchProducts(ctx context.Context) (products []domain.Product, err error) {
	start := time.Now()
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "catalog.FetchProducts",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(http.MethodGet),
			semconv.URLFull(f.url),
		),
	)
	defer func() {
		fetchDuration.Observe(time.Since(start).Seconds())
		f.setLastErr(err)
		if err != nil {
			fetchTotal.WithLabelValues(resultError).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			fetchTotal.WithLabelValues(resultSuccess).Inc()
			productsGauge.Set(float64(len(products)))
			span.SetAttributes(attribute.Int("catalog.products", len(products)))
		}
		span.End()
	}()

	resp, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, apperrors.Upstream(serviceName, "request failed", err)
	}
	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))

	if !httpclient.IsSuccess(resp.StatusCode) {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Upstream(serviceName, "read body", err)
	}

	products, err = decodeProducts(body, f.productsPath)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx, f.logger).DebugContext(ctx, "catalog fetched",
		slog.Int("products", len(products)),
		slog.Duration("duration", time.Since(start)),
	)
	return products, nil
}

// decodeProducts extracts the array at path and decodes it. A successful
// response without the array is an upstream error.
func decodeProducts(body []byte, path string) ([]domain.Product, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.Upstream(serviceName, "malformed JSON body", nil)
	}

	res := gjson.GetBytes(body, path)
	if !res.IsArray() {
		return nil, apperrors.Upstream(serviceName, fmt.Sprintf("no product array at %q", path), nil)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(res.Raw), &products); err != nil {
		return nil, apperrors.Upstream(serviceName, "decode products", err)
	}
	return products, nil
}

func (f *Fetcher) setLastErr(err error) {
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
}

// Check reports the outcome of the most recent fetch. It returns nil before
// the first fetch.
func (f *Fetcher) Check(_ context.Context) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

var _ HTTPGetter = (*httpclient.Client)(nil)
