package panel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/domain"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/table"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
)

type stubSource struct {
	products []domain.Product
	err      error
	calls    atomic.Int32
}

func (s *stubSource) FetchProducts(_ context.Context) ([]domain.Product, error) {
	s.calls.Add(1)
	return s.products, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func products(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{Title: "p", Price: float64(i), Rating: 3}
	}
	return out
}

func TestPanel_StartsLoading(t *testing.T) {
	p := New(&stubSource{}, discardLogger())

	assert.Equal(t, StateLoading, p.State())
	err := p.Check(context.Background())
	assert.ErrorIs(t, err, ErrLoading)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))

	v := p.View(theme.Dark())
	assert.True(t, v.Loading())
	assert.Nil(t, v.Frames)
}

func TestPanel_MountSuccess(t *testing.T) {
	src := &stubSource{products: products(3)}
	p := New(src, discardLogger())

	p.Mount(context.Background())

	assert.Equal(t, StateReady, p.State())
	assert.NoError(t, p.Check(context.Background()))

	v := p.View(theme.Light())
	assert.False(t, v.Loading())
	assert.Equal(t, theme.NameLight, v.Theme.Name)
	require.Len(t, v.Frames, 1)
	assert.Equal(t, 3, v.Frames[0].Len())
	assert.Len(t, v.Frames[0].Fields, len(table.Columns))
}

func TestPanel_MountFailureStaysLoading(t *testing.T) {
	var buf bytes.Buffer
	fetchErr := errors.New("connection refused")
	src := &stubSource{err: fetchErr}
	p := New(src, slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NotPanics(t, func() { p.Mount(context.Background()) })

	assert.Equal(t, StateLoading, p.State())
	assert.Nil(t, p.Products())
	assert.Nil(t, p.View(theme.Dark()).Frames)
	assert.ErrorIs(t, p.Check(context.Background()), fetchErr)
	assert.Contains(t, buf.String(), "error fetching data")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestPanel_MountRunsOnce(t *testing.T) {
	src := &stubSource{err: errors.New("down")}
	p := New(src, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Mount(context.Background())
		}()
	}
	wg.Wait()

	src.err = nil
	src.products = products(1)
	p.Mount(context.Background())

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, StateLoading, p.State())
}

func TestPanel_EmptyListReadyWithoutFrames(t *testing.T) {
	src := &stubSource{products: []domain.Product{}}
	p := New(src, discardLogger())

	p.Mount(context.Background())

	assert.Equal(t, StateReady, p.State())
	v := p.View(theme.Dark())
	assert.False(t, v.Loading())
	assert.Nil(t, v.Frames)
	assert.Equal(t, int32(1), src.calls.Load())
}
