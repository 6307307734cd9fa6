package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/panel"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/render"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
	apperrors "github.com/imrulkk89/ebiw-grafana-ui/pkg/errors"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/httputil"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/logger"
)

// Viewer exposes a panel snapshot. *panel.Panel satisfies it.
type Viewer interface {
	View(th theme.Theme) panel.View
}

// PanelHandler serves the rendered panel.
type PanelHandler struct {
	panel        Viewer
	defaultTheme theme.Theme
	opts         render.TableOptions
	html         *render.HTMLRenderer
	logger       *slog.Logger
}

// NewPanelHandler creates a new panel HTTP handler.
func NewPanelHandler(p Viewer, defaultTheme theme.Theme, opts render.TableOptions, logger *slog.Logger) *PanelHandler {
	return &PanelHandler{
		panel:        p,
		defaultTheme: defaultTheme,
		opts:         opts,
		html:         render.NewHTMLRenderer(opts),
		logger:       logger,
	}
}

// resolveTheme returns the theme named by ?theme, or the default when absent.
func (h *PanelHandler) resolveTheme(r *http.Request) (theme.Theme, error) {
	name := r.URL.Query().Get("theme")
	if name == "" {
		return h.defaultTheme, nil
	}
	return theme.ByName(name)
}

// Page handles GET /
func (h *PanelHandler) Page(w http.ResponseWriter, r *http.Request) {
	th, err := h.resolveTheme(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var buf bytes.Buffer
	if err := h.html.Render(&buf, h.panel.View(th)); err != nil {
		httputil.WriteError(w, r, apperrors.Internal(err), h.logger)
		return
	}

	w.Header().Set("Content-Type", h.html.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).WarnContext(r.Context(), "write panel html",
			slog.String("error", err.Error()),
		)
	}
}

// Get handles GET /api/v1/panel
func (h *PanelHandler) Get(w http.ResponseWriter, r *http.Request) {
	th, err := h.resolveTheme(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: render.NewDocument(h.panel.View(th), h.opts),
	})
}
