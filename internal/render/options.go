// Package render turns a panel view into HTML or JSON.
package render

import (
	"io"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/panel"
)

// TableOptions are the table widget settings.
type TableOptions struct {
	Height         int  `json:"height"`
	Width          int  `json:"width"`
	ColumnMinWidth int  `json:"columnMinWidth"`
	Resizable      bool `json:"resizable"`
}

// DefaultTableOptions returns an 800x1500 resizable table with 200px minimum
// column width.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Height:         800,
		Width:          1500,
		ColumnMinWidth: 200,
		Resizable:      true,
	}
}

// columnWidth is the field width, or the minimum column width when unset.
func (o TableOptions) columnWidth(fieldWidth int) int {
	if fieldWidth > 0 {
		return fieldWidth
	}
	return o.ColumnMinWidth
}

// Renderer writes a panel view in one output format.
type Renderer interface {
	Render(w io.Writer, v panel.View) error
	ContentType() string
}
