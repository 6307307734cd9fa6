package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/frame"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/panel"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
)

// Document is the JSON form of a panel view.
type Document struct {
	State   panel.State  `json:"state"`
	Theme   theme.Theme  `json:"theme"`
	Options TableOptions `json:"options"`
	Frames  []FrameDoc   `json:"frames"`
}

// FrameDoc is a frame with formatted display values alongside the raw ones.
type FrameDoc struct {
	Name   string     `json:"name"`
	Length int        `json:"length"`
	Fields []FieldDoc `json:"fields"`
}

// FieldDoc is one column of a FrameDoc.
type FieldDoc struct {
	Name        string               `json:"name"`
	DisplayName string               `json:"displayName"`
	Type        frame.FieldType      `json:"type"`
	Config      frame.FieldConfig    `json:"config"`
	Values      []any                `json:"values"`
	Display     []frame.DisplayValue `json:"display"`
}

// NewDocument converts v into its JSON document.
func NewDocument(v panel.View, opts TableOptions) Document {
	doc := Document{
		State:   v.State,
		Theme:   v.Theme,
		Options: opts,
		Frames:  []FrameDoc{},
	}

	for _, f := range v.Frames {
		fd := FrameDoc{Name: f.Name, Length: f.Len(), Fields: make([]FieldDoc, 0, len(f.Fields))}
		for _, field := range f.Fields {
			values := field.Values
			if values == nil {
				values = []any{}
			}
			display := make([]frame.DisplayValue, 0, len(values))
			if field.Display != nil {
				for _, raw := range values {
					display = append(display, field.Display(raw))
				}
			}
			fd.Fields = append(fd.Fields, FieldDoc{
				Name:        field.Name,
				DisplayName: field.DisplayName(),
				Type:        field.Type,
				Config:      field.Config,
				Values:      values,
				Display:     display,
			})
		}
		doc.Frames = append(doc.Frames, fd)
	}
	return doc
}

// JSONRenderer renders the panel as a JSON Document.
type JSONRenderer struct {
	opts   TableOptions
	indent bool
}

// NewJSONRenderer creates a JSON renderer. indent pretty-prints the output.
func NewJSONRenderer(opts TableOptions, indent bool) *JSONRenderer {
	return &JSONRenderer{opts: opts, indent: indent}
}

// ContentType implements Renderer.
func (r *JSONRenderer) ContentType() string { return "application/json" }

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, v panel.View) error {
	enc := json.NewEncoder(w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewDocument(v, r.opts)); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
