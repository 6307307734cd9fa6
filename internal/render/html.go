package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/frame"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/panel"
)

const containerText = "#FFFFFF"

var pageTmpl = template.Must(template.New("panel").Parse(`
{{- if .Loading -}}
<div>Loading...</div>
{{- else -}}
<div class="panel" style="padding: 32px; background-color: {{.Canvas}}; color: {{.Text}};">
{{- if .Columns}}
<div class="panel-table" style="height: {{.Height}}px; width: {{.Width}}px; overflow: auto;">
<table style="border-collapse: collapse; table-layout: fixed; width: {{.Width}}px;">
<thead style="background-color: {{.HeaderBackground}};">
<tr>
{{- range .Columns}}
<th style="width: {{.Width}}px; min-width: {{.Width}}px; text-align: {{.Align}}; border-bottom: 1px solid {{$.Border}};{{if $.Resizable}} resize: horizontal; overflow: hidden;{{end}}">{{.Title}}</th>
{{- end}}
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
{{- range .}}
<td style="text-align: {{.Align}}; border-bottom: 1px solid {{$.Border}};">
{{- if .Gauge -}}
<div class="gauge" style="display: flex; align-items: center; gap: 8px;"><div style="flex: 1; background-color: {{$.Border}};"><div style="width: {{.BarWidth}}%; height: 16px; background: linear-gradient(90deg, transparent, {{.Color}});"></div></div><span style="color: {{.Color}};">{{.Text}}</span></div>
{{- else -}}
{{.Text}}
{{- end -}}
</td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</div>
{{- end}}
</div>
{{- end}}
`))

type htmlColumn struct {
	Title string
	Width int
	Align template.CSS
}

type htmlCell struct {
	Text     string
	Align    template.CSS
	Gauge    bool
	BarWidth template.CSS
	Color    template.CSS
}

type htmlPage struct {
	Loading          bool
	Canvas           template.CSS
	Text             template.CSS
	Border           template.CSS
	HeaderBackground template.CSS
	Height           int
	Width            int
	Resizable        bool
	Columns          []htmlColumn
	Rows             [][]htmlCell
}

// HTMLRenderer renders the panel as an HTML fragment.
type HTMLRenderer struct {
	opts TableOptions
}

// NewHTMLRenderer creates an HTML renderer with the given table options.
func NewHTMLRenderer(opts TableOptions) *HTMLRenderer {
	return &HTMLRenderer{opts: opts}
}

// ContentType implements Renderer.
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Render writes the panel. A loading panel becomes the loading placeholder;
// a ready panel without frames gets the container alone.
func (r *HTMLRenderer) Render(w io.Writer, v panel.View) error {
	if err := pageTmpl.Execute(w, r.page(v)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (r *HTMLRenderer) page(v panel.View) htmlPage {
	if v.Loading() {
		return htmlPage{Loading: true}
	}

	p := htmlPage{
		Canvas:           template.CSS(v.Theme.Colors.Canvas),
		Text:             containerText,
		Border:           template.CSS(v.Theme.Colors.Border),
		HeaderBackground: template.CSS(v.Theme.Colors.HeaderBackground),
		Height:           r.opts.Height,
		Width:            r.opts.Width,
		Resizable:        r.opts.Resizable,
	}

	if len(v.Frames) == 0 || v.Frames[0].Len() == 0 {
		return p
	}
	f := v.Frames[0]

	for _, field := range f.Fields {
		p.Columns = append(p.Columns, htmlColumn{
			Title: field.DisplayName(),
			Width: r.opts.columnWidth(field.Config.Custom.Width),
			Align: cssAlign(field.Config.Custom.Align),
		})
	}

	for row := 0; row < f.Len(); row++ {
		cells := make([]htmlCell, len(f.Fields))
		for i, field := range f.Fields {
			cells[i] = cell(field, field.Values[row])
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

func cell(f *frame.Field, raw any) htmlCell {
	c := htmlCell{Align: cssAlign(f.Config.Custom.Align)}
	if f.Display == nil {
		c.Text = fmt.Sprint(raw)
		return c
	}

	dv := f.Display(raw)
	c.Text = dv.String()
	c.Color = template.CSS(dv.Color)
	if f.Config.Custom.DisplayMode == frame.DisplayModeGradientGauge && dv.Percent != nil {
		c.Gauge = true
		c.BarWidth = barWidth(*dv.Percent)
	}
	return c
}

// barWidth clamps the bar to the cell. The printed value is not clamped.
func barWidth(percent float64) template.CSS {
	pct := percent * 100
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	return template.CSS(fmt.Sprintf("%.1f", pct))
}

func cssAlign(align string) template.CSS {
	switch align {
	case frame.AlignCenter, frame.AlignRight:
		return template.CSS(align)
	default:
		return frame.AlignLeft
	}
}
