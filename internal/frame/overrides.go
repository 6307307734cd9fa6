package frame

import "github.com/imrulkk89/ebiw-grafana-ui/internal/theme"

// ConfigOverride applies Config to the field whose name equals Matcher.
type ConfigOverride struct {
	Matcher string      `json:"matcher"`
	Config  FieldConfig `json:"config"`
}

// FieldConfigSource is the panel-level field configuration.
type FieldConfigSource struct {
	Defaults  FieldConfig      `json:"defaults"`
	Overrides []ConfigOverride `json:"overrides"`
}

// ApplyOptions are the inputs to ApplyFieldOverrides.
type ApplyOptions struct {
	Data             []*Frame
	FieldConfig      FieldConfigSource
	Theme            theme.Theme
	ReplaceVariables func(string) string
}

// ApplyFieldOverrides returns copies of opts.Data with the final field
// configuration resolved and a display processor attached to each field.
// For every field: defaults fill unset options, matching overrides are
// applied in order, the display name goes through ReplaceVariables and
// threshold colours are resolved against the theme. The input frames are
// not modified.
func ApplyFieldOverrides(opts ApplyOptions) []*Frame {
	replace := opts.ReplaceVariables
	if replace == nil {
		replace = func(s string) string { return s }
	}

	out := make([]*Frame, 0, len(opts.Data))
	for _, src := range opts.Data {
		if src == nil {
			continue
		}
		fr := &Frame{Name: src.Name, Fields: make([]*Field, 0, len(src.Fields))}
		for _, sf := range src.Fields {
			cfg := sf.Config.clone()
			cfg.fillFrom(opts.FieldConfig.Defaults)
			for _, o := range opts.FieldConfig.Overrides {
				if o.Matcher == sf.Name {
					cfg.overlay(o.Config)
				}
			}

			f := &Field{
				Name:   sf.Name,
				Type:   sf.Type,
				Config: cfg,
				Values: append([]any(nil), sf.Values...),
			}
			f.Config.DisplayName = replace(f.DisplayName())

			if t := f.Config.Thresholds; t != nil {
				for i := range t.Steps {
					t.Steps[i].Color = opts.Theme.ColorByName(t.Steps[i].Color)
				}
			}

			f.Display = NewDisplayProcessor(f.Type, f.Config, opts.Theme)
			fr.Fields = append(fr.Fields, f)
		}
		out = append(out, fr)
	}
	return out
}
