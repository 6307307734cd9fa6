// Package frame holds the column-oriented structure handed to renderers,
// together with per-field display configuration.
package frame

import "fmt"

// FieldType is the value type of a column.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
)

// Field is one column of a Frame.
type Field struct {
	Name   string      `json:"name"`
	Type   FieldType   `json:"type"`
	Config FieldConfig `json:"config"`
	Values []any       `json:"values"`

	// Display is attached by ApplyFieldOverrides and is nil before that.
	Display DisplayProcessor `json:"-"`
}

// DisplayName returns the configured display name, or Name when unset.
func (f *Field) DisplayName() string {
	if f.Config.DisplayName != "" {
		return f.Config.DisplayName
	}
	return f.Name
}

// Frame is a named list of equal-length fields.
type Frame struct {
	Name   string   `json:"name,omitempty"`
	Fields []*Field `json:"fields"`
}

// New creates a frame with the given fields.
func New(name string, fields ...*Field) *Frame {
	return &Frame{Name: name, Fields: fields}
}

// AppendRow adds one value to each field, in field order.
func (f *Frame) AppendRow(values ...any) error {
	if len(values) != len(f.Fields) {
		return fmt.Errorf("append row: got %d values for %d fields", len(values), len(f.Fields))
	}
	for i, v := range values {
		f.Fields[i].Values = append(f.Fields[i].Values, v)
	}
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.Fields) == 0 {
		return 0
	}
	return len(f.Fields[0].Values)
}

// Rows returns the frame transposed into rows.
func (f *Frame) Rows() [][]any {
	n := f.Len()
	rows := make([][]any, n)
	for r := 0; r < n; r++ {
		row := make([]any, len(f.Fields))
		for c, field := range f.Fields {
			if r < len(field.Values) {
				row[c] = field.Values[r]
			}
		}
		rows[r] = row
	}
	return rows
}

// Field returns the field with the given name, or nil.
func (f *Frame) Field(name string) *Field {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld
		}
	}
	return nil
}
