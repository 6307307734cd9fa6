package frame

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/theme"
)

// DisplayValue is a cell value prepared for rendering.
type DisplayValue struct {
	Text    string   `json:"text"`
	Prefix  string   `json:"prefix,omitempty"`
	Suffix  string   `json:"suffix,omitempty"`
	Numeric float64  `json:"numeric"`
	Color   string   `json:"color"`
	Percent *float64 `json:"percent,omitempty"`
}

// String returns the value with its unit prefix and suffix.
func (d DisplayValue) String() string {
	return d.Prefix + d.Text + d.Suffix
}

// DisplayProcessor formats a raw field value.
type DisplayProcessor func(v any) DisplayValue

// NewDisplayProcessor returns the formatter for a field with config cfg
// under th.
func NewDisplayProcessor(typ FieldType, cfg FieldConfig, th theme.Theme) DisplayProcessor {
	prefix, suffix := unitAffixes(cfg.Unit)

	return func(v any) DisplayValue {
		n, isNum := toFloat(v)
		if typ != FieldTypeNumber || !isNum {
			return DisplayValue{Text: toText(v), Color: th.Colors.Text}
		}

		dv := DisplayValue{
			Text:    formatNumber(n, cfg.Decimals),
			Prefix:  prefix,
			Suffix:  suffix,
			Numeric: n,
			Color:   th.Colors.Text,
		}

		if cfg.Min != nil && cfg.Max != nil && *cfg.Max != *cfg.Min {
			p := (n - *cfg.Min) / (*cfg.Max - *cfg.Min)
			dv.Percent = &p
		}

		if cfg.Thresholds != nil {
			if step, ok := cfg.Thresholds.Active(n, cfg.Min, cfg.Max); ok {
				dv.Color = th.ColorByName(step.Color)
			}
		}
		return dv
	}
}

func unitAffixes(unit string) (prefix, suffix string) {
	switch unit {
	case "", UnitNone:
		return "", ""
	case UnitCurrencyUSD:
		return "$", ""
	case UnitPercent:
		return "", "%"
	default:
		return "", " " + unit
	}
}

// formatNumber rounds half away from zero when decimals is set and uses the
// shortest representation otherwise.
func formatNumber(n float64, decimals *int) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(n)
	if decimals == nil {
		return d.String()
	}
	return d.StringFixed(int32(*decimals))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
