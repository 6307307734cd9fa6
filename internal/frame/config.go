package frame

// Units understood by the display processor. Any other unit string is
// appended as a suffix.
const (
	UnitNone        = "none"
	UnitCurrencyUSD = "currencyUSD"
	UnitPercent     = "percent"
)

// Cell alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// DisplayModeGradientGauge draws numeric cells as a bar scaled between the
// field min and max.
const DisplayModeGradientGauge = "gradient-gauge"

// FieldConfig carries display hints for a field. Zero values mean unset.
type FieldConfig struct {
	DisplayName string            `json:"displayName,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	Decimals    *int              `json:"decimals,omitempty"`
	Min         *float64          `json:"min,omitempty"`
	Max         *float64          `json:"max,omitempty"`
	Thresholds  *ThresholdsConfig `json:"thresholds,omitempty"`
	Custom      CustomConfig      `json:"custom"`
}

// CustomConfig holds table-specific hints.
type CustomConfig struct {
	Align       string `json:"align,omitempty"`
	Width       int    `json:"width,omitempty"`
	DisplayMode string `json:"displayMode,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// clone returns a deep copy of c.
func (c FieldConfig) clone() FieldConfig {
	out := c
	if c.Decimals != nil {
		out.Decimals = IntPtr(*c.Decimals)
	}
	if c.Min != nil {
		out.Min = FloatPtr(*c.Min)
	}
	if c.Max != nil {
		out.Max = FloatPtr(*c.Max)
	}
	if c.Thresholds != nil {
		t := c.Thresholds.clone()
		out.Thresholds = &t
	}
	return out
}

// fillFrom copies every field of src that is set in src but unset in c.
func (c *FieldConfig) fillFrom(src FieldConfig) {
	if c.DisplayName == "" {
		c.DisplayName = src.DisplayName
	}
	if c.Unit == "" {
		c.Unit = src.Unit
	}
	if c.Decimals == nil && src.Decimals != nil {
		c.Decimals = IntPtr(*src.Decimals)
	}
	if c.Min == nil && src.Min != nil {
		c.Min = FloatPtr(*src.Min)
	}
	if c.Max == nil && src.Max != nil {
		c.Max = FloatPtr(*src.Max)
	}
	if c.Thresholds == nil && src.Thresholds != nil {
		t := src.Thresholds.clone()
		c.Thresholds = &t
	}
	if c.Custom.Align == "" {
		c.Custom.Align = src.Custom.Align
	}
	if c.Custom.Width == 0 {
		c.Custom.Width = src.Custom.Width
	}
	if c.Custom.DisplayMode == "" {
		c.Custom.DisplayMode = src.Custom.DisplayMode
	}
}

// overlay copies every field that is set in src onto c.
func (c *FieldConfig) overlay(src FieldConfig) {
	if src.DisplayName != "" {
		c.DisplayName = src.DisplayName
	}
	if src.Unit != "" {
		c.Unit = src.Unit
	}
	if src.Decimals != nil {
		c.Decimals = IntPtr(*src.Decimals)
	}
	if src.Min != nil {
		c.Min = FloatPtr(*src.Min)
	}
	if src.Max != nil {
		c.Max = FloatPtr(*src.Max)
	}
	if src.Thresholds != nil {
		t := src.Thresholds.clone()
		c.Thresholds = &t
	}
	if src.Custom.Align != "" {
		c.Custom.Align = src.Custom.Align
	}
	if src.Custom.Width != 0 {
		c.Custom.Width = src.Custom.Width
	}
	if src.Custom.DisplayMode != "" {
		c.Custom.DisplayMode = src.Custom.DisplayMode
	}
}
