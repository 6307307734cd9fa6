package frame

// ThresholdsMode selects how step values are compared.
type ThresholdsMode string

const (
	// ThresholdsAbsolute compares the raw value against each step.
	ThresholdsAbsolute ThresholdsMode = "absolute"
	// ThresholdsPercentage compares the value's position between the field
	// min and max, scaled to 0..100.
	ThresholdsPercentage ThresholdsMode = "percentage"
)

// Threshold is one colour step.
type Threshold struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ThresholdsConfig maps values to colours. Steps are ordered by Value. The
// first step is the base and applies to anything below the second step,
// whatever its own Value.
type ThresholdsConfig struct {
	Mode  ThresholdsMode `json:"mode"`
	Steps []Threshold    `json:"steps"`
}

func (t ThresholdsConfig) clone() ThresholdsConfig {
	out := t
	out.Steps = append([]Threshold(nil), t.Steps...)
	return out
}

// Active returns the step that applies to v. In percentage mode lo and hi
// must both be set; otherwise v is compared as an absolute value. ok is false
// when there are no steps.
func (t ThresholdsConfig) Active(v float64, lo, hi *float64) (Threshold, bool) {
	if len(t.Steps) == 0 {
		return Threshold{}, false
	}

	if t.Mode == ThresholdsPercentage && lo != nil && hi != nil && *hi != *lo {
		v = (v - *lo) / (*hi - *lo) * 100
	}

	active := t.Steps[0]
	for _, step := range t.Steps[1:] {
		if v < step.Value {
			break
		}
		active = step
	}
	return active, true
}
