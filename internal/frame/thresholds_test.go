package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratingThresholds() ThresholdsConfig {
	return ThresholdsConfig{
		Mode: ThresholdsAbsolute,
		Steps: []Threshold{
			{Value: 0, Color: "blue"},
			{Value: 2.5, Color: "green"},
		},
	}
}

func TestThresholds_Absolute(t *testing.T) {
	th := ratingThresholds()

	tests := []struct {
		v    float64
		want string
	}{
		{-1, "blue"},
		{0, "blue"},
		{2.49, "blue"},
		{2.5, "green"},
		{4.9, "green"},
		{7, "green"},
	}
	for _, tc := range tests {
		step, ok := th.Active(tc.v, nil, nil)
		assert.True(t, ok)
		assert.Equal(t, tc.want, step.Color, "value %v", tc.v)
	}
}

func TestThresholds_Percentage(t *testing.T) {
	th := ThresholdsConfig{
		Mode: ThresholdsPercentage,
		Steps: []Threshold{
			{Value: 0, Color: "red"},
			{Value: 50, Color: "yellow"},
			{Value: 80, Color: "green"},
		},
	}
	lo, hi := FloatPtr(0), FloatPtr(5)

	step, _ := th.Active(2, lo, hi)
	assert.Equal(t, "red", step.Color)

	step, _ = th.Active(2.5, lo, hi)
	assert.Equal(t, "yellow", step.Color)

	step, _ = th.Active(4.5, lo, hi)
	assert.Equal(t, "green", step.Color)
}

func TestThresholds_PercentageWithoutRangeIsAbsolute(t *testing.T) {
	th := ThresholdsConfig{
		Mode:  ThresholdsPercentage,
		Steps: []Threshold{{Value: 0, Color: "red"}, {Value: 50, Color: "green"}},
	}

	step, _ := th.Active(60, nil, nil)
	assert.Equal(t, "green", step.Color)
}

func TestThresholds_NoSteps(t *testing.T) {
	_, ok := ThresholdsConfig{}.Active(1, nil, nil)
	assert.False(t, ok)
}
