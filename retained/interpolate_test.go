package retained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolationConfigMap(t *testing.T) {
	const h = 200.0

	opacity := InterpolationConfig{
		InputRange:       []float64{0, h},
		OutputRange:      []float64{1, 0},
		ExtrapolateLeft:  ExtrapolateClamp,
		ExtrapolateRight: ExtrapolateClamp,
	}
	scale := InterpolationConfig{
		InputRange:       []float64{-h, 0},
		OutputRange:      []float64{2, 1},
		ExtrapolateRight: ExtrapolateClamp,
	}
	translateY := InterpolationConfig{
		InputRange:       []float64{0, h},
		OutputRange:      []float64{0, h / 2},
		ExtrapolateRight: ExtrapolateClamp,
	}

	tests := []struct {
		name   string
		config InterpolationConfig
		input  float64
		want   float64
	}{
		{"opacity at rest", opacity, 0, 1},
		{"opacity halfway", opacity, 100, 0.5},
		{"opacity past height", opacity, 400, 0},
		{"opacity overscrolled", opacity, -100, 1},
		{"scale at rest", scale, 0, 1},
		{"scale pulled half", scale, -100, 1.5},
		{"scale pulled past", scale, -300, 2.5},
		{"scale scrolled", scale, 50, 1},
		{"translateY halfway", translateY, 100, 50},
		{"translateY past height", translateY, 300, 100},
		{"identity left", InterpolationConfig{
			InputRange:      []float64{0, 1},
			OutputRange:     []float64{10, 20},
			ExtrapolateLeft: ExtrapolateIdentity,
		}, -3, -3},
		{"multi segment", InterpolationConfig{
			InputRange:  []float64{0, 1, 3},
			OutputRange: []float64{0, 10, 0},
		}, 2, 5},
		{"flat output", InterpolationConfig{
			InputRange:  []float64{0, 1},
			OutputRange: []float64{7, 7},
		}, 42, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.config.Validate())
			assert.InDelta(t, tt.want, tt.config.Map(tt.input), 1e-9)
		})
	}
}

func TestInterpolationConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config InterpolationConfig
	}{
		{"single point", InterpolationConfig{InputRange: []float64{0}, OutputRange: []float64{0}}},
		{"length mismatch", InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0}}},
		{"decreasing", InterpolationConfig{InputRange: []float64{1, 0}, OutputRange: []float64{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpolate(NewValue(0), tt.config)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}

	_, err := Interpolate(nil, InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0, 1}})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestInterpolationTracksSource(t *testing.T) {
	width := 320.0
	index := NewValue(0)
	translateX := MustInterpolate(index, InterpolationConfig{
		InputRange:  []float64{0, 1},
		OutputRange: []float64{0, -width},
	})

	var got []float64
	id := translateX.AddListener(func(x float64) { got = append(got, x) })

	index.SetValue(1)
	index.SetOffset(0.5)
	assert.InDelta(t, -480, translateX.Value(), 1e-9)

	translateX.RemoveListener(id)
	index.SetValue(2)

	require.Len(t, got, 2)
	assert.InDelta(t, -320, got[0], 1e-9)
	assert.InDelta(t, -480, got[1], 1e-9)
}

func TestInterpolationChains(t *testing.T) {
	src := NewValue(50)
	half, err := Interpolate(src, InterpolationConfig{InputRange: []float64{0, 100}, OutputRange: []float64{0, 1}})
	require.NoError(t, err)
	pct, err := half.Interpolate(InterpolationConfig{InputRange: []float64{0, 1}, OutputRange: []float64{0, 100}})
	require.NoError(t, err)

	var last float64
	pct.AddListener(func(v float64) { last = v })
	src.SetValue(25)

	assert.InDelta(t, 25, pct.Value(), 1e-9)
	assert.InDelta(t, 25, last, 1e-9)
}
