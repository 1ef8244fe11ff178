package retained

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned for interpolation ranges that cannot be mapped.
var ErrInvalidRange = errors.New("invalid interpolation range")

// Extrapolate controls what happens to inputs outside the input range.
type Extrapolate uint8

const (
	// ExtrapolateExtend continues the nearest segment linearly. This is the default.
	ExtrapolateExtend Extrapolate = iota

	// ExtrapolateClamp pins the output to the nearest range end.
	ExtrapolateClamp

	// ExtrapolateIdentity returns the input unchanged.
	ExtrapolateIdentity
)

func (e Extrapolate) String() string {
	switch e {
	case ExtrapolateClamp:
		return "clamp"
	case ExtrapolateIdentity:
		return "identity"
	default:
		return "extend"
	}
}

// InterpolationConfig describes a piecewise-linear mapping.
type InterpolationConfig struct {
	InputRange       []float64 // Non-decreasing, at least two points
	OutputRange      []float64 // Same length as InputRange
	ExtrapolateLeft  Extrapolate
	ExtrapolateRight Extrapolate
}

// Validate checks the ranges.
func (c InterpolationConfig) Validate() error {
	if len(c.InputRange) < 2 {
		return fmt.Errorf("%w: input range needs at least 2 points, got %d", ErrInvalidRange, len(c.InputRange))
	}
	if len(c.InputRange) != len(c.OutputRange) {
		return fmt.Errorf("%w: input range has %d points, output range has %d",
			ErrInvalidRange, len(c.InputRange), len(c.OutputRange))
	}
	for i := 1; i < len(c.InputRange); i++ {
		if c.InputRange[i] < c.InputRange[i-1] {
			return fmt.Errorf("%w: input range must be non-decreasing at index %d", ErrInvalidRange, i)
		}
	}
	return nil
}

// Map applies the mapping to x. The config must be valid.
func (c InterpolationConfig) Map(x float64) float64 {
	i := findSegment(x, c.InputRange)
	return interpolateSegment(x,
		c.InputRange[i], c.InputRange[i+1],
		c.OutputRange[i], c.OutputRange[i+1],
		c.ExtrapolateLeft, c.ExtrapolateRight)
}

// findSegment returns the index of the segment x falls into. Inputs beyond
// either end use the outermost segment.
func findSegment(x float64, input []float64) int {
	i := 1
	for ; i < len(input)-1; i++ {
		if input[i] >= x {
			break
		}
	}
	return i - 1
}

func interpolateSegment(x, inMin, inMax, outMin, outMax float64, left, right Extrapolate) float64 {
	if x < inMin {
		switch left {
		case ExtrapolateIdentity:
			return x
		case ExtrapolateClamp:
			x = inMin
		}
	}
	if x > inMax {
		switch right {
		case ExtrapolateIdentity:
			return x
		case ExtrapolateClamp:
			x = inMax
		}
	}

	if outMin == outMax {
		return outMin
	}
	if inMin == inMax {
		if x <= inMin {
			return outMin
		}
		return outMax
	}

	t := (x - inMin) / (inMax - inMin)
	return outMin + t*(outMax-outMin)
}

// Interpolation is a read-only observable derived from a source observable.
type Interpolation struct {
	source Observable
	config InterpolationConfig
}

// Interpolate derives a new observable from source through cfg.
func Interpolate(source Observable, cfg InterpolationConfig) (*Interpolation, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidRange)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	in := append([]float64(nil), cfg.InputRange...)
	out := append([]float64(nil), cfg.OutputRange...)
	cfg.InputRange, cfg.OutputRange = in, out
	return &Interpolation{source: source, config: cfg}, nil
}

// MustInterpolate is like Interpolate but panics on an invalid config.
// Use it only for ranges known to be valid.
func MustInterpolate(source Observable, cfg InterpolationConfig) *Interpolation {
	interp, err := Interpolate(source, cfg)
	if err != nil {
		panic(err)
	}
	return interp
}

// Value maps the source's current value.
func (i *Interpolation) Value() float64 {
	return i.config.Map(i.source.Value())
}

// Config returns the mapping.
func (i *Interpolation) Config() InterpolationConfig {
	return i.config
}

// AddListener registers fn on the source; fn receives mapped values.
func (i *Interpolation) AddListener(fn func(float64)) ListenerID {
	return i.source.AddListener(func(v float64) {
		fn(i.config.Map(v))
	})
}

// RemoveListener unregisters a listener added through AddListener.
func (i *Interpolation) RemoveListener(id ListenerID) {
	i.source.RemoveListener(id)
}

// Interpolate chains another mapping on top of this one.
func (i *Interpolation) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return Interpolate(i, cfg)
}
