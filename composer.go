package stretchy

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/agiangrant/stretchy/retained"
)

// ErrInvalidHeight is returned for header heights that are not positive.
var ErrInvalidHeight = errors.New("header height must be positive")

// OpacityRange fades the header out as it scrolls away.
func OpacityRange(height float64) retained.InterpolationConfig {
	return retained.InterpolationConfig{
		InputRange:       []float64{0, height},
		OutputRange:      []float64{1, 0},
		ExtrapolateLeft:  retained.ExtrapolateClamp,
		ExtrapolateRight: retained.ExtrapolateClamp,
	}
}

// ScaleRange zooms the background while the content is pulled down past the
// top. It keeps growing with the pull.
func ScaleRange(height float64) retained.InterpolationConfig {
	return retained.InterpolationConfig{
		InputRange:       []float64{-height, 0},
		OutputRange:      []float64{2, 1},
		ExtrapolateRight: retained.ExtrapolateClamp,
	}
}

// TranslateYRange moves the background at half speed as the header scrolls away.
func TranslateYRange(height float64) retained.InterpolationConfig {
	return retained.InterpolationConfig{
		InputRange:       []float64{0, height},
		OutputRange:      []float64{0, height / 2},
		ExtrapolateRight: retained.ExtrapolateClamp,
	}
}

// TranslateXRange shifts the gallery strip one width per index.
func TranslateXRange(width float64) retained.InterpolationConfig {
	return retained.InterpolationConfig{
		InputRange:  []float64{0, 1},
		OutputRange: []float64{0, -width},
	}
}

// OverflowFor clips the header while it scrolls under the content and lets
// the stretched background draw outside while pulled down.
func OverflowFor(scrollY float64) retained.Overflow {
	if scrollY > 0 {
		return retained.OverflowHidden
	}
	return retained.OverflowVisible
}

// HeaderFrame is a snapshot of every derived header channel.
type HeaderFrame struct {
	ScrollY    float64
	Index      float64
	Width      float64
	Opacity    float64
	Scale      float64
	TranslateX float64
	TranslateY float64
	Overflow   retained.Overflow
}

// Composer derives the header's visual channels from the scroll and gallery
// index values. It holds no state besides the measured width.
type Composer struct {
	height float64
	scroll retained.Observable
	index  retained.Observable

	opacity    *retained.Interpolation
	scale      *retained.Interpolation
	translateY *retained.Interpolation

	mu    sync.RWMutex
	width float64
}

// NewComposer builds the scroll-driven interpolations for a header of the
// given height.
func NewComposer(scroll, index retained.Observable, height float64) (*Composer, error) {
	if !(height > 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidHeight, height)
	}

	opacity, err := retained.Interpolate(scroll, OpacityRange(height))
	if err != nil {
		return nil, fmt.Errorf("opacity: %w", err)
	}
	scale, err := retained.Interpolate(scroll, ScaleRange(height))
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	translateY, err := retained.Interpolate(scroll, TranslateYRange(height))
	if err != nil {
		return nil, fmt.Errorf("translateY: %w", err)
	}

	return &Composer{
		height:     height,
		scroll:     scroll,
		index:      index,
		opacity:    opacity,
		scale:      scale,
		translateY: translateY,
	}, nil
}

// Height returns the header height.
func (c *Composer) Height() float64 {
	return c.height
}

// SetWidth records the measured header width.
func (c *Composer) SetWidth(width float64) {
	c.mu.Lock()
	c.width = width
	c.mu.Unlock()
}

// Width returns the measured header width.
func (c *Composer) Width() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width
}

// Opacity is the observable opacity channel.
func (c *Composer) Opacity() *retained.Interpolation { return c.opacity }

// Scale is the observable scale channel.
func (c *Composer) Scale() *retained.Interpolation { return c.scale }

// TranslateY is the observable vertical parallax channel.
func (c *Composer) TranslateY() *retained.Interpolation { return c.translateY }

// ScrollChannels maps a scroll offset to opacity, scale and vertical translation.
func (c *Composer) ScrollChannels(scrollY float64) (opacity, scale, translateY float64) {
	return c.opacity.Config().Map(scrollY),
		c.scale.Config().Map(scrollY),
		c.translateY.Config().Map(scrollY)
}

// TranslateXAt maps a gallery index to the strip's horizontal translation.
func (c *Composer) TranslateXAt(index float64) float64 {
	return TranslateXRange(c.Width()).Map(index)
}

// FrameAt derives a frame from explicit scroll and index values.
func (c *Composer) FrameAt(scrollY, index float64) HeaderFrame {
	opacity, scale, translateY := c.ScrollChannels(scrollY)
	return HeaderFrame{
		ScrollY:    scrollY,
		Index:      index,
		Width:      c.Width(),
		Opacity:    opacity,
		Scale:      scale,
		TranslateX: c.TranslateXAt(index),
		TranslateY: translateY,
		Overflow:   OverflowFor(scrollY),
	}
}

// Frame derives a frame from the current values.
func (c *Composer) Frame() HeaderFrame {
	return c.FrameAt(c.scroll.Value(), c.index.Value())
}
