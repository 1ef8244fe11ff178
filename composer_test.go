package stretchy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/stretchy/retained"
)

func TestNewComposerRejectsBadHeight(t *testing.T) {
	for _, h := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := NewComposer(retained.NewValue(0), retained.NewValue(0), h)
		assert.ErrorIs(t, err, ErrInvalidHeight, "height %v", h)
	}
}

func TestComposerScrollChannels(t *testing.T) {
	const h = 212.0
	scroll, index := retained.NewValue(0), retained.NewValue(0)
	c, err := NewComposer(scroll, index, h)
	require.NoError(t, err)

	// Scroll from 0 to the header height at gallery index 0
	for _, y := range []float64{0, 53, 106, 159, 212} {
		scroll.SetValue(y)
		f := c.Frame()
		assert.InDelta(t, 1-y/h, f.Opacity, 1e-9, "opacity at %v", y)
		assert.InDelta(t, y/2, f.TranslateY, 1e-9, "translateY at %v", y)
		assert.Equal(t, 1.0, f.Scale)
		assert.Equal(t, 0.0, f.TranslateX)
	}

	tests := []struct {
		y                  float64
		opacity, scale, ty float64
		overflow           retained.Overflow
	}{
		{y: -106, opacity: 1, scale: 1.5, ty: -53, overflow: retained.OverflowVisible},
		{y: -424, opacity: 1, scale: 3, ty: -212, overflow: retained.OverflowVisible},
		{y: 0, opacity: 1, scale: 1, ty: 0, overflow: retained.OverflowVisible},
		{y: 500, opacity: 0, scale: 1, ty: 106, overflow: retained.OverflowHidden},
	}
	for _, tt := range tests {
		f := c.FrameAt(tt.y, 0)
		assert.InDelta(t, tt.opacity, f.Opacity, 1e-9, "opacity at %v", tt.y)
		assert.InDelta(t, tt.scale, f.Scale, 1e-9, "scale at %v", tt.y)
		assert.InDelta(t, tt.ty, f.TranslateY, 1e-9, "translateY at %v", tt.y)
		assert.Equal(t, tt.overflow, f.Overflow, "overflow at %v", tt.y)
	}
}

func TestComposerTranslateX(t *testing.T) {
	scroll, index := retained.NewValue(0), retained.NewValue(0)
	c, err := NewComposer(scroll, index, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.TranslateXAt(1.5), "unmeasured width")

	c.SetWidth(300)
	index.SetValue(1)
	index.SetOffset(0.5)
	assert.InDelta(t, -450, c.Frame().TranslateX, 1e-9)
	assert.InDelta(t, 90, c.TranslateXAt(-0.3), 1e-9)
	assert.Equal(t, 300.0, c.Frame().Width)
}

func TestComposerChannelsAreObservable(t *testing.T) {
	scroll := retained.NewValue(0)
	c, err := NewComposer(scroll, retained.NewValue(0), 200)
	require.NoError(t, err)

	var opacity float64
	c.Opacity().AddListener(func(v float64) { opacity = v })
	scroll.SetValue(50)

	assert.InDelta(t, 0.75, opacity, 1e-9)
	assert.InDelta(t, 25, c.TranslateY().Value(), 1e-9)
	assert.Equal(t, 1.0, c.Scale().Value())
	assert.Equal(t, 200.0, c.Height())
}

func TestPagerText(t *testing.T) {
	assert.Equal(t, "1 / 3", PagerProps{}.Text(0, 3))
	assert.Equal(t, "2 of 3", PagerProps{Separator: " of "}.Text(1, 3))
	assert.Equal(t, "[3]", PagerProps{Format: func(i, _ int) string {
		return "[" + string(rune('1'+i)) + "]"
	}}.Text(2, 3))
}
