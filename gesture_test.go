package stretchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragOffset(t *testing.T) {
	assert.InDelta(t, 0.5, DragOffset(-150, 300), 1e-9)
	assert.InDelta(t, -0.25, DragOffset(75, 300), 1e-9)
	assert.Equal(t, 0.0, DragOffset(120, 0), "unmeasured width moves nothing")
	assert.Equal(t, 0.0, DragOffset(120, -1))
}

func TestResistedOffset(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		offset float64
		last   int
		want   float64
	}{
		{"inside bounds", 1, 0.6, 2, 0.6},
		{"reaching last exactly", 1, 1, 2, 1},
		{"past first", 0, -0.6, 2, -0.2},
		{"past last", 2, 0.9, 2, 0.3},
		{"from middle past last", 1, 1.5, 2, 0.5},
		{"single element", 0, 0.3, 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ResistedOffset(tt.start, tt.offset, tt.last), 1e-9)
		})
	}
}

func TestTargetIndex(t *testing.T) {
	const width = 300.0

	tests := []struct {
		name   string
		start  int
		dx, vx float64
		last   int
		want   int
	}{
		{"far left drag pages forward", 0, -200, -0.5, 2, 1},
		{"short slow drag stays", 0, -50, 0.1, 2, 0},
		{"exactly half width stays", 1, -150, 0, 2, 1},
		{"past half width right pages back", 1, 151, 0, 2, 0},
		{"fling at threshold pages", 1, -10, -0.3, 2, 2},
		{"fling against drag direction follows dx", 1, -10, 0.4, 2, 2},
		{"clamped at first", 0, 250, 1, 2, 0},
		{"clamped at last", 2, -250, -1, 2, 2},
		{"fling without displacement stays", 1, 0, 0.8, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetIndex(tt.start, tt.dx, tt.vx, width, tt.last)
			assert.Equal(t, tt.want, got)

			if got != tt.start {
				diff := got - tt.start
				assert.True(t, diff == 1 || diff == -1, "target moves by exactly one step")
			}
		})
	}
}

func TestTargetIndexUnmeasuredWidthUsesVelocityOnly(t *testing.T) {
	assert.Equal(t, 0, TargetIndex(0, -500, 0, 0, 2))
	assert.Equal(t, 1, TargetIndex(0, -500, -0.5, 0, 2))
}

func TestDragSessionHelpers(t *testing.T) {
	s := DragSession{StartIndex: 0, DX: 90, VX: 0.1, Width: 300}
	assert.InDelta(t, -0.1, s.Offset(2), 1e-9)
	assert.Equal(t, 0, s.Target(2))
}

func TestDragStateString(t *testing.T) {
	assert.Equal(t, "idle", DragIdle.String())
	assert.Equal(t, "capturing", DragCapturing.String())
	assert.Equal(t, "dragging", DragDragging.String())
	assert.Equal(t, "settling", DragSettling.String())
	assert.Equal(t, "unknown", DragState(42).String())
}
