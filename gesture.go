package stretchy

import (
	"math"
)

// ============================================================================
// Drag Math
// ============================================================================

const (
	// Resistance divides the drag offset once the gallery is pulled past
	// its first or last element.
	Resistance = 3.0

	// FlingVelocity is the horizontal release speed (points per millisecond)
	// that pages the gallery regardless of distance.
	FlingVelocity = 0.3
)

// DragState is the state of the gallery's pan gesture machine.
type DragState uint8

const (
	DragIdle      DragState = iota // At rest on the committed index
	DragCapturing                  // A horizontal move asked for the gesture
	DragDragging                   // Gesture granted, offset follows the finger
	DragSettling                   // Released, spring runs toward the target
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragCapturing:
		return "capturing"
	case DragDragging:
		return "dragging"
	case DragSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// DragSession is the state of one drag, from grant to release.
type DragSession struct {
	StartIndex int     // Committed index when the drag was granted
	DX         float64 // Horizontal displacement since touch down
	VX         float64 // Horizontal velocity, points per millisecond
	Width      float64 // Header width measured at grant
}

// Offset is the damped index offset the session currently applies.
func (s DragSession) Offset(last int) float64 {
	return ResistedOffset(s.StartIndex, DragOffset(s.DX, s.Width), last)
}

// Target is the index the session settles to if released now.
func (s DragSession) Target(last int) int {
	return TargetIndex(s.StartIndex, s.DX, s.VX, s.Width, last)
}

// DragOffset converts a horizontal displacement into an index offset.
// Dragging left (negative dx) moves toward higher indices. An unmeasured
// width yields no movement.
func DragOffset(dx, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return -dx / width
}

// ResistedOffset applies the rubber band: offsets that would take the index
// outside [0, last] move at 1/Resistance speed.
func ResistedOffset(start int, offset float64, last int) float64 {
	pos := float64(start) + offset
	if pos < 0 || pos > float64(last) {
		return offset / Resistance
	}
	return offset
}

// TargetIndex picks the index a released drag settles to: one step against
// the drag direction when the drag went past half the width or was flung,
// otherwise the start index. The result is clamped to [0, last].
func TargetIndex(start int, dx, vx, width float64, last int) int {
	target := start
	farEnough := width > 0 && math.Abs(dx) > width/2
	if farEnough || math.Abs(vx) >= FlingVelocity {
		target = start - sign(dx)
	}
	return clampIndex(target, last)
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func clampIndex(i, last int) int {
	if last < 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
