package retained

import (
	"sync"
	"time"
)

// ============================================================================
// Touch Events
// ============================================================================

// TouchPhase identifies the stage of a single-finger touch sequence.
type TouchPhase uint8

const (
	TouchDown TouchPhase = iota + 1
	TouchMove
	TouchUp
	TouchCancel
)

func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	case TouchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParseTouchPhase maps a phase name back to its TouchPhase.
func ParseTouchPhase(name string) (TouchPhase, bool) {
	switch name {
	case "down":
		return TouchDown, true
	case "move":
		return TouchMove, true
	case "up":
		return TouchUp, true
	case "cancel":
		return TouchCancel, true
	default:
		return 0, false
	}
}

// TouchEvent is a raw touch sample delivered by the host.
type TouchEvent struct {
	Phase TouchPhase

	// Screen coordinates (relative to window)
	X, Y float64

	// When the sample was taken; velocities are derived from these
	Timestamp time.Time
}

// NewTouchEvent creates a touch event. Uses object pool for high-frequency events.
func NewTouchEvent(phase TouchPhase, x, y float64, ts time.Time) *TouchEvent {
	e := touchEventPool.Get().(*TouchEvent)
	e.Phase = phase
	e.X = x
	e.Y = y
	e.Timestamp = ts
	return e
}

// Release returns the event to the pool. Call when done processing.
func (e *TouchEvent) Release() {
	touchEventPool.Put(e)
}

// Object pool for touch events to avoid allocations on every move
var touchEventPool = sync.Pool{
	New: func() any {
		return &TouchEvent{}
	},
}

// TouchResponder is implemented by anything that can claim a touch sequence.
type TouchResponder interface {
	// HandleTouch processes a touch sample. It returns true while the
	// receiver holds the responder role for the current sequence.
	HandleTouch(e *TouchEvent) bool

	// IsResponder reports whether the receiver currently holds the responder role.
	IsResponder() bool
}
