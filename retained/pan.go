package retained

import (
	"sync"
	"time"
)

// ============================================================================
// Pan Responder
// ============================================================================

// GestureState is the accumulated state of a pan gesture.
// Distances are in points, velocities in points per millisecond.
type GestureState struct {
	X0, Y0       float64 // Where the touch went down
	MoveX, MoveY float64 // Latest touch position
	DX, DY       float64 // Displacement since touch down
	VX, VY       float64 // Current velocity
	Active       bool    // A touch is down
}

// PanHandlers are the callbacks a PanResponder negotiates and reports with.
// Nil callbacks are treated as "no" for the Should* questions and as no-ops otherwise.
type PanHandlers struct {
	// OnStartShouldSet is asked on touch down whether to claim immediately.
	OnStartShouldSet func(e *TouchEvent, gs GestureState) bool

	// OnMoveShouldSet is asked on every move until claimed.
	OnMoveShouldSet func(e *TouchEvent, gs GestureState) bool

	// OnGrant fires when the responder role is granted.
	OnGrant func(e *TouchEvent, gs GestureState)

	// OnMove fires for each move while the responder role is held.
	OnMove func(e *TouchEvent, gs GestureState)

	// OnRelease fires when the finger lifts while holding the responder role.
	OnRelease func(e *TouchEvent, gs GestureState)

	// OnTerminate fires when the role is taken away (cancel or host request).
	OnTerminate func(e *TouchEvent, gs GestureState)

	// OnTerminationRequest is asked when another responder wants the role.
	// Nil means the request is granted.
	OnTerminationRequest func(e *TouchEvent, gs GestureState) bool
}

// PanResponder turns raw touches into pan gesture callbacks.
type PanResponder struct {
	mu       sync.Mutex
	handlers PanHandlers
	state    GestureState

	responder bool
	lastX     float64
	lastY     float64
	lastTime  time.Time
}

// NewPanResponder creates a responder with the given handlers.
func NewPanResponder(handlers PanHandlers) *PanResponder {
	return &PanResponder{handlers: handlers}
}

// IsResponder reports whether this responder holds the current touch sequence.
func (p *PanResponder) IsResponder() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.responder
}

// GestureState returns a snapshot of the current gesture.
func (p *PanResponder) GestureState() GestureState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HandleTouch feeds one touch sample through the responder negotiation.
// Callbacks are invoked without holding the responder's lock.
func (p *PanResponder) HandleTouch(e *TouchEvent) bool {
	switch e.Phase {
	case TouchDown:
		p.mu.Lock()
		p.state = GestureState{
			X0: e.X, Y0: e.Y,
			MoveX: e.X, MoveY: e.Y,
			Active: true,
		}
		p.responder = false
		p.lastX, p.lastY, p.lastTime = e.X, e.Y, e.Timestamp
		gs := p.state
		p.mu.Unlock()

		if p.handlers.OnStartShouldSet != nil && p.handlers.OnStartShouldSet(e, gs) {
			p.grant(e, gs)
		}

	case TouchMove:
		p.mu.Lock()
		if !p.state.Active {
			p.mu.Unlock()
			return false
		}
		p.track(e)
		gs := p.state
		isResponder := p.responder
		p.mu.Unlock()

		if isResponder {
			if p.handlers.OnMove != nil {
				p.handlers.OnMove(e, gs)
			}
		} else if p.handlers.OnMoveShouldSet != nil && p.handlers.OnMoveShouldSet(e, gs) {
			p.grant(e, gs)
		}

	case TouchUp, TouchCancel:
		p.mu.Lock()
		if !p.state.Active {
			p.mu.Unlock()
			return false
		}
		p.track(e)
		gs := p.state
		wasResponder := p.responder
		p.responder = false
		p.state.Active = false
		p.mu.Unlock()

		if !wasResponder {
			return false
		}
		if e.Phase == TouchUp {
			if p.handlers.OnRelease != nil {
				p.handlers.OnRelease(e, gs)
			}
		} else if p.handlers.OnTerminate != nil {
			p.handlers.OnTerminate(e, gs)
		}
		return false
	}

	return p.IsResponder()
}

// RequestTermination asks the responder to give up the role on behalf of
// another claimant. Returns true if the role was released.
func (p *PanResponder) RequestTermination(e *TouchEvent) bool {
	p.mu.Lock()
	if !p.responder {
		p.mu.Unlock()
		return true
	}
	gs := p.state
	p.mu.Unlock()

	if p.handlers.OnTerminationRequest != nil && !p.handlers.OnTerminationRequest(e, gs) {
		return false
	}

	p.mu.Lock()
	p.responder = false
	p.state.Active = false
	p.mu.Unlock()

	if p.handlers.OnTerminate != nil {
		p.handlers.OnTerminate(e, gs)
	}
	return true
}

// Reset drops the current touch sequence without any callback.
func (p *PanResponder) Reset() {
	p.mu.Lock()
	p.responder = false
	p.state = GestureState{}
	p.mu.Unlock()
}

func (p *PanResponder) grant(e *TouchEvent, gs GestureState) {
	p.mu.Lock()
	p.responder = true
	p.mu.Unlock()

	if p.handlers.OnGrant != nil {
		p.handlers.OnGrant(e, gs)
	}
}

// track updates displacement and velocity from e. Caller holds p.mu.
func (p *PanResponder) track(e *TouchEvent) {
	p.state.MoveX, p.state.MoveY = e.X, e.Y
	p.state.DX = e.X - p.state.X0
	p.state.DY = e.Y - p.state.Y0

	dt := e.Timestamp.Sub(p.lastTime)
	if dt > 0 {
		ms := float64(dt) / float64(time.Millisecond)
		p.state.VX = (e.X - p.lastX) / ms
		p.state.VY = (e.Y - p.lastY) / ms
	}
	p.lastX, p.lastY, p.lastTime = e.X, e.Y, e.Timestamp
}
