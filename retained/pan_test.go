package retained

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panRecorder struct {
	grants, moves, releases, terminates int
	last                                GestureState
}

func (r *panRecorder) handlers() PanHandlers {
	return PanHandlers{
		OnMoveShouldSet: func(_ *TouchEvent, gs GestureState) bool {
			return math.Abs(gs.DX) > math.Abs(gs.DY)
		},
		OnGrant: func(_ *TouchEvent, gs GestureState) {
			r.grants++
			r.last = gs
		},
		OnMove: func(_ *TouchEvent, gs GestureState) {
			r.moves++
			r.last = gs
		},
		OnRelease: func(_ *TouchEvent, gs GestureState) {
			r.releases++
			r.last = gs
		},
		OnTerminate: func(_ *TouchEvent, gs GestureState) {
			r.terminates++
			r.last = gs
		},
	}
}

func touch(phase TouchPhase, x, y float64, ms int) *TouchEvent {
	return &TouchEvent{Phase: phase, X: x, Y: y, Timestamp: epoch.Add(time.Duration(ms) * time.Millisecond)}
}

func TestPanResponderClaimsHorizontalMoves(t *testing.T) {
	rec := &panRecorder{}
	pan := NewPanResponder(rec.handlers())

	assert.False(t, pan.HandleTouch(touch(TouchDown, 100, 100, 0)))
	assert.True(t, pan.HandleTouch(touch(TouchMove, 90, 101, 10)))
	require.Equal(t, 1, rec.grants)
	assert.Equal(t, 0, rec.moves, "the claiming move is not reported as a move")
	assert.Equal(t, -10.0, rec.last.DX)

	assert.True(t, pan.HandleTouch(touch(TouchMove, 60, 101, 20)))
	require.Equal(t, 1, rec.moves)
	assert.Equal(t, -40.0, rec.last.DX)
	assert.InDelta(t, -3.0, rec.last.VX, 1e-9)
	assert.True(t, pan.IsResponder())

	assert.False(t, pan.HandleTouch(touch(TouchUp, 60, 101, 30)))
	assert.Equal(t, 1, rec.releases)
	assert.False(t, pan.IsResponder())
	assert.False(t, pan.GestureState().Active)
}

func TestPanResponderIgnoresVerticalMoves(t *testing.T) {
	rec := &panRecorder{}
	pan := NewPanResponder(rec.handlers())

	pan.HandleTouch(touch(TouchDown, 100, 100, 0))
	assert.False(t, pan.HandleTouch(touch(TouchMove, 98, 60, 10)))
	assert.False(t, pan.HandleTouch(touch(TouchUp, 98, 40, 20)))

	assert.Zero(t, rec.grants)
	assert.Zero(t, rec.releases)
}

func TestPanResponderStartShouldSet(t *testing.T) {
	rec := &panRecorder{}
	h := rec.handlers()
	h.OnStartShouldSet = func(*TouchEvent, GestureState) bool { return true }
	pan := NewPanResponder(h)

	assert.True(t, pan.HandleTouch(touch(TouchDown, 0, 0, 0)))
	assert.Equal(t, 1, rec.grants)
}

func TestPanResponderCancelTerminates(t *testing.T) {
	rec := &panRecorder{}
	pan := NewPanResponder(rec.handlers())

	pan.HandleTouch(touch(TouchDown, 100, 0, 0))
	pan.HandleTouch(touch(TouchMove, 80, 0, 10))
	pan.HandleTouch(touch(TouchCancel, 80, 0, 20))

	assert.Equal(t, 1, rec.terminates)
	assert.Zero(t, rec.releases)
}

func TestPanResponderRequestTermination(t *testing.T) {
	rec := &panRecorder{}
	h := rec.handlers()
	refuse := true
	h.OnTerminationRequest = func(*TouchEvent, GestureState) bool { return !refuse }
	pan := NewPanResponder(h)

	pan.HandleTouch(touch(TouchDown, 100, 0, 0))
	pan.HandleTouch(touch(TouchMove, 80, 0, 10))

	assert.False(t, pan.RequestTermination(touch(TouchMove, 80, 0, 15)))
	assert.True(t, pan.IsResponder())

	refuse = false
	assert.True(t, pan.RequestTermination(touch(TouchMove, 80, 0, 15)))
	assert.False(t, pan.IsResponder())
	assert.Equal(t, 1, rec.terminates)

	// Not holding the role: nothing to give up
	assert.True(t, pan.RequestTermination(touch(TouchMove, 80, 0, 16)))
	assert.Equal(t, 1, rec.terminates)
}

func TestMovesWithoutDownAreIgnored(t *testing.T) {
	rec := &panRecorder{}
	pan := NewPanResponder(rec.handlers())

	assert.False(t, pan.HandleTouch(touch(TouchMove, 10, 0, 0)))
	assert.False(t, pan.HandleTouch(touch(TouchUp, 10, 0, 0)))
	assert.Zero(t, rec.grants)
}

func TestTouchPhaseNames(t *testing.T) {
	for _, p := range []TouchPhase{TouchDown, TouchMove, TouchUp, TouchCancel} {
		parsed, ok := ParseTouchPhase(p.String())
		require.True(t, ok)
		assert.Equal(t, p, parsed)
	}
	_, ok := ParseTouchPhase("tap")
	assert.False(t, ok)
}

func TestPanResponderReset(t *testing.T) {
	rec := &panRecorder{}
	pan := NewPanResponder(rec.handlers())

	pan.HandleTouch(touch(TouchDown, 100, 100, 0))
	require.True(t, pan.HandleTouch(touch(TouchMove, 80, 100, 10)))

	pan.Reset()
	assert.False(t, pan.IsResponder())
	assert.False(t, pan.GestureState().Active)

	assert.False(t, pan.HandleTouch(touch(TouchMove, 60, 100, 20)), "later moves of the dropped sequence are ignored")
	assert.False(t, pan.HandleTouch(touch(TouchUp, 60, 100, 30)))
	assert.Zero(t, rec.releases)
	assert.Zero(t, rec.terminates)
	assert.Zero(t, rec.moves)
}
