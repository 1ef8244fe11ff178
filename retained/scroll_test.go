package retained

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimAll struct{ claimed bool }

func (c *claimAll) HandleTouch(e *TouchEvent) bool {
	if e.Phase == TouchMove {
		c.claimed = true
	}
	if e.Phase == TouchUp || e.Phase == TouchCancel {
		c.claimed = false
	}
	return c.claimed
}

func (c *claimAll) IsResponder() bool { return c.claimed }

func TestScrollViewEmitsHostFrames(t *testing.T) {
	sv := NewScrollView(NewAnimationRegistry())

	var events []ScrollEvent
	id := sv.OnScroll(func(e ScrollEvent) { events = append(events, e) })

	sv.HandleScroll(40, epoch)
	sv.HandleScroll(40, epoch.Add(time.Millisecond)) // unchanged
	sv.HandleScroll(-20, epoch.Add(2*time.Millisecond))

	require.Len(t, events, 2)
	assert.Equal(t, 40.0, events[0].OffsetY)
	assert.Equal(t, epoch, events[0].Timestamp)
	assert.Equal(t, -20.0, events[1].OffsetY)
	assert.Equal(t, epoch.Add(2*time.Millisecond), events[1].Timestamp)
	assert.Equal(t, -20.0, sv.ScrollY())

	sv.RemoveScrollListener(id)
	sv.HandleScroll(0, epoch.Add(3*time.Millisecond))
	assert.Len(t, events, 2)
}

func TestScrollViewTouchScrolls(t *testing.T) {
	sv := NewScrollView(NewAnimationRegistry())

	sv.HandleTouch(touch(TouchDown, 50, 200, 0))
	sv.HandleTouch(touch(TouchMove, 50, 170, 10))
	assert.Equal(t, 30.0, sv.ScrollY())

	sv.SetScrollEnabled(false)
	sv.HandleTouch(touch(TouchMove, 50, 100, 20))
	assert.Equal(t, 30.0, sv.ScrollY(), "disabled surface ignores drags")

	sv.SetScrollEnabled(true)
	sv.HandleTouch(touch(TouchMove, 50, 90, 30))
	assert.Equal(t, 40.0, sv.ScrollY())
	sv.HandleTouch(touch(TouchUp, 50, 90, 40))
}

func TestScrollViewRespondersClaimFirst(t *testing.T) {
	sv := NewScrollView(NewAnimationRegistry())
	r := &claimAll{}
	sv.AddResponder(r)
	sv.AddResponder(nil)

	sv.HandleTouch(touch(TouchDown, 50, 200, 0))
	assert.True(t, sv.HandleTouch(touch(TouchMove, 20, 150, 10)))
	assert.Equal(t, 0.0, sv.ScrollY())
	sv.HandleTouch(touch(TouchUp, 20, 150, 20))

	sv.RemoveResponder(r)
	sv.HandleTouch(touch(TouchDown, 50, 200, 30))
	assert.False(t, sv.HandleTouch(touch(TouchMove, 20, 150, 40)))
	assert.Equal(t, 50.0, sv.ScrollY())
}

func TestScrollViewBouncesBackFromOverscroll(t *testing.T) {
	registry := NewAnimationRegistry()
	sv := NewScrollView(registry)
	clock := epoch
	sv.SetClock(func() time.Time { return clock })

	sv.HandleTouch(touch(TouchDown, 50, 100, 0))
	sv.HandleTouch(touch(TouchMove, 50, 160, 10))
	require.Equal(t, -60.0, sv.ScrollY())

	sv.HandleTouch(touch(TouchUp, 50, 160, 20))
	require.True(t, registry.HasActive())

	var last ScrollEvent
	sv.OnScroll(func(e ScrollEvent) { last = e })

	for i := 0; i < 30 && registry.HasActive(); i++ {
		clock = clock.Add(16 * time.Millisecond)
		registry.Tick(clock)
	}
	assert.Equal(t, 0.0, sv.ScrollY())
	assert.Equal(t, clock, last.Timestamp, "animation frames are stamped with the clock")
}

func TestScrollToAnimatedAndImmediate(t *testing.T) {
	registry := NewAnimationRegistry()
	sv := NewScrollView(registry)
	sv.SetScrollToConfig(ScrollToConfig{Duration: 100 * time.Millisecond, Easing: EaseLinear})

	sv.ScrollTo(0, 80, false)
	assert.Equal(t, 80.0, sv.ScrollY())
	assert.False(t, registry.HasActive())

	sv.ScrollTo(0, 0, true)
	registry.Tick(epoch)
	registry.Tick(epoch.Add(50 * time.Millisecond))
	assert.InDelta(t, 40, sv.ScrollY(), 1e-9)
	registry.Tick(epoch.Add(100 * time.Millisecond))
	assert.Equal(t, 0.0, sv.ScrollY())

	// Touch down interrupts a running scroll animation
	sv.ScrollTo(0, 100, true)
	registry.Tick(epoch.Add(150 * time.Millisecond))
	sv.HandleTouch(touch(TouchDown, 0, 0, 150))
	assert.False(t, registry.HasActive())
}

func TestScrollEnabledMarksDirty(t *testing.T) {
	tree := NewTree()
	sv := NewScrollView(nil)
	tree.SetRoot(sv.Node)
	tree.CollectUpdates()

	sv.SetScrollEnabled(false)
	assert.False(t, sv.ScrollEnabled())

	updates := tree.CollectUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, DirtyScroll, updates[0].DirtyMask)

	// ScrollTo without a registry jumps
	sv.ScrollTo(0, 25, true)
	assert.Equal(t, 25.0, sv.ScrollY())
}
