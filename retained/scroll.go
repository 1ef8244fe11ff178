package retained

import (
	"sync"
	"time"
)

// ============================================================================
// Scroll View
// ============================================================================

// ScrollEvent is emitted on every scroll frame.
type ScrollEvent struct {
	OffsetY   float64   // Vertical offset from the top of content; negative while overscrolled
	Timestamp time.Time // Frame time of the change
}

// ScrollToConfig configures animated programmatic scrolling.
type ScrollToConfig struct {
	Duration time.Duration // Animation duration (default: 250ms)
	Easing   EasingFunc    // Easing function (default: EaseOutCubic)
}

// DefaultScrollToConfig returns sensible defaults for scroll animations.
func DefaultScrollToConfig() ScrollToConfig {
	return ScrollToConfig{
		Duration: 250 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
}

type scrollListener struct {
	id ListenerID
	fn func(ScrollEvent)
}

// ScrollView is the host's vertical scroll surface. Child responders get the
// first chance at each touch; moves nobody claims scroll the content.
type ScrollView struct {
	*Node

	mu            sync.Mutex
	offset        *Value // animated scroll position
	scrollEnabled bool
	scrollTo      ScrollToConfig
	registry      *AnimationRegistry
	clock         func() time.Time

	stamp      time.Time // timestamp of the host frame being applied
	listeners  []scrollListener
	responders []TouchResponder
	touching   bool
	lastTouchY float64
}

// NewScrollView creates a scroll surface whose programmatic scrolls animate on registry.
func NewScrollView(registry *AnimationRegistry) *ScrollView {
	return newScrollView(NewNode(KindScrollView), registry)
}

func newScrollView(node *Node, registry *AnimationRegistry) *ScrollView {
	s := &ScrollView{
		Node:          node,
		offset:        NewValue(0),
		scrollEnabled: true,
		scrollTo:      DefaultScrollToConfig(),
		registry:      registry,
		clock:         time.Now,
	}
	s.offset.AddListener(func(y float64) {
		s.emit(ScrollEvent{OffsetY: y, Timestamp: s.frameTime()})
	})
	return s
}

// SetClock overrides the clock used to stamp animation-driven scroll events.
func (s *ScrollView) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.clock = now
	s.mu.Unlock()
}

// SetScrollToConfig overrides the programmatic scroll animation.
func (s *ScrollView) SetScrollToConfig(cfg ScrollToConfig) {
	if cfg.Duration == 0 {
		cfg.Duration = 250 * time.Millisecond
	}
	if cfg.Easing == nil {
		cfg.Easing = EaseOutCubic
	}
	s.mu.Lock()
	s.scrollTo = cfg
	s.mu.Unlock()
}

func (s *ScrollView) now() time.Time {
	s.mu.Lock()
	clock := s.clock
	s.mu.Unlock()
	return clock()
}

// frameTime stamps an event: host frames carry their own time, animation
// frames use the clock.
func (s *ScrollView) frameTime() time.Time {
	s.mu.Lock()
	stamp, clock := s.stamp, s.clock
	s.mu.Unlock()
	if !stamp.IsZero() {
		return stamp
	}
	return clock()
}

// ScrollY returns the current vertical offset.
func (s *ScrollView) ScrollY() float64 {
	return s.offset.Value()
}

// ScrollEnabled reports whether user scrolling is enabled.
func (s *ScrollView) ScrollEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollEnabled
}

// SetScrollEnabled enables or disables user scrolling. Programmatic scrolling
// keeps working either way.
func (s *ScrollView) SetScrollEnabled(enabled bool) {
	s.mu.Lock()
	changed := s.scrollEnabled != enabled
	s.scrollEnabled = enabled
	s.mu.Unlock()

	if changed {
		s.Node.mu.Lock()
		s.Node.markDirty(DirtyScroll)
		s.Node.mu.Unlock()
	}
}

// ScrollTo moves the content to (x, y). Only the vertical axis is tracked.
func (s *ScrollView) ScrollTo(x, y float64, animated bool) {
	if !animated || s.registry == nil {
		s.setOffset(y, s.now())
		return
	}

	s.mu.Lock()
	cfg := s.scrollTo
	clock := s.clock
	s.mu.Unlock()

	s.offset.Animate(s.registry).
		Duration(cfg.Duration).
		Easing(cfg.Easing).
		Clock(clock).
		Timing(y)
}

// HandleScroll records a host scroll frame at offset y.
func (s *ScrollView) HandleScroll(y float64, now time.Time) {
	s.setOffset(y, now)
}

func (s *ScrollView) setOffset(y float64, now time.Time) {
	s.offset.StopAnimation()
	if s.offset.Base() == y {
		return
	}
	s.mu.Lock()
	s.stamp = now
	s.mu.Unlock()

	s.offset.SetValue(y)

	s.mu.Lock()
	s.stamp = time.Time{}
	s.mu.Unlock()
}

// OnScroll registers fn for scroll events.
func (s *ScrollView) OnScroll(fn func(ScrollEvent)) ListenerID {
	id := newListenerID()
	s.mu.Lock()
	s.listeners = append(s.listeners, scrollListener{id: id, fn: fn})
	s.mu.Unlock()
	return id
}

// RemoveScrollListener unregisters a scroll listener.
func (s *ScrollView) RemoveScrollListener(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *ScrollView) emit(e ScrollEvent) {
	s.Node.mu.Lock()
	s.Node.markDirty(DirtyScroll)
	s.Node.mu.Unlock()

	s.mu.Lock()
	fns := acquireScrollListeners(len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
	releaseScrollListeners(fns)
}

// ============================================================================
// Touch Handling
// ============================================================================

// AddResponder gives r first refusal on touches inside this surface.
func (s *ScrollView) AddResponder(r TouchResponder) {
	if r == nil {
		return
	}
	s.mu.Lock()
	s.responders = append(s.responders, r)
	s.mu.Unlock()
}

// RemoveResponder removes a responder added with AddResponder.
func (s *ScrollView) RemoveResponder(r TouchResponder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.responders {
		if existing == r {
			s.responders = append(s.responders[:i], s.responders[i+1:]...)
			return
		}
	}
}

// HandleTouch routes a touch: responders first, then vertical scrolling.
func (s *ScrollView) HandleTouch(e *TouchEvent) bool {
	s.mu.Lock()
	responders := make([]TouchResponder, len(s.responders))
	copy(responders, s.responders)
	s.mu.Unlock()

	claimed := false
	for _, r := range responders {
		if r.HandleTouch(e) {
			claimed = true
		}
	}

	switch e.Phase {
	case TouchDown:
		s.offset.StopAnimation()
		s.mu.Lock()
		s.touching = true
		s.lastTouchY = e.Y
		s.mu.Unlock()

	case TouchMove:
		s.mu.Lock()
		dy := e.Y - s.lastTouchY
		s.lastTouchY = e.Y
		canScroll := s.touching && s.scrollEnabled && !claimed
		s.mu.Unlock()

		if canScroll && dy != 0 {
			s.setOffset(s.ScrollY()-dy, e.Timestamp)
		}

	case TouchUp, TouchCancel:
		s.mu.Lock()
		s.touching = false
		s.mu.Unlock()

		// Overscroll above the content springs back
		if s.ScrollY() < 0 {
			s.ScrollTo(0, 0, true)
		}
	}

	return claimed
}
