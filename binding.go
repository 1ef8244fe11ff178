package stretchy

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agiangrant/stretchy/internal/logging"
	"github.com/agiangrant/stretchy/retained"
)

// DefaultScrollEventThrottle is the default minimum spacing between scroll
// samples, about one per frame.
const DefaultScrollEventThrottle = 16 * time.Millisecond

// ScrollProps configures the scroll surface under a stretchy container.
type ScrollProps struct {
	// OnScroll receives the sampled scroll events, unmodified.
	OnScroll func(retained.ScrollEvent)

	// ScrollEventThrottle is the minimum spacing between samples. Zero means
	// DefaultScrollEventThrottle; negative delivers every event.
	ScrollEventThrottle time.Duration

	// ScrollEnabled defaults to true. When false the surface never scrolls
	// and the gallery never touches it.
	ScrollEnabled *bool

	// ScrollTo animates programmatic scrolls, including the return to the top
	// when a drag starts. Zero fields keep the surface defaults.
	ScrollTo retained.ScrollToConfig
}

func (p ScrollProps) scrollEnabled() bool {
	return p.ScrollEnabled == nil || *p.ScrollEnabled
}

func (p ScrollProps) throttle() time.Duration {
	if p.ScrollEventThrottle == 0 {
		return DefaultScrollEventThrottle
	}
	return p.ScrollEventThrottle
}

// scrollBinding samples a surface's scroll events into a value.
//
// Samples are rate limited at event time. The newest event a limit dropped is
// delivered on a later frame so the value always ends where the surface did.
type scrollBinding struct {
	mu       sync.Mutex
	loop     *retained.Loop
	frame    retained.FrameFuncID
	surface  *retained.ScrollView
	value    *retained.Value
	limiter  *rate.Limiter // nil delivers every event
	onScroll func(retained.ScrollEvent)
	pending  *retained.ScrollEvent
	closed   bool
	sub      retained.ListenerID
	log      *logging.Logger
}

func bindScroll(loop *retained.Loop, surface *retained.ScrollView, value *retained.Value, props ScrollProps, log *logging.Logger) *scrollBinding {
	b := &scrollBinding{
		loop:     loop,
		surface:  surface,
		value:    value,
		onScroll: props.OnScroll,
		log:      log.With("component", "scroll_binding"),
	}
	if d := props.throttle(); d > 0 {
		b.limiter = rate.NewLimiter(rate.Every(d), 1)
	}

	b.sub = surface.OnScroll(b.handle)
	b.frame = loop.OnFrame(func(now time.Time, _ []retained.Update) {
		b.flush(now)
	})
	return b
}

func (b *scrollBinding) handle(e retained.ScrollEvent) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.limiter != nil && !b.limiter.AllowN(e.Timestamp, 1) {
		pending := e
		b.pending = &pending
		b.mu.Unlock()
		b.loop.RequestFrame()
		return
	}
	b.pending = nil
	b.mu.Unlock()

	b.deliver(e)
}

// flush delivers the trailing dropped event once the limiter allows it.
func (b *scrollBinding) flush(now time.Time) {
	b.mu.Lock()
	if b.closed || b.pending == nil {
		b.mu.Unlock()
		return
	}
	if b.limiter != nil && !b.limiter.AllowN(now, 1) {
		b.mu.Unlock()
		b.loop.RequestFrame()
		return
	}
	e := *b.pending
	b.pending = nil
	b.mu.Unlock()

	b.log.DebugFn("trailing scroll sample", func(ev *zerolog.Event) {
		ev.Float64("offset", e.OffsetY)
	})
	b.deliver(e)
}

func (b *scrollBinding) deliver(e retained.ScrollEvent) {
	b.value.SetValue(e.OffsetY)
	b.loop.RequestFrame()
	if b.onScroll != nil {
		b.onScroll(e)
	}
}

func (b *scrollBinding) close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.pending = nil
	b.mu.Unlock()

	b.surface.RemoveScrollListener(b.sub)
	b.loop.RemoveFrameFunc(b.frame)
}

// ============================================================================
// Container Plumbing
// ============================================================================

// container is what the three adapters share: a surface, its sampled scroll
// value, the header and the binding between them.
type container struct {
	loop    *retained.Loop
	surface *retained.ScrollView
	scroll  *retained.Value
	header  *Header
	binding *scrollBinding
	enabled bool
}

func newContainer(loop *retained.Loop, surface *retained.ScrollView, cfg HeaderConfig, props ScrollProps) (*container, error) {
	scroll := retained.NewValue(0)
	header, err := NewHeader(loop, scroll, cfg)
	if err != nil {
		return nil, err
	}

	surface.SetClock(loop.Now)
	surface.SetScrollEnabled(props.scrollEnabled())
	surface.SetScrollToConfig(props.ScrollTo)

	return &container{
		loop:    loop,
		surface: surface,
		scroll:  scroll,
		header:  header,
		enabled: props.scrollEnabled(),
	}, nil
}

// mount runs after the header node is in place.
func (c *container) mount(props ScrollProps) {
	if r := c.header.Responder(); r != nil {
		c.surface.AddResponder(r)
	}
	c.header.Mount(c.surface, c.enabled)
	c.binding = bindScroll(c.loop, c.surface, c.scroll, props, c.header.cfg.Logger)
}

// Header returns the stretchy header.
func (c *container) Header() *Header { return c.header }

// ScrollValue returns the sampled scroll channel.
func (c *container) ScrollValue() *retained.Value { return c.scroll }

// HandleTouch routes a touch through the header and the scroll surface.
func (c *container) HandleTouch(e *retained.TouchEvent) bool {
	return c.surface.HandleTouch(e)
}

// IsResponder reports whether the header's gallery holds the touch.
func (c *container) IsResponder() bool {
	r := c.header.Responder()
	return r != nil && r.IsResponder()
}

// HandleScroll feeds a host scroll frame.
func (c *container) HandleScroll(y float64, now time.Time) {
	c.surface.HandleScroll(y, now)
}

// Layout measures the container. The header takes the full width.
func (c *container) Layout(width, height float64) {
	c.surface.SetSize(width, height)
	c.header.Layout(width)
}

// Close detaches every listener the container installed.
func (c *container) Close() {
	if c.binding != nil {
		c.binding.close()
	}
	c.header.Unmount()
	if r := c.header.Responder(); r != nil {
		c.surface.RemoveResponder(r)
	}
}
