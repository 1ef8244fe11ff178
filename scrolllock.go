package stretchy

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agiangrant/stretchy/internal/logging"
)

// ScrollSurface is the part of the outer scroll container the lock drives.
// *retained.ScrollView implements it.
type ScrollSurface interface {
	ScrollY() float64
	SetScrollEnabled(enabled bool)
	ScrollTo(x, y float64, animated bool)
}

// ScrollLock holds the outer scroll surface still while the gallery is being
// dragged.
//
// Both operations are idempotent. Before a surface is attached they do
// nothing, and a surface the application configured with scrolling disabled
// is never touched.
type ScrollLock struct {
	mu            sync.Mutex
	surface       ScrollSurface
	scrollEnabled bool // false when the application disabled scrolling for good
	locked        bool
	log           *logging.Logger
}

// NewScrollLock creates a detached lock.
func NewScrollLock(scrollEnabled bool, log *logging.Logger) *ScrollLock {
	return &ScrollLock{
		scrollEnabled: scrollEnabled,
		log:           log.With("component", "scroll_lock"),
	}
}

// Attach points the lock at a mounted surface.
func (l *ScrollLock) Attach(surface ScrollSurface, scrollEnabled bool) {
	l.mu.Lock()
	l.surface = surface
	l.scrollEnabled = scrollEnabled
	l.locked = false
	l.mu.Unlock()
}

// Detach forgets the surface. A held lock is released first.
func (l *ScrollLock) Detach() {
	l.EndDrag()
	l.mu.Lock()
	l.surface = nil
	l.mu.Unlock()
}

// Locked reports whether the lock currently holds the surface.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}

// BeginDrag disables user scrolling and scrolls back to the top if the
// surface is offset.
func (l *ScrollLock) BeginDrag() {
	l.mu.Lock()
	surface := l.surface
	if surface == nil || !l.scrollEnabled || l.locked {
		l.mu.Unlock()
		return
	}
	l.locked = true
	l.mu.Unlock()

	surface.SetScrollEnabled(false)
	if y := surface.ScrollY(); y != 0 {
		l.log.DebugFn("scroll reset for drag", func(e *zerolog.Event) {
			e.Float64("offset", y)
		})
		surface.ScrollTo(0, 0, true)
	}
}

// EndDrag re-enables user scrolling.
func (l *ScrollLock) EndDrag() {
	l.mu.Lock()
	surface := l.surface
	if surface == nil || !l.scrollEnabled || !l.locked {
		l.mu.Unlock()
		return
	}
	l.locked = false
	l.mu.Unlock()

	surface.SetScrollEnabled(true)
}
