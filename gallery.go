package stretchy

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agiangrant/stretchy/internal/logging"
	"github.com/agiangrant/stretchy/retained"
)

// DragLocker is told when a gallery drag starts and ends so the surrounding
// scroll surface can hold still. *ScrollLock implements it.
type DragLocker interface {
	BeginDrag()
	EndDrag()
}

// GalleryConfig configures a Gallery.
type GalleryConfig struct {
	Length   int                   // Number of background elements
	Spring   retained.SpringConfig // Settle spring; overshoot clamping is always on
	OnChange func(index int)       // Called after a settle commits a new index
	Locker   DragLocker            // Optional
	Logger   *logging.Logger       // Optional
}

// Gallery owns the fractional gallery index and the pan gesture state machine
// that drives it.
//
// The index value rests on integers. While a drag is active its base stays at
// the index the drag started from and the finger position is applied as an
// offset; on release the offset is flattened and a spring settles the value
// on the target index.
type Gallery struct {
	mu sync.Mutex

	loop   *retained.Loop
	index  *retained.Value
	length int
	width  float64

	committed  int
	state      DragState
	session    *DragSession
	settleGen  uint64 // identifies the newest settle
	droppedGen uint64 // settles up to this generation commit nothing

	spring   retained.SpringConfig
	onChange func(index int)
	locker   DragLocker
	log      *logging.Logger

	responder *retained.PanResponder
}

// NewGallery creates a gallery at index 0. Galleries with fewer than two
// elements never create a pan responder.
func NewGallery(loop *retained.Loop, cfg GalleryConfig) *Gallery {
	g := &Gallery{
		loop:     loop,
		index:    retained.NewValue(0),
		length:   cfg.Length,
		spring:   cfg.Spring,
		onChange: cfg.OnChange,
		locker:   cfg.Locker,
		log:      cfg.Logger.With("component", "gallery"),
	}

	if g.length > 1 {
		g.responder = retained.NewPanResponder(retained.PanHandlers{
			OnMoveShouldSet: func(_ *retained.TouchEvent, gs retained.GestureState) bool {
				return g.shouldCapture(gs)
			},
			OnGrant: func(_ *retained.TouchEvent, gs retained.GestureState) {
				g.grant(gs)
			},
			OnMove: func(_ *retained.TouchEvent, gs retained.GestureState) {
				g.move(gs)
			},
			OnRelease: func(_ *retained.TouchEvent, gs retained.GestureState) {
				g.release(gs)
			},
			OnTerminate: func(_ *retained.TouchEvent, gs retained.GestureState) {
				g.release(gs)
			},
		})
	}
	return g
}

// Responder returns the pan responder, or nil when paging is impossible.
func (g *Gallery) Responder() *retained.PanResponder {
	return g.responder
}

// Value returns the fractional index value.
func (g *Gallery) Value() *retained.Value {
	return g.index
}

// Len returns the number of elements.
func (g *Gallery) Len() int {
	return g.length
}

// Index returns the committed index.
func (g *Gallery) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.committed
}

// State returns the gesture state.
func (g *Gallery) State() DragState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns a copy of the active drag session.
func (g *Gallery) Session() (DragSession, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return DragSession{}, false
	}
	return *g.session, true
}

// SetWidth records the measured header width. A drag in progress keeps the
// width it was granted with.
func (g *Gallery) SetWidth(width float64) {
	g.mu.Lock()
	g.width = width
	g.mu.Unlock()
}

// Width returns the measured header width.
func (g *Gallery) Width() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width
}

// GoTo pages to index programmatically. It is ignored while a finger is on
// the gallery. Returns false when nothing was started.
func (g *Gallery) GoTo(index int, animated bool) bool {
	g.mu.Lock()
	if g.length == 0 || g.state == DragCapturing || g.state == DragDragging {
		g.mu.Unlock()
		return false
	}
	target := clampIndex(index, g.length-1)
	if animated {
		g.state = DragSettling
	}
	g.mu.Unlock()

	if animated {
		g.settleTo(target, 0)
		return true
	}
	g.index.SetValue(float64(target))
	g.commit(target, true)
	return true
}

// ============================================================================
// Gesture Handlers
// ============================================================================

func (g *Gallery) last() int {
	return g.length - 1
}

// shouldCapture claims moves that are more horizontal than vertical.
func (g *Gallery) shouldCapture(gs retained.GestureState) bool {
	if g.length <= 1 || math.Abs(gs.DX) <= math.Abs(gs.DY) {
		return false
	}
	g.mu.Lock()
	g.state = DragCapturing
	g.mu.Unlock()
	return true
}

func (g *Gallery) grant(gs retained.GestureState) {
	// Freezes the index where the running settle left it. The settle's
	// completion commits its target before the new session reads it.
	frozen := g.index.StopAnimation()

	g.mu.Lock()
	g.state = DragDragging
	g.session = &DragSession{
		StartIndex: g.committed,
		DX:         gs.DX,
		VX:         gs.VX,
		Width:      g.width,
	}
	start := g.committed
	locker := g.locker
	g.mu.Unlock()

	g.log.DebugFn("gallery drag granted", func(e *zerolog.Event) {
		e.Int("start", start).Float64("value", frozen)
	})

	if locker != nil {
		locker.BeginDrag()
	}
}

func (g *Gallery) move(gs retained.GestureState) {
	g.mu.Lock()
	s := g.session
	if s == nil {
		g.mu.Unlock()
		return
	}
	s.DX, s.VX = gs.DX, gs.VX
	offset := s.Offset(g.last())
	g.mu.Unlock()

	g.index.SetOffset(offset)
}

func (g *Gallery) release(gs retained.GestureState) {
	g.mu.Lock()
	s := g.session
	if s == nil {
		g.mu.Unlock()
		return
	}
	s.DX, s.VX = gs.DX, gs.VX
	target := s.Target(g.last())
	start := s.StartIndex
	g.session = nil
	g.state = DragSettling
	locker := g.locker
	g.mu.Unlock()

	g.log.DebugFn("gallery drag released", func(e *zerolog.Event) {
		e.Int("start", start).
			Int("target", target).
			Float64("dx", gs.DX).
			Float64("vx", gs.VX)
	})

	g.index.FlattenOffset()
	g.settleTo(target, -gs.VX)

	if locker != nil {
		locker.EndDrag()
	}
}

// Cancel abandons any drag or settle. The index snaps back to the committed
// index, the machine returns to idle and OnChange is not called.
func (g *Gallery) Cancel() {
	g.mu.Lock()
	wasDragging := g.state == DragDragging
	prevState := g.state
	g.droppedGen = g.settleGen
	g.session = nil
	g.state = DragIdle
	committed := g.committed
	locker := g.locker
	g.mu.Unlock()

	if g.responder != nil {
		g.responder.Reset()
	}
	g.index.StopAnimation()
	g.index.SetOffset(0)
	g.index.SetValue(float64(committed))

	if wasDragging && locker != nil {
		locker.EndDrag()
	}
	if prevState != DragIdle {
		g.log.DebugFn("gallery gesture cancelled", func(e *zerolog.Event) {
			e.Str("state", prevState.String()).Int("index", committed)
		})
	}
}

// settleTo springs the index to target. Completion commits target even when a
// new drag interrupts the spring.
func (g *Gallery) settleTo(target int, velocity float64) {
	cfg := g.spring
	cfg.Velocity = velocity
	cfg.OvershootClamping = true

	g.mu.Lock()
	g.settleGen++
	gen := g.settleGen
	g.mu.Unlock()

	g.index.Animate(g.loop.Animations()).
		Clock(g.loop.Now).
		OnComplete(func(finished bool) {
			g.commitSettle(gen, target, finished)
		}).
		Spring(float64(target), cfg)
}

func (g *Gallery) commitSettle(gen uint64, target int, finished bool) {
	g.mu.Lock()
	latest := gen == g.settleGen
	dropped := gen <= g.droppedGen
	g.mu.Unlock()
	if dropped {
		return
	}
	g.commitIndex(target, finished, latest)
}

func (g *Gallery) commit(target int, finished bool) {
	g.commitIndex(target, finished, true)
}

// commitIndex makes target the committed index. Only the newest settle may
// return the machine to idle.
func (g *Gallery) commitIndex(target int, finished, latest bool) {
	g.mu.Lock()
	prev := g.committed
	g.committed = target
	if latest && g.state == DragSettling {
		g.state = DragIdle
	}
	onChange := g.onChange
	g.mu.Unlock()

	g.log.DebugFn("gallery settled", func(e *zerolog.Event) {
		e.Int("index", target).Int("previous", prev).Bool("finished", finished)
	})

	if target != prev && onChange != nil {
		onChange(target)
	}
}
