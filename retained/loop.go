package retained

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// LoopConfig configures the frame loop.
type LoopConfig struct {
	TargetFPS int // Frames per second while animations run (default 60)
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{TargetFPS: 60}
}

// FrameFunc is called after every frame with the frame time and the updates
// collected from the tree.
type FrameFunc func(now time.Time, updates []Update)

// FrameFuncID identifies a registered frame callback.
type FrameFuncID uint64

type frameFunc struct {
	id FrameFuncID
	fn FrameFunc
}

// Loop is the cooperative UI sequence: it ticks animations, dispatches touches
// and hands dirty updates to the host. Everything funneled through a Loop runs
// one piece at a time.
type Loop struct {
	mu         sync.Mutex // serializes frames and dispatched work
	animations *AnimationRegistry
	tree       *Tree
	fps        int

	clockMu sync.RWMutex
	now     time.Time // time of the latest frame, zero before the first

	frameMu     sync.Mutex
	onFrame     []frameFunc
	nextFrameID FrameFuncID

	// Run sleeps while nothing is animating and no frame was requested.
	wake         chan struct{}
	framePending atomic.Bool
}

// NewLoop creates a loop with its own animation registry and tree.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = DefaultLoopConfig().TargetFPS
	}
	l := &Loop{
		animations: NewAnimationRegistry(),
		tree:       NewTree(),
		fps:        cfg.TargetFPS,
		wake:       make(chan struct{}, 1),
	}
	l.animations.OnActiveChange(func(hasActive bool) {
		if hasActive {
			l.RequestFrame()
		}
	})
	return l
}

// Animations returns the loop's animation registry.
func (l *Loop) Animations() *AnimationRegistry {
	return l.animations
}

// Tree returns the loop's node tree.
func (l *Loop) Tree() *Tree {
	return l.tree
}

// FrameInterval returns the time between frames at the target FPS.
func (l *Loop) FrameInterval() time.Duration {
	return time.Second / time.Duration(l.fps)
}

// Now returns the time of the latest frame, or the wall clock before the first frame.
func (l *Loop) Now() time.Time {
	l.clockMu.RLock()
	defer l.clockMu.RUnlock()
	if l.now.IsZero() {
		return time.Now()
	}
	return l.now
}

// SetNow seeds the loop clock without running a frame.
func (l *Loop) SetNow(now time.Time) {
	l.clockMu.Lock()
	l.now = now
	l.clockMu.Unlock()
}

// OnFrame registers fn to run after every frame. Pair it with
// RemoveFrameFunc when the owner goes away.
func (l *Loop) OnFrame(fn FrameFunc) FrameFuncID {
	l.frameMu.Lock()
	defer l.frameMu.Unlock()
	l.nextFrameID++
	l.onFrame = append(l.onFrame, frameFunc{id: l.nextFrameID, fn: fn})
	return l.nextFrameID
}

// RemoveFrameFunc unregisters a frame callback. Unknown IDs are ignored.
func (l *Loop) RemoveFrameFunc(id FrameFuncID) {
	l.frameMu.Lock()
	defer l.frameMu.Unlock()
	for i, f := range l.onFrame {
		if f.id == id {
			l.onFrame = append(l.onFrame[:i], l.onFrame[i+1:]...)
			return
		}
	}
}

// FrameFuncCount returns the number of registered frame callbacks.
func (l *Loop) FrameFuncCount() int {
	l.frameMu.Lock()
	defer l.frameMu.Unlock()
	return len(l.onFrame)
}

// RequestFrame asks Run for at least one more frame.
func (l *Loop) RequestFrame() {
	l.framePending.Store(true)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// needsFrame consumes a frame request.
func (l *Loop) needsFrame() bool {
	requested := l.framePending.Swap(false)
	return requested || l.animations.HasActive()
}

// Step runs one frame at now. Returns true while animations are still active.
func (l *Loop) Step(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.step(now)
}

func (l *Loop) step(now time.Time) bool {
	l.SetNow(now)
	active := l.animations.Tick(now)
	updates := l.tree.CollectUpdates()

	l.frameMu.Lock()
	callbacks := make([]FrameFunc, len(l.onFrame))
	for i, f := range l.onFrame {
		callbacks[i] = f.fn
	}
	l.frameMu.Unlock()

	for _, fn := range callbacks {
		fn(now, updates)
	}
	return active
}

// Settle steps the loop from now in frame intervals until no animation is
// active or maxFrames is reached. Returns the time of the last frame.
func (l *Loop) Settle(now time.Time, maxFrames int) time.Time {
	interval := l.FrameInterval()
	for i := 0; i < maxFrames; i++ {
		now = now.Add(interval)
		if !l.Step(now) {
			break
		}
	}
	return now
}

// Dispatch runs fn on the loop's sequence, between frames.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
	l.RequestFrame()
}

// DispatchTouch feeds e to r on the loop's sequence and releases e afterwards.
func (l *Loop) DispatchTouch(r TouchResponder, e *TouchEvent) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.SetNow(e.Timestamp)
	claimed := r.HandleTouch(e)
	e.Release()
	l.RequestFrame()
	return claimed
}

// Run ticks frames at the target FPS until ctx is done. While no animation is
// active and no frame was requested it waits instead of ticking.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.FrameInterval())
	defer ticker.Stop()

	for {
		if !l.needsFrame() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
				continue
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Step(now)
		}
	}
}
