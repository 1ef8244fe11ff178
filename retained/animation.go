package retained

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// AnimationID uniquely identifies an animation.
type AnimationID uint64

var nextAnimationID atomic.Uint64

func newAnimationID() AnimationID {
	return AnimationID(nextAnimationID.Add(1))
}

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInQuad - accelerate from zero
	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOutQuad - accelerate then decelerate
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseInOutCubic - smooth acceleration and deceleration
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}
)

// EasingByName returns the easing function for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutQuad
	case "ease", "ease-in-out":
		return EaseInOutQuad
	case "cubic-out":
		return EaseOutCubic
	case "cubic":
		return EaseInOutCubic
	default:
		return nil
	}
}

// stepFunc advances an animation to now. dt is the time since the previous
// step (zero on the first). It returns true once the animation has finished.
type stepFunc func(now time.Time, dt time.Duration) bool

// Animation is a running, frame-driven animation.
type Animation struct {
	id         AnimationID
	startTime  time.Time
	lastTime   time.Time
	step       stepFunc
	onComplete func(finished bool) // finished=false when stopped early
	cancelled  atomic.Bool
	done       atomic.Bool
}

// ID returns the animation's unique identifier.
func (a *Animation) ID() AnimationID {
	return a.id
}

// Cancel stops the animation without calling its completion callback.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
	a.done.Store(true)
}

// IsCancelled returns whether the animation was cancelled or stopped.
func (a *Animation) IsCancelled() bool {
	return a.cancelled.Load()
}

// IsDone reports whether the animation finished or was stopped.
func (a *Animation) IsDone() bool {
	return a.done.Load()
}

// stop cancels the animation and reports an unfinished completion once.
func (a *Animation) stop() {
	a.cancelled.Store(true)
	if a.done.CompareAndSwap(false, true) && a.onComplete != nil {
		a.onComplete(false)
	}
}

// finish reports a finished completion once.
func (a *Animation) finish() {
	if a.done.CompareAndSwap(false, true) && a.onComplete != nil {
		a.onComplete(true)
	}
}

// AnimationRegistry manages active animations and determines when frame ticks are needed.
type AnimationRegistry struct {
	mu         sync.RWMutex
	animations map[AnimationID]*Animation

	// Callback when animation state changes (for loop to know when to switch modes)
	onActiveChange func(hasActive bool)
}

// NewAnimationRegistry creates a new animation registry.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		animations: make(map[AnimationID]*Animation),
	}
}

// OnActiveChange sets the callback for when animations become active/inactive.
func (r *AnimationRegistry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers a new animation.
func (r *AnimationRegistry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
}

// Remove unregisters an animation.
func (r *AnimationRegistry) Remove(id AnimationID) {
	r.mu.Lock()
	_, existed := r.animations[id]
	delete(r.animations, id)
	isEmpty := len(r.animations) == 0
	callback := r.onActiveChange
	r.mu.Unlock()

	if existed && isEmpty && callback != nil {
		callback(false)
	}
}

// HasActive returns true if there are any running animations.
func (r *AnimationRegistry) HasActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, anim := range r.animations {
		if !anim.IsCancelled() {
			return true
		}
	}
	return false
}

// Count returns the number of registered animations.
func (r *AnimationRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations)
}

// Tick advances all animations to now and removes completed ones.
// Called once per frame by the loop. Returns true if any animations are still active.
func (r *AnimationRegistry) Tick(now time.Time) bool {
	r.mu.Lock()
	active := make([]*Animation, 0, len(r.animations))
	for id, anim := range r.animations {
		if anim.IsCancelled() {
			delete(r.animations, id)
			continue
		}
		active = append(active, anim)
	}
	r.mu.Unlock()

	// Steps run outside the lock: they notify listeners, which may start or
	// stop other animations.
	var completed []*Animation
	for _, anim := range active {
		if anim.IsCancelled() {
			continue
		}
		var dt time.Duration
		if !anim.lastTime.IsZero() {
			dt = now.Sub(anim.lastTime)
		}
		if dt < 0 {
			dt = 0
		}
		anim.lastTime = now
		if anim.step(now, dt) {
			completed = append(completed, anim)
		}
	}

	r.mu.Lock()
	for _, anim := range completed {
		delete(r.animations, anim.id)
	}
	for id, anim := range r.animations {
		if anim.IsCancelled() {
			delete(r.animations, id)
		}
	}
	hasActive := len(r.animations) > 0
	callback := r.onActiveChange
	r.mu.Unlock()

	for _, anim := range completed {
		anim.finish()
	}

	if !hasActive && len(active) > 0 && callback != nil {
		callback(false)
	}

	return hasActive
}

// ============================================================================
// Animation Builder API
// ============================================================================

// AnimationBuilder provides a fluent API for animating a Value.
type AnimationBuilder struct {
	value      *Value
	registry   *AnimationRegistry
	duration   time.Duration
	easing     EasingFunc
	onComplete func(finished bool)
	now        func() time.Time
}

// Animate starts building an animation for this value.
func (v *Value) Animate(registry *AnimationRegistry) *AnimationBuilder {
	return &AnimationBuilder{
		value:    v,
		registry: registry,
		duration: 300 * time.Millisecond, // Default duration
		easing:   EaseOutCubic,           // Default easing (smooth UI feel)
		now:      time.Now,
	}
}

// Duration sets how long a timing animation runs.
func (b *AnimationBuilder) Duration(d time.Duration) *AnimationBuilder {
	b.duration = d
	return b
}

// Easing sets the easing function of a timing animation.
func (b *AnimationBuilder) Easing(fn EasingFunc) *AnimationBuilder {
	if fn != nil {
		b.easing = fn
	}
	return b
}

// OnComplete sets a callback for when the animation finishes or is stopped.
func (b *AnimationBuilder) OnComplete(fn func(finished bool)) *AnimationBuilder {
	b.onComplete = fn
	return b
}

// Clock overrides the wall clock used to stamp the start time.
func (b *AnimationBuilder) Clock(now func() time.Time) *AnimationBuilder {
	if now != nil {
		b.now = now
	}
	return b
}

// Timing animates the base value to `to` over the configured duration.
func (b *AnimationBuilder) Timing(to float64) *Animation {
	from := b.value.Base()
	duration := b.duration
	easing := b.easing

	var elapsed time.Duration
	return b.start(func(anim *Animation) stepFunc {
		return func(now time.Time, dt time.Duration) bool {
			elapsed += dt
			if duration <= 0 || elapsed >= duration {
				b.value.setFromAnimation(anim, to)
				return true
			}
			t := clamp(float64(elapsed)/float64(duration), 0, 1)
			b.value.setFromAnimation(anim, lerp(from, to, easing(t)))
			return false
		}
	})
}

// Custom animates the value with a caller-supplied step. The step receives the
// elapsed time and returns the next base value and whether it is done.
func (b *AnimationBuilder) Custom(step func(elapsed time.Duration) (value float64, done bool)) *Animation {
	var elapsed time.Duration
	return b.start(func(anim *Animation) stepFunc {
		return func(now time.Time, dt time.Duration) bool {
			elapsed += dt
			v, done := step(elapsed)
			b.value.setFromAnimation(anim, v)
			return done
		}
	})
}

// start wires an animation to the value and registry.
func (b *AnimationBuilder) start(makeStep func(anim *Animation) stepFunc) *Animation {
	anim := &Animation{
		id:        newAnimationID(),
		startTime: b.now(),
	}
	value := b.value
	user := b.onComplete
	anim.onComplete = func(finished bool) {
		value.release(anim)
		if user != nil {
			user(finished)
		}
	}
	anim.step = makeStep(anim)

	value.start(anim)
	b.registry.Add(anim)
	return anim
}

// ============================================================================
// Helper Functions
// ============================================================================

// lerp linearly interpolates between two values.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
