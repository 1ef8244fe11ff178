// Package retained provides the small host layer the stretchy engine runs on:
// observable animated values, a frame-driven animation registry, touch and pan
// gesture recognition, and retained nodes that hold render properties.
//
// All state transitions are expected to happen on a single cooperative
// sequence (see Loop). Types still guard their state with mutexes so that a
// host may feed touches and read frames from different goroutines.
package retained

import (
	"sync"
	"sync/atomic"
)

// ListenerID identifies a registered value listener.
type ListenerID uint64

var nextListenerID atomic.Uint64

func newListenerID() ListenerID {
	return ListenerID(nextListenerID.Add(1))
}

// Observable is a continuously updated scalar that can be read and listened to.
// Both *Value and *Interpolation implement it.
type Observable interface {
	// Value returns the current value.
	Value() float64

	// AddListener registers fn to be called with the new value on every change.
	AddListener(fn func(float64)) ListenerID

	// RemoveListener unregisters a listener. Unknown IDs are ignored.
	RemoveListener(id ListenerID)
}

type listener struct {
	id ListenerID
	fn func(float64)
}

// Value is a mutable, observable scalar with an additive offset.
//
// The effective value is base+offset. Gestures write the offset while the
// base stays at its resting position, then FlattenOffset folds the offset
// into the base before an animation takes over.
type Value struct {
	mu        sync.Mutex
	value     float64
	offset    float64
	listeners []listener
	animation *Animation
}

// NewValue creates a value with the given base.
func NewValue(v float64) *Value {
	return &Value{value: v}
}

// Value returns base+offset.
func (v *Value) Value() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value + v.offset
}

// Base returns the base value without the offset.
func (v *Value) Base() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Offset returns the current additive offset.
func (v *Value) Offset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// SetValue stops any running animation and sets the base value.
func (v *Value) SetValue(value float64) {
	v.StopAnimation()
	v.mu.Lock()
	if v.value == value {
		v.mu.Unlock()
		return
	}
	v.value = value
	current := v.value + v.offset
	v.mu.Unlock()
	v.notify(current)
}

// SetOffset sets the additive offset applied on top of the base value.
func (v *Value) SetOffset(offset float64) {
	v.mu.Lock()
	if v.offset == offset {
		v.mu.Unlock()
		return
	}
	v.offset = offset
	current := v.value + v.offset
	v.mu.Unlock()
	v.notify(current)
}

// FlattenOffset merges the offset into the base and resets the offset to zero.
// The effective value does not change.
func (v *Value) FlattenOffset() {
	v.mu.Lock()
	v.value += v.offset
	v.offset = 0
	v.mu.Unlock()
}

// ExtractOffset moves the base into the offset and resets the base to zero.
// The effective value does not change.
func (v *Value) ExtractOffset() {
	v.mu.Lock()
	v.offset += v.value
	v.value = 0
	v.mu.Unlock()
}

// AddListener registers fn to be called synchronously on every change.
func (v *Value) AddListener(fn func(float64)) ListenerID {
	id := newListenerID()
	v.mu.Lock()
	v.listeners = append(v.listeners, listener{id: id, fn: fn})
	v.mu.Unlock()
	return id
}

// RemoveListener unregisters a listener.
func (v *Value) RemoveListener(id ListenerID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, l := range v.listeners {
		if l.id == id {
			v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
			return
		}
	}
}

// RemoveAllListeners unregisters every listener.
func (v *Value) RemoveAllListeners() {
	v.mu.Lock()
	v.listeners = nil
	v.mu.Unlock()
}

// ListenerCount returns the number of registered listeners.
func (v *Value) ListenerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

// IsAnimating reports whether an animation currently drives this value.
func (v *Value) IsAnimating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.animation != nil
}

// StopAnimation stops the running animation, if any, leaving the value where
// the animation last put it. The animation's completion callback fires with
// finished=false. Returns the current effective value.
func (v *Value) StopAnimation() float64 {
	v.mu.Lock()
	anim := v.animation
	v.animation = nil
	current := v.value + v.offset
	v.mu.Unlock()

	if anim != nil {
		anim.stop()
	}
	return current
}

// start makes anim the value's driver, stopping the previous one.
func (v *Value) start(anim *Animation) {
	v.mu.Lock()
	prev := v.animation
	v.animation = anim
	v.mu.Unlock()

	if prev != nil {
		prev.stop()
	}
}

// release clears anim as the driver if it still is.
func (v *Value) release(anim *Animation) {
	v.mu.Lock()
	if v.animation == anim {
		v.animation = nil
	}
	v.mu.Unlock()
}

// setFromAnimation writes a frame produced by anim. Frames from an animation
// that has been replaced are dropped.
func (v *Value) setFromAnimation(anim *Animation, value float64) {
	v.mu.Lock()
	if v.animation != anim {
		v.mu.Unlock()
		return
	}
	changed := v.value != value
	v.value = value
	current := v.value + v.offset
	v.mu.Unlock()

	if changed {
		v.notify(current)
	}
}

// notify calls listeners outside the lock so they may read or mutate the value.
func (v *Value) notify(current float64) {
	v.mu.Lock()
	fns := acquireListenerSlice(len(v.listeners))
	for i, l := range v.listeners {
		fns[i] = l.fn
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
	releaseListenerSlice(fns)
}
