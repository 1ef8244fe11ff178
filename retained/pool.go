package retained

import "sync"

// ============================================================================
// Listener Slice Pooling
// ============================================================================
//
// Scroll and gallery values notify their listeners on every frame. Copying the
// listener list under the lock would otherwise allocate once per frame per
// value, so the copies come from a pool.
//
// Usage:
//   fns := acquireListenerSlice(len(v.listeners))
//   ... fill and call ...
//   releaseListenerSlice(fns)

var listenerSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]func(float64), 0, 8)
	},
}

// acquireListenerSlice returns a slice with len == n from the pool.
// Caller must call releaseListenerSlice when done.
func acquireListenerSlice(n int) []func(float64) {
	slice := listenerSlicePool.Get().([]func(float64))
	if cap(slice) < n {
		listenerSlicePool.Put(slice[:0])
		return make([]func(float64), n, n*2)
	}
	return slice[:n]
}

// releaseListenerSlice clears the slice and returns it to the pool.
func releaseListenerSlice(slice []func(float64)) {
	if slice == nil {
		return
	}
	for i := range slice {
		slice[i] = nil
	}
	// Oversized slices are left to the GC
	if cap(slice) <= 64 {
		listenerSlicePool.Put(slice[:0])
	}
}

// ============================================================================
// Scroll Listener Pooling
// ============================================================================

var scrollListenerPool = sync.Pool{
	New: func() interface{} {
		return make([]func(ScrollEvent), 0, 4)
	},
}

func acquireScrollListeners(n int) []func(ScrollEvent) {
	slice := scrollListenerPool.Get().([]func(ScrollEvent))
	if cap(slice) < n {
		scrollListenerPool.Put(slice[:0])
		return make([]func(ScrollEvent), n, n*2)
	}
	return slice[:n]
}

func releaseScrollListeners(slice []func(ScrollEvent)) {
	if slice == nil {
		return
	}
	for i := range slice {
		slice[i] = nil
	}
	if cap(slice) <= 64 {
		scrollListenerPool.Put(slice[:0])
	}
}
