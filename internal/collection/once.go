package collection

import "sync"

// Cell is a write-once value holder. The first Set wins; later calls are
// ignored so the stored value stays immutable for the cell's lifetime.
type Cell[T any] struct {
	mux sync.RWMutex
	set bool
	val T
}

// Set stores v unless a value is already present. It reports whether the
// value was stored by this call.
func (c *Cell[T]) Set(v T) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.set {
		return false
	}
	c.val = v
	c.set = true
	return true
}

func (c *Cell[T]) Get() (T, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.val, c.set
}
