package container

import (
	"errors"
	"sync"
)

// ErrUnwrapUnset is returned when Unwrap is called on an unset Once cell.
var ErrUnwrapUnset = errors.New("called Unwrap on an unset Once cell")

// Once is a cell that can be written exactly once. The first write wins and
// every later write is ignored. Safe for concurrent use.
type Once[T any] struct {
	mu  sync.Mutex
	val T
	set bool
}

// Set writes the cell's value. If a value is already present, Set does
// nothing and reports false.
func (o *Once[T]) Set(v T) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.set {
		return false
	}
	o.val = v
	o.set = true
	return true
}

// IsSet reports whether the cell has been written.
func (o *Once[T]) IsSet() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.set
}

// Unwrap returns the cell's value, or ErrUnwrapUnset when it was never
// written.
func (o *Once[T]) Unwrap() (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.set {
		var zero T
		return zero, ErrUnwrapUnset
	}
	return o.val, nil
}

// GetOrInit returns the cell's value, initializing it with f when unset.
// f runs at most once across all callers.
func (o *Once[T]) GetOrInit(f func() T) T {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.set {
		o.val = f()
		o.set = true
	}
	return o.val
}
