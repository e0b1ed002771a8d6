package container

// Lazy defers an initializer until its result is first needed, then caches
// it for every later read. Safe for concurrent use; init runs at most once.
type Lazy[T any] struct {
	cell Once[T]
	init func() T
}

// NewLazy creates a lazily initialized value.
func NewLazy[T any](init func() T) *Lazy[T] {
	return &Lazy[T]{init: init}
}

// Get returns the initialized value, running the initializer on first use.
func (l *Lazy[T]) Get() T {
	return l.cell.GetOrInit(l.init)
}
