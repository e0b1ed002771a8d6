// Package hook provides named callback hooks with eager and lazy firing.
//
// Eager callbacks fire once when a function is wrapped; lazy callbacks fire
// before every call of the wrapped function. Registration is
// identity-preserving: the registered callback is returned unchanged.
package hook

import (
	"sync"

	"go.uber.org/zap"
)

// Hook holds two ordered callback lists under one name.
type Hook struct {
	name   string
	logger *zap.Logger

	mu    sync.Mutex
	eager []func()
	lazy  []func()
}

// Option configures a Hook at creation time.
type Option func(*Hook)

// WithLogger installs a zap logger for firing events. The default is a nop
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Hook) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates an empty hook.
func New(name string, opts ...Option) *Hook {
	h := &Hook{name: name, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the hook name.
func (h *Hook) Name() string { return h.name }

// RegisterLazy appends f to the lazy list and returns it unchanged.
func (h *Hook) RegisterLazy(f func()) func() {
	h.mu.Lock()
	h.lazy = append(h.lazy, f)
	h.mu.Unlock()
	return f
}

// RegisterEager appends f to the eager list and returns it unchanged.
func (h *Hook) RegisterEager(f func()) func() {
	h.mu.Lock()
	h.eager = append(h.eager, f)
	h.mu.Unlock()
	return f
}

// Register is an alias for RegisterLazy.
func (h *Hook) Register(f func()) func() { return h.RegisterLazy(f) }

// FireEager runs every eager callback in registration order.
func (h *Hook) FireEager() {
	h.logger.Debug("firing eager hooks", zap.String("hook", h.name))
	for _, f := range h.snapshot(&h.eager) {
		f()
	}
}

// FireLazy runs every lazy callback in registration order.
func (h *Hook) FireLazy() {
	h.logger.Debug("firing lazy hooks", zap.String("hook", h.name))
	for _, f := range h.snapshot(&h.lazy) {
		f()
	}
}

// Fire is an alias for FireLazy.
func (h *Hook) Fire() { h.FireLazy() }

// Wrap fires the eager list immediately and returns a function that fires
// the lazy list before each invocation of wrapped.
func Wrap[T, R any](h *Hook, wrapped func(T) R) func(T) R {
	h.FireEager()
	return func(arg T) R {
		h.FireLazy()
		return wrapped(arg)
	}
}

func (h *Hook) snapshot(list *[]func()) []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]func(), len(*list))
	copy(out, *list)
	return out
}
