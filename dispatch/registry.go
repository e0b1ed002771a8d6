package dispatch

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Callable is the uniform call contract shared by a dispatch point and all of
// its implementations. Implementations receive the argument list exactly as
// it was passed to the facade.
type Callable func(args ...any) (any, error)

// Registry owns the type-to-implementation table and the fallback
// implementation for one dispatch point. A Registry is created once, when its
// dispatch point is declared, and lives for the remainder of the process.
type Registry struct {
	id          string
	name        string
	kind        Kind
	fallback    Callable
	placeholder bool
	owner       any
	logger      *zap.Logger

	mu      sync.Mutex
	entries atomic.Pointer[map[reflect.Type]Callable]
	cache   *resolveCache
}

// Entry is a single (type, implementation) association in a Registry
// snapshot.
type Entry struct {
	Type reflect.Type
	Impl Callable
}

// NewRegistry creates the registry for one dispatch point. A nil fallback
// installs a "not implemented" placeholder: resolution that reaches it fails
// with ErrNoImplementation instead of silently succeeding.
func NewRegistry(name string, kind Kind, fallback Callable, opts ...Option) *Registry {
	r := &Registry{
		id:     uuid.New().String(),
		name:   name,
		kind:   kind,
		logger: zap.NewNop(),
		cache:  newResolveCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if fallback == nil {
		r.placeholder = true
		r.fallback = func(args ...any) (any, error) {
			return nil, fmt.Errorf("%w: %s", ErrNoImplementation, name)
		}
	} else {
		r.fallback = fallback
	}
	empty := make(map[reflect.Type]Callable)
	r.entries.Store(&empty)
	r.logger.Debug("created dispatch registry",
		zap.String("registryId", r.id),
		zap.String("name", name),
		zap.Stringer("kind", kind),
	)
	return r
}

// Option configures a Registry at creation time.
type Option func(*Registry)

// WithLogger installs a zap logger for registration and resolution lifecycle
// events. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOwner records a back-reference to the enclosing trait definition. The
// registry never mutates or inspects its owner; it exists for lookup only.
func WithOwner(owner any) Option {
	return func(r *Registry) { r.owner = owner }
}

// Register inserts or overwrites the implementation for t. A second
// registration for the same type silently replaces the first; the latest
// write wins. Register never fails and does not validate impl against the
// fallback's call contract — that contract is on the caller.
func (r *Registry) Register(t reflect.Type, impl Callable) {
	if t == nil {
		t = anyType
	}
	if impl == nil {
		panic("dispatch: nil implementation registered for " + r.name)
	}
	r.mu.Lock()
	cur := *r.entries.Load()
	next := make(map[reflect.Type]Callable, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	_, replaced := next[t]
	next[t] = impl
	r.entries.Store(&next)
	r.mu.Unlock()

	r.cache.invalidate()
	r.logger.Debug("registered implementation",
		zap.String("registryId", r.id),
		zap.String("name", r.name),
		zap.Stringer("type", t),
		zap.Bool("replaced", replaced),
	)
}

// LookupExact returns the implementation registered for exactly t, without
// walking the ancestor chain.
func (r *Registry) LookupExact(t reflect.Type) (Callable, bool) {
	impl, ok := (*r.entries.Load())[t]
	return impl, ok
}

// Resolve walks the linearized ancestor chain of key and returns the first
// registered hit. If the walk exhausts, the fallback is returned — unless it
// is a placeholder, in which case Resolve fails with ErrNoImplementation.
func (r *Registry) Resolve(key reflect.Type) (Callable, error) {
	if key == nil {
		key = anyType
	}
	if impl, ok := r.cache.get(key); ok {
		return impl, nil
	}
	gen := r.cache.generation()
	for _, t := range Linearize(key) {
		if impl, ok := r.LookupExact(t); ok {
			r.cache.put(key, impl, gen)
			return impl, nil
		}
	}
	if r.placeholder {
		return nil, fmt.Errorf("%w: %s has no implementation for %v", ErrNoImplementation, r.name, key)
	}
	r.cache.put(key, r.fallback, gen)
	return r.fallback, nil
}

// ID returns the unique identity of this registry, assigned at creation.
func (r *Registry) ID() string { return r.id }

// Name returns the dispatch point name this registry backs.
func (r *Registry) Name() string { return r.name }

// Kind returns how this registry derives dispatch keys.
func (r *Registry) Kind() Kind { return r.kind }

// Owner returns the enclosing trait definition, if any.
func (r *Registry) Owner() any { return r.owner }

// Placeholder reports whether the fallback is a "not implemented"
// placeholder rather than a meaningful default.
func (r *Registry) Placeholder() bool { return r.placeholder }

// Count returns the number of registered entries.
func (r *Registry) Count() int { return len(*r.entries.Load()) }

// Entries returns a snapshot of the registered associations for diagnostics.
// Order is unspecified.
func (r *Registry) Entries() []Entry {
	cur := *r.entries.Load()
	out := make([]Entry, 0, len(cur))
	for t, impl := range cur {
		out = append(out, Entry{Type: t, Impl: impl})
	}
	return out
}
