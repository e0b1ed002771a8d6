package dispatch

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Func is the callable facade of one dispatch point. It exclusively owns one
// Registry and is the only thing users call or register against.
type Func struct {
	name     string
	registry *Registry
	logger   *zap.Logger
}

// New declares a function-kind dispatch point. fallback is invoked when no
// registered implementation matches; a nil fallback installs a placeholder so
// unmatched calls fail with ErrNoImplementation.
func New(name string, fallback Callable, opts ...Option) *Func {
	return NewKind(name, KindFunction, fallback, opts...)
}

// NewKind declares a dispatch point of an explicit kind. Class-method-kind
// points key on a type passed as the first argument; static-method-kind
// points have no implicit key and must be routed through CallFor or For.
func NewKind(name string, kind Kind, fallback Callable, opts ...Option) *Func {
	r := NewRegistry(name, kind, fallback, opts...)
	return &Func{name: name, registry: r, logger: r.logger}
}

// Name returns the dispatch point name.
func (f *Func) Name() string { return f.name }

// Registry exposes the owned registry for inspection. Mutation goes through
// ImplFor.
func (f *Func) Registry() *Registry { return f.registry }

// Call derives the dispatch key from args per the point's kind, resolves an
// implementation, and invokes it with the original arguments untouched. Key
// derivation is read-only inspection, never argument transformation.
func (f *Func) Call(args ...any) (any, error) {
	key, err := f.keyOf(args)
	if err != nil {
		return nil, err
	}
	impl, err := f.registry.Resolve(key)
	if err != nil {
		return nil, err
	}
	return impl(args...)
}

// CallFor resolves on an explicit key type and invokes the winner. For
// class-method-kind points the key type is prepended to the arguments, so
// implementations receive the class they were selected for; other kinds
// receive args unchanged.
func (f *Func) CallFor(key reflect.Type, args ...any) (any, error) {
	impl, err := f.registry.Resolve(key)
	if err != nil {
		return nil, err
	}
	if f.registry.kind == KindClassMethod {
		args = append([]any{key}, args...)
	}
	return impl(args...)
}

// For resolves on an explicit key type without calling, returning the
// implementation that Call would invoke.
func (f *Func) For(key reflect.Type) (Callable, error) {
	return f.registry.Resolve(key)
}

// ImplFor registers impl for the key type t and returns impl unchanged, so
// it remains independently usable. Registering a type already present
// silently overwrites the earlier implementation.
func (f *Func) ImplFor(t reflect.Type, impl Callable) Callable {
	f.registry.Register(t, impl)
	return impl
}

// ImplForType is the generic form of Func.ImplFor.
func ImplForType[T any](f *Func, impl Callable) Callable {
	return f.ImplFor(KeyOf[T](), impl)
}

// CallForType is the generic form of Func.CallFor.
func CallForType[T any](f *Func, args ...any) (any, error) {
	return f.CallFor(KeyOf[T](), args...)
}

func (f *Func) keyOf(args []any) (reflect.Type, error) {
	switch f.registry.kind {
	case KindStaticMethod:
		return nil, fmt.Errorf("%w: %s", ErrUntypedKey, f.name)
	case KindClassMethod:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingReceiver, f.name)
		}
		if t, ok := args[0].(reflect.Type); ok {
			return t, nil
		}
		return keyOfValue(args[0]), nil
	default:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingReceiver, f.name)
		}
		return keyOfValue(args[0]), nil
	}
}
