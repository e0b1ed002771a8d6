package monad

import (
	"fmt"

	"github.com/on-the-ground/trait_ive_go/container"
	"github.com/on-the-ground/trait_ive_go/dispatch"
)

// A registration is per instantiated type: []int and []string are distinct
// dispatch keys, so instances are registered through generic helpers for the
// element types a program actually uses.

// RegisterSlice registers Functor, Applicative and Monad instances for []T
// with result element type R. pure is keyed on []R, the container it builds.
func RegisterSlice[T, R any]() {
	dispatch.ImplForType[[]T](mapFn, func(args ...any) (any, error) {
		xs, f, err := sliceArgs[T](args)
		if err != nil {
			return nil, err
		}
		out := make([]R, 0, len(xs))
		for _, x := range xs {
			r, ok := f(x).(R)
			if !ok {
				return nil, fmt.Errorf("map over []%T produced %T, want %T", *new(T), f(x), *new(R))
			}
			out = append(out, r)
		}
		return out, nil
	})

	dispatch.ImplForType[[]R](pureFn, func(args ...any) (any, error) {
		v, err := pureArg[R](args)
		if err != nil {
			return nil, err
		}
		return []R{v}, nil
	})

	dispatch.ImplForType[[]T](applyFn, func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("apply expects 2 arguments, got %d", len(args))
		}
		xs, ok := args[0].([]T)
		if !ok {
			return nil, fmt.Errorf("apply expects []%T, got %T", *new(T), args[0])
		}
		fs, ok := args[1].([]func(any) any)
		if !ok {
			return nil, fmt.Errorf("apply expects []func(any) any, got %T", args[1])
		}
		out := make([]R, 0, len(xs)*len(fs))
		for _, f := range fs {
			for _, x := range xs {
				r, ok := f(x).(R)
				if !ok {
					return nil, fmt.Errorf("apply over []%T produced %T, want %T", *new(T), f(x), *new(R))
				}
				out = append(out, r)
			}
		}
		return out, nil
	})

	dispatch.ImplForType[[]T](bindFn, func(args ...any) (any, error) {
		xs, f, err := sliceArgs[T](args)
		if err != nil {
			return nil, err
		}
		var out []R
		for _, x := range xs {
			ys, ok := f(x).([]R)
			if !ok {
				return nil, fmt.Errorf("bind over []%T produced %T, want []%T", *new(T), f(x), *new(R))
			}
			out = append(out, ys...)
		}
		return out, nil
	})
}

// RegisterMap registers a Functor instance for map[K]V with result value
// type R; map applies f to every value, keeping keys.
func RegisterMap[K comparable, V, R any]() {
	dispatch.ImplForType[map[K]V](mapFn, func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("map expects 2 arguments, got %d", len(args))
		}
		m, ok := args[0].(map[K]V)
		if !ok {
			return nil, fmt.Errorf("map expects map, got %T", args[0])
		}
		f, ok := args[1].(func(any) any)
		if !ok {
			return nil, fmt.Errorf("map expects func(any) any, got %T", args[1])
		}
		out := make(map[K]R, len(m))
		for k, v := range m {
			r, ok := f(v).(R)
			if !ok {
				return nil, fmt.Errorf("map over map values produced %T, want %T", f(v), *new(R))
			}
			out[k] = r
		}
		return out, nil
	})
}

// RegisterMaybe registers Functor, Applicative and Monad instances for
// container.Maybe[T] with result inner type R.
func RegisterMaybe[T, R any]() {
	dispatch.ImplForType[container.Maybe[T]](mapFn, func(args ...any) (any, error) {
		m, f, err := maybeArgs[T](args)
		if err != nil {
			return nil, err
		}
		var mapErr error
		out := container.BindMaybe(m, func(v T) container.Maybe[R] {
			r, ok := f(v).(R)
			if !ok {
				mapErr = fmt.Errorf("map over Maybe produced %T, want %T", f(v), *new(R))
				return container.Nothing[R]()
			}
			return container.Just(r)
		})
		return out, mapErr
	})

	dispatch.ImplForType[container.Maybe[R]](pureFn, func(args ...any) (any, error) {
		v, err := pureArg[R](args)
		if err != nil {
			return nil, err
		}
		return container.Just(v), nil
	})

	dispatch.ImplForType[container.Maybe[T]](applyFn, func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("apply expects 2 arguments, got %d", len(args))
		}
		m, ok := args[0].(container.Maybe[T])
		if !ok {
			return nil, fmt.Errorf("apply expects Maybe, got %T", args[0])
		}
		ff, ok := args[1].(container.Maybe[func(any) any])
		if !ok {
			return nil, fmt.Errorf("apply expects Maybe[func(any) any], got %T", args[1])
		}
		f, fok := ff.Get()
		v, vok := m.Get()
		if !fok || !vok {
			return container.Nothing[R](), nil
		}
		r, ok := f(v).(R)
		if !ok {
			return nil, fmt.Errorf("apply over Maybe produced %T, want %T", f(v), *new(R))
		}
		return container.Just(r), nil
	})

	dispatch.ImplForType[container.Maybe[T]](bindFn, func(args ...any) (any, error) {
		m, f, err := maybeArgs[T](args)
		if err != nil {
			return nil, err
		}
		v, ok := m.Get()
		if !ok {
			return container.Nothing[R](), nil
		}
		out, ok := f(v).(container.Maybe[R])
		if !ok {
			return nil, fmt.Errorf("bind over Maybe produced %T, want Maybe", f(v))
		}
		return out, nil
	})
}

func sliceArgs[T any](args []any) ([]T, func(any) any, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	xs, ok := args[0].([]T)
	if !ok {
		return nil, nil, fmt.Errorf("expected []%T, got %T", *new(T), args[0])
	}
	f, ok := args[1].(func(any) any)
	if !ok {
		return nil, nil, fmt.Errorf("expected func(any) any, got %T", args[1])
	}
	return xs, f, nil
}

func maybeArgs[T any](args []any) (container.Maybe[T], func(any) any, error) {
	if len(args) != 2 {
		return container.Nothing[T](), nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	m, ok := args[0].(container.Maybe[T])
	if !ok {
		return container.Nothing[T](), nil, fmt.Errorf("expected Maybe, got %T", args[0])
	}
	f, ok := args[1].(func(any) any)
	if !ok {
		return container.Nothing[T](), nil, fmt.Errorf("expected func(any) any, got %T", args[1])
	}
	return m, f, nil
}

// pureArg unwraps the (key type, value) argument pair a class-method-kind
// dispatch point passes to its implementations.
func pureArg[R any](args []any) (R, error) {
	var zero R
	if len(args) != 2 {
		return zero, fmt.Errorf("pure expects (type, value), got %d arguments", len(args))
	}
	v, ok := args[1].(R)
	if !ok {
		return zero, fmt.Errorf("pure expects %T, got %T", zero, args[1])
	}
	return v, nil
}
