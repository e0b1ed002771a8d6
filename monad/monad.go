// Package monad declares Functor, Applicative and Monad as dispatch-backed
// traits, and ships per-instantiation instance registration for slices, maps
// and Maybe containers.
//
// The three traits share the usual derivation chain: a type registering only
// pure and bind gains apply and map for free. Map and apply accept plain
// func(any) any arrows because dispatch erases parameter types; use the
// Register helpers to keep the assertions in one place.
package monad

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"github.com/on-the-ground/trait_ive_go/dispatch"
	"github.com/on-the-ground/trait_ive_go/trait"
)

var (
	functorDef     = trait.New("Functor")
	applicativeDef = trait.New("Applicative")
	monadDef       = trait.New("Monad")

	mapFn   = mustMethod(functorDef, "map", dispatch.KindFunction, derivedMap)
	pureFn  = mustMethod(applicativeDef, "pure", dispatch.KindClassMethod, nil)
	applyFn = mustMethod(applicativeDef, "apply", dispatch.KindFunction, derivedApply)
	bindFn  = mustMethod(monadDef, "bind", dispatch.KindFunction, nil)
)

func mustMethod(d *trait.Definition, name string, kind dispatch.Kind, fallback dispatch.Callable) *dispatch.Func {
	f, err := d.Method(name, kind, fallback)
	if err != nil {
		panic(err)
	}
	return f
}

// FunctorDef exposes the Functor definition for custom instances.
func FunctorDef() *trait.Definition { return functorDef }

// ApplicativeDef exposes the Applicative definition for custom instances.
func ApplicativeDef() *trait.Definition { return applicativeDef }

// MonadDef exposes the Monad definition for custom instances.
func MonadDef() *trait.Definition { return monadDef }

// Finalize validates all three trait definitions after instance registration.
// Call it once the instances your program needs are registered.
func Finalize() error {
	var errs error
	if _, err := functorDef.Finalize(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := applicativeDef.Finalize(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := monadDef.Finalize(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Map applies f to the inner value(s) of x without changing its structure.
func Map(x any, f func(any) any) (any, error) {
	return mapFn.Call(x, f)
}

// PureFor wraps v into the container type t.
func PureFor(t reflect.Type, v any) (any, error) {
	return pureFn.CallFor(t, v)
}

// Pure wraps v into the container type C.
func Pure[C any](v any) (any, error) {
	return PureFor(dispatch.KeyOf[C](), v)
}

// Apply applies a container of functions ff to the inner value(s) of x.
func Apply(x any, ff any) (any, error) {
	return applyFn.Call(x, ff)
}

// Bind chains a computation f that returns a new container of the same
// structure.
func Bind(x any, f func(any) any) (any, error) {
	return bindFn.Call(x, f)
}

// hasEntry reports whether a dispatch point has a genuinely registered
// implementation reachable from t, ignoring its fallback.
func hasEntry(f *dispatch.Func, t reflect.Type) bool {
	for _, a := range dispatch.Linearize(t) {
		if _, ok := f.Registry().LookupExact(a); ok {
			return true
		}
	}
	return false
}

// derivedMap is the fallback Functor.map: map f x = x >>= \a -> pure (f a).
// It needs registered bind and pure instances for x's type.
func derivedMap(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("map expects 2 arguments, got %d", len(args))
	}
	x := args[0]
	f, ok := args[1].(func(any) any)
	if !ok {
		return nil, fmt.Errorf("map expects func(any) any, got %T", args[1])
	}
	key := reflect.TypeOf(x)
	if !hasEntry(bindFn, key) || !hasEntry(pureFn, key) {
		return nil, fmt.Errorf("%w: Functor.map for %v", dispatch.ErrNoImplementation, key)
	}

	var derr error
	res, err := bindFn.Call(x, func(a any) any {
		v, e := pureFn.CallFor(key, f(a))
		if e != nil {
			derr = e
		}
		return v
	})
	if err == nil {
		err = derr
	}
	return res, err
}

// derivedApply is the fallback Applicative.apply:
// apply f x = f >>= \g -> x >>= \y -> pure (g y).
func derivedApply(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("apply expects 2 arguments, got %d", len(args))
	}
	x, ff := args[0], args[1]
	key := reflect.TypeOf(x)
	if !hasEntry(bindFn, key) || !hasEntry(pureFn, key) {
		return nil, fmt.Errorf("%w: Applicative.apply for %v", dispatch.ErrNoImplementation, key)
	}

	var derr error
	res, err := bindFn.Call(ff, func(g any) any {
		gf, ok := g.(func(any) any)
		if !ok {
			derr = fmt.Errorf("apply expects a container of func(any) any, got element %T", g)
			return nil
		}
		inner, e := bindFn.Call(x, func(y any) any {
			v, pe := pureFn.CallFor(key, gf(y))
			if pe != nil {
				derr = pe
			}
			return v
		})
		if e != nil {
			derr = e
		}
		return inner
	})
	if err == nil {
		err = derr
	}
	return res, err
}
