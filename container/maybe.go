// Package container provides small value containers: an optional value
// (Maybe), a write-once cell (Once), and a memoized initializer (Lazy).
package container

import "errors"

// ErrUnwrapNothing is returned when Unwrap is called on a Nothing value.
var ErrUnwrapNothing = errors.New("called Unwrap on a Nothing value")

// Maybe optionally holds a value of type T. The absence of a value is a
// state, not a separate type: every operation stays available regardless of
// state and behaves according to it. The zero value is Nothing.
type Maybe[T any] struct {
	val T
	has bool
}

// Just wraps a present value.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{val: v, has: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr converts a possibly-nil pointer into a Maybe of its pointee.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return Nothing[T]()
	}
	return Just(*p)
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool { return m.has }

// IsJustAnd reports whether a value is present and satisfies pred.
func (m Maybe[T]) IsJustAnd(pred func(T) bool) bool {
	return m.has && pred(m.val)
}

// IsNothing reports whether the value is absent.
func (m Maybe[T]) IsNothing() bool { return !m.has }

// Get returns the inner value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.val, m.has }

// Unwrap returns the inner value, or ErrUnwrapNothing when absent.
func (m Maybe[T]) Unwrap() (T, error) {
	if !m.has {
		var zero T
		return zero, ErrUnwrapNothing
	}
	return m.val, nil
}

// Expect returns the inner value, panicking with msg when absent.
func (m Maybe[T]) Expect(msg string) T {
	if !m.has {
		panic(msg)
	}
	return m.val
}

// UnwrapOr returns the inner value, or def when absent.
func (m Maybe[T]) UnwrapOr(def T) T {
	if !m.has {
		return def
	}
	return m.val
}

// UnwrapOrElse returns the inner value, or the result of f when absent.
func (m Maybe[T]) UnwrapOrElse(f func() T) T {
	if !m.has {
		return f()
	}
	return m.val
}

// Map applies f to the inner value when present.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if !m.has {
		return m
	}
	return Just(f(m.val))
}

// MapOr applies f to the inner value when present, otherwise returns def.
func (m Maybe[T]) MapOr(def T, f func(T) T) T {
	if !m.has {
		return def
	}
	return f(m.val)
}

// AndThen chains a computation that itself may produce Nothing. This is the
// monadic bind for Maybe.
func (m Maybe[T]) AndThen(f func(T) Maybe[T]) Maybe[T] {
	if !m.has {
		return m
	}
	return f(m.val)
}

// And returns other when this value is present, Nothing otherwise.
func (m Maybe[T]) And(other Maybe[T]) Maybe[T] {
	if !m.has {
		return m
	}
	return other
}

// Or returns this value when present, other otherwise.
func (m Maybe[T]) Or(other Maybe[T]) Maybe[T] {
	if m.has {
		return m
	}
	return other
}

// OrElse returns this value when present, the result of f otherwise.
func (m Maybe[T]) OrElse(f func() Maybe[T]) Maybe[T] {
	if m.has {
		return m
	}
	return f()
}

// Filter keeps the inner value only when it satisfies pred.
func (m Maybe[T]) Filter(pred func(T) bool) Maybe[T] {
	if m.has && pred(m.val) {
		return m
	}
	return Nothing[T]()
}

// Replace returns a Maybe holding v and the previous state.
func (m Maybe[T]) Replace(v T) (Maybe[T], Maybe[T]) {
	return Just(v), m
}

// Take returns the current state and an emptied Maybe.
func (m Maybe[T]) Take() (Maybe[T], Maybe[T]) {
	return m, Nothing[T]()
}

// ToPtr returns a pointer to a copy of the inner value, or nil when absent.
func (m Maybe[T]) ToPtr() *T {
	if !m.has {
		return nil
	}
	v := m.val
	return &v
}

// MapMaybe applies f to the inner value when present, changing the inner
// type. It is a free function because Go methods cannot introduce type
// parameters.
func MapMaybe[T, R any](m Maybe[T], f func(T) R) Maybe[R] {
	if v, ok := m.Get(); ok {
		return Just(f(v))
	}
	return Nothing[R]()
}

// BindMaybe chains a computation that may produce Nothing, changing the
// inner type.
func BindMaybe[T, R any](m Maybe[T], f func(T) Maybe[R]) Maybe[R] {
	if v, ok := m.Get(); ok {
		return f(v)
	}
	return Nothing[R]()
}
