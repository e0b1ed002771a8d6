// Package fn provides small function primitives shared across the library.
package fn

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/trait_ive_go/container"
)

// ErrUnimplemented marks a location that might never be implemented.
var ErrUnimplemented = errors.New("not implemented")

// ErrTodo marks a location that is meant to be implemented later.
var ErrTodo = errors.New("todo")

// Identity returns its sole argument unchanged.
func Identity[T any](x T) T { return x }

// Unimplemented builds the error for a permanently unimplemented location.
func Unimplemented(msg string) error {
	if msg == "" {
		return ErrUnimplemented
	}
	return fmt.Errorf("%w: %s", ErrUnimplemented, msg)
}

// Todo builds the error for a location awaiting implementation.
func Todo(msg string) error {
	if msg == "" {
		return ErrTodo
	}
	return fmt.Errorf("%w: %s", ErrTodo, msg)
}

// Once wraps a nullary function so its body runs at most once; every later
// call returns the cached result.
func Once[R any](f func() R) func() R {
	var cell container.Once[R]
	return func() R {
		return cell.GetOrInit(f)
	}
}
