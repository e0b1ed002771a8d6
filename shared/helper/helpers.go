package helper

import (
	"fmt"
)

// GetTypedValueOf safely asserts the result of a getter function to the
// expected type T. Dispatch calls return any; this is how callers recover
// the concrete result type. Returns an error if the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: %T", res)
	}

	return val, nil
}

// GetTypedValueOf2 is the ok-flag variant of GetTypedValueOf.
func GetTypedValueOf2[T any](getFn func() (any, bool)) (res T, ok bool) {
	var raw any
	if raw, ok = getFn(); ok {
		res, ok = raw.(T)
	}
	return
}

// MustGetTypedValue is the panic-on-failure variant of GetTypedValueOf.
// Use when failure should be fatal, e.g. when the implementation's return
// type is fixed by the dispatch point's contract.
func MustGetTypedValue[T any](getFn func() (any, error)) T {
	res, err := GetTypedValueOf[T](getFn)
	if err != nil {
		panic(err)
	}
	return res
}
