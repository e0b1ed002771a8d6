package dispatch

import "reflect"

// Kind determines how a dispatch point derives its key type from call
// arguments.
type Kind int

const (
	// KindFunction keys on the runtime type of the first positional argument.
	KindFunction Kind = iota
	// KindClassMethod keys on a type passed as the first argument. An
	// instance may be passed instead, in which case its runtime type is used.
	KindClassMethod
	// KindStaticMethod carries no implicit key argument. Callers must route
	// through CallFor or For with an explicit type.
	KindStaticMethod
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClassMethod:
		return "classmethod"
	case KindStaticMethod:
		return "staticmethod"
	default:
		return "unknown"
	}
}

// anyType is the universal terminal of every ancestor chain.
var anyType = reflect.TypeOf((*any)(nil)).Elem()

// KeyOf returns the dispatch key type for T. It works for both concrete and
// interface types.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// keyOfValue returns the dispatch key for a runtime value. Untyped nil keys
// on the universal any type.
func keyOfValue(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil {
		return anyType
	}
	return t
}
