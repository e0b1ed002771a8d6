package dispatch

import "errors"

var (
	// ErrNoImplementation is returned when resolution exhausts the ancestor
	// chain and the dispatch point has only a placeholder fallback.
	ErrNoImplementation = errors.New("no implementation found")

	// ErrMissingReceiver is returned when a call carries no argument to
	// derive the dispatch key from.
	ErrMissingReceiver = errors.New("dispatch key requires at least one argument")

	// ErrUntypedKey is returned when Call is used on a static dispatch point,
	// which has no implicit key argument. Use CallFor or For instead.
	ErrUntypedKey = errors.New("static dispatch requires an explicit type")

	// ErrAncestryCycle is returned by DeclareAncestors when the declaration
	// would make a type its own ancestor.
	ErrAncestryCycle = errors.New("ancestor declaration introduces a cycle")
)
