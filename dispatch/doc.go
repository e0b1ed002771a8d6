// Package dispatch provides runtime single dispatch for Go.
//
// A dispatch point is a declared function that gains per-type implementations
// chosen at call time by the runtime type of one designated argument.
// It fills the same niche as trait objects or extension methods do elsewhere:
// behavior can be attached to types you do not own, without wrapping them.
//
// # How does it work?
//
// Trait-ive Go keeps one Registry per dispatch point. The registry owns the
// fallback implementation fixed at creation, plus a type-keyed table of
// registered implementations. Calling the Func facade derives a key type from
// the call arguments, walks the key's declared ancestor chain against the
// table, and invokes the first match with the original arguments untouched.
//
//	show := dispatch.New("show", nil)
//	dispatch.ImplForType[int](show, func(args ...any) (any, error) {
//	    return fmt.Sprintf("int: %d", args[0]), nil
//	})
//	out, err := show.Call(42) // "int: 42"
//
// # Ancestry
//
// Go has no inheritance, so the resolution order is explicit: each type may
// declare an ordered parent chain via DeclareAncestors. Linearization walks
// the key type first, then its ancestors level by level in declared order,
// so every direct parent outranks any grandparent. Each type appears once,
// the walk terminates at the universal any type, and the most specific match
// wins.
//
// # Registration semantics
//
// Registering a second implementation for a type already present silently
// overwrites the first; the latest registration wins. This favors idempotent
// re-registration over strictness, but it makes the outcome depend on
// evaluation order when several packages register the same type — keep
// registrations for one type in one place.
//
// Registration is expected during single-goroutine initialization. After
// that, Call and Resolve are safe for concurrent use: entry tables and the
// resolve cache are published atomically and never mutated in place.
package dispatch
