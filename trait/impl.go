package trait

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"github.com/on-the-ground/trait_ive_go/dispatch"
)

// ImplBlock registers a batch of method implementations for one key type.
// Methods chain; errors accumulate and surface from Done, so a block reads
// like the declarative implementation blocks of trait-based languages:
//
//	err := trait.ImplFor[MyType](def).
//	    Method("map", mapImpl).
//	    Method("bind", bindImpl).
//	    Done()
type ImplBlock struct {
	def *Definition
	key reflect.Type
	err error
}

// Impl opens an implementation block registering methods against the key
// type t.
func (d *Definition) Impl(t reflect.Type) *ImplBlock {
	return &ImplBlock{def: d, key: t}
}

// ImplFor is the generic form of Definition.Impl.
func ImplFor[T any](d *Definition) *ImplBlock {
	return d.Impl(dispatch.KeyOf[T]())
}

// Method registers impl for the named dispatch method. Naming a method the
// trait never declared records an ErrUnknownMethod; the registration is
// skipped and the error surfaces from Done.
func (b *ImplBlock) Method(name string, impl dispatch.Callable) *ImplBlock {
	f, ok := b.def.Func(name)
	if !ok {
		b.err = multierr.Append(b.err, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, b.def.name, name))
		return b
	}
	f.ImplFor(b.key, impl)
	return b
}

// Done reports every error the block accumulated.
func (b *ImplBlock) Done() error {
	return b.err
}
