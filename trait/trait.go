// Package trait builds dispatch-backed trait definitions and validates their
// completeness before use.
//
// A Definition declares named dispatch points the way an abstract base
// declares abstract methods. Implementations are registered per concrete
// type, in bulk or one method at a time. Finalize is the explicit validator
// pass: run it after all registrations for the types you intend to support,
// and it either returns a usable Trait handle or rejects the definition with
// every missing method named.
//
// The definition lifecycle is Declared → Validated | Rejected. Both outcomes
// are terminal: repeated Finalize calls return the recorded result, and
// registrations arriving after finalization are accepted but never
// re-validated.
package trait

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/trait_ive_go/dispatch"
)

// State is the lifecycle phase of a trait definition.
type State int

const (
	// Declared accepts method declarations and registrations.
	Declared State = iota
	// Validated is terminal; the definition produced a usable Trait handle.
	Validated
	// Rejected is terminal; finalization found missing methods.
	Rejected
)

func (s State) String() string {
	switch s {
	case Declared:
		return "declared"
	case Validated:
		return "validated"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Definition is a named set of dispatch-backed methods under construction.
type Definition struct {
	id     string
	name   string
	logger *zap.Logger

	mu      sync.Mutex
	methods map[string]*dispatch.Func
	order   []string
	state   State
	handle  *Trait
	err     error
}

// Option configures a Definition at creation time.
type Option func(*Definition)

// WithLogger installs a zap logger, propagated to every dispatch point the
// definition declares. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Definition) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates an empty trait definition in the Declared state.
func New(name string, opts ...Option) *Definition {
	d := &Definition{
		id:      uuid.New().String(),
		name:    name,
		logger:  zap.NewNop(),
		methods: make(map[string]*dispatch.Func),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger.Debug("declared trait",
		zap.String("traitId", d.id),
		zap.String("name", name),
	)
	return d
}

// Method declares a dispatch-backed method on the trait. A nil fallback
// installs a placeholder, so the method must gain at least one registration
// before Finalize accepts the definition. Redeclaring a name replaces the
// previous dispatch point wholesale.
func (d *Definition) Method(name string, kind dispatch.Kind, fallback dispatch.Callable) (*dispatch.Func, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Declared {
		return nil, fmt.Errorf("%w: %s is %v", ErrFinalized, d.name, d.state)
	}
	f := dispatch.NewKind(
		d.name+"."+name,
		kind,
		fallback,
		dispatch.WithLogger(d.logger),
		dispatch.WithOwner(d),
	)
	if _, exists := d.methods[name]; !exists {
		d.order = append(d.order, name)
	}
	d.methods[name] = f
	return f, nil
}

// Name returns the trait name.
func (d *Definition) Name() string { return d.name }

// State returns the current lifecycle phase.
func (d *Definition) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Methods returns the declared dispatch method names in declaration order.
func (d *Definition) Methods() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Func returns the dispatch point declared under name.
func (d *Definition) Func(name string) (*dispatch.Func, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.methods[name]
	return f, ok
}

// AddImpl registers a batch of method implementations for the key type t.
// It is the imperative counterpart of Impl.
func (d *Definition) AddImpl(t reflect.Type, impls map[string]dispatch.Callable) error {
	block := d.Impl(t)
	for name, impl := range impls {
		block.Method(name, impl)
	}
	return block.Done()
}

// Finalize validates the definition: every declared method must carry either
// a meaningful (non-placeholder) fallback or at least one registered
// implementation. It runs the check once; later calls return the recorded
// outcome, and registrations after finalization never re-validate.
func (d *Definition) Finalize() (*Trait, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Declared {
		return d.handle, d.err
	}

	var missing []string
	for _, name := range d.order {
		r := d.methods[name].Registry()
		if r.Placeholder() && r.Count() == 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		d.state = Rejected
		d.err = newIncompleteError(d.name, missing)
		d.logger.Debug("rejected trait",
			zap.String("traitId", d.id),
			zap.String("name", d.name),
			zap.Strings("missing", missing),
		)
		return nil, d.err
	}

	d.state = Validated
	d.handle = &Trait{def: d}
	d.logger.Debug("validated trait",
		zap.String("traitId", d.id),
		zap.String("name", d.name),
		zap.Int("methods", len(d.order)),
	)
	return d.handle, nil
}

// Trait is the validated handle of a finalized definition. It is the only
// callable surface: a rejected definition never yields one.
type Trait struct {
	def *Definition
}

// Name returns the trait name.
func (t *Trait) Name() string { return t.def.name }

// Methods returns the dispatch method names in declaration order.
func (t *Trait) Methods() []string { return t.def.Methods() }

// Func returns the dispatch point declared under name.
func (t *Trait) Func(name string) (*dispatch.Func, bool) { return t.def.Func(name) }

// Call invokes the named method, dispatching on its kind's implicit key.
func (t *Trait) Call(method string, args ...any) (any, error) {
	f, ok := t.def.Func(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, t.def.name, method)
	}
	return f.Call(args...)
}

// CallFor invokes the named method, routing resolution through an explicit
// key type. Static- and class-method-kind points are called this way.
func (t *Trait) CallFor(method string, key reflect.Type, args ...any) (any, error) {
	f, ok := t.def.Func(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, t.def.name, method)
	}
	return f.CallFor(key, args...)
}
