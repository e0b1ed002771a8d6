package dispatch

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// ancestry is the process-wide table of declared parent chains. Writers
// serialize on mu and publish a fresh map; readers never lock.
type ancestry struct {
	mu      sync.Mutex
	parents atomic.Pointer[map[reflect.Type][]reflect.Type]
	version atomic.Uint64
}

var hierarchy = newAncestry()

func newAncestry() *ancestry {
	a := &ancestry{}
	empty := make(map[reflect.Type][]reflect.Type)
	a.parents.Store(&empty)
	return a
}

// DeclareAncestors declares the ordered parent chain of child. Repeated
// declarations extend the existing chain; parents already declared for child
// are skipped. The declaration is rejected if it would make child reachable
// from one of its own ancestors.
func DeclareAncestors(child reflect.Type, parents ...reflect.Type) error {
	if child == nil || child == anyType {
		return fmt.Errorf("cannot declare ancestors of %v", child)
	}
	hierarchy.mu.Lock()
	defer hierarchy.mu.Unlock()

	cur := *hierarchy.parents.Load()
	chain := cur[child]
	for _, p := range parents {
		if p == nil || p == anyType || p == child || containsType(chain, p) {
			continue
		}
		if containsType(linearizeOver(cur, p), child) {
			return fmt.Errorf("%w: %v is an ancestor of %v", ErrAncestryCycle, child, p)
		}
		chain = append(chain, p)
	}

	next := make(map[reflect.Type][]reflect.Type, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[child] = chain
	hierarchy.parents.Store(&next)
	hierarchy.version.Add(1)
	return nil
}

// Declare is the generic form of DeclareAncestors for a single parent.
func Declare[Child any, Parent any]() error {
	return DeclareAncestors(KeyOf[Child](), KeyOf[Parent]())
}

// MustDeclare is the panic-on-failure variant of Declare. Use during package
// initialization where a bad declaration is a programming error.
func MustDeclare[Child any, Parent any]() {
	if err := Declare[Child, Parent](); err != nil {
		panic(err)
	}
}

// Linearize returns the resolution order for a key type: the type itself
// first, then its declared ancestors level by level — every declared parent
// before any grandparent — each type exactly once at its first occurrence,
// terminating at the universal any type. A type's full declared chain
// outranks anything it inherits through that chain, so a direct parent can
// never be shadowed by a shared ancestor further up.
func Linearize(t reflect.Type) []reflect.Type {
	return linearizeOver(*hierarchy.parents.Load(), t)
}

func linearizeOver(parents map[reflect.Type][]reflect.Type, t reflect.Type) []reflect.Type {
	seen := make(map[reflect.Type]struct{})
	var order []reflect.Type

	queue := []reflect.Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		order = append(order, cur)
		queue = append(queue, parents[cur]...)
	}

	if _, ok := seen[anyType]; !ok {
		order = append(order, anyType)
	}
	return order
}

func containsType(ts []reflect.Type, t reflect.Type) bool {
	for _, c := range ts {
		if c == t {
			return true
		}
	}
	return false
}
