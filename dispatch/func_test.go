package dispatch_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/trait_ive_go/dispatch"
	"github.com/on-the-ground/trait_ive_go/shared/helper"
)

type circle struct{ r float64 }

type rectangle struct{ w, h float64 }

type square struct{ s float64 }

type triangle struct{}

type dimensioned interface{ dims() (float64, float64) }

func (r rectangle) dims() (float64, float64) { return r.w, r.h }
func (s square) dims() (float64, float64)    { return s.s, s.s }

func TestFunc_AreaScenario(t *testing.T) {
	require.NoError(t, dispatch.Declare[square, rectangle]())

	area := dispatch.New("area", nil)
	dispatch.ImplForType[circle](area, func(args ...any) (any, error) {
		c := args[0].(circle)
		return math.Pi * c.r * c.r, nil
	})
	dispatch.ImplForType[rectangle](area, func(args ...any) (any, error) {
		w, h := args[0].(dimensioned).dims()
		return w * h, nil
	})

	got := helper.MustGetTypedValue[float64](func() (any, error) {
		return area.Call(circle{r: 2})
	})
	assert.InDelta(t, 12.566, got, 0.001)

	got = helper.MustGetTypedValue[float64](func() (any, error) {
		return area.Call(square{s: 3})
	})
	assert.InDelta(t, 9.0, got, 1e-9, "square routes through rectangle's implementation")

	_, err := area.Call(triangle{})
	require.ErrorIs(t, err, dispatch.ErrNoImplementation)
}

func TestFunc_ImplForIsIdentityPreserving(t *testing.T) {
	f := dispatch.New("identity_preserving", nil)

	called := false
	impl := func(args ...any) (any, error) {
		called = true
		return args[0], nil
	}
	returned := f.ImplFor(dispatch.KeyOf[int](), impl)

	// The decorator returns the function unchanged: calling the returned
	// value invokes the original body, not a wrapper.
	out, err := returned(7)
	require.NoError(t, err)
	assert.Equal(t, 7, out)
	assert.True(t, called)

	out, err = f.Call(42)
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestFunc_OriginalArgumentsForwarded(t *testing.T) {
	f := dispatch.New("forwarding", nil)
	dispatch.ImplForType[string](f, func(args ...any) (any, error) {
		return args, nil
	})

	out, err := f.Call("key", 1, true)
	require.NoError(t, err)
	assert.Equal(t, []any{"key", 1, true}, out)
}

func TestFunc_MissingReceiver(t *testing.T) {
	f := dispatch.New("no_args", nil)
	_, err := f.Call()
	require.ErrorIs(t, err, dispatch.ErrMissingReceiver)
}

func TestFunc_NilKeysOnUniversalType(t *testing.T) {
	f := dispatch.New("nil_key", nil)
	f.ImplFor(dispatch.KeyOf[any](), func(args ...any) (any, error) {
		return "catch-all", nil
	})

	out, err := f.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, "catch-all", out)
}

type builderBase struct{}
type builderSub struct{}
type builderLeaf struct{}

func TestFunc_ClassMethodKind(t *testing.T) {
	require.NoError(t, dispatch.Declare[builderSub, builderBase]())
	require.NoError(t, dispatch.Declare[builderLeaf, builderSub]())

	make_ := dispatch.NewKind("Builder.make", dispatch.KindClassMethod, nil)
	dispatch.ImplForType[builderBase](make_, func(args ...any) (any, error) {
		return "base", nil
	})
	dispatch.ImplForType[builderSub](make_, func(args ...any) (any, error) {
		return "sub", nil
	})

	// The class argument itself is the dispatch key.
	out, err := make_.Call(dispatch.KeyOf[builderSub]())
	require.NoError(t, err)
	assert.Equal(t, "sub", out)

	// A type with no registration of its own routes to the nearest
	// registered ancestor.
	out, err = make_.Call(dispatch.KeyOf[builderLeaf]())
	require.NoError(t, err)
	assert.Equal(t, "sub", out)

	// An instance may stand in for its type.
	out, err = make_.Call(builderBase{})
	require.NoError(t, err)
	assert.Equal(t, "base", out)
}

func TestFunc_ClassMethodCallForPrependsKey(t *testing.T) {
	make_ := dispatch.NewKind("Builder.tagged", dispatch.KindClassMethod, nil)
	dispatch.ImplForType[builderBase](make_, func(args ...any) (any, error) {
		return args, nil
	})

	out, err := dispatch.CallForType[builderBase](make_, "payload")
	require.NoError(t, err)
	assert.Equal(t, []any{dispatch.KeyOf[builderBase](), "payload"}, out)
}

func TestFunc_StaticMethodKind(t *testing.T) {
	f := dispatch.NewKind("static_point", dispatch.KindStaticMethod, nil)
	dispatch.ImplForType[builderBase](f, func(args ...any) (any, error) {
		return args, nil
	})

	// No implicit argument carries the key.
	_, err := f.Call(builderBase{})
	require.ErrorIs(t, err, dispatch.ErrUntypedKey)

	// Routing through the owning type explicitly works, and the arguments
	// arrive untouched.
	out, err := dispatch.CallForType[builderBase](f, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, out)
}

func TestFunc_ForReturnsResolvedCallable(t *testing.T) {
	f := dispatch.New("peek", nil)
	want := dispatch.ImplForType[int](f, func(args ...any) (any, error) {
		return "int", nil
	})

	got, err := f.For(dispatch.KeyOf[int]())
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(want).Pointer(), reflect.ValueOf(got).Pointer())

	_, err = f.For(dispatch.KeyOf[triangle]())
	require.True(t, errors.Is(err, dispatch.ErrNoImplementation))
}
