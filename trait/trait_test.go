package trait_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/trait_ive_go/dispatch"
	"github.com/on-the-ground/trait_ive_go/trait"
)

type fileLike struct{ name string }

type bufferLike struct{ data []byte }

func noopImpl(args ...any) (any, error) { return nil, nil }

func TestFinalize_RejectsUnimplementedMethods(t *testing.T) {
	d := trait.New("Readable")
	_, err := d.Method("read", dispatch.KindFunction, nil)
	require.NoError(t, err)
	_, err = d.Method("close", dispatch.KindFunction, nil)
	require.NoError(t, err)

	handle, err := d.Finalize()
	require.Nil(t, handle)
	require.ErrorIs(t, err, trait.ErrIncompleteDispatch)

	var incomplete *trait.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "Readable", incomplete.Trait)
	assert.Equal(t, []string{"read", "close"}, incomplete.Missing, "every missing method is named")
	assert.Equal(t, trait.Rejected, d.State())
}

func TestFinalize_AcceptsRegisteredMethods(t *testing.T) {
	d := trait.New("Writable")
	_, err := d.Method("write", dispatch.KindFunction, nil)
	require.NoError(t, err)

	err = trait.ImplFor[fileLike](d).
		Method("write", func(args ...any) (any, error) {
			return len(args), nil
		}).
		Done()
	require.NoError(t, err)

	handle, err := d.Finalize()
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, trait.Validated, d.State())

	out, err := handle.Call("write", fileLike{name: "a"}, "payload")
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestFinalize_MeaningfulDefaultSuffices(t *testing.T) {
	d := trait.New("Stringer")
	_, err := d.Method("string", dispatch.KindFunction, func(args ...any) (any, error) {
		return "<default>", nil
	})
	require.NoError(t, err)

	handle, err := d.Finalize()
	require.NoError(t, err)

	out, err := handle.Call("string", bufferLike{})
	require.NoError(t, err)
	assert.Equal(t, "<default>", out)
}

func TestFinalize_OutcomeIsTerminal(t *testing.T) {
	d := trait.New("Terminal")
	f, err := d.Method("run", dispatch.KindFunction, nil)
	require.NoError(t, err)

	_, err = d.Finalize()
	require.ErrorIs(t, err, trait.ErrIncompleteDispatch)

	// Registrations after finalization are accepted but never re-validate.
	f.ImplFor(dispatch.KeyOf[fileLike](), noopImpl)
	handle, err := d.Finalize()
	require.Nil(t, handle)
	require.ErrorIs(t, err, trait.ErrIncompleteDispatch)
	assert.Equal(t, trait.Rejected, d.State())

	// The late registration still reaches the registry itself.
	out, callErr := f.Call(fileLike{})
	require.NoError(t, callErr)
	assert.Nil(t, out)
}

func TestFinalize_RegistrationBeforeFinalizeFlipsOutcome(t *testing.T) {
	d := trait.New("Flippable")
	f, err := d.Method("run", dispatch.KindFunction, nil)
	require.NoError(t, err)

	f.ImplFor(dispatch.KeyOf[fileLike](), noopImpl)

	handle, err := d.Finalize()
	require.NoError(t, err)
	require.NotNil(t, handle)
}

func TestMethod_AfterFinalizeRejected(t *testing.T) {
	d := trait.New("Sealed")
	_, err := d.Method("a", dispatch.KindFunction, noopImpl)
	require.NoError(t, err)
	_, err = d.Finalize()
	require.NoError(t, err)

	_, err = d.Method("b", dispatch.KindFunction, noopImpl)
	require.ErrorIs(t, err, trait.ErrFinalized)
}

func TestImplBlock_UnknownMethod(t *testing.T) {
	d := trait.New("Narrow")
	_, err := d.Method("only", dispatch.KindFunction, nil)
	require.NoError(t, err)

	err = trait.ImplFor[fileLike](d).
		Method("only", noopImpl).
		Method("bogus", noopImpl).
		Done()
	require.ErrorIs(t, err, trait.ErrUnknownMethod)

	// The valid registration in the same block still lands.
	f, ok := d.Func("only")
	require.True(t, ok)
	_, registered := f.Registry().LookupExact(dispatch.KeyOf[fileLike]())
	assert.True(t, registered)
}

func TestAddImpl_ImperativeRegistration(t *testing.T) {
	d := trait.New("Imperative")
	_, err := d.Method("ping", dispatch.KindFunction, nil)
	require.NoError(t, err)

	err = d.AddImpl(dispatch.KeyOf[bufferLike](), map[string]dispatch.Callable{
		"ping": func(args ...any) (any, error) { return "pong", nil },
	})
	require.NoError(t, err)

	handle, err := d.Finalize()
	require.NoError(t, err)
	out, err := handle.Call("ping", bufferLike{})
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestTrait_MethodsAndKinds(t *testing.T) {
	d := trait.New("Mixed")
	_, err := d.Method("normal", dispatch.KindFunction, noopImpl)
	require.NoError(t, err)
	_, err = d.Method("create", dispatch.KindClassMethod, noopImpl)
	require.NoError(t, err)
	_, err = d.Method("helper", dispatch.KindStaticMethod, noopImpl)
	require.NoError(t, err)

	assert.Equal(t, []string{"normal", "create", "helper"}, d.Methods())

	handle, err := d.Finalize()
	require.NoError(t, err)

	// Static methods must be routed through an explicit type.
	_, err = handle.Call("helper", fileLike{})
	require.ErrorIs(t, err, dispatch.ErrUntypedKey)
	_, err = handle.CallFor("helper", dispatch.KeyOf[fileLike]())
	require.NoError(t, err)

	_, err = handle.Call("missing", fileLike{})
	require.ErrorIs(t, err, trait.ErrUnknownMethod)
}

func TestTrait_RegistryOwnerBackReference(t *testing.T) {
	d := trait.New("Owned")
	f, err := d.Method("m", dispatch.KindFunction, noopImpl)
	require.NoError(t, err)
	assert.Same(t, d, f.Registry().Owner())
}
