package daisy_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ib-77/daisychain/pkg/daisy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_BranchesAreIndependent(t *testing.T) {
	t.Parallel()

	for _, mode := range []daisy.Mode{daisy.Eager, daisy.Lazy} {
		ctor := daisy.MustBuild[int](arith(), daisy.WithMode(mode))

		c1 := ctor.New(10).Call("x", 10)
		c2 := c1.Call("x", 2)
		c3 := c1.Call("mod", 3)

		assert.Equal(t, 200, c2.MustValue(), mode.String())
		assert.Equal(t, 1, c3.MustValue(), mode.String())
		assert.Equal(t, 100, c1.MustValue(), mode.String())

		assert.Equal(t, 1, c1.Len())
		assert.Equal(t, 2, c2.Len())
		assert.Equal(t, 2, c3.Len())
		assert.NotEqual(t, c1.ID(), c2.ID())
		assert.NotEqual(t, c2.ID(), c3.ID())
	}
}

func TestChain_Deterministic(t *testing.T) {
	t.Parallel()

	for _, mode := range []daisy.Mode{daisy.Eager, daisy.Lazy} {
		ctor := daisy.MustBuild[int](arith(), daisy.WithMode(mode))
		build := func() daisy.Chain[int] {
			return ctor.New(7).Call("x", 6).Call("mod", 5).Call("identity")
		}

		c := build()
		first := c.MustValue()
		assert.Equal(t, 2, first)
		assert.Equal(t, first, c.MustValue())
		assert.Equal(t, first, build().MustValue())
	}
}

func TestChain_LazyDefersUntilValue(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls), daisy.WithMode(daisy.Lazy))

	c := ctor.New(1).Call("inc").Call("inc").Call("inc")
	require.Equal(t, 0, calls)
	require.Equal(t, 3, c.Len())

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 3, calls)

	// evaluating again replays every step
	assert.Equal(t, 4, c.MustValue())
	assert.Equal(t, 6, calls)
}

func TestChain_EagerAppliesImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls))

	c := ctor.New(1).Call("inc").Call("inc")
	require.Equal(t, 2, calls)

	assert.Equal(t, 3, c.MustValue())
	assert.Equal(t, 3, c.MustValue())
	assert.Equal(t, 2, calls)
	assert.Nil(t, c.Steps())
}

func TestChain_EagerErrorSurfacesAtCall(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls))

	c, err := ctor.New(1).Invoke("boom")
	require.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, c.Err(), errBoom)
	assert.Equal(t, 1, calls)

	// the failed chain short-circuits the rest of the calls
	next, err := c.Invoke("inc")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)

	_, err = next.Value()
	assert.ErrorIs(t, err, errBoom)
}

func TestChain_LazyErrorSurfacesAtValue(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls), daisy.WithMode(daisy.Lazy))

	c, err := ctor.New(1).Call("inc").Invoke("boom")
	require.NoError(t, err)
	require.NoError(t, c.Err())

	c = c.Call("inc")
	require.NoError(t, c.Err())
	require.Equal(t, 0, calls)

	v, err := c.Value()
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, v)
	// evaluation stops at the failing step
	assert.Equal(t, 2, calls)
}

func TestChain_ErrorIsNotTransformed(t *testing.T) {
	t.Parallel()

	for _, mode := range []daisy.Mode{daisy.Eager, daisy.Lazy} {
		calls := 0
		ctor := daisy.MustBuild[int](counting(&calls), daisy.WithMode(mode))

		_, err := ctor.New(1).Call("boom").Value()
		assert.Same(t, errBoom, err)
	}
}

func TestChain_UnknownMethod(t *testing.T) {
	t.Parallel()

	for _, mode := range []daisy.Mode{daisy.Eager, daisy.Lazy} {
		ctor := daisy.MustBuild[int](arith(), daisy.WithMode(mode))

		c, err := ctor.New(1).Invoke("state1")
		require.ErrorIs(t, err, daisy.ErrUnknownMethod)
		assert.ErrorIs(t, c.Err(), daisy.ErrUnknownMethod)
		assert.ErrorContains(t, err, "state1")

		_, err = c.Call("x", 2).Value()
		assert.ErrorIs(t, err, daisy.ErrUnknownMethod)
	}
}

func TestChain_PanicsPropagate(t *testing.T) {
	t.Parallel()

	ops := daisy.Ops{"explode": func(n int) int { panic("explode") }}

	eager := daisy.MustBuild[int](ops)
	assert.PanicsWithValue(t, "explode", func() { eager.New(1).Call("explode") })

	lazy := daisy.MustBuild[int](ops, daisy.WithMode(daisy.Lazy))
	c := lazy.New(1).Call("explode")
	assert.PanicsWithValue(t, "explode", func() { _, _ = c.Value() })
}

func TestChain_LazySteps(t *testing.T) {
	t.Parallel()

	ctor := daisy.MustBuild[int](arith(), daisy.WithMode(daisy.Lazy))

	args := []any{3}
	c := ctor.New(2).Call("x", args...).Call("mod", 4).Call("identity")
	args[0] = 100

	want := []daisy.Step[int]{
		{Name: "x", Args: []any{3}},
		{Name: "mod", Args: []any{4}},
		{Name: "identity"},
	}
	got := c.Steps()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(daisy.Step[int]{}, "Op"), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("Steps() mismatch (-want +got):\n%s", diff)
	}

	got[0].Args[0] = 50
	assert.Equal(t, 2, c.MustValue())
	assert.Equal(t, 3, c.Steps()[0].Args[0])

	assert.Empty(t, ctor.New(2).Steps())
}

func TestChain_LazyValueMatchesEager(t *testing.T) {
	t.Parallel()

	eager := daisy.MustBuild[int](arith())
	lazy := daisy.MustBuild[int](arith(), daisy.WithMode(daisy.Lazy))

	c := lazy.New(9).Call("x", 4).Call("mod", 7).Call("x", 3)
	v, err := daisy.Evaluate(9, c.Steps())
	require.NoError(t, err)

	assert.Equal(t, eager.New(9).Call("x", 4).Call("mod", 7).Call("x", 3).MustValue(), v)
	assert.Equal(t, c.MustValue(), v)
}

func TestChain_ZeroValue(t *testing.T) {
	t.Parallel()

	var c daisy.Chain[int]
	assert.Equal(t, daisy.Eager, c.Mode())
	assert.Zero(t, c.MustValue())
	assert.Nil(t, c.Methods())

	_, err := c.Invoke("x", 1)
	assert.ErrorIs(t, err, daisy.ErrUnknownMethod)
}

func TestChain_MustValuePanicsWithError(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls), daisy.WithMode(daisy.Lazy))
	c := ctor.New(1).Call("boom")

	assert.PanicsWithError(t, "boom", func() { c.MustValue() })
}

func TestFinally(t *testing.T) {
	t.Parallel()

	calls := 0
	ctor := daisy.MustBuild[int](counting(&calls))

	onSuccess := func(n int) string { return "ok" }
	onFailure := func(err error) string { return "failed: " + err.Error() }

	assert.Equal(t, "ok", daisy.Finally(ctor.New(1).Call("inc"), onSuccess, onFailure))
	assert.Equal(t, "failed: boom", daisy.Finally(ctor.New(1).Call("boom"), onSuccess, onFailure))

	var seen error
	daisy.Finally(ctor.New(1).Call("nope"), onSuccess, func(err error) string {
		seen = err
		return ""
	})
	assert.True(t, errors.Is(seen, daisy.ErrUnknownMethod))
}

func TestChain_LazyReplayIgnoresArgWrites(t *testing.T) {
	t.Parallel()

	ctor := daisy.MustBuild[int](daisy.Ops{
		"bump": func(n int, args ...any) (int, error) {
			k, err := daisy.Arg[int](args, 0)
			if err != nil {
				return 0, err
			}
			args[0] = k + 1
			return n + k, nil
		},
	}, daisy.WithMode(daisy.Lazy))

	c := ctor.New(0).Call("bump", 1)
	assert.Equal(t, 1, c.MustValue())
	assert.Equal(t, 1, c.MustValue())
	assert.Equal(t, 1, c.Steps()[0].Args[0])
}
