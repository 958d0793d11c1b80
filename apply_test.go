// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/ops"
)

var add = ops.Pure2[*env](func(a, b float64) float64 { return a + b })

func TestApplyAddConstants(t *testing.T) {
	sum := ops.Apply2(add, ops.Const[*env](2.0), ops.Const[*env](3.0))
	assert.Equal(t, ops.Pure, sum.Caps())

	v, err := ops.RunSync(sum, newEnv())
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = ops.Run(sum.Perform(newEnv()))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestApplyCapsMeet(t *testing.T) {
	head := newProbe("head", ops.Pure, 0)
	a := newProbe("a", ops.Deterministic|ops.Sync, 1)
	b := newProbe("b", ops.SideEffectFree|ops.Sync, 2)
	assert.Equal(t, ops.Sync, ops.Apply2[*env, int, int, int](head, a, b).Caps())
	assert.Equal(t, ops.Deterministic|ops.SideEffectFree, ops.Apply1(ops.Pure1[*env](func(x int) int { return x }), pause("p", 1)).Caps())
}

func TestApplyEvaluatesLeftToRight(t *testing.T) {
	join := ops.Pure3[*env](func(a, b, d string) string { return a + b + d })
	bound := ops.Apply3[*env, string, string, string, string](join,
		newProbe("a", ops.Pure, "1"),
		newProbe("b", ops.Pure, "2"),
		newProbe("c", ops.Pure, "3"),
	)

	c := newEnv()
	v, err := ops.RunSync(bound, c)
	require.NoError(t, err)
	assert.Equal(t, "123", v)
	assert.Equal(t, []string{"a", "b", "c"}, c.trace)

	c = newEnv()
	v, err = ops.Run(bound.Perform(c))
	require.NoError(t, err)
	assert.Equal(t, "123", v)
	assert.Equal(t, []string{"a", "b", "c"}, c.trace)
}

func TestApplyAsyncWaitsForEachArgument(t *testing.T) {
	tree := ops.Apply2(ops.Pure2[*env](func(a, b int) int { return a - b }), pause("a", 10), pause("b", 3))
	c := newEnv()

	_, susp, err := ops.Step(tree.Perform(c))
	require.NoError(t, err)
	require.Equal(t, "a", susp.Op().(ask).name)
	assert.Equal(t, []string{"a"}, c.trace, "second argument started before the first completed")

	_, susp, err = susp.Resume(10)
	require.NoError(t, err)
	require.Equal(t, "b", susp.Op().(ask).name)

	v, susp, err := susp.Resume(3)
	require.NoError(t, err)
	require.Nil(t, susp)
	assert.Equal(t, 7, v)
}

func TestApplyFailureAbortsLaterArguments(t *testing.T) {
	head := newProbe("head", ops.Pure, 0)
	bound := ops.Apply[*env, int](head,
		ops.Erase[*env, int](newProbe("a", ops.Pure, 1)),
		ops.Erase[*env, int](failing[int]("b", errBoom)),
		ops.Erase[*env, int](newProbe("c", ops.Pure, 3)),
	)

	c := newEnv()
	_, err := ops.RunSync(bound, c)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"a", "b"}, c.trace)

	c = newEnv()
	_, err = ops.Run(bound.Perform(c))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"a", "b"}, c.trace)
}

func TestApplyAppendsInvocationArguments(t *testing.T) {
	sub := ops.Pure2[*env](func(a, b int) int { return a - b })
	bound := ops.Apply1(sub, ops.Const[*env](10))

	v, err := ops.RunSync(bound, newEnv(), 4)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	_, err = ops.RunSync(bound, newEnv())
	require.ErrorIs(t, err, ops.ErrArity)
}

func TestApplyWithoutArgumentsIsHead(t *testing.T) {
	head := newProbe("head", ops.Pure, 1)
	assert.Same(t, head, ops.Apply[*env, int](head).(*probe[int]))
}

func TestApplyRejectsSyncWhenArgumentIsAsync(t *testing.T) {
	bound := ops.Apply1(ops.Pure1[*env](func(x int) int { return x }), pause("p", 1))
	c := newEnv()
	_, err := ops.RunSync(bound, c)
	require.ErrorIs(t, err, ops.ErrNotSync)
	assert.Empty(t, c.trace)
}

func TestApplySetHead(t *testing.T) {
	rec := ops.Record{}
	set := ops.Apply1(ops.Set[*env](rec, fieldX), ops.Apply2(
		ops.Pure2[*env](func(a, b int) int { return a * b }),
		ops.Const[*env](6),
		ops.Const[*env](7),
	))
	v, err := ops.RunSync(set, newEnv())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, rec["x"])
}

func TestApplyNilPanics(t *testing.T) {
	assert.Panics(t, func() { ops.Apply[*env, int](nil) })
	assert.Panics(t, func() { ops.Apply[*env, int](ops.Const[*env](1), nil) })
}

func TestApplyLongArgumentListKeepsStackBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("long argument list")
	}
	const n = 2_000_000
	count := ops.PureV[*env](func(xs ...int) int {
		s := 0
		for _, x := range xs {
			s += x
		}
		return s
	})
	args := slices.Repeat([]ops.Op[*env, ops.Erased]{ops.Erase(ops.Const[*env](1))}, n)

	v, err := ops.Run(ops.Apply(count, args...).Perform(newEnv()))
	require.NoError(t, err)
	assert.Equal(t, n, v)
}
