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

type stmts = []ops.Op[*env, ops.Erased]

func TestBlockLastWriteWins(t *testing.T) {
	rec := ops.Record{}
	tree := ops.Block(stmts{
		ops.Erase(ops.SetValue[*env](rec, fieldX, 1)),
		ops.Erase(ops.SetValue[*env](rec, fieldX, 2)),
	}, ops.Get[*env](rec, fieldX))

	v, err := ops.RunSync(tree, newEnv())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, rec["x"])

	rec["x"] = 0
	v, err = ops.Run(tree.Perform(newEnv()))
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, rec["x"])
}

func TestBlockCapsMeet(t *testing.T) {
	tree := ops.Block(stmts{
		ops.Erase[*env, int](newProbe("a", ops.Pure, 1)),
		ops.Erase[*env, int](newProbe("b", ops.Deterministic|ops.Sync, 1)),
	}, ops.Const[*env]("v"))
	assert.Equal(t, ops.Deterministic|ops.Sync, tree.Caps())
}

func TestBlockWithoutStatementsIsFinal(t *testing.T) {
	final := newProbe("final", ops.Deterministic|ops.Sync, 7)
	got := ops.Block[*env, int](nil, final)
	assert.Same(t, final, got.(*probe[int]))
	assert.Equal(t, final.Caps(), got.Caps())
}

func TestBlockRunsInOrder(t *testing.T) {
	tree := ops.Block(stmts{
		ops.Erase[*env, int](newProbe("s1", ops.Pure, 0)),
		ops.Erase[*env, int](newProbe("s2", ops.Pure, 0)),
		ops.Erase[*env, int](newProbe("s3", ops.Pure, 0)),
	}, ops.Erase[*env, int](newProbe("final", ops.Pure, 9)))

	c := newEnv()
	v, err := ops.RunSync(tree, c)
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, []string{"s1", "s2", "s3", "final"}, c.trace)

	c = newEnv()
	v, err = ops.Run(tree.Perform(c))
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, []string{"s1", "s2", "s3", "final"}, c.trace)
}

func TestBlockFailureAbortsRest(t *testing.T) {
	tree := ops.Block(stmts{
		ops.Erase[*env, int](newProbe("s1", ops.Pure, 0)),
		ops.Erase[*env, int](failing[int]("s2", errBoom)),
		ops.Erase[*env, int](newProbe("s3", ops.Pure, 0)),
	}, ops.Erase[*env, int](newProbe("final", ops.Pure, 9)))

	c := newEnv()
	_, err := ops.RunSync(tree, c)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"s1", "s2"}, c.trace)

	c = newEnv()
	_, err = ops.Run(tree.Perform(c))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"s1", "s2"}, c.trace)
}

func TestBlockAwaitsSuspendedStatement(t *testing.T) {
	tree := ops.Block(stmts{
		ops.Erase(pause("s1", 0)),
		ops.Erase[*env, int](newProbe("s2", ops.Pure, 0)),
	}, pause("final", 5))
	assert.False(t, tree.Caps().IsSync())

	c := newEnv()
	_, susp, err := ops.Step(tree.Perform(c))
	require.NoError(t, err)
	require.Equal(t, "s1", susp.Op().(ask).name)
	assert.Equal(t, []string{"s1"}, c.trace, "next statement started before the suspended one completed")

	_, susp, err = susp.Resume(0)
	require.NoError(t, err)
	require.Equal(t, "final", susp.Op().(ask).name)
	assert.Equal(t, []string{"s1", "s2", "final"}, c.trace)

	v, susp, err := susp.Resume(5)
	require.NoError(t, err)
	require.Nil(t, susp)
	assert.Equal(t, 5, v)

	_, err = ops.RunSync(tree, newEnv())
	require.ErrorIs(t, err, ops.ErrNotSync)
}

func TestBlockPassesArgumentsToFinal(t *testing.T) {
	rec := ops.Record{}
	tree := ops.Block(stmts{ops.Erase(ops.SetValue[*env](rec, fieldX, 1))}, ops.Pure1[*env](func(s string) string { return s + "!" }))
	v, err := ops.RunSync(tree, newEnv(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi!", v)
}

func TestSeq(t *testing.T) {
	rec := ops.Record{}
	seq := ops.Seq(
		ops.Erase(ops.SetValue[*env](rec, fieldX, 1)),
		ops.Erase(ops.Mutate[*env](rec, fieldX, func(x int) int { return x + 10 })),
	)
	assert.Equal(t, ops.Sync, seq.Caps())
	v, err := ops.RunSync(seq, newEnv())
	require.NoError(t, err)
	assert.Equal(t, ops.Unit{}, v)
	assert.Equal(t, 11, rec["x"])

	empty := ops.Seq[*env]()
	assert.Equal(t, ops.Pure, empty.Caps())
}

func TestBlockLongChainKeepsStackBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("long chain")
	}
	const n = 3_000_000
	body := slices.Repeat(stmts{ops.Erase(ops.ContextMutate[*env](fieldX, inc))}, n)

	c := newEnv()
	v, err := ops.Run(ops.Block(body, ops.ContextGet[*env](fieldX)).Perform(c))
	require.NoError(t, err)
	assert.Equal(t, n, v)

	c = newEnv()
	_, susp, err := ops.Step(ops.Block(body, pause("end", 7)).Perform(c))
	require.NoError(t, err)
	require.NotNil(t, susp)
	assert.Equal(t, n, c.Record["x"])

	v, susp, err = susp.Resume(7)
	require.NoError(t, err)
	assert.Nil(t, susp)
	assert.Equal(t, 7, v)
}
