// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/ops"
)

func TestIfTrueNeverRunsElse(t *testing.T) {
	rec := ops.Record{}
	tree := ops.If(ops.Const[*env](true),
		ops.SetValue[*env](rec, fieldX, 1),
		ops.SetValue[*env](rec, ops.NewField[int]("y"), 2),
	)
	for range 3 {
		v, err := ops.RunSync(tree, newEnv())
		require.NoError(t, err)
		assert.Equal(t, 1, v)
		v, err = ops.Run(tree.Perform(newEnv()))
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, ops.Record{"x": 1}, rec)
}

func TestIfFalseNeverRunsThen(t *testing.T) {
	rec := ops.Record{}
	tree := ops.If(ops.Const[*env](false),
		ops.SetValue[*env](rec, fieldX, 1),
		ops.SetValue[*env](rec, ops.NewField[int]("y"), 2),
	)
	for range 3 {
		v, err := ops.RunSync(tree, newEnv())
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	}
	assert.Equal(t, ops.Record{"y": 2}, rec)
}

func TestIfCapsIncludeUntakenBranch(t *testing.T) {
	tree := ops.If(ops.Const[*env](true), ops.Const[*env](1), pause("else", 2))
	assert.False(t, tree.Caps().IsSync(), "a non-sync else branch must make the conditional non-sync")
	assert.Equal(t, ops.Deterministic|ops.SideEffectFree, tree.Caps())

	c := newEnv()
	_, err := ops.RunSync(tree, c)
	require.ErrorIs(t, err, ops.ErrNotSync)

	v, err := ops.Run(tree.Perform(c))
	require.NoError(t, err, "the suspending branch is not taken")
	assert.Equal(t, 1, v)
}

func TestIfGeneralizedCondition(t *testing.T) {
	pick := func(cond ops.Op[*env, ops.Erased]) string {
		v, err := ops.RunSync(ops.If(cond, ops.Const[*env]("then"), ops.Const[*env]("else")), newEnv())
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "then", pick(ops.Erase(ops.Const[*env](5))))
	assert.Equal(t, "else", pick(ops.Erase(ops.Const[*env](0))))
	assert.Equal(t, "then", pick(ops.Erase(ops.Const[*env]("x"))))
	assert.Equal(t, "else", pick(ops.Erase(ops.Const[*env](""))))
	assert.Equal(t, "else", pick(ops.Nop[*env, ops.Erased]()))
}

func TestIfConditionFailure(t *testing.T) {
	c := newEnv()
	tree := ops.If[*env, bool, int](failing[bool]("cond", errBoom), newProbe("then", ops.Pure, 1), newProbe("else", ops.Pure, 2))
	_, err := ops.RunSync(tree, c)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"cond"}, c.trace)
}

func TestIfAsyncCondition(t *testing.T) {
	tree := ops.If(pause("cond", 0), ops.Const[*env]("then"), ops.Const[*env]("else"))
	v, err := ops.Invoke(tree, newEnv(), answer)
	require.NoError(t, err)
	assert.Equal(t, "else", v)
}

func TestWhenDefaultsToNop(t *testing.T) {
	tree := ops.When(ops.Const[*env](false), ops.Const[*env](9))
	assert.Equal(t, ops.Pure, tree.Caps())
	v, err := ops.RunSync(tree, newEnv())
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestIfPassesArgumentsToBranch(t *testing.T) {
	double := ops.Pure1[*env](func(x int) int { return 2 * x })
	neg := ops.Pure1[*env](func(x int) int { return -x })
	v, err := ops.RunSync(ops.If(ops.Const[*env](1), double, neg), newEnv(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
