// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"code.hybscloud.com/ops"
)

func TestCapsPredicates(t *testing.T) {
	c := ops.Deterministic | ops.Sync
	assert.True(t, c.IsDeterministic())
	assert.False(t, c.IsSideEffectFree())
	assert.True(t, c.IsSync())
	assert.True(t, c.Has(ops.Sync))
	assert.False(t, c.Has(ops.Pure))
	assert.Equal(t, ops.Deterministic, c.Without(ops.Sync))
}

func TestCapsString(t *testing.T) {
	cases := []struct {
		caps ops.Caps
		want string
	}{
		{ops.Opaque, "opaque"},
		{ops.Pure, "deterministic|side-effect-free|sync"},
		{ops.Sync, "sync"},
		{ops.SideEffectFree | ops.Sync, "side-effect-free|sync"},
		{ops.Deterministic, "deterministic"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.caps.String())
	}
}

func TestMeet(t *testing.T) {
	assert.Equal(t, ops.Pure, ops.Meet(), "empty meet is the identity")
	assert.Equal(t, ops.Sync, ops.Meet(ops.Pure, ops.Sync))
	assert.Equal(t, ops.Opaque, ops.Meet(ops.Deterministic, ops.SideEffectFree))
	assert.Equal(t, ops.Deterministic|ops.Sync, ops.Meet(ops.Pure, ops.Deterministic|ops.Sync))
}

func TestCapsOf(t *testing.T) {
	a := newProbe("a", ops.Pure, 1)
	b := newProbe("b", ops.Deterministic|ops.Sync, "x")
	assert.Equal(t, ops.Deterministic|ops.Sync, ops.CapsOf(a, b))
	assert.Equal(t, ops.Pure, ops.CapsOf())
}
