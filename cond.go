// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// branchOp selects one of two ops on the truthiness of a condition.
type branchOp[C, B, R any] struct {
	cond Op[C, B]
	then Op[C, R]
	els  Op[C, R]
	caps Caps
}

// If returns an op that evaluates cond and then exactly one branch: then
// when the condition is [Truthy], els otherwise. The branch not taken never
// runs. Arguments passed when invoking the op go to the selected branch.
//
// The tags are the meet of all three constituents, since different
// invocations may take different branches.
func If[C, B, R any](cond Op[C, B], then, els Op[C, R]) Op[C, R] {
	if cond == nil || then == nil || els == nil {
		panic("ops: If with nil operand")
	}
	return &branchOp[C, B, R]{
		cond: cond,
		then: then,
		els:  els,
		caps: cond.Caps() & then.Caps() & els.Caps(),
	}
}

// When is If with a [Nop] else branch.
func When[C, B, R any](cond Op[C, B], then Op[C, R]) Op[C, R] {
	return If(cond, then, Nop[C, R]())
}

func (o *branchOp[C, B, R]) Caps() Caps { return o.caps }

func (o *branchOp[C, B, R]) Perform(c C, args ...Erased) Eff[R] {
	return Bind(o.cond.Perform(c), func(b B) Eff[R] {
		return o.pick(b).Perform(c, args...)
	})
}

func (o *branchOp[C, B, R]) PerformSync(c C, args ...Erased) (R, error) {
	if !o.caps.IsSync() {
		return notSync[R](o)
	}
	b, err := RunSync(o.cond, c)
	if err != nil {
		var zero R
		return zero, err
	}
	return RunSync(o.pick(b), c, args...)
}

func (o *branchOp[C, B, R]) pick(b B) Op[C, R] {
	if Truthy(b) {
		return o.then
	}
	return o.els
}
