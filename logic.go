// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// Short-circuit boolean combinators over generalized truthiness.
// Both yield an operand's own value, not a bool.

type andOp[C, R any] struct {
	op1, op2 Op[C, R]
	caps     Caps
}

// And evaluates op1; when its value is not [Truthy] that value is the
// result and op2 never runs. Otherwise the result is op2's value.
// Arguments passed when invoking the op go to both operands.
func And[C, R any](op1, op2 Op[C, R]) Op[C, R] {
	if op1 == nil || op2 == nil {
		panic("ops: And with nil operand")
	}
	return &andOp[C, R]{op1: op1, op2: op2, caps: op1.Caps() & op2.Caps()}
}

func (o *andOp[C, R]) Caps() Caps { return o.caps }

func (o *andOp[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return Bind(o.op1.Perform(c, args...), func(a R) Eff[R] {
		if !Truthy(a) {
			return Return(a)
		}
		return o.op2.Perform(c, args...)
	})
}

func (o *andOp[C, R]) PerformSync(c C, args ...Erased) (R, error) {
	if !o.caps.IsSync() {
		return notSync[R](o)
	}
	a, err := RunSync(o.op1, c, args...)
	if err != nil || !Truthy(a) {
		return a, err
	}
	return RunSync(o.op2, c, args...)
}

type orOp[C, R any] struct {
	op1, op2 Op[C, R]
	caps     Caps
}

// Or evaluates op1; when its value is [Truthy] that value is the result and
// op2 never runs. Otherwise the result is op2's value.
// Arguments passed when invoking the op go to both operands.
func Or[C, R any](op1, op2 Op[C, R]) Op[C, R] {
	if op1 == nil || op2 == nil {
		panic("ops: Or with nil operand")
	}
	return &orOp[C, R]{op1: op1, op2: op2, caps: op1.Caps() & op2.Caps()}
}

func (o *orOp[C, R]) Caps() Caps { return o.caps }

func (o *orOp[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return Bind(o.op1.Perform(c, args...), func(a R) Eff[R] {
		if Truthy(a) {
			return Return(a)
		}
		return o.op2.Perform(c, args...)
	})
}

func (o *orOp[C, R]) PerformSync(c C, args ...Erased) (R, error) {
	if !o.caps.IsSync() {
		return notSync[R](o)
	}
	a, err := RunSync(o.op1, c, args...)
	if err != nil || Truthy(a) {
		return a, err
	}
	return RunSync(o.op2, c, args...)
}

type notOp[C, A any] struct {
	op Op[C, A]
}

// Not yields whether the value of op is not [Truthy]. Its tags are op's.
func Not[C, A any](op Op[C, A]) Op[C, bool] {
	if op == nil {
		panic("ops: Not with nil operand")
	}
	return notOp[C, A]{op: op}
}

func (o notOp[C, A]) Caps() Caps { return o.op.Caps() }

func (o notOp[C, A]) Perform(c C, args ...Erased) Eff[bool] {
	return Map(o.op.Perform(c, args...), falsy[A])
}

func (o notOp[C, A]) PerformSync(c C, args ...Erased) (bool, error) {
	a, err := RunSync(o.op, c, args...)
	if err != nil {
		return false, err
	}
	return falsy(a), nil
}

func falsy[A any](a A) bool { return !Truthy(a) }
