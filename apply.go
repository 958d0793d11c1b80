// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "slices"

// applyOp binds a head op to argument producers.
type applyOp[C, R any] struct {
	head Op[C, R]
	args []Op[C, Erased]
	caps Caps
}

// Apply binds head to an ordered list of argument producers. Each producer
// is invoked with no arguments against the same context; its value becomes
// the positional argument at the same index. Arguments passed when invoking
// the bound op are appended after the bound ones.
//
// Producers are evaluated strictly left to right in both modes, each
// completing (suspensions included) before the next starts. The first
// failure aborts the bind: later producers and the head never run.
//
// The tags are the meet of head and every producer.
func Apply[C, R any](head Op[C, R], args ...Op[C, Erased]) Op[C, R] {
	if head == nil {
		panic("ops: Apply with nil head")
	}
	if slices.Contains(args, nil) {
		panic("ops: Apply with nil argument")
	}
	if len(args) == 0 {
		return head
	}
	return &applyOp[C, R]{
		head: head,
		args: slices.Clone(args),
		caps: meetOps(head.Caps(), args),
	}
}

// Apply1 binds a one-argument head.
func Apply1[C, A, R any](head Op[C, R], a Op[C, A]) Op[C, R] {
	return Apply(head, Erase(a))
}

// Apply2 binds a two-argument head.
//
//	sum := ops.Apply2(add, ops.Const[*Ctx](2.0), ops.Const[*Ctx](3.0))
func Apply2[C, A, B, R any](head Op[C, R], a Op[C, A], b Op[C, B]) Op[C, R] {
	return Apply(head, Erase(a), Erase(b))
}

// Apply3 binds a three-argument head.
func Apply3[C, A, B, D, R any](head Op[C, R], a Op[C, A], b Op[C, B], d Op[C, D]) Op[C, R] {
	return Apply(head, Erase(a), Erase(b), Erase(d))
}

func (o *applyOp[C, R]) Caps() Caps { return o.caps }

func (o *applyOp[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return func(k func(R, error) Resumed) Resumed {
		vals := make([]Erased, 0, len(o.args)+len(args))
		return o.gather(c, 0, vals, args)(k)
	}
}

// gather evaluates producer i, then the rest, then the head.
func (o *applyOp[C, R]) gather(c C, i int, vals, extra []Erased) Eff[R] {
	if i == len(o.args) {
		return o.head.Perform(c, append(vals, extra...)...)
	}
	return Bind(o.args[i].Perform(c), func(v Erased) Eff[R] {
		next := o.gather(c, i+1, append(vals, v), extra)
		if (i+1)%bounceEvery == 0 {
			return unwind(next)
		}
		return next
	})
}

func (o *applyOp[C, R]) PerformSync(c C, args ...Erased) (R, error) {
	if !o.caps.IsSync() {
		return notSync[R](o)
	}
	vals := make([]Erased, 0, len(o.args)+len(args))
	for _, a := range o.args {
		v, err := RunSync(a, c)
		if err != nil {
			var zero R
			return zero, err
		}
		vals = append(vals, v)
	}
	return RunSync(o.head, c, append(vals, args...)...)
}
