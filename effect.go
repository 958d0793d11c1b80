// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"fmt"
	"reflect"
)

// Operation is a host request carried by a suspended computation.
// Leaves create operations with [Await]; handlers interpret them.
type Operation any

// Resumed is the type of values flowing through suspension and resumption.
// Continuations of [Eff] computations return Resumed.
type Resumed any

// suspension is the marker a suspended computation returns in place of
// applying its continuation. A single interface dispatch covers every
// resume path.
type suspension interface {
	Op() Operation
	resume(v Resumed, err error) Resumed
}

// bounce is the marker a long synchronous chain returns to unwind the
// stack. Drivers call it to continue where the chain left off.
type bounce func() Resumed

// bounceEvery is the number of chained steps a combinator runs on one
// stack before it bounces through the driver.
const bounceEvery = 64

// unwind defers m until the driver re-enters it with an empty stack.
func unwind[A any](m Eff[A]) Eff[A] {
	return func(k func(A, error) Resumed) Resumed {
		return bounce(func() Resumed { return m(k) })
	}
}

// awaitMarker holds the pending operation and the typed continuation.
type awaitMarker[A any] struct {
	op Operation
	k  func(A, error) Resumed
}

func (m *awaitMarker[A]) Op() Operation { return m.op }

func (m *awaitMarker[A]) resume(v Resumed, err error) Resumed {
	var zero A
	if err != nil {
		return m.k(zero, err)
	}
	if v == nil {
		return m.k(zero, nil)
	}
	a, ok := v.(A)
	if !ok {
		return m.k(zero, fmt.Errorf("%w: got %T, want %s", ErrResumeType, v, reflect.TypeFor[A]()))
	}
	return m.k(a, nil)
}

// Await suspends the computation on a host operation.
// The host's handler receives op and resumes the computation with a value of
// type A (nil means the zero value) or an error, which becomes the failure of
// the awaiting op.
//
// Example:
//
//	type Fetch struct{ Key string }
//
//	leaf := ops.AsyncLeaf[*Ctx, string](ops.Opaque,
//		func(c *Ctx, args []ops.Erased) ops.Eff[string] {
//			return ops.Await[string](Fetch{Key: c.Key})
//		})
func Await[A any](op Operation) Eff[A] {
	return func(k func(A, error) Resumed) Resumed {
		return &awaitMarker[A]{op: op, k: k}
	}
}

// Handler interprets the operations of suspended computations.
// Dispatch returns the value to resume with, or an error that fails the
// awaiting op.
type Handler interface {
	Dispatch(op Operation) (Resumed, error)
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(op Operation) (Resumed, error)

// Dispatch calls f(op).
func (f HandlerFunc) Dispatch(op Operation) (Resumed, error) { return f(op) }

// Handle runs a computation to completion, dispatching every suspension to h.
// A nil h fails the computation on its first suspension with [ErrUnhandled].
//
// Example:
//
//	v, err := ops.Handle(op.Perform(ctx), ops.HandlerFunc(func(op ops.Operation) (ops.Resumed, error) {
//		switch o := op.(type) {
//		case Fetch:
//			return store[o.Key], nil
//		default:
//			return nil, fmt.Errorf("unexpected %T", op)
//		}
//	}))
func Handle[A any](m Eff[A], h Handler) (A, error) {
	a, _, err := drive[A](m(complete[A]), h)
	return a, err
}

// drive is the trampoline loop behind Handle. It reports the number of
// suspensions dispatched; bounces are not counted.
func drive[A any](r Resumed, h Handler) (A, int, error) {
	n := 0
	for {
		if b, ok := r.(bounce); ok {
			r = b()
			continue
		}
		s, ok := r.(suspension)
		if !ok {
			d := finished[A](r)
			return d.v, n, d.err
		}
		if h == nil {
			var zero A
			return zero, n, fmt.Errorf("%w: %T", ErrUnhandled, s.Op())
		}
		n++
		v, err := h.Dispatch(s.Op())
		r = s.resume(v, err)
	}
}
