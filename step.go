// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "sync/atomic"

// Stepping boundary for external runtimes.
// Step provides one-suspension-at-a-time evaluation for hosts that resolve
// operations asynchronously (event loops, proactors), unlike Handle, which
// runs a synchronous trampoline to completion.

// Suspension is a computation suspended on a host operation.
// It holds the pending operation and a one-shot resumption handle.
//
// Resume and Fail may be called at most once between them; a second call
// panics. Use Discard to abandon a suspension explicitly.
type Suspension[A any] struct {
	used atomic.Uintptr
	s    suspension
}

// Op returns the operation that caused the suspension.
func (s *Suspension[A]) Op() Operation { return s.s.Op() }

// Resume advances the computation with v.
// Returns the completed value and error with a nil suspension, or the next
// suspension.
func (s *Suspension[A]) Resume(v Resumed) (A, *Suspension[A], error) {
	s.claim()
	return classify[A](s.s.resume(v, nil))
}

// Fail advances the computation by failing the pending operation with err.
func (s *Suspension[A]) Fail(err error) (A, *Suspension[A], error) {
	s.claim()
	return classify[A](s.s.resume(nil, err))
}

// Discard marks the suspension as consumed without resuming it.
func (s *Suspension[A]) Discard() {
	s.used.Store(1)
}

func (s *Suspension[A]) claim() {
	if s.used.Add(1) != 1 {
		panic("ops: suspension resumed twice")
	}
}

// Step drives a computation until it completes or suspends.
// Returns (value, nil, err) on completion, or (zero, suspension, nil) when
// pending.
//
// Example:
//
//	v, susp, err := ops.Step(op.Perform(ctx))
//	for susp != nil {
//		r := <-resolve(susp.Op())
//		v, susp, err = susp.Resume(r)
//	}
func Step[A any](m Eff[A]) (A, *Suspension[A], error) {
	return classify[A](m(complete[A]))
}

func classify[A any](r Resumed) (A, *Suspension[A], error) {
	for {
		b, ok := r.(bounce)
		if !ok {
			break
		}
		r = b()
	}
	if s, ok := r.(suspension); ok {
		var zero A
		return zero, &Suspension[A]{s: s}, nil
	}
	d := finished[A](r)
	return d.v, nil, d.err
}
