// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// Erased marks type-erased values: positional arguments, statement results,
// and values crossing a suspension boundary. Concrete types are recovered
// via type assertions at op boundaries.
type Erased = any

// Eff is a suspendable computation producing a value of type A or failing
// with an error. It is the asynchronous result of [Op.Perform].
//
// The function receives a continuation k, "the rest of the computation",
// which is applied exactly once with either a value and a nil error or a
// zero value and a non-nil error. A computation that suspends returns a
// suspension marker instead of applying k; drivers ([Handle], [Run], [Step])
// recognise the marker and resume k later. Long chains of statements or
// argument producers also return to the driver periodically to keep the
// stack bounded, so an Eff must be run by a driver, never by applying it to
// a continuation directly.
type Eff[A any] func(k func(A, error) Resumed) Resumed

// Return lifts a value into a computation that completes immediately.
func Return[A any](a A) Eff[A] {
	return func(k func(A, error) Resumed) Resumed {
		return k(a, nil)
	}
}

// Fail creates a computation that fails immediately with err.
func Fail[A any](err error) Eff[A] {
	return func(k func(A, error) Resumed) Resumed {
		var zero A
		return k(zero, err)
	}
}

// Lift converts the result of a synchronous call into a computation.
// Lift(op.PerformSync(c)) completes exactly as the synchronous call did.
func Lift[A any](a A, err error) Eff[A] {
	return func(k func(A, error) Resumed) Resumed {
		if err != nil {
			var zero A
			return k(zero, err)
		}
		return k(a, nil)
	}
}

// Suspend creates a computation from a CPS function.
// This is the primitive constructor for leaves that need direct access
// to the continuation.
func Suspend[A any](f func(k func(A, error) Resumed) Resumed) Eff[A] {
	return Eff[A](f)
}
