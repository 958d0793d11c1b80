// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// done is the final value of a computation that ran to completion.
type done[A any] struct {
	v   A
	err error
}

// complete is the final continuation of every driver.
func complete[A any](a A, err error) Resumed { return done[A]{v: a, err: err} }

// finished unpacks the final value of a driven computation.
//
//go:noinline
func finished[A any](r Resumed) done[A] {
	d, ok := r.(done[A])
	if !ok {
		panic("ops: computation returned without completing its continuation")
	}
	return d
}

// Run drives a computation that is not expected to suspend.
// A suspension fails the run with [ErrUnhandled].
func Run[A any](m Eff[A]) (A, error) {
	return Handle(m, nil)
}
