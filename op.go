// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "fmt"

// Op is a composable unit of computation producing R against a shared
// execution context C, optionally with positional arguments.
//
// Ops are immutable once constructed. Perform only describes the
// computation; no work happens until the returned [Eff] is driven by
// [Handle], [Run], or [Step].
type Op[C, R any] interface {
	// Perform is the asynchronous entry point. The computation may suspend
	// wherever a leaf awaits a host operation.
	Perform(c C, args ...Erased) Eff[R]
	// Caps reports the capability tags. The value never changes.
	Caps() Caps
}

// SyncOp is an op that can complete within the caller's frame.
// Every op whose [Caps] carry [Sync] implements SyncOp, and PerformSync
// produces the same result and side effects as driving Perform.
type SyncOp[C, R any] interface {
	Op[C, R]
	PerformSync(c C, args ...Erased) (R, error)
}

// RunSync is the checked synchronous entry point.
// It fails with [ErrNotSync] when op does not carry [Sync] or does not
// implement [SyncOp]; it never falls back to the asynchronous path.
func RunSync[C, R any](op Op[C, R], c C, args ...Erased) (R, error) {
	if !op.Caps().IsSync() {
		var zero R
		return zero, fmt.Errorf("%w: %T", ErrNotSync, op)
	}
	s, ok := op.(SyncOp[C, R])
	if !ok {
		var zero R
		return zero, fmt.Errorf("%w: %T claims sync without PerformSync", ErrNotSync, op)
	}
	return s.PerformSync(c, args...)
}

// Invoke performs op asynchronously and drives it to completion with h.
func Invoke[C, R any](op Op[C, R], c C, h Handler, args ...Erased) (R, error) {
	return Handle(op.Perform(c, args...), h)
}

// notSync is the failure of a composite's PerformSync when the composite
// itself does not carry Sync.
func notSync[R any](op any) (R, error) {
	var zero R
	return zero, fmt.Errorf("%w: %T", ErrNotSync, op)
}

// Erase adapts an Op[C, A] to an Op[C, Erased] with the same tags, for use
// as an argument producer or a statement.
func Erase[C, A any](op Op[C, A]) Op[C, Erased] {
	if e, ok := any(op).(Op[C, Erased]); ok {
		return e
	}
	return erased[C, A]{op: op}
}

type erased[C, A any] struct {
	op Op[C, A]
}

func (e erased[C, A]) Caps() Caps { return e.op.Caps() }

func (e erased[C, A]) Perform(c C, args ...Erased) Eff[Erased] {
	return Map(e.op.Perform(c, args...), eraseValue[A])
}

func (e erased[C, A]) PerformSync(c C, args ...Erased) (Erased, error) {
	a, err := RunSync(e.op, c, args...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func eraseValue[A any](a A) Erased { return a }
