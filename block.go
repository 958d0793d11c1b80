// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "slices"

// blockOp runs statements for effect, then a final op for the value.
type blockOp[C, R any] struct {
	stmts []Op[C, Erased]
	final Op[C, R]
	caps  Caps
}

// Block returns an op that runs stmts strictly in order, discarding their
// values, then runs final and yields its value. Each statement completes,
// suspensions included, before the next starts; a failing statement aborts
// the rest. Arguments passed when invoking the block go to final.
//
// With no statements Block returns final itself.
func Block[C, R any](stmts []Op[C, Erased], final Op[C, R]) Op[C, R] {
	if final == nil {
		panic("ops: Block with nil final op")
	}
	if slices.Contains(stmts, nil) {
		panic("ops: Block with nil statement")
	}
	if len(stmts) == 0 {
		return final
	}
	return &blockOp[C, R]{
		stmts: slices.Clone(stmts),
		final: final,
		caps:  meetOps(final.Caps(), stmts),
	}
}

// Seq runs stmts in order and yields [Unit].
func Seq[C any](stmts ...Op[C, Erased]) Op[C, Unit] {
	return Block(stmts, Nop[C, Unit]())
}

func (o *blockOp[C, R]) Caps() Caps { return o.caps }

func (o *blockOp[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return o.from(c, 0, args)
}

// from runs statement i, then the rest of the block.
func (o *blockOp[C, R]) from(c C, i int, args []Erased) Eff[R] {
	if i == len(o.stmts) {
		return o.final.Perform(c, args...)
	}
	return func(k func(R, error) Resumed) Resumed {
		return o.stmts[i].Perform(c)(func(_ Erased, err error) Resumed {
			if err != nil {
				var zero R
				return k(zero, err)
			}
			next := o.from(c, i+1, args)
			if (i+1)%bounceEvery == 0 {
				next = unwind(next)
			}
			return next(k)
		})
	}
}

func (o *blockOp[C, R]) PerformSync(c C, args ...Erased) (R, error) {
	if !o.caps.IsSync() {
		return notSync[R](o)
	}
	for _, s := range o.stmts {
		if _, err := RunSync(s, c); err != nil {
			var zero R
			return zero, err
		}
	}
	return RunSync(o.final, c, args...)
}
