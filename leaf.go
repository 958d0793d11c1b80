// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// Unit is the result of ops run only for their effects.
type Unit = struct{}

// constOp yields one fixed value regardless of context and arguments.
type constOp[C, R any] struct {
	v R
}

// Const returns an op that always yields v. It is [Pure].
//
//	five := ops.Const[*Ctx](5)
func Const[C, R any](v R) Op[C, R] {
	return constOp[C, R]{v: v}
}

// Nop returns an op that yields the zero value of R. It is [Pure].
// Nop is the default else branch of [When] and the final op of [Seq].
func Nop[C, R any]() Op[C, R] {
	return constOp[C, R]{}
}

func (o constOp[C, R]) Caps() Caps { return Pure }

func (o constOp[C, R]) Perform(C, ...Erased) Eff[R] { return Return(o.v) }

func (o constOp[C, R]) PerformSync(C, ...Erased) (R, error) { return o.v, nil }

// leafOp is a synchronous leaf with host-declared tags.
type leafOp[C, R any] struct {
	caps Caps
	f    func(c C, args []Erased) (R, error)
}

// Leaf wraps a synchronous function with the given tags. [Sync] is always
// added: f must complete within the caller's frame. The other tags are the
// caller's promise and are not verified.
func Leaf[C, R any](caps Caps, f func(c C, args []Erased) (R, error)) Op[C, R] {
	return &leafOp[C, R]{caps: (caps | Sync) & Pure, f: f}
}

func (o *leafOp[C, R]) Caps() Caps { return o.caps }

func (o *leafOp[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return func(k func(R, error) Resumed) Resumed {
		return k(o.f(c, args))
	}
}

func (o *leafOp[C, R]) PerformSync(c C, args ...Erased) (R, error) {
	return o.f(c, args)
}

// asyncLeaf is a leaf that may suspend.
type asyncLeaf[C, R any] struct {
	caps Caps
	f    func(c C, args []Erased) Eff[R]
}

// AsyncLeaf wraps a function returning a suspendable computation, typically
// one that [Await]s a host operation. [Sync] is always removed.
func AsyncLeaf[C, R any](caps Caps, f func(c C, args []Erased) Eff[R]) Op[C, R] {
	return &asyncLeaf[C, R]{caps: caps.Without(Sync) & Pure, f: f}
}

func (o *asyncLeaf[C, R]) Caps() Caps { return o.caps }

func (o *asyncLeaf[C, R]) Perform(c C, args ...Erased) Eff[R] {
	return func(k func(R, error) Resumed) Resumed {
		return o.f(c, args)(k)
	}
}

// Pure function wrappers. The wrapped functions must be total,
// deterministic, side-effect-free and synchronous; nothing checks this.

// Pure0 wraps a nullary function.
func Pure0[C, R any](f func() R) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		if err := Arity(args, 0); err != nil {
			var zero R
			return zero, err
		}
		return f(), nil
	})
}

// Pure1 wraps a unary function.
//
//	sqrt := ops.Pure1[*Ctx](math.Sqrt)
func Pure1[C, A, R any](f func(A) R) Op[C, R] {
	return Partial1[C](func(a A) (R, error) { return f(a), nil })
}

// Pure2 wraps a binary function.
func Pure2[C, A, B, R any](f func(A, B) R) Op[C, R] {
	return Partial2[C](func(a A, b B) (R, error) { return f(a, b), nil })
}

// Pure3 wraps a ternary function.
func Pure3[C, A, B, D, R any](f func(A, B, D) R) Op[C, R] {
	return Partial3[C](func(a A, b B, d D) (R, error) { return f(a, b, d), nil })
}

// PureV wraps a variadic function; every argument must be an A.
func PureV[C, A, R any](f func(...A) R) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		as, err := Args[A](args)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(as...), nil
	})
}

// Partial1 wraps a deterministic unary function that may fail.
// The tags are [Pure]: failing on the same input every time is still
// deterministic.
func Partial1[C, A, R any](f func(A) (R, error)) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		var zero R
		if err := Arity(args, 1); err != nil {
			return zero, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		return f(a)
	})
}

// Partial2 wraps a deterministic binary function that may fail.
func Partial2[C, A, B, R any](f func(A, B) (R, error)) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		var zero R
		if err := Arity(args, 2); err != nil {
			return zero, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return zero, err
		}
		return f(a, b)
	})
}

// Partial3 wraps a deterministic ternary function that may fail.
func Partial3[C, A, B, D, R any](f func(A, B, D) (R, error)) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		var zero R
		if err := Arity(args, 3); err != nil {
			return zero, err
		}
		a, err := Arg[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := Arg[B](args, 1)
		if err != nil {
			return zero, err
		}
		d, err := Arg[D](args, 2)
		if err != nil {
			return zero, err
		}
		return f(a, b, d)
	})
}

// PartialV wraps a deterministic variadic function that may fail; every
// argument must be an A.
func PartialV[C, A, R any](f func(...A) (R, error)) Op[C, R] {
	return Leaf(Pure, func(_ C, args []Erased) (R, error) {
		as, err := Args[A](args)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(as...)
	})
}
