// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

// Sequencing for suspendable computations.
// A failure anywhere short-circuits: the rest of the chain never runs and
// the error reaches the final continuation unchanged.

// Bind runs m, then passes its value to f to get the next computation.
func Bind[A, B any](m Eff[A], f func(A) Eff[B]) Eff[B] {
	return func(k func(B, error) Resumed) Resumed {
		return m(func(a A, err error) Resumed {
			if err != nil {
				var zero B
				return k(zero, err)
			}
			return f(a)(k)
		})
	}
}

// Map applies a pure function to the value of m.
func Map[A, B any](m Eff[A], f func(A) B) Eff[B] {
	return func(k func(B, error) Resumed) Resumed {
		return m(func(a A, err error) Resumed {
			if err != nil {
				var zero B
				return k(zero, err)
			}
			return k(f(a), nil)
		})
	}
}

// Then runs m for its effects, discards its value, then runs n.
func Then[A, B any](m Eff[A], n Eff[B]) Eff[B] {
	return func(k func(B, error) Resumed) Resumed {
		return m(func(_ A, err error) Resumed {
			if err != nil {
				var zero B
				return k(zero, err)
			}
			return n(k)
		})
	}
}
