// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package num is a catalog of float64 leaf ops: constants, predicates,
// parsing, arithmetic and the elementary functions.
//
// Every constructor is generic over the context type and, except
// [Random], returns a [ops.Pure] op taking its operands as positional
// arguments:
//
//	hyp := ops.Apply2(num.Hypot[*Ctx](), ops.Const[*Ctx](3.0), ops.Const[*Ctx](4.0))
//
// Operands must be float64 unless stated otherwise.
package num

import (
	"errors"
	"math"
	"math/bits"
	"math/rand/v2"
	"strconv"
	"strings"

	"code.hybscloud.com/ops"
)

// ErrSyntax reports a string that does not hold a number.
var ErrSyntax = errors.New("num: invalid syntax")

// Largest magnitude below which every integer is exactly representable.
const maxSafeInteger = 1<<53 - 1

func constant[C any](v float64) ops.Op[C, float64] { return ops.Const[C](v) }

// Constants.

func E[C any]() ops.Op[C, float64]       { return constant[C](math.E) }
func Ln2[C any]() ops.Op[C, float64]     { return constant[C](math.Ln2) }
func Ln10[C any]() ops.Op[C, float64]    { return constant[C](math.Ln10) }
func Log2E[C any]() ops.Op[C, float64]   { return constant[C](math.Log2E) }
func Log10E[C any]() ops.Op[C, float64]  { return constant[C](math.Log10E) }
func Pi[C any]() ops.Op[C, float64]      { return constant[C](math.Pi) }
func Sqrt1_2[C any]() ops.Op[C, float64] { return constant[C](1 / math.Sqrt2) }
func Sqrt2[C any]() ops.Op[C, float64]   { return constant[C](math.Sqrt2) }
func Inf[C any]() ops.Op[C, float64]     { return constant[C](math.Inf(1)) }
func NegInf[C any]() ops.Op[C, float64]  { return constant[C](math.Inf(-1)) }
func NaN[C any]() ops.Op[C, float64]     { return constant[C](math.NaN()) }

// Epsilon is the difference between 1 and the next representable float64.
func Epsilon[C any]() ops.Op[C, float64] { return constant[C](math.Nextafter(1, 2) - 1) }

// MaxSafeInteger is 2^53-1.
func MaxSafeInteger[C any]() ops.Op[C, float64] { return constant[C](maxSafeInteger) }

// MinSafeInteger is -(2^53-1).
func MinSafeInteger[C any]() ops.Op[C, float64] { return constant[C](-maxSafeInteger) }

// MaxValue is the largest finite float64.
func MaxValue[C any]() ops.Op[C, float64] { return constant[C](math.MaxFloat64) }

// MinValue is the smallest positive float64.
func MinValue[C any]() ops.Op[C, float64] { return constant[C](math.SmallestNonzeroFloat64) }

// Predicates.

func IsNaN[C any]() ops.Op[C, bool]         { return ops.Pure1[C](isNaN) }
func IsFinite[C any]() ops.Op[C, bool]      { return ops.Pure1[C](isFinite) }
func IsInteger[C any]() ops.Op[C, bool]     { return ops.Pure1[C](isInteger) }
func IsSafeInteger[C any]() ops.Op[C, bool] { return ops.Pure1[C](isSafeInteger) }

func isNaN(x float64) bool    { return math.IsNaN(x) }
func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func isInteger(x float64) bool { return isFinite(x) && math.Trunc(x) == x }

func isSafeInteger(x float64) bool { return isInteger(x) && math.Abs(x) <= maxSafeInteger }

// ParseFloat parses its string operand, surrounding white space ignored.
// It fails with [ErrSyntax].
func ParseFloat[C any]() ops.Op[C, float64] { return ops.Partial1[C](parseFloat) }

// ParseInt parses its string operand in the base given by the int second
// operand (0 infers it from the prefix). It fails with [ErrSyntax].
func ParseInt[C any]() ops.Op[C, int64] { return ops.Partial2[C](parseInt) }

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, errors.Join(ErrSyntax, err)
	}
	return f, nil
}

func parseInt(s string, base int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), base, 64)
	if err != nil {
		return 0, errors.Join(ErrSyntax, err)
	}
	return n, nil
}

// Arithmetic.

func Add[C any]() ops.Op[C, float64] { return ops.Pure2[C](func(a, b float64) float64 { return a + b }) }
func Sub[C any]() ops.Op[C, float64] { return ops.Pure2[C](func(a, b float64) float64 { return a - b }) }
func Mul[C any]() ops.Op[C, float64] { return ops.Pure2[C](func(a, b float64) float64 { return a * b }) }
func Neg[C any]() ops.Op[C, float64] { return ops.Pure1[C](func(a float64) float64 { return -a }) }

// Div is IEEE 754 division: a nonzero operand over zero is an infinity.
func Div[C any]() ops.Op[C, float64] { return ops.Pure2[C](func(a, b float64) float64 { return a / b }) }

// Elementary functions.

func Abs[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Abs) }
func Acos[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Acos) }
func Acosh[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Acosh) }
func Asin[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Asin) }
func Asinh[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Asinh) }
func Atan[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Atan) }
func Atan2[C any]() ops.Op[C, float64] { return ops.Pure2[C](math.Atan2) }
func Atanh[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Atanh) }
func Cbrt[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Cbrt) }
func Ceil[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Ceil) }
func Cos[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Cos) }
func Cosh[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Cosh) }
func Exp[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Exp) }
func Expm1[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Expm1) }
func Floor[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Floor) }
func Log[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Log) }
func Log10[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Log10) }
func Log1p[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Log1p) }
func Log2[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Log2) }
func Pow[C any]() ops.Op[C, float64]   { return ops.Pure2[C](math.Pow) }
func Sin[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Sin) }
func Sinh[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Sinh) }
func Sqrt[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Sqrt) }
func Tan[C any]() ops.Op[C, float64]   { return ops.Pure1[C](math.Tan) }
func Tanh[C any]() ops.Op[C, float64]  { return ops.Pure1[C](math.Tanh) }
func Trunc[C any]() ops.Op[C, float64] { return ops.Pure1[C](math.Trunc) }

// Fround rounds to the nearest float32.
func Fround[C any]() ops.Op[C, float64] {
	return ops.Pure1[C](func(x float64) float64 { return float64(float32(x)) })
}

// Round rounds to the nearest integer, halves toward positive infinity.
func Round[C any]() ops.Op[C, float64] { return ops.Pure1[C](round) }

func round(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// Sign yields -1, 1, or its operand when that is a zero or NaN.
func Sign[C any]() ops.Op[C, float64] { return ops.Pure1[C](sign) }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

// Hypot is the square root of the sum of squares of any number of operands.
func Hypot[C any]() ops.Op[C, float64] { return ops.PureV[C](hypot) }

func hypot(xs ...float64) float64 {
	h := 0.0
	for _, x := range xs {
		h = math.Hypot(h, x)
	}
	return h
}

// Max yields the largest operand, -Inf for none and NaN if any is NaN.
func Max[C any]() ops.Op[C, float64] { return ops.PureV[C](fold(math.Inf(-1), math.Max)) }

// Min yields the smallest operand, +Inf for none and NaN if any is NaN.
func Min[C any]() ops.Op[C, float64] { return ops.PureV[C](fold(math.Inf(1), math.Min)) }

func fold(init float64, f func(a, b float64) float64) func(...float64) float64 {
	return func(xs ...float64) float64 {
		acc := init
		for _, x := range xs {
			acc = f(acc, x)
		}
		return acc
	}
}

// Clz32 counts the leading zero bits of its operand converted to uint32.
func Clz32[C any]() ops.Op[C, float64] {
	return ops.Pure1[C](func(x float64) float64 { return float64(bits.LeadingZeros32(toUint32(x))) })
}

// Imul is 32-bit integer multiplication of its operands converted to int32.
func Imul[C any]() ops.Op[C, float64] {
	return ops.Pure2[C](func(a, b float64) float64 {
		return float64(int32(toUint32(a) * toUint32(b)))
	})
}

// toUint32 truncates x and wraps it modulo 2^32; NaN and infinities are 0.
func toUint32(x float64) uint32 {
	if !isFinite(x) {
		return 0
	}
	m := math.Mod(math.Trunc(x), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}

// Random yields a pseudo-random number in [0, 1). It is tagged [ops.Sync]
// only: each run yields a new value and advances the generator.
func Random[C any]() ops.Op[C, float64] {
	return ops.Leaf(ops.Opaque, func(_ C, args []ops.Erased) (float64, error) {
		if err := ops.Arity(args, 0); err != nil {
			return 0, err
		}
		return rand.Float64(), nil
	})
}
