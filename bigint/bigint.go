// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bigint is a catalog of arbitrary-precision integer leaf ops over
// *big.Int operands.
//
// Every op is [ops.Pure]. Results are fresh values: operands are never
// mutated, so a *big.Int may be shared between arguments and fields.
// A nil operand fails with [ErrNil].
package bigint

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"code.hybscloud.com/ops"
)

var (
	// ErrNil reports a nil *big.Int operand.
	ErrNil = errors.New("bigint: nil operand")
	// ErrSyntax reports a string that does not hold an integer.
	ErrSyntax = errors.New("bigint: invalid syntax")
	// ErrNotInteger reports a conversion from a non-integral number.
	ErrNotInteger = errors.New("bigint: not an integer")
	// ErrDivideByZero reports division or remainder by zero.
	ErrDivideByZero = errors.New("bigint: division by zero")
	// ErrNegativeExponent reports Pow with a negative exponent.
	ErrNegativeExponent = errors.New("bigint: negative exponent")
	// ErrRange reports a bit count or shift outside the supported range.
	ErrRange = errors.New("bigint: out of range")
)

// maxShift bounds shift amounts and bit widths.
const maxShift = 1 << 24

// From converts its operand to a *big.Int. Accepted operands are strings
// (decimal, or 0x, 0o and 0b prefixed, surrounding white space ignored),
// Go integers, integral float64 values and *big.Int (copied).
func From[C any]() ops.Op[C, *big.Int] { return ops.Partial1[C](from) }

func from(v any) (*big.Int, error) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return new(big.Int), nil
		}
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, x)
		}
		return n, nil
	case int:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || math.Trunc(x) != x {
			return nil, fmt.Errorf("%w: %v", ErrNotInteger, x)
		}
		n, _ := big.NewFloat(x).Int(nil)
		return n, nil
	case *big.Int:
		if x == nil {
			return nil, ErrNil
		}
		return new(big.Int).Set(x), nil
	case nil:
		return nil, ErrNil
	}
	return nil, fmt.Errorf("%w: %T", ops.ErrArgType, v)
}

// AsIntN wraps its *big.Int second operand to a signed integer of the
// width given by the int first operand.
func AsIntN[C any]() ops.Op[C, *big.Int] { return ops.Partial2[C](asIntN) }

// AsUintN wraps its *big.Int second operand to an unsigned integer of the
// width given by the int first operand.
func AsUintN[C any]() ops.Op[C, *big.Int] { return ops.Partial2[C](asUintN) }

func asUintN(bits int, x *big.Int) (*big.Int, error) {
	if x == nil {
		return nil, ErrNil
	}
	if bits < 0 || bits > maxShift {
		return nil, fmt.Errorf("%w: %d bits", ErrRange, bits)
	}
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return m.Mod(x, m), nil
}

func asIntN(bits int, x *big.Int) (*big.Int, error) {
	u, err := asUintN(bits, x)
	if err != nil || bits == 0 {
		return u, err
	}
	if u.Bit(bits-1) == 1 {
		u.Sub(u, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	}
	return u, nil
}

// binary lifts a big.Int method of the form z.Op(x, y) to a fresh-result op.
func binary[C any](f func(z, x, y *big.Int) *big.Int) ops.Op[C, *big.Int] {
	return ops.Partial2[C](func(x, y *big.Int) (*big.Int, error) {
		if x == nil || y == nil {
			return nil, ErrNil
		}
		return f(new(big.Int), x, y), nil
	})
}

func unary[C any](f func(z, x *big.Int) *big.Int) ops.Op[C, *big.Int] {
	return ops.Partial1[C](func(x *big.Int) (*big.Int, error) {
		if x == nil {
			return nil, ErrNil
		}
		return f(new(big.Int), x), nil
	})
}

func Add[C any]() ops.Op[C, *big.Int] { return binary[C]((*big.Int).Add) }
func Sub[C any]() ops.Op[C, *big.Int] { return binary[C]((*big.Int).Sub) }
func Mul[C any]() ops.Op[C, *big.Int] { return binary[C]((*big.Int).Mul) }
func Neg[C any]() ops.Op[C, *big.Int] { return unary[C]((*big.Int).Neg) }

// And, Or, Xor and Not operate on the infinite two's complement
// representation.

func And[C any]() ops.Op[C, *big.Int] { return binary[C]((*big.Int).And) }
func Or[C any]() ops.Op[C, *big.Int]  { return binary[C]((*big.Int).Or) }
func Xor[C any]() ops.Op[C, *big.Int] { return binary[C]((*big.Int).Xor) }
func Not[C any]() ops.Op[C, *big.Int] { return unary[C]((*big.Int).Not) }

// Div is truncated division. It fails with [ErrDivideByZero].
func Div[C any]() ops.Op[C, *big.Int] { return ops.Partial2[C](quo) }

// Mod is the remainder of truncated division; it takes the sign of the
// dividend. It fails with [ErrDivideByZero].
func Mod[C any]() ops.Op[C, *big.Int] { return ops.Partial2[C](rem) }

func quo(x, y *big.Int) (*big.Int, error) {
	if err := divisible(x, y); err != nil {
		return nil, err
	}
	return new(big.Int).Quo(x, y), nil
}

func rem(x, y *big.Int) (*big.Int, error) {
	if err := divisible(x, y); err != nil {
		return nil, err
	}
	return new(big.Int).Rem(x, y), nil
}

func divisible(x, y *big.Int) error {
	if x == nil || y == nil {
		return ErrNil
	}
	if y.Sign() == 0 {
		return ErrDivideByZero
	}
	return nil
}

// Pow raises its first operand to the second. It fails with
// [ErrNegativeExponent].
func Pow[C any]() ops.Op[C, *big.Int] {
	return ops.Partial2[C](func(x, y *big.Int) (*big.Int, error) {
		if x == nil || y == nil {
			return nil, ErrNil
		}
		if y.Sign() < 0 {
			return nil, ErrNegativeExponent
		}
		return new(big.Int).Exp(x, y, nil), nil
	})
}

// Lsh shifts its first operand left by the second; a negative amount
// shifts right.
func Lsh[C any]() ops.Op[C, *big.Int] {
	return ops.Partial2[C](func(x, y *big.Int) (*big.Int, error) { return shift(x, y, 1) })
}

// Rsh is the arithmetic right shift; a negative amount shifts left.
func Rsh[C any]() ops.Op[C, *big.Int] {
	return ops.Partial2[C](func(x, y *big.Int) (*big.Int, error) { return shift(x, y, -1) })
}

func shift(x, y *big.Int, dir int64) (*big.Int, error) {
	if x == nil || y == nil {
		return nil, ErrNil
	}
	if !y.IsInt64() || y.Int64() > maxShift || y.Int64() < -maxShift {
		return nil, fmt.Errorf("%w: shift by %v", ErrRange, y)
	}
	n := y.Int64() * dir
	if n >= 0 {
		return new(big.Int).Lsh(x, uint(n)), nil
	}
	return new(big.Int).Rsh(x, uint(-n)), nil
}
