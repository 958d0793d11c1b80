// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"math"
	"math/big"
	"math/cmplx"
	"reflect"
)

// Truther lets a value decide its own truthiness.
type Truther interface {
	Truth() bool
}

// Truthy reports the generalized truthiness used by [If], [And], [Or] and
// [Not].
//
// Falsy values are: nil, false, zero of any numeric kind (named types
// included), NaN, the empty string, [Unit] and every other struct type
// without fields, a zero *big.Int, *big.Float or *big.Rat, and nil
// pointers, maps, slices, funcs, channels and interfaces. A [Truther]
// decides for itself. Every other value is truthy, including empty non-nil
// slices and maps.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil, Unit:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case *big.Int:
		return x != nil && x.Sign() != 0
	case *big.Float:
		return x != nil && x.Sign() != 0
	case *big.Rat:
		return x != nil && x.Sign() != 0
	}
	rv := reflect.ValueOf(v)
	if t, ok := v.(Truther); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return false
		}
		return t.Truth()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() != 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Complex64, reflect.Complex128:
		z := rv.Complex()
		return z != 0 && !cmplx.IsNaN(z)
	case reflect.Struct:
		return rv.NumField() != 0
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return true
}
