// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"fmt"
	"reflect"
)

// Arg returns positional argument i as a T.
// A nil argument is the zero value of T. A missing argument fails with
// [ErrArity], a value of another dynamic type with [ErrArgType].
func Arg[T any](args []Erased, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: missing argument %d of %d", ErrArity, i, len(args))
	}
	v := args[i]
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T, want %s", ErrArgType, i, v, reflect.TypeFor[T]())
	}
	return t, nil
}

// Arity fails with [ErrArity] unless args holds exactly n arguments.
func Arity(args []Erased, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, len(args), n)
	}
	return nil
}

// Args returns every argument as a T, for variadic functions.
func Args[T any](args []Erased) ([]T, error) {
	out := make([]T, len(args))
	for i := range args {
		v, err := Arg[T](args, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
