// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"fmt"
	"reflect"
)

// Accessor ops read and write keyed fields of a holder or of the context.
//
// All accessors carry [Sync] only. A field read is not treated as
// deterministic or side-effect-free: the holder may compute fields with
// arbitrary effects. ContextSelf alone adds [SideEffectFree].

// Holder is a keyed mutable record targeted by accessor ops.
// Implementations may compute fields; Load reports false for a field that
// does not exist.
type Holder interface {
	Load(name string) (any, bool)
	Store(name string, v any)
}

// Record is a map-backed [Holder]. The zero Record is read-only; create one
// with make or a composite literal before storing.
type Record map[string]any

// Load returns the field stored under name.
func (r Record) Load(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Store sets the field name to v.
func (r Record) Store(name string, v any) {
	r[name] = v
}

// Field is a typed key: the schema of one holder field, declared at the
// call site.
type Field[T any] struct {
	name string
}

// NewField declares a field of type T named name.
func NewField[T any](name string) Field[T] {
	return Field[T]{name: name}
}

// Name returns the key.
func (f Field[T]) Name() string { return f.name }

// Load reads the field from h. A missing field is the zero value of T;
// a stored value of another dynamic type fails with [ErrFieldType].
func (f Field[T]) Load(h Holder) (T, error) {
	var zero T
	v, ok := h.Load(f.name)
	if !ok || v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field %q is %T, want %s", ErrFieldType, f.name, v, reflect.TypeFor[T]())
	}
	return t, nil
}

// Store writes v into the field of h.
func (f Field[T]) Store(h Holder, v T) {
	h.Store(f.name, v)
}

// target selects the holder an accessor works on.
type target[C any] func(c C) Holder

func fixed[C any](h Holder) target[C] {
	return func(C) Holder { return h }
}

func self[C Holder](c C) Holder { return c }

// getOp reads a field.
type getOp[C, T any] struct {
	at target[C]
	f  Field[T]
}

func (o *getOp[C, T]) Caps() Caps { return Sync }

func (o *getOp[C, T]) Perform(c C, args ...Erased) Eff[T] {
	return func(k func(T, error) Resumed) Resumed {
		return k(o.PerformSync(c, args...))
	}
}

func (o *getOp[C, T]) PerformSync(c C, _ ...Erased) (T, error) {
	return o.f.Load(o.at(c))
}

// setOp writes a field. With value nil the value is positional argument 0.
type setOp[C, T any] struct {
	at    target[C]
	f     Field[T]
	value *T
}

func (o *setOp[C, T]) Caps() Caps { return Sync }

func (o *setOp[C, T]) Perform(c C, args ...Erased) Eff[T] {
	return func(k func(T, error) Resumed) Resumed {
		return k(o.PerformSync(c, args...))
	}
}

func (o *setOp[C, T]) PerformSync(c C, args ...Erased) (T, error) {
	if o.value != nil {
		o.f.Store(o.at(c), *o.value)
		return *o.value, nil
	}
	v, err := Arg[T](args, 0)
	if err != nil {
		return v, err
	}
	o.f.Store(o.at(c), v)
	return v, nil
}

// mutateOp reads a field, transforms it and writes the result back.
type mutateOp[C, T any] struct {
	at target[C]
	f  Field[T]
	fn func(T) T
}

func (o *mutateOp[C, T]) Caps() Caps { return Sync }

func (o *mutateOp[C, T]) Perform(c C, args ...Erased) Eff[T] {
	return func(k func(T, error) Resumed) Resumed {
		return k(o.PerformSync(c, args...))
	}
}

func (o *mutateOp[C, T]) PerformSync(c C, _ ...Erased) (T, error) {
	h := o.at(c)
	v, err := o.f.Load(h)
	if err != nil {
		return v, err
	}
	v = o.fn(v)
	o.f.Store(h, v)
	return v, nil
}

// Get reads field f of h.
func Get[C, T any](h Holder, f Field[T]) Op[C, T] {
	return &getOp[C, T]{at: fixed[C](h), f: f}
}

// Set writes its first positional argument into field f of h and returns
// it. Bind the value with [Apply1]:
//
//	ops.Apply1(ops.Set[*Ctx](rec, x), ops.Const[*Ctx](1))
func Set[C, T any](h Holder, f Field[T]) Op[C, T] {
	return &setOp[C, T]{at: fixed[C](h), f: f}
}

// SetValue writes v into field f of h and returns v.
func SetValue[C, T any](h Holder, f Field[T], v T) Op[C, T] {
	return &setOp[C, T]{at: fixed[C](h), f: f, value: &v}
}

// Mutate replaces field f of h with fn applied to its current value and
// returns the new value.
func Mutate[C, T any](h Holder, f Field[T], fn func(T) T) Op[C, T] {
	return &mutateOp[C, T]{at: fixed[C](h), f: f, fn: fn}
}

// ContextGet reads field f of the context.
func ContextGet[C Holder, T any](f Field[T]) Op[C, T] {
	return &getOp[C, T]{at: self[C], f: f}
}

// ContextSet writes its first positional argument into field f of the
// context and returns it.
func ContextSet[C Holder, T any](f Field[T]) Op[C, T] {
	return &setOp[C, T]{at: self[C], f: f}
}

// ContextSetValue writes v into field f of the context and returns v.
func ContextSetValue[C Holder, T any](f Field[T], v T) Op[C, T] {
	return &setOp[C, T]{at: self[C], f: f, value: &v}
}

// ContextMutate replaces field f of the context with fn applied to its
// current value and returns the new value.
func ContextMutate[C Holder, T any](f Field[T], fn func(T) T) Op[C, T] {
	return &mutateOp[C, T]{at: self[C], f: f, fn: fn}
}

// selfOp yields the context itself.
type selfOp[C any] struct{}

// ContextSelf returns an op yielding the context itself. It mutates nothing
// but is not deterministic: the context is mutable state.
func ContextSelf[C any]() Op[C, C] {
	return selfOp[C]{}
}

func (selfOp[C]) Caps() Caps { return SideEffectFree | Sync }

func (selfOp[C]) Perform(c C, _ ...Erased) Eff[C] { return Return(c) }

func (selfOp[C]) PerformSync(c C, _ ...Erased) (C, error) { return c, nil }
