// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package buf is a catalog of byte buffer leaf ops.
//
// Buffers are mutable host memory shared by reference, so every op is
// tagged [ops.Sync] only: reading a buffer that another op may write is
// not deterministic, and writes are side effects.
//
// Accessors take the buffer and an int byte offset, and for setters the
// value, as positional arguments:
//
//	ops.Apply3(buf.SetUint32LE[*Ctx](), bufOp, ops.Const[*Ctx](4), ops.Const[*Ctx](uint32(7)))
package buf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"code.hybscloud.com/ops"
)

var (
	// ErrOutOfRange reports an access outside the buffer.
	ErrOutOfRange = errors.New("buf: offset out of range")
	// ErrSize reports an invalid buffer length for the operation.
	ErrSize = errors.New("buf: invalid size")
)

func leaf[C, R any](n int, f func(args []ops.Erased) (R, error)) ops.Op[C, R] {
	return ops.Leaf(ops.Opaque, func(_ C, args []ops.Erased) (R, error) {
		if err := ops.Arity(args, n); err != nil {
			var zero R
			return zero, err
		}
		return f(args)
	})
}

// Alloc yields a zeroed buffer of the given int length.
func Alloc[C any]() ops.Op[C, []byte] {
	return leaf[C](1, func(args []ops.Erased) ([]byte, error) {
		n, err := ops.Arg[int](args, 0)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %d", ErrSize, n)
		}
		return make([]byte, n), nil
	})
}

// From yields a new buffer holding a copy of a string or []byte operand.
func From[C any]() ops.Op[C, []byte] {
	return leaf[C](1, func(args []ops.Erased) ([]byte, error) {
		switch v := args[0].(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return slices.Clone(v), nil
		case nil:
			return []byte{}, nil
		}
		return nil, fmt.Errorf("%w: %T", ops.ErrArgType, args[0])
	})
}

// window checks that size bytes at off lie inside b.
func window(args []ops.Erased, size int) ([]byte, error) {
	b, err := ops.Arg[[]byte](args, 0)
	if err != nil {
		return nil, err
	}
	off, err := ops.Arg[int](args, 1)
	if err != nil {
		return nil, err
	}
	if off < 0 || off > len(b)-size {
		return nil, fmt.Errorf("%w: %d bytes at %d of %d", ErrOutOfRange, size, off, len(b))
	}
	return b[off : off+size], nil
}

func get[C, T any](size int, read func([]byte) T) ops.Op[C, T] {
	return leaf[C](2, func(args []ops.Erased) (T, error) {
		w, err := window(args, size)
		if err != nil {
			var zero T
			return zero, err
		}
		return read(w), nil
	})
}

func set[C, T any](size int, write func([]byte, T)) ops.Op[C, ops.Unit] {
	return leaf[C](3, func(args []ops.Erased) (ops.Unit, error) {
		w, err := window(args, size)
		if err != nil {
			return ops.Unit{}, err
		}
		v, err := ops.Arg[T](args, 2)
		if err != nil {
			return ops.Unit{}, err
		}
		write(w, v)
		return ops.Unit{}, nil
	})
}

var (
	le = binary.LittleEndian
	be = binary.BigEndian
)

func GetUint8[C any]() ops.Op[C, uint8] { return get[C](1, func(b []byte) uint8 { return b[0] }) }
func GetInt8[C any]() ops.Op[C, int8]   { return get[C](1, func(b []byte) int8 { return int8(b[0]) }) }

func SetUint8[C any]() ops.Op[C, ops.Unit] { return set[C](1, func(b []byte, v uint8) { b[0] = v }) }
func SetInt8[C any]() ops.Op[C, ops.Unit]  { return set[C](1, func(b []byte, v int8) { b[0] = byte(v) }) }

// Little-endian accessors.

func GetUint16LE[C any]() ops.Op[C, uint16] { return get[C](2, le.Uint16) }
func GetUint32LE[C any]() ops.Op[C, uint32] { return get[C](4, le.Uint32) }
func GetUint64LE[C any]() ops.Op[C, uint64] { return get[C](8, le.Uint64) }

func GetInt16LE[C any]() ops.Op[C, int16] {
	return get[C](2, func(b []byte) int16 { return int16(le.Uint16(b)) })
}

func GetInt32LE[C any]() ops.Op[C, int32] {
	return get[C](4, func(b []byte) int32 { return int32(le.Uint32(b)) })
}

func GetInt64LE[C any]() ops.Op[C, int64] {
	return get[C](8, func(b []byte) int64 { return int64(le.Uint64(b)) })
}

func GetFloat32LE[C any]() ops.Op[C, float32] {
	return get[C](4, func(b []byte) float32 { return math.Float32frombits(le.Uint32(b)) })
}

func GetFloat64LE[C any]() ops.Op[C, float64] {
	return get[C](8, func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) })
}

func SetUint16LE[C any]() ops.Op[C, ops.Unit] { return set[C](2, le.PutUint16) }
func SetUint32LE[C any]() ops.Op[C, ops.Unit] { return set[C](4, le.PutUint32) }
func SetUint64LE[C any]() ops.Op[C, ops.Unit] { return set[C](8, le.PutUint64) }

func SetInt16LE[C any]() ops.Op[C, ops.Unit] {
	return set[C](2, func(b []byte, v int16) { le.PutUint16(b, uint16(v)) })
}

func SetInt32LE[C any]() ops.Op[C, ops.Unit] {
	return set[C](4, func(b []byte, v int32) { le.PutUint32(b, uint32(v)) })
}

func SetInt64LE[C any]() ops.Op[C, ops.Unit] {
	return set[C](8, func(b []byte, v int64) { le.PutUint64(b, uint64(v)) })
}

func SetFloat32LE[C any]() ops.Op[C, ops.Unit] {
	return set[C](4, func(b []byte, v float32) { le.PutUint32(b, math.Float32bits(v)) })
}

func SetFloat64LE[C any]() ops.Op[C, ops.Unit] {
	return set[C](8, func(b []byte, v float64) { le.PutUint64(b, math.Float64bits(v)) })
}

// Big-endian accessors.

func GetUint16BE[C any]() ops.Op[C, uint16] { return get[C](2, be.Uint16) }
func GetUint32BE[C any]() ops.Op[C, uint32] { return get[C](4, be.Uint32) }
func GetUint64BE[C any]() ops.Op[C, uint64] { return get[C](8, be.Uint64) }

func GetInt16BE[C any]() ops.Op[C, int16] {
	return get[C](2, func(b []byte) int16 { return int16(be.Uint16(b)) })
}

func GetInt32BE[C any]() ops.Op[C, int32] {
	return get[C](4, func(b []byte) int32 { return int32(be.Uint32(b)) })
}

func GetInt64BE[C any]() ops.Op[C, int64] {
	return get[C](8, func(b []byte) int64 { return int64(be.Uint64(b)) })
}

func GetFloat32BE[C any]() ops.Op[C, float32] {
	return get[C](4, func(b []byte) float32 { return math.Float32frombits(be.Uint32(b)) })
}

func GetFloat64BE[C any]() ops.Op[C, float64] {
	return get[C](8, func(b []byte) float64 { return math.Float64frombits(be.Uint64(b)) })
}

func SetUint16BE[C any]() ops.Op[C, ops.Unit] { return set[C](2, be.PutUint16) }
func SetUint32BE[C any]() ops.Op[C, ops.Unit] { return set[C](4, be.PutUint32) }
func SetUint64BE[C any]() ops.Op[C, ops.Unit] { return set[C](8, be.PutUint64) }

func SetInt16BE[C any]() ops.Op[C, ops.Unit] {
	return set[C](2, func(b []byte, v int16) { be.PutUint16(b, uint16(v)) })
}

func SetInt32BE[C any]() ops.Op[C, ops.Unit] {
	return set[C](4, func(b []byte, v int32) { be.PutUint32(b, uint32(v)) })
}

func SetInt64BE[C any]() ops.Op[C, ops.Unit] {
	return set[C](8, func(b []byte, v int64) { be.PutUint64(b, uint64(v)) })
}

func SetFloat32BE[C any]() ops.Op[C, ops.Unit] {
	return set[C](4, func(b []byte, v float32) { be.PutUint32(b, math.Float32bits(v)) })
}

func SetFloat64BE[C any]() ops.Op[C, ops.Unit] {
	return set[C](8, func(b []byte, v float64) { be.PutUint64(b, math.Float64bits(v)) })
}

// Swap16 reverses the byte order of each 16-bit unit in place.
// It fails with [ErrSize] unless the length is a multiple of 2.
func Swap16[C any]() ops.Op[C, ops.Unit] { return swap[C](2) }

// Swap32 reverses each 32-bit unit in place.
func Swap32[C any]() ops.Op[C, ops.Unit] { return swap[C](4) }

// Swap64 reverses each 64-bit unit in place.
func Swap64[C any]() ops.Op[C, ops.Unit] { return swap[C](8) }

func swap[C any](n int) ops.Op[C, ops.Unit] {
	return leaf[C](1, func(args []ops.Erased) (ops.Unit, error) {
		b, err := ops.Arg[[]byte](args, 0)
		if err != nil {
			return ops.Unit{}, err
		}
		if len(b)%n != 0 {
			return ops.Unit{}, fmt.Errorf("%w: length %d is not a multiple of %d", ErrSize, len(b), n)
		}
		for i := 0; i < len(b); i += n {
			slices.Reverse(b[i : i+n])
		}
		return ops.Unit{}, nil
	})
}

// Compare orders two buffers lexicographically: -1, 0 or 1.
func Compare[C any]() ops.Op[C, int] {
	return leaf[C](2, func(args []ops.Erased) (int, error) {
		a, b, err := pair(args)
		return bytes.Compare(a, b), err
	})
}

// Equal reports whether two buffers hold the same bytes.
func Equal[C any]() ops.Op[C, bool] {
	return leaf[C](2, func(args []ops.Erased) (bool, error) {
		a, b, err := pair(args)
		return err == nil && bytes.Equal(a, b), err
	})
}

func pair(args []ops.Erased) ([]byte, []byte, error) {
	a, err := ops.Arg[[]byte](args, 0)
	if err != nil {
		return nil, nil, err
	}
	b, err := ops.Arg[[]byte](args, 1)
	return a, b, err
}
