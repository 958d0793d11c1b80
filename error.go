// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "errors"

// Errors raised by the kernel itself. Failures of leaf ops propagate through
// every combinator unmodified.
var (
	// ErrNotSync reports a synchronous invocation of an op without the Sync tag.
	ErrNotSync = errors.New("ops: synchronous invocation of a non-sync op")
	// ErrArity reports a wrong number of positional arguments.
	ErrArity = errors.New("ops: wrong number of arguments")
	// ErrArgType reports a positional argument of the wrong dynamic type.
	ErrArgType = errors.New("ops: argument type mismatch")
	// ErrFieldType reports a stored field value of the wrong dynamic type.
	ErrFieldType = errors.New("ops: field type mismatch")
	// ErrUnhandled reports a suspension with no handler to dispatch it.
	ErrUnhandled = errors.New("ops: unhandled operation")
	// ErrResumeType reports a resume value of the wrong dynamic type.
	ErrResumeType = errors.New("ops: resume value type mismatch")
)

// Outcome is the result of one op run: a value or an error.
type Outcome[R any] struct {
	Value R
	Err   error
}

// OK reports whether the run succeeded.
func (o Outcome[R]) OK() bool { return o.Err == nil }

// Get returns the value and the error.
func (o Outcome[R]) Get() (R, error) { return o.Value, o.Err }
