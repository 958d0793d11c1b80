// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops_test

import (
	"fmt"

	"code.hybscloud.com/ops"
)

// env is the execution context used throughout the tests.
// It is a Holder through the embedded Record and logs every probe run.
type env struct {
	ops.Record
	trace []string
}

func newEnv() *env {
	return &env{Record: ops.Record{}}
}

// probe is a leaf with declared tags that logs its name to the context
// each time it runs. It implements PerformSync regardless of its tags so
// that tag checks, not missing methods, are what reject sync calls.
type probe[R any] struct {
	name  string
	caps  ops.Caps
	value R
	err   error
}

func newProbe[R any](name string, caps ops.Caps, v R) *probe[R] {
	return &probe[R]{name: name, caps: caps, value: v}
}

func failing[R any](name string, err error) *probe[R] {
	return &probe[R]{name: name, caps: ops.Pure, err: err}
}

func (p *probe[R]) Caps() ops.Caps { return p.caps }

func (p *probe[R]) Perform(c *env, args ...ops.Erased) ops.Eff[R] {
	return ops.Suspend(func(k func(R, error) ops.Resumed) ops.Resumed {
		return k(p.PerformSync(c, args...))
	})
}

func (p *probe[R]) PerformSync(c *env, _ ...ops.Erased) (R, error) {
	c.trace = append(c.trace, p.name)
	return p.value, p.err
}

// ask is the host operation awaited by pause leaves.
type ask struct {
	name  string
	reply int
}

// pause returns a leaf that logs its name, then suspends on ask.
func pause(name string, reply int) ops.Op[*env, int] {
	return ops.AsyncLeaf(ops.Deterministic|ops.SideEffectFree, func(c *env, _ []ops.Erased) ops.Eff[int] {
		c.trace = append(c.trace, name)
		return ops.Await[int](ask{name: name, reply: reply})
	})
}

// answer resolves every ask with its reply.
var answer = ops.HandlerFunc(func(op ops.Operation) (ops.Resumed, error) {
	a, ok := op.(ask)
	if !ok {
		return nil, fmt.Errorf("unexpected operation %T", op)
	}
	return a.reply, nil
})

var (
	fieldX = ops.NewField[int]("x")
	fieldS = ops.NewField[string]("s")
)
