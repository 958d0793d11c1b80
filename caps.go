// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import "strings"

// Caps is the set of capability tags an op guarantees.
// Each tag is a conservative guarantee: a missing tag means "not
// guaranteed", never "guaranteed false".
type Caps uint8

const (
	// Deterministic: equal context state and arguments always yield the
	// same result and the same side effects. No dependency on time,
	// randomness, or other hidden ambient state.
	Deterministic Caps = 1 << iota
	// SideEffectFree: invocation mutates neither the context nor any other
	// reachable object. The op may still read mutable or ambient state.
	SideEffectFree
	// Sync: invocation never suspends. Ops carrying Sync implement [SyncOp].
	Sync
)

const (
	// Opaque guarantees nothing.
	Opaque Caps = 0
	// Pure carries every tag.
	Pure = Deterministic | SideEffectFree | Sync
)

// IsDeterministic reports whether c carries [Deterministic].
func (c Caps) IsDeterministic() bool { return c&Deterministic != 0 }

// IsSideEffectFree reports whether c carries [SideEffectFree].
func (c Caps) IsSideEffectFree() bool { return c&SideEffectFree != 0 }

// IsSync reports whether c carries [Sync].
func (c Caps) IsSync() bool { return c&Sync != 0 }

// Has reports whether c carries every tag in t.
func (c Caps) Has(t Caps) bool { return c&t == t }

// Without returns c with the tags in t removed.
func (c Caps) Without(t Caps) Caps { return c &^ t }

// String renders the tags as "deterministic|side-effect-free|sync",
// or "opaque" when none is set.
func (c Caps) String() string {
	if c&Pure == 0 {
		return "opaque"
	}
	tags := make([]string, 0, 3)
	if c.IsDeterministic() {
		tags = append(tags, "deterministic")
	}
	if c.IsSideEffectFree() {
		tags = append(tags, "side-effect-free")
	}
	if c.IsSync() {
		tags = append(tags, "sync")
	}
	return strings.Join(tags, "|")
}

// Meet returns the tags carried by every element of cs: the per-tag
// logical AND. Meet() is [Pure], the identity of the meet.
func Meet(cs ...Caps) Caps {
	m := Pure
	for _, c := range cs {
		m &= c
	}
	return m
}

// Capable is anything that reports capability tags.
type Capable interface {
	Caps() Caps
}

// CapsOf meets the tags of every constituent.
func CapsOf(cs ...Capable) Caps {
	m := Pure
	for _, c := range cs {
		m &= c.Caps()
	}
	return m
}

// meetOps meets the tags of a homogeneous constituent list.
func meetOps[C, A any](m Caps, ops []Op[C, A]) Caps {
	for _, op := range ops {
		m &= op.Caps()
	}
	return m
}
