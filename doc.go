// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ops provides capability-tagged, composable units of computation
// with a dual asynchronous/synchronous execution contract.
//
// An [Op] produces a result of type R against a shared mutable execution
// context of type C, optionally with positional arguments. Every op carries
// three independent capability tags ([Caps]) which every combinator
// propagates from its constituents. A host builds trees of ops, queries the
// tags (can this tree run without suspension? can its result be cached? is
// it safe to skip in a dry run?) and then runs it.
//
// # Design Philosophy
//
// ops provides:
//   - One contract for leaves and combinators, with conservative tags
//   - Tags computed once at construction and never recomputed
//   - Suspension that flows transparently through every combinator
//   - A checked synchronous path that never silently degrades
//
// # Capability Tags
//
//   - [Deterministic]: same context state and arguments, same result and effects
//   - [SideEffectFree]: mutates neither the context nor anything reachable
//   - [Sync]: never suspends; the op implements [SyncOp]
//
// A missing tag means "not guaranteed". For every combinator each tag is the
// logical AND of that tag across all constituents, including branches a
// given invocation does not take:
//
//   - [Meet]: AND of tag sets; Meet() is [Pure]
//   - [CapsOf]: meet of constituents' tags
//
// # Execution
//
// [Op.Perform] is the asynchronous entry point. It returns an [Eff], a
// computation in continuation-passing style that may suspend wherever a
// leaf calls [Await]. Nothing runs until a driver drives it:
//
//   - [Handle]: run to completion, dispatching suspensions to a [Handler]
//   - [Run]: run a computation expected not to suspend
//   - [Step]: one suspension at a time, for event loops
//   - [Suspension.Resume], [Suspension.Fail]: one-shot resumption (panics on reuse)
//   - [Invoke]: Perform and Handle in one call
//
// [RunSync] is the synchronous entry point. It fails with [ErrNotSync] when
// the op does not carry [Sync]; otherwise it calls [SyncOp.PerformSync],
// which yields the same result and side effects as driving Perform.
//
// Computation primitives:
//
//   - [Return], [Fail], [Lift], [Suspend]: constructors
//   - [Bind], [Map], [Then]: sequencing with error short-circuit
//
// # Leaves
//
//   - [Const]: a fixed value ([Pure])
//   - [Nop]: the zero value ([Pure])
//   - [Pure0], [Pure1], [Pure2], [Pure3], [PureV]: total pure functions
//   - [Partial1], [Partial2], [Partial3], [PartialV]: deterministic functions that may fail
//   - [Leaf]: synchronous function with host-declared tags
//   - [AsyncLeaf]: computation that may suspend
//   - [Arg], [Args], [Arity]: positional argument access for leaf authors
//
// # Accessors
//
// Accessors read and write typed fields ([Field]) of a [Holder] or of the
// context itself. They carry [Sync] only: a field may be computed with
// arbitrary effects.
//
//   - [Get], [Set], [SetValue], [Mutate]: on a holder
//   - [ContextGet], [ContextSet], [ContextSetValue], [ContextMutate]: on the context
//   - [ContextSelf]: the context itself ([SideEffectFree] and [Sync])
//   - [Record]: a map-backed holder
//
// # Combinators
//
//   - [Apply], [Apply1], [Apply2], [Apply3]: bind argument producers to a head op
//   - [Block], [Seq]: ordered statements, then a final value
//   - [If], [When]: exactly one of two branches
//   - [And], [Or]: short-circuit on generalized truthiness ([Truthy])
//   - [Not]: negated truthiness
//   - [Erase]: adapt Op[C, A] to Op[C, Erased] for statements and arguments
//
// Argument producers and statements run strictly left to right in both
// execution modes. Failures propagate unmodified; no combinator retries or
// cleans up.
//
// # Catalogs
//
// Subpackages provide ready-made leaves over the same contract:
// num (float64), bigint (*big.Int), text (strings, with locale-aware
// casing, collation and normalization) and buf (byte buffers, Sync only).
//
// # Hosting
//
// [Runner] executes trees with structured logging (log/slog), OpenTelemetry
// spans and metrics:
//
//   - [Execute]: one run, sync path when tagged and preferred
//   - [ExecuteAll]: independent runs in parallel, one [Outcome] per job
//
// # Concurrency
//
// The context and holders are shared and unsynchronized. One tree run is a
// single logical thread; concurrent runs against the same context must be
// serialized by the caller. There is no cancellation.
//
// # Example
//
//	x := ops.NewField[int]("x")
//	rec := ops.Record{}
//
//	tree := ops.Block(
//		[]ops.Op[*Ctx, ops.Erased]{
//			ops.Erase(ops.SetValue[*Ctx](rec, x, 1)),
//			ops.Erase(ops.SetValue[*Ctx](rec, x, 2)),
//		},
//		ops.Get[*Ctx](rec, x),
//	)
//
//	tree.Caps().IsSync()       // true
//	v, err := ops.RunSync(tree, ctx)
//	// v == 2
package ops
