package ir

// traversal.go implements the two iteration shapes of spec.md §4.6: direct
// children (snapshot-at-start, list order) and transitive descendants
// (flattening of direct-child iterators), both lazy, finite and
// non-restartable. Go's range-over-func iterators (package iter, stdlib since
// Go 1.23) are the natural idiom for exactly this shape — a generator that
// yields until the consumer stops or the sequence is exhausted — so bingraph
// uses iter.Seq[T] rather than hand-rolling a Next()/HasNext() cursor type.
//
// © 2025 bingraph authors. MIT License.

import (
	"iter"

	"github.com/Voskan/bingraph/internal/arena"
)

// children returns a lazy, snapshot-at-start sequence over keys, each
// converted to a handle via build. The key slice is copied at call time so
// later mutation of the parent's child list during iteration is not
// observed, per spec.md §4.6.
func children[T any](keys []arena.Key, build func(arena.Key) T) iter.Seq[T] {
	snapshot := make([]arena.Key, len(keys))
	copy(snapshot, keys)
	return func(yield func(T) bool) {
		for _, k := range snapshot {
			if !yield(build(k)) {
				return
			}
		}
	}
}

// flatten composes a parent-level sequence with a per-parent expansion into
// a single descendant sequence, implementing spec.md §4.6's "flattening of
// direct-child iterators" for transitive traversals (e.g. Module.CodeBlocks
// flattens Sections -> ByteIntervals -> CodeBlocks).
func flatten[P, C any](parents iter.Seq[P], expand func(P) iter.Seq[C]) iter.Seq[C] {
	return func(yield func(C) bool) {
		for p := range parents {
			for c := range expand(p) {
				if !yield(c) {
					return
				}
			}
		}
	}
}
