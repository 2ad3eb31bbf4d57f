package ir

// aggregate.go implements the shared address/size derivation spec.md §4.8
// assigns to Module and Section: the minimum address and the address+size
// envelope over descendant ByteIntervals, present only when every descendant
// itself has a defined address — absent (not zero) otherwise, so a partially
// addressed binary doesn't silently report a bogus range. Grounded on
// original_source/module.rs's address()/size() which fold over contained
// sections the same way.
//
// © 2025 bingraph authors. MIT License.

import "iter"

// aggregateAddress returns the minimum address reported by addrFn over seq,
// or (_, false) if seq is empty or any element's address is absent.
func aggregateAddress[T any](seq iter.Seq[T], addrFn func(T) (Addr, bool)) (Addr, bool) {
	var (
		min   Addr
		found bool
	)
	for item := range seq {
		a, ok := addrFn(item)
		if !ok {
			return 0, false
		}
		if !found || a < min {
			min = a
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return min, true
}

// aggregateSize returns (max(addr+size) - min(addr)) over seq, or (_, false)
// under the same all-or-nothing rule as aggregateAddress.
func aggregateSize[T any](seq iter.Seq[T], addrFn func(T) (Addr, bool), sizeFn func(T) (uint64, bool)) (uint64, bool) {
	var (
		min, max Addr
		found    bool
	)
	for item := range seq {
		a, ok := addrFn(item)
		if !ok {
			return 0, false
		}
		s, ok := sizeFn(item)
		if !ok {
			return 0, false
		}
		end := a.Add(Addr(s))
		if !found {
			min, max, found = a, end, true
			continue
		}
		if a < min {
			min = a
		}
		if end > max {
			max = end
		}
	}
	if !found {
		return 0, false
	}
	return uint64(max.Sub(min)), true
}
