package ir

// addr.go implements Addr, the fixed-width address value spec.md §3 names:
// an unsigned 64-bit quantity with wrapping (two's-complement) add/sub.
// Grounded on original_source/addr.rs's `Addr(pub u64)` newtype with
// Add/Sub impls; reimplemented as a plain Go value type since Go integers
// already wrap on overflow, so no checked-arithmetic newtype is needed.
//
// © 2025 bingraph authors. MIT License.

import "fmt"

// Addr is an unsigned 64-bit address. The zero value is address 0.
type Addr uint64

// Add returns a+b with wraparound two's-complement semantics.
func (a Addr) Add(b Addr) Addr { return a + b }

// Sub returns a-b with wraparound two's-complement semantics.
func (a Addr) Sub(b Addr) Addr { return a - b }

func (a Addr) String() string { return fmt.Sprintf("Addr(%#x)", uint64(a)) }
