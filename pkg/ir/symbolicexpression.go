package ir

// symbolicexpression.go implements SymbolicExpression as a plain value type
// held in an offset-keyed map on its owning ByteInterval (see byteinterval.go)
// rather than as its own UUID-bearing arena node — resolving the open
// question spec.md §9 leaves explicit ("Treat as a simple map"). Grounded on
// spec.md §9's symbol-plus-addend definition and original_source/lib.rs's use
// of the same shape; the symbol/addend split itself mirrors symbol.rs's
// Payload enum, which this package's PayloadKind (see symbol.go) is also
// grounded on.
//
// © 2025 bingraph authors. MIT License.

import "github.com/google/uuid"

// SymbolicExpression records that the bytes at some ByteInterval offset
// encode a reference to one or more Symbols plus a constant addend, rather
// than a literal value — e.g. a relocation site.
type SymbolicExpression struct {
	Symbols []uuid.UUID
	Addend  int64
}
