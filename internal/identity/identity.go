// Package identity maintains the UUID -> (Kind, Key) index shared by every
// node kind in a Context: spec.md's invariant 2 ("a UUID is present in the
// index iff a live node with that UUID exists in some arena") lives here as a
// single atomic-from-the-caller's-perspective map, mirroring how the teacher's
// clockpro package keeps its own book-keeping free of the parent's locking
// concerns and lets the caller (pkg/ir.Context) serialise access.
//
// © 2025 bingraph authors. MIT License.
package identity

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

// Kind tags which arena a Key belongs to. The set is closed: one member per
// node kind in spec.md §3's containment table plus SymbolicExpression.
type Kind uint8

const (
	KindIR Kind = iota + 1
	KindModule
	KindSection
	KindByteInterval
	KindCodeBlock
	KindDataBlock
	KindProxyBlock
	KindSymbol
	KindSymbolicExpression
)

func (k Kind) String() string {
	switch k {
	case KindIR:
		return "IR"
	case KindModule:
		return "Module"
	case KindSection:
		return "Section"
	case KindByteInterval:
		return "ByteInterval"
	case KindCodeBlock:
		return "CodeBlock"
	case KindDataBlock:
		return "DataBlock"
	case KindProxyBlock:
		return "ProxyBlock"
	case KindSymbol:
		return "Symbol"
	case KindSymbolicExpression:
		return "SymbolicExpression"
	default:
		return "Unknown"
	}
}

// Location is where a UUID currently resolves to.
type Location struct {
	Kind Kind
	Key  arena.Key
}

// Index is a UUID -> Location map. It is not safe for concurrent use — the
// owning Context serialises all access, exactly as spec.md §5 requires.
type Index struct {
	byUUID map[uuid.UUID]Location
}

// New constructs an empty index.
func New() *Index {
	return &Index{byUUID: make(map[uuid.UUID]Location, 64)}
}

// Lookup returns the Location registered for id, if any.
func (idx *Index) Lookup(id uuid.UUID) (Location, bool) {
	loc, ok := idx.byUUID[id]
	return loc, ok
}

// Contains reports whether id is currently registered.
func (idx *Index) Contains(id uuid.UUID) bool {
	_, ok := idx.byUUID[id]
	return ok
}

// Insert registers id -> loc. It returns false without modifying the index
// if id is already registered (collision) — callers map that to
// ir.ErrDuplicateUuid.
func (idx *Index) Insert(id uuid.UUID, loc Location) bool {
	if _, exists := idx.byUUID[id]; exists {
		return false
	}
	idx.byUUID[id] = loc
	return true
}

// Remove deregisters id, if present.
func (idx *Index) Remove(id uuid.UUID) {
	delete(idx.byUUID, id)
}

// Rekey performs the atomic "remove old, insert new" step spec.md §4.2
// requires for set_uuid: it fails without mutating the index if newID is
// already registered to a *different* node.
func (idx *Index) Rekey(oldID, newID uuid.UUID, loc Location) bool {
	if oldID == newID {
		return true
	}
	if _, exists := idx.byUUID[newID]; exists {
		return false
	}
	delete(idx.byUUID, oldID)
	idx.byUUID[newID] = loc
	return true
}

// Len returns the number of registered UUIDs.
func (idx *Index) Len() int {
	return len(idx.byUUID)
}
