package ir

// edges.go implements the parent<->child relation machinery of spec.md §4.5:
// one generic link/unlink pair used by every containment edge in the §3
// table (IR-Module, Module-Section, Module-ProxyBlock, Module-Symbol,
// Section-ByteInterval, ByteInterval-CodeBlock, ByteInterval-DataBlock).
// SymbolicExpressions are offset-keyed values, not arena-backed children
// (see symbolicexpression.go), so they do not go through linkChild.
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
	"github.com/Voskan/bingraph/internal/identity"
)

// linkChild allocates data into childArena, registers its UUID, appends the
// new Key to the parent's child list, and writes the parent Key into the
// child's parent slot — the four steps spec.md §3 "Create" names, done as one
// atomic-from-the-caller's-perspective operation so a failed UUID
// registration never leaves a half-linked child.
func linkChild[CD any](
	idx *identity.Index,
	childArena *arena.Arena[CD],
	childKind Kind,
	childUUID uuid.UUID,
	data CD,
	parentKey arena.Key,
	parentChildren *[]arena.Key,
	setParent func(*CD, arena.Key),
) (arena.Key, error) {
	if idx.Contains(childUUID) {
		return arena.Key{}, newError(KindDuplicateUuid, "linkChild", childUUID)
	}

	key := childArena.Insert(data)
	idx.Insert(childUUID, identity.Location{Kind: childKind, Key: key})

	rec := childArena.GetMut(key)
	setParent(rec, parentKey)
	*parentChildren = append(*parentChildren, key)

	return key, nil
}

// unlinkChild removes childKey from parentChildren (WrongParent if absent),
// invokes cascade to recursively remove any of the child's own descendants
// (post-order: children first), then drops the child's UUID registration and
// arena slot. cascade must not itself touch parentChildren.
func unlinkChild[CD any](
	idx *identity.Index,
	childArena *arena.Arena[CD],
	parentChildren *[]arena.Key,
	childKey arena.Key,
	getUUID func(*CD) uuid.UUID,
	cascade func(*CD),
) error {
	pos := -1
	for i, k := range *parentChildren {
		if k == childKey {
			pos = i
			break
		}
	}
	if pos < 0 {
		return newError(KindWrongParent, "unlinkChild", uuid.Nil)
	}

	rec := childArena.Get(childKey)
	if rec == nil {
		// Reciprocity invariant would have been violated already; surface as
		// StaleHandle rather than silently desyncing the parent list.
		*parentChildren = append((*parentChildren)[:pos], (*parentChildren)[pos+1:]...)
		return newError(KindStaleHandle, "unlinkChild", uuid.Nil)
	}

	childID := getUUID(rec)
	cascade(rec)

	*parentChildren = append((*parentChildren)[:pos], (*parentChildren)[pos+1:]...)
	idx.Remove(childID)
	childArena.Remove(childKey)
	return nil
}

// reparentChild moves childKey from oldChildren to newChildren and rewrites
// the child's parent slot, preserving reciprocity at every observable step
// (spec.md §4.5's optional reparent operation).
func reparentChild[CD any](
	childArena *arena.Arena[CD],
	oldChildren *[]arena.Key,
	newChildren *[]arena.Key,
	childKey arena.Key,
	newParentKey arena.Key,
	setParent func(*CD, arena.Key),
) error {
	pos := -1
	for i, k := range *oldChildren {
		if k == childKey {
			pos = i
			break
		}
	}
	if pos < 0 {
		return newError(KindWrongParent, "reparentChild", uuid.Nil)
	}

	rec := childArena.GetMut(childKey)
	if rec == nil {
		return newError(KindStaleHandle, "reparentChild", uuid.Nil)
	}

	*oldChildren = append((*oldChildren)[:pos], (*oldChildren)[pos+1:]...)
	*newChildren = append(*newChildren, childKey)
	setParent(rec, newParentKey)
	return nil
}
