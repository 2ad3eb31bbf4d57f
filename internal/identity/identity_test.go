package identity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

func TestInsertLookupRemove(t *testing.T) {
	idx := New()
	id := uuid.New()
	loc := Location{Kind: KindModule, Key: arena.Key{}}

	if !idx.Insert(id, loc) {
		t.Fatal("Insert on fresh index should succeed")
	}
	got, ok := idx.Lookup(id)
	if !ok || got.Kind != KindModule {
		t.Fatalf("Lookup = (%v, %v), want (%v, true)", got, ok, loc)
	}

	idx.Remove(id)
	if idx.Contains(id) {
		t.Fatal("id should be gone after Remove")
	}
}

func TestInsertCollisionRejected(t *testing.T) {
	idx := New()
	id := uuid.New()
	idx.Insert(id, Location{Kind: KindModule})

	if idx.Insert(id, Location{Kind: KindSection}) {
		t.Fatal("Insert should reject a duplicate UUID")
	}
	got, _ := idx.Lookup(id)
	if got.Kind != KindModule {
		t.Fatal("collision attempt must not overwrite the existing entry")
	}
}

func TestRekeyAtomicSwap(t *testing.T) {
	idx := New()
	oldID, newID := uuid.New(), uuid.New()
	idx.Insert(oldID, Location{Kind: KindSymbol})

	if !idx.Rekey(oldID, newID, Location{Kind: KindSymbol}) {
		t.Fatal("Rekey to a fresh UUID should succeed")
	}
	if idx.Contains(oldID) {
		t.Fatal("old UUID must be removed after Rekey")
	}
	if !idx.Contains(newID) {
		t.Fatal("new UUID must be registered after Rekey")
	}
}

func TestRekeyCollisionLeavesIndexUnchanged(t *testing.T) {
	idx := New()
	a, b := uuid.New(), uuid.New()
	idx.Insert(a, Location{Kind: KindSymbol})
	idx.Insert(b, Location{Kind: KindModule})

	if idx.Rekey(a, b, Location{Kind: KindSymbol}) {
		t.Fatal("Rekey onto a live UUID must fail")
	}
	if !idx.Contains(a) {
		t.Fatal("failed Rekey must not remove the old UUID")
	}
	got, _ := idx.Lookup(b)
	if got.Kind != KindModule {
		t.Fatal("failed Rekey must not clobber the colliding UUID's entry")
	}
}
