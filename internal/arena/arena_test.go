package arena

import "testing"

func TestInsertGetRemove(t *testing.T) {
	a := New[string]()

	k1 := a.Insert("first")
	k2 := a.Insert("second")

	if got := a.Get(k1); got == nil || *got != "first" {
		t.Fatalf("Get(k1) = %v, want first", got)
	}
	if got := a.Get(k2); got == nil || *got != "second" {
		t.Fatalf("Get(k2) = %v, want second", got)
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}

	v, ok := a.Remove(k1)
	if !ok || v != "first" {
		t.Fatalf("Remove(k1) = (%q, %v), want (first, true)", v, ok)
	}
	if a.Contains(k1) {
		t.Fatal("k1 should not resolve after removal")
	}
	if a.Get(k1) != nil {
		t.Fatal("Get(k1) should be nil after removal")
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}
}

func TestGenerationGuardPreventsStaleKeyReuse(t *testing.T) {
	a := New[int]()

	k1 := a.Insert(1)
	if _, ok := a.Remove(k1); !ok {
		t.Fatal("expected removal of k1 to succeed")
	}

	k2 := a.Insert(2) // reuses k1's freed slot index

	if a.Contains(k1) {
		t.Fatal("stale key k1 must not resolve to the new occupant")
	}
	if got := a.Get(k2); got == nil || *got != 2 {
		t.Fatalf("Get(k2) = %v, want 2", got)
	}
}

func TestOtherMutationsDoNotInvalidateKeys(t *testing.T) {
	a := New[int]()
	k1 := a.Insert(10)
	for i := 0; i < 100; i++ {
		a.Insert(i)
	}
	if got := a.Get(k1); got == nil || *got != 10 {
		t.Fatalf("k1 invalidated by unrelated inserts: got %v", got)
	}
}

func TestZeroKeyNeverResolves(t *testing.T) {
	a := New[int]()
	var zero Key
	if zero.Valid() {
		t.Fatal("zero Key must be invalid")
	}
	if a.Contains(zero) {
		t.Fatal("zero Key must never resolve, even in a fresh arena")
	}
}

func TestIterVisitsAllLiveEntriesExactlyOnce(t *testing.T) {
	a := New[int]()
	keys := make([]Key, 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, a.Insert(i))
	}
	a.Remove(keys[2])

	seen := map[Key]int{}
	a.Iter(func(k Key, v *int) {
		seen[k] = *v
	})
	if len(seen) != 4 {
		t.Fatalf("Iter visited %d entries, want 4", len(seen))
	}
	if _, ok := seen[keys[2]]; ok {
		t.Fatal("Iter visited a removed key")
	}
}
