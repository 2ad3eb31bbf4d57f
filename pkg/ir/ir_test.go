package ir

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewIRHasVersionOneAndFreshUUID(t *testing.T) {
	root := NewIR()
	if root.Version() != 1 {
		t.Fatalf("Version() = %d, want 1", root.Version())
	}
	if root.UUID() == uuid.Nil {
		t.Fatal("UUID() is nil, want a generated UUID")
	}
	if !root.Valid() {
		t.Fatal("Valid() = false for freshly-built IR")
	}
}

func TestAddModuleLinksParentAndChild(t *testing.T) {
	root := NewIR()
	m, err := root.AddModule("a.out")
	if err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if m.Name() != "a.out" {
		t.Fatalf("Name() = %q, want a.out", m.Name())
	}
	if got := m.IR().UUID(); got != root.UUID() {
		t.Fatalf("Module.IR().UUID() = %v, want %v", got, root.UUID())
	}

	found := false
	for mm := range root.Modules() {
		if mm.UUID() == m.UUID() {
			found = true
		}
	}
	if !found {
		t.Fatal("new Module not visible via IR.Modules()")
	}
}

func TestSetUUIDRejectsDuplicate(t *testing.T) {
	root := NewIR()
	m1, _ := root.AddModule("m1")
	m2, _ := root.AddModule("m2")

	err := m2.SetUUID(m1.UUID())
	if !errors.Is(err, ErrDuplicateUuid) {
		t.Fatalf("SetUUID collision: got %v, want ErrDuplicateUuid", err)
	}
	// m2 must be unaffected by the failed rekey.
	if m2.UUID() == m1.UUID() {
		t.Fatal("m2's UUID changed despite rejected SetUUID")
	}
}

func TestRemoveModuleCascadesThroughDescendants(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()
	cb, _ := bi.AddCodeBlock(0, 16, DecodeModeDefault)
	db, _ := bi.AddDataBlock(16, 8)
	pb, _ := m.AddProxyBlock()
	sym, _ := m.AddSymbol("main")

	ctx := root.Context()
	ids := []uuid.UUID{m.UUID(), sec.UUID(), bi.UUID(), cb.UUID(), db.UUID(), pb.UUID(), sym.UUID()}

	if err := root.RemoveModule(m); err != nil {
		t.Fatalf("RemoveModule: %v", err)
	}

	for _, id := range ids {
		if ctx.Exists(id) {
			t.Fatalf("node %v still exists after cascade removal", id)
		}
	}
	if m.Valid() {
		t.Fatal("Module.Valid() = true after removal")
	}

	found := false
	for range root.Modules() {
		found = true
	}
	if found {
		t.Fatal("IR.Modules() still yields the removed Module")
	}
}

func TestRemoveModuleWrongParentRejected(t *testing.T) {
	root1 := NewIR()
	root2 := NewIR()
	m, _ := root2.AddModule("m")

	err := root1.RemoveModule(m)
	if !errors.Is(err, ErrWrongParent) {
		t.Fatalf("RemoveModule across IRs: got %v, want ErrWrongParent", err)
	}
}

func TestFindModuleAcrossContext(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")

	found, ok := FindModule(root.Context(), m.UUID())
	if !ok {
		t.Fatal("FindModule: not found")
	}
	if found.UUID() != m.UUID() {
		t.Fatalf("FindModule returned wrong node")
	}

	if _, ok := FindModule(root.Context(), uuid.New()); ok {
		t.Fatal("FindModule found a node for an unused UUID")
	}
}

func TestModulesIterationSnapshotsAtStart(t *testing.T) {
	root := NewIR()
	root.AddModule("m1")
	root.AddModule("m2")

	count := 0
	for range root.Modules() {
		root.AddModule("added-during-iteration")
		count++
	}
	if count != 2 {
		t.Fatalf("iteration saw %d modules, want 2 (snapshot at start)", count)
	}
}

func TestAccessorPanicsOnRemovedHandle(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	root.RemoveModule(m)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic calling UUID() on a removed handle")
		}
		if _, ok := r.(ProgrammingError); !ok {
			t.Fatalf("panic value is %T, want ProgrammingError", r)
		}
	}()
	_ = m.UUID()
}
