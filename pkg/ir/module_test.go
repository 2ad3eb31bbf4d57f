package ir

import "testing"

func TestModuleEntryPointResolvesLiveReferentOnly(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()
	cb, _ := bi.AddCodeBlock(0, 16, DecodeModeDefault)

	if _, ok := m.EntryPoint(); ok {
		t.Fatal("EntryPoint() present before being set")
	}

	m.SetEntryPoint(cb)
	ep, ok := m.EntryPoint()
	if !ok || ep.UUID() != cb.UUID() {
		t.Fatal("EntryPoint() did not resolve to the CodeBlock just set")
	}

	if err := bi.RemoveCodeBlock(cb); err != nil {
		t.Fatalf("RemoveCodeBlock: %v", err)
	}
	if _, ok := m.EntryPoint(); ok {
		t.Fatal("EntryPoint() still resolves after its referent was removed")
	}
}

func TestModuleIsRelocatedTracksRebaseDelta(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	if m.IsRelocated() {
		t.Fatal("IsRelocated() = true for a fresh Module")
	}
	m.SetRebaseDelta(0x1000)
	if !m.IsRelocated() {
		t.Fatal("IsRelocated() = false after a nonzero rebase delta")
	}
	m.SetRebaseDelta(0)
	if m.IsRelocated() {
		t.Fatal("IsRelocated() = true after rebase delta reset to zero")
	}
}

func TestModuleAddressAbsentWhenAnySectionUnaddressed(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")

	text, _ := m.AddSection(".text")
	biText, _ := text.AddByteInterval()
	biText.SetAddress(0x1000)
	biText.SetInitializedSize(0x100)

	if _, ok := m.Address(); !ok {
		t.Fatal("Address() absent with a single, fully-addressed Section")
	}

	data, _ := m.AddSection(".data")
	data.AddByteInterval() // unaddressed

	if _, ok := m.Address(); ok {
		t.Fatal("Address() should be absent once any descendant ByteInterval lacks an address")
	}
}

func TestModuleAddressAndSizeWhenFullyAddressed(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")

	text, _ := m.AddSection(".text")
	bi1, _ := text.AddByteInterval()
	bi1.SetAddress(0x1000)
	bi1.SetInitializedSize(0x100)

	data, _ := m.AddSection(".data")
	bi2, _ := data.AddByteInterval()
	bi2.SetAddress(0x2000)
	bi2.SetInitializedSize(0x200)

	addr, ok := m.Address()
	if !ok || addr != 0x1000 {
		t.Fatalf("Address() = (%v, %v), want (0x1000, true)", addr, ok)
	}
	size, ok := m.Size()
	if !ok || size != (0x2200-0x1000) {
		t.Fatalf("Size() = (%#x, %v), want (%#x, true)", size, ok, 0x2200-0x1000)
	}
}

func TestRemoveSectionCascadesButLeavesSiblingsIntact(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	keep, _ := m.AddSection(".data")
	drop, _ := m.AddSection(".text")
	bi, _ := drop.AddByteInterval()
	cb, _ := bi.AddCodeBlock(0, 4, DecodeModeDefault)
	cbID := cb.UUID()

	if err := m.RemoveSection(drop); err != nil {
		t.Fatalf("RemoveSection: %v", err)
	}
	if root.Context().Exists(cbID) {
		t.Fatal("CodeBlock survived its Section's removal")
	}
	if !keep.Valid() {
		t.Fatal("sibling Section was invalidated by an unrelated removal")
	}
}
