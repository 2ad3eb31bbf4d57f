package ir

import "testing"

func TestByteIntervalSetInitializedSizeGrowsAndZeroFills(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()

	bi.SetContents([]byte{0xAA, 0xBB})
	bi.SetInitializedSize(5)
	size, _ := bi.Size()
	if size != 5 {
		t.Fatalf("Size() = %d, want 5", size)
	}
	got := bi.Contents()
	want := []byte{0xAA, 0xBB, 0, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("Contents() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Contents()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestByteIntervalSetInitializedSizeShrinkTruncatesContentsButKeepsSize(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()

	bi.SetContents([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	bi.SetInitializedSize(10)
	bi.SetInitializedSize(4)

	size, _ := bi.Size()
	if size != 10 {
		t.Fatalf("Size() = %d after shrink, want 10 (size never shrinks)", size)
	}
	got := bi.Contents()
	want := []byte{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Contents() len = %d after shrink, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Contents()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestByteIntervalAddressOptional(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()

	if _, ok := bi.Address(); ok {
		t.Fatal("Address() present before SetAddress")
	}
	bi.SetAddress(0x8000)
	if addr, ok := bi.Address(); !ok || addr != 0x8000 {
		t.Fatalf("Address() = (%v, %v), want (0x8000, true)", addr, ok)
	}
	bi.ClearAddress()
	if _, ok := bi.Address(); ok {
		t.Fatal("Address() present after ClearAddress")
	}
}

func TestCodeBlockAddressDerivesFromByteInterval(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()
	cb, _ := bi.AddCodeBlock(0x10, 4, DecodeModeDefault)

	if _, ok := cb.Address(); ok {
		t.Fatal("CodeBlock.Address() present before ByteInterval is addressed")
	}
	bi.SetAddress(0x1000)
	addr, ok := cb.Address()
	if !ok || addr != 0x1010 {
		t.Fatalf("CodeBlock.Address() = (%v, %v), want (0x1010, true)", addr, ok)
	}
}

func TestSymbolicExpressionOffsetAccessors(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()
	sym, _ := m.AddSymbol("target")

	bi.SetSymbolicExpressionAt(4, SymbolicExpression{Addend: 8})
	if _, ok := bi.SymbolicExpressionAt(0); ok {
		t.Fatal("SymbolicExpressionAt(0) present before being set")
	}
	got, ok := bi.SymbolicExpressionAt(4)
	if !ok || got.Addend != 8 {
		t.Fatalf("SymbolicExpressionAt(4) = (%+v, %v), want addend 8", got, ok)
	}
	bi.RemoveSymbolicExpressionAt(4)
	if _, ok := bi.SymbolicExpressionAt(4); ok {
		t.Fatal("SymbolicExpressionAt(4) present after removal")
	}
	_ = sym
}
