package ir

import "testing"

func TestSectionFlagsSetClearQuery(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")

	if sec.HasFlag(SectionFlagExecutable) {
		t.Fatal("HasFlag true before SetFlag")
	}
	sec.SetFlag(SectionFlagExecutable)
	sec.SetFlag(SectionFlagReadable)
	if !sec.HasFlag(SectionFlagExecutable) || !sec.HasFlag(SectionFlagReadable) {
		t.Fatal("HasFlag false after SetFlag")
	}
	sec.ClearFlag(SectionFlagReadable)
	if sec.HasFlag(SectionFlagReadable) {
		t.Fatal("HasFlag true after ClearFlag")
	}
	if len(sec.Flags()) != 1 {
		t.Fatalf("Flags() len = %d, want 1", len(sec.Flags()))
	}
}

func TestSectionCodeBlocksAndDataBlocksFlattenAcrossByteIntervals(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")

	bi1, _ := sec.AddByteInterval()
	bi1.AddCodeBlock(0, 4, DecodeModeDefault)
	bi1.AddDataBlock(4, 4)

	bi2, _ := sec.AddByteInterval()
	bi2.AddCodeBlock(0, 8, DecodeModeThumb)

	var codeCount, dataCount int
	for range sec.CodeBlocks() {
		codeCount++
	}
	for range sec.DataBlocks() {
		dataCount++
	}
	if codeCount != 2 {
		t.Fatalf("CodeBlocks() count = %d, want 2", codeCount)
	}
	if dataCount != 1 {
		t.Fatalf("DataBlocks() count = %d, want 1", dataCount)
	}
}

func TestRemoveByteIntervalCascadesBlocks(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	sec, _ := m.AddSection(".text")
	bi, _ := sec.AddByteInterval()
	cb, _ := bi.AddCodeBlock(0, 4, DecodeModeDefault)
	db, _ := bi.AddDataBlock(4, 4)
	cbID, dbID := cb.UUID(), db.UUID()

	if err := sec.RemoveByteInterval(bi); err != nil {
		t.Fatalf("RemoveByteInterval: %v", err)
	}
	ctx := root.Context()
	if ctx.Exists(cbID) || ctx.Exists(dbID) {
		t.Fatal("blocks survived their ByteInterval's removal")
	}
}
