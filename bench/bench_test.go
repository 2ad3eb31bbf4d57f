// Package bench provides reproducible micro-benchmarks for bingraph.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// We measure the operations a disassembly pipeline actually does in a tight
// loop:
//   1. BuildIR     — construct-only workload (AddModule/AddSection/...)
//   2. Traverse    — read-only descendant iteration over a built IR
//   3. EncodeIR    — pkg/codec.Encode throughput
//   4. DecodeIR    — pkg/codec.Decode throughput, given pre-encoded bytes
//
// Results are printed in ns/op + alloc/op so CI can diff via benchstat.
//
// NOTE: Unit tests live in pkg/ir and pkg/codec; this file is only for
// performance.
//
// © 2025 bingraph authors. MIT License.
package bench

import (
	"testing"

	"github.com/Voskan/bingraph/pkg/codec"
	"github.com/Voskan/bingraph/pkg/ir"
)

const (
	modules  = 4
	sections = 8
	blocks   = 32
	biSize   = 4096
)

func buildIR() ir.IR {
	root := ir.NewIR()
	for mi := 0; mi < modules; mi++ {
		m, _ := root.AddModule("module")
		m.SetISA(ir.ISAX64)
		for si := 0; si < sections; si++ {
			sec, _ := m.AddSection(".text")
			bi, _ := sec.AddByteInterval()
			bi.SetAddress(ir.Addr(uint64(si) * biSize))
			bi.SetInitializedSize(biSize)
			blockSize := uint64(biSize) / uint64(blocks+1)
			for bi2 := 0; bi2 < blocks; bi2++ {
				_, _ = bi.AddCodeBlock(uint64(bi2)*blockSize, blockSize, ir.DecodeModeDefault)
			}
		}
		_ = mi
	}
	return root
}

func BenchmarkBuildIR(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buildIR()
	}
}

func BenchmarkTraverse(b *testing.B) {
	root := buildIR()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var n int
		for m := range root.Modules() {
			for range m.CodeBlocks() {
				n++
			}
		}
		if n == 0 {
			b.Fatal("traversal visited nothing")
		}
	}
}

func BenchmarkEncodeIR(b *testing.B) {
	root := buildIR()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encode(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeIR(b *testing.B) {
	root := buildIR()
	data, err := codec.Encode(root)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
