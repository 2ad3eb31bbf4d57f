package main

// irgen.go is a tiny helper utility to generate deterministic synthetic IR
// files for standalone benchmarking of bingraph (outside `go test`).
// Adapted from tools/dataset_gen/dataset_gen.go: instead of emitting
// newline-separated uint64 cache keys, it builds an IR with configurable
// module/section/byte-interval/block counts and encodes it with
// pkg/codec.Encode, for use as a reproducible fixture in standalone
// benchmarks and manual cmd/bingraph-inspect smoke tests (bench/bench_test.go
// builds its own IR in memory and does not read these files).
//
// Usage:
//   go run tools/irgen/irgen.go -modules 4 -sections 8 -blocks 64 -seed 42 -out fixture.bgir
//
// Flags:
//   -modules  number of Modules to generate (default 1)
//   -sections number of Sections per Module (default 4)
//   -blocks   number of CodeBlocks per ByteInterval (default 16)
//   -size     bytes per ByteInterval (default 4096)
//   -seed     RNG seed (default current time)
//   -out      output file (default stdout is not supported; required)
//
// © 2025 bingraph authors. MIT License.

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Voskan/bingraph/pkg/codec"
	"github.com/Voskan/bingraph/pkg/ir"
)

func main() {
	var (
		numModules  = flag.Int("modules", 1, "number of Modules to generate")
		numSections = flag.Int("sections", 4, "number of Sections per Module")
		numBlocks   = flag.Int("blocks", 16, "number of CodeBlocks per ByteInterval")
		biSize      = flag.Uint64("size", 4096, "bytes per ByteInterval")
		seedVal     = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath     = flag.String("out", "", "output file (required)")
	)
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "irgen: -out is required")
		os.Exit(2)
	}

	rnd := rand.New(rand.NewSource(*seedVal))
	root := generate(rnd, *numModules, *numSections, *numBlocks, *biSize)

	data, err := codec.Encode(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "irgen: encode:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "irgen: write:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(data), *outPath)
}

func generate(rnd *rand.Rand, numModules, numSections, numBlocks int, biSize uint64) ir.IR {
	root := ir.NewIR()
	for mi := 0; mi < numModules; mi++ {
		m, err := root.AddModule(fmt.Sprintf("module-%d", mi))
		if err != nil {
			continue
		}
		m.SetISA(ir.ISAX64)
		m.SetByteOrder(ir.ByteOrderLittleEndian)
		m.SetFileFormat(ir.FileFormatELF)
		m.SetPreferredAddress(ir.Addr(0x400000))

		for si := 0; si < numSections; si++ {
			sec, err := m.AddSection(fmt.Sprintf(".sec%d", si))
			if err != nil {
				continue
			}
			sec.SetFlag(ir.SectionFlagLoaded)
			sec.SetFlag(ir.SectionFlagReadable)

			bi, err := sec.AddByteInterval()
			if err != nil {
				continue
			}
			bi.SetAddress(ir.Addr(0x400000 + uint64(si)*biSize))
			bi.SetInitializedSize(biSize)
			contents := make([]byte, biSize)
			rnd.Read(contents)
			bi.SetContents(contents)

			blockSize := biSize / uint64(numBlocks+1)
			for bi2 := 0; bi2 < numBlocks; bi2++ {
				off := uint64(bi2) * blockSize
				if _, err := bi.AddCodeBlock(off, blockSize, ir.DecodeModeDefault); err != nil {
					continue
				}
			}
		}
	}
	return root
}
