package main

// main.go implements the bingraph inspector CLI: it loads one or more IR
// files from local paths and prints a structural summary, either as pretty
// text or JSON. Adapted from cmd/arena-cache-inspect/main.go — that tool
// polled a running process's HTTP debug endpoint for cache statistics; this
// one has no running process to poll, since an IR is a file a disassembly
// pipeline already wrote to disk, so -watch re-reads and re-prints the same
// paths on an interval instead of re-issuing an HTTP request.
//
// © 2025 bingraph authors. MIT License.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Voskan/bingraph/pkg/ioutil"
	"github.com/Voskan/bingraph/pkg/ir"
)

var version = "dev"

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}
	if len(opts.paths) == 0 {
		fmt.Fprintln(os.Stderr, "bingraph-inspect: at least one IR file path is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

func dumpOnce(ctx context.Context, opts *options) error {
	roots, err := ioutil.ReadAll(ctx, opts.paths)
	if err != nil {
		return err
	}

	summaries := make([]irSummary, len(roots))
	for i, root := range roots {
		summaries[i] = summarize(root)
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	for i, s := range summaries {
		printSummary(opts.paths[i], s)
	}
	return nil
}

// irSummary is the structural summary printed per loaded IR file: module
// count, and per-module descendant counts plus address/size when defined.
type irSummary struct {
	UUID    string           `json:"uuid"`
	Version uint32           `json:"version"`
	Modules []moduleSummary  `json:"modules"`
}

type moduleSummary struct {
	Name          string `json:"name"`
	Sections      int    `json:"sections"`
	ByteIntervals int    `json:"byte_intervals"`
	CodeBlocks    int    `json:"code_blocks"`
	DataBlocks    int    `json:"data_blocks"`
	Symbols       int    `json:"symbols"`
	ProxyBlocks   int    `json:"proxy_blocks"`
	Address       string `json:"address,omitempty"`
	Size          uint64 `json:"size,omitempty"`
}

func summarize(root ir.IR) irSummary {
	s := irSummary{UUID: root.UUID().String(), Version: root.Version()}
	for m := range root.Modules() {
		ms := moduleSummary{Name: m.Name(), Symbols: len(collectSymbols(m)), ProxyBlocks: len(collectProxyBlocks(m))}
		for sec := range m.Sections() {
			ms.Sections++
			for bi := range sec.ByteIntervals() {
				ms.ByteIntervals++
				for range bi.CodeBlocks() {
					ms.CodeBlocks++
				}
				for range bi.DataBlocks() {
					ms.DataBlocks++
				}
			}
		}
		if addr, ok := m.Address(); ok {
			ms.Address = addr.String()
		}
		if size, ok := m.Size(); ok {
			ms.Size = size
		}
		s.Modules = append(s.Modules, ms)
	}
	return s
}

func collectSymbols(m ir.Module) []ir.Symbol {
	var out []ir.Symbol
	for sym := range m.Symbols() {
		out = append(out, sym)
	}
	return out
}

func collectProxyBlocks(m ir.Module) []ir.ProxyBlock {
	var out []ir.ProxyBlock
	for pb := range m.ProxyBlocks() {
		out = append(out, pb)
	}
	return out
}

func printSummary(path string, s irSummary) {
	fmt.Printf("%s\n", path)
	fmt.Printf("  uuid:    %s\n", s.UUID)
	fmt.Printf("  version: %d\n", s.Version)
	for _, m := range s.Modules {
		fmt.Printf("  module %q: %d sections, %d byte intervals, %d code blocks, %d data blocks, %d symbols, %d proxy blocks\n",
			m.Name, m.Sections, m.ByteIntervals, m.CodeBlocks, m.DataBlocks, m.Symbols, m.ProxyBlocks)
		if m.Address != "" {
			fmt.Printf("    address: %s  size: %d\n", m.Address, m.Size)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "bingraph-inspect:", err)
	os.Exit(1)
}
