// Package ioutil implements the file-I/O collaborator named in spec.md §6:
// thin Read/Write wrappers around pkg/codec and the filesystem, plus a
// concurrent multi-file ReadAll. This is deliberately the only layer in
// bingraph that touches os.ReadFile/os.WriteFile or blocks a goroutine on
// disk — pkg/codec.Decode/Encode themselves never perform I/O, so a caller
// embedding the codec in a different transport (network, archive member)
// never inherits a blocking call it didn't ask for.
//
// © 2025 bingraph authors. MIT License.
package ioutil

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Voskan/bingraph/pkg/codec"
	"github.com/Voskan/bingraph/pkg/ir"
)

// Read loads and decodes the IR stored at path.
func Read(path string, opts ...ir.Option) (ir.IR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.IR{}, &ir.Error{Kind: ir.KindIoError, Op: "ioutil.Read", Err: err}
	}
	root, err := codec.Decode(data, opts...)
	if err != nil {
		return ir.IR{}, err
	}
	return root, nil
}

// Write encodes root and writes it to path, replacing any existing file.
func Write(root ir.IR, path string) error {
	data, err := codec.Encode(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ir.Error{Kind: ir.KindIoError, Op: "ioutil.Write", Err: err}
	}
	return nil
}

// ReadAll loads every path in paths concurrently, one goroutine per path
// under an errgroup.Group, the way the teacher's pkg/loader.go de-duplicates concurrent
// cache loads with golang.org/x/sync/singleflight — here the sibling
// golang.org/x/sync/errgroup package, since there is no cache key to
// de-duplicate on, only a batch of independent files to fan out across. The
// first error encountered cancels ctx and is returned; results preserve the
// input order.
func ReadAll(ctx context.Context, paths []string, opts ...ir.Option) ([]ir.IR, error) {
	results := make([]ir.IR, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			root, err := Read(p, opts...)
			if err != nil {
				return err
			}
			results[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
