package ir

// byteinterval.go implements the ByteInterval node kind: spec.md §4.7's
// optional address, initialized size with the "grow, never shrink, zero-fill
// on grow" contract, raw contents, and the offset-keyed SymbolicExpression
// map. Grounded on original_source/byte_interval.rs's Address/Size handling
// and its BTreeMap<u64, SymbolicExpression> field, simplified to a plain Go
// map since ordered iteration over symbolic expressions is not required.
//
// © 2025 bingraph authors. MIT License.

import (
	"iter"
	"sort"

	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

type byteIntervalData struct {
	parent arena.Key

	uuid         uuid.UUID
	address      Addr
	hasAddress   bool
	size         uint64 // initialized size; may exceed len(contents)
	contents     []byte
	symbolicExprs map[uint64]SymbolicExpression

	codeBlocks []arena.Key
	dataBlocks []arena.Key

	unknownFields [][]byte
}

// ByteInterval is a handle to a contiguous run of raw bytes, optionally
// addressed, owned by a Section.
type ByteInterval struct {
	key arena.Key
	ctx *Context
}

func (n ByteInterval) Context() *Context { return n.ctx }
func (n ByteInterval) Valid() bool       { return n.ctx != nil && n.ctx.byteIntervals.Contains(n.key) }

func (n ByteInterval) data() *byteIntervalData {
	d := n.ctx.byteIntervals.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "ByteInterval handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n ByteInterval) UUID() uuid.UUID {
	n.ctx.acquire(KindByteInterval, n.key)
	defer n.ctx.release(KindByteInterval, n.key)
	return n.data().uuid
}

func (n ByteInterval) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindByteInterval, n.key)
	defer n.ctx.release(KindByteInterval, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindByteInterval, n.key)) {
		return newError(KindDuplicateUuid, "ByteInterval.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// Section returns the parent Section of this ByteInterval.
func (n ByteInterval) Section() Section {
	return Section{key: n.data().parent, ctx: n.ctx}
}

// Address returns the interval's load address, if one has been set.
func (n ByteInterval) Address() (Addr, bool) {
	d := n.data()
	return d.address, d.hasAddress
}

// SetAddress assigns a as this interval's load address.
func (n ByteInterval) SetAddress(a Addr) {
	d := n.data()
	d.address, d.hasAddress = a, true
}

// ClearAddress removes this interval's load address entirely.
func (n ByteInterval) ClearAddress() {
	d := n.data()
	d.address, d.hasAddress = 0, false
}

// Size returns the interval's initialized size in bytes.
func (n ByteInterval) Size() (uint64, bool) { return n.data().size, true }

// SetInitializedSize resizes contents to exactly n bytes, zero-filling any
// newly-covered bytes, and grows size to n if n is larger; with n smaller
// than size, contents is truncated to n but size itself is left unchanged
// (spec.md §4.7/§8: size only ever grows, contents always ends up exactly n
// bytes long).
func (n ByteInterval) SetInitializedSize(size uint64) {
	d := n.data()
	resized := make([]byte, size)
	copy(resized, d.contents)
	d.contents = resized
	if size > d.size {
		d.size = size
	}
}

// Contents returns the raw bytes backing this interval. The returned slice
// aliases internal storage; callers must not retain it past the next mutating
// call.
func (n ByteInterval) Contents() []byte { return n.data().contents }

// SetContents replaces the interval's raw bytes and, if they are longer than
// the current initialized size, grows the size to match.
func (n ByteInterval) SetContents(b []byte) {
	d := n.data()
	d.contents = append([]byte(nil), b...)
	if uint64(len(d.contents)) > d.size {
		d.size = uint64(len(d.contents))
	}
}

// SymbolicExpressionAt returns the SymbolicExpression recorded at byte offset
// off within this interval, if any.
func (n ByteInterval) SymbolicExpressionAt(off uint64) (SymbolicExpression, bool) {
	se, ok := n.data().symbolicExprs[off]
	return se, ok
}

// SetSymbolicExpressionAt records se at byte offset off, overwriting any
// value already there.
func (n ByteInterval) SetSymbolicExpressionAt(off uint64, se SymbolicExpression) {
	n.data().symbolicExprs[off] = se
}

// RemoveSymbolicExpressionAt deletes any SymbolicExpression recorded at off.
func (n ByteInterval) RemoveSymbolicExpressionAt(off uint64) {
	delete(n.data().symbolicExprs, off)
}

// SymbolicExpressionOffsets returns the offsets with a recorded
// SymbolicExpression, sorted ascending.
func (n ByteInterval) SymbolicExpressionOffsets() []uint64 {
	d := n.data()
	out := make([]uint64, 0, len(d.symbolicExprs))
	for off := range d.symbolicExprs {
		out = append(out, off)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CodeBlocks returns a lazy sequence over direct child CodeBlocks.
func (n ByteInterval) CodeBlocks() iter.Seq[CodeBlock] {
	return children(n.data().codeBlocks, func(k arena.Key) CodeBlock {
		return CodeBlock{key: k, ctx: n.ctx}
	})
}

// AddCodeBlock allocates a new CodeBlock at byte offset off, size bytes long,
// as a child of this interval.
func (n ByteInterval) AddCodeBlock(off, size uint64, mode DecodeMode) (CodeBlock, error) {
	d := n.data()
	id := uuid.New()
	cd := codeBlockData{uuid: id, parent: n.key, offset: off, size: size, decodeMode: mode}
	key, err := linkChild(n.ctx.index, n.ctx.codeBlocks, KindCodeBlock, id, cd, n.key, &d.codeBlocks,
		func(rec *codeBlockData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return CodeBlock{}, err
	}
	n.ctx.metrics.incInserted(KindCodeBlock)
	n.ctx.metrics.setLive(KindCodeBlock, n.ctx.codeBlocks.Len())
	return CodeBlock{key: key, ctx: n.ctx}, nil
}

// RemoveCodeBlock detaches block from this interval.
func (n ByteInterval) RemoveCodeBlock(block CodeBlock) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.codeBlocks, &d.codeBlocks, block.key,
		func(rec *codeBlockData) uuid.UUID { return rec.uuid },
		func(rec *codeBlockData) {})
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindCodeBlock)
	n.ctx.metrics.setLive(KindCodeBlock, n.ctx.codeBlocks.Len())
	return nil
}

// DataBlocks returns a lazy sequence over direct child DataBlocks.
func (n ByteInterval) DataBlocks() iter.Seq[DataBlock] {
	return children(n.data().dataBlocks, func(k arena.Key) DataBlock {
		return DataBlock{key: k, ctx: n.ctx}
	})
}

// AddDataBlock allocates a new DataBlock at byte offset off, size bytes long,
// as a child of this interval.
func (n ByteInterval) AddDataBlock(off, size uint64) (DataBlock, error) {
	d := n.data()
	id := uuid.New()
	dd := dataBlockData{uuid: id, parent: n.key, offset: off, size: size}
	key, err := linkChild(n.ctx.index, n.ctx.dataBlocks, KindDataBlock, id, dd, n.key, &d.dataBlocks,
		func(rec *dataBlockData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return DataBlock{}, err
	}
	n.ctx.metrics.incInserted(KindDataBlock)
	n.ctx.metrics.setLive(KindDataBlock, n.ctx.dataBlocks.Len())
	return DataBlock{key: key, ctx: n.ctx}, nil
}

// RemoveDataBlock detaches block from this interval.
func (n ByteInterval) RemoveDataBlock(block DataBlock) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.dataBlocks, &d.dataBlocks, block.key,
		func(rec *dataBlockData) uuid.UUID { return rec.uuid },
		func(rec *dataBlockData) {})
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindDataBlock)
	n.ctx.metrics.setLive(KindDataBlock, n.ctx.dataBlocks.Len())
	return nil
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n ByteInterval) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n ByteInterval) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindByteInterval)
}

// FindCodeBlock looks up a live CodeBlock by UUID anywhere in ctx.
func FindCodeBlock(ctx *Context, id uuid.UUID) (CodeBlock, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindCodeBlock {
		return CodeBlock{}, false
	}
	h := CodeBlock{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}

// FindDataBlock looks up a live DataBlock by UUID anywhere in ctx.
func FindDataBlock(ctx *Context, id uuid.UUID) (DataBlock, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindDataBlock {
		return DataBlock{}, false
	}
	h := DataBlock{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}

// cascadeRemoveByteInterval removes every CodeBlock and DataBlock owned by a
// ByteInterval record being deleted.
func cascadeRemoveByteInterval(ctx *Context, bi *byteIntervalData) {
	for _, k := range bi.codeBlocks {
		rec, ok := ctx.codeBlocks.Remove(k)
		if ok {
			ctx.index.Remove(rec.uuid)
		}
	}
	for _, k := range bi.dataBlocks {
		rec, ok := ctx.dataBlocks.Remove(k)
		if ok {
			ctx.index.Remove(rec.uuid)
		}
	}
}
