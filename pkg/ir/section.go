package ir

// section.go implements the Section node kind: spec.md §4.7's name plus a
// set of closed SectionFlag values, containing ByteIntervals. Grounded on
// original_source/section.rs's name/flags/byte_intervals and the flag bitset
// it keeps (Loaded, Initialized, ThreadLocal, Readable, Writable, Executable).
//
// © 2025 bingraph authors. MIT License.

import (
	"iter"

	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

// SectionFlag is one bit of a Section's closed flag set.
type SectionFlag uint8

const (
	SectionFlagLoaded SectionFlag = iota
	SectionFlagInitialized
	SectionFlagThreadLocal
	SectionFlagReadable
	SectionFlagWritable
	SectionFlagExecutable
)

type sectionData struct {
	parent arena.Key

	uuid  uuid.UUID
	name  string
	flags map[SectionFlag]struct{}

	byteIntervals []arena.Key

	unknownFields [][]byte
}

// Section is a handle to a named region of a Module, e.g. ".text" or ".data".
type Section struct {
	key arena.Key
	ctx *Context
}

func (n Section) Context() *Context { return n.ctx }
func (n Section) Valid() bool       { return n.ctx != nil && n.ctx.sections.Contains(n.key) }

func (n Section) data() *sectionData {
	d := n.ctx.sections.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "Section handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n Section) UUID() uuid.UUID {
	n.ctx.acquire(KindSection, n.key)
	defer n.ctx.release(KindSection, n.key)
	return n.data().uuid
}

func (n Section) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindSection, n.key)
	defer n.ctx.release(KindSection, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindSection, n.key)) {
		return newError(KindDuplicateUuid, "Section.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// Module returns the parent Module of this Section.
func (n Section) Module() Module {
	return Module{key: n.data().parent, ctx: n.ctx}
}

func (n Section) Name() string        { return n.data().name }
func (n Section) SetName(name string) { n.data().name = name }

// HasFlag reports whether f is set on this Section.
func (n Section) HasFlag(f SectionFlag) bool {
	_, ok := n.data().flags[f]
	return ok
}

// SetFlag adds f to this Section's flag set.
func (n Section) SetFlag(f SectionFlag) { n.data().flags[f] = struct{}{} }

// ClearFlag removes f from this Section's flag set.
func (n Section) ClearFlag(f SectionFlag) { delete(n.data().flags, f) }

// Flags returns the currently-set flags in no particular order.
func (n Section) Flags() []SectionFlag {
	d := n.data()
	out := make([]SectionFlag, 0, len(d.flags))
	for f := range d.flags {
		out = append(out, f)
	}
	return out
}

// ByteIntervals returns a lazy sequence over direct child ByteIntervals.
func (n Section) ByteIntervals() iter.Seq[ByteInterval] {
	return children(n.data().byteIntervals, func(k arena.Key) ByteInterval {
		return ByteInterval{key: k, ctx: n.ctx}
	})
}

// AddByteInterval allocates a new, zero-length, unaddressed ByteInterval as a
// child of this Section.
func (n Section) AddByteInterval() (ByteInterval, error) {
	d := n.data()
	id := uuid.New()
	bd := byteIntervalData{uuid: id, parent: n.key, symbolicExprs: make(map[uint64]SymbolicExpression)}
	key, err := linkChild(n.ctx.index, n.ctx.byteIntervals, KindByteInterval, id, bd, n.key, &d.byteIntervals,
		func(rec *byteIntervalData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return ByteInterval{}, err
	}
	n.ctx.metrics.incInserted(KindByteInterval)
	n.ctx.metrics.setLive(KindByteInterval, n.ctx.byteIntervals.Len())
	return ByteInterval{key: key, ctx: n.ctx}, nil
}

// RemoveByteInterval detaches bi and cascades through its CodeBlocks and
// DataBlocks.
func (n Section) RemoveByteInterval(bi ByteInterval) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.byteIntervals, &d.byteIntervals, bi.key,
		func(rec *byteIntervalData) uuid.UUID { return rec.uuid },
		func(rec *byteIntervalData) { cascadeRemoveByteInterval(n.ctx, rec) })
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindByteInterval)
	n.ctx.metrics.setLive(KindByteInterval, n.ctx.byteIntervals.Len())
	return nil
}

// CodeBlocks flattens this Section's ByteIntervals -> CodeBlocks.
func (n Section) CodeBlocks() iter.Seq[CodeBlock] {
	return flatten(n.ByteIntervals(), ByteInterval.CodeBlocks)
}

// DataBlocks flattens this Section's ByteIntervals -> DataBlocks.
func (n Section) DataBlocks() iter.Seq[DataBlock] {
	return flatten(n.ByteIntervals(), ByteInterval.DataBlocks)
}

// Address is the minimum address among this Section's ByteIntervals, absent
// if any is unaddressed.
func (n Section) Address() (Addr, bool) {
	return aggregateAddress(n.ByteIntervals(), ByteInterval.Address)
}

// Size is the address+size envelope of this Section's ByteIntervals, absent
// under the same rule as Address.
func (n Section) Size() (uint64, bool) {
	return aggregateSize(n.ByteIntervals(), ByteInterval.Address, ByteInterval.Size)
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n Section) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n Section) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindSection)
}

// FindByteInterval looks up a live ByteInterval by UUID anywhere in ctx.
func FindByteInterval(ctx *Context, id uuid.UUID) (ByteInterval, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindByteInterval {
		return ByteInterval{}, false
	}
	h := ByteInterval{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}

// cascadeRemoveSection removes every ByteInterval owned by a Section record
// being deleted, and their own descendants in turn.
func cascadeRemoveSection(ctx *Context, s *sectionData) {
	for _, k := range s.byteIntervals {
		rec, ok := ctx.byteIntervals.Remove(k)
		if !ok {
			continue
		}
		cascadeRemoveByteInterval(ctx, &rec)
		ctx.index.Remove(rec.uuid)
	}
}
