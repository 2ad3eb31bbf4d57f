package ir

// datablock.go implements the DataBlock node kind: an offset+size region of
// non-executable data within a ByteInterval. Grounded on
// original_source/data_block.rs's offset/size fields and address() helper.
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

type dataBlockData struct {
	parent arena.Key

	uuid   uuid.UUID
	offset uint64
	size   uint64

	unknownFields [][]byte
}

// DataBlock is a handle to a non-executable data region within a
// ByteInterval.
type DataBlock struct {
	key arena.Key
	ctx *Context
}

func (n DataBlock) Context() *Context { return n.ctx }
func (n DataBlock) Valid() bool       { return n.ctx != nil && n.ctx.dataBlocks.Contains(n.key) }

func (n DataBlock) data() *dataBlockData {
	d := n.ctx.dataBlocks.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "DataBlock handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n DataBlock) UUID() uuid.UUID {
	n.ctx.acquire(KindDataBlock, n.key)
	defer n.ctx.release(KindDataBlock, n.key)
	return n.data().uuid
}

func (n DataBlock) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindDataBlock, n.key)
	defer n.ctx.release(KindDataBlock, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindDataBlock, n.key)) {
		return newError(KindDuplicateUuid, "DataBlock.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// ByteInterval returns the parent ByteInterval of this DataBlock.
func (n DataBlock) ByteInterval() ByteInterval {
	return ByteInterval{key: n.data().parent, ctx: n.ctx}
}

func (n DataBlock) Offset() uint64       { return n.data().offset }
func (n DataBlock) SetOffset(off uint64) { n.data().offset = off }
func (n DataBlock) Size() uint64         { return n.data().size }
func (n DataBlock) SetSize(size uint64)  { n.data().size = size }

// Address is the ByteInterval's address plus this block's offset, absent if
// the ByteInterval itself has no address.
func (n DataBlock) Address() (Addr, bool) {
	base, ok := n.ByteInterval().Address()
	if !ok {
		return 0, false
	}
	return base.Add(Addr(n.data().offset)), true
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n DataBlock) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n DataBlock) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindDataBlock)
}
