package ir

// codeblock.go implements the CodeBlock node kind: an offset+size region of
// executable code within a ByteInterval, plus its decode mode. Grounded on
// original_source/code_block.rs's offset/size/decode_mode fields and its
// address() helper (parent interval's address + own offset).
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

// DecodeMode selects the instruction-decoding mode for a CodeBlock. The two
// members cover the one architecture family (ARM/Thumb interworking) where
// decode mode is not implied by the Module's ISA alone.
type DecodeMode uint8

const (
	DecodeModeDefault DecodeMode = iota
	DecodeModeThumb
)

type codeBlockData struct {
	parent arena.Key

	uuid       uuid.UUID
	offset     uint64
	size       uint64
	decodeMode DecodeMode

	unknownFields [][]byte
}

// CodeBlock is a handle to an executable-code region within a ByteInterval.
type CodeBlock struct {
	key arena.Key
	ctx *Context
}

func (n CodeBlock) Context() *Context { return n.ctx }
func (n CodeBlock) Valid() bool       { return n.ctx != nil && n.ctx.codeBlocks.Contains(n.key) }

func (n CodeBlock) data() *codeBlockData {
	d := n.ctx.codeBlocks.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "CodeBlock handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n CodeBlock) UUID() uuid.UUID {
	n.ctx.acquire(KindCodeBlock, n.key)
	defer n.ctx.release(KindCodeBlock, n.key)
	return n.data().uuid
}

func (n CodeBlock) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindCodeBlock, n.key)
	defer n.ctx.release(KindCodeBlock, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindCodeBlock, n.key)) {
		return newError(KindDuplicateUuid, "CodeBlock.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// ByteInterval returns the parent ByteInterval of this CodeBlock.
func (n CodeBlock) ByteInterval() ByteInterval {
	return ByteInterval{key: n.data().parent, ctx: n.ctx}
}

func (n CodeBlock) Offset() uint64      { return n.data().offset }
func (n CodeBlock) SetOffset(off uint64) { n.data().offset = off }
func (n CodeBlock) Size() uint64        { return n.data().size }
func (n CodeBlock) SetSize(size uint64) { n.data().size = size }

func (n CodeBlock) DecodeMode() DecodeMode     { return n.data().decodeMode }
func (n CodeBlock) SetDecodeMode(m DecodeMode) { n.data().decodeMode = m }

// Address is the ByteInterval's address plus this block's offset, absent if
// the ByteInterval itself has no address.
func (n CodeBlock) Address() (Addr, bool) {
	base, ok := n.ByteInterval().Address()
	if !ok {
		return 0, false
	}
	return base.Add(Addr(n.data().offset)), true
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n CodeBlock) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n CodeBlock) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindCodeBlock)
}
