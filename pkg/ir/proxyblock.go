package ir

// proxyblock.go implements the ProxyBlock node kind: an opaque placeholder a
// Symbol can refer to when the real referent lives outside this IR (an
// external or unanalyzed function). Grounded on original_source/proxy_block.rs,
// which carries no attributes beyond identity.
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

type proxyBlockData struct {
	parent arena.Key
	uuid   uuid.UUID

	unknownFields [][]byte
}

// ProxyBlock is a handle to an external-referent placeholder owned by a
// Module.
type ProxyBlock struct {
	key arena.Key
	ctx *Context
}

func (n ProxyBlock) Context() *Context { return n.ctx }
func (n ProxyBlock) Valid() bool       { return n.ctx != nil && n.ctx.proxyBlocks.Contains(n.key) }

func (n ProxyBlock) data() *proxyBlockData {
	d := n.ctx.proxyBlocks.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "ProxyBlock handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n ProxyBlock) UUID() uuid.UUID {
	n.ctx.acquire(KindProxyBlock, n.key)
	defer n.ctx.release(KindProxyBlock, n.key)
	return n.data().uuid
}

func (n ProxyBlock) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindProxyBlock, n.key)
	defer n.ctx.release(KindProxyBlock, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindProxyBlock, n.key)) {
		return newError(KindDuplicateUuid, "ProxyBlock.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// Module returns the parent Module of this ProxyBlock.
func (n ProxyBlock) Module() Module {
	return Module{key: n.data().parent, ctx: n.ctx}
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n ProxyBlock) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n ProxyBlock) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindProxyBlock)
}

// FindProxyBlock looks up a live ProxyBlock by UUID anywhere in ctx.
func FindProxyBlock(ctx *Context, id uuid.UUID) (ProxyBlock, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindProxyBlock {
		return ProxyBlock{}, false
	}
	h := ProxyBlock{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}
