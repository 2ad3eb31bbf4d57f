package ir

// symbol.go implements the Symbol node kind: a name bound either to a fixed
// address or to another node's UUID (a CodeBlock, DataBlock, or ProxyBlock),
// exactly one at a time. Grounded on original_source/symbol.rs's
// Symbol::Value enum (Address(Addr) | Referent(Uuid)), reworked as a small
// closed PayloadKind + value struct since Go has no tagged-union sum types.
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

// PayloadKind tags what, if anything, a Symbol is bound to.
type PayloadKind uint8

const (
	// PayloadNone is a Symbol with no binding yet (spec.md §4.7 permits this
	// as the initial state after AddSymbol).
	PayloadNone PayloadKind = iota
	// PayloadAddress binds the Symbol directly to a fixed Addr.
	PayloadAddress
	// PayloadReferent binds the Symbol to another node's UUID — a soft
	// cross-reference, same dangling-on-removal policy as Module.EntryPoint.
	PayloadReferent
)

// Payload is a Symbol's value: exactly one of unset, a fixed address, or a
// referent UUID, selected by Kind.
type Payload struct {
	Kind     PayloadKind
	Address  Addr
	Referent uuid.UUID
}

type symbolData struct {
	parent arena.Key

	uuid    uuid.UUID
	name    string
	payload Payload

	unknownFields [][]byte
}

// Symbol is a handle to a named binding owned by a Module.
type Symbol struct {
	key arena.Key
	ctx *Context
}

func (n Symbol) Context() *Context { return n.ctx }
func (n Symbol) Valid() bool       { return n.ctx != nil && n.ctx.symbols.Contains(n.key) }

func (n Symbol) data() *symbolData {
	d := n.ctx.symbols.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "Symbol handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n Symbol) UUID() uuid.UUID {
	n.ctx.acquire(KindSymbol, n.key)
	defer n.ctx.release(KindSymbol, n.key)
	return n.data().uuid
}

func (n Symbol) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindSymbol, n.key)
	defer n.ctx.release(KindSymbol, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindSymbol, n.key)) {
		return newError(KindDuplicateUuid, "Symbol.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// Module returns the parent Module of this Symbol.
func (n Symbol) Module() Module {
	return Module{key: n.data().parent, ctx: n.ctx}
}

func (n Symbol) Name() string        { return n.data().name }
func (n Symbol) SetName(name string) { n.data().name = name }

// Payload returns the Symbol's current binding.
func (n Symbol) Payload() Payload { return n.data().payload }

// SetAddressPayload binds this Symbol directly to addr, replacing any prior
// binding.
func (n Symbol) SetAddressPayload(addr Addr) {
	n.data().payload = Payload{Kind: PayloadAddress, Address: addr}
}

// SetReferentPayload binds this Symbol to referent's UUID, replacing any
// prior binding. The referent is not required to exist yet or to stay live;
// resolving it is ReferentNode's job.
func (n Symbol) SetReferentPayload(referent uuid.UUID) {
	n.data().payload = Payload{Kind: PayloadReferent, Referent: referent}
}

// ClearPayload unbinds this Symbol back to PayloadNone.
func (n Symbol) ClearPayload() { n.data().payload = Payload{} }

// ReferentNode resolves a PayloadReferent binding to whichever live node
// currently carries that UUID (a CodeBlock, DataBlock, or ProxyBlock), or
// false if the binding is not PayloadReferent or the referent no longer
// resolves.
func (n Symbol) ReferentNode() (any, bool) {
	p := n.data().payload
	if p.Kind != PayloadReferent {
		return nil, false
	}
	loc, ok := n.ctx.index.Lookup(p.Referent)
	if !ok {
		return nil, false
	}
	switch loc.Kind {
	case KindCodeBlock:
		h := CodeBlock{key: loc.Key, ctx: n.ctx}
		return h, h.Valid()
	case KindDataBlock:
		h := DataBlock{key: loc.Key, ctx: n.ctx}
		return h, h.Valid()
	case KindProxyBlock:
		h := ProxyBlock{key: loc.Key, ctx: n.ctx}
		return h, h.Valid()
	default:
		return nil, false
	}
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n Symbol) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n Symbol) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindSymbol)
}

// FindSymbol looks up a live Symbol by UUID anywhere in ctx.
func FindSymbol(ctx *Context, id uuid.UUID) (Symbol, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindSymbol {
		return Symbol{}, false
	}
	h := Symbol{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}
