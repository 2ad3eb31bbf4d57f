package ir

// ir.go implements the IR node kind: the graph's root, spec.md §4.7 ("IR —
// version (unsigned 32-bit, default 1). Root node, no parent."). Grounded on
// original_source/ir.rs's IRData/IR split (a plain attribute record plus a
// cheap (Key, Context) handle) and its find_node/modules/add_module API.
//
// © 2025 bingraph authors. MIT License.

import (
	"iter"

	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

type irData struct {
	uuid          uuid.UUID
	version       uint32
	modules       []arena.Key
	unknownFields [][]byte
}

// IR is a handle to the root node of one binary-analysis graph.
type IR struct {
	key arena.Key
	ctx *Context
}

// NewIR constructs an empty Context and its root IR record in one step:
// version 1, no modules, a fresh UUID.
func NewIR(opts ...Option) IR {
	ctx := newContext(opts)
	key := ctx.irs.Insert(irData{uuid: uuid.New(), version: 1})
	ctx.index.Insert(ctx.irs.Get(key).uuid, location(KindIR, key))
	ctx.metrics.incInserted(KindIR)
	ctx.metrics.setLive(KindIR, ctx.irs.Len())
	return IR{key: key, ctx: ctx}
}

func location(kind Kind, key arena.Key) locationValue {
	return locationValue{Kind: kind, Key: key}
}

// Context returns the Context that owns this IR's storage.
func (n IR) Context() *Context { return n.ctx }

// Valid reports whether this handle still resolves to a live node.
func (n IR) Valid() bool { return n.ctx != nil && n.ctx.irs.Contains(n.key) }

func (n IR) data() *irData {
	d := n.ctx.irs.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "IR handle used after removal; callers must check Valid() first"})
	}
	return d
}

// UUID returns the node's identifier.
func (n IR) UUID() uuid.UUID {
	n.ctx.acquire(KindIR, n.key)
	defer n.ctx.release(KindIR, n.key)
	return n.data().uuid
}

// SetUUID changes the node's identifier, failing DuplicateUuid if another
// live node already has it.
func (n IR) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindIR, n.key)
	defer n.ctx.release(KindIR, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindIR, n.key)) {
		return newError(KindDuplicateUuid, "IR.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// Version returns the IR format version (default 1 for a freshly-built IR).
func (n IR) Version() uint32 {
	n.ctx.acquire(KindIR, n.key)
	defer n.ctx.release(KindIR, n.key)
	return n.data().version
}

// SetVersion overwrites the IR format version.
func (n IR) SetVersion(v uint32) {
	n.ctx.acquire(KindIR, n.key)
	defer n.ctx.release(KindIR, n.key)
	n.data().version = v
}

// Modules returns a lazy, snapshot-at-start sequence over direct child
// Modules in insertion order.
func (n IR) Modules() iter.Seq[Module] {
	return children(n.data().modules, func(k arena.Key) Module {
		return Module{key: k, ctx: n.ctx}
	})
}

// AddModule allocates a new Module named name as a child of this IR.
func (n IR) AddModule(name string) (Module, error) {
	d := n.data()
	id := uuid.New()
	md := moduleData{uuid: id, name: name, parent: n.key}
	key, err := linkChild(n.ctx.index, n.ctx.modules, KindModule, id, md, n.key, &d.modules,
		func(rec *moduleData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return Module{}, wrapError(KindDuplicateUuid, "IR.AddModule", id, err)
	}
	n.ctx.metrics.incInserted(KindModule)
	n.ctx.metrics.setLive(KindModule, n.ctx.modules.Len())
	return Module{key: key, ctx: n.ctx}, nil
}

// RemoveModule detaches module from this IR and cascades removal through
// every descendant (spec.md §4.5's post-order cascade).
func (n IR) RemoveModule(module Module) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.modules, &d.modules, module.key,
		func(rec *moduleData) uuid.UUID { return rec.uuid },
		func(rec *moduleData) { cascadeRemoveModule(n.ctx, rec) })
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindModule)
	n.ctx.metrics.setLive(KindModule, n.ctx.modules.Len())
	return nil
}

// FindModule looks up a live Module by UUID anywhere in this Context.
func FindModule(ctx *Context, id uuid.UUID) (Module, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindModule {
		return Module{}, false
	}
	h := Module{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded, preserved verbatim for re-encoding.
func (n IR) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n IR) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindIR)
}

// Exists reports whether any live node in ctx carries UUID id — the
// kind-agnostic counterpart of FindModule/FindSection/... used by tests that
// only need to assert absence after a cascade removal.
func (c *Context) Exists(id uuid.UUID) bool {
	return c.index.Contains(id)
}
