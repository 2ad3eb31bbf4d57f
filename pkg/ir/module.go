package ir

// module.go implements the Module node kind: spec.md §4.7's name, binary
// path, entry point (soft UUID cross-reference to a CodeBlock), byte-order/
// ISA/file-format enums, preferred address, rebase delta, and the derived
// is_relocated/size/address predicates. Grounded on original_source/module.rs
// (name/add_section/get_name) and original_source/ir.rs's test suite (entry
// point equality, rebase delta toggling is_relocated).
//
// © 2025 bingraph authors. MIT License.

import (
	"iter"

	"github.com/google/uuid"

	"github.com/Voskan/bingraph/internal/arena"
)

// ByteOrder is a closed enum describing a Module's byte order.
type ByteOrder uint8

const (
	ByteOrderUndefined ByteOrder = iota
	ByteOrderBigEndian
	ByteOrderLittleEndian
)

// ISA is a closed enum describing a Module's instruction set architecture.
// The concrete member list is supplementary detail beyond spec.md's scope
// ("numeric semantics of individual attributes" is explicitly out of scope);
// it exists as an opaque closed set the codec validates against.
type ISA uint8

const (
	ISAUndefined ISA = iota
	ISAX86
	ISAX64
	ISAARM
	ISAARM64
	ISAPPC32
	ISAPPC64
	ISAMIPS32
	ISAMIPS64
)

// FileFormat is a closed enum describing a Module's container format.
type FileFormat uint8

const (
	FileFormatUndefined FileFormat = iota
	FileFormatCOFF
	FileFormatELF
	FileFormatPE
	FileFormatRawObj
	FileFormatIdaProDb32
	FileFormatIdaProDb64
	FileFormatXCOFF
	FileFormatMachO
)

type moduleData struct {
	parent arena.Key

	uuid             uuid.UUID
	name             string
	binaryPath       string
	entryPoint       uuid.UUID // soft cross-reference to a CodeBlock; may dangle
	hasEntryPoint    bool
	byteOrder        ByteOrder
	isa              ISA
	fileFormat       FileFormat
	preferredAddress Addr
	rebaseDelta      int64

	sections    []arena.Key
	proxyBlocks []arena.Key
	symbols     []arena.Key

	unknownFields [][]byte
}

// Module is a handle to a single executable/object file within an IR.
type Module struct {
	key arena.Key
	ctx *Context
}

func (n Module) Context() *Context { return n.ctx }
func (n Module) Valid() bool       { return n.ctx != nil && n.ctx.modules.Contains(n.key) }

func (n Module) data() *moduleData {
	d := n.ctx.modules.Get(n.key)
	if d == nil {
		panic(ProgrammingError{Msg: "Module handle used after removal; callers must check Valid() first"})
	}
	return d
}

func (n Module) UUID() uuid.UUID {
	n.ctx.acquire(KindModule, n.key)
	defer n.ctx.release(KindModule, n.key)
	return n.data().uuid
}

func (n Module) SetUUID(id uuid.UUID) error {
	n.ctx.acquire(KindModule, n.key)
	defer n.ctx.release(KindModule, n.key)
	d := n.data()
	if !n.ctx.index.Rekey(d.uuid, id, location(KindModule, n.key)) {
		return newError(KindDuplicateUuid, "Module.SetUUID", id)
	}
	d.uuid = id
	return nil
}

// IR returns the parent IR of this Module.
func (n Module) IR() IR {
	return IR{key: n.data().parent, ctx: n.ctx}
}

func (n Module) Name() string           { return n.data().name }
func (n Module) SetName(name string)    { n.data().name = name }
func (n Module) BinaryPath() string     { return n.data().binaryPath }
func (n Module) SetBinaryPath(p string) { n.data().binaryPath = p }

func (n Module) ByteOrder() ByteOrder        { return n.data().byteOrder }
func (n Module) SetByteOrder(v ByteOrder)    { n.data().byteOrder = v }
func (n Module) ISA() ISA                    { return n.data().isa }
func (n Module) SetISA(v ISA)                { n.data().isa = v }
func (n Module) FileFormat() FileFormat      { return n.data().fileFormat }
func (n Module) SetFileFormat(v FileFormat)  { n.data().fileFormat = v }

func (n Module) PreferredAddress() Addr       { return n.data().preferredAddress }
func (n Module) SetPreferredAddress(a Addr)   { n.data().preferredAddress = a }

// RebaseDelta is the signed offset applied when the module was relocated
// from its preferred address. IsRelocated reports rebaseDelta != 0.
func (n Module) RebaseDelta() int64        { return n.data().rebaseDelta }
func (n Module) SetRebaseDelta(d int64)    { n.data().rebaseDelta = d }
func (n Module) IsRelocated() bool         { return n.data().rebaseDelta != 0 }

// EntryPoint returns the CodeBlock the module starts executing at, if any is
// set and it still resolves (spec.md §4.5 edge-case policy: a removed
// referent leaves the field populated but dereference returns absent).
func (n Module) EntryPoint() (CodeBlock, bool) {
	d := n.data()
	if !d.hasEntryPoint {
		return CodeBlock{}, false
	}
	return FindCodeBlock(n.ctx, d.entryPoint)
}

// SetEntryPoint records block's UUID as the entry point cross-reference.
func (n Module) SetEntryPoint(block CodeBlock) {
	d := n.data()
	d.entryPoint = block.UUID()
	d.hasEntryPoint = true
}

// SetEntryPointUUID records id directly as the entry point cross-reference,
// without requiring the referent CodeBlock to already exist — pkg/codec
// needs this for the forward references spec.md §4.9 requires it to leave
// unresolved at decode time.
func (n Module) SetEntryPointUUID(id uuid.UUID) {
	d := n.data()
	d.entryPoint = id
	d.hasEntryPoint = true
}

// ClearEntryPoint removes the entry point cross-reference entirely.
func (n Module) ClearEntryPoint() {
	d := n.data()
	d.hasEntryPoint = false
	d.entryPoint = uuid.Nil
}

// Sections returns a lazy sequence over direct child Sections.
func (n Module) Sections() iter.Seq[Section] {
	return children(n.data().sections, func(k arena.Key) Section {
		return Section{key: k, ctx: n.ctx}
	})
}

// AddSection allocates a new Section named name as a child of this Module.
func (n Module) AddSection(name string) (Section, error) {
	d := n.data()
	id := uuid.New()
	sd := sectionData{uuid: id, name: name, parent: n.key, flags: make(map[SectionFlag]struct{})}
	key, err := linkChild(n.ctx.index, n.ctx.sections, KindSection, id, sd, n.key, &d.sections,
		func(rec *sectionData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return Section{}, err
	}
	n.ctx.metrics.incInserted(KindSection)
	n.ctx.metrics.setLive(KindSection, n.ctx.sections.Len())
	return Section{key: key, ctx: n.ctx}, nil
}

// RemoveSection detaches section and cascades through its ByteIntervals.
func (n Module) RemoveSection(section Section) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.sections, &d.sections, section.key,
		func(rec *sectionData) uuid.UUID { return rec.uuid },
		func(rec *sectionData) { cascadeRemoveSection(n.ctx, rec) })
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindSection)
	n.ctx.metrics.setLive(KindSection, n.ctx.sections.Len())
	return nil
}

// ProxyBlocks returns a lazy sequence over direct child ProxyBlocks.
func (n Module) ProxyBlocks() iter.Seq[ProxyBlock] {
	return children(n.data().proxyBlocks, func(k arena.Key) ProxyBlock {
		return ProxyBlock{key: k, ctx: n.ctx}
	})
}

// AddProxyBlock allocates a new ProxyBlock (an external referent) as a child
// of this Module.
func (n Module) AddProxyBlock() (ProxyBlock, error) {
	d := n.data()
	id := uuid.New()
	pd := proxyBlockData{uuid: id, parent: n.key}
	key, err := linkChild(n.ctx.index, n.ctx.proxyBlocks, KindProxyBlock, id, pd, n.key, &d.proxyBlocks,
		func(rec *proxyBlockData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return ProxyBlock{}, err
	}
	n.ctx.metrics.incInserted(KindProxyBlock)
	n.ctx.metrics.setLive(KindProxyBlock, n.ctx.proxyBlocks.Len())
	return ProxyBlock{key: key, ctx: n.ctx}, nil
}

// RemoveProxyBlock detaches block from this Module.
func (n Module) RemoveProxyBlock(block ProxyBlock) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.proxyBlocks, &d.proxyBlocks, block.key,
		func(rec *proxyBlockData) uuid.UUID { return rec.uuid },
		func(rec *proxyBlockData) {})
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindProxyBlock)
	n.ctx.metrics.setLive(KindProxyBlock, n.ctx.proxyBlocks.Len())
	return nil
}

// Symbols returns a lazy sequence over direct child Symbols.
func (n Module) Symbols() iter.Seq[Symbol] {
	return children(n.data().symbols, func(k arena.Key) Symbol {
		return Symbol{key: k, ctx: n.ctx}
	})
}

// AddSymbol allocates a new, payload-less Symbol named name as a child of
// this Module.
func (n Module) AddSymbol(name string) (Symbol, error) {
	d := n.data()
	id := uuid.New()
	sd := symbolData{uuid: id, name: name, parent: n.key}
	key, err := linkChild(n.ctx.index, n.ctx.symbols, KindSymbol, id, sd, n.key, &d.symbols,
		func(rec *symbolData, parent arena.Key) { rec.parent = parent })
	if err != nil {
		return Symbol{}, err
	}
	n.ctx.metrics.incInserted(KindSymbol)
	n.ctx.metrics.setLive(KindSymbol, n.ctx.symbols.Len())
	return Symbol{key: key, ctx: n.ctx}, nil
}

// RemoveSymbol detaches sym from this Module.
func (n Module) RemoveSymbol(sym Symbol) error {
	d := n.data()
	err := unlinkChild(n.ctx.index, n.ctx.symbols, &d.symbols, sym.key,
		func(rec *symbolData) uuid.UUID { return rec.uuid },
		func(rec *symbolData) {})
	if err != nil {
		return err
	}
	n.ctx.metrics.incRemoved(KindSymbol)
	n.ctx.metrics.setLive(KindSymbol, n.ctx.symbols.Len())
	return nil
}

// CodeBlocks flattens this Module's Sections -> ByteIntervals -> CodeBlocks
// into one transitive-descendant sequence (spec.md §4.6).
func (n Module) CodeBlocks() iter.Seq[CodeBlock] {
	return flatten(n.Sections(), Section.CodeBlocks)
}

// DataBlocks flattens this Module's Sections -> ByteIntervals -> DataBlocks.
func (n Module) DataBlocks() iter.Seq[DataBlock] {
	return flatten(n.Sections(), Section.DataBlocks)
}

// Address is the minimum address among descendant ByteIntervals, or absent
// if any descendant Section lacks one (spec.md §4.8, "absent when mixed").
func (n Module) Address() (Addr, bool) {
	return aggregateAddress(n.Sections(), Section.Address)
}

// Size is (max over descendants of address+size) - Address(), or absent
// under the same mixed-addressing rule as Address.
func (n Module) Size() (uint64, bool) {
	return aggregateSize(n.Sections(), Section.Address, Section.Size)
}

// UnknownFields returns the opaque wire-format fields pkg/codec could not
// interpret when this node was decoded.
func (n Module) UnknownFields() [][]byte { return n.data().unknownFields }

// AppendUnknownField records one more opaque field, used by pkg/codec during
// decode.
func (n Module) AppendUnknownField(raw []byte) {
	d := n.data()
	d.unknownFields = append(d.unknownFields, append([]byte(nil), raw...))
	n.ctx.logUnknownField(KindModule)
}

// FindSection looks up a live Section by UUID anywhere in ctx.
func FindSection(ctx *Context, id uuid.UUID) (Section, bool) {
	loc, ok := ctx.index.Lookup(id)
	if !ok || loc.Kind != KindSection {
		return Section{}, false
	}
	h := Section{key: loc.Key, ctx: ctx}
	return h, h.Valid()
}

// cascadeRemoveModule removes every descendant of a Module record being
// deleted: its Sections (which themselves cascade), ProxyBlocks, and
// Symbols, plus their UUID index entries.
func cascadeRemoveModule(ctx *Context, m *moduleData) {
	for _, k := range m.sections {
		rec, ok := ctx.sections.Remove(k)
		if !ok {
			continue
		}
		cascadeRemoveSection(ctx, &rec)
		ctx.index.Remove(rec.uuid)
	}
	for _, k := range m.proxyBlocks {
		rec, ok := ctx.proxyBlocks.Remove(k)
		if ok {
			ctx.index.Remove(rec.uuid)
		}
	}
	for _, k := range m.symbols {
		rec, ok := ctx.symbols.Remove(k)
		if ok {
			ctx.index.Remove(rec.uuid)
		}
	}
}
