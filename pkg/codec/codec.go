package codec

// codec.go implements Encode/Decode over the field-tag tables in tags.go.
// Decode walks the byte stream top-down but creates nodes in the only order
// pkg/ir's Context API allows — parent before child — deferring soft
// cross-references (Module.EntryPoint, Symbol's referent payload,
// SymbolicExpression's symbol list) to raw UUIDs that may not resolve until
// a later node in the same stream is created, exactly as spec.md §4.9
// requires. Unknown field tags are consumed by wire.go's nextField and
// preserved rather than dropped, so a round-trip through an older/newer bingraph never
// silently loses data.
//
// Grounded on original_source/*.rs's decode routines for field order and
// error conditions; the wire primitives themselves come from
// google.golang.org/protobuf/encoding/protowire.
//
// © 2025 bingraph authors. MIT License.

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Voskan/bingraph/pkg/ir"
)

// Option configures Encode/Decode. Currently empty; reserved the way the
// teacher's pkg/config.go reserves Option[K,V] for knobs added later without
// breaking callers.
type Option func()

// Encode serializes root and everything reachable from it into a
// self-describing byte stream.
func Encode(root ir.IR, _ ...Option) ([]byte, error) {
	var buf []byte
	buf = appendUUID(buf, fieldIRUUID, root.UUID())
	buf = appendVarint(buf, fieldIRVersion, uint64(root.Version()))
	for m := range root.Modules() {
		sub, err := encodeModule(m)
		if err != nil {
			return nil, err
		}
		buf = appendSubmessage(buf, fieldIRModule, sub)
	}
	buf = appendUnknown(buf, root.UnknownFields())
	return buf, nil
}

// Decode parses b into a freshly-constructed IR, the root of a new Context
// built with opts.
func Decode(b []byte, opts ...ir.Option) (ir.IR, error) {
	root := ir.NewIR(opts...)

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return ir.IR{}, wrapDecode("IR", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldIRUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return ir.IR{}, wrapInvalidUUID("IR.uuid", err)
			}
			if err := root.SetUUID(id); err != nil {
				return ir.IR{}, err
			}
		case fieldIRVersion:
			root.SetVersion(uint32(fv.u64))
		case fieldIRModule:
			if err := decodeModule(root, fv.bytes); err != nil {
				return ir.IR{}, err
			}
		default:
			root.AppendUnknownField(fv.raw)
		}
	}
	return root, nil
}

func encodeModule(m ir.Module) ([]byte, error) {
	var buf []byte
	buf = appendUUID(buf, fieldModuleUUID, m.UUID())
	buf = appendString(buf, fieldModuleName, m.Name())
	buf = appendString(buf, fieldModuleBinaryPath, m.BinaryPath())
	if ep, ok := m.EntryPoint(); ok {
		buf = appendUUID(buf, fieldModuleEntryPoint, ep.UUID())
	}
	buf = appendVarint(buf, fieldModuleByteOrder, uint64(m.ByteOrder()))
	buf = appendVarint(buf, fieldModuleISA, uint64(m.ISA()))
	buf = appendVarint(buf, fieldModuleFileFormat, uint64(m.FileFormat()))
	buf = appendVarint(buf, fieldModulePreferredAddress, uint64(m.PreferredAddress()))
	buf = appendSVarint(buf, fieldModuleRebaseDelta, m.RebaseDelta())
	for s := range m.Sections() {
		sub, err := encodeSection(s)
		if err != nil {
			return nil, err
		}
		buf = appendSubmessage(buf, fieldModuleSection, sub)
	}
	for p := range m.ProxyBlocks() {
		buf = appendSubmessage(buf, fieldModuleProxyBlock, encodeProxyBlock(p))
	}
	for s := range m.Symbols() {
		buf = appendSubmessage(buf, fieldModuleSymbol, encodeSymbol(s))
	}
	buf = appendUnknown(buf, m.UnknownFields())
	return buf, nil
}

func decodeModule(root ir.IR, b []byte) error {
	m, err := root.AddModule("")
	if err != nil {
		return err
	}

	var entryPointID uuid.UUID
	var hasEntryPoint bool

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("Module", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldModuleUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("Module.uuid", err)
			}
			if err := m.SetUUID(id); err != nil {
				return err
			}
		case fieldModuleName:
			m.SetName(string(fv.bytes))
		case fieldModuleBinaryPath:
			m.SetBinaryPath(string(fv.bytes))
		case fieldModuleEntryPoint:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("Module.entry_point", err)
			}
			entryPointID, hasEntryPoint = id, true
		case fieldModuleByteOrder:
			bo := ir.ByteOrder(fv.u64)
			if bo > ir.ByteOrderLittleEndian {
				return invalidEnum("Module.byte_order")
			}
			m.SetByteOrder(bo)
		case fieldModuleISA:
			isa := ir.ISA(fv.u64)
			if isa > ir.ISAMIPS64 {
				return invalidEnum("Module.isa")
			}
			m.SetISA(isa)
		case fieldModuleFileFormat:
			ff := ir.FileFormat(fv.u64)
			if ff > ir.FileFormatMachO {
				return invalidEnum("Module.file_format")
			}
			m.SetFileFormat(ff)
		case fieldModulePreferredAddress:
			m.SetPreferredAddress(ir.Addr(fv.u64))
		case fieldModuleRebaseDelta:
			m.SetRebaseDelta(protowire.DecodeZigZag(fv.u64))
		case fieldModuleSection:
			if err := decodeSection(m, fv.bytes); err != nil {
				return err
			}
		case fieldModuleProxyBlock:
			if err := decodeProxyBlock(m, fv.bytes); err != nil {
				return err
			}
		case fieldModuleSymbol:
			if err := decodeSymbol(m, fv.bytes); err != nil {
				return err
			}
		default:
			m.AppendUnknownField(fv.raw)
		}
	}

	if hasEntryPoint {
		m.SetEntryPointUUID(entryPointID)
	}
	return nil
}

func encodeSection(s ir.Section) ([]byte, error) {
	var buf []byte
	buf = appendUUID(buf, fieldSectionUUID, s.UUID())
	buf = appendString(buf, fieldSectionName, s.Name())
	for _, f := range s.Flags() {
		buf = appendVarint(buf, fieldSectionFlag, uint64(f))
	}
	for bi := range s.ByteIntervals() {
		sub, err := encodeByteInterval(bi)
		if err != nil {
			return nil, err
		}
		buf = appendSubmessage(buf, fieldSectionByteInterval, sub)
	}
	buf = appendUnknown(buf, s.UnknownFields())
	return buf, nil
}

func decodeSection(parent ir.Module, b []byte) error {
	s, err := parent.AddSection("")
	if err != nil {
		return err
	}

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("Section", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldSectionUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("Section.uuid", err)
			}
			if err := s.SetUUID(id); err != nil {
				return err
			}
		case fieldSectionName:
			s.SetName(string(fv.bytes))
		case fieldSectionFlag:
			flag := ir.SectionFlag(fv.u64)
			if flag > ir.SectionFlagExecutable {
				return invalidEnum("Section.flag")
			}
			s.SetFlag(flag)
		case fieldSectionByteInterval:
			if err := decodeByteInterval(s, fv.bytes); err != nil {
				return err
			}
		default:
			s.AppendUnknownField(fv.raw)
		}
	}
	return nil
}

func encodeByteInterval(bi ir.ByteInterval) ([]byte, error) {
	var buf []byte
	buf = appendUUID(buf, fieldByteIntervalUUID, bi.UUID())
	if addr, ok := bi.Address(); ok {
		buf = appendVarint(buf, fieldByteIntervalAddress, uint64(addr))
	}
	if size, ok := bi.Size(); ok {
		buf = appendVarint(buf, fieldByteIntervalSize, size)
	}
	buf = appendBytes(buf, fieldByteIntervalContents, bi.Contents())
	for _, off := range bi.SymbolicExpressionOffsets() {
		se, _ := bi.SymbolicExpressionAt(off)
		buf = appendSubmessage(buf, fieldByteIntervalSymbolicExpr, encodeSymbolicExpression(off, se))
	}
	for cb := range bi.CodeBlocks() {
		buf = appendSubmessage(buf, fieldByteIntervalCodeBlock, encodeCodeBlock(cb))
	}
	for db := range bi.DataBlocks() {
		buf = appendSubmessage(buf, fieldByteIntervalDataBlock, encodeDataBlock(db))
	}
	buf = appendUnknown(buf, bi.UnknownFields())
	return buf, nil
}

func decodeByteInterval(parent ir.Section, b []byte) error {
	bi, err := parent.AddByteInterval()
	if err != nil {
		return err
	}

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("ByteInterval", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldByteIntervalUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("ByteInterval.uuid", err)
			}
			if err := bi.SetUUID(id); err != nil {
				return err
			}
		case fieldByteIntervalAddress:
			bi.SetAddress(ir.Addr(fv.u64))
		case fieldByteIntervalSize:
			bi.SetInitializedSize(fv.u64)
		case fieldByteIntervalContents:
			bi.SetContents(fv.bytes)
		case fieldByteIntervalSymbolicExpr:
			off, se, err := decodeSymbolicExpression(fv.bytes)
			if err != nil {
				return err
			}
			bi.SetSymbolicExpressionAt(off, se)
		case fieldByteIntervalCodeBlock:
			if err := decodeCodeBlock(bi, fv.bytes); err != nil {
				return err
			}
		case fieldByteIntervalDataBlock:
			if err := decodeDataBlock(bi, fv.bytes); err != nil {
				return err
			}
		default:
			bi.AppendUnknownField(fv.raw)
		}
	}
	return nil
}

func encodeSymbolicExpression(off uint64, se ir.SymbolicExpression) []byte {
	var buf []byte
	buf = appendVarint(buf, fieldSymbolicExprOffset, off)
	buf = appendSVarint(buf, fieldSymbolicExprAddend, se.Addend)
	for _, sym := range se.Symbols {
		buf = appendUUID(buf, fieldSymbolicExprSymbol, sym)
	}
	return buf
}

func decodeSymbolicExpression(b []byte) (uint64, ir.SymbolicExpression, error) {
	var off uint64
	var se ir.SymbolicExpression

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return 0, se, wrapDecode("SymbolicExpression", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldSymbolicExprOffset:
			off = fv.u64
		case fieldSymbolicExprAddend:
			se.Addend = protowire.DecodeZigZag(fv.u64)
		case fieldSymbolicExprSymbol:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return 0, se, wrapInvalidUUID("SymbolicExpression.symbol", err)
			}
			se.Symbols = append(se.Symbols, id)
		}
	}
	return off, se, nil
}

func encodeCodeBlock(cb ir.CodeBlock) []byte {
	var buf []byte
	buf = appendUUID(buf, fieldCodeBlockUUID, cb.UUID())
	buf = appendVarint(buf, fieldCodeBlockOffset, cb.Offset())
	buf = appendVarint(buf, fieldCodeBlockSize, cb.Size())
	buf = appendVarint(buf, fieldCodeBlockDecodeMode, uint64(cb.DecodeMode()))
	buf = appendUnknown(buf, cb.UnknownFields())
	return buf
}

func decodeCodeBlock(parent ir.ByteInterval, b []byte) error {
	var off, size uint64
	var mode ir.DecodeMode
	var id uuid.UUID
	var hasID bool
	var unknown [][]byte

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("CodeBlock", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldCodeBlockUUID:
			v, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("CodeBlock.uuid", err)
			}
			id, hasID = v, true
		case fieldCodeBlockOffset:
			off = fv.u64
		case fieldCodeBlockSize:
			size = fv.u64
		case fieldCodeBlockDecodeMode:
			m := ir.DecodeMode(fv.u64)
			if m > ir.DecodeModeThumb {
				return invalidEnum("CodeBlock.decode_mode")
			}
			mode = m
		default:
			unknown = append(unknown, fv.raw)
		}
	}

	cb, err := parent.AddCodeBlock(off, size, mode)
	if err != nil {
		return err
	}
	if hasID {
		if err := cb.SetUUID(id); err != nil {
			return err
		}
	}
	for _, u := range unknown {
		cb.AppendUnknownField(u)
	}
	return nil
}

func encodeDataBlock(db ir.DataBlock) []byte {
	var buf []byte
	buf = appendUUID(buf, fieldDataBlockUUID, db.UUID())
	buf = appendVarint(buf, fieldDataBlockOffset, db.Offset())
	buf = appendVarint(buf, fieldDataBlockSize, db.Size())
	buf = appendUnknown(buf, db.UnknownFields())
	return buf
}

func decodeDataBlock(parent ir.ByteInterval, b []byte) error {
	var off, size uint64
	var id uuid.UUID
	var hasID bool
	var unknown [][]byte

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("DataBlock", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldDataBlockUUID:
			v, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("DataBlock.uuid", err)
			}
			id, hasID = v, true
		case fieldDataBlockOffset:
			off = fv.u64
		case fieldDataBlockSize:
			size = fv.u64
		default:
			unknown = append(unknown, fv.raw)
		}
	}

	db, err := parent.AddDataBlock(off, size)
	if err != nil {
		return err
	}
	if hasID {
		if err := db.SetUUID(id); err != nil {
			return err
		}
	}
	for _, u := range unknown {
		db.AppendUnknownField(u)
	}
	return nil
}

func encodeProxyBlock(p ir.ProxyBlock) []byte {
	var buf []byte
	buf = appendUUID(buf, fieldProxyBlockUUID, p.UUID())
	buf = appendUnknown(buf, p.UnknownFields())
	return buf
}

func decodeProxyBlock(parent ir.Module, b []byte) error {
	p, err := parent.AddProxyBlock()
	if err != nil {
		return err
	}

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("ProxyBlock", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldProxyBlockUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("ProxyBlock.uuid", err)
			}
			if err := p.SetUUID(id); err != nil {
				return err
			}
		default:
			p.AppendUnknownField(fv.raw)
		}
	}
	return nil
}

func encodeSymbol(s ir.Symbol) []byte {
	var buf []byte
	buf = appendUUID(buf, fieldSymbolUUID, s.UUID())
	buf = appendString(buf, fieldSymbolName, s.Name())
	p := s.Payload()
	buf = appendVarint(buf, fieldSymbolPayloadKind, uint64(p.Kind))
	switch p.Kind {
	case ir.PayloadAddress:
		buf = appendVarint(buf, fieldSymbolPayloadAddress, uint64(p.Address))
	case ir.PayloadReferent:
		buf = appendUUID(buf, fieldSymbolPayloadReferent, p.Referent)
	}
	buf = appendUnknown(buf, s.UnknownFields())
	return buf
}

func decodeSymbol(parent ir.Module, b []byte) error {
	s, err := parent.AddSymbol("")
	if err != nil {
		return err
	}

	var payloadKind ir.PayloadKind
	var payloadAddress ir.Addr
	var payloadReferent uuid.UUID

	for len(b) > 0 {
		fv, n, err := nextField(b)
		if err != nil {
			return wrapDecode("Symbol", err)
		}
		b = b[n:]

		switch fv.num {
		case fieldSymbolUUID:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("Symbol.uuid", err)
			}
			if err := s.SetUUID(id); err != nil {
				return err
			}
		case fieldSymbolName:
			s.SetName(string(fv.bytes))
		case fieldSymbolPayloadKind:
			k := ir.PayloadKind(fv.u64)
			if k > ir.PayloadReferent {
				return invalidEnum("Symbol.payload_kind")
			}
			payloadKind = k
		case fieldSymbolPayloadAddress:
			payloadAddress = ir.Addr(fv.u64)
		case fieldSymbolPayloadReferent:
			id, err := parseUUID(fv.bytes)
			if err != nil {
				return wrapInvalidUUID("Symbol.payload_referent", err)
			}
			payloadReferent = id
		default:
			s.AppendUnknownField(fv.raw)
		}
	}

	// Drive the payload from the decoded kind explicitly, not from which
	// value fields happen to be present: appendVarint omits zero values, so
	// an address payload of exactly 0 would otherwise round-trip as unbound.
	switch payloadKind {
	case ir.PayloadAddress:
		s.SetAddressPayload(payloadAddress)
	case ir.PayloadReferent:
		s.SetReferentPayload(payloadReferent)
	}
	return nil
}

func invalidEnum(field string) error {
	return fmt.Errorf("%w: %s", ir.ErrInvalidEnum, field)
}
