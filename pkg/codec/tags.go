// Package codec bridges pkg/ir graphs to and from a flat byte stream. There
// is no generated wire schema to target (spec.md §4.9 names it an external
// collaborator, out of scope), so this package hand-rolls a field-tagged,
// length-prefixed format directly on top of
// google.golang.org/protobuf/encoding/protowire's tag/varint/length-delimited
// primitives — the same primitive layer protoc-generated code itself
// compiles down to, without running protoc. Every node kind below gets a
// fixed field-tag table so the format stays self-describing: an unrecognized
// tag is skipped and preserved verbatim rather than rejected, the same
// forward-compatibility protobuf wire format gives generated code for free.
//
// © 2025 bingraph authors. MIT License.
package codec

// Field tags are scoped per node kind; only uniqueness within one kind's
// encode/decode loop matters, not uniqueness across kinds.
const (
	fieldIRUUID = iota + 1
	fieldIRVersion
	fieldIRModule
)

const (
	fieldModuleUUID = iota + 1
	fieldModuleName
	fieldModuleBinaryPath
	fieldModuleEntryPoint
	fieldModuleByteOrder
	fieldModuleISA
	fieldModuleFileFormat
	fieldModulePreferredAddress
	fieldModuleRebaseDelta
	fieldModuleSection
	fieldModuleProxyBlock
	fieldModuleSymbol
)

const (
	fieldSectionUUID = iota + 1
	fieldSectionName
	fieldSectionFlag
	fieldSectionByteInterval
)

const (
	fieldByteIntervalUUID = iota + 1
	fieldByteIntervalAddress
	fieldByteIntervalSize
	fieldByteIntervalContents
	fieldByteIntervalSymbolicExpr
	fieldByteIntervalCodeBlock
	fieldByteIntervalDataBlock
)

const (
	fieldSymbolicExprOffset = iota + 1
	fieldSymbolicExprAddend
	fieldSymbolicExprSymbol
)

const (
	fieldCodeBlockUUID = iota + 1
	fieldCodeBlockOffset
	fieldCodeBlockSize
	fieldCodeBlockDecodeMode
)

const (
	fieldDataBlockUUID = iota + 1
	fieldDataBlockOffset
	fieldDataBlockSize
)

const (
	fieldProxyBlockUUID = iota + 1
)

const (
	fieldSymbolUUID = iota + 1
	fieldSymbolName
	fieldSymbolPayloadKind
	fieldSymbolPayloadAddress
	fieldSymbolPayloadReferent
)
