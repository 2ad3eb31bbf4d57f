package codec

// wire.go holds the low-level append/parse helpers codec.go's per-kind
// encode/decode functions build on, all routed through
// google.golang.org/protobuf/encoding/protowire so the byte layout matches
// what a generated protobuf message of the same shape would produce.
//
// © 2025 bingraph authors. MIT License.

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Voskan/bingraph/pkg/ir"
)

func appendUUID(b []byte, num int, id uuid.UUID) []byte {
	raw := id[:]
	b = protowire.AppendTag(b, protowire.Number(num), protowire.BytesType)
	return protowire.AppendBytes(b, raw)
}

func appendString(b []byte, num int, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, protowire.Number(num), protowire.BytesType)
	return protowire.AppendBytes(b, []byte(s))
}

func appendBytes(b []byte, num int, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, protowire.Number(num), protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num int, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, protowire.Number(num), protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendSVarint(b []byte, num int, v int64) []byte {
	if v == 0 {
		return b
	}
	return appendVarint(b, num, protowire.EncodeZigZag(v))
}

func appendSubmessage(b []byte, num int, sub []byte) []byte {
	b = protowire.AppendTag(b, protowire.Number(num), protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

func appendUnknown(b []byte, unknown [][]byte) []byte {
	for _, raw := range unknown {
		b = append(b, raw...)
	}
	return b
}

// fieldView is one decoded (tag, value) pair: raw holds the complete
// tag+value encoding, for verbatim unknown-field preservation.
type fieldView struct {
	num   protowire.Number
	typ   protowire.Type
	raw   []byte
	u64   uint64
	bytes []byte
}

// nextField consumes exactly one field from the front of b and returns how
// many bytes it occupied.
func nextField(b []byte) (fieldView, int, error) {
	num, typ, tagLen := protowire.ConsumeTag(b)
	if tagLen < 0 {
		return fieldView{}, 0, fmt.Errorf("malformed field tag")
	}
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(b[tagLen:])
		if n < 0 {
			return fieldView{}, 0, fmt.Errorf("malformed varint field %d", num)
		}
		total := tagLen + n
		return fieldView{num: num, typ: typ, raw: cloneBytes(b[:total]), u64: v}, total, nil
	case protowire.BytesType:
		v, n := protowire.ConsumeBytes(b[tagLen:])
		if n < 0 {
			return fieldView{}, 0, fmt.Errorf("malformed length-delimited field %d", num)
		}
		total := tagLen + n
		return fieldView{num: num, typ: typ, raw: cloneBytes(b[:total]), bytes: v}, total, nil
	default:
		n := protowire.ConsumeFieldValue(num, typ, b[tagLen:])
		if n < 0 {
			return fieldView{}, 0, fmt.Errorf("malformed field %d of wire type %v", num, typ)
		}
		total := tagLen + n
		return fieldView{num: num, typ: typ, raw: cloneBytes(b[:total])}, total, nil
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func parseUUID(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.UUID{}, fmt.Errorf("uuid field is %d bytes, want 16", len(b))
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, nil
}

func wrapInvalidUUID(field string, cause error) error {
	return &ir.Error{Kind: ir.KindInvalidUuid, Op: "codec.Decode", Err: fmt.Errorf("%s: %w", field, cause)}
}

func wrapDecode(kind string, cause error) error {
	return &ir.Error{Kind: ir.KindDecodeFormat, Op: "codec.Decode", Err: fmt.Errorf("%s: %w", kind, cause)}
}
