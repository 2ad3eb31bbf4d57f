package ir

// errors.go declares the error taxonomy every graph and codec operation
// reports through: one ErrorKind per row of spec.md §7, wrapped in a single
// *Error type so callers can branch on errors.Is(err, ir.ErrStaleHandle)
// (etc.) while still getting a human-readable message with operation and
// UUID/Key context. The teacher's pkg/config.go is content with bare
// errors.New sentinels because its callers never need to distinguish error
// *kinds* programmatically — only report them; bingraph's callers do need
// that distinction, hence the richer type.
//
// © 2025 bingraph authors. MIT License.

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind enumerates the closed set of error kinds spec.md §7 names.
type ErrorKind uint8

const (
	_ ErrorKind = iota
	KindInvalidUuid
	KindInvalidEnum
	KindDuplicateUuid
	KindStaleHandle
	KindWrongParent
	KindDecodeFormat
	KindIoError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidUuid:
		return "InvalidUuid"
	case KindInvalidEnum:
		return "InvalidEnum"
	case KindDuplicateUuid:
		return "DuplicateUuid"
	case KindStaleHandle:
		return "StaleHandle"
	case KindWrongParent:
		return "WrongParent"
	case KindDecodeFormat:
		return "DecodeFormat"
	case KindIoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by pkg/ir and pkg/codec. Op names
// the failing operation (e.g. "Module.AddSection"); UUID is populated when
// the failure concerns a specific node.
type Error struct {
	Kind ErrorKind
	Op   string
	UUID uuid.UUID
	Err  error // optional wrapped cause (e.g. a malformed-bytes detail)
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("bingraph: %s: %s", e.Op, e.Kind)
	if e.UUID != uuid.Nil {
		msg += fmt.Sprintf(" (uuid=%s)", e.UUID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is(err, ErrStaleHandle) and friends: two *Error values
// are equivalent for matching purposes when they share a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel *Error values usable directly with errors.Is. They carry no Op or
// UUID — construct a fuller *Error (e.g. newError) when raising one.
var (
	ErrInvalidUuid   = &Error{Kind: KindInvalidUuid}
	ErrInvalidEnum   = &Error{Kind: KindInvalidEnum}
	ErrDuplicateUuid = &Error{Kind: KindDuplicateUuid}
	ErrStaleHandle   = &Error{Kind: KindStaleHandle}
	ErrWrongParent   = &Error{Kind: KindWrongParent}
	ErrDecodeFormat  = &Error{Kind: KindDecodeFormat}
	ErrIoError       = &Error{Kind: KindIoError}
)

func newError(kind ErrorKind, op string, id uuid.UUID) *Error {
	return &Error{Kind: kind, Op: op, UUID: id}
}

func wrapError(kind ErrorKind, op string, id uuid.UUID, cause error) *Error {
	return &Error{Kind: kind, Op: op, UUID: id, Err: cause}
}

// ProgrammingError is panicked, never returned, for conditions spec.md §5/§7
// call programming errors rather than recoverable failures: BorrowConflict
// (an overlapping mutable borrow of one node's record) and use of a handle
// whose node has been removed.
type ProgrammingError struct {
	Msg string
}

func (e ProgrammingError) Error() string { return "bingraph: programming error: " + e.Msg }

// IsStaleHandle, IsDuplicateUuid, ... convenience predicates are intentionally
// omitted in favor of errors.Is(err, ir.ErrXxx) — one idiom, not two.
