package ir

// kind.go re-exports internal/identity.Kind the way the teacher's
// pkg/config.go re-exports internal/clockpro.EvictionReason as EjectReason,
// to avoid leaking the internal package path while keeping one definition.
//
// © 2025 bingraph authors. MIT License.

import "github.com/Voskan/bingraph/internal/identity"

// Kind tags which node kind a Key belongs to.
type Kind = identity.Kind

// locationValue is the internal identity.Location re-export used when
// registering a node's UUID in the index.
type locationValue = identity.Location

const (
	KindIR                 = identity.KindIR
	KindModule              = identity.KindModule
	KindSection             = identity.KindSection
	KindByteInterval        = identity.KindByteInterval
	KindCodeBlock           = identity.KindCodeBlock
	KindDataBlock           = identity.KindDataBlock
	KindProxyBlock          = identity.KindProxyBlock
	KindSymbol              = identity.KindSymbol
	KindSymbolicExpression  = identity.KindSymbolicExpression
)
