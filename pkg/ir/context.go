package ir

// context.go implements Context (spec.md §3/§4.3): the single owner of every
// node's storage — eight arenas (one per node kind except SymbolicExpression,
// which is a map value on its ByteInterval) plus the UUID index. It
// plays the role the teacher's shard[K,V] plays for a cache shard: the one
// struct that aggregates every piece of mutable state a unit of work touches,
// built once via a constructor that also seeds required initial state
// (there, the first generation; here, the root IR record).
//
// © 2025 bingraph authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Voskan/bingraph/internal/arena"
	"github.com/Voskan/bingraph/internal/identity"
)

// Context aggregates all node storage for one IR. It is thread-confined: all
// handles derived from it must be used from a single goroutine at a time
// (spec.md §5).
type Context struct {
	irs           *arena.Arena[irData]
	modules       *arena.Arena[moduleData]
	sections      *arena.Arena[sectionData]
	byteIntervals *arena.Arena[byteIntervalData]
	codeBlocks    *arena.Arena[codeBlockData]
	dataBlocks    *arena.Arena[dataBlockData]
	proxyBlocks   *arena.Arena[proxyBlockData]
	symbols       *arena.Arena[symbolData]

	index    *identity.Index
	borrowed map[borrowKey]bool

	logger  *zap.Logger
	metrics metricsSink
}

// Option configures a Context at construction time. Mirrors the teacher's
// functional-option style (pkg/config.go's Option[K,V]), simplified because
// Context is not generic over a user key/value type.
type Option func(*Context)

// WithLogger plugs an external zap.Logger. The core never logs on any
// invariant-preserving path; only unusual events (decode fallback onto the
// unknown-field bag, borrow-guard panics just before they propagate) are
// recorded, matching the teacher's "only slow/rare events" logging policy.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation over arena occupancy and
// mutation counts. Passing nil (the default) disables metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *Context) {
		if reg != nil {
			c.metrics = newPromMetrics(reg)
		}
	}
}

// logUnknownField records that a node kept an opaque field pkg/codec could
// not interpret during decode — the "decode fallback" case WithLogger's doc
// comment promises to surface.
func (c *Context) logUnknownField(kind Kind) {
	c.logger.Debug("decoded unknown field onto fallback bag", zap.String("kind", kind.String()))
}

// logBorrowViolation records an overlapping-borrow programming error right
// before it is panicked, so a crash report still has a log line pointing at
// which node tripped it.
func (c *Context) logBorrowViolation(kind Kind, key string) {
	c.logger.Error("overlapping borrow detected", zap.String("kind", kind.String()), zap.String("key", key))
}

func newContext(opts []Option) *Context {
	c := &Context{
		irs:           arena.New[irData](),
		modules:       arena.New[moduleData](),
		sections:      arena.New[sectionData](),
		byteIntervals: arena.New[byteIntervalData](),
		codeBlocks:    arena.New[codeBlockData](),
		dataBlocks:    arena.New[dataBlockData](),
		proxyBlocks:   arena.New[proxyBlockData](),
		symbols:       arena.New[symbolData](),
		index:         identity.New(),
		borrowed:      make(map[borrowKey]bool),
		logger:        zap.NewNop(),
		metrics:       noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
