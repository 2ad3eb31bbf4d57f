package ir

// borrow.go implements the runtime borrow guard spec.md §4.4/§5 call for:
// mutable and immutable borrows of a single node's record must not overlap
// within one thread of execution, and a violation is a programming error,
// not a recoverable one. Go has no borrow checker, so this is enforced with
// a tiny "currently borrowed" set on Context, acquired and released within
// the span of a single accessor/mutator call — the same "acquire a critical
// section, release on every exit path" discipline the teacher applies with
// sync.RWMutex in pkg/shard.go, just without the mutex (bingraph's Context is
// thread-confined, so a bool set suffices).
//
// © 2025 bingraph authors. MIT License.

import "github.com/Voskan/bingraph/internal/arena"

type borrowKey struct {
	kind Kind
	key  arena.Key
}

// acquire marks (kind, key) as borrowed, panicking with ProgrammingError if
// it is already borrowed (a reentrant mutable access of the same record).
func (c *Context) acquire(kind Kind, key arena.Key) {
	bk := borrowKey{kind: kind, key: key}
	if c.borrowed[bk] {
		c.logBorrowViolation(kind, key.String())
		panic(ProgrammingError{Msg: "overlapping borrow of " + kind.String() + " " + key.String()})
	}
	c.borrowed[bk] = true
}

// release clears the borrow marked by acquire. Callers must defer it
// immediately after a successful acquire so it runs on every exit path.
func (c *Context) release(kind Kind, key arena.Key) {
	delete(c.borrowed, borrowKey{kind: kind, key: key})
}
