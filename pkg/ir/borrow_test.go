package ir

import "testing"

func TestBorrowGuardAllowsSequentialAccess(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	_ = m.UUID()
	_ = m.UUID()
}

func TestBorrowGuardPanicsOnReentrantAcquire(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")

	ctx := root.Context()
	ctx.acquire(KindModule, m.key)
	defer ctx.release(KindModule, m.key)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on reentrant acquire")
		}
		if _, ok := r.(ProgrammingError); !ok {
			t.Fatalf("panic value is %T, want ProgrammingError", r)
		}
	}()
	ctx.acquire(KindModule, m.key)
}

func TestBorrowGuardReleaseAllowsReacquire(t *testing.T) {
	root := NewIR()
	m, _ := root.AddModule("m")
	ctx := root.Context()

	ctx.acquire(KindModule, m.key)
	ctx.release(KindModule, m.key)
	ctx.acquire(KindModule, m.key)
	ctx.release(KindModule, m.key)
}
