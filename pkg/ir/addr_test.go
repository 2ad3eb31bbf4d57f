package ir

import (
	"math"
	"testing"
)

func TestAddrAddSub(t *testing.T) {
	a, b := Addr(0x1000), Addr(0x1000)
	if got := a.Add(b); got != Addr(0x2000) {
		t.Fatalf("Add = %v, want 0x2000", got)
	}
	if got := Addr(0x2000).Sub(Addr(0x1000)); got != Addr(0x1000) {
		t.Fatalf("Sub = %v, want 0x1000", got)
	}
}

func TestAddrAddSubRoundTripWraps(t *testing.T) {
	a := Addr(math.MaxUint64 - 3)
	b := Addr(10)
	if got := a.Add(b).Sub(b); got != a {
		t.Fatalf("(a+b)-b = %v, want %v", got, a)
	}
}
