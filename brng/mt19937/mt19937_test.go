package mt19937

import (
	"testing"

	"github.com/randcore/brngkit/brng"
)

func TestSeedZeroFirstThreeOutputs(t *testing.T) {
	mt, err := New(0)
	if err != nil {
		t.Fatalf("New(0): %v", err)
	}
	want := []uint32{2357136044, 2546248239, 3071714933}
	for i, w := range want {
		if got := mt.NextUint32(); got != w {
			t.Errorf("draw %d: got %d, want %d", i, got, w)
		}
	}
}

func TestReproducibility(t *testing.T) {
	a, _ := New(12345)
	b, _ := New(12345)
	for i := 0; i < 2000; i++ {
		if x, y := a.NextUint32(), b.NextUint32(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestScalarArraySeedEquivalence(t *testing.T) {
	scalar, _ := New(42)
	array := &MT19937{}
	if err := array.SeedArray([]uint32{42}); err != nil {
		t.Fatalf("SeedArray: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if x, y := scalar.NextUint32(), array.NextUint32(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestSeedOutOfRange(t *testing.T) {
	mt := &MT19937{key: [n]uint32{1, 2, 3}, pos: 5}
	before := mt.State()
	if err := mt.Seed(1 << 33); err == nil {
		t.Fatal("expected range error for seed >= 2^32")
	}
	after := mt.State()
	if after != before {
		t.Fatal("state mutated despite validation failure")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	a, _ := New(7)
	for i := 0; i < 100; i++ {
		a.NextUint32()
	}
	snap := a.State()

	b := &MT19937{}
	if err := b.SetState(snap); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if x, y := a.NextUint32(), b.NextUint32(); x != y {
			t.Fatalf("draw %d diverged after restore: %d != %d", i, x, y)
		}
	}
}

func TestSnapshotTagMismatch(t *testing.T) {
	mt := &MT19937{}
	err := mt.SetState(brng.Snapshot{Brng: "Xoshiro256StarStar"})
	if err == nil {
		t.Fatal("expected tag mismatch error")
	}
}

func TestNextUint64Order(t *testing.T) {
	mt, _ := New(99)
	clone := &MT19937{}
	if err := clone.SetState(mt.State()); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	hi := clone.NextUint32()
	lo := clone.NextUint32()
	want := uint64(hi)<<32 | uint64(lo)

	if got := mt.NextUint64(); got != want {
		t.Fatalf("NextUint64() = %d, want %d (hi=%d lo=%d)", got, want, hi, lo)
	}
}

func TestJumpAlgebra(t *testing.T) {
	a, _ := New(555)
	b, _ := New(555)

	if err := a.Jump(3); err != nil {
		t.Fatalf("Jump(3): %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := b.Jump(1); err != nil {
			t.Fatalf("Jump(1): %v", err)
		}
	}

	for i := 0; i < 200; i++ {
		if x, y := a.NextUint32(), b.NextUint32(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}
