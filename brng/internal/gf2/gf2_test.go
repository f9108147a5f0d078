package gf2

import "testing"

// shiftLeft64 is a trivial GF(2)-linear step over one 64-bit word: cyclic
// left shift by one bit. It stands in for a real BRNG's state-advance
// step so this package's matrix-building and composition can be checked
// without depending on any concrete algorithm.
func shiftLeft64(words []uint64) {
	v := words[0]
	words[0] = v<<1 | v>>63
}

func TestBuildFromStepMatchesDirectApplication(t *testing.T) {
	m := BuildFromStep(64, shiftLeft64)

	v := []uint64{0x0123456789ABCDEF}
	want := []uint64{v[0]}
	shiftLeft64(want)

	got := make([]uint64, 1)
	Apply(m, v, got)
	if got[0] != want[0] {
		t.Fatalf("Apply(BuildFromStep(step), v) = %#x, want %#x", got[0], want[0])
	}
}

func TestPow2ComposesRepeatedSquaring(t *testing.T) {
	m := BuildFromStep(64, shiftLeft64)
	// Pow2(m, 3) == m^8: applying it once should equal applying the raw
	// step 8 times in a row.
	m8 := Pow2(m, 3)

	v := []uint64{1}
	want := []uint64{1}
	for i := 0; i < 8; i++ {
		shiftLeft64(want)
	}

	got := make([]uint64, 1)
	Apply(m8, v, got)
	if got[0] != want[0] {
		t.Fatalf("Apply(Pow2(m,3), v) = %#x, want %#x", got[0], want[0])
	}
}

func TestMulNMatchesRepeatedApplication(t *testing.T) {
	m := BuildFromStep(64, shiftLeft64)
	n := uint64(11)
	op := MulN(m, n)

	v := []uint64{0x8000000000000001}
	want := []uint64{v[0]}
	for i := uint64(0); i < n; i++ {
		shiftLeft64(want)
	}

	got := make([]uint64, 1)
	Apply(op, v, got)
	if got[0] != want[0] {
		t.Fatalf("Apply(MulN(m,%d), v) = %#x, want %#x", n, got[0], want[0])
	}
}

func TestMulNZeroIsIdentity(t *testing.T) {
	m := BuildFromStep(64, shiftLeft64)
	op := MulN(m, 0)

	v := []uint64{0xDEADBEEFCAFEBABE}
	got := make([]uint64, 1)
	Apply(op, v, got)
	if got[0] != v[0] {
		t.Fatalf("Apply(MulN(m,0), v) = %#x, want identity %#x", got[0], v[0])
	}
}
