// Package xoshiro implements Xoshiro256** (spec §4.2), the third BRNG
// algorithm this module ships. It is natively 64-bit; 32-bit consumers
// get the low half of one NextUint64 draw first, then the cached high
// half, per the width-adapter rule in spec §4.4.
package xoshiro

import (
	"math/bits"
	"sync"

	"github.com/randcore/brngkit/brng"
	"github.com/randcore/brngkit/brng/internal/gf2"
	"github.com/randcore/brngkit/entropy"
)

const (
	stateBits  = 256
	jumpPowers = 128
)

// Xoshiro256StarStar is the four-word xoshiro256** state.
type Xoshiro256StarStar struct {
	s [4]uint64

	hasUint32 bool
	uinteger  uint32
}

var _ brng.Engine = (*Xoshiro256StarStar)(nil)
var _ brng.Jumper = (*Xoshiro256StarStar)(nil)

// New creates a Xoshiro256StarStar from a 64-bit scalar seed, split into
// two little-endian 32-bit words and expanded into the four 64-bit state
// words via SplitMix64 (see Seed).
func New(seed uint64) *Xoshiro256StarStar {
	x := &Xoshiro256StarStar{}
	x.Seed(seed)
	return x
}

// NewFromEntropy seeds a Xoshiro256StarStar from src instead of a
// caller-supplied scalar, implementing spec §3's "handle is created with
// a seed... or from entropy when seed is absent" lifecycle clause.
func NewFromEntropy(src entropy.Source) (*Xoshiro256StarStar, error) {
	var words [2]uint32
	if err := src.Read(words[:]); err != nil {
		return nil, err
	}
	return New(uint64(words[0]) | uint64(words[1])<<32), nil
}

// Seed re-initializes state from a 64-bit scalar seed, clearing the
// cached 32-bit half. The seed is normalized to its little-endian 32-bit
// word pair [lo, hi] and fed through the shared §4.5 slot-expansion rule
// (brng.ExpandWords): a single SplitMix64 stream advances continuously
// across the four 64-bit state words, XOR-folding the seed pair into the
// first two — the same mechanism every algorithm in this module uses to
// turn a seed into state, so the scalar/one-element-array equivalence
// invariant holds uniformly across algorithms.
func (x *Xoshiro256StarStar) Seed(seed uint64) error {
	words := brng.Uint32ArrayFromUint64(seed)
	brng.ExpandWords(x.s[:], words[:])
	x.hasUint32 = false
	return nil
}

func rotl64(v uint64, r uint) uint64 { return bits.RotateLeft64(v, int(r)) }

// step advances the xoshiro256** state (the xorshift/rotate recurrence),
// independent of the output function. This is the GF(2)-linear operation
// the jump matrix in brng/internal/gf2 models.
func (x *Xoshiro256StarStar) step() {
	t := x.s[1] << 17

	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = rotl64(x.s[3], 45)
}

func (x *Xoshiro256StarStar) output() uint64 {
	return rotl64(x.s[1]*5, 7) * 9
}

// Name identifies the algorithm for snapshot tagging.
func (x *Xoshiro256StarStar) Name() string { return "Xoshiro256StarStar" }

// NextUint64 computes the scrambled output, then advances the state.
func (x *Xoshiro256StarStar) NextUint64() uint64 {
	result := x.output()
	x.step()
	return result
}

// NextUint32 serves two 32-bit halves per NextUint64 draw: the low half
// first, caching the high half for the following call (spec §4.4).
func (x *Xoshiro256StarStar) NextUint32() uint32 {
	if x.hasUint32 {
		x.hasUint32 = false
		return x.uinteger
	}
	v := x.NextUint64()
	x.uinteger = uint32(v >> 32)
	x.hasUint32 = true
	return uint32(v)
}

// NextDouble returns a float64 in [0, 1) via the canonical 64-bit
// formula: (u64 >> 11) * 2^-53.
func (x *Xoshiro256StarStar) NextDouble() float64 {
	return float64(x.NextUint64()>>11) * (1.0 / 9007199254740992.0)
}

// NextRaw returns one native (64-bit) word.
func (x *Xoshiro256StarStar) NextRaw() uint64 { return x.NextUint64() }

// State snapshots the four state words plus the 32-bit adapter cache.
func (x *Xoshiro256StarStar) State() brng.Snapshot {
	return brng.Snapshot{
		Brng:       x.Name(),
		S4:         x.s,
		HasUint32:  x.hasUint32,
		Uinteger32: x.uinteger,
	}
}

// SetState restores a snapshot, rejecting a mismatched tag before
// mutating anything.
func (x *Xoshiro256StarStar) SetState(s brng.Snapshot) error {
	if err := s.CheckTag(x.Name()); err != nil {
		return err
	}
	x.s = s.S4
	x.hasUint32 = s.HasUint32
	x.uinteger = s.Uinteger32
	return nil
}

var (
	jumpOnce   sync.Once
	jumpMatrix gf2.Matrix
)

func rawStep(words []uint64) {
	var state Xoshiro256StarStar
	copy(state.s[:], words)
	state.step()
	copy(words, state.s[:])
}

func jumpMatrixOnce() gf2.Matrix {
	jumpOnce.Do(func() {
		step := gf2.BuildFromStep(stateBits, rawStep)
		jumpMatrix = gf2.Pow2(step, jumpPowers)
	})
	return jumpMatrix
}

// Jump advances the state by n applications of the canonical 2^128-step
// jump distance via the shared GF(2) bit-matrix engine, equivalent to
// jump(1) applied n times (spec §8's jump-algebra invariant).
func (x *Xoshiro256StarStar) Jump(n uint64) error {
	base := jumpMatrixOnce()
	op := gf2.MulN(base, n)
	dst := make([]uint64, 4)
	gf2.Apply(op, x.s[:], dst)
	copy(x.s[:], dst)
	x.hasUint32 = false
	return nil
}
