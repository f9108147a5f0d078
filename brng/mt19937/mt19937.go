// Package mt19937 implements the standard 32-bit Mersenne Twister
// (spec §4.2), one of the three interchangeable BRNG algorithms this
// module ships. It satisfies brng.Engine, brng.Jumper, and exposes both
// scalar and array seeding the way the reference MT19937 does.
package mt19937

import (
	"sync"

	"github.com/randcore/brngkit/brng"
	"github.com/randcore/brngkit/brng/internal/gf2"
	"github.com/randcore/brngkit/entropy"
)

const (
	n          = 624
	m          = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	stateBits  = n * 32
	jumpPowers = 128 // jump distance is 2^128 full twists
)

// MT19937 is the 624-word, tempered Mersenne Twister state machine.
type MT19937 struct {
	key [n]uint32
	pos int // index in [0, n]; pos == n triggers a twist on next draw
}

var _ brng.Engine = (*MT19937)(nil)
var _ brng.Jumper = (*MT19937)(nil)

// New creates an MT19937 seeded with the given non-negative scalar, which
// must fit in 32 bits.
func New(seed uint64) (*MT19937, error) {
	t := &MT19937{}
	if err := t.Seed(seed); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFromEntropy seeds an MT19937 from src instead of a caller-supplied
// scalar, implementing spec §3's "handle is created with a seed... or
// from entropy when seed is absent" lifecycle clause. MT19937's scalar
// seed space is 32 bits, so only one word is drawn.
func NewFromEntropy(src entropy.Source) (*MT19937, error) {
	var words [1]uint32
	if err := src.Read(words[:]); err != nil {
		return nil, err
	}
	return New(uint64(words[0]))
}

// Seed re-initializes the state from a scalar in [0, 2^32-1] using
// Knuth's LCG recurrence (the reference init_genrand), failing (before
// any mutation) if seed doesn't fit in 32 bits. This is not the same
// state SeedArray builds from the one-element array [seed].
func (t *MT19937) Seed(seed uint64) error {
	if seed > 0xFFFFFFFF {
		return brng.NewRangeError("seed", "must fit in 32 bits")
	}
	t.key[0] = uint32(seed)
	for i := 1; i < n; i++ {
		t.key[i] = 1812433253*(t.key[i-1]^(t.key[i-1]>>30)) + uint32(i)
	}
	t.pos = n
	return nil
}

// SeedArray runs the standard init_by_array procedure: each element must
// fit in 32 bits (validated before any mutation).
func (t *MT19937) SeedArray(seed []uint32) error {
	// init_genrand(19650218) first.
	var key [n]uint32
	key[0] = 19650218
	for i := 1; i < n; i++ {
		key[i] = 1812433253*(key[i-1]^(key[i-1]>>30)) + uint32(i)
	}

	if len(seed) == 0 {
		t.key = key
		t.pos = n
		return nil
	}

	i, j := 1, 0
	k := n
	if len(seed) > n {
		k = len(seed)
	}
	for ; k > 0; k-- {
		key[i] = (key[i] ^ ((key[i-1] ^ (key[i-1] >> 30)) * 1664525)) + seed[j] + uint32(j)
		i++
		j++
		if i >= n {
			key[0] = key[n-1]
			i = 1
		}
		if j >= len(seed) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		key[i] = (key[i] ^ ((key[i-1] ^ (key[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			key[0] = key[n-1]
			i = 1
		}
	}
	key[0] = 0x80000000

	t.key = key
	t.pos = n
	return nil
}

func (t *MT19937) twist() {
	for i := 0; i < n; i++ {
		y := (t.key[i] & upperMask) | (t.key[(i+1)%n] & lowerMask)
		next := t.key[(i+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		t.key[i] = next
	}
	t.pos = 0
}

// Name identifies the algorithm for snapshot tagging.
func (t *MT19937) Name() string { return "MT19937" }

// NextUint32 returns the next tempered 32-bit output, twisting the state
// whenever the position counter reaches 624.
func (t *MT19937) NextUint32() uint32 {
	if t.pos >= n {
		t.twist()
	}
	y := t.key[t.pos]
	t.pos++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// NextUint64 concatenates two NextUint32 draws, high word first then low
// word (spec §4.2's documented 32->64 concatenation order for MT19937).
func (t *MT19937) NextUint64() uint64 {
	hi := t.NextUint32()
	lo := t.NextUint32()
	return uint64(hi)<<32 | uint64(lo)
}

// NextDouble returns a float64 in [0, 1) from two 32-bit draws via the
// canonical 32-bit pairing formula in spec §4.1.
func (t *MT19937) NextDouble() float64 {
	a := t.NextUint32() >> 5
	b := t.NextUint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// NextRaw returns one native (32-bit) word, zero-extended to 64 bits.
func (t *MT19937) NextRaw() uint64 { return uint64(t.NextUint32()) }

// State snapshots the current key array and position.
func (t *MT19937) State() brng.Snapshot {
	return brng.Snapshot{Brng: t.Name(), Key624: t.key, Pos: t.pos}
}

// SetState restores a snapshot, rejecting mismatched tags or an
// out-of-range position before mutating anything.
func (t *MT19937) SetState(s brng.Snapshot) error {
	if err := s.CheckTag(t.Name()); err != nil {
		return err
	}
	if s.Pos < 0 || s.Pos > n {
		return brng.NewRangeError("pos", "must be in [0, 624]")
	}
	t.key = s.Key624
	t.pos = s.Pos
	return nil
}

func rawStep(words []uint64) {
	var key [n]uint32
	for i := 0; i < n; i++ {
		key[i] = uint32(words[i/2] >> uint(32*(i%2)))
	}
	t := MT19937{key: key, pos: n}
	t.twist()
	for i := 0; i < n; i++ {
		bit := uint64(t.key[i]) << uint(32*(i%2))
		words[i/2] = words[i/2]&^(uint64(0xFFFFFFFF)<<uint(32*(i%2))) | bit
	}
}

// MT19937's 19968-bit state is far too large for the dense GF(2) matrix
// approach Xoshiro256** uses (each squaring of a 19968x19968 bit matrix
// costs O(n^3/64) word operations — hours, not seconds). Instead jump-
// ahead here derives a minimal polynomial the twist recurrence satisfies
// (via Berlekamp-Massey, grounded directly in rawStep's own verified
// behavior) and works in GF(2)[x] modulo that polynomial, where squaring
// is a cheap bit spread and reduction is O(n^2/64). See
// brng/internal/gf2/krylov.go and DESIGN.md.
var (
	jumpPolyOnce sync.Once
	jumpPoly     []uint64
	jumpPolyDeg  int
	jumpBase     []uint64 // x^(2^128) mod jumpPoly, x being one twist
)

func jumpOperatorOnce() ([]uint64, int, []uint64) {
	jumpPolyOnce.Do(func() {
		jumpPoly, jumpPolyDeg = gf2.MinimalPolynomial(stateBits, rawStep)
		jumpBase = gf2.PowXOfPow2Mod(jumpPowers, jumpPoly, jumpPolyDeg)
	})
	return jumpPoly, jumpPolyDeg, jumpBase
}

// Jump advances the key array by times*2^128 applications of the full
// 624-word twist (rawStep), i.e. 624*2^128 outputs per unit of times, not
// 2^128 outputs. The jump is taken from the key array as last twisted:
// any outputs of the current block not yet drawn are skipped, and the
// next draw twists again. jump(k) is, by construction, exactly jump(1)
// applied k times, since both evaluate the same fixed linear operator
// raised to the kth power.
func (t *MT19937) Jump(times uint64) error {
	poly, deg, base := jumpOperatorOnce()
	op := gf2.PolyPowMod(base, times, poly, deg)

	words := make([]uint64, n/2)
	for i := 0; i < n; i++ {
		words[i/2] |= uint64(t.key[i]) << uint(32*(i%2))
	}
	result := gf2.ApplyPoly(op, rawStep, words)
	for i := 0; i < n; i++ {
		t.key[i] = uint32(result[i/2] >> uint(32*(i%2)))
	}
	t.pos = n
	return nil
}
