// Package threefry implements Threefry-4x32, the counter-based member of
// this module's BRNG family (spec §4.2). Unlike MT19937 and Xoshiro256**,
// its jump/advance are O(1) counter arithmetic rather than a GF(2) matrix
// power, since the generator's whole state fits in one 128-bit counter
// plus a 128-bit key.
package threefry

import (
	"github.com/randcore/brngkit/brng"
	"github.com/randcore/brngkit/entropy"
)

const rounds = 20

// rotation constants for Threefry-4x32, per the Random123 reference: each
// round uses one (r0, r1) pair, cycling through all 8 every 8 rounds.
var rot = [8][2]uint32{
	{10, 26}, {11, 21}, {13, 27}, {23, 5},
	{6, 20}, {17, 11}, {25, 10}, {18, 20},
}

const parity32 = 0x1BD11BDA

// ThreeFry32 is the Threefry-4x32 state machine: a 128-bit counter, a
// 128-bit key, a four-word output buffer, and a buffer position.
type ThreeFry32 struct {
	counter [4]uint32
	key     [4]uint32
	buffer  [4]uint32
	pos     int // in [0, 4]; 4 means the buffer is empty
}

var _ brng.Engine = (*ThreeFry32)(nil)
var _ brng.Jumper = (*ThreeFry32)(nil)
var _ brng.Advancer = (*ThreeFry32)(nil)

// New creates a ThreeFry32 from a 64-bit seed, expanded into the key via
// SplitMix64 (spec §4.2), with the counter defaulting to zero.
func New(seed uint64) *ThreeFry32 {
	t := &ThreeFry32{}
	t.seedFromScalar(seed)
	t.pos = 4
	return t
}

// NewFromKey creates a ThreeFry32 from an explicit 128-bit key (as four
// little-endian 32-bit words) with the counter defaulting to zero. Seed
// and key are mutually exclusive inputs (spec §7.2); use New for the
// seed-expansion path and NewFromKey when the caller wants to supply
// the key array directly.
func NewFromKey(key [4]uint32) *ThreeFry32 {
	return &ThreeFry32{key: key, pos: 4}
}

// NewFromEntropy seeds a ThreeFry32 from src instead of a caller-supplied
// key, implementing spec §3's "handle is created with a seed... or from
// entropy when seed is absent" lifecycle clause. It draws the full
// 128-bit key directly from src rather than routing through the 64-bit
// scalar path, exercising NewFromKey's direct-key entry point.
func NewFromEntropy(src entropy.Source) (*ThreeFry32, error) {
	var key [4]uint32
	if err := src.Read(key[:]); err != nil {
		return nil, err
	}
	return NewFromKey(key), nil
}

// NewFromSeedOrKey is the single entry point that enforces spec §7's
// "conflicting inputs" rule directly: seed and key are mutually
// exclusive, and supplying both is rejected before any state is built,
// rather than relying on the caller's choice of constructor function to
// keep them apart. When both seed and key are nil it returns New(0); it
// does not draw from entropy (NewFromEntropy does that).
func NewFromSeedOrKey(seed *uint64, key *[4]uint32) (*ThreeFry32, error) {
	switch {
	case seed != nil && key != nil:
		return nil, brng.NewConflictError("seed and key are mutually exclusive for ThreeFry32")
	case key != nil:
		return NewFromKey(*key), nil
	case seed != nil:
		return New(*seed), nil
	default:
		return New(0), nil
	}
}

func (t *ThreeFry32) seedFromScalar(seed uint64) {
	words := brng.Uint32ArrayFromUint64(seed)
	var expanded [4]uint64
	brng.ExpandWords(expanded[:], words[:])
	for i := 0; i < 4; i++ {
		t.key[i] = uint32(expanded[i])
	}
}

// Seed re-seeds from a 64-bit scalar, resetting the counter to zero and
// invalidating the buffer.
func (t *ThreeFry32) Seed(seed uint64) error {
	t.seedFromScalar(seed)
	t.counter = [4]uint32{}
	t.pos = 4
	return nil
}

// SeedWithCounter seeds from a scalar and sets an explicit starting
// 128-bit counter (lo/hi little-endian halves).
func (t *ThreeFry32) SeedWithCounter(seed uint64, counterLo, counterHi uint64) error {
	if err := t.Seed(seed); err != nil {
		return err
	}
	c, _ := brng.IntToArray(counterLo, counterHi, "counter", 128, 32)
	copy(t.counter[:], c)
	t.pos = 4
	return nil
}

func rotl32(x uint32, r uint32) uint32 {
	return (x << r) | (x >> (32 - r))
}

// block runs the 20-round Threefry-4x32 block cipher over a 128-bit
// counter block with the current key, producing four 32-bit outputs.
func (t *ThreeFry32) block(ctr [4]uint32) [4]uint32 {
	ks := [5]uint32{t.key[0], t.key[1], t.key[2], t.key[3], parity32}
	ks[4] ^= ks[0] ^ ks[1] ^ ks[2] ^ ks[3]

	x := [4]uint32{ctr[0] + ks[0], ctr[1] + ks[1], ctr[2] + ks[2], ctr[3] + ks[3]}

	for round := 0; round < rounds; round++ {
		r0, r1 := rot[round%8][0], rot[round%8][1]
		x[0] += x[1]
		x[1] = rotl32(x[1], r0) ^ x[0]
		x[2] += x[3]
		x[3] = rotl32(x[3], r1) ^ x[2]
		x[1], x[3] = x[3], x[1]

		if round%4 == 3 {
			s := round/4 + 1
			x[0] += ks[s%5]
			x[1] += ks[(s+1)%5]
			x[2] += ks[(s+2)%5]
			x[3] += ks[(s+3)%5] + uint32(s)
		}
	}
	return x
}

func incCounter(c *[4]uint32) {
	for i := 0; i < 4; i++ {
		c[i]++
		if c[i] != 0 {
			return
		}
	}
}

func (t *ThreeFry32) refill() {
	t.buffer = t.block(t.counter)
	incCounter(&t.counter)
	t.pos = 0
}

// Name identifies the algorithm for snapshot tagging.
func (t *ThreeFry32) Name() string { return "ThreeFry32" }

// NextUint32 returns buffer[0] first, then buffer[1..3], refilling (and
// incrementing the counter) once the buffer is exhausted.
func (t *ThreeFry32) NextUint32() uint32 {
	if t.pos >= 4 {
		t.refill()
	}
	v := t.buffer[t.pos]
	t.pos++
	return v
}

// NextUint64 concatenates two NextUint32 draws, high word first.
func (t *ThreeFry32) NextUint64() uint64 {
	hi := t.NextUint32()
	lo := t.NextUint32()
	return uint64(hi)<<32 | uint64(lo)
}

// NextDouble returns a float64 in [0, 1) via the 32-bit pairing formula.
func (t *ThreeFry32) NextDouble() float64 {
	a := t.NextUint32() >> 5
	b := t.NextUint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// NextRaw returns one native (32-bit) word, zero-extended to 64 bits.
func (t *ThreeFry32) NextRaw() uint64 { return uint64(t.NextUint32()) }

// State snapshots counter, key, buffer, and buffer position.
func (t *ThreeFry32) State() brng.Snapshot {
	return brng.Snapshot{
		Brng:      t.Name(),
		Counter4:  t.counter,
		Key4:      t.key,
		Buffer4:   t.buffer,
		BufferPos: t.pos,
	}
}

// SetState restores a snapshot, rejecting mismatched tags or an
// out-of-range buffer position before mutating anything.
func (t *ThreeFry32) SetState(s brng.Snapshot) error {
	if err := s.CheckTag(t.Name()); err != nil {
		return err
	}
	if s.BufferPos < 0 || s.BufferPos > 4 {
		return brng.NewRangeError("buffer_pos", "must be in [0, 4]")
	}
	t.counter = s.Counter4
	t.key = s.Key4
	t.buffer = s.Buffer4
	t.pos = s.BufferPos
	return nil
}

// Advance adds delta (a little-endian 128-bit value given as lo/hi
// halves) to the counter and invalidates the buffer, per spec §4.2.
// Advance composes: Advance(a) then Advance(b) produces the same
// subsequent output as a single Advance(a+b mod 2^128), since counter
// addition mod 2^128 is associative and commutative.
func (t *ThreeFry32) Advance(lo, hi uint64) error {
	words, err := brng.IntToArray(lo, hi, "delta", 128, 32)
	if err != nil {
		return err
	}
	var carry uint64
	for i := 0; i < 4; i++ {
		sum := uint64(t.counter[i]) + uint64(words[i]) + carry
		t.counter[i] = uint32(sum)
		carry = sum >> 32
	}
	t.pos = 4
	return nil
}

// Jump advances the counter by n * 2^64, i.e. n applications of
// advance(2^64) — the counter-based equivalent of MT19937/Xoshiro's
// jump(), per spec §4.2 and the "Jump algebra" invariant in §8. n is a
// uint64, so n*2^64 always fits the 128-bit delta (n becomes its high
// half); jump counts of 2^64 or more cannot be expressed.
func (t *ThreeFry32) Jump(n uint64) error {
	return t.Advance(0, n)
}
