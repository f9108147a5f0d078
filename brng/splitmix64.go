package brng

// SplitMix64 is the deterministic 64->64 mixer (component B) used to
// expand a user's scalar or array seed into full BRNG state for every
// algorithm in this module. Each call advances z and returns one mixed
// 64-bit output; the zero value is a valid starting state (z == 0).
type SplitMix64 struct {
	z uint64
}

// NewSplitMix64 returns a mixer seeded at z.
func NewSplitMix64(z uint64) *SplitMix64 {
	return &SplitMix64{z: z}
}

// Next advances the mixer and returns the next 64-bit output.
func (s *SplitMix64) Next() uint64 {
	s.z += 0x9E3779B97F4A7C15
	z := s.z
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// ExpandWords fills dst with successive outputs of a single SplitMix64
// stream seeded from 0, XOR-folding seed[i] into slot i when i <
// len(seed). This is the §4.5 slot-expansion rule: one mixer advances
// continuously across every slot (matching the standard splitmix64
// seed-expansion recipe, e.g. xoshiro256** seed=0 starts at
// {0xe220a8397b1dcdaf, 0x6e789e6aa1b965f4, 0x6c45d188009454f,
// 0xf88bb8a8724c81ec}), so a single-element seed array and the
// equivalent scalar still produce identical initial state in every
// algorithm that uses this helper (the scalar/array seed equivalence
// invariant in spec §8) — both paths draw from slot 0 of the same
// continuously-advancing stream.
func ExpandWords(dst []uint64, seed []uint32) {
	mix := NewSplitMix64(0)
	for i := range dst {
		v := mix.Next()
		if i < len(seed) {
			v ^= uint64(seed[i])
		}
		dst[i] = v
	}
}
