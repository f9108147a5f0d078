// Package gf2 implements the GF(2) linear algebra behind jump() for this
// module's BRNGs. Every algorithm's raw state-advance step is GF(2)-linear
// (pure XOR/shift/rotate), so "jump by 2^128 outputs" is always some
// linear operator applied to the state; this package offers two ways to
// realize that operator, chosen per algorithm by state size:
//
//   - Dense n x n bit-matrix squaring (BuildFromStep, Pow2, MulN, Apply):
//     build the matrix of one step by running it over each standard basis
//     vector, then raise it to a power by repeated matrix squaring. Each
//     squaring costs O(n^3/64) word operations, which is fine for
//     Xoshiro256**'s 256-bit state but grows prohibitive for MT19937's
//     19968-bit one (hours, not seconds).
//   - GF(2) polynomial (minimal-polynomial) arithmetic (krylov.go):
//     derive, via Berlekamp-Massey, a polynomial the state-advance
//     operator itself satisfies, then compute the jump operator as a
//     polynomial reduced modulo it. Squaring a GF(2) polynomial is O(n)
//     (no cross terms survive mod 2), and reduction is O(n^2/64), so this
//     scales to MT19937's state where dense matrix squaring cannot.
//
// Both are derived at runtime from the algorithm's own verified
// state-advance function, never from an externally sourced jump-constant
// table this environment has no way to source or verify; see DESIGN.md
// for the trade-off this records.
package gf2

import "math/bits"

// Matrix is an n x n bit matrix over GF(2), n a multiple of 64, stored
// one packed row at a time.
type Matrix struct {
	n    int
	rows [][]uint64 // rows[i] is row i, n/64 words
}

func newMatrix(n int) Matrix {
	words := n / 64
	rows := make([][]uint64, n)
	for i := range rows {
		rows[i] = make([]uint64, words)
	}
	return Matrix{n: n, rows: rows}
}

// BuildFromStep constructs the matrix of the linear map `step`, where
// step(words) overwrites words in place with the result of applying the
// algorithm's one-step state transition to the bit-vector words
// represents. n must be a multiple of 64 and len match n/64.
func BuildFromStep(n int, step func(words []uint64)) Matrix {
	m := newMatrix(n)
	words := n / 64
	basis := make([]uint64, words)
	for bit := 0; bit < n; bit++ {
		for i := range basis {
			basis[i] = 0
		}
		basis[bit/64] = uint64(1) << uint(bit%64)
		step(basis)
		// Column `bit` of M is the image of basis vector `bit`.
		for row := 0; row < n; row++ {
			if basis[row/64]>>uint(row%64)&1 != 0 {
				m.rows[row][bit/64] |= uint64(1) << uint(bit%64)
			}
		}
	}
	return m
}

// mul computes a*b (both n x n, same n) over GF(2).
func mul(a, b Matrix) Matrix {
	n := a.n
	words := n / 64
	out := newMatrix(n)
	// out[i][j] = XOR over k where a[i][k]==1 of b[k][j]
	for i := 0; i < n; i++ {
		var acc = make([]uint64, words)
		for kw := 0; kw < words; kw++ {
			bits64 := a.rows[i][kw]
			for bits64 != 0 {
				kb := bits.TrailingZeros64(bits64)
				bits64 &= bits64 - 1
				k := kw*64 + kb
				brow := b.rows[k]
				for w := 0; w < words; w++ {
					acc[w] ^= brow[w]
				}
			}
		}
		out.rows[i] = acc
	}
	return out
}

// Pow2 raises m to a power of two given as a count of doublings
// (Pow2(m, 128) == m^(2^128)), via repeated squaring:
// result = m^(2^doublings).
func Pow2(m Matrix, doublings int) Matrix {
	result := m
	for i := 0; i < doublings; i++ {
		result = mul(result, result)
	}
	return result
}

// MulN returns m^times via binary exponentiation (square-and-multiply),
// so a caller's Jump(n) costs O(log n) matrix multiplications rather than
// O(n) — important since n is a caller-supplied stream index with no
// assumed bound.
func MulN(m Matrix, times uint64) Matrix {
	result := identity(m.n)
	base := m
	for times > 0 {
		if times&1 == 1 {
			result = mul(result, base)
		}
		times >>= 1
		if times > 0 {
			base = mul(base, base)
		}
	}
	return result
}

func identity(n int) Matrix {
	m := newMatrix(n)
	for i := 0; i < n; i++ {
		m.rows[i][i/64] = uint64(1) << uint(i%64)
	}
	return m
}

// Apply computes m*v (v an n-bit column vector) and overwrites dst.
func Apply(m Matrix, v []uint64, dst []uint64) {
	n := m.n
	words := n / 64
	out := make([]uint64, words)
	for row := 0; row < n; row++ {
		var acc uint64
		r := m.rows[row]
		for w := 0; w < words; w++ {
			acc ^= r[w] & v[w]
		}
		if bits.OnesCount64(acc)&1 == 1 {
			out[row/64] |= uint64(1) << uint(row%64)
		}
	}
	copy(dst, out)
}
