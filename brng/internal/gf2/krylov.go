package gf2

import "math/bits"

// This file implements jump-ahead via GF(2) polynomial arithmetic modulo
// a minimal polynomial derived at runtime, for state sizes where the
// dense-matrix approach in gf2.go (BuildFromStep/Pow2/MulN) is too
// expensive to run (MT19937's 19968-bit state). A polynomial here is a
// []uint64 bit-packed, little-endian coefficient vector: bit i is the
// coefficient of x^i.

func wordsFor(nBits int) int { return (nBits + 63) / 64 }

// polyDegree returns the index of the highest set bit, or -1 for the
// zero polynomial.
func polyDegree(p []uint64) int {
	for w := len(p) - 1; w >= 0; w-- {
		if p[w] != 0 {
			return w*64 + bits.Len64(p[w]) - 1
		}
	}
	return -1
}

func polyBit(p []uint64, i int) uint64 {
	if i/64 >= len(p) {
		return 0
	}
	return (p[i/64] >> uint(i%64)) & 1
}

// xorShiftInto XORs src, shifted left by shift bits, into dst.
func xorShiftInto(dst, src []uint64, shift int) {
	wordShift := shift / 64
	bitShift := uint(shift % 64)
	for i := 0; i < len(src); i++ {
		di := i + wordShift
		if di >= len(dst) {
			break
		}
		if bitShift == 0 {
			dst[di] ^= src[i]
			continue
		}
		dst[di] ^= src[i] << bitShift
		if di+1 < len(dst) {
			dst[di+1] ^= src[i] >> (64 - bitShift)
		}
	}
}

// squareGF2 returns p^2 over GF(2): cross terms vanish mod 2, so bit 2*i
// of the result is bit i of p and every odd-indexed bit is 0. No
// multiplication is needed, only a bit spread.
func squareGF2(p []uint64) []uint64 {
	out := make([]uint64, 2*len(p))
	for w, word := range p {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &= word - 1
			bit := w*64 + b
			dst := bit * 2
			out[dst/64] |= 1 << uint(dst%64)
		}
	}
	return out
}

// mulPoly returns the raw (unreduced) product a*b over GF(2).
func mulPoly(a, b []uint64) []uint64 {
	out := make([]uint64, len(a)+len(b))
	for w, word := range a {
		for word != 0 {
			b2 := bits.TrailingZeros64(word)
			word &= word - 1
			xorShiftInto(out, b, w*64+b2)
		}
	}
	return out
}

// reduceModPoly reduces p modulo mod, a monic polynomial of degree
// modDeg (polyBit(mod, modDeg) == 1), returning the remainder as a
// polynomial of exactly wordsFor(modDeg) words.
func reduceModPoly(p []uint64, mod []uint64, modDeg int) []uint64 {
	rem := make([]uint64, len(p))
	copy(rem, p)
	for {
		d := polyDegree(rem)
		if d < modDeg {
			break
		}
		xorShiftInto(rem, mod, d-modDeg)
	}
	out := make([]uint64, wordsFor(modDeg))
	copy(out, rem[:min(len(rem), len(out))])
	return out
}

// berlekampMassey finds the shortest linear feedback recurrence
// generating the bit sequence s: the returned slice c (c[0]==1) encodes
// s[i] == c[1]*s[i-1] XOR ... XOR c[L]*s[i-L] for all i >= L = len(c)-1.
func berlekampMassey(s []byte) []byte {
	n := len(s)
	c := make([]byte, n+1)
	b := make([]byte, n+1)
	c[0], b[0] = 1, 1
	l := 0
	m := 1

	for i := 0; i < n; i++ {
		d := s[i]
		for j := 1; j <= l; j++ {
			d ^= c[j] & s[i-j]
		}
		if d == 0 {
			m++
			continue
		}
		t := make([]byte, len(c))
		copy(t, c)
		for j := 0; j+m < len(c); j++ {
			c[j+m] ^= b[j]
		}
		if 2*l <= i {
			l = i + 1 - l
			b = t
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// MinimalPolynomial derives a monic polynomial of degree <= n, satisfied
// by the linear operator step realizes, by running Berlekamp-Massey over
// the bit sequence step produces from a fixed nonzero start vector. It is
// grounded directly in step's own behavior rather than any offline table:
// as long as the start vector is a cyclic vector for the operator (true
// with overwhelming likelihood for any fixed nonzero vector, and in
// particular for MT19937's well-studied twist recurrence, whose
// characteristic and minimal polynomials coincide), the recovered
// polynomial annihilates every state, not just the one it was derived
// from, so it can be reused for jump-ahead from any seed.
func MinimalPolynomial(n int, step func([]uint64)) (poly []uint64, degree int) {
	state := make([]uint64, wordsFor(n))
	state[0] = 1

	seqLen := 2 * n
	seq := make([]byte, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = byte(state[0] & 1)
		step(state)
	}

	c := berlekampMassey(seq)
	deg := len(c) - 1

	// berlekampMassey's connection polynomial is indexed in the opposite
	// order from the characteristic-polynomial convention the rest of
	// this file uses (highest-degree bit = monic leading term): reverse
	// it here.
	p := make([]uint64, wordsFor(deg+1))
	for i := 0; i <= deg; i++ {
		if c[deg-i] == 1 {
			p[i/64] |= 1 << uint(i%64)
		}
	}
	return p, deg
}

// PowXOfPow2Mod computes x^(2^doublings) mod mod, via `doublings`
// repeated GF(2) squarings starting from x^1.
func PowXOfPow2Mod(doublings int, mod []uint64, modDeg int) []uint64 {
	p := make([]uint64, wordsFor(modDeg))
	p[0] = 2 // x^1: bit 1 set
	for i := 0; i < doublings; i++ {
		p = reduceModPoly(squareGF2(p), mod, modDeg)
	}
	return p
}

// PolyPowMod computes base^exp mod mod via binary exponentiation.
func PolyPowMod(base []uint64, exp uint64, mod []uint64, modDeg int) []uint64 {
	result := make([]uint64, wordsFor(modDeg))
	result[0] = 1 // the polynomial "1"
	cur := reduceModPoly(base, mod, modDeg)
	for exp > 0 {
		if exp&1 == 1 {
			result = reduceModPoly(mulPoly(result, cur), mod, modDeg)
		}
		exp >>= 1
		if exp > 0 {
			cur = reduceModPoly(mulPoly(cur, cur), mod, modDeg)
		}
	}
	return result
}

// ApplyPoly evaluates poly(T) applied to w, where T is the linear
// operator step realizes, via Horner's method: for poly = sum q_i x^i,
// repeatedly folds in one more application of step and XORs in w
// whenever the corresponding coefficient is set. This costs
// O(deg(poly)) applications of step, never materializing a matrix.
func ApplyPoly(poly []uint64, step func([]uint64), w []uint64) []uint64 {
	d := polyDegree(poly)
	acc := make([]uint64, len(w))
	for i := d; i >= 0; i-- {
		step(acc)
		if polyBit(poly, i) == 1 {
			for j := range acc {
				acc[j] ^= w[j]
			}
		}
	}
	return acc
}
