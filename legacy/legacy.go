// Package legacy implements the legacy-compatible distribution sampler
// (spec §4.3): a suite of continuous and discrete samplers layered over
// any brng.Handle, whose exact uniform-consumption order — branch order,
// rejection-test order, and draw order — is part of the public contract.
// Every method here pulls uniforms exclusively through the wrapped
// handle's NextDouble, so reseeding the handle reproduces the whole
// distribution stream bit for bit.
package legacy

import (
	"math"

	"github.com/randcore/brngkit/brng"
)

// Generator is an "augmented BRNG": a handle plus the one-deviate Gauss
// cache spec §4.3 describes. It embeds *brng.Handle, so Lock/Unlock and
// the raw Next* methods are available directly on a *Generator.
type Generator struct {
	*brng.Handle

	hasGauss    bool
	cachedGauss float64
}

// New wraps h as an augmented generator with an empty Gauss cache.
func New(h *brng.Handle) *Generator {
	return &Generator{Handle: h}
}

// Gauss draws a standard normal deviate via the polar (rejection)
// Box-Muller method: reject pairs (x1, x2) of 2u-1 until
// r^2 = x1^2+x2^2 is in (0, 1), emit f*x2, and cache f*x1 for the
// following call. The cached value is returned — and cleared — on the
// very next call, regardless of how many other distributions are drawn
// in between, matching spec §8's Gauss cache law.
func (g *Generator) Gauss() float64 {
	if g.hasGauss {
		g.hasGauss = false
		return g.cachedGauss
	}
	var x1, x2, r2 float64
	for {
		x1 = 2.0*g.NextDouble() - 1.0
		x2 = 2.0*g.NextDouble() - 1.0
		r2 = x1*x1 + x2*x2
		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}
	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	g.cachedGauss = f * x1
	g.hasGauss = true
	return f * x2
}

// StandardExponential draws from Exp(1) via inversion: -ln(1-u).
func (g *Generator) StandardExponential() float64 {
	return -math.Log(1.0 - g.NextDouble())
}

// StandardGamma draws from Gamma(shape, 1). shape==1 degenerates to the
// exponential; shape==0 is degenerate at zero; shape<1 uses Ahrens-Dieter
// rejection (one uniform, one exponential per trial); shape>1 uses the
// Marsaglia-Tsang squeeze, with the cached Gauss deviate preserved across
// rejected trials exactly as any other Gauss() caller would see it.
func (g *Generator) StandardGamma(shape float64) float64 {
	switch {
	case shape == 1.0:
		return g.StandardExponential()
	case shape == 0.0:
		return 0.0
	case shape < 1.0:
		for {
			u := g.NextDouble()
			v := g.StandardExponential()
			if u <= 1.0-shape {
				x := math.Pow(u, 1.0/shape)
				if x <= v {
					return x
				}
			} else {
				y := -math.Log((1.0 - u) / shape)
				x := math.Pow(1.0-shape+shape*y, 1.0/shape)
				if x <= v+y {
					return x
				}
			}
		}
	default: // shape > 1
		d := shape - 1.0/3.0
		c := 1.0 / math.Sqrt(9.0*d)
		for {
			var x, v float64
			for {
				x = g.Gauss()
				v = 1.0 + c*x
				if v > 0 {
					break
				}
			}
			v = v * v * v
			u := g.NextDouble()
			x2 := x * x
			if u < 1.0-0.0331*x2*x2 {
				return d * v
			}
			if math.Log(u) < 0.5*x2+d*(1.0-v+math.Log(v)) {
				return d * v
			}
		}
	}
}

// Gamma draws from Gamma(shape, scale) = scale * StandardGamma(shape).
func (g *Generator) Gamma(shape, scale float64) float64 {
	return scale * g.StandardGamma(shape)
}

// Beta draws from Beta(a, b). When both a<=1 and b<=1, Jöhnk's algorithm
// is used, with an underflow-safe log-domain fallback for the degenerate
// X+Y==0 case; otherwise Beta is computed as Ga/(Ga+Gb).
func (g *Generator) Beta(a, b float64) float64 {
	if a <= 1.0 && b <= 1.0 {
		for {
			u := g.NextDouble()
			v := g.NextDouble()
			x := math.Pow(u, 1.0/a)
			y := math.Pow(v, 1.0/b)
			if x+y <= 1.0 {
				if x+y > 0 {
					return x / (x + y)
				}
				// u, v underflowed x and y to 0: recover the ratio in
				// log space instead of dividing 0/0.
				logX := math.Log(u) / a
				logY := math.Log(v) / b
				logM := math.Max(logX, logY)
				logX -= logM
				logY -= logM
				return math.Exp(logX - math.Log(math.Exp(logX)+math.Exp(logY)))
			}
		}
	}
	ga := g.StandardGamma(a)
	gb := g.StandardGamma(b)
	return ga / (ga + gb)
}

// ChiSquare draws from a chi-squared distribution with df degrees of
// freedom: 2 * Gamma(df/2, 1).
func (g *Generator) ChiSquare(df float64) float64 {
	return 2.0 * g.StandardGamma(df/2.0)
}

// F draws from the F distribution via the ratio of two scaled
// chi-squares.
func (g *Generator) F(dfnum, dfden float64) float64 {
	return (g.ChiSquare(dfnum) / dfnum) / (g.ChiSquare(dfden) / dfden)
}

// NoncentralChiSquare draws from a noncentral chi-squared distribution.
// Three branches on nonc and df, per spec §4.3: nonc==0 collapses to the
// central chi-square; df>1 composes a central chi-square on df-1 with one
// shifted Gauss draw squared; otherwise a Poisson mixture selects the
// effective degrees of freedom. A NaN nonc is not special-cased up front:
// the branch taken (nonc==0 is false for NaN) still performs its draws.
// In the df>1 branch the NaN propagates through sqrt into the result; in
// the mixture branch Poisson(NaN) draws once and its NaN count is taken
// as 0, ChiSquare(df) is drawn, and NaN is returned only after that —
// preserving the draw sequence exactly as spec §9's open question
// requires, even though returning NaN only after sampling is, as noted
// there, arguably a latent defect in the contract being preserved.
func (g *Generator) NoncentralChiSquare(df, nonc float64) float64 {
	switch {
	case nonc == 0:
		return g.ChiSquare(df)
	case df > 1:
		chi2 := g.ChiSquare(df - 1)
		n := g.Gauss() + math.Sqrt(nonc)
		return chi2 + n*n
	default:
		i := g.Poisson(nonc / 2.0)
		if math.IsNaN(i) {
			i = 0
		}
		out := g.ChiSquare(df + 2*i)
		if math.IsNaN(nonc) {
			return math.NaN()
		}
		return out
	}
}

// NoncentralF draws from a noncentral F distribution by composing
// NoncentralChiSquare with a central ChiSquare ratio.
func (g *Generator) NoncentralF(dfnum, dfden, nonc float64) float64 {
	t := g.NoncentralChiSquare(dfnum, nonc) / dfnum
	return t / (g.ChiSquare(dfden) / dfden)
}

// Wald draws from the Wald (inverse Gaussian) distribution via the
// Michael-Schucany-Haas algorithm: one Gauss draw, then one uniform to
// pick between the two algebraic roots.
func (g *Generator) Wald(mean, scale float64) float64 {
	y := g.Gauss()
	y = y * y
	x := mean + mean*mean*y/(2*scale) - (mean/(2*scale))*math.Sqrt(4*mean*scale*y+mean*mean*y*y)
	u := g.NextDouble()
	if u <= mean/(mean+x) {
		return x
	}
	return mean * mean / x
}

// Normal draws from N(loc, scale^2) = loc + scale*Gauss().
func (g *Generator) Normal(loc, scale float64) float64 {
	return loc + scale*g.Gauss()
}

// Lognormal draws from a lognormal distribution: exp(Normal(mean, sigma)).
func (g *Generator) Lognormal(mean, sigma float64) float64 {
	return math.Exp(g.Normal(mean, sigma))
}

// StandardT draws from Student's t distribution with df degrees of
// freedom, as a Gauss draw over the square root of a scaled gamma draw.
func (g *Generator) StandardT(df float64) float64 {
	num := g.Gauss()
	denom := g.StandardGamma(df / 2.0)
	return num * math.Sqrt(df/2.0) / math.Sqrt(denom)
}

// Cauchy draws from the standard Cauchy distribution as the ratio of two
// independent Gauss draws.
func (g *Generator) Cauchy() float64 {
	return g.Gauss() / g.Gauss()
}

// Pareto draws from the Pareto II (Lomax) distribution via a standard
// exponential.
func (g *Generator) Pareto(a float64) float64 {
	return math.Expm1(g.StandardExponential() / a)
}

// Weibull draws from the Weibull distribution via a standard exponential.
// a==0 is degenerate at zero.
func (g *Generator) Weibull(a float64) float64 {
	if a == 0 {
		return 0
	}
	return math.Pow(g.StandardExponential(), 1.0/a)
}

// Power draws from the power-function distribution via a standard
// exponential.
func (g *Generator) Power(a float64) float64 {
	return math.Pow(-math.Expm1(-g.StandardExponential()), 1.0/a)
}

// NegativeBinomial draws from NegBinomial(n, p) as Poisson(Gamma(n,
// (1-p)/p)) — the composition spec §4.3 specifies, with Poisson
// implemented locally (§4.3's "surrounding system" collaborator) instead
// of left as an external dependency.
func (g *Generator) NegativeBinomial(n, p float64) float64 {
	y := g.Gamma(n, (1-p)/p)
	return g.Poisson(y)
}

// Poisson draws from Poisson(lam) via Knuth's multiplicative method. A
// NaN lam is not guarded against up front, consistent with
// NoncentralChiSquare's draw-then-propagate contract: one uniform is
// drawn (so the stream still advances) and NaN is returned.
func (g *Generator) Poisson(lam float64) float64 {
	if math.IsNaN(lam) {
		g.NextDouble()
		return math.NaN()
	}
	if lam == 0 {
		return 0
	}
	l := math.Exp(-lam)
	k := 0
	p := 1.0
	for {
		k++
		p *= g.NextDouble()
		if p <= l {
			break
		}
	}
	return float64(k - 1)
}

// Triangular draws from the triangular distribution on [left, right]
// with mode `mode`.
func (g *Generator) Triangular(left, mode, right float64) float64 {
	base := right - left
	leftbase := mode - left
	ratio := leftbase / base
	u := g.NextDouble()
	if u <= ratio {
		return left + math.Sqrt(u*base*leftbase)
	}
	return right - math.Sqrt((1-u)*base*(right-mode))
}

// VonMises draws from the von Mises distribution via Best & Fisher's
// rejection algorithm, degenerating to a uniform angle when kappa is too
// small for the rejection envelope to be numerically stable.
func (g *Generator) VonMises(mu, kappa float64) float64 {
	if kappa < 1e-8 {
		return math.Pi * (2.0*g.NextDouble() - 1.0)
	}

	r := 1.0 + math.Sqrt(1.0+4.0*kappa*kappa)
	rho := (r - math.Sqrt(2.0*r)) / (2.0 * kappa)
	s := (1.0 + rho*rho) / (2.0 * rho)

	var w float64
	for {
		u1 := g.NextDouble()
		z := math.Cos(math.Pi * u1)
		w = (1.0 + s*z) / (s + z)
		y := kappa * (s - w)
		u2 := g.NextDouble()
		if y*(2.0-y)-u2 >= 0 || math.Log(y/u2)+1.0-y >= 0 {
			break
		}
	}

	u3 := g.NextDouble()
	var result float64
	if u3 > 0.5 {
		result = math.Acos(w)
	} else {
		result = -math.Acos(w)
	}
	result += mu

	mod := math.Mod(result+math.Pi, 2.0*math.Pi)
	if mod < 0 {
		mod += 2.0 * math.Pi
	}
	return mod - math.Pi
}
