package legacy

import (
	"math"
	"testing"

	"github.com/randcore/brngkit/brng"
	"github.com/randcore/brngkit/brng/xoshiro"
	"gonum.org/v1/gonum/stat"
)

// fixedSource is a Handle-compatible stub returning a fixed NextDouble
// sequence, used to exercise the gauss-cache draw-order invariant without
// depending on any particular BRNG's numeric output.
type fixedSource struct {
	vals []float64
	pos  int
}

func (f *fixedSource) Name() string       { return "Fixed" }
func (f *fixedSource) NextUint32() uint32 { return 0 }
func (f *fixedSource) NextUint64() uint64 { return 0 }
func (f *fixedSource) NextDouble() float64 {
	v := f.vals[f.pos%len(f.vals)]
	f.pos++
	return v
}
func (f *fixedSource) NextRaw() uint64          { return 0 }
func (f *fixedSource) State() brng.Snapshot     { return brng.Snapshot{Brng: "Fixed"} }
func (f *fixedSource) SetState(brng.Snapshot) error { return nil }

func newFixed(vals ...float64) *Generator {
	return New(brng.NewHandle(&fixedSource{vals: vals}))
}

func newXoshiro(seed uint64) *Generator {
	return New(brng.NewHandle(xoshiro.New(seed)))
}

func TestGaussCacheAcrossTwoCalls(t *testing.T) {
	// With next_double fixed at 0.25 forever: x1 = 2*0.25-1 = -0.5,
	// x2 = -0.5, r2 = 0.5 (in (0,1)), f = sqrt(-2*ln(0.5)/0.5).
	g := newFixed(0.25)
	first := g.Gauss()
	if !g.hasGauss {
		t.Fatal("expected a cached deviate to be available after the first Gauss() call")
	}
	cached := g.cachedGauss
	second := g.Gauss()
	if g.hasGauss {
		t.Fatal("expected the cache to be cleared after it was consumed")
	}
	if second != cached {
		t.Fatalf("second Gauss() = %v, want the cached value %v", second, cached)
	}
	if first == second {
		// f*x1 and f*x2 coincide only when x1 == x2, which they do for an
		// all-equal uniform stream; that is expected here, not a bug.
		r2 := 0.5*0.5 + 0.5*0.5
		f := math.Sqrt(-2.0 * math.Log(r2) / r2)
		if first != -f*0.5 {
			t.Fatalf("unexpected first Gauss() value: %v", first)
		}
	}
}

func TestGaussCacheSurvivesInterveningDraws(t *testing.T) {
	g := newXoshiro(42)
	first := g.Gauss()
	_ = first
	if !g.hasGauss {
		t.Fatal("expected cache populated")
	}
	cached := g.cachedGauss
	// Draw an unrelated distribution; the cache must not be touched by it.
	_ = g.StandardExponential()
	if !g.hasGauss || g.cachedGauss != cached {
		t.Fatal("expected the gauss cache to survive an intervening StandardExponential draw")
	}
	if got := g.Gauss(); got != cached {
		t.Fatalf("Gauss() = %v, want cached %v", got, cached)
	}
}

func TestStandardGammaShapeOneIsExponential(t *testing.T) {
	a := newXoshiro(7)
	b := newXoshiro(7)
	for i := 0; i < 100; i++ {
		if x, y := a.StandardGamma(1.0), b.StandardExponential(); x != y {
			t.Fatalf("draw %d: StandardGamma(1) = %v, StandardExponential() = %v", i, x, y)
		}
	}
}

func TestStandardGammaShapeZeroIsDegenerate(t *testing.T) {
	g := newXoshiro(1)
	for i := 0; i < 10; i++ {
		if v := g.StandardGamma(0); v != 0 {
			t.Fatalf("StandardGamma(0) = %v, want 0", v)
		}
	}
}

func TestWeibullZeroIsDegenerate(t *testing.T) {
	g := newXoshiro(1)
	if v := g.Weibull(0); v != 0 {
		t.Fatalf("Weibull(0) = %v, want 0", v)
	}
}

func TestCauchyIsRatioOfTwoGauss(t *testing.T) {
	a := newXoshiro(99)
	b := newXoshiro(99)
	for i := 0; i < 50; i++ {
		want := b.Gauss() / b.Gauss()
		got := a.Cauchy()
		if got != want {
			t.Fatalf("draw %d: Cauchy() = %v, want %v", i, got, want)
		}
	}
}

func TestPoissonZeroLambda(t *testing.T) {
	g := newXoshiro(3)
	if v := g.Poisson(0); v != 0 {
		t.Fatalf("Poisson(0) = %v, want 0", v)
	}
}

func TestPoissonNaNPropagatesAfterOneDraw(t *testing.T) {
	fixed := newFixed(0.5)
	v := fixed.Poisson(math.NaN())
	if !math.IsNaN(v) {
		t.Fatalf("Poisson(NaN) = %v, want NaN", v)
	}
	if fixed.Handle.Engine().(*fixedSource).pos != 1 {
		t.Fatal("expected Poisson(NaN) to still advance the stream by one draw")
	}
}

func TestNoncentralChiSquareNonCentralityZero(t *testing.T) {
	a := newXoshiro(55)
	b := newXoshiro(55)
	for i := 0; i < 50; i++ {
		if x, y := a.NoncentralChiSquare(4, 0), b.ChiSquare(4); x != y {
			t.Fatalf("draw %d: NoncentralChiSquare(df,0) = %v, want ChiSquare(df) = %v", i, x, y)
		}
	}
}

func TestNormalMomentsRoughlyMatch(t *testing.T) {
	g := newXoshiro(123456789)
	const n = 20000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = g.Normal(3.0, 2.0)
	}
	mean := stat.Mean(samples, nil)
	sd := stat.StdDev(samples, nil)
	if math.Abs(mean-3.0) > 0.1 {
		t.Fatalf("sample mean %v too far from 3.0", mean)
	}
	if math.Abs(sd-2.0) > 0.1 {
		t.Fatalf("sample stddev %v too far from 2.0", sd)
	}
}

func TestExponentialMeanRoughlyMatches(t *testing.T) {
	g := newXoshiro(24680)
	const n = 20000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = g.StandardExponential()
	}
	mean := stat.Mean(samples, nil)
	if math.Abs(mean-1.0) > 0.05 {
		t.Fatalf("sample mean %v too far from 1.0", mean)
	}
}

func TestTriangularBounds(t *testing.T) {
	g := newXoshiro(808)
	for i := 0; i < 2000; i++ {
		v := g.Triangular(-1, 0, 2)
		if v < -1 || v > 2 {
			t.Fatalf("Triangular draw %v out of bounds [-1, 2]", v)
		}
	}
}

func TestVonMisesSmallKappaIsUniformAngle(t *testing.T) {
	g := newXoshiro(909)
	for i := 0; i < 2000; i++ {
		v := g.VonMises(0, 0)
		if v < -math.Pi || v > math.Pi {
			t.Fatalf("VonMises draw %v out of [-pi, pi]", v)
		}
	}
}

func TestScaleInvariants(t *testing.T) {
	a := newXoshiro(321)
	b := newXoshiro(321)
	for i := 0; i < 50; i++ {
		want := 2.5 * a.StandardGamma(3.0)
		got := b.Gamma(3.0, 2.5)
		if got != want {
			t.Fatalf("draw %d: Gamma(3,2.5) = %v, want %v", i, got, want)
		}
	}
}
