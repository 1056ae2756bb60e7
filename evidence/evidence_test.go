package evidence

import (
	"math"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/domino14/poolornot/gauss"
	"github.com/domino14/poolornot/prior"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newTestEstimator(t *testing.T, seed uint64, iterations, gaussN, gammaN, jbetaN int) *Estimator {
	t.Helper()
	h := prior.DefaultHyper()
	p := newTestPrior(t, seed)
	grid, err := NewQuantileGrid(p, gaussN, gammaN, jbetaN)
	if err != nil {
		t.Fatal(err)
	}
	est, err := NewEstimator(grid, h, seed, iterations, 2)
	if err != nil {
		t.Fatal(err)
	}
	return est
}

// stylizedSample returns the most-typical n-point sample of a Gaussian:
// its values sit at the quantiles (i+0.5)/n. Deterministic, so tests on
// selection behavior do not depend on a lucky draw.
func stylizedSample(n int, p gauss.Params) gauss.Dataset {
	norm := distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}
	d := make(gauss.Dataset, n)
	for i := range d {
		d[i] = norm.Quantile((float64(i) + 0.5) / float64(n))
	}
	return d
}

func stylizedMixtureSample(n int, p1, p2 gauss.Params) gauss.Dataset {
	half := stylizedSample(n/2, p1)
	return append(half, stylizedSample(n-n/2, p2)...)
}

func TestEstimatesNonNegativeFinite(t *testing.T) {
	is := is.New(t)
	est := newTestEstimator(t, 5, 20_000, 12, 8, 16)
	data := stylizedSample(12, gauss.Params{Mu: 1, Sigma: 2})

	for _, v := range []float64{
		est.PooledBySumming(data),
		est.DifferBySumming(data),
		est.PooledBySampling(data),
		est.DifferBySampling(data),
	} {
		is.True(v >= 0)
		is.True(!math.IsInf(v, 1))
		is.True(!math.IsNaN(v))
	}
}

func TestSamplingDeterminism(t *testing.T) {
	is := is.New(t)
	data := stylizedSample(12, gauss.Params{Mu: 0, Sigma: 1})

	a := newTestEstimator(t, 31, 30_000, 8, 6, 10)
	b := newTestEstimator(t, 31, 30_000, 8, 6, 10)
	// Same seed and call order must reproduce estimates exactly.
	is.Equal(a.PooledBySampling(data), b.PooledBySampling(data))
	is.Equal(a.DifferBySampling(data), b.DifferBySampling(data))
	is.Equal(a.PooledBySumming(data), b.PooledBySumming(data))
}

func TestSamplingConsistencyAcrossSeeds(t *testing.T) {
	is := is.New(t)
	data := stylizedSample(8, gauss.Params{Mu: 0, Sigma: 1})

	a := newTestEstimator(t, 3, 200_000, 8, 6, 10)
	b := newTestEstimator(t, 4, 200_000, 8, 6, 10)
	ea := a.PooledBySampling(data)
	eb := b.PooledBySampling(data)
	is.True(ea > 0)
	is.True(eb > 0)
	ratio := ea / eb
	is.True(ratio > 0.5 && ratio < 2)
}

func TestPooledDataPrefersPooled(t *testing.T) {
	is := is.New(t)
	est := newTestEstimator(t, 17, 100_000, 20, 10, 40)
	data := stylizedSample(40, gauss.Params{Mu: 0, Sigma: 1})

	is.True(est.PooledBySumming(data) > est.DifferBySumming(data))
	is.True(est.PooledBySampling(data) > est.DifferBySampling(data))
}

func TestSeparatedMixturePrefersDiffer(t *testing.T) {
	is := is.New(t)
	est := newTestEstimator(t, 23, 100_000, 20, 10, 40)
	data := stylizedMixtureSample(40,
		gauss.Params{Mu: -3, Sigma: 0.5},
		gauss.Params{Mu: 3, Sigma: 0.5})

	is.True(est.DifferBySumming(data) > est.PooledBySumming(data))
	is.True(est.DifferBySampling(data) > est.PooledBySampling(data))
}

func TestDegenerateWeightGridCollapses(t *testing.T) {
	is := is.New(t)
	p := newTestPrior(t, 7)
	grid, err := NewQuantileGrid(p, 10, 6, 8)
	is.NoErr(err)

	// With the weight pinned at zero, every mixture cell reduces to its
	// second component, so the five-way sum must equal the pooled sum.
	collapsed := &QuantileGrid{
		Means:   grid.Means,
		Sigmas:  grid.Sigmas,
		MixCofs: []float64{0},
	}
	est, err := NewEstimator(collapsed, prior.DefaultHyper(), 7, 1000, 2)
	is.NoErr(err)

	data := stylizedSample(16, gauss.Params{Mu: 0.5, Sigma: 1.5})
	pooled := est.PooledBySumming(data)
	differ := est.DifferBySumming(data)
	is.True(pooled > 0)
	is.True(math.Abs(differ-pooled)/pooled < 1e-9)
}
