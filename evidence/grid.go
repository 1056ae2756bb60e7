// Package evidence estimates the marginal likelihood ("evidence") of a
// dataset under the pooled single-Gaussian model and the two-component
// mixture model, by two independent estimators: a Riemann sum over
// fixed prior-quantile grids, and Monte Carlo sampling from the prior.
package evidence

import (
	"fmt"

	"github.com/domino14/poolornot/prior"
)

// QuantileGrid holds the precomputed parameter grids used by the
// Riemann-sum integrators. It is built once per process and read-only
// afterwards.
type QuantileGrid struct {
	// Means are Gaussian-prior quantiles at i/(G+1) for i = 1..G, so
	// the unbounded tails at probability 0 and 1 are never touched.
	Means []float64
	// Sigmas come from Gamma precision quantiles at i/S for i = 0..S-1,
	// converted through 1/sqrt. Precision grows with i, so this grid is
	// decreasing; its first entry is +Inf (zero precision), which the
	// density maps to a zero contribution.
	Sigmas []float64
	// MixCofs are Beta(0.5,0.5) quantiles at 0.5·i/M for i = 0..M-1.
	// Only the lower half of the weight range is gridded: swapping the
	// components and replacing the weight w with 1-w yields the same
	// mixture density. Note the Riemann sum divides by the raw cell
	// count with no factor-of-two compensation for the omitted upper
	// half, matching the reference behavior.
	MixCofs []float64
}

// NewQuantileGrid precomputes the three grids from the prior's quantile
// functions. Runs once at startup; the priors are fixed for the life of
// the process.
func NewQuantileGrid(p *prior.Prior, gaussN, gammaN, jbetaN int) (*QuantileGrid, error) {
	if gaussN <= 0 || gammaN <= 0 || jbetaN <= 0 {
		return nil, fmt.Errorf("evidence: grid sizes must be positive, got %d/%d/%d",
			gaussN, gammaN, jbetaN)
	}
	g := &QuantileGrid{
		Means:   make([]float64, gaussN),
		Sigmas:  make([]float64, gammaN),
		MixCofs: make([]float64, jbetaN),
	}
	for i := 0; i < gaussN; i++ {
		g.Means[i] = p.MuQuantile(float64(i+1) / float64(gaussN+1))
	}
	for i := 0; i < gammaN; i++ {
		g.Sigmas[i] = prior.SigmaOfPrecision(p.PrecisionQuantile(float64(i) / float64(gammaN)))
	}
	for i := 0; i < jbetaN; i++ {
		g.MixCofs[i] = p.MixQuantile(0.5 * float64(i) / float64(jbetaN))
	}
	return g, nil
}
