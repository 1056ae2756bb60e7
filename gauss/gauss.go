// Package gauss holds the parameter types shared by the whole program:
// a single Gaussian component, a two-component Gaussian mixture, and the
// dataset both models are scored against. The densities here are the
// likelihood terms that every evidence integral is built from.
package gauss

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const invSqrt2Pi = 0.3989422804014326779399460599343818684758586311649346576659258296

// Params describes one Gaussian component. Sigma must be positive.
type Params struct {
	Mu    float64
	Sigma float64
}

// PDF returns the normal density at x. It is strictly positive for any
// finite standardized distance; it underflows toward zero in the far
// tails and that underflow is deliberately not clamped, since the
// integrators expect products of many small densities.
func (p Params) PDF(x float64) float64 {
	z := (x - p.Mu) / p.Sigma
	return invSqrt2Pi / p.Sigma * math.Exp(-0.5*z*z)
}

// MixtureParams is the full parameter vector of the two-component model.
// MixCof is the prior mass assigned to Gauss1.
type MixtureParams struct {
	MixCof float64
	Gauss1 Params
	Gauss2 Params
}

// PDF returns the mixture density at x:
// MixCof·pdf1(x) + (1−MixCof)·pdf2(x).
func (m MixtureParams) PDF(x float64) float64 {
	return m.MixCof*m.Gauss1.PDF(x) + (1-m.MixCof)*m.Gauss2.PDF(x)
}

// Dataset is one synthetic sample. It is filled once by the generator
// and read-only from then on.
type Dataset []float64

func (d Dataset) Mean() float64 {
	return stat.Mean(d, nil)
}

// Variance is the population variance (divide by N, not N-1), matching
// how the per-trial summaries are reported.
func (d Dataset) Variance() float64 {
	if len(d) < 2 {
		return 0
	}
	n := float64(len(d))
	return stat.Variance(d, nil) * (n - 1) / n
}

// Sorted returns an ascending copy for display; the dataset itself is
// never reordered, the integrators rely on it staying untouched.
func (d Dataset) Sorted() []float64 {
	s := make([]float64, len(d))
	copy(s, d)
	sort.Float64s(s)
	return s
}
