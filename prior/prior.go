// Package prior defines the prior distributions over both models'
// parameters: a Gaussian prior on the mean, a Gamma prior on the
// precision (inverse variance, converted to a usable sigma), and the
// Jeffreys Beta(0.5, 0.5) prior on the mixing weight. It exposes one
// sampler and one quantile function per parameter; the samplers are what
// the sampling integrator integrates against, the quantile functions are
// what the quadrature grids are built from.
package prior

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/domino14/poolornot/gauss"
)

// Hyper collects the fixed hyperparameters of the three prior families.
type Hyper struct {
	MuMean  float64
	MuSigma float64
	// Shape/rate of the Gamma prior over precision.
	PrecisionShape float64
	PrecisionRate  float64
	// Both 0.5 for the Jeffreys prior.
	MixAlpha float64
	MixBeta  float64
}

// DefaultHyper returns the reference configuration.
func DefaultHyper() Hyper {
	return Hyper{
		MuMean:         0.0,
		MuSigma:        4.0,
		PrecisionShape: 0.5,
		PrecisionRate:  2.0,
		MixAlpha:       0.5,
		MixBeta:        0.5,
	}
}

// Prior bundles the three prior families around one random source.
// It is not safe for concurrent use; callers that shard work create one
// Prior per worker with its own source.
type Prior struct {
	hyper     Hyper
	mu        distuv.Normal
	precision distuv.Gamma
	mix       distuv.Beta
}

func New(h Hyper, src rand.Source) (*Prior, error) {
	if h.MuSigma <= 0 {
		return nil, errors.New("prior: mean prior sigma must be positive")
	}
	if h.PrecisionShape <= 0 || h.PrecisionRate <= 0 {
		return nil, errors.New("prior: precision prior shape and rate must be positive")
	}
	if h.MixAlpha <= 0 || h.MixBeta <= 0 {
		return nil, errors.New("prior: mixing weight prior parameters must be positive")
	}
	return &Prior{
		hyper:     h,
		mu:        distuv.Normal{Mu: h.MuMean, Sigma: h.MuSigma, Src: src},
		precision: distuv.Gamma{Alpha: h.PrecisionShape, Beta: h.PrecisionRate, Src: src},
		mix:       distuv.Beta{Alpha: h.MixAlpha, Beta: h.MixBeta, Src: src},
	}, nil
}

func (p *Prior) Hyper() Hyper {
	return p.hyper
}

// SigmaOfPrecision converts a precision draw to the sigma the likelihood
// uses. A zero precision maps to +Inf, which the density sends to zero.
func SigmaOfPrecision(tau float64) float64 {
	return 1 / math.Sqrt(tau)
}

// SampleParams draws one full single-Gaussian parameter set from the
// prior: one mean draw and one precision draw converted to sigma.
func (p *Prior) SampleParams() gauss.Params {
	return gauss.Params{
		Mu:    p.mu.Rand(),
		Sigma: SigmaOfPrecision(p.precision.Rand()),
	}
}

// SampleMixture draws one full mixture parameter set: a mixing weight
// and two independent component draws.
func (p *Prior) SampleMixture() gauss.MixtureParams {
	return gauss.MixtureParams{
		MixCof: p.mix.Rand(),
		Gauss1: p.SampleParams(),
		Gauss2: p.SampleParams(),
	}
}

// MuQuantile maps a probability in (0,1) to a mean value.
func (p *Prior) MuQuantile(q float64) float64 {
	return p.mu.Quantile(q)
}

// PrecisionQuantile maps a probability in [0,1) to a precision value.
func (p *Prior) PrecisionQuantile(q float64) float64 {
	// The Gamma inverse CDF at 0 is exactly 0; skip the numerical
	// inversion there.
	if q == 0 {
		return 0
	}
	return p.precision.Quantile(q)
}

// MixQuantile maps a probability in [0,1) to a mixing weight.
func (p *Prior) MixQuantile(q float64) float64 {
	if q == 0 {
		return 0
	}
	return p.mix.Quantile(q)
}
