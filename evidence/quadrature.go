package evidence

import (
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/poolornot/gauss"
	"github.com/domino14/poolornot/prior"
)

// Estimator computes all four evidence values for a dataset. The grids
// and prior hyperparameters are fixed at construction; every estimate is
// a pure function of the dataset (plus, for sampling, the deterministic
// per-call random streams derived from seed and call count).
type Estimator struct {
	grid       *QuantileGrid
	hyper      prior.Hyper
	seed       uint64
	iterations int
	threads    int

	// Counts BySampling calls so each call gets a fresh, reproducible
	// set of worker streams.
	samplingCalls atomic.Uint64
}

func NewEstimator(grid *QuantileGrid, hyper prior.Hyper, seed uint64, iterations, threads int) (*Estimator, error) {
	if grid == nil {
		return nil, errors.New("evidence: nil quantile grid")
	}
	if iterations <= 0 {
		return nil, errors.New("evidence: sampling iteration count must be positive")
	}
	if threads <= 0 {
		threads = max(1, runtime.NumCPU())
	}
	return &Estimator{
		grid:       grid,
		hyper:      hyper,
		seed:       seed,
		iterations: iterations,
		threads:    threads,
	}, nil
}

func (e *Estimator) Threads() int {
	return e.threads
}

// PooledBySumming approximates ∫ P(D|μ,σ)P(μ,σ) dμdσ by a Riemann sum
// over the (mean × sigma) grid cross-product: the per-cell product of
// densities over every observation, averaged over all G·S cells.
func (e *Estimator) PooledBySumming(data gauss.Dataset) float64 {
	var total float64
	for _, mu := range e.grid.Means {
		for _, sigma := range e.grid.Sigmas {
			params := gauss.Params{Mu: mu, Sigma: sigma}
			prob := 1.0
			for _, x := range data {
				prob *= params.PDF(x)
			}
			total += prob
		}
	}
	return total / float64(len(e.grid.Means)*len(e.grid.Sigmas))
}

// DifferBySumming approximates the five-dimensional evidence integral
// ∫ P(D|m,μ₁,σ₁,μ₂,σ₂)P(...) by a Riemann sum over the full grid
// cross-product. Component densities depend only on one (mean, sigma)
// pair, so they are precomputed per grid point and per observation once
// and reused across the outer cross-product instead of re-evaluating
// the exponential G²·S²·M times. Cells are independent; the outer mean
// loop is sharded across workers and the per-shard sums are reduced in
// shard order, so the result is deterministic.
func (e *Estimator) DifferBySumming(data gauss.Dataset) float64 {
	gaussN := len(e.grid.Means)
	gammaN := len(e.grid.Sigmas)

	// dens[k] is the density of every observation under grid point
	// k = meanIdx*gammaN + sigmaIdx.
	dens := make([][]float64, gaussN*gammaN)
	for mi, mu := range e.grid.Means {
		for si, sigma := range e.grid.Sigmas {
			params := gauss.Params{Mu: mu, Sigma: sigma}
			row := make([]float64, len(data))
			for d, x := range data {
				row[d] = params.PDF(x)
			}
			dens[mi*gammaN+si] = row
		}
	}

	partials := make([]float64, gaussN)
	var g errgroup.Group
	g.SetLimit(e.threads)
	for m1 := 0; m1 < gaussN; m1++ {
		g.Go(func() error {
			var total float64
			for s1 := 0; s1 < gammaN; s1++ {
				dens1 := dens[m1*gammaN+s1]
				for m2 := 0; m2 < gaussN; m2++ {
					for s2 := 0; s2 < gammaN; s2++ {
						dens2 := dens[m2*gammaN+s2]
						for _, mixCof := range e.grid.MixCofs {
							prob := 1.0
							for d := range data {
								prob *= mixCof*dens1[d] + (1-mixCof)*dens2[d]
							}
							total += prob
						}
					}
				}
			}
			partials[m1] = total
			return nil
		})
	}
	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	cells := gaussN * gaussN * gammaN * gammaN * len(e.grid.MixCofs)
	return total / float64(cells)
}
