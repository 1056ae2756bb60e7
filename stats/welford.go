package stats

import "math"

// Statistic accumulates a running mean and variance using Welford's
// algorithm, so the sampling integrator can report a standard error
// without keeping the (very large) stream of weights around.
type Statistic struct {
	count int

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.count++
	if s.count == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.count)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

func (s *Statistic) Count() int {
	return s.count
}

func (s *Statistic) Mean() float64 {
	if s.count > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.count <= 1 {
		return 0.0
	}
	return s.newS / float64(s.count-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StdErr is the standard error of the mean.
func (s *Statistic) StdErr() float64 {
	if s.count == 0 {
		return 0.0
	}
	return s.Stdev() / math.Sqrt(float64(s.count))
}

// Combine folds another statistic into s (Chan et al. pairwise update),
// used to merge per-worker accumulators. Merge order must be fixed for
// reproducible results.
func (s *Statistic) Combine(o *Statistic) {
	if o.count == 0 {
		return
	}
	if s.count == 0 {
		*s = *o
		return
	}
	na, nb := float64(s.count), float64(o.count)
	delta := o.newM - s.newM
	n := na + nb
	s.newM += delta * nb / n
	s.newS += o.newS + delta*delta*na*nb/n
	s.oldM = s.newM
	s.oldS = s.newS
	s.count += o.count
}
