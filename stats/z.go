package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed z-value for a confidence interval given in
// percent, e.g. ZVal(95) ≈ 1.96. Used to attach an interval to the
// sampling integrator's standard error.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	area := (1 + confidenceInterval/100) / 2
	return dist.Quantile(area)
}
