package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

const epsilon = 1e-6

func fuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		values []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.values {
			s.Push(float64(v))
		}
		is.Equal(s.Count(), len(c.values))
		is.True(fuzzyEqual(s.Mean(), c.mean))
		is.True(fuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestStdErr(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	is.True(fuzzyEqual(s.StdErr(), s.Stdev()/math.Sqrt(8)))

	var empty Statistic
	is.Equal(empty.StdErr(), 0.0)
}

func TestCombine(t *testing.T) {
	is := is.New(t)
	values := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}

	whole := &Statistic{}
	for _, v := range values {
		whole.Push(v)
	}

	// Splitting the stream and merging must match pushing it whole.
	a, b := &Statistic{}, &Statistic{}
	for _, v := range values[:4] {
		a.Push(v)
	}
	for _, v := range values[4:] {
		b.Push(v)
	}
	a.Combine(b)
	is.Equal(a.Count(), whole.Count())
	is.True(fuzzyEqual(a.Mean(), whole.Mean()))
	is.True(fuzzyEqual(a.Variance(), whole.Variance()))

	// Combining with an empty side is a no-op either way.
	c := &Statistic{}
	c.Combine(whole)
	is.True(fuzzyEqual(c.Mean(), whole.Mean()))
	whole.Combine(&Statistic{})
	is.True(fuzzyEqual(c.Mean(), whole.Mean()))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(fuzzyEqual(ZVal(95), 1.959964))
	is.True(fuzzyEqual(ZVal(0), 0))
}
