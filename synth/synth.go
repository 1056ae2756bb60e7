// Package synth generates the synthetic datasets used to validate model
// selection. The generator knows which model produced a dataset; the
// integrators never do, they only see the resulting values.
package synth

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash"
	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"

	"github.com/domino14/poolornot/gauss"
)

// Generator fills fixed-length datasets with i.i.d. draws from a given
// generative model. Not safe for concurrent use.
type Generator struct {
	n    int
	src  rand.Source
	flat *frand.RNG
}

// New returns a generator producing datasets of length n, fully
// determined by seed.
func New(n int, seed uint64) (*Generator, error) {
	if n <= 0 {
		return nil, errors.New("synth: dataset length must be positive")
	}
	// frand wants a 32-byte seed; expand the master seed.
	var fseed [32]byte
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64String(fmt.Sprintf("poolornot-synth:%d:%d", seed, i))
		binary.LittleEndian.PutUint64(fseed[8*i:], h)
	}
	return &Generator{
		n:    n,
		src:  rand.NewPCG(seed, xxhash.Sum64String(fmt.Sprintf("poolornot-gauss:%d", seed))),
		flat: frand.NewCustom(fseed[:], 1024, 12),
	}, nil
}

func (g *Generator) N() int {
	return g.n
}

func (g *Generator) draw(p gauss.Params) float64 {
	return distuv.Normal{Mu: p.Mu, Sigma: p.Sigma, Src: g.src}.Rand()
}

// OneComponent returns a dataset drawn i.i.d. from a single Gaussian.
func (g *Generator) OneComponent(p gauss.Params) gauss.Dataset {
	data := make(gauss.Dataset, g.n)
	for i := range data {
		data[i] = g.draw(p)
	}
	return data
}

// TwoComponent returns a dataset where each observation independently
// comes from Gauss1 with probability MixCof, else from Gauss2.
func (g *Generator) TwoComponent(m gauss.MixtureParams) gauss.Dataset {
	data := make(gauss.Dataset, g.n)
	for i := range data {
		params := m.Gauss2
		if g.flat.Float64() < m.MixCof {
			params = m.Gauss1
		}
		data[i] = g.draw(params)
	}
	return data
}
