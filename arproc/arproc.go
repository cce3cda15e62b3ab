// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arproc

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// BurnIn is the number of leading samples discarded when simulating,
// so that the returned series has forgotten its zero initial state.
const BurnIn = 1000

// Stability bounds on the companion-matrix spectral radius for an
// accepted model: stationary but near the unit root.
const (
	RadiusMin = 0.9
	RadiusMax = 1.0
)

// ErrBudget is returned when the stability rejection loop exhausts its
// retry budget without producing an acceptable model.
var ErrBudget = errors.New("arproc: stability rejection budget exhausted")

// Model is a VAR(P) model: Dim coupled channels with Order lags.
// Coef[k] holds the Dim x Dim coefficient matrix at lag k+1.
type Model struct {

	// number of channels (1 for background noise, 2 or 3 for seeds)
	Dim int

	// model order P (number of lags)
	Order int

	// per-lag coefficient matrices, Coef[k] applies at lag k+1
	Coef []*mat.Dense
}

// NewCoupled draws a coupled VAR model of the given dimension (2 or 3)
// and order by rejection sampling.  Channel 0 drives channel 1 through
// a cross coefficient at every lag; all self-lag (diagonal) entries are
// also nonzero; a third channel, if present, remains uncoupled.  Each
// nonzero entry is drawn N(0, sigma^2).  The whole stack is resampled
// until the companion spectral radius lies in [RadiusMin, RadiusMax).
// maxTries = 0 retries without bound.
func NewCoupled(rnd *rand.Rand, dim, order int, sigma float64, maxTries int) (*Model, error) {
	if dim < 2 || dim > 3 {
		return nil, fmt.Errorf("arproc: coupled model dimension must be 2 or 3, got %d", dim)
	}
	idx := couplingEntries(dim)
	return sample(rnd, dim, order, sigma, idx, maxTries)
}

// NewUnivariate draws a univariate AR model of the given order with
// unit-variance coefficients, for independent background-noise
// channels.  maxTries = 0 retries without bound.
func NewUnivariate(rnd *rand.Rand, order, maxTries int) (*Model, error) {
	return sample(rnd, 1, order, 1, [][2]int{{0, 0}}, maxTries)
}

// couplingEntries lists the (row, col) coefficient positions that are
// nonzero at every lag: the 0 -> 1 cross coupling plus all diagonals.
func couplingEntries(dim int) [][2]int {
	idx := [][2]int{{1, 0}}
	for i := 0; i < dim; i++ {
		idx = append(idx, [2]int{i, i})
	}
	return idx
}

func sample(rnd *rand.Rand, dim, order int, sigma float64, idx [][2]int, maxTries int) (*Model, error) {
	gauss := distuv.Normal{Mu: 0, Sigma: sigma, Src: rnd}
	for try := 0; maxTries == 0 || try < maxTries; try++ {
		m := &Model{Dim: dim, Order: order, Coef: make([]*mat.Dense, order)}
		for k := 0; k < order; k++ {
			a := mat.NewDense(dim, dim, nil)
			for _, ij := range idx {
				a.Set(ij[0], ij[1], gauss.Rand())
			}
			m.Coef[k] = a
		}
		r := m.SpectralRadius()
		if r >= RadiusMin && r < RadiusMax {
			return m, nil
		}
	}
	return nil, ErrBudget
}

// Companion returns the (Dim*Order) x (Dim*Order) companion matrix of
// the model: the coefficient stack in the top block rows, shifted
// identity below.
func (m *Model) Companion() *mat.Dense {
	n := m.Dim * m.Order
	c := mat.NewDense(n, n, nil)
	for k, a := range m.Coef {
		for i := 0; i < m.Dim; i++ {
			for j := 0; j < m.Dim; j++ {
				c.Set(i, k*m.Dim+j, a.At(i, j))
			}
		}
	}
	for i := m.Dim; i < n; i++ {
		c.Set(i, i-m.Dim, 1)
	}
	return c
}

// SpectralRadius returns the largest eigenvalue magnitude of the
// companion matrix.
func (m *Model) SpectralRadius() float64 {
	var eig mat.Eigen
	if ok := eig.Factorize(m.Companion(), mat.EigenNone); !ok {
		return math.Inf(1)
	}
	vals := eig.Values(nil)
	r := 0.0
	for _, v := range vals {
		if a := math.Hypot(real(v), imag(v)); a > r {
			r = a
		}
	}
	return r
}

// Simulate runs the VAR recursion for BurnIn+tlen steps driven by
// independent unit-variance Gaussian innovations and returns the
// post-burn-in Dim x tlen series.
func (m *Model) Simulate(rnd *rand.Rand, tlen int) *mat.Dense {
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	total := tlen + BurnIn
	y := mat.NewDense(m.Dim, total, nil)
	for i := 0; i < m.Dim; i++ {
		for t := 0; t < total; t++ {
			y.Set(i, t, gauss.Rand())
		}
	}
	// recursion starts at Order so every lag is in range; the first
	// Order innovation columns stand in as initial state
	for t := m.Order; t < total; t++ {
		for i := 0; i < m.Dim; i++ {
			v := y.At(i, t) // innovation
			for k, a := range m.Coef {
				for j := 0; j < m.Dim; j++ {
					v += a.At(i, j) * y.At(j, t-k-1)
				}
			}
			y.Set(i, t, v)
		}
	}
	out := mat.NewDense(m.Dim, tlen, nil)
	out.Copy(y.Slice(0, m.Dim, BurnIn, total))
	return out
}
