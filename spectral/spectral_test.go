// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func testParams() Params {
	var p Params
	p.Defaults()
	return p
}

// noisySines builds n channels of a shared 10 Hz sine plus independent
// noise of the given amplitude.
func noisySines(rnd *rand.Rand, n, tlen int, noise float64, p Params) *mat.Dense {
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	x := mat.NewDense(n, tlen, nil)
	for c := 0; c < n; c++ {
		phase := gauss.Rand() * 0.05
		for t := 0; t < tlen; t++ {
			v := math.Sin(2*math.Pi*10*float64(t)/p.Fs+phase) + noise*gauss.Rand()
			x.Set(c, t, v)
		}
	}
	return x
}

func TestBandIndices(t *testing.T) {
	p := testParams()
	idx := p.BandIndices()
	require.NotEmpty(t, idx)
	fr := p.Freqs()
	for _, k := range idx {
		assert.GreaterOrEqual(t, fr[k], p.FMin)
		assert.LessOrEqual(t, fr[k], p.FMax)
	}
	// neighbors just outside the band are excluded
	assert.Less(t, fr[idx[0]-1], p.FMin)
	assert.Greater(t, fr[idx[len(idx)-1]+1], p.FMax)
}

func TestShortSignal(t *testing.T) {
	p := testParams()
	_, err := ComputeVec(make([]float64, p.NPerSeg-1), p)
	assert.ErrorIs(t, err, ErrShortSignal)
}

func TestSelfCoherenceIsOne(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(2))
	x := noisySines(rnd, 1, 1000, 0.5, p)
	s, err := Compute(x, p)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.BandMSC(0, 0), 1e-12)
}

func TestCoherenceSeparatesSharedFromIndependent(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(4))
	shared := noisySines(rnd, 2, 2000, 0.1, p)
	s, err := Compute(shared, p)
	require.NoError(t, err)
	high := s.BandMSC(0, 1)
	assert.Greater(t, high, 0.8)

	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	indep := mat.NewDense(2, 2000, nil)
	for c := 0; c < 2; c++ {
		for t2 := 0; t2 < 2000; t2++ {
			indep.Set(c, t2, gauss.Rand())
		}
	}
	s2, err := Compute(indep, p)
	require.NoError(t, err)
	low := s2.BandMSC(0, 1)
	assert.Less(t, low, high)
	assert.Less(t, low, 0.5)
}

func TestPSDPeaksInBand(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(6))
	x := noisySines(rnd, 1, 2000, 0.05, p)
	s, err := Compute(x, p)
	require.NoError(t, err)
	psd := s.CSD(0, 0)
	fr := p.Freqs()
	best := 0
	for k := range psd {
		if real(psd[k]) > real(psd[best]) {
			best = k
		}
	}
	assert.InDelta(t, 10.0, fr[best], 1.0)
	// auto-spectrum is real and nonnegative
	for _, v := range psd {
		assert.InDelta(t, 0.0, imag(v), 1e-9)
		assert.GreaterOrEqual(t, real(v), 0.0)
	}
}

func TestSeedConnectivityUnknownMethod(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(8))
	x := noisySines(rnd, 3, 1000, 0.3, p)
	s, err := Compute(x, p)
	require.NoError(t, err)
	_, err = s.SeedConnectivity([]int{0}, Method("granger"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestSeedConnectivityShapesAndRanges(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(10))
	x := noisySines(rnd, 4, 1500, 0.3, p)
	s, err := Compute(x, p)
	require.NoError(t, err)
	for _, m := range Methods {
		conn, err := s.SeedConnectivity([]int{1, 2}, m)
		require.NoError(t, err)
		r, c := conn.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 4, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v := conn.At(i, j)
				require.False(t, math.IsNaN(v), "method %s NaN at %d,%d", m, i, j)
				assert.GreaterOrEqual(t, v, 0.0)
				if m != CPSD {
					// normalized metrics live in [0, 1]
					assert.LessOrEqual(t, v, 1.0+1e-9)
				}
			}
		}
	}
}

func TestComplexityPermutationInvariant(t *testing.T) {
	p := testParams()
	rnd := rand.New(rand.NewSource(12))
	x := noisySines(rnd, 5, 1200, 0.4, p)
	c1, err := Complexity(x, p)
	require.NoError(t, err)

	perm := []int{3, 0, 4, 1, 2}
	xp := mat.NewDense(5, 1200, nil)
	for i, pi := range perm {
		for t2 := 0; t2 < 1200; t2++ {
			xp.Set(i, t2, x.At(pi, t2))
		}
	}
	c2, err := Complexity(xp, p)
	require.NoError(t, err)
	assert.InDelta(t, c1, c2, 1e-10)
	assert.Greater(t, c1, 0.0)
}
