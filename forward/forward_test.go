// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// testModel builds a small model with sources on a line 1 cm apart and
// a Gaussian leadfield, deterministic for a given seed.
func testModel(t *testing.T, msens, nsrc int, seed uint64) *Model {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	g := mat.NewDense(msens, nsrc, nil)
	for i := 0; i < msens; i++ {
		for j := 0; j < nsrc; j++ {
			g.Set(i, j, gauss.Rand())
		}
	}
	pos := mat.NewDense(nsrc, 3, nil)
	for j := 0; j < nsrc; j++ {
		pos.Set(j, 0, 0.01*float64(j))
	}
	m, err := NewModel(g, pos, nil)
	require.NoError(t, err)
	return m
}

func TestNewModelDims(t *testing.T) {
	g := mat.NewDense(4, 6, nil)
	badPos := mat.NewDense(5, 3, nil)
	_, err := NewModel(g, badPos, nil)
	assert.ErrorIs(t, err, ErrDims)
}

func TestModelPrecomputed(t *testing.T) {
	m := testModel(t, 8, 20, 1)
	// GGt matches an explicit product
	var ref mat.Dense
	ref.Mul(m.G, m.G.T())
	for i := 0; i < m.NSensors(); i++ {
		for j := 0; j < m.NSensors(); j++ {
			assert.InDelta(t, ref.At(i, j), m.GGt.At(i, j), 1e-10)
		}
	}
	// column norms match mat.Norm on extracted columns
	col := mat.NewVecDense(m.NSensors(), nil)
	for j := 0; j < m.NSources(); j++ {
		for i := 0; i < m.NSensors(); i++ {
			col.SetVec(i, m.G.At(i, j))
		}
		assert.InDelta(t, mat.Norm(col, 2), m.ColNorm(j), 1e-12)
	}
}

func TestSelectPairsConstraints(t *testing.T) {
	m := testModel(t, 10, 40, 3)
	rnd := rand.New(rand.NewSource(4))
	var p PairParams
	p.Defaults()
	pairs, err := SelectPairs(rnd, m, 25, p)
	require.NoError(t, err)
	require.Len(t, pairs, 25)
	for _, pr := range pairs {
		assert.NotEqual(t, pr[0], pr[1])
		assert.GreaterOrEqual(t, m.SrcDist(pr[0], pr[1]), p.MinDist)
		ratio := m.ColNorm(pr[0]) / m.ColNorm(pr[1])
		assert.Greater(t, ratio, p.GainLo)
		assert.Less(t, ratio, p.GainHi)
	}
}

func TestSelectPairsBudget(t *testing.T) {
	m := testModel(t, 10, 40, 5)
	rnd := rand.New(rand.NewSource(6))
	p := PairParams{MinDist: 10, GainLo: 0.9, GainHi: 10.0 / 9.0, MaxTries: 50}
	_, err := SelectPairs(rnd, m, 1, p) // 10 m separation is impossible
	assert.ErrorIs(t, err, ErrPairBudget)
}

func TestPatchMembers(t *testing.T) {
	n := 10
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diff := float64(i - j)
			if diff < 0 {
				diff = -diff
			}
			d.Set(i, j, 0.01*diff)
		}
	}
	dm := NewDistMatrix(d)
	members := dm.PatchMembers(4, 0.025)
	// within 2 steps of source 4, seed first
	require.NotEmpty(t, members)
	assert.Equal(t, 4, members[0])
	assert.ElementsMatch(t, []int{2, 3, 4, 5, 6}, members)
	// ordered by increasing distance
	for i := 1; i < len(members); i++ {
		assert.GreaterOrEqual(t, d.At(members[i], 4), d.At(members[i-1], 4))
	}
}

func TestBackground(t *testing.T) {
	bg := Background(8, []int{1, 2}, []int{5})
	assert.Equal(t, []int{0, 3, 4, 6, 7}, bg)
}
