// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forward

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrPairBudget is returned when pair rejection sampling exhausts its
// retry budget; the constraints may be infeasible for the geometry.
var ErrPairBudget = errors.New("forward: source-pair rejection budget exhausted")

// PairParams constrains candidate source pairs: a minimum anatomical
// separation and a bounded ratio of sensor-level gains, so that neither
// source dominates the recordings.
type PairParams struct {

	// minimum Euclidean distance between the two positions, in meters
	MinDist float64 `default:"0.04"`

	// lower bound on the leadfield column-norm ratio (exclusive)
	GainLo float64 `default:"0.9"`

	// upper bound on the leadfield column-norm ratio (exclusive)
	GainHi float64 `default:"1.1111111111111112"`

	// retry budget per requested pair; 0 retries forever
	MaxTries int
}

func (p *PairParams) Defaults() {
	p.MinDist = 0.04
	p.GainLo = 9.0 / 10.0
	p.GainHi = 10.0 / 9.0
	p.MaxTries = 0
}

// Ok reports whether sources i and j of the model satisfy both
// constraints.  All state is computed fresh from the candidate pair.
func (p *PairParams) Ok(m *Model, i, j int) bool {
	if i == j {
		return false
	}
	if m.SrcDist(i, j) < p.MinDist {
		return false
	}
	ratio := m.ColNorm(i) / m.ColNorm(j)
	return ratio > p.GainLo && ratio < p.GainHi
}

// SelectPairs draws n source pairs by rejection sampling: uniform
// random index pairs are redrawn until both the distance and the gain
// constraint hold.  Pairs are drawn independently and may repeat
// across rows.
func SelectPairs(rnd *rand.Rand, m *Model, n int, p PairParams) ([][2]int, error) {
	nsrc := m.NSources()
	out := make([][2]int, n)
	for k := 0; k < n; k++ {
		found := false
		for try := 0; p.MaxTries == 0 || try < p.MaxTries; try++ {
			i := rnd.Intn(nsrc)
			j := rnd.Intn(nsrc)
			if p.Ok(m, i, j) {
				out[k] = [2]int{i, j}
				found = true
				break
			}
		}
		if !found {
			return nil, ErrPairBudget
		}
	}
	return out, nil
}
