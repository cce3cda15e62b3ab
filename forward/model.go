// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forward

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LeadfieldScale is the constant factor applied to a freshly loaded
// leadfield to lift its entries out of the numerical-underflow range.
const LeadfieldScale = 1e5

// ErrDims is returned when leadfield and geometry dimensions disagree.
var ErrDims = errors.New("forward: leadfield and geometry dimensions disagree")

// Model is the fixed linear forward model: G maps N source amplitudes
// to M sensor measurements.  GGt and per-column norms are precomputed
// once since every inverse operation reuses them.
type Model struct {

	// leadfield, M sensors x N sources, already rescaled
	G *mat.Dense

	// 3D source positions in meters, N x 3
	Pos *mat.Dense

	// source orientations (unit vectors), N x 3
	Ori *mat.Dense

	// G * G^T, M x M
	GGt *mat.SymDense

	// Euclidean norm of each leadfield column
	colNorm []float64
}

// NewModel builds a Model around an already-scaled leadfield and its
// source geometry; ori may be nil when orientations are not needed.
func NewModel(g, pos, ori *mat.Dense) (*Model, error) {
	msens, nsrc := g.Dims()
	pr, pc := pos.Dims()
	if pr != nsrc || pc != 3 {
		return nil, ErrDims
	}
	if ori != nil {
		or, oc := ori.Dims()
		if or != nsrc || oc != 3 {
			return nil, ErrDims
		}
	}
	m := &Model{G: g, Pos: pos, Ori: ori}
	m.GGt = mat.NewSymDense(msens, nil)
	m.GGt.SymOuterK(1, g)
	m.colNorm = make([]float64, nsrc)
	for j := 0; j < nsrc; j++ {
		var ss float64
		for i := 0; i < msens; i++ {
			v := g.At(i, j)
			ss += v * v
		}
		m.colNorm[j] = math.Sqrt(ss)
	}
	return m, nil
}

// NSensors returns the number of sensors M.
func (m *Model) NSensors() int {
	r, _ := m.G.Dims()
	return r
}

// NSources returns the number of sources N.
func (m *Model) NSources() int {
	_, c := m.G.Dims()
	return c
}

// ColNorm returns the Euclidean norm of leadfield column j, the
// sensor-level gain of source j.
func (m *Model) ColNorm(j int) float64 { return m.colNorm[j] }

// SrcDist returns the Euclidean distance between the positions of
// sources i and j.
func (m *Model) SrcDist(i, j int) float64 {
	var ss float64
	for k := 0; k < 3; k++ {
		d := m.Pos.At(i, k) - m.Pos.At(j, k)
		ss += d * d
	}
	return math.Sqrt(ss)
}
