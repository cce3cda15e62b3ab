// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forward

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DistMatrix is the symmetric N x N cortico-cortical (geodesic)
// distance matrix between sources, supplied with the forward model.
type DistMatrix struct {
	D *mat.Dense
}

// NewDistMatrix wraps a distance matrix.
func NewDistMatrix(d *mat.Dense) *DistMatrix { return &DistMatrix{D: d} }

// N returns the number of sources.
func (dm *DistMatrix) N() int {
	r, _ := dm.D.Dims()
	return r
}

// PatchMembers returns the indices of all sources whose distance to
// seed is below radius, ordered by increasing distance, so the seed
// itself comes first.
func (dm *DistMatrix) PatchMembers(seed int, radius float64) []int {
	n := dm.N()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dm.D.At(idx[a], seed) < dm.D.At(idx[b], seed)
	})
	count := 0
	for i := 0; i < n; i++ {
		if dm.D.At(i, seed) < radius {
			count++
		}
	}
	return idx[:count]
}

// Background returns all source indices not contained in any of the
// given patches, in ascending order.
func Background(n int, patches ...[]int) []int {
	used := make([]bool, n)
	for _, p := range patches {
		for _, i := range p {
			used[i] = true
		}
	}
	var out []int
	for i := 0; i < n; i++ {
		if !used[i] {
			out = append(out, i)
		}
	}
	return out
}
