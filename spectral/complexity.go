// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Complexity summarizes the cross-spectral heterogeneity of a
// channels x samples recording: the standard deviation across band
// frequencies of each pair's CSD magnitude (not the mean, unlike the
// connectivity estimators), summed over the upper triangle including
// the diagonal and normalized by the triangle size (M^2+M)/2.
func Complexity(y *mat.Dense, p Params) (float64, error) {
	s, err := Compute(y, p)
	if err != nil {
		return 0, err
	}
	band := p.BandIndices()
	if len(band) == 0 {
		return 0, nil
	}
	m := s.NChans
	var total float64
	for k := 0; k < m; k++ {
		for j := k; j < m; j++ {
			csd := s.CSD(k, j)
			var mean float64
			for _, f := range band {
				mean += cAbs(csd[f])
			}
			mean /= float64(len(band))
			var ss float64
			for _, f := range band {
				d := cAbs(csd[f]) - mean
				ss += d * d
			}
			total += math.Sqrt(ss / float64(len(band)))
		}
	}
	return total / (float64(m*m+m) / 2), nil
}

func cAbs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}
