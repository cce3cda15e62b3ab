// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Method names a connectivity estimator computed from the cached
// segment spectra.
type Method string

const (
	// CPSD is the cross power spectral density magnitude.
	CPSD Method = "cpsd"

	// ImCoh is the imaginary part of coherency.
	ImCoh Method = "imcoh"

	// CIPLV is the corrected imaginary phase-locking value.
	CIPLV Method = "ciplv"

	// WPLI is the weighted phase-lag index.
	WPLI Method = "wpli"
)

// Methods lists the estimators scored in the simulations, in the order
// they are stored along the result-tensor method axis.
var Methods = []Method{CPSD, ImCoh, CIPLV, WPLI}

// ErrUnknownMethod is returned when a connectivity method name is not
// one of Methods.
var ErrUnknownMethod = errors.New("spectral: unknown connectivity method")

// SeedConnectivity computes the band-averaged connectivity magnitude
// between each seed channel and every channel, returning a
// len(seeds) x NChans matrix.  Rows follow the order of seeds; columns
// follow channel order (no channels are excluded here -- callers drop
// the seed columns before scoring).
func (s *Spectra) SeedConnectivity(seeds []int, method Method) (*mat.Dense, error) {
	switch method {
	case CPSD, ImCoh, CIPLV, WPLI:
	default:
		return nil, ErrUnknownMethod
	}
	band := s.P.BandIndices()
	out := mat.NewDense(len(seeds), s.NChans, nil)
	for r, i := range seeds {
		for j := 0; j < s.NChans; j++ {
			out.Set(r, j, s.bandValue(i, j, band, method))
		}
	}
	return out, nil
}

// bandValue computes one estimator for channel pair (i, j), averaging
// the absolute value across band bins.
func (s *Spectra) bandValue(i, j int, band []int, method Method) float64 {
	if len(band) == 0 {
		return 0
	}
	var sum float64
	for _, f := range band {
		sum += math.Abs(s.pairValue(i, j, f, method))
	}
	return sum / float64(len(band))
}

func (s *Spectra) pairValue(i, j, f int, method Method) float64 {
	switch method {
	case CPSD:
		var acc complex128
		for e := 0; e < s.NEpochs; e++ {
			acc += cmplx.Conj(s.coef[i][e][f]) * s.coef[j][e][f]
		}
		acc /= complex(float64(s.NEpochs), 0)
		return cmplx.Abs(acc) * s.scale * s.oneSided(f)

	case ImCoh:
		var pxy complex128
		var pxx, pyy float64
		for e := 0; e < s.NEpochs; e++ {
			a, b := s.coef[i][e][f], s.coef[j][e][f]
			pxy += cmplx.Conj(a) * b
			pxx += real(a)*real(a) + imag(a)*imag(a)
			pyy += real(b)*real(b) + imag(b)*imag(b)
		}
		den := math.Sqrt(pxx * pyy)
		if den == 0 {
			return 0
		}
		return imag(pxy) / den

	case CIPLV:
		var acc complex128
		for e := 0; e < s.NEpochs; e++ {
			sxy := cmplx.Conj(s.coef[i][e][f]) * s.coef[j][e][f]
			if a := cmplx.Abs(sxy); a > 0 {
				acc += sxy / complex(a, 0)
			}
		}
		acc /= complex(float64(s.NEpochs), 0)
		den := 1 - real(acc)*real(acc)
		if den <= 0 {
			return 0
		}
		return imag(acc) / math.Sqrt(den)

	case WPLI:
		var num, den float64
		for e := 0; e < s.NEpochs; e++ {
			im := imag(cmplx.Conj(s.coef[i][e][f]) * s.coef[j][e][f])
			num += im
			den += math.Abs(im)
		}
		if den == 0 {
			return 0
		}
		return math.Abs(num) / den
	}
	return 0
}
