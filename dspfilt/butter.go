// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dspfilt

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrBand is returned for an invalid band specification.
var ErrBand = errors.New("dspfilt: band edges must satisfy 0 < lo < hi < fs/2")

// ErrOrder is returned for a non-positive filter order.
var ErrOrder = errors.New("dspfilt: filter order must be positive")

// BandPass designs a digital Butterworth band-pass filter of the given
// order with pass band [lo, hi] Hz at sampling rate fs, returning the
// transfer-function coefficients (b, a) with a[0] == 1.  The returned
// filter has 2*order poles.
func BandPass(order int, lo, hi, fs float64) (b, a []float64, err error) {
	if order <= 0 {
		return nil, nil, ErrOrder
	}
	if lo <= 0 || hi <= lo || hi >= fs/2 {
		return nil, nil, ErrBand
	}
	fs2 := 2 * fs

	// prewarped analog band edges
	w1 := fs2 * math.Tan(math.Pi*lo/fs)
	w2 := fs2 * math.Tan(math.Pi*hi/fs)
	bw := w2 - w1
	w0 := math.Sqrt(w1 * w2)

	// analog Butterworth prototype poles on the left unit half-circle
	proto := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		proto[k] = cmplx.Exp(complex(0, theta))
	}

	// lowpass -> bandpass: each prototype pole splits into two
	poles := make([]complex128, 0, 2*order)
	for _, p := range proto {
		ps := p * complex(bw/2, 0)
		d := cmplx.Sqrt(ps*ps - complex(w0*w0, 0))
		poles = append(poles, ps+d, ps-d)
	}
	// order zeros at s = 0; gain bw^order
	gain := complex(math.Pow(bw, float64(order)), 0)

	// bilinear transform; analog zeros at 0 map to z = 1, the
	// remaining order zeros go to z = -1
	zPoles := make([]complex128, len(poles))
	num := complex(1, 0)
	den := complex(1, 0)
	for i, p := range poles {
		zPoles[i] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
		den *= complex(fs2, 0) - p
	}
	for i := 0; i < order; i++ {
		num *= complex(fs2, 0) // fs2 - s_zero, zeros at 0
	}
	gain *= num / den

	zZeros := make([]complex128, 0, 2*order)
	for i := 0; i < order; i++ {
		zZeros = append(zZeros, complex(1, 0), complex(-1, 0))
	}

	b = realPoly(zZeros)
	a = realPoly(zPoles)
	g := real(gain)
	for i := range b {
		b[i] *= g
	}
	return b, a, nil
}

// realPoly expands a monic polynomial from its roots and returns the
// real coefficients in descending power order.
func realPoly(roots []complex128) []float64 {
	coef := make([]complex128, 1, len(roots)+1)
	coef[0] = 1
	for _, r := range roots {
		next := make([]complex128, len(coef)+1)
		for i, c := range coef {
			next[i] += c
			next[i+1] -= c * r
		}
		coef = next
	}
	out := make([]float64, len(coef))
	for i, c := range coef {
		out[i] = real(c)
	}
	return out
}
