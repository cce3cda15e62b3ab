// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dspfilt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandPassArgs(t *testing.T) {
	_, _, err := BandPass(0, 8, 12, 250)
	assert.ErrorIs(t, err, ErrOrder)
	_, _, err = BandPass(3, 12, 8, 250)
	assert.ErrorIs(t, err, ErrBand)
	_, _, err = BandPass(3, 8, 130, 250)
	assert.ErrorIs(t, err, ErrBand)
}

func TestBandPassShape(t *testing.T) {
	b, a, err := BandPass(3, 8, 12, 250)
	require.NoError(t, err)
	assert.Len(t, b, 7)
	assert.Len(t, a, 7)
	assert.InDelta(t, 1.0, a[0], 1e-12)
	// band-pass numerators sum to zero at DC and Nyquist
	var dc, nyq float64
	for i, v := range b {
		dc += v
		if i%2 == 0 {
			nyq += v
		} else {
			nyq -= v
		}
	}
	assert.InDelta(t, 0.0, dc, 1e-8)
	assert.InDelta(t, 0.0, nyq, 1e-8)
}

// freqGain measures the steady-state amplitude gain of the filter at
// frequency f by filtering a long sine and comparing RMS levels.
func freqGain(t *testing.T, b, a []float64, f, fs float64) float64 {
	t.Helper()
	n := 4000
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * f * float64(i) / fs)
	}
	y, err := FiltFilt(b, a, x)
	require.NoError(t, err)
	// skip edges, compare RMS over the middle
	var xr, yr float64
	for i := n / 4; i < 3*n/4; i++ {
		xr += x[i] * x[i]
		yr += y[i] * y[i]
	}
	return math.Sqrt(yr / xr)
}

func TestBandPassSelectivity(t *testing.T) {
	b, a, err := BandPass(3, 8, 12, 250)
	require.NoError(t, err)
	in := freqGain(t, b, a, 10, 250)
	below := freqGain(t, b, a, 2, 250)
	above := freqGain(t, b, a, 40, 250)
	assert.Greater(t, in, 0.7)
	assert.Less(t, below, 0.1)
	assert.Less(t, above, 0.1)
}

func TestFiltFiltZeroPhase(t *testing.T) {
	b, a, err := BandPass(3, 8, 12, 250)
	require.NoError(t, err)
	n := 2000
	fs := 250.0
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 10 * float64(i) / fs)
	}
	y, err := FiltFilt(b, a, x)
	require.NoError(t, err)
	require.Len(t, y, n)
	// zero-phase: in-band sine passes with no shift, so x and y stay
	// positively correlated nearly 1:1 in the middle
	var dot, xx, yy float64
	for i := n / 4; i < 3*n/4; i++ {
		dot += x[i] * y[i]
		xx += x[i] * x[i]
		yy += y[i] * y[i]
	}
	corr := dot / math.Sqrt(xx*yy)
	assert.Greater(t, corr, 0.99)
}

func TestFiltFiltShortSignal(t *testing.T) {
	b, a, err := BandPass(3, 8, 12, 250)
	require.NoError(t, err)
	_, err = FiltFilt(b, a, make([]float64, 10))
	assert.ErrorIs(t, err, ErrPad)
}
