// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roc

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

// NThresholds is the number of threshold levels in a scoring sweep.
const NThresholds = 20

// ErrMask is returned when the ground-truth mask has no positives or no
// negatives, leaving a fraction undefined.
var ErrMask = errors.New("roc: ground-truth mask needs at least one positive and one negative")

// ErrDims is returned when estimate and mask shapes disagree.
var ErrDims = errors.New("roc: estimate and mask dimensions disagree")

// Curve holds one ROC curve: true- and false-positive fractions at
// each threshold, ordered by descending threshold fraction.
type Curve struct {
	TPF []float64
	FPF []float64
}

// Thresholds returns the descending threshold fractions, linearly
// spaced from 1 down to (near) zero.
func Thresholds(n int) []float64 {
	eps := math.Nextafter(0, 1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		// linspace(eps, 1, n) flipped
		out[i] = 1 - float64(i)*(1-eps)/float64(n-1)
	}
	return out
}

// Score thresholds |conn| at NThresholds fractions of its maximum
// absolute value and compares each binary prediction against mask
// (true = positive connection).  Rows and columns of conn and mask
// must align.  Returns the AUC and the full curve.
func Score(conn *mat.Dense, mask [][]bool) (float64, Curve, error) {
	r, c := conn.Dims()
	if len(mask) != r {
		return 0, Curve{}, ErrDims
	}
	npos, nneg := 0, 0
	for i := range mask {
		if len(mask[i]) != c {
			return 0, Curve{}, ErrDims
		}
		for j := range mask[i] {
			if mask[i][j] {
				npos++
			} else {
				nneg++
			}
		}
	}
	if npos == 0 || nneg == 0 {
		return 0, Curve{}, ErrMask
	}

	var cmax float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a := math.Abs(conn.At(i, j)); a > cmax {
				cmax = a
			}
		}
	}

	th := Thresholds(NThresholds)
	curve := Curve{TPF: make([]float64, len(th)), FPF: make([]float64, len(th))}
	for k, alpha := range th {
		tp, fp := 0, 0
		cut := alpha * cmax
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if math.Abs(conn.At(i, j)) >= cut && conn.At(i, j) != 0 {
					if mask[i][j] {
						tp++
					} else {
						fp++
					}
				}
			}
		}
		curve.TPF[k] = float64(tp) / float64(npos)
		curve.FPF[k] = float64(fp) / float64(nneg)
	}

	// FPF ascends as the threshold drops, which is the orientation the
	// trapezoidal rule expects
	auc := integrate.Trapezoidal(curve.FPF, curve.TPF)
	return auc, curve, nil
}
