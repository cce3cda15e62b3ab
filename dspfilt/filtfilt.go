// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dspfilt

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrPad is returned when a signal is too short for the reflection
// padding that zero-phase filtering requires.
var ErrPad = errors.New("dspfilt: signal too short for zero-phase padding")

// Filter applies the IIR filter (b, a) to x in direct form II
// transposed with initial state zi (may be nil for zero state).
// a[0] must be 1.
func Filter(b, a, x, zi []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	bb := make([]float64, n)
	aa := make([]float64, n)
	copy(bb, b)
	copy(aa, a)
	y := make([]float64, len(x))
	if n == 1 {
		for m, xv := range x {
			y[m] = bb[0] * xv
		}
		return y
	}
	z := make([]float64, n-1)
	copy(z, zi)
	for m, xv := range x {
		yv := bb[0]*xv + z[0]
		for i := 0; i < n-2; i++ {
			z[i] = bb[i+1]*xv + z[i+1] - aa[i+1]*yv
		}
		z[n-2] = bb[n-1]*xv - aa[n-1]*yv
		y[m] = yv
	}
	return y
}

// stepState returns the steady-state direct-form-II-transposed filter
// state for a unit-step input, used to suppress startup transients.
func stepState(b, a []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	bb := make([]float64, n)
	aa := make([]float64, n)
	copy(bb, b)
	copy(aa, a)

	// solve (I - A) zi = B with A the state transition matrix and
	// B[i] = b[i+1] - b[0]*a[i+1]
	m := n - 1
	ia := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		ia.Set(i, 0, aa[i+1])
		ia.Set(i, i, ia.At(i, i)+1)
		if i < m-1 {
			ia.Set(i, i+1, -1)
		}
		rhs.SetVec(i, bb[i+1]-bb[0]*aa[i+1])
	}
	var zi mat.VecDense
	if err := zi.SolveVec(ia, rhs); err != nil {
		return make([]float64, m)
	}
	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = zi.AtVec(i)
	}
	return out
}

// FiltFilt applies the filter forward and backward over x with
// odd-reflection padding of 3*max(len(a), len(b)) samples, giving a
// zero-phase result the same length as x.
func FiltFilt(b, a, x []float64) ([]float64, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pad := 3 * n
	if len(x) <= pad {
		return nil, ErrPad
	}

	// odd extension at both ends
	ext := make([]float64, 0, len(x)+2*pad)
	for i := pad; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	last := len(x) - 1
	for i := 1; i <= pad; i++ {
		ext = append(ext, 2*x[last]-x[last-i])
	}

	zi := stepState(b, a)
	z := make([]float64, len(zi))

	for i := range zi {
		z[i] = zi[i] * ext[0]
	}
	y := Filter(b, a, ext, z)

	reverse(y)
	for i := range zi {
		z[i] = zi[i] * y[0]
	}
	y = Filter(b, a, y, z)
	reverse(y)

	return y[pad : pad+len(x)], nil
}

// FiltFiltRows filters every row of x in place.
func FiltFiltRows(b, a []float64, x *mat.Dense) error {
	rows, cols := x.Dims()
	buf := make([]float64, cols)
	for r := 0; r < rows; r++ {
		copy(buf, x.RawRowView(r))
		y, err := FiltFilt(b, a, buf)
		if err != nil {
			return err
		}
		x.SetRow(r, y)
	}
	return nil
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
