// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inverse

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/meglab/connsim/forward"
)

// Reconstruct computes the minimum-norm Tikhonov estimate
// Xhat = G^T (G G^T + lambda I)^-1 Y.  The regularized system is
// symmetric positive definite for lambda > 0 and solved by Cholesky
// factorization, falling back to a dense solve near singularity.
func Reconstruct(m *forward.Model, y *mat.Dense, lambda float64) (*mat.Dense, error) {
	msens := m.NSensors()
	reg := mat.NewSymDense(msens, nil)
	reg.CopySym(m.GGt)
	for i := 0; i < msens; i++ {
		reg.SetSym(i, i, reg.At(i, i)+lambda)
	}

	var z mat.Dense
	var chol mat.Cholesky
	if chol.Factorize(reg) {
		if err := chol.SolveTo(&z, y); err != nil {
			return nil, err
		}
	} else {
		if err := z.Solve(reg, y); err != nil {
			return nil, err
		}
	}
	var xhat mat.Dense
	xhat.Mul(m.G.T(), &z)
	return &xhat, nil
}

// ReconError is the optimizer objective: the mean squared Frobenius
// reconstruction error per source per sample for a candidate lambda.
// Negative lambda is infeasible and maps to +Inf so a simplex search
// backs away smoothly instead of failing.
func ReconError(lambda float64, x, y *mat.Dense, m *forward.Model) float64 {
	if lambda < 0 {
		return math.Inf(1)
	}
	xhat, err := Reconstruct(m, y, lambda)
	if err != nil {
		return math.Inf(1)
	}
	var diff mat.Dense
	diff.Sub(xhat, x)
	fro := mat.Norm(&diff, 2)
	_, tlen := x.Dims()
	return fro * fro / (float64(m.NSources()) * float64(tlen))
}

// OptimizeLambda minimizes ReconError over lambda with Nelder-Mead,
// starting from lambda0 (typically the sensor-level noise-to-signal
// power ratio).  Returns the best lambda found.
func OptimizeLambda(m *forward.Model, x, y *mat.Dense, lambda0 float64) (float64, error) {
	problem := optimize.Problem{
		Func: func(v []float64) float64 {
			return ReconError(v[0], x, y, m)
		},
	}
	res, err := optimize.Minimize(problem, []float64{lambda0}, nil, &optimize.NelderMead{})
	if res == nil {
		return lambda0, err
	}
	return res.X[0], nil
}
