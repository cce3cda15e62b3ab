// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestThresholds(t *testing.T) {
	th := Thresholds(NThresholds)
	require.Len(t, th, NThresholds)
	assert.Equal(t, 1.0, th[0])
	assert.Greater(t, th[NThresholds-1], 0.0)
	assert.Less(t, th[NThresholds-1], 1e-9)
	for i := 1; i < len(th); i++ {
		assert.Less(t, th[i], th[i-1])
	}
}

func TestScorePerfectSeparation(t *testing.T) {
	// positives carry strictly larger magnitude than negatives
	conn := mat.NewDense(2, 4, []float64{
		0.9, 0.1, 0.8, 0.05,
		0.95, 0.2, 0.85, 0.1,
	})
	mask := [][]bool{
		{true, false, true, false},
		{true, false, true, false},
	}
	auc, curve, err := Score(conn, mask)
	require.NoError(t, err)
	assert.Greater(t, auc, 0.9)
	assert.LessOrEqual(t, auc, 1.0)
	require.Len(t, curve.TPF, NThresholds)
	require.Len(t, curve.FPF, NThresholds)
	// monotone non-decreasing as the threshold drops
	for i := 1; i < NThresholds; i++ {
		assert.GreaterOrEqual(t, curve.TPF[i], curve.TPF[i-1])
		assert.GreaterOrEqual(t, curve.FPF[i], curve.FPF[i-1])
	}
	// all positives and negatives recovered at the loosest threshold
	assert.Equal(t, 1.0, curve.TPF[NThresholds-1])
	assert.Equal(t, 1.0, curve.FPF[NThresholds-1])
}

func TestScoreAUCRange(t *testing.T) {
	// uninformative estimate still lands in [0, 1]
	conn := mat.NewDense(2, 3, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5})
	mask := [][]bool{
		{true, false, false},
		{false, true, false},
	}
	auc, _, err := Score(conn, mask)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, auc, 0.0)
	assert.LessOrEqual(t, auc, 1.0)
}

func TestScoreBadMask(t *testing.T) {
	conn := mat.NewDense(1, 2, []float64{1, 2})
	_, _, err := Score(conn, [][]bool{{true, true}})
	assert.ErrorIs(t, err, ErrMask)
	_, _, err = Score(conn, [][]bool{{true}})
	assert.ErrorIs(t, err, ErrDims)
	_, _, err = Score(conn, [][]bool{{true, false}, {false, false}})
	assert.ErrorIs(t, err, ErrDims)
}
