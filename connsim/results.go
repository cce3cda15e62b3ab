// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connsim

import (
	"github.com/emer/etable/v2/etensor"

	"github.com/meglab/connsim/roc"
	"github.com/meglab/connsim/spectral"
)

// Results holds the write-once result tensors of one simulation job.
// Every tensor shares the leading condition axes
// radius x coherence x background x SNR; writes are keyed by Cond and
// nothing reads the tensors back during the run.
type Results struct {

	// optimal regularization: broadband (slot 0) and band-passed
	// (slot 1) estimates
	Lambda *etensor.Float64

	// AUC per connectivity method per regularization multiplier
	ConnAUC *etensor.Float64

	// full ROC curves: multiplier x method x threshold
	TPF *etensor.Float64
	FPF *etensor.Float64

	// realized sensor-noise scale sigma
	SigmaNoise *etensor.Float64

	// spectral complexity of the sensor data
	Complexity *etensor.Float64

	// per-radius ground-truth activity mask over sources
	ActivityMask *etensor.Float64
}

// NewResults allocates the result tensors for the configured grids and
// a source space of nsrc sources.
func NewResults(cfg *Config, nsrc int) *Results {
	nr := len(cfg.PatchRadii)
	nc := len(cfg.CohLevels)
	nb := len(cfg.BgLevels)
	ns := len(cfg.SNRLevels)
	nm := len(spectral.Methods)
	nl := cfg.NLambda
	nt := roc.NThresholds

	cond := []string{"Radius", "Coh", "Bg", "SNR"}
	return &Results{
		Lambda:       etensor.NewFloat64([]int{nr, nc, nb, ns, 2}, nil, append(cond[:4:4], "Band")),
		ConnAUC:      etensor.NewFloat64([]int{nr, nc, nb, ns, nm, nl}, nil, append(cond[:4:4], "Method", "Lambda")),
		TPF:          etensor.NewFloat64([]int{nr, nc, nb, ns, nl, nm, nt}, nil, append(cond[:4:4], "Lambda", "Method", "Thr")),
		FPF:          etensor.NewFloat64([]int{nr, nc, nb, ns, nl, nm, nt}, nil, append(cond[:4:4], "Lambda", "Method", "Thr")),
		SigmaNoise:   etensor.NewFloat64([]int{nr, nc, nb, ns}, nil, cond),
		Complexity:   etensor.NewFloat64([]int{nr, nc, nb, ns}, nil, cond),
		ActivityMask: etensor.NewFloat64([]int{nr, nsrc}, nil, []string{"Radius", "Source"}),
	}
}

// SetLambdas records the broadband and band-passed regularization
// estimates for one condition.
func (r *Results) SetLambdas(c Cond, lam, lamFilt float64) {
	r.Lambda.SetFloat(append(c.Index(), 0), lam)
	r.Lambda.SetFloat(append(c.Index(), 1), lamFilt)
}

// SetNoise records the realized sensor-noise scale.
func (r *Results) SetNoise(c Cond, sigma float64) {
	r.SigmaNoise.SetFloat(c.Index(), sigma)
}

// SetComplexity records the sensor-data spectral complexity.
func (r *Results) SetComplexity(c Cond, v float64) {
	r.Complexity.SetFloat(c.Index(), v)
}

// SetConnScore records the AUC and ROC curve for one
// (condition, multiplier, method) cell.
func (r *Results) SetConnScore(c Cond, iLam, iMeth int, auc float64, curve roc.Curve) {
	r.ConnAUC.SetFloat(append(c.Index(), iMeth, iLam), auc)
	for k := 0; k < roc.NThresholds; k++ {
		var tpf, fpf float64
		if k < len(curve.TPF) {
			tpf = curve.TPF[k]
			fpf = curve.FPF[k]
		}
		r.TPF.SetFloat(append(c.Index(), iLam, iMeth, k), tpf)
		r.FPF.SetFloat(append(c.Index(), iLam, iMeth, k), fpf)
	}
}

// SetActivityMask records the ground-truth active sources for one
// radius index.
func (r *Results) SetActivityMask(iRadius int, active []int, nsrc int) {
	for i := 0; i < nsrc; i++ {
		r.ActivityMask.SetFloat([]int{iRadius, i}, 0)
	}
	for _, i := range active {
		r.ActivityMask.SetFloat([]int{iRadius, i}, 1)
	}
}
