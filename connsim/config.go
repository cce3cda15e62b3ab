// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connsim

import (
	"math"

	"github.com/meglab/connsim/spectral"
)

// Budgets carries the retry budgets of the three rejection-sampling
// loops; 0 retries forever, which reproduces the reference behavior at
// the cost of an unbounded-latency risk on infeasible settings.
type Budgets struct {

	// tries per source pair in forward.SelectPairs
	Pairs int

	// tries per AR model draw in arproc
	Stability int

	// tries per grown patch member in patch.Grow
	Coherence int
}

// Config is the immutable configuration of one simulation job,
// assembled once at the top of a run and passed into every component.
type Config struct {

	// seed of the single shared random stream; the sweep consumes the
	// stream in a fixed order, so equal seeds reproduce equal results
	RandSeed uint64 `default:"1"`

	// trial length in samples
	T int `default:"1000"`

	// order of the AR models for seeds and background noise
	ArOrder int `default:"5"`

	// std dev of the nonzero coupled-model coefficients
	ArSigma float64 `default:"0.5"`

	// Welch / band parameters shared by every spectral consumer
	Spec spectral.Params `view:"inline"`

	// patch radii in meters (geodesic distance from the seed)
	PatchRadii []float64

	// target intra-patch coherence levels
	CohLevels []float64

	// background-noise energy fractions relative to patch energy
	BgLevels []float64

	// sensor-level SNR targets in dB
	SNRLevels []float64

	// number of points on the regularization-multiplier grid
	NLambda int `default:"15"`

	// log10 range of the regularization multipliers
	LambdaLogMin float64 `default:"-5"`
	LambdaLogMax float64 `default:"1"`

	// order of the zero-phase Butterworth band-pass (band from Spec)
	FiltOrder int `default:"3"`

	// rejection-loop retry budgets
	Budgets Budgets
}

// DefaultRadii returns the patch radii corresponding to cortical patch
// areas of 2, 4 and 8 cm^2.
func DefaultRadii() []float64 {
	areas := []float64{2e-4, 4e-4, 8e-4} // m^2
	r := make([]float64, len(areas))
	for i, a := range areas {
		r[i] = math.Sqrt(a / math.Pi)
	}
	return r
}

// Defaults configures the reference parameter grids.
func (c *Config) Defaults() {
	c.RandSeed = 1
	c.T = 1000
	c.ArOrder = 5
	c.ArSigma = 0.5
	c.Spec.Defaults()
	c.PatchRadii = DefaultRadii()
	c.CohLevels = []float64{1, 0.5, 0.2}
	c.BgLevels = []float64{0.1, 0.5, 0.9}
	c.SNRLevels = Linspace(-20, 5, 4)
	c.NLambda = 15
	c.LambdaLogMin = -5
	c.LambdaLogMax = 1
	c.FiltOrder = 3
}

// LambdaGrid returns the logarithmic grid of regularization
// multipliers applied to the broadband-optimal lambda.
func (c *Config) LambdaGrid() []float64 {
	out := make([]float64, c.NLambda)
	if c.NLambda == 1 {
		out[0] = math.Pow(10, c.LambdaLogMin)
		return out
	}
	step := (c.LambdaLogMax - c.LambdaLogMin) / float64(c.NLambda-1)
	for i := range out {
		out[i] = math.Pow(10, c.LambdaLogMin+float64(i)*step)
	}
	return out
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
