// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connsim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meglab/connsim/forward"
)

// ScaleBackground scales the background activity in place so that its
// energy relative to the combined patch energy equals gamma:
// ||bg||_F^2 = gamma * patchPow afterwards.
func ScaleBackground(bg *mat.Dense, patchPow, gamma float64) {
	n := mat.Norm(bg, 2)
	if n == 0 {
		return
	}
	bg.Scale(math.Sqrt(gamma*patchPow/(n*n)), bg)
}

// MixSensors projects source activity through the forward model and
// adds Gaussian sensor noise scaled to hit the target SNR exactly:
// sigma = sqrt(||G X||_F^2 / (10^(snr/10) ||Ntilde||_F^2)), so the
// realized signal-to-noise power ratio in dB equals snrDB.
// Returns Y = G X + sigma*Ntilde, sigma, and the scaled noise.
func MixSensors(rnd *rand.Rand, m *forward.Model, x *mat.Dense, snrDB float64) (y *mat.Dense, sigma float64, noise *mat.Dense) {
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	msens := m.NSensors()
	_, tlen := x.Dims()

	var gx mat.Dense
	gx.Mul(m.G, x)
	sigPow := mat.Norm(&gx, 2)
	sigPow *= sigPow

	noise = mat.NewDense(msens, tlen, nil)
	for i := 0; i < msens; i++ {
		for t := 0; t < tlen; t++ {
			noise.Set(i, t, gauss.Rand())
		}
	}
	nPow := mat.Norm(noise, 2)
	nPow *= nPow

	sigma = math.Sqrt(sigPow / (math.Pow(10, snrDB/10) * nPow))
	noise.Scale(sigma, noise)

	y = mat.NewDense(msens, tlen, nil)
	y.Add(&gx, noise)
	return y, sigma, noise
}

// RealizedSNR returns the achieved signal-to-noise ratio in dB of a
// mixed recording, from the projected signal and the scaled noise.
func RealizedSNR(m *forward.Model, x, noise *mat.Dense) float64 {
	var gx mat.Dense
	gx.Mul(m.G, x)
	s := mat.Norm(&gx, 2)
	n := mat.Norm(noise, 2)
	return 10 * math.Log10((s*s)/(n*n))
}
