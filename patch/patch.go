// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meglab/connsim/spectral"
)

// TaperEdge is the Gaussian taper value at the outermost patch member;
// the taper standard deviation is chosen to hit exactly this value at
// distance rank size-1.
const TaperEdge = 0.4

// ErrLevel is returned for a coherence level outside {1, 0.5, 0.2}.
var ErrLevel = errors.New("patch: coherence level must be one of 1, 0.5, 0.2")

// ErrBudget is returned when a patch member cannot be grown within the
// coherence retry budget.
var ErrBudget = errors.New("patch: coherence rejection budget exhausted")

// Params controls coherent patch growth.
type Params struct {

	// target intra-patch coherence level: 1, 0.5 or 0.2
	Level float64 `default:"1"`

	// half-width of the accepted coherence band around Level
	Tol float64 `default:"0.2"`

	// retry budget per grown member; 0 retries forever
	MaxTries int

	// Welch parameters for the acceptance coherence
	Spec spectral.Params `view:"inline"`
}

func (p *Params) Defaults() {
	p.Level = 1
	p.Tol = 0.2
	p.MaxTries = 0
	p.Spec.Defaults()
}

// Rates returns the two spectral-jitter rate constants for the given
// partial coherence level.
func Rates(level float64) (rate1, rate2 float64, err error) {
	switch level {
	case 0.5:
		return 100, 100, nil
	case 0.2:
		return 500, 300, nil
	}
	return 0, 0, ErrLevel
}

// TaperWeights returns the spatial Gaussian taper for a patch of the
// given size: weight 1 at the seed, TaperEdge at the outermost member.
func TaperWeights(size int) []float64 {
	w := make([]float64, size)
	w[0] = 1
	if size == 1 {
		return w
	}
	sd := float64(size-1) / math.Sqrt(-2*math.Log(TaperEdge))
	for i := 1; i < size; i++ {
		d := float64(i)
		w[i] = math.Exp(-d * d / (2 * sd * sd))
	}
	return w
}

// Grow expands seed into a size x len(seed) patch matrix whose rows are
// ordered by increasing distance rank from the seed (row 0 is the seed
// itself).  The result is normalized to unit Frobenius norm.
func Grow(rnd *rand.Rand, seed []float64, size int, p Params) (*mat.Dense, error) {
	tlen := len(seed)
	tcs := mat.NewDense(size, tlen, nil)
	tcs.SetRow(0, seed)

	if p.Level == 1 {
		for i := 1; i < size; i++ {
			tcs.SetRow(i, seed)
		}
		return normalized(tcs), nil
	}

	rate1, rate2, err := Rates(p.Level)
	if err != nil {
		return nil, err
	}
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rnd}
	fft := fourier.NewFFT(tlen)
	spec := fft.Coefficients(nil, seed)
	seedNorm := floats.Norm(seed, 2)
	w := TaperWeights(size)

	jit := make([]complex128, len(spec))
	cand := make([]float64, tlen)
	for i := 1; i < size; i++ {
		accepted := false
		for try := 0; p.MaxTries == 0 || try < p.MaxTries; try++ {
			// one jitter scale per candidate
			scale := gauss.Rand()*rate1 + rate2
			for k, c := range spec {
				jit[k] = c + complex(gauss.Rand()*scale, gauss.Rand()*scale)
			}
			fft.Sequence(cand, jit)
			floats.Scale(1/float64(tlen), cand)
			cn := floats.Norm(cand, 2)
			if cn == 0 {
				continue
			}
			floats.Scale(w[i]*seedNorm/cn, cand)

			lo, hi, err := coherenceRange(tcs, i, cand, p.Spec)
			if err != nil {
				return nil, err
			}
			if lo >= p.Level-p.Tol && hi <= p.Level+p.Tol {
				tcs.SetRow(i, cand)
				accepted = true
				break
			}
		}
		if !accepted {
			return nil, ErrBudget
		}
	}
	return normalized(tcs), nil
}

// coherenceRange returns the minimum and maximum band-averaged
// coherence between the candidate and the first n accepted rows.
func coherenceRange(tcs *mat.Dense, n int, cand []float64, sp spectral.Params) (lo, hi float64, err error) {
	_, tlen := tcs.Dims()
	joint := mat.NewDense(n+1, tlen, nil)
	for r := 0; r < n; r++ {
		joint.SetRow(r, tcs.RawRowView(r))
	}
	joint.SetRow(n, cand)
	s, err := spectral.Compute(joint, sp)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for r := 0; r < n; r++ {
		c := s.BandMSC(r, n)
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi, nil
}

// normalized scales the matrix to unit Frobenius norm.
func normalized(x *mat.Dense) *mat.Dense {
	n := mat.Norm(x, 2)
	if n > 0 {
		x.Scale(1/n, x)
	}
	return x
}
