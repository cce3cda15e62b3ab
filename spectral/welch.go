// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/mat"
)

// ErrShortSignal is returned when a signal is shorter than one segment.
var ErrShortSignal = errors.New("spectral: signal shorter than one Welch segment")

// Params holds the Welch estimation parameters shared across the
// simulation: segment length, sampling rate, and the frequency band
// over which spectral quantities are averaged.
type Params struct {

	// sampling frequency in Hz
	Fs float64 `default:"250"`

	// segment (epoch) length in samples; FFT length equals this
	NPerSeg int `default:"256"`

	// lower edge of the averaging band in Hz
	FMin float64 `default:"8"`

	// upper edge of the averaging band in Hz
	FMax float64 `default:"12"`
}

func (p *Params) Defaults() {
	p.Fs = 250
	p.NPerSeg = 256
	p.FMin = 8
	p.FMax = 12
}

// Overlap is the segment overlap in samples (half a segment).
func (p *Params) Overlap() int { return p.NPerSeg / 2 }

// NFreqs is the number of one-sided frequency bins.
func (p *Params) NFreqs() int { return p.NPerSeg/2 + 1 }

// Freqs returns the one-sided frequency axis in Hz.
func (p *Params) Freqs() []float64 {
	f := make([]float64, p.NFreqs())
	for k := range f {
		f[k] = float64(k) * p.Fs / float64(p.NPerSeg)
	}
	return f
}

// BandIndices returns the frequency-bin indices inside [FMin, FMax],
// both edges included.
func (p *Params) BandIndices() []int {
	var idx []int
	for k, f := range p.Freqs() {
		if f >= p.FMin && f <= p.FMax {
			idx = append(idx, k)
		}
	}
	return idx
}

// Spectra caches the per-segment Fourier coefficients of a set of
// channels, from which all cross-spectral quantities are derived.
type Spectra struct {
	P       Params
	NChans  int
	NEpochs int

	// coef[c][e][f] is the windowed Fourier coefficient of channel c,
	// epoch e, frequency bin f
	coef [][][]complex128

	// one-sided density scale 1 / (Fs * sum(w^2))
	scale float64
}

// Compute segments every row of x (channels x samples), applies a Hann
// window after constant detrending, and stores the per-segment Fourier
// coefficients.
func Compute(x *mat.Dense, p Params) (*Spectra, error) {
	nch, tlen := x.Dims()
	if tlen < p.NPerSeg {
		return nil, ErrShortSignal
	}
	step := p.NPerSeg - p.Overlap()
	nepo := (tlen-p.NPerSeg)/step + 1

	// window values: Hann applied to a unit sequence
	w := make([]float64, p.NPerSeg)
	for i := range w {
		w[i] = 1
	}
	window.Hann(w)
	var wss float64
	for _, v := range w {
		wss += v * v
	}

	fft := fourier.NewFFT(p.NPerSeg)
	s := &Spectra{
		P:       p,
		NChans:  nch,
		NEpochs: nepo,
		coef:    make([][][]complex128, nch),
		scale:   1 / (p.Fs * wss),
	}
	seg := make([]float64, p.NPerSeg)
	for c := 0; c < nch; c++ {
		s.coef[c] = make([][]complex128, nepo)
		for e := 0; e < nepo; e++ {
			off := e * step
			var mean float64
			for i := 0; i < p.NPerSeg; i++ {
				mean += x.At(c, off+i)
			}
			mean /= float64(p.NPerSeg)
			for i := 0; i < p.NPerSeg; i++ {
				seg[i] = (x.At(c, off+i) - mean) * w[i]
			}
			s.coef[c][e] = fft.Coefficients(nil, seg)
		}
	}
	return s, nil
}

// ComputeVec is Compute for a single signal.
func ComputeVec(x []float64, p Params) (*Spectra, error) {
	return Compute(mat.NewDense(1, len(x), x), p)
}

// oneSided returns the one-sided density factor for bin f: spectral
// power at interior bins appears at both positive and negative
// frequencies.
func (s *Spectra) oneSided(f int) float64 {
	if f == 0 || f == s.P.NFreqs()-1 {
		return 1
	}
	return 2
}

// CSD returns the one-sided cross power spectral density between
// channels i and j, averaged over epochs (Welch estimate).
func (s *Spectra) CSD(i, j int) []complex128 {
	nf := s.P.NFreqs()
	out := make([]complex128, nf)
	for f := 0; f < nf; f++ {
		var acc complex128
		for e := 0; e < s.NEpochs; e++ {
			acc += cmplx.Conj(s.coef[i][e][f]) * s.coef[j][e][f]
		}
		acc /= complex(float64(s.NEpochs), 0)
		out[f] = acc * complex(s.scale*s.oneSided(f), 0)
	}
	return out
}

// MSC returns the magnitude-squared coherence between channels i and j
// at every frequency bin.
func (s *Spectra) MSC(i, j int) []float64 {
	nf := s.P.NFreqs()
	out := make([]float64, nf)
	for f := 0; f < nf; f++ {
		var pxy complex128
		var pxx, pyy float64
		for e := 0; e < s.NEpochs; e++ {
			a, b := s.coef[i][e][f], s.coef[j][e][f]
			pxy += cmplx.Conj(a) * b
			pxx += real(a)*real(a) + imag(a)*imag(a)
			pyy += real(b)*real(b) + imag(b)*imag(b)
		}
		den := pxx * pyy
		if den == 0 {
			continue
		}
		m := cmplx.Abs(pxy)
		out[f] = m * m / den
	}
	return out
}

// BandMSC returns the magnitude-squared coherence between channels i
// and j averaged across the [FMin, FMax] band.
func (s *Spectra) BandMSC(i, j int) float64 {
	msc := s.MSC(i, j)
	band := s.P.BandIndices()
	if len(band) == 0 {
		return 0
	}
	var sum float64
	for _, f := range band {
		sum += math.Abs(msc[f])
	}
	return sum / float64(len(band))
}
