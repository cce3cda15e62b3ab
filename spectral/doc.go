// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spectral implements Welch-style cross-spectral estimation and the
band-averaged connectivity estimators scored in the simulations.

Signals are split into Hann-windowed, half-overlapping, constant-detrended
segments; per-segment Fourier coefficients are cached in a Spectra so that
cross-spectral densities, magnitude-squared coherence, and the epoch-wise
phase estimators (ciPLV, wPLI) can all be derived from one pass over the
data.  All band-averaged quantities use the closed frequency interval
[FMin, FMax].
*/
package spectral
