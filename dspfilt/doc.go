// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dspfilt provides IIR Butterworth band-pass design and zero-phase
forward-backward filtering.

Design follows the classical analog-prototype route: Butterworth poles on
the unit half-circle, lowpass-to-bandpass transformation, and the bilinear
transform with frequency prewarping.  Filtering runs a direct-form-II
transposed filter forward and backward over an odd-reflection-padded
signal with steady-state initial conditions, so the result has no phase
distortion and doubled attenuation.
*/
package dspfilt
