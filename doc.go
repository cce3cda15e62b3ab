// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package connsim is the overall repository for simulating MEG sensor-level
recordings from synthetic cortical patch activity and benchmarking the
regularization of source reconstruction and functional-connectivity
estimation against known ground truth.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* connsim: the core simulation -- configuration, the parameter sweep over
patch radius, intra-patch coherence, background-noise level and SNR, the
forward mixing and noise model, and the multi-axis result tensors.

* arproc: generation and simulation of stable (near-unit-root)
autoregressive models for seed activity and background noise.

* patch: expansion of a seed time course into a spatially extended patch
of sources with a target intra-patch spectral coherence.

* forward: forward (leadfield) model container, selection of source pairs
with balanced sensor gain, and patch membership by cortical distance.

* inverse: Tikhonov minimum-norm reconstruction and derivative-free
optimization of the regularization parameter.

* spectral: Welch cross-spectral estimation, magnitude-squared coherence,
the connectivity estimators scored in the sweep, and the spectral
complexity summary.

* roc: ROC curves and AUC for thresholded connectivity estimates.

* dspfilt: Butterworth band-pass design and zero-phase filtering, used
for the band-limited regularization estimate.

* cmd/connsim: the command-line driver -- loads or synthesizes the
source-space geometry, runs the sweep for one or more seed-location
pairs, and writes the result tables.
*/
package connsim
