// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package arproc generates and simulates autoregressive (AR / VAR) models
used as seed activity and background noise in the simulations.

Models are drawn by rejection sampling: coefficient stacks are resampled
until the companion-matrix spectral radius lies in [0.9, 1), which keeps
the dynamics stationary but close to the unit root, producing the
long-range temporal correlations of resting cortical activity.  The
rejection loop takes an explicit retry budget; a budget of 0 retries
forever, which is the reference behavior but can stall on infeasible
settings.
*/
package arproc
