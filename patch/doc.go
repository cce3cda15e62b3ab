// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package patch expands a single seed time course into a spatially
extended patch of source time courses with a target intra-patch
spectral coherence.

A perfectly coherent patch is just copies of the seed.  For partial
coherence every additional member is grown by rejection sampling:
Gaussian jitter is added to the seed's spectrum, the candidate is
brought back to the time domain, weighted by a spatial Gaussian taper,
renormalized to the seed's energy, and accepted only when its
band-averaged coherence with every previously accepted member falls
inside the tolerance band around the target level.
*/
package patch
