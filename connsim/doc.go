// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package connsim orchestrates the source-simulation experiment: it sweeps
patch radius, within-patch coherence, background level, and SNR for one
pair of seed locations, running the full pipeline (patch growth, sensor
mixing, regularization tuning, connectivity scoring) at every condition
and collecting the outcomes into result tensors.

The driving entry point is Sim: construct one with New, then call Run.
Configuration is a plain immutable Config value, filled in by Defaults
and handed to New by value so a running sweep can never observe a
mutation.  All randomness flows through a single stream seeded from
Config.RandSeed, so a run is reproducible end to end.
*/
package connsim
