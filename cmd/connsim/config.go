// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/meglab/connsim/connsim"

// GeomConfig selects the source-space geometry.  When Leadfield is set
// the gain matrix and source positions are read from tab-separated
// files; otherwise a deterministic synthetic geometry is generated,
// which is mainly useful for smoke runs without subject data.
type GeomConfig struct {

	// path of the gain-matrix file, sensors by sources, tab separated
	Leadfield string

	// path of the source-positions file, sources by xyz, tab separated
	Positions string

	// path of the source-orientations file, sources by xyz; empty
	// defaults to radial unit orientations
	Orientations string

	// path of the cortico-cortical distance file, sources by sources;
	// empty falls back to Euclidean distances between positions
	Distances string

	// synthetic geometry size, used only when Leadfield is empty
	NSensors int `default:"60"`
	NSources int `default:"200"`
}

// Config is the command-line configuration, loaded from config.toml by
// econfig and overridable with -flag arguments.
type Config struct {

	// base random seed; job i runs with seed Seed+i
	Seed uint64 `default:"1"`

	// number of seed-location pairs to simulate, one job each
	NJobs int `default:"1"`

	// directory receiving one results file per job
	OutDir string `default:"results"`

	// log debug messages
	Debug bool

	// source-space geometry
	Geom GeomConfig `display:"add-fields"`

	// simulation parameters; zero-valued fields take reference defaults
	Sim connsim.Config `display:"add-fields"`
}
