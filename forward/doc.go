// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package forward holds the fixed forward (leadfield) model that maps
source-space activity to sensor-space measurements, together with the
source geometry it was computed from: 3D positions, orientations, and
the cortico-cortical distance matrix.

It also provides the two purely geometric operations of the simulations:
selecting pairs of well-separated source locations with comparable
sensor-level gain, and collecting the sources that form a patch within a
given cortical distance of a seed.
*/
package forward
