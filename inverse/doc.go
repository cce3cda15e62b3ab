// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package inverse solves the regularized linear inverse problem: the
minimum-norm Tikhonov reconstruction of source activity from sensor
recordings, the reconstruction-error objective against known ground
truth, and a derivative-free search for the regularization parameter
minimizing that objective.
*/
package inverse
