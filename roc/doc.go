// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package roc scores an estimated connectivity matrix against a known
positive/negative ground-truth mask.

The estimate is thresholded at a descending sequence of fractions of its
own maximum absolute value; each threshold yields a binary prediction
compared against the mask to produce true/false positive fractions, and
the resulting curve is integrated by the trapezoidal rule into an area
under the curve in [0, 1] for informative estimators.
*/
package roc
