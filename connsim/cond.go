// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connsim

import "fmt"

// Cond is the composite key of one simulated condition: indices into
// the configured radius, coherence, background and SNR grids.  Using
// an explicit key keeps the axis order in one place instead of
// threading four loop variables through every write.
type Cond struct {
	Radius int
	Coh    int
	Bg     int
	SNR    int
}

// Index returns the key as a tensor index prefix.
func (c Cond) Index() []int { return []int{c.Radius, c.Coh, c.Bg, c.SNR} }

func (c Cond) String() string {
	return fmt.Sprintf("r%d c%d g%d s%d", c.Radius, c.Coh, c.Bg, c.SNR)
}
