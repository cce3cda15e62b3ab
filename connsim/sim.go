// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connsim

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/meglab/connsim/arproc"
	"github.com/meglab/connsim/dspfilt"
	"github.com/meglab/connsim/forward"
	"github.com/meglab/connsim/inverse"
	"github.com/meglab/connsim/patch"
	"github.com/meglab/connsim/roc"
	"github.com/meglab/connsim/spectral"
)

// Sim runs the full parameter sweep for one job: one pair of seed
// locations with their seed time courses, across every configured
// (radius, coherence, background, SNR) condition.  All state lives on
// this struct; conditions execute strictly sequentially and draw from
// the single shared random stream in a fixed order.
type Sim struct {

	// immutable run configuration
	Cfg Config

	// fixed forward model, already rescaled
	Fwd *forward.Model

	// cortico-cortical distances between sources
	Dist *forward.DistMatrix

	// seed time courses for the two patches, each of length Cfg.T
	SeedTC [2][]float64

	// source indices anchoring the two patches
	SeedLoc [2]int

	// the shared random stream
	Rand *rand.Rand

	// optional progress logger; nil disables logging
	Log *slog.Logger

	// result tensors, allocated by New
	Res *Results
}

// New assembles a Sim for one job.
func New(cfg Config, fwd *forward.Model, dist *forward.DistMatrix, seedTC [2][]float64, seedLoc [2]int) *Sim {
	return &Sim{
		Cfg:     cfg,
		Fwd:     fwd,
		Dist:    dist,
		SeedTC:  seedTC,
		SeedLoc: seedLoc,
		Rand:    rand.New(rand.NewSource(cfg.RandSeed)),
		Res:     NewResults(&cfg, fwd.NSources()),
	}
}

func (s *Sim) logf(msg string, args ...any) {
	if s.Log != nil {
		s.Log.Info(msg, args...)
	}
}

// Run executes the sweep.  Patches are rebuilt per radius, patch time
// courses per coherence level, background activity per coherence level
// and rescaled per background level, and sensor noise drawn per SNR
// level, mirroring the nesting of the condition axes.
func (s *Sim) Run() error {
	cfg := &s.Cfg
	nsrc := s.Fwd.NSources()

	bp, ap, err := dspfilt.BandPass(cfg.FiltOrder, cfg.Spec.FMin, cfg.Spec.FMax, cfg.Spec.Fs)
	if err != nil {
		return err
	}
	grid := cfg.LambdaGrid()

	for ir, radius := range cfg.PatchRadii {
		p1 := s.Dist.PatchMembers(s.SeedLoc[0], radius)
		p2 := s.Dist.PatchMembers(s.SeedLoc[1], radius)
		if len(p1) == 0 || len(p2) == 0 {
			return fmt.Errorf("connsim: empty patch at radius %g", radius)
		}
		s.Res.SetActivityMask(ir, append(append([]int{}, p1...), p2...), nsrc)
		bg := forward.Background(nsrc, p1, p2)
		s.logf("patches defined", "radius", radius, "p1", len(p1), "p2", len(p2))

		for ic, level := range cfg.CohLevels {
			start := time.Now()
			pp := patch.Params{Level: level, Tol: 0.2, MaxTries: cfg.Budgets.Coherence, Spec: cfg.Spec}
			p1tcs, err := patch.Grow(s.Rand, s.SeedTC[0], len(p1), pp)
			if err != nil {
				return err
			}
			p2tcs, err := patch.Grow(s.Rand, s.SeedTC[1], len(p2), pp)
			if err != nil {
				return err
			}
			s.logf("patch time courses grown", "level", level, "elapsed", time.Since(start))

			start = time.Now()
			bgTCs, err := s.backgroundTCs(len(bg))
			if err != nil {
				return err
			}
			s.logf("background generated", "channels", len(bg), "elapsed", time.Since(start))

			p1n := mat.Norm(p1tcs, 2)
			p2n := mat.Norm(p2tcs, 2)
			patchPow := p1n*p1n + p2n*p2n

			for ib, gamma := range cfg.BgLevels {
				bgScaled := mat.DenseCopyOf(bgTCs)
				ScaleBackground(bgScaled, patchPow, gamma)

				x := mat.NewDense(nsrc, cfg.T, nil)
				setRows(x, bg, bgScaled)
				setRows(x, p1, p1tcs)
				setRows(x, p2, p2tcs)

				for is, snr := range cfg.SNRLevels {
					cond := Cond{Radius: ir, Coh: ic, Bg: ib, SNR: is}
					if err := s.runCondition(cond, x, p1, p2, snr, bp, ap, grid); err != nil {
						return fmt.Errorf("condition %v: %w", cond, err)
					}
				}
			}
		}
	}
	return nil
}

// backgroundTCs draws an independent univariate AR series for every
// background source.
func (s *Sim) backgroundTCs(n int) (*mat.Dense, error) {
	out := mat.NewDense(n, s.Cfg.T, nil)
	for i := 0; i < n; i++ {
		m, err := arproc.NewUnivariate(s.Rand, s.Cfg.ArOrder, s.Cfg.Budgets.Stability)
		if err != nil {
			return nil, err
		}
		tc := m.Simulate(s.Rand, s.Cfg.T)
		out.SetRow(i, tc.RawRowView(0))
	}
	return out, nil
}

// runCondition computes everything downstream of a fully assembled
// source-activity matrix: sensor mixing, spectral complexity, the two
// regularization estimates, and the connectivity scores across the
// multiplier grid.
func (s *Sim) runCondition(cond Cond, x *mat.Dense, p1, p2 []int, snr float64, bp, ap []float64, grid []float64) error {
	cfg := &s.Cfg
	start := time.Now()

	y, sigma, noise := MixSensors(s.Rand, s.Fwd, x, snr)
	s.Res.SetNoise(cond, sigma)

	cx, err := spectral.Complexity(y, cfg.Spec)
	if err != nil {
		return err
	}
	s.Res.SetComplexity(cond, cx)

	// band-passed copies for the narrow-band regularization estimate
	xf := mat.DenseCopyOf(x)
	yf := mat.DenseCopyOf(y)
	if err := dspfilt.FiltFiltRows(bp, ap, xf); err != nil {
		return err
	}
	if err := dspfilt.FiltFiltRows(bp, ap, yf); err != nil {
		return err
	}

	var gx mat.Dense
	gx.Mul(s.Fwd.G, x)
	gn := mat.Norm(&gx, 2)
	nn := mat.Norm(noise, 2)
	lam0 := (nn * nn) / (gn * gn)

	lamX, err := inverse.OptimizeLambda(s.Fwd, x, y, lam0)
	if err != nil {
		return err
	}
	lamXf, err := inverse.OptimizeLambda(s.Fwd, xf, yf, lam0)
	if err != nil {
		return err
	}
	s.Res.SetLambdas(cond, lamX, lamXf)
	s.logf("regularization optimized", "cond", cond.String(), "lambda", lamX, "lambdaFilt", lamXf, "elapsed", time.Since(start))

	start = time.Now()
	mask := connMask(s.Fwd.NSources(), p1, p2)
	for il, mult := range grid {
		lam := mult * lamX
		if lam < 0 {
			// infeasible regularization scores zero, matching the
			// optimizer's error sentinel
			for im := range spectral.Methods {
				s.Res.SetConnScore(cond, il, im, 0, roc.Curve{})
			}
			continue
		}
		xhat, err := inverse.Reconstruct(s.Fwd, y, lam)
		if err != nil {
			return err
		}
		sp, err := spectral.Compute(xhat, cfg.Spec)
		if err != nil {
			return err
		}
		for im, method := range spectral.Methods {
			conn, err := sp.SeedConnectivity(p1, method)
			if err != nil {
				return err
			}
			kept := dropColumns(conn, p1)
			auc, curve, err := roc.Score(kept, mask)
			if err != nil {
				return err
			}
			s.Res.SetConnScore(cond, il, im, auc, curve)
		}
	}
	s.logf("connectivity scored", "cond", cond.String(), "elapsed", time.Since(start))
	return nil
}

// connMask builds the ground-truth connectivity mask over the compared
// set: rows are patch-1 sources, columns every source outside patch 1
// in ascending index order, positives where the column is in patch 2.
func connMask(nsrc int, p1, p2 []int) [][]bool {
	inP1 := make([]bool, nsrc)
	for _, i := range p1 {
		inP1[i] = true
	}
	inP2 := make([]bool, nsrc)
	for _, i := range p2 {
		inP2[i] = true
	}
	mask := make([][]bool, len(p1))
	for r := range mask {
		row := make([]bool, 0, nsrc-len(p1))
		for j := 0; j < nsrc; j++ {
			if inP1[j] {
				continue
			}
			row = append(row, inP2[j])
		}
		mask[r] = row
	}
	return mask
}

// dropColumns removes the given source columns from a seed-connectivity
// matrix, keeping the remaining columns in ascending source order.
func dropColumns(conn *mat.Dense, drop []int) *mat.Dense {
	rows, cols := conn.Dims()
	skip := make([]bool, cols)
	for _, j := range drop {
		skip[j] = true
	}
	keep := make([]int, 0, cols-len(drop))
	for j := 0; j < cols; j++ {
		if !skip[j] {
			keep = append(keep, j)
		}
	}
	out := mat.NewDense(rows, len(keep), nil)
	for r := 0; r < rows; r++ {
		for k, j := range keep {
			out.Set(r, k, conn.At(r, j))
		}
	}
	return out
}

// setRows copies the rows of src into x at the given source indices.
func setRows(x *mat.Dense, idx []int, src *mat.Dense) {
	for r, i := range idx {
		x.SetRow(i, src.RawRowView(r))
	}
}
