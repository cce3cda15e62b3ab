// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// connsim runs the source-connectivity simulation sweep for one or more
// seed-location pairs and writes the result tensors as tab-separated
// tables, one results file and one activity-mask file per job.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emer/emergent/v2/econfig"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/meglab/connsim/arproc"
	"github.com/meglab/connsim/connsim"
	"github.com/meglab/connsim/forward"
	"github.com/meglab/connsim/roc"
	"github.com/meglab/connsim/spectral"
)

func main() {
	cfg := &Config{}
	cfg.Sim.Defaults()
	econfig.Config(cfg, "config.toml")

	lvl := slog.LevelInfo
	if cfg.Debug {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	fwd, dist, err := geometry(&cfg.Geom)
	if err != nil {
		return err
	}
	logger.Info("geometry ready", "sensors", fwd.NSensors(), "sources", fwd.NSources())

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))
	var pp forward.PairParams
	pp.Defaults()
	pp.MaxTries = cfg.Sim.Budgets.Pairs
	pairs, err := forward.SelectPairs(rnd, fwd, cfg.NJobs, pp)
	if err != nil {
		return err
	}

	for ji, pair := range pairs {
		simCfg := cfg.Sim
		simCfg.RandSeed = cfg.Seed + uint64(ji)

		seedRnd := rand.New(rand.NewSource(simCfg.RandSeed))
		mdl, err := arproc.NewCoupled(seedRnd, 2, simCfg.ArOrder, simCfg.ArSigma, simCfg.Budgets.Stability)
		if err != nil {
			return err
		}
		tc := mdl.Simulate(seedRnd, simCfg.T)
		seedTC := [2][]float64{
			append([]float64{}, tc.RawRowView(0)...),
			append([]float64{}, tc.RawRowView(1)...),
		}

		s := connsim.New(simCfg, fwd, dist, seedTC, pair)
		s.Log = logger.With("job", ji, "seeds", fmt.Sprintf("%d-%d", pair[0], pair[1]))
		if err := s.Run(); err != nil {
			return fmt.Errorf("job %d: %w", ji, err)
		}

		base := filepath.Join(cfg.OutDir, fmt.Sprintf("job%03d", ji))
		if err := writeResults(base+"_results.tsv", &simCfg, s.Res); err != nil {
			return err
		}
		if err := writeMask(base+"_mask.tsv", &simCfg, s.Res, fwd.NSources()); err != nil {
			return err
		}
		logger.Info("job done", "job", ji, "out", base)
	}
	return nil
}

// geometry builds the forward model and distance matrix, from files if
// a leadfield path is configured and synthetically otherwise.
func geometry(gc *GeomConfig) (*forward.Model, *forward.DistMatrix, error) {
	if gc.Leadfield == "" {
		return synthGeometry(gc.NSensors, gc.NSources)
	}

	g, err := readMatrix(gc.Leadfield)
	if err != nil {
		return nil, nil, err
	}
	g.Scale(forward.LeadfieldScale, g)
	pos, err := readMatrix(gc.Positions)
	if err != nil {
		return nil, nil, err
	}
	nsrc, _ := pos.Dims()

	var ori *mat.Dense
	if gc.Orientations != "" {
		if ori, err = readMatrix(gc.Orientations); err != nil {
			return nil, nil, err
		}
	} else {
		ori = radialOri(nsrc)
	}

	m, err := forward.NewModel(g, pos, ori)
	if err != nil {
		return nil, nil, err
	}

	if gc.Distances != "" {
		d, err := readMatrix(gc.Distances)
		if err != nil {
			return nil, nil, err
		}
		return m, forward.NewDistMatrix(d), nil
	}
	return m, euclidDist(m), nil
}

// synthGeometry lays sources on a square grid 5 mm apart and sensors on
// a coarser grid 10 cm above it, with inverse-square gains.  It is
// deterministic, so equal sizes always give equal models.
func synthGeometry(nsens, nsrc int) (*forward.Model, *forward.DistMatrix, error) {
	srcSide := intSqrt(nsrc)
	pos := mat.NewDense(nsrc, 3, nil)
	for j := 0; j < nsrc; j++ {
		pos.Set(j, 0, 0.005*float64(j%srcSide))
		pos.Set(j, 1, 0.005*float64(j/srcSide))
	}

	senSide := intSqrt(nsens)
	span := 0.005 * float64(srcSide-1)
	spos := mat.NewDense(nsens, 3, nil)
	for i := 0; i < nsens; i++ {
		fx := float64(i%senSide) / float64(max(senSide-1, 1))
		fy := float64(i/senSide) / float64(max(senSide-1, 1))
		spos.Set(i, 0, fx*span)
		spos.Set(i, 1, fy*span)
		spos.Set(i, 2, 0.1)
	}

	g := mat.NewDense(nsens, nsrc, nil)
	for i := 0; i < nsens; i++ {
		for j := 0; j < nsrc; j++ {
			dx := spos.At(i, 0) - pos.At(j, 0)
			dy := spos.At(i, 1) - pos.At(j, 1)
			dz := spos.At(i, 2) - pos.At(j, 2)
			g.Set(i, j, 1/(dx*dx+dy*dy+dz*dz))
		}
	}

	m, err := forward.NewModel(g, pos, radialOri(nsrc))
	if err != nil {
		return nil, nil, err
	}
	return m, euclidDist(m), nil
}

func radialOri(nsrc int) *mat.Dense {
	ori := mat.NewDense(nsrc, 3, nil)
	for j := 0; j < nsrc; j++ {
		ori.Set(j, 2, 1)
	}
	return ori
}

func euclidDist(m *forward.Model) *forward.DistMatrix {
	n := m.NSources()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := m.SrcDist(i, j)
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
	}
	return forward.NewDistMatrix(d)
}

func intSqrt(n int) int {
	s := 1
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}

// writeResults flattens the condition axes into table rows, one row per
// (radius, coherence, background, SNR) cell, with the per-cell tensors
// as tensor-valued columns.
func writeResults(path string, cfg *connsim.Config, res *connsim.Results) error {
	nm := len(spectral.Methods)
	nl := cfg.NLambda
	nt := roc.NThresholds

	sch := etable.Schema{
		{Name: "Radius", Type: etensor.FLOAT64},
		{Name: "Coh", Type: etensor.FLOAT64},
		{Name: "Bg", Type: etensor.FLOAT64},
		{Name: "SNR", Type: etensor.FLOAT64},
		{Name: "Sigma", Type: etensor.FLOAT64},
		{Name: "Complexity", Type: etensor.FLOAT64},
		{Name: "Lambda", Type: etensor.FLOAT64, CellShape: []int{2}, DimNames: []string{"Band"}},
		{Name: "ConnAUC", Type: etensor.FLOAT64, CellShape: []int{nm, nl}, DimNames: []string{"Method", "Lambda"}},
		{Name: "TPF", Type: etensor.FLOAT64, CellShape: []int{nl, nm, nt}, DimNames: []string{"Lambda", "Method", "Thr"}},
		{Name: "FPF", Type: etensor.FLOAT64, CellShape: []int{nl, nm, nt}, DimNames: []string{"Lambda", "Method", "Thr"}},
	}
	nrows := len(cfg.PatchRadii) * len(cfg.CohLevels) * len(cfg.BgLevels) * len(cfg.SNRLevels)
	dt := &etable.Table{}
	dt.SetFromSchema(sch, nrows)
	dt.SetMetaData("name", "ConnSimResults")

	row := 0
	for ir, radius := range cfg.PatchRadii {
		for ic, coh := range cfg.CohLevels {
			for ib, bg := range cfg.BgLevels {
				for is, snr := range cfg.SNRLevels {
					cond := connsim.Cond{Radius: ir, Coh: ic, Bg: ib, SNR: is}
					idx := cond.Index()
					dt.SetCellFloat("Radius", row, radius)
					dt.SetCellFloat("Coh", row, coh)
					dt.SetCellFloat("Bg", row, bg)
					dt.SetCellFloat("SNR", row, snr)
					dt.SetCellFloat("Sigma", row, res.SigmaNoise.FloatVal(idx))
					dt.SetCellFloat("Complexity", row, res.Complexity.FloatVal(idx))
					dt.SetCellTensor("Lambda", row, res.Lambda.SubSpace(idx))
					dt.SetCellTensor("ConnAUC", row, res.ConnAUC.SubSpace(idx))
					dt.SetCellTensor("TPF", row, res.TPF.SubSpace(idx))
					dt.SetCellTensor("FPF", row, res.FPF.SubSpace(idx))
					row++
				}
			}
		}
	}
	return saveTable(path, dt)
}

// writeMask records the ground-truth active sources per radius.
func writeMask(path string, cfg *connsim.Config, res *connsim.Results, nsrc int) error {
	sch := etable.Schema{
		{Name: "Radius", Type: etensor.FLOAT64},
		{Name: "Active", Type: etensor.FLOAT64, CellShape: []int{nsrc}, DimNames: []string{"Source"}},
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, len(cfg.PatchRadii))
	dt.SetMetaData("name", "ConnSimMask")

	for ir, radius := range cfg.PatchRadii {
		dt.SetCellFloat("Radius", ir, radius)
		dt.SetCellTensor("Active", ir, res.ActivityMask.SubSpace([]int{ir}))
	}
	return saveTable(path, dt)
}

func saveTable(path string, dt *etable.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dt.WriteCSV(f, etable.Tab, etable.Headers)
}
