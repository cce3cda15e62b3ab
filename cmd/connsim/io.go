// Copyright (c) 2024, The MEGLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// readMatrix reads a headerless tab-separated numeric matrix, the
// export format of the MEG preprocessing scripts.
func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 || len(recs[0]) == 0 {
		return nil, fmt.Errorf("%s: empty matrix", path)
	}

	rows, cols := len(recs), len(recs[0])
	m := mat.NewDense(rows, cols, nil)
	for i, rec := range recs {
		if len(rec) != cols {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d", path, i, len(rec), cols)
		}
		for j, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d col %d: %w", path, i, j, err)
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}
