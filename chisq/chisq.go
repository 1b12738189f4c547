//
// Copyright 2024 vantage6
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package chisq implements Pearson's chi-squared test of independence
// for two-dimensional contingency tables.
package chisq

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Test runs Pearson's chi-squared test of independence on the observed
// counts. Rows are groups, columns are result levels. It returns the
// test statistic and the p-value, i.e. the probability of observing a
// statistic at least this large under the null hypothesis that rows
// and columns are independent.
//
// The table must have at least two rows and two columns, all rows must
// have the same length, and no row or column marginal may be zero
// (a zero marginal makes the expected count of a cell zero and the
// statistic undefined).
func Test(observed [][]float64) (stat, pValue float64, err error) {
	if len(observed) < 2 {
		return 0, 0, fmt.Errorf("table has %d row(s), need at least 2", len(observed))
	}
	cols := len(observed[0])
	for i, row := range observed {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("row %d has %d column(s), want %d", i, len(row), cols)
		}
		for j, o := range row {
			if o < 0 {
				return 0, 0, fmt.Errorf("cell (%d, %d) is %f, counts must be nonnegative", i, j, o)
			}
		}
	}
	if cols < 2 {
		return 0, 0, fmt.Errorf("table has %d column(s), need at least 2", cols)
	}

	rowTotals := make([]float64, len(observed))
	colTotals := make([]float64, cols)
	for i, row := range observed {
		rowTotals[i] = floats.Sum(row)
		floats.Add(colTotals, row)
	}
	grand := floats.Sum(rowTotals)
	if grand == 0 {
		return 0, 0, fmt.Errorf("table is all zero")
	}
	for i, rt := range rowTotals {
		if rt == 0 {
			return 0, 0, fmt.Errorf("row %d sums to zero, expected counts are undefined", i)
		}
	}
	for j, ct := range colTotals {
		if ct == 0 {
			return 0, 0, fmt.Errorf("column %d sums to zero, expected counts are undefined", j)
		}
	}

	for i, row := range observed {
		for j, o := range row {
			e := rowTotals[i] * colTotals[j] / grand
			d := o - e
			stat += d * d / e
		}
	}

	dof := float64((len(observed) - 1) * (cols - 1))
	pValue = distuv.ChiSquared{K: dof}.Survival(stat)
	return stat, pValue, nil
}
