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

package chisq

import (
	"math"
	"testing"
)

func TestTest(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		observed [][]float64
		wantStat float64
		wantP    float64
	}{
		// Expected counts are [[12, 18], [28, 42]], so the statistic is
		// 4/12 + 4/18 + 4/28 + 4/42 = 50/63.
		{"2x2 table",
			[][]float64{{10, 20}, {30, 40}},
			50.0 / 63.0,
			0.3730},
		{"independent rows give a zero statistic",
			[][]float64{{10, 20}, {20, 40}},
			0,
			1},
		// Marginals 9/10/10 and 13/16; statistic is 8.963355 with
		// 2 degrees of freedom, so the p-value is exp(-stat/2).
		{"3x2 table",
			[][]float64{{7, 2}, {1, 9}, {5, 5}},
			8.963355,
			0.011314},
	} {
		stat, p, err := Test(tc.observed)
		if err != nil {
			t.Errorf("Test: when %s got unexpected error: %v", tc.desc, err)
			continue
		}
		if math.Abs(stat-tc.wantStat) > 1e-4 {
			t.Errorf("Test: when %s got stat %f, want %f", tc.desc, stat, tc.wantStat)
		}
		if math.Abs(p-tc.wantP) > 1e-4 {
			t.Errorf("Test: when %s got p-value %f, want %f", tc.desc, p, tc.wantP)
		}
	}
}

func TestTestDegenerate(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		observed [][]float64
	}{
		{"no rows",
			nil},
		{"single row",
			[][]float64{{1, 2}}},
		{"single column",
			[][]float64{{1}, {2}}},
		{"ragged rows",
			[][]float64{{1, 2}, {3}}},
		{"all zero",
			[][]float64{{0, 0}, {0, 0}}},
		{"zero row marginal",
			[][]float64{{0, 0}, {3, 4}}},
		{"zero column marginal",
			[][]float64{{0, 4}, {0, 3}}},
		{"negative count",
			[][]float64{{-1, 4}, {2, 3}}},
	} {
		if _, _, err := Test(tc.observed); err == nil {
			t.Errorf("Test: when %s expected an error, got none", tc.desc)
		}
	}
}
