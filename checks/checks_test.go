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

package checks

import (
	"testing"
)

func TestCheckPrivacySettings(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		threshold int64
		allowZero bool
		wantErr   bool
	}{
		{"default threshold",
			5, false,
			false},
		{"threshold zero without allow-zero",
			0, false,
			true},
		{"threshold zero with allow-zero",
			0, true,
			false},
		{"threshold one without allow-zero",
			1, false,
			false},
		{"negative threshold",
			-1, false,
			true},
		{"negative threshold with allow-zero",
			-1, true,
			true},
	} {
		if err := CheckPrivacySettings(tc.threshold, tc.allowZero); (err != nil) != tc.wantErr {
			t.Errorf("CheckPrivacySettings: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckMinimumRows(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		rows    int64
		minimum int64
		wantErr bool
	}{
		{"enough rows",
			10, 5,
			false},
		{"exactly enough rows",
			5, 5,
			false},
		{"too few rows",
			4, 5,
			true},
		{"empty dataset",
			0, 5,
			true},
		{"minimum of zero accepts anything",
			0, 0,
			false},
		{"negative minimum",
			10, -1,
			true},
	} {
		if err := CheckMinimumRows(tc.rows, tc.minimum); (err != nil) != tc.wantErr {
			t.Errorf("CheckMinimumRows: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckColumnGovernance(t *testing.T) {
	for _, tc := range []struct {
		desc       string
		cols       []string
		allowed    []string
		disallowed []string
		wantErr    bool
	}{
		{"no lists configured",
			[]string{"sex", "disease"}, nil, nil,
			false},
		{"column on the blacklist",
			[]string{"sex", "ssn"}, nil, []string{"ssn"},
			true},
		{"all columns whitelisted",
			[]string{"sex", "disease"}, []string{"sex", "disease", "age"}, nil,
			false},
		{"column missing from whitelist",
			[]string{"sex", "income"}, []string{"sex", "disease"}, nil,
			true},
		{"blacklist wins over whitelist",
			[]string{"sex"}, []string{"sex"}, []string{"sex"},
			true},
		{"empty column set is fine",
			nil, []string{"sex"}, []string{"ssn"},
			false},
	} {
		if err := CheckColumnGovernance(tc.cols, tc.allowed, tc.disallowed); (err != nil) != tc.wantErr {
			t.Errorf("CheckColumnGovernance: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestCheckGroupColumns(t *testing.T) {
	for _, tc := range []struct {
		desc       string
		resultsCol string
		groupCols  []string
		wantErr    bool
	}{
		{"single group column",
			"disease", []string{"sex"},
			false},
		{"multiple group columns",
			"disease", []string{"sex", "region"},
			false},
		{"no group columns",
			"disease", nil,
			true},
		{"empty results column",
			"", []string{"sex"},
			true},
		{"duplicate group column",
			"disease", []string{"sex", "sex"},
			true},
		{"results column repeated as group column",
			"disease", []string{"sex", "disease"},
			true},
		{"empty group column name",
			"disease", []string{""},
			true},
	} {
		if err := CheckGroupColumns(tc.resultsCol, tc.groupCols); (err != nil) != tc.wantErr {
			t.Errorf("CheckGroupColumns: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}
