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

package crosstab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDataset(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		columns []string
		rows    [][]string
		wantErr bool
	}{
		{"valid dataset",
			[]string{"sex", "disease"},
			[][]string{{"M", "yes"}, {"F", "no"}},
			false},
		{"no columns",
			nil,
			nil,
			true},
		{"duplicate column",
			[]string{"sex", "sex"},
			nil,
			true},
		{"empty column name",
			[]string{"sex", ""},
			nil,
			true},
		{"ragged row",
			[]string{"sex", "disease"},
			[][]string{{"M"}},
			true},
		{"no rows",
			[]string{"sex", "disease"},
			nil,
			false},
	} {
		if _, err := NewDataset(tc.columns, tc.rows); (err != nil) != tc.wantErr {
			t.Errorf("NewDataset: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	csv := "sex,disease\nM,yes\nM,no\nF,yes\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("couldn't write test file: %v", err)
	}
	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"sex", "disease"}, got.Columns()); diff != "" {
		t.Errorf("Columns() returned diff (-want +got):\n%s", diff)
	}
	if got.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", got.NumRows())
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Errorf("ReadCSV of a missing file expected an error, got none")
	}
	path := filepath.Join(t.TempDir(), "ragged.csv")
	if err := os.WriteFile(path, []byte("sex,disease\nM\n"), 0o644); err != nil {
		t.Fatalf("couldn't write test file: %v", err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Errorf("ReadCSV of a ragged file expected an error, got none")
	}
}
