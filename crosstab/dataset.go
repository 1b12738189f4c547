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
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// NACategory is the sentinel category that stands in for missing
// values, both in group columns and in the results column.
const NACategory = "N/A"

// Dataset is a holder-local table of categorical data. All cells are
// strings; an empty cell counts as missing and is normalized to
// NACategory when the contingency table is built.
type Dataset struct {
	columns []string
	rows    [][]string
}

// NewDataset returns a Dataset over the given column names and rows.
// Every row must have exactly one cell per column.
func NewDataset(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset needs at least one column")
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("column names must not be empty")
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cell(s), want %d", i, len(row), len(columns))
		}
	}
	return &Dataset{columns: columns, rows: rows}, nil
}

// ReadCSV reads a Dataset from a CSV file whose first record is the
// header.
func ReadCSV(inputFile string) (*Dataset, error) {
	csvFile, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the csv file = %q, err = %v", inputFile, err)
	}
	defer csvFile.Close()

	r := csv.NewReader(csvFile)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("couldn't read the header of the csv file = %q, err = %v", inputFile, err)
	}
	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read the csv file = %q, err = %v", inputFile, err)
		}
		rows = append(rows, record)
	}
	return NewDataset(header, rows)
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int {
	return len(d.rows)
}

// Columns returns a copy of the column names.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// columnIndex returns the position of the named column, or -1.
func (d *Dataset) columnIndex(name string) int {
	for i, c := range d.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// normalize maps missing cells to the NACategory sentinel.
func normalize(cell string) string {
	if cell == "" {
		return NACategory
	}
	return cell
}
