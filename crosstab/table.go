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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vantage6/v6-crosstab-go/cellrange"
)

// keySep joins the parts of a group key into a single map key. The
// unit separator is not a printable character, so joined keys sort the
// same way the underlying tuples do.
const keySep = "\x1f"

func joinKey(key []string) string {
	return strings.Join(key, keySep)
}

func splitKey(joined string) []string {
	return strings.Split(joined, keySep)
}

// Table is a contingency table: group key tuples against result
// levels, with a bounded count in each cell. A Table built by
// BuildPartial or Aggregate is never modified afterwards.
//
// Keys and levels keep their insertion order, so a serialized Table
// lists rows and columns exactly as its producer arranged them.
type Table struct {
	groupCols []string
	levels    []string
	keys      []string // joined group key tuples
	cells     map[string]map[string]cellrange.Value
}

func newTable(groupCols []string) *Table {
	return &Table{
		groupCols: append([]string(nil), groupCols...),
		cells:     make(map[string]map[string]cellrange.Value),
	}
}

// set stores a cell, registering the key row and level column on first
// use.
func (t *Table) set(key []string, level string, v cellrange.Value) {
	joined := joinKey(key)
	row, ok := t.cells[joined]
	if !ok {
		row = make(map[string]cellrange.Value)
		t.cells[joined] = row
		t.keys = append(t.keys, joined)
	}
	if _, ok := row[level]; !ok {
		found := false
		for _, l := range t.levels {
			if l == level {
				found = true
				break
			}
		}
		if !found {
			t.levels = append(t.levels, level)
		}
	}
	row[level] = v
}

// GroupCols returns a copy of the group column names.
func (t *Table) GroupCols() []string {
	return append([]string(nil), t.groupCols...)
}

// Levels returns a copy of the result level names, in table order.
func (t *Table) Levels() []string {
	return append([]string(nil), t.levels...)
}

// Keys returns a copy of the group key tuples, in table order.
func (t *Table) Keys() [][]string {
	keys := make([][]string, len(t.keys))
	for i, joined := range t.keys {
		keys[i] = splitKey(joined)
	}
	return keys
}

// Cell returns the value for the given group key and result level.
// The second return value is false when the table holds no such cell;
// an absent cell contributes an exact zero to any merge.
func (t *Table) Cell(key []string, level string) (cellrange.Value, bool) {
	row, ok := t.cells[joinKey(key)]
	if !ok {
		return cellrange.Value{}, false
	}
	v, ok := row[level]
	return v, ok
}

// MarshalPayload serializes the table as a JSON array of records, one
// per group key, with the group columns first and one string column
// per result level. This is the wire form a holder returns and the
// aggregator consumes.
func (t *Table) MarshalPayload() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, joined := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		key := splitKey(joined)
		first := true
		writeField := func(name, value string) error {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			n, err := json.Marshal(name)
			if err != nil {
				return err
			}
			v, err := json.Marshal(value)
			if err != nil {
				return err
			}
			buf.Write(n)
			buf.WriteByte(':')
			buf.Write(v)
			return nil
		}
		for j, col := range t.groupCols {
			if err := writeField(col, key[j]); err != nil {
				return nil, err
			}
		}
		for _, level := range t.levels {
			v, ok := t.cells[joined][level]
			if !ok {
				continue
			}
			if err := writeField(level, v.String()); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// ParsePayload decodes a serialized partial table. The records must
// carry exactly the given group columns; every other field is taken to
// be a result level with a cell value in wire form.
func ParsePayload(payload []byte, groupCols []string) (*Table, error) {
	var records []map[string]string
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	t := newTable(groupCols)
	for i, record := range records {
		key := make([]string, len(groupCols))
		for j, col := range groupCols {
			v, ok := record[col]
			if !ok {
				return nil, fmt.Errorf("%w: record %d is missing group column %q", ErrSchemaMismatch, i, col)
			}
			key[j] = v
		}
		if _, ok := t.cells[joinKey(key)]; ok {
			return nil, fmt.Errorf("%w: duplicate group key %v", ErrParse, key)
		}
		levels := make([]string, 0, len(record))
		for name := range record {
			if !isGroupCol(name, groupCols) {
				levels = append(levels, name)
			}
		}
		if len(levels) == 0 {
			return nil, fmt.Errorf("%w: record %d has no result level columns", ErrSchemaMismatch, i)
		}
		sort.Strings(levels)
		for _, name := range levels {
			v, err := cellrange.Parse(record[name])
			if err != nil {
				return nil, fmt.Errorf("%w: column %q of record %d: %v", ErrParse, name, i, err)
			}
			t.set(key, name, v)
		}
	}
	return t, nil
}

func isGroupCol(name string, groupCols []string) bool {
	for _, c := range groupCols {
		if c == name {
			return true
		}
	}
	return false
}
