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
	"strconv"

	log "github.com/golang/glog"

	"github.com/vantage6/v6-crosstab-go/cellrange"
	"github.com/vantage6/v6-crosstab-go/chisq"
)

// TotalLabel names the synthetic totals row and column.
const TotalLabel = "Total"

// AggregateOptions contains the options necessary to merge partial
// tables into a global result.
type AggregateOptions struct {
	// GroupCols are the group columns every partial table must carry,
	// in order. Required.
	GroupCols []string
	// IncludeTotals appends a totals row and column to the table.
	IncludeTotals bool
	// IncludeChi2 adds a chi-squared test of independence over the
	// merged table.
	IncludeChi2 bool
}

// Chi2Summary reports the chi-squared test outcome. When suppression
// left no uncertainty both fields hold single numbers; otherwise they
// hold "a - b" ranges bounding the true statistic and p-value.
type Chi2Summary struct {
	Chi2   string `json:"chi2"`
	PValue string `json:"P-value"`
}

// Result is the final aggregated document.
type Result struct {
	// Table is the merged contingency table, including the totals row
	// and column when requested.
	Table *Table
	// Chi2 is nil when the test was not requested or could not be
	// computed on a degenerate table.
	Chi2 *Chi2Summary
}

// MarshalJSON renders the output document:
// {"contingency_table": [...], "chi2": {"chi2": ..., "P-value": ...}}
// with the chi2 section omitted when absent.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"contingency_table":`)
	table, err := r.Table.MarshalPayload()
	if err != nil {
		return nil, err
	}
	buf.Write(table)
	if r.Chi2 != nil {
		chi2, err := json.Marshal(r.Chi2)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"chi2":`)
		buf.Write(chi2)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Aggregate merges the holders' serialized partial tables into one
// global contingency table with propagated bounds.
//
// Every payload must decode and carry the expected group columns; any
// decode or schema failure aborts the whole aggregation. A (group key,
// result level) pair absent from a given table contributes an exact
// zero. A chi-squared failure, by contrast, is isolated: a table too
// degenerate to test still yields the contingency table and totals,
// with the chi2 section omitted and a warning logged.
func Aggregate(payloads [][]byte, opt *AggregateOptions) (*Result, error) {
	if opt == nil {
		return nil, fmt.Errorf("options must not be nil")
	}
	if len(opt.GroupCols) == 0 {
		return nil, fmt.Errorf("at least one group column is required")
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("no partial tables to aggregate")
	}

	log.Infof("Aggregating %d partial table(s)...", len(payloads))
	tables := make([]*Table, len(payloads))
	for i, payload := range payloads {
		t, err := ParsePayload(payload, opt.GroupCols)
		if err != nil {
			return nil, fmt.Errorf("partial table %d: %w", i, err)
		}
		tables[i] = t
	}

	// Union of group keys and result levels across all tables, in
	// sorted order.
	keySet := make(map[string]bool)
	levelSet := make(map[string]bool)
	for _, t := range tables {
		for _, joined := range t.keys {
			keySet[joined] = true
		}
		for _, level := range t.levels {
			levelSet[level] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for joined := range keySet {
		keys = append(keys, joined)
	}
	sort.Strings(keys)
	levels := make([]string, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	// Merge: per cell, lows and highs sum independently across tables.
	merged := newTable(opt.GroupCols)
	for _, joined := range keys {
		key := splitKey(joined)
		for _, level := range levels {
			acc := cellrange.Exact(0)
			for _, t := range tables {
				if v, ok := t.Cell(key, level); ok {
					acc = acc.Add(v)
				}
			}
			merged.set(key, level, acc)
		}
	}

	var summary *Chi2Summary
	if opt.IncludeChi2 {
		summary = chiSquaredSummary(merged)
	}
	if opt.IncludeTotals {
		appendTotals(merged)
	}
	return &Result{Table: merged, Chi2: summary}, nil
}

// appendTotals adds a Total column with per-key row totals and a
// synthetic Total row with per-level column totals plus the grand
// total. The first group column of the Total row carries the literal
// "Total"; the remaining group columns stay blank. Totals sum the raw
// bounds, which by associativity equals summing the displayed values.
func appendTotals(t *Table) {
	keys := append([]string(nil), t.keys...)
	levels := append([]string(nil), t.levels...)

	colTotals := make(map[string]cellrange.Value, len(levels))
	for _, level := range levels {
		colTotals[level] = cellrange.Exact(0)
	}
	grand := cellrange.Exact(0)
	for _, joined := range keys {
		key := splitKey(joined)
		rowTotal := cellrange.Exact(0)
		for _, level := range levels {
			v := t.cells[joined][level]
			rowTotal = rowTotal.Add(v)
			colTotals[level] = colTotals[level].Add(v)
		}
		t.set(key, TotalLabel, rowTotal)
		grand = grand.Add(rowTotal)
	}

	totalKey := make([]string, len(t.groupCols))
	totalKey[0] = TotalLabel
	for _, level := range levels {
		t.set(totalKey, level, colTotals[level])
	}
	t.set(totalKey, TotalLabel, grand)
}

// chiSquaredSummary bounds the chi-squared statistic by testing the
// low-bound and high-bound views of the merged table. Rows that are
// all zero in the low view are dropped, and the same row mask is
// applied to the high view so both statistics are computed over the
// same grid. Returns nil if either test fails.
func chiSquaredSummary(t *Table) *Chi2Summary {
	var lows, highs [][]float64
	for _, joined := range t.keys {
		lowRow := make([]float64, len(t.levels))
		highRow := make([]float64, len(t.levels))
		allZero := true
		for j, level := range t.levels {
			v := t.cells[joined][level]
			lowRow[j] = float64(v.Low)
			highRow[j] = float64(v.High)
			if v.Low != 0 {
				allZero = false
			}
		}
		if allZero {
			continue
		}
		lows = append(lows, lowRow)
		highs = append(highs, highRow)
	}

	statLow, pLow, err := chisq.Test(lows)
	if err != nil {
		log.Warningf("Chi-squared test failed on the lower-bound table: %v. Omitting chi2 from the result.", err)
		return nil
	}
	statHigh, pHigh, err := chisq.Test(highs)
	if err != nil {
		log.Warningf("Chi-squared test failed on the upper-bound table: %v. Omitting chi2 from the result.", err)
		return nil
	}

	if statLow == statHigh {
		return &Chi2Summary{
			Chi2:   formatStat(statLow),
			PValue: formatStat(pLow),
		}
	}
	// The low-bound view pulls suppressed cells toward the extremes
	// and yields the larger statistic; statistic and p-value move in
	// opposite directions.
	return &Chi2Summary{
		Chi2:   formatStat(statHigh) + " - " + formatStat(statLow),
		PValue: formatStat(pLow) + " - " + formatStat(pHigh),
	}
}

func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
