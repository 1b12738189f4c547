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
	"fmt"
	"sort"

	log "github.com/golang/glog"

	"github.com/vantage6/v6-crosstab-go/cellrange"
	"github.com/vantage6/v6-crosstab-go/checks"
	"github.com/vantage6/v6-crosstab-go/envconfig"
)

// PartialOptions contains the options necessary to build one holder's
// partial contingency table.
type PartialOptions struct {
	// ResultsCol is the column whose categories are counted. Required.
	ResultsCol string
	// GroupCols are the columns the data is grouped by, in order.
	// At least one is required.
	GroupCols []string
	// Settings is the holder's privacy configuration. The zero value
	// (threshold 0, allow-zero false) is rejected as contradictory;
	// use envconfig.Default() for the documented defaults.
	Settings envconfig.Settings
}

// BuildPartial computes a holder's privacy-suppressed contingency
// table. Validation happens before any counting: contradictory privacy
// settings (ErrConfig), too few rows (ErrPrivacyThreshold) and column
// governance (ErrGovernance) all fail without touching the data, so no
// partial computation ever leaves the holder on failure.
//
// Every count at or above the privacy threshold is kept exactly; every
// other count is replaced by one shared placeholder range, so two
// suppressed cells are indistinguishable regardless of their true
// counts. If no cell reaches the threshold after setting aside the
// "N/A" result level and group keys containing "N/A", the holder has
// no usable signal and BuildPartial fails with ErrPrivacyThreshold.
func BuildPartial(ds *Dataset, opt *PartialOptions) (*Table, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset must not be nil")
	}
	if opt == nil {
		return nil, fmt.Errorf("options must not be nil")
	}
	settings := opt.Settings
	threshold := settings.PrivacyThreshold
	allowZero := bool(settings.AllowZero)

	log.Info("Checking privacy settings before starting...")
	if err := checks.CheckPrivacySettings(threshold, allowZero); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := checks.CheckMinimumRows(int64(ds.NumRows()), settings.MinimumRowsTotal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrivacyThreshold, err)
	}
	if err := checks.CheckGroupColumns(opt.ResultsCol, opt.GroupCols); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGovernance, err)
	}
	requested := append(append([]string(nil), opt.GroupCols...), opt.ResultsCol)
	if err := checks.CheckColumnGovernance(requested, settings.AllowedColumns, settings.DisallowedColumns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGovernance, err)
	}
	groupIdx := make([]int, len(opt.GroupCols))
	for i, col := range opt.GroupCols {
		if groupIdx[i] = ds.columnIndex(col); groupIdx[i] < 0 {
			return nil, fmt.Errorf("dataset has no column %q", col)
		}
	}
	resultsIdx := ds.columnIndex(opt.ResultsCol)
	if resultsIdx < 0 {
		return nil, fmt.Errorf("dataset has no column %q", opt.ResultsCol)
	}

	// Count observed (group key, result level) combinations, with
	// missing values as their own "N/A" category.
	log.Info("Creating contingency table...")
	counts := make(map[string]map[string]int64)
	levelSet := make(map[string]bool)
	for _, row := range ds.rows {
		key := make([]string, len(groupIdx))
		for i, idx := range groupIdx {
			key[i] = normalize(row[idx])
		}
		level := normalize(row[resultsIdx])
		joined := joinKey(key)
		if counts[joined] == nil {
			counts[joined] = make(map[string]int64)
		}
		counts[joined][level]++
		levelSet[level] = true
	}

	keys := make([]string, 0, len(counts))
	for joined := range counts {
		keys = append(keys, joined)
	}
	sort.Strings(keys)
	levels := make([]string, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	// The privacy gate only considers cells with fully known
	// categories: the "N/A" result level and group keys containing
	// "N/A" are degenerate and must not count as signal.
	if !anyCellReachesThreshold(counts, keys, levels, threshold) {
		return nil, fmt.Errorf("%w: no values in the contingency table are higher than the privacy "+
			"threshold of %d. Please check if you submitted categorical variables - if you did, "+
			"there may simply not be enough data at this data holder", ErrPrivacyThreshold, threshold)
	}

	log.Info("Replacing values below threshold with privacy-enhancing values...")
	placeholder := placeholderValue(threshold, allowZero)
	t := newTable(opt.GroupCols)
	for _, joined := range keys {
		key := splitKey(joined)
		for _, level := range levels {
			count := counts[joined][level]
			if count >= threshold || (allowZero && count == 0) {
				t.set(key, level, cellrange.Exact(count))
			} else {
				t.set(key, level, placeholder)
			}
		}
	}
	return t, nil
}

func anyCellReachesThreshold(counts map[string]map[string]int64, keys, levels []string, threshold int64) bool {
	for _, joined := range keys {
		if keyContainsNA(splitKey(joined)) {
			continue
		}
		for _, level := range levels {
			if level == NACategory {
				continue
			}
			if counts[joined][level] >= threshold {
				return true
			}
		}
	}
	return false
}

func keyContainsNA(key []string) bool {
	for _, part := range key {
		if part == NACategory {
			return true
		}
	}
	return false
}

// placeholderValue is the range standing in for every suppressed
// count. It depends only on the holder's settings, never on the count
// itself: [0, threshold-1], narrowed to [1, threshold-1] when zero
// counts are revealed (a suppressed cell then cannot be zero).
func placeholderValue(threshold int64, allowZero bool) cellrange.Value {
	if allowZero {
		return cellrange.Value{Low: 1, High: max(int64(1), threshold-1)}
	}
	return cellrange.Value{Low: 0, High: max(int64(0), threshold-1)}
}
