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

// Package checks contains pre-start checks for privacy-preserving
// cross-tabulation. All checks run at the data holder before any
// counting happens, so a failing check never leaks anything about the
// underlying rows.
package checks

import (
	"fmt"

	log "github.com/golang/glog"
)

// CheckPrivacySettings returns an error if the privacy threshold and
// the allow-zero flag contradict each other. A threshold of 0 means no
// count is ever suppressed, which is only coherent when revealing zero
// counts is explicitly allowed.
func CheckPrivacySettings(privacyThreshold int64, allowZero bool) error {
	if privacyThreshold < 0 {
		return fmt.Errorf("privacy threshold is %d, must be nonnegative", privacyThreshold)
	}
	if privacyThreshold == 0 && !allowZero {
		return fmt.Errorf("privacy threshold is set to 0, but zero values are not allowed. " +
			"This directly contradicts each other - please change one of the settings")
	}
	if privacyThreshold == 0 {
		log.Warning("Privacy threshold is 0: no cell values will be suppressed")
	}
	return nil
}

// CheckMinimumRows returns an error if the dataset holds fewer rows
// than the configured minimum.
func CheckMinimumRows(rows, minimumRowsTotal int64) error {
	if minimumRowsTotal < 0 {
		return fmt.Errorf("minimum rows total is %d, must be nonnegative", minimumRowsTotal)
	}
	if rows < minimumRowsTotal {
		return fmt.Errorf("dataset contains less than %d rows. Refusing to handle this "+
			"computation, as it may lead to privacy issues", minimumRowsTotal)
	}
	return nil
}

// CheckColumnGovernance returns an error if any of the requested
// columns is disallowed by the holder, or if a whitelist is configured
// and a requested column is not on it. The blacklist always wins; the
// whitelist only applies when non-empty.
func CheckColumnGovernance(cols, allowed, disallowed []string) error {
	disallowedSet := make(map[string]bool, len(disallowed))
	for _, c := range disallowed {
		disallowedSet[c] = true
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = true
	}
	for _, c := range cols {
		if disallowedSet[c] {
			return fmt.Errorf("column %q is disallowed by this data holder", c)
		}
		if len(allowedSet) > 0 && !allowedSet[c] {
			return fmt.Errorf("column %q is not on this data holder's list of allowed columns", c)
		}
	}
	return nil
}

// CheckGroupColumns returns an error if the group columns are empty,
// contain duplicates or empty names, or repeat the results column.
func CheckGroupColumns(resultsCol string, groupCols []string) error {
	if resultsCol == "" {
		return fmt.Errorf("results column name must not be empty")
	}
	if len(groupCols) == 0 {
		return fmt.Errorf("at least one group column is required")
	}
	seen := make(map[string]bool, len(groupCols))
	for _, c := range groupCols {
		if c == "" {
			return fmt.Errorf("group column names must not be empty")
		}
		if seen[c] {
			return fmt.Errorf("group column %q is listed more than once", c)
		}
		if c == resultsCol {
			return fmt.Errorf("column %q cannot be both a group column and the results column", c)
		}
		seen[c] = true
	}
	return nil
}
