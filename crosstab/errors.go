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

import "errors"

// Failure categories. Errors returned by this package wrap one of
// these sentinels, so callers can classify failures with errors.Is
// without parsing messages.
var (
	// ErrConfig marks a holder configuration that is internally
	// inconsistent, such as a privacy threshold of 0 without allowing
	// zero counts.
	ErrConfig = errors.New("invalid privacy configuration")
	// ErrPrivacyThreshold marks data that is too small or too sparse
	// for the holder to contribute anything.
	ErrPrivacyThreshold = errors.New("privacy threshold violation")
	// ErrGovernance marks a request for columns the holder does not
	// permit.
	ErrGovernance = errors.New("column governance violation")
	// ErrSchemaMismatch marks partial tables that disagree on group
	// columns.
	ErrSchemaMismatch = errors.New("partial table schema mismatch")
	// ErrParse marks a payload or cell value that cannot be decoded.
	ErrParse = errors.New("malformed partial table")
)
