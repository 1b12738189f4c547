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

// Package crosstab computes federated contingency tables over
// categorical data that independent holders cannot share directly.
//
// Each holder runs BuildPartial over its own rows: counts per
// (group key, result level) combination are computed locally and any
// count below the holder's privacy threshold is replaced by a range
// placeholder that reveals nothing beyond "below the threshold". The
// serialized partial tables are then merged centrally by Aggregate,
// which sums the per-cell bounds, derives totals, and bounds the
// chi-squared statistic of independence by evaluating it on both the
// low-bound and the high-bound view of the merged table.
//
// Both operations are pure functions of their inputs: holders share no
// state with each other, and the aggregator sees only already-redacted
// payloads, never a holder's configuration or raw rows.
package crosstab
