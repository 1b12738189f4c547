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

// Package cellrange represents contingency table cell values as integer
// bounds and converts them to and from their wire form.
//
// A cell either holds an exact count or a [low, high] range standing in
// for a suppressed count. An exact count n is the degenerate range
// [n, n] and renders as the plain decimal "n"; a proper range renders
// as "low-high". Values are immutable and safe to copy.
package cellrange

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a bound on a cell count. The invariant 0 ≤ Low ≤ High holds
// for every Value obtained through Exact, New or Parse.
type Value struct {
	Low  int64
	High int64
}

// Exact returns the Value representing the exact count n.
// n must be nonnegative; Exact panics otherwise, as exact counts only
// ever originate from counting rows.
func Exact(n int64) Value {
	if n < 0 {
		panic(fmt.Sprintf("cellrange: exact count is %d, must be nonnegative", n))
	}
	return Value{Low: n, High: n}
}

// New returns the Value bounded by [low, high].
func New(low, high int64) (Value, error) {
	if low < 0 {
		return Value{}, fmt.Errorf("lower bound is %d, must be nonnegative", low)
	}
	if low > high {
		return Value{}, fmt.Errorf("lower bound (%d) must not be larger than upper bound (%d)", low, high)
	}
	return Value{Low: low, High: high}, nil
}

// Parse decodes the wire form of a cell value. A string of the form
// "a-b" decodes to the range [a, b]; a plain decimal "v" decodes to the
// exact value [v, v]. Anything else is an error.
func Parse(s string) (Value, error) {
	if a, b, ok := strings.Cut(s, "-"); ok {
		low, err := parseCount(a)
		if err != nil {
			return Value{}, fmt.Errorf("cell value %q: %v", s, err)
		}
		high, err := parseCount(b)
		if err != nil {
			return Value{}, fmt.Errorf("cell value %q: %v", s, err)
		}
		v, err := New(low, high)
		if err != nil {
			return Value{}, fmt.Errorf("cell value %q: %v", s, err)
		}
		return v, nil
	}
	n, err := parseCount(s)
	if err != nil {
		return Value{}, fmt.Errorf("cell value %q: %v", s, err)
	}
	return Value{Low: n, High: n}, nil
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a count", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("count is %d, must be nonnegative", n)
	}
	return n, nil
}

// String encodes v in its wire form.
func (v Value) String() string {
	if v.Low == v.High {
		return strconv.FormatInt(v.Low, 10)
	}
	return strconv.FormatInt(v.Low, 10) + "-" + strconv.FormatInt(v.High, 10)
}

// IsExact reports whether v carries no uncertainty.
func (v Value) IsExact() bool {
	return v.Low == v.High
}

// Add returns the componentwise sum of v and w. Addition is associative
// and commutative, so merging any number of per-holder contributions
// yields the same bounds regardless of order.
func (v Value) Add(w Value) Value {
	return Value{Low: v.Low + w.Low, High: v.High + w.High}
}
