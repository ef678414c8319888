// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import "github.com/kirkendall/jsoncalc-sub001/value"

// AvgState is the scratch an "avg" aggregate accumulates: a running sum
// and row count, divided at Finalize time (§3.2's "combined storage size
// for all ... per-call scratch" is just this struct's size here, one
// instance per callsite).
type AvgState struct {
	Sum   float64
	Count int
}

// NewAggState wraps an aggregate's initial scratch value. Concrete
// aggregates (registry.installBuiltins) hold whatever shape they need
// in data; these accessors keep that shape private to this package
// while still letting a separate registry package drive it through the
// AggregateFunc.New/Step/Finalize closures it supplies.
func NewAggState(data interface{}) *AggState { return &AggState{data: data} }

// AggInt / SetAggInt back a "count"-shaped aggregate.
func AggInt(s *AggState) int64 { return s.data.(int64) }
func SetAggInt(s *AggState, v int64) { s.data = v }

// AggFloat / SetAggFloat back a "sum"-shaped aggregate.
func AggFloat(s *AggState) float64 { return s.data.(float64) }
func SetAggFloat(s *AggState, v float64) { s.data = v }

// AggAvg / SetAggAvg back an "avg"-shaped aggregate.
func AggAvg(s *AggState) AvgState { return s.data.(AvgState) }
func SetAggAvg(s *AggState, v AvgState) { s.data = v }

// AggValue / SetAggValue back a "min"/"max"-shaped aggregate, which
// tracks the winning row itself rather than a derived scalar.
func AggValue(s *AggState) value.Value {
	if s.data == nil {
		return nil
	}
	return s.data.(value.Value)
}
func SetAggValue(s *AggState, v value.Value) { s.data = v }
