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

package value

// RangeDriver implements the "…" (ellipsis) integer-range deferred array,
// e.g. 1…5 or 10…1 (descending ranges count down).
type RangeDriver struct {
	From, To int
}

// NewRange builds a deferred array over the inclusive integer range
// [from, to]. to may be less than from for a descending range.
func NewRange(from, to int) *Array {
	return NewDeferredArray(&RangeDriver{From: from, To: to})
}

func (r *RangeDriver) step() int {
	if r.To < r.From {
		return -1
	}
	return 1
}

func (r *RangeDriver) First(array *Array) Value {
	if r.From == r.To {
		return &cursor{Value: NewInt(int64(r.From)), pos: r.From}
	}
	return &cursor{Value: NewInt(int64(r.From)), pos: r.From}
}

func (r *RangeDriver) Next(elem Value) Value {
	c, ok := elem.(*cursor)
	if !ok {
		return nil
	}
	next := c.pos + r.step()
	if r.step() > 0 && next > r.To {
		return nil
	}
	if r.step() < 0 && next < r.To {
		return nil
	}
	return &cursor{Value: NewInt(int64(next)), pos: next}
}

func (r *RangeDriver) IsLast(elem Value) bool {
	c, ok := elem.(*cursor)
	return ok && c.pos == r.To
}

func (r *RangeDriver) BreakScan(Value) {}

func (r *RangeDriver) Len() (int, bool) {
	if r.To >= r.From {
		return r.To - r.From + 1, true
	}
	return r.From - r.To + 1, true
}

func (r *RangeDriver) ByIndex(array *Array, i int) (Value, bool) {
	n, _ := r.Len()
	if i < 0 || i >= n {
		return nil, true
	}
	return NewInt(int64(r.From + i*r.step())), true
}

func (r *RangeDriver) ByKeyValue(array *Array, key string, value Value) (Value, bool) {
	return nil, false
}
