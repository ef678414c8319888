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

// Driver is the deferred-array vtable (§3.3): a uniform first/next/
// is-last/by-index protocol over a lazily produced element sequence.
// First/Next/IsLast are required; Len/ByIndex/ByKeyValue are optional
// shortcuts — a driver that can't implement one returns ok=false and the
// caller falls back to a linear scan.
type Driver interface {
	// First returns the first element, or nil if the array is empty.
	First(array *Array) Value

	// Next returns the element after elem, or nil.
	Next(elem Value) Value

	// IsLast reports whether elem is the last element of its scan.
	IsLast(elem Value) bool

	// BreakScan releases any resources associated with an in-progress
	// scan that is being abandoned before reaching the end. Safe to
	// call with the result of IsLast()==true, as a no-op.
	BreakScan(elem Value)

	// Len reports the element count, if known without a full scan.
	Len() (n int, ok bool)

	// ByIndex jumps directly to the i-th element (0-based, already
	// normalized for negative wrap by the caller).
	ByIndex(array *Array, i int) (Value, bool)

	// ByKeyValue scans for a row whose member named key deep-equals
	// value. Drivers that index rows can implement this in better than
	// linear time; others return ok=false.
	ByKeyValue(array *Array, key string, value Value) (Value, bool)
}

// cursor wraps a produced element with enough driver-private state to
// resume iteration from it. Embedding Value satisfies the Value
// interface by promotion.
type cursor struct {
	Value
	pos int
}
