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

// Array is an ordered sequence of child values. If driver is non-nil the
// array is deferred (§3.3): elems is filled in lazily as the driver is
// scanned, and Materialize forces the whole thing into memory.
type Array struct {
	elems   []Value
	driver  Driver
	isTable TriState
}

// NewArray builds an eager array from the given elements.
func NewArray(elems ...Value) *Array {
	return &Array{elems: elems}
}

// NewDeferredArray builds an array backed by a deferred driver.
func NewDeferredArray(d Driver) *Array {
	return &Array{driver: d}
}

func (a *Array) Tag() Tag { return TagArray }

// IsDeferred reports whether this array is driven by a Driver rather than
// holding fully-realized elements.
func (a *Array) IsDeferred() bool { return a.driver != nil }

func (a *Array) Copy(keep func(Value) bool) Value {
	if a.IsDeferred() {
		// Deferred arrays copy by full materialization: the driver's
		// resources (mmap'd file, blob slice) are not something a
		// language-level copy should duplicate.
		return a.Materialize().Copy(keep)
	}
	cp := &Array{elems: make([]Value, 0, len(a.elems)), isTable: a.isTable}
	for _, e := range a.elems {
		if keep != nil && !keep(e) {
			continue
		}
		cp.elems = append(cp.elems, e.Copy(keep))
	}
	return cp
}

func (a *Array) String() string {
	s := "["
	first := true
	a.ForEach(func(v Value) bool {
		if !first {
			s += ","
		}
		first = false
		s += v.String()
		return true
	})
	return s + "]"
}

// Len returns the number of elements, scanning a deferred array to
// completion if its count isn't already cached.
func (a *Array) Len() int {
	if !a.IsDeferred() {
		return len(a.elems)
	}
	if ln, ok := a.driver.Len(); ok {
		return ln
	}
	return len(a.Materialize().elems)
}

// At returns the i-th element (negative i wraps from the end, per
// spec §8 property 9), or nil if out of range.
func (a *Array) At(i int) Value {
	n := a.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil
	}
	if !a.IsDeferred() {
		return a.elems[i]
	}
	if v, ok := a.driver.ByIndex(a, i); ok {
		return v
	}
	return a.Materialize().elems[i]
}

// ByKeyValue scans for the first row whose member named key deep-equals
// value, using the driver's shortcut if available.
func (a *Array) ByKeyValue(key string, value Value) Value {
	if a.IsDeferred() {
		if v, ok := a.driver.ByKeyValue(a, key, value); ok {
			return v
		}
	}
	var found Value
	a.ForEach(func(v Value) bool {
		obj, ok := v.(*Object)
		if !ok {
			return true
		}
		if m := obj.Get(key); m != nil && DeepEqual(m, value) {
			found = v
			return false
		}
		return true
	})
	return found
}

// SetAt replaces the element at index i (negative wraps), materializing a
// deferred array first. Reports whether i was in range.
func (a *Array) SetAt(i int, v Value) bool {
	if a.IsDeferred() {
		a = a.Materialize()
	}
	n := len(a.elems)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return false
	}
	a.elems[i] = v
	a.isTable = Unknown
	return true
}

// Append adds v as a new last element, materializing a deferred array
// first.
func (a *Array) Append(v Value) {
	if a.IsDeferred() {
		a = a.Materialize()
	}
	a.elems = append(a.elems, v)
	a.isTable = Unknown
}

// Elems returns the realized elements, materializing first if deferred.
func (a *Array) Elems() []Value {
	if a.IsDeferred() {
		return a.Materialize().elems
	}
	return a.elems
}

// ForEach iterates every element in order, preferring the driver's
// first/next protocol for deferred arrays so the whole array need not be
// pulled into memory at once. Iteration stops early if fn returns false.
// A scan that is not run to completion must be released with BreakScan.
func (a *Array) ForEach(fn func(Value) bool) {
	if !a.IsDeferred() {
		for _, e := range a.elems {
			if !fn(e) {
				return
			}
		}
		return
	}
	elem := a.driver.First(a)
	for elem != nil {
		last := a.driver.IsLast(elem)
		if !fn(elem) {
			a.driver.BreakScan(elem)
			return
		}
		if last {
			return
		}
		elem = a.driver.Next(elem)
	}
}

// Materialize pulls every element of a deferred array into memory,
// replacing the receiver's driver with a plain element slice. It is a
// no-op (returns the receiver) for already-eager arrays.
func (a *Array) Materialize() *Array {
	if !a.IsDeferred() {
		return a
	}
	elems := make([]Value, 0, a.Len())
	a.ForEach(func(v Value) bool {
		elems = append(elems, v)
		return true
	})
	a.elems = elems
	a.driver = nil
	return a
}

// IsTable reports whether the array is a table: non-empty, every element
// a non-empty object. The result is cached on the array node.
func (a *Array) IsTable() bool {
	if a.isTable != Unknown {
		return a.isTable == Yes
	}
	result := Yes
	n := 0
	a.ForEach(func(v Value) bool {
		n++
		obj, ok := v.(*Object)
		if !ok || len(obj.Keys) == 0 {
			result = No
			return false
		}
		return true
	})
	if n == 0 {
		result = No
	}
	a.isTable = result
	return result == Yes
}
