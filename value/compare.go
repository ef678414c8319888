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

import "strings"

// DeepEqual implements === (strict, type-and-value) equality: different
// types never match; arrays compare element-by-element in order;
// objects compare by name regardless of member order (§4.A, §8
// property 6).
func DeepEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Tag() != b.Tag() {
		return false
	}
	switch av := a.(type) {
	case *Null:
		return true
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case *Number:
		return av.Float() == b.(*Number).Float()
	case *Array:
		bv := b.(*Array)
		if av.Len() != bv.Len() {
			return false
		}
		n := av.Len()
		for i := 0; i < n; i++ {
			if !DeepEqual(av.At(i), bv.At(i)) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys {
			other := bv.Get(k.Name)
			if other == nil || !DeepEqual(k.Val, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LooseEqual implements == (loose) equality per §4.A / §4.F.5: null
// matches null only; booleans match booleans only; number-to-string
// comparisons reparse the string and compare numerically if the parse is
// clean; otherwise strings compare byte-equal case-insensitively.
func LooseEqual(a, b Value) bool {
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	if a.Tag() == TagBool || b.Tag() == TagBool {
		return a.Tag() == TagBool && b.Tag() == TagBool && a.(Bool) == b.(Bool)
	}
	if a.Tag() == TagArray || a.Tag() == TagObject || b.Tag() == TagArray || b.Tag() == TagObject {
		return DeepEqual(a, b)
	}
	an, aIsNum := a.(*Number)
	bn, bIsNum := b.(*Number)
	switch {
	case aIsNum && bIsNum:
		return an.Float() == bn.Float()
	case aIsNum && !bIsNum:
		n, ok := ParseClean(string(b.(String)))
		return ok && n.Float() == an.Float()
	case !aIsNum && bIsNum:
		n, ok := ParseClean(string(a.(String)))
		return ok && n.Float() == bn.Float()
	default:
		return strings.EqualFold(string(a.(String)), string(b.(String)))
	}
}

func isNull(v Value) bool {
	_, ok := v.(*Null)
	return ok
}

// Compare orders a against b for < <= >= > per §4.F.5: numeric vs string
// comparison is decided by the left operand's type; an unclean
// string-to-number parse makes ordered comparisons false (callers should
// treat a non-{-1,0,1} ok=false as "incomparable").
func Compare(a, b Value) (result int, ok bool) {
	if isNull(a) || isNull(b) {
		return 0, false
	}
	if a.Tag() == TagArray || a.Tag() == TagObject || b.Tag() == TagArray || b.Tag() == TagObject {
		return 0, false
	}
	an, aIsNum := a.(*Number)
	if aIsNum {
		var bf float64
		switch bv := b.(type) {
		case *Number:
			bf = bv.Float()
		case String:
			n, ok := ParseClean(string(bv))
			if !ok {
				return 0, false
			}
			bf = n.Float()
		default:
			return 0, false
		}
		return cmpFloat(an.Float(), bf), true
	}
	as, aIsStr := a.(String)
	if aIsStr {
		var bs string
		switch bv := b.(type) {
		case String:
			bs = string(bv)
		case *Number:
			bs = bv.String()
		default:
			return 0, false
		}
		return cmpFloat(float64(strings.Compare(string(as), bs)), 0), true
	}
	return 0, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
