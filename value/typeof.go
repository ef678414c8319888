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

import "github.com/kirkendall/jsoncalc-sub001/mbstring"

// TypeOf returns the basic JSON type name.
func TypeOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.Tag().String()
}

// ExtendedTypeOf returns TypeOf, refined with the extended vocabulary
// (date/time/datetime/period/table/empty-variants) strings use when they
// pass the corresponding ISO-8601-ish format test, and arrays use when
// they qualify as tables.
func ExtendedTypeOf(v Value) string {
	switch tv := v.(type) {
	case String:
		s := string(tv)
		switch {
		case IsPeriod(s):
			return "period"
		case IsDateTime(s):
			return "datetime"
		case IsDate(s):
			return "date"
		case IsTime(s):
			return "time"
		case s == "":
			return "emptystring"
		}
		return "string"
	case *Array:
		if tv.Len() == 0 {
			return "emptyarray"
		}
		if tv.IsTable() {
			return "table"
		}
		return "array"
	case *Object:
		if tv.Len() == 0 {
			return "emptyobject"
		}
		return "object"
	default:
		return TypeOf(v)
	}
}

// IsTrue implements jsoncalc truthiness (§ "typeof"-adjacent, used by
// WHERE/IF/AND/OR): everything is true except false, null, 0, "", and an
// empty array/object.
func IsTrue(v Value) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case *Null:
		return false
	case Bool:
		return bool(tv)
	case String:
		return tv != ""
	case *Number:
		return tv.Float() != 0
	case *Array:
		return tv.Len() != 0
	case *Object:
		return tv.Len() != 0
	default:
		return false
	}
}

// Length implements the computed `.length` attribute (§4.F.4, §8
// property 8): Array -> count, String -> character count, null -> 0,
// anything else -> 1.
func Length(v Value) int {
	switch tv := v.(type) {
	case nil, *Null:
		return 0
	case *Array:
		return tv.Len()
	case String:
		return mbstring.Len(string(tv))
	default:
		return 1
	}
}
