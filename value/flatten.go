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

import "strconv"

// Flatten reduces a nested object/array into a single-level object keyed
// by dotted paths (grounded on original_source/src/lib/flat.c). No
// printer in this module calls it.
func Flatten(v Value) *Object {
	out := NewObject()
	flattenInto(out, "", v)
	return out
}

func flattenInto(out *Object, path string, v Value) {
	switch tv := v.(type) {
	case *Object:
		if tv.Len() == 0 {
			out.Set(nonEmptyPath(path), tv)
			return
		}
		for _, k := range tv.Keys {
			flattenInto(out, joinPath(path, k.Name), k.Val)
		}
	case *Array:
		if tv.Len() == 0 {
			out.Set(nonEmptyPath(path), tv)
			return
		}
		i := 0
		tv.ForEach(func(e Value) bool {
			flattenInto(out, path+"["+strconv.Itoa(i)+"]", e)
			i++
			return true
		})
	default:
		out.Set(nonEmptyPath(path), v)
	}
}

func nonEmptyPath(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
