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

// Diff structurally compares two values and returns an object describing
// additions, removals and changes, grounded on
// original_source/src/lib/diff.c. For non-object/array operands it just
// reports a "changed" entry if they aren't deep-equal.
func Diff(a, b Value) Value {
	out := NewObject()
	diffInto(out, "", a, b)
	return out
}

func diffInto(out *Object, path string, a, b Value) {
	switch {
	case a == nil && b == nil:
		return
	case a == nil:
		out.Set(path+".added", b.Copy(nil))
		return
	case b == nil:
		out.Set(path+".removed", a.Copy(nil))
		return
	}
	ao, aIsObj := a.(*Object)
	bo, bIsObj := b.(*Object)
	if aIsObj && bIsObj {
		seen := map[string]bool{}
		for _, k := range ao.Keys {
			seen[k.Name] = true
			diffInto(out, joinPath(path, k.Name), k.Val, bo.Get(k.Name))
		}
		for _, k := range bo.Keys {
			if !seen[k.Name] {
				diffInto(out, joinPath(path, k.Name), nil, k.Val)
			}
		}
		return
	}
	aa, aIsArr := a.(*Array)
	ba, bIsArr := b.(*Array)
	if aIsArr && bIsArr {
		n := aa.Len()
		if ba.Len() > n {
			n = ba.Len()
		}
		for i := 0; i < n; i++ {
			diffInto(out, pathIndex(path, i), aa.At(i), ba.At(i))
		}
		return
	}
	if !DeepEqual(a, b) {
		changed := NewObject(NewKey("from", a.Copy(nil)), NewKey("to", b.Copy(nil)))
		out.Set(trimLeadingDot(path), changed)
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func pathIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func trimLeadingDot(path string) string {
	if len(path) > 0 && path[0] == '.' {
		return path[1:]
	}
	if path == "" {
		return "value"
	}
	return path
}
