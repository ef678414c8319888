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

// ByteSize estimates the in-memory footprint of v, in bytes. It's an
// estimate (struct overhead is approximated, not measured with
// unsafe.Sizeof) used for config thresholds like defersize, not an exact
// accounting.
func ByteSize(v Value) int {
	const nodeOverhead = 32
	if v == nil {
		return nodeOverhead
	}
	switch tv := v.(type) {
	case *Null:
		return nodeOverhead + len(tv.Err)
	case Bool:
		return nodeOverhead
	case *Number:
		return nodeOverhead + len(tv.Text)
	case String:
		return nodeOverhead + len(tv)
	case *Array:
		size := nodeOverhead
		tv.ForEach(func(e Value) bool {
			size += ByteSize(e)
			return true
		})
		return size
	case *Object:
		size := nodeOverhead
		for _, k := range tv.Keys {
			size += nodeOverhead + len(k.Name) + ByteSize(k.Val)
		}
		return size
	default:
		return nodeOverhead
	}
}
