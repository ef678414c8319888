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

import "github.com/mitchellh/hashstructure"

// canonical projects a Value into a plain Go value suitable for
// hashstructure: objects become map[string]interface{} (so member order
// doesn't affect the hash, per §4.A "hash (type-aware, order-independent
// for objects)"), arrays become []interface{}, scalars become their
// native Go type.
func canonical(v Value) interface{} {
	if v == nil {
		return nil
	}
	switch tv := v.(type) {
	case *Null:
		return nil
	case Bool:
		return bool(tv)
	case String:
		return string(tv)
	case *Number:
		return tv.Float()
	case *Array:
		out := make([]interface{}, 0, tv.Len())
		tv.ForEach(func(e Value) bool {
			out = append(out, canonical(e))
			return true
		})
		return out
	case *Object:
		out := make(map[string]interface{}, len(tv.Keys))
		for _, k := range tv.Keys {
			out[k.Name] = canonical(k.Val)
		}
		return out
	default:
		return nil
	}
}

// Hash computes a type-aware, order-independent-for-objects hash of v,
// via hashstructure over a canonical projection (§4.A).
func Hash(v Value) (uint64, error) {
	return hashstructure.Hash(canonical(v), nil)
}
