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

import (
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// evalMember implements '.' (§4.F.4): a Name on the right, requiring an
// Object on the left except for the computed "length" attribute, which
// is defined for every type.
func (e *Env) evalMember(n *expr.Node) value.Value {
	left := e.Eval(n.Left)
	if obj, ok := left.(*value.Object); ok {
		if hit := obj.Get(n.Name); hit != nil {
			return hit.Copy(nil)
		}
	}
	if n.Name == "length" {
		return value.NewInt(int64(value.Length(left)))
	}
	return value.NewNull()
}

// evalDeepMember implements '..name': a depth-first search for a key
// anywhere inside a container.
func (e *Env) evalDeepMember(n *expr.Node) value.Value {
	left := e.Eval(n.Left)
	if hit := deepFind(left, n.Name); hit != nil {
		return hit.Copy(nil)
	}
	return value.NewNull()
}

func deepFind(v value.Value, name string) value.Value {
	switch tv := v.(type) {
	case *value.Object:
		if hit := tv.Get(name); hit != nil {
			return hit
		}
		for _, k := range tv.Keys {
			if hit := deepFind(k.Val, name); hit != nil {
				return hit
			}
		}
	case *value.Array:
		var found value.Value
		tv.ForEach(func(elem value.Value) bool {
			if hit := deepFind(elem, name); hit != nil {
				found = hit
				return false
			}
			return true
		})
		return found
	}
	return nil
}

// evalIndex implements '[i]' on Array, '[k]' on Object, and '[n]' on
// String (§4.F.4).
func (e *Env) evalIndex(n *expr.Node) value.Value {
	left := e.Eval(n.Left)
	idx := e.Eval(n.Right)
	switch lv := left.(type) {
	case *value.Array:
		num, ok := idx.(*value.Number)
		if !ok {
			return value.NewNull()
		}
		if v := lv.At(int(num.Int())); v != nil {
			return v.Copy(nil)
		}
		return value.NewNull()
	case *value.Object:
		key, ok := idx.(value.String)
		if !ok {
			key = value.String(idx.String())
		}
		if hit := lv.Get(string(key)); hit != nil {
			return hit.Copy(nil)
		}
		return value.NewNull()
	case value.String:
		num, ok := idx.(*value.Number)
		if !ok {
			return value.NewNull()
		}
		return indexString(string(lv), int(num.Int()))
	}
	return value.NewNull()
}

func indexString(s string, i int) value.Value {
	runes := []rune(s)
	if i < 0 {
		i += len(runes)
	}
	if i < 0 || i >= len(runes) {
		return value.NewNull()
	}
	return value.String(string(runes[i]))
}

// evalIndexKV implements '[k:v]': scan a non-empty array-of-objects for
// the row whose member k equals v.
func (e *Env) evalIndexKV(n *expr.Node) value.Value {
	left := e.Eval(n.Left)
	arr, ok := left.(*value.Array)
	if !ok {
		return value.NewNull()
	}
	keyExpr := e.Eval(n.Right)
	key := keyExpr.String()
	if ks, ok := keyExpr.(value.String); ok {
		key = string(ks)
	}
	val := e.Eval(n.Third)
	if row := arr.ByKeyValue(key, val); row != nil {
		return row.Copy(nil)
	}
	return value.NewNull()
}
