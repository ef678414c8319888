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

// evalAssign implements '=' and '?=' (§4.F.8). ifNotNull restricts the
// write to happen only when the RHS isn't a plain/error null ('?=').
func (e *Env) evalAssign(n *expr.Node, ifNotNull bool) value.Value {
	rhs := e.Eval(n.Right)
	if errNull, ok := rhs.(*value.Null); ok && errNull.IsError() {
		return errNull
	}
	if ifNotNull && isNullValue(rhs) {
		return rhs
	}
	if !e.store(n.Left, rhs.Copy(nil)) {
		return value.NewError("lvalue", "assignment target is not a name, member, or subscript chain")
	}
	return rhs
}

// evalAppend implements '<<': append to an array-typed lvalue (§4.F.8).
func (e *Env) evalAppend(n *expr.Node) value.Value {
	rhs := e.Eval(n.Right)
	if errNull, ok := rhs.(*value.Null); ok && errNull.IsError() {
		return errNull
	}
	target := e.resolveRef(n.Left)
	arr, ok := target.(*value.Array)
	if !ok {
		return value.NewError("lvalue", "<< requires an array-typed lvalue")
	}
	arr.Append(rhs.Copy(nil))
	return rhs
}

// store resolves n as an lvalue and writes v into it, reporting whether
// n had a recognized lvalue shape (Name, dot chain, or subscript chain,
// per §4.G).
func (e *Env) store(n *expr.Node, v value.Value) bool {
	switch n.Op {
	case expr.OpName:
		e.Ctx.Assign(n.Name, v)
		return true
	case expr.OpMember:
		container := e.resolveRef(n.Left)
		obj, ok := container.(*value.Object)
		if !ok {
			return false
		}
		obj.Set(n.Name, v)
		return true
	case expr.OpIndex:
		container := e.resolveRef(n.Left)
		idx := e.Eval(n.Right)
		switch cv := container.(type) {
		case *value.Array:
			num, ok := idx.(*value.Number)
			if !ok {
				return false
			}
			return cv.SetAt(int(num.Int()), v)
		case *value.Object:
			key, ok := idx.(value.String)
			if !ok {
				key = value.String(idx.String())
			}
			cv.Set(string(key), v)
			return true
		}
		return false
	}
	return false
}

// resolveRef navigates n the way evalMember/evalIndex do, but returns the
// live (uncopied) value so callers can mutate it in place — required for
// lvalue chains deeper than a single Name.
func (e *Env) resolveRef(n *expr.Node) value.Value {
	switch n.Op {
	case expr.OpName:
		v, _ := e.Ctx.ResolveRef(n.Name)
		return v
	case expr.OpMember:
		container := e.resolveRef(n.Left)
		obj, ok := container.(*value.Object)
		if !ok {
			return nil
		}
		return obj.Get(n.Name)
	case expr.OpIndex:
		container := e.resolveRef(n.Left)
		idx := e.Eval(n.Right)
		switch cv := container.(type) {
		case *value.Array:
			num, ok := idx.(*value.Number)
			if !ok {
				return nil
			}
			return cv.At(int(num.Int()))
		case *value.Object:
			key, ok := idx.(value.String)
			if !ok {
				key = value.String(idx.String())
			}
			return cv.Get(string(key))
		}
		return nil
	}
	// Any other node shape (e.g. a literal or computed expression) is
	// evaluated normally; its result can only be read, never stored
	// into, so this is safe for the << read-only-container case.
	return e.Eval(n)
}
