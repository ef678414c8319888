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
	"strings"

	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// evalArith dispatches +, -, *, /, % per §4.F.5.
func (e *Env) evalArith(n *expr.Node) value.Value {
	l := e.Eval(n.Left)
	r := e.Eval(n.Right)
	if err, ok := firstError(l, r); ok {
		return err
	}
	switch n.Op {
	case expr.OpAdd:
		return evalAdd(l, r)
	case expr.OpSub:
		return evalSub(l, r)
	case expr.OpMul, expr.OpDiv, expr.OpMod:
		return evalNumericArith(n.Op, l, r)
	}
	return value.NewNull()
}

// firstError returns the first operand that is an error null, if any.
func firstError(vs ...value.Value) (value.Value, bool) {
	for _, v := range vs {
		if n, ok := v.(*value.Null); ok && n.IsError() {
			return n, true
		}
	}
	return nil, false
}

func evalAdd(l, r value.Value) value.Value {
	ls, lIsStr := l.(value.String)
	rs, rIsStr := r.(value.String)
	if lIsStr && value.IsDate(string(ls)) {
		if rIsStr && value.IsPeriod(string(rs)) {
			if out, ok := value.AddDatePeriod(string(ls), string(rs)); ok {
				return value.String(out)
			}
		}
	}
	if lIsStr && value.IsDateTime(string(ls)) {
		if rIsStr && value.IsPeriod(string(rs)) {
			if out, ok := value.AddDateTimePeriod(string(ls), string(rs)); ok {
				return value.String(out)
			}
		}
	}
	if lIsStr || rIsStr {
		return value.String(textForm(l) + textForm(r))
	}
	return numericBinOp(l, r, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

func evalSub(l, r value.Value) value.Value {
	ls, lIsStr := l.(value.String)
	rs, rIsStr := r.(value.String)
	if lIsStr && rIsStr {
		if value.IsDate(string(ls)) && value.IsDate(string(rs)) {
			if out, ok := value.SubDates(string(ls), string(rs)); ok {
				return value.String(out)
			}
		}
		if value.IsDateTime(string(ls)) && value.IsDateTime(string(rs)) {
			if out, ok := value.SubDateTimes(string(ls), string(rs)); ok {
				return value.String(out)
			}
		}
		// string-string subtraction: trim trailing spaces from the
		// left, leading spaces from the right, join with one space.
		return value.String(strings.TrimRight(string(ls), " ") + " " + strings.TrimLeft(string(rs), " "))
	}
	if lIsStr && value.IsDate(string(ls)) {
		if rs, ok := r.(value.String); ok && value.IsPeriod(string(rs)) {
			neg := negatePeriod(string(rs))
			if out, ok := value.AddDatePeriod(string(ls), neg); ok {
				return value.String(out)
			}
		}
	}
	return numericBinOp(l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

func negatePeriod(p string) string {
	if strings.HasPrefix(p, "-") {
		return p[1:]
	}
	return "-" + p
}

// evalNumericArith handles *, /, % (no string/date overload, §4.F.5).
func evalNumericArith(op expr.Op, l, r value.Value) value.Value {
	ln, lok := l.(*value.Number)
	rn, rok := r.(*value.Number)
	if !lok || !rok {
		return value.NewError("type", "arithmetic requires numbers")
	}
	switch op {
	case expr.OpMul:
		return numericBinOp(l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case expr.OpDiv:
		if !ln.IsFloat && !rn.IsFloat {
			if rn.Int() == 0 {
				return value.NewError("div0", "division by 0")
			}
			// Integer division yields a float per usual JSON-calc
			// arithmetic (no distinct integer-division operator).
			return value.NewFloat(ln.Float() / rn.Float())
		}
		if rn.Float() == 0 {
			return value.NewError("div0", "division by 0")
		}
		return value.NewFloat(ln.Float() / rn.Float())
	case expr.OpMod:
		lf, rf := ln.Float(), rn.Float()
		if rf == 0 {
			return value.NewError("mod0", "modulo by 0")
		}
		if !ln.IsFloat && !rn.IsFloat {
			return value.NewInt(ln.Int() % rn.Int())
		}
		q := float64(int64(lf / rf))
		return value.NewFloat(lf - q*rf)
	}
	return value.NewNull()
}

func numericBinOp(l, r value.Value, ints func(a, b int64) int64, floats func(a, b float64) float64) value.Value {
	ln, lok := l.(*value.Number)
	rn, rok := r.(*value.Number)
	if !lok || !rok {
		return value.NewError("type", "arithmetic requires numbers")
	}
	lf, rf := ln.Float(), rn.Float()
	if ln.IsFloat || rn.IsFloat {
		return value.NewFloat(floats(lf, rf))
	}
	return value.NewInt(ints(ln.Int(), rn.Int()))
}

// evalCompare dispatches the comparison family per §4.F.5.
func (e *Env) evalCompare(n *expr.Node) value.Value {
	l := e.Eval(n.Left)
	r := e.Eval(n.Right)
	if err, ok := firstError(l, r); ok {
		return err
	}
	switch n.Op {
	case expr.OpStrictEq:
		return value.Bool(value.DeepEqual(l, r))
	case expr.OpStrictNe:
		return value.Bool(!value.DeepEqual(l, r))
	case expr.OpEq:
		if isArrOrObj(l) || isArrOrObj(r) {
			return value.NewError("cmpObjArr", "arrays and objects can only be compared with === or !==")
		}
		return value.Bool(value.LooseEqual(l, r))
	case expr.OpNe:
		if isArrOrObj(l) || isArrOrObj(r) {
			return value.NewError("cmpObjArr", "arrays and objects can only be compared with === or !==")
		}
		return value.Bool(!value.LooseEqual(l, r))
	case expr.OpCaseEq, expr.OpCaseNe:
		ls, lok := asTrimmedString(l)
		rs, rok := asTrimmedString(r)
		eq := lok && rok && strings.EqualFold(ls, rs)
		if n.Op == expr.OpCaseNe {
			return value.Bool(!eq)
		}
		return value.Bool(eq)
	case expr.OpLt, expr.OpLe, expr.OpGe, expr.OpGt:
		if isArrOrObj(l) || isArrOrObj(r) {
			return value.NewError("cmpObjArr", "arrays and objects can only be compared with === or !==")
		}
		if isNullValue(l) || isNullValue(r) {
			return value.Bool(false)
		}
		cmp, ok := value.Compare(l, r)
		if !ok {
			return value.Bool(false)
		}
		switch n.Op {
		case expr.OpLt:
			return value.Bool(cmp < 0)
		case expr.OpLe:
			return value.Bool(cmp <= 0)
		case expr.OpGe:
			return value.Bool(cmp >= 0)
		case expr.OpGt:
			return value.Bool(cmp > 0)
		}
	}
	return value.NewNull()
}

func isArrOrObj(v value.Value) bool {
	switch v.(type) {
	case *value.Array, *value.Object:
		return true
	}
	return false
}

func asTrimmedString(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	if !ok {
		return "", false
	}
	return strings.TrimRight(string(s), " "), true
}

// evalBitwise dispatches &, |, ^ on numbers, and the object
// intersection/union/left-minus-right analogues (§4.F.5).
func (e *Env) evalBitwise(n *expr.Node) value.Value {
	l := e.Eval(n.Left)
	r := e.Eval(n.Right)
	if err, ok := firstError(l, r); ok {
		return err
	}
	lo, lIsObj := l.(*value.Object)
	ro, rIsObj := r.(*value.Object)
	if lIsObj && rIsObj {
		switch n.Op {
		case expr.OpBitAnd:
			return objectIntersect(lo, ro)
		case expr.OpBitOr:
			return objectUnion(lo, ro)
		case expr.OpBitXor:
			return objectMinus(lo, ro)
		}
	}
	ln, lok := l.(*value.Number)
	rn, rok := r.(*value.Number)
	if !lok || !rok {
		return value.NewError("type", "bitwise operators require numbers or objects")
	}
	switch n.Op {
	case expr.OpBitAnd:
		return value.NewInt(ln.Int() & rn.Int())
	case expr.OpBitOr:
		return value.NewInt(ln.Int() | rn.Int())
	case expr.OpBitXor:
		return value.NewInt(ln.Int() ^ rn.Int())
	}
	return value.NewNull()
}

// objectIntersect implements & on objects: members present (by name) in
// both sides, value taken from the right side (matches the "{x:1,y:2} |
// {y:20,z:3}" union example's right-wins convention, §8).
func objectIntersect(l, r *value.Object) value.Value {
	out := value.NewObject()
	for _, k := range l.Keys {
		if rv := r.Get(k.Name); rv != nil {
			out.Set(k.Name, rv.Copy(nil))
		}
	}
	return out
}

// objectUnion implements | on objects: all members of both, right side
// wins on name collisions.
func objectUnion(l, r *value.Object) value.Value {
	out := value.NewObject()
	for _, k := range l.Keys {
		out.Set(k.Name, k.Val.Copy(nil))
	}
	for _, k := range r.Keys {
		out.Set(k.Name, k.Val.Copy(nil))
	}
	return out
}

// objectMinus implements ^ on objects: left-minus-right, members of l
// whose name does not appear in r.
func objectMinus(l, r *value.Object) value.Value {
	out := value.NewObject()
	for _, k := range l.Keys {
		if r.Get(k.Name) == nil {
			out.Set(k.Name, k.Val.Copy(nil))
		}
	}
	return out
}
