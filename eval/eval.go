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
	"os"

	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Eval walks n and returns a freshly owned value (§4.F.1).
func (e *Env) Eval(n *expr.Node) value.Value {
	if n == nil {
		return value.NewNull()
	}
	if e.interrupted() {
		return value.NewError("intr", "Interrupted")
	}
	switch n.Op {
	case expr.OpLiteral:
		return n.Literal.Copy(nil)
	case expr.OpName:
		if n.Name == "this" {
			return e.Ctx.This().Copy(nil)
		}
		if v, ok := e.Ctx.Resolve(n.Name); ok {
			return v
		}
		return value.NewNull()
	case expr.OpEnvVar:
		return e.evalEnvVar(n)
	case expr.OpArray:
		return e.evalArray(n)
	case expr.OpObject:
		return e.evalObject(n)
	case expr.OpUnaryMinus:
		return e.evalUnaryMinus(n)
	case expr.OpBitNot:
		return e.evalBitNot(n)
	case expr.OpNot:
		return value.Bool(!value.IsTrue(e.Eval(n.Right)))
	case expr.OpAnd:
		return e.evalAnd(n)
	case expr.OpOr:
		return e.evalOr(n)
	case expr.OpAdd, expr.OpSub, expr.OpMul, expr.OpDiv, expr.OpMod:
		return e.evalArith(n)
	case expr.OpEq, expr.OpStrictEq, expr.OpNe, expr.OpStrictNe,
		expr.OpLt, expr.OpLe, expr.OpGe, expr.OpGt, expr.OpCaseEq, expr.OpCaseNe:
		return e.evalCompare(n)
	case expr.OpBetween:
		return e.evalBetween(n)
	case expr.OpLike:
		return e.evalLike(n)
	case expr.OpIn, expr.OpNotIn:
		return e.evalIn(n)
	case expr.OpIsNull:
		return value.Bool(isNullValue(e.Eval(n.Left)))
	case expr.OpIsNotNull:
		return value.Bool(!isNullValue(e.Eval(n.Left)))
	case expr.OpBitAnd, expr.OpBitOr, expr.OpBitXor:
		return e.evalBitwise(n)
	case expr.OpTernary:
		if value.IsTrue(e.Eval(n.Left)) {
			return e.Eval(n.Right)
		}
		return e.Eval(n.Third)
	case expr.OpCoalesce:
		l := e.Eval(n.Left)
		if !isNullValue(l) {
			return l
		}
		return e.Eval(n.Right)
	case expr.OpRange:
		return e.evalRange(n)
	case expr.OpMember:
		return e.evalMember(n)
	case expr.OpDeepMember:
		return e.evalDeepMember(n)
	case expr.OpIndex:
		return e.evalIndex(n)
	case expr.OpIndexKV:
		return e.evalIndexKV(n)
	case expr.OpCall:
		return e.evalCall(n)
	case expr.OpAG:
		return e.evalAG(n)
	case expr.OpSelect:
		return e.evalSelect(n.Select)
	case expr.OpEach:
		return e.evalEach(n)
	case expr.OpGroupEach:
		return e.evalGroupEach(n)
	case expr.OpJoin:
		return e.evalJoin(n)
	case expr.OpAssign:
		return e.evalAssign(n, false)
	case expr.OpAssignIfNotNull:
		return e.evalAssign(n, true)
	case expr.OpAppend:
		return e.evalAppend(n)
	case expr.OpRegex:
		return value.NewError("regex", "regex literal used outside of a function call")
	}
	return value.NewNull()
}

func isNullValue(v value.Value) bool {
	_, ok := v.(*value.Null)
	return ok
}

func (e *Env) evalEnvVar(n *expr.Node) value.Value {
	name := n.Name
	if n.Right != nil {
		name += textForm(e.Eval(n.Right))
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return value.NewNull()
	}
	return value.String(v)
}

// textForm renders v the way "$NAME[expr]" concatenation wants: a
// string's own bytes, everything else via its ordinary String().
func textForm(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v.String()
}

func (e *Env) evalArray(n *expr.Node) value.Value {
	arr := value.NewArray()
	for _, c := range n.Children {
		arr.Append(e.Eval(c))
	}
	return arr
}

func (e *Env) evalObject(n *expr.Node) value.Value {
	obj := value.NewObject()
	for _, c := range n.Children {
		v := e.Eval(c.Right)
		if c.SkipIfNull && isNullValue(v) {
			continue
		}
		obj.Set(c.Name, v)
	}
	return obj
}

func (e *Env) evalAnd(n *expr.Node) value.Value {
	if !value.IsTrue(e.Eval(n.Left)) {
		return value.Bool(false)
	}
	return value.Bool(value.IsTrue(e.Eval(n.Right)))
}

func (e *Env) evalOr(n *expr.Node) value.Value {
	if value.IsTrue(e.Eval(n.Left)) {
		return value.Bool(true)
	}
	return value.Bool(value.IsTrue(e.Eval(n.Right)))
}

func (e *Env) evalIn(n *expr.Node) value.Value {
	needle := e.Eval(n.Left)
	hay := e.Eval(n.Right)
	found := false
	if arr, ok := hay.(*value.Array); ok {
		arr.ForEach(func(v value.Value) bool {
			if value.LooseEqual(needle, v) {
				found = true
				return false
			}
			return true
		})
	}
	if n.Op == expr.OpNotIn {
		return value.Bool(!found)
	}
	return value.Bool(found)
}

func (e *Env) evalBetween(n *expr.Node) value.Value {
	v := e.Eval(n.Left)
	lo := e.Eval(n.Right)
	hi := e.Eval(n.Third)
	loCmp, ok1 := value.Compare(v, lo)
	hiCmp, ok2 := value.Compare(v, hi)
	if !ok1 || !ok2 {
		return value.Bool(false)
	}
	return value.Bool(loCmp >= 0 && hiCmp <= 0)
}

func (e *Env) evalLike(n *expr.Node) value.Value {
	v := e.Eval(n.Left)
	pat := e.Eval(n.Right)
	s, ok1 := v.(value.String)
	p, ok2 := pat.(value.String)
	if !ok1 || !ok2 {
		return value.Bool(false)
	}
	return value.Bool(mbstring.Like(string(s), string(p)))
}

// evalUnaryMinus negates a Number; anything else is an error null.
func (e *Env) evalUnaryMinus(n *expr.Node) value.Value {
	v := e.Eval(n.Right)
	num, ok := v.(*value.Number)
	if !ok {
		return value.NewError("type", "unary minus requires a number")
	}
	f := num.Float()
	if num.IsFloat {
		return value.NewFloat(-f)
	}
	return value.NewInt(-num.Int())
}

func (e *Env) evalBitNot(n *expr.Node) value.Value {
	v := e.Eval(n.Right)
	num, ok := v.(*value.Number)
	if !ok {
		return value.NewError("type", "~ requires a number")
	}
	return value.NewInt(^num.Int())
}

func (e *Env) evalRange(n *expr.Node) value.Value {
	lo := e.Eval(n.Left)
	hi := e.Eval(n.Right)
	loN, ok1 := lo.(*value.Number)
	hiN, ok2 := hi.(*value.Number)
	if !ok1 || !ok2 {
		return value.NewError("type", "... requires numbers")
	}
	return value.NewRange(int(loN.Int()), int(hiN.Int()))
}
