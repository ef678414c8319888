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
	"context"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// evalCall dispatches a function call to its builtin, aggregate, or
// user-function implementation (§4.F.7).
func (e *Env) evalCall(n *expr.Node) value.Value {
	if n.Func == nil {
		return value.NewError("call", "unresolved function call")
	}
	switch n.Func.Kind {
	case expr.FuncAggregate:
		if e.pendingAG != nil {
			if state, ok := e.pendingAG[n]; ok {
				agg, ok2 := e.Funcs.Aggregate(n.Func.Name)
				if !ok2 {
					return value.NewError("call", "unknown aggregate "+n.Func.Name)
				}
				return agg.Finalize(state)
			}
		}
		return e.evalAggregateDirect(n)
	case expr.FuncUser:
		return e.evalUserCall(n)
	default:
		return e.evalBuiltinCall(n)
	}
}

// evalBuiltinCall evaluates args (substituting a plain null for any
// regex-literal argument, whose compiled form is handed separately via
// CallExtra), then dispatches to the registered implementation.
func (e *Env) evalBuiltinCall(n *expr.Node) value.Value {
	args := make([]value.Value, len(n.Args))
	var regexNode *expr.Node
	for i, a := range n.Args {
		if a.Op == expr.OpRegex {
			regexNode = a
			args[i] = value.NewNull()
			continue
		}
		v := e.Eval(a)
		if err, ok := firstError(v); ok {
			return err
		}
		args[i] = v
	}
	fn, ok := e.Funcs.Builtin(n.Func.Name)
	if !ok {
		return value.NewError("call", "unknown function "+n.Func.Name)
	}
	return fn(args, CallExtra{Ctx: e.Ctx, Regex: regexNode})
}

// evalAggregateDirect implements §4.F.7's "aggregate with array first
// arg": used when a call isn't folded by an enclosing AG node (e.g. a
// bare "avg([1,2,3])").
func (e *Env) evalAggregateDirect(n *expr.Node) value.Value {
	if len(n.Args) == 0 {
		return value.NewError("call", n.Func.Name+" requires an argument")
	}
	arrVal := e.Eval(n.Args[0])
	arr, ok := arrVal.(*value.Array)
	if !ok {
		return value.NewError("type", n.Func.Name+" requires an array argument")
	}
	agg, ok := e.Funcs.Aggregate(n.Func.Name)
	if !ok {
		return value.NewError("call", "unknown aggregate "+n.Func.Name)
	}
	state := agg.New()
	arr.ForEach(func(row value.Value) bool {
		agg.Step(state, row)
		return true
	})
	return agg.Finalize(state)
}

// evalUserCall builds a fresh context layer binding the call's arguments
// to the function's declared parameters, positionally, then runs the
// body (owned by the stmt package, via UserFunc.Run).
func (e *Env) evalUserCall(n *expr.Node) value.Value {
	uf, ok := e.Funcs.User(n.Func.Name)
	if !ok {
		return value.NewError("call", "unknown function "+n.Func.Name)
	}
	span, _ := opentracing.StartSpanFromContext(context.Background(), "jsoncalc.call."+n.Func.Name)
	defer span.Finish()
	params := value.NewObject()
	for i, name := range uf.Params {
		var v value.Value = value.NewNull()
		if i < len(n.Args) {
			v = e.Eval(n.Args[i])
		}
		params.Set(name, v)
	}
	e.Ctx.Push(params, evalctx.Var|evalctx.Args)
	result, returned, err := uf.Run(e.Ctx)
	e.Ctx.Pop()
	if err != nil {
		return value.NewError("call", err.Error())
	}
	if !returned {
		return value.NewNull()
	}
	return result
}

// evalAG implements the §3.2 "AG node": every aggregate callsite in
// Inner is folded across the nearest bound row sequence before Inner
// itself is evaluated, so that by the time a FuncAggregate OpCall inside
// Inner is reached, its result is already finalized scratch state
// (§4.F.7 "Aggregate accumulated by parent AG").
func (e *Env) evalAG(n *expr.Node) value.Value {
	// A SELECT folds its own aggregate columns per output group (see
	// projectGroupRow in select.go); wrapping the whole statement in one
	// more AG layer here would fold across the wrong row sequence.
	if n.Inner.Op == expr.OpSelect {
		return e.Eval(n.Inner)
	}
	rows := e.aggregateRows()
	pending := make(map[*expr.Node]*AggState, len(n.AGSites))
	for _, site := range n.AGSites {
		agg, ok := e.Funcs.Aggregate(site.Func.Name)
		if !ok || len(site.Args) == 0 {
			continue
		}
		state := agg.New()
		rows.ForEach(func(row value.Value) bool {
			e.Ctx.Push(row, evalctx.This|evalctx.Data)
			rowVal := e.Eval(site.Args[0])
			e.Ctx.Pop()
			agg.Step(state, rowVal)
			return true
		})
		pending[site] = state
	}
	prev := e.pendingAG
	e.pendingAG = pending
	result := e.Eval(n.Inner)
	e.pendingAG = prev
	return result
}

// aggregateRows returns the row sequence an AG node folds over: the
// nearest bound "this" if it's already an array (a SELECT group), else
// the current "this" wrapped as a single-row array.
func (e *Env) aggregateRows() *value.Array {
	this := e.Ctx.This()
	if arr, ok := this.(*value.Array); ok {
		return arr
	}
	return value.NewArray(this)
}
