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

// Package eval implements the tree-walking expression evaluator (entity
// F): operator dispatch, SELECT pipeline sub-operators, function-call
// dispatch, and assignment.
package eval

import (
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// CallExtra is the "extra record" §4.F.7 says builtins receive alongside
// their evaluated arguments: the calling context and the regex node, if
// the call site's source carried one as an argument.
type CallExtra struct {
	Ctx   *evalctx.Context
	Regex *expr.Node
}

// BuiltinFunc implements a plain (non-aggregate, non-user) function.
type BuiltinFunc func(args []value.Value, extra CallExtra) value.Value

// AggState is the per-call aggregate scratch buffer (§3.2, §5): never
// shared across threads, allocated fresh for each evaluation run.
type AggState struct {
	data interface{}
}

// AggregateFunc implements a built-in aggregate: Step folds one row into
// state, Finalize converts accumulated state into the result.
type AggregateFunc struct {
	New      func() *AggState
	Step     func(state *AggState, row value.Value)
	Finalize func(state *AggState) value.Value
}

// UserFunc is a user-defined ("function ... { ... }") function: Params
// names the formal parameter list, and Run executes the body against a
// context with those parameters already bound as the top layer. Run is
// supplied by the stmt package (which owns statement execution) so eval
// never imports stmt back.
type UserFunc struct {
	Params []string
	Run    func(ctx *evalctx.Context) (result value.Value, returned bool, err error)
}

// FuncTable resolves a call's implementation by name and kind, mirroring
// expr.FuncRef.Kind (§4.F.7).
type FuncTable interface {
	Builtin(name string) (BuiltinFunc, bool)
	Aggregate(name string) (AggregateFunc, bool)
	User(name string) (*UserFunc, bool)
}

// Env bundles everything the evaluator needs beyond the expression tree
// itself: the context stack, the function table, and the per-evaluation
// aggregate scratch (§3.2) keyed by AG-site offset.
type Env struct {
	Ctx       *evalctx.Context
	Funcs     FuncTable
	Interrupt *bool

	// pendingAG holds the per-callsite finalized aggregate state set up
	// by the innermost active evalAG, keyed by the OpCall node itself
	// (§3.2, §4.F.7).
	pendingAG map[*expr.Node]*AggState
}

// NewEnv builds an evaluation environment. interrupt, when non-nil, is
// polled by loops (§5) to support cooperative cancellation.
func NewEnv(ctx *evalctx.Context, funcs FuncTable, interrupt *bool) *Env {
	return &Env{Ctx: ctx, Funcs: funcs, Interrupt: interrupt}
}

func (e *Env) interrupted() bool {
	return e.Interrupt != nil && *e.Interrupt
}
