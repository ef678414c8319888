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

package stmt

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// RunContext bundles what a running statement needs: the context stack
// and evaluator, plus the hook a "function" statement uses to publish
// itself (owned by the registry package, §6 "hook").
type RunContext struct {
	Ctx  *evalctx.Context
	Eval *eval.Env

	// RegisterUser installs a user function, called by the builtin
	// "function" command's runner.
	RegisterUser func(name string, params []string, body *Node)
}

// Run executes a statement chain starting at n, returning the first
// outcome that isn't OutcomeNext, or a final OutcomeNext if the whole
// chain completes normally.
func Run(n *Node, rc *RunContext) Outcome {
	for cur := n; cur != nil; cur = cur.Next {
		if rc.Eval.Interrupt != nil && *rc.Eval.Interrupt {
			return Error(cur.Where, "intr", "Interrupted")
		}
		out := runOne(cur, rc)
		if out.Kind != OutcomeNext {
			return out
		}
	}
	return Next()
}

func runOne(n *Node, rc *RunContext) Outcome {
	if n.Command != nil {
		span, _ := opentracing.StartSpanFromContext(context.Background(), "jsoncalc.statement."+n.Command.Keyword)
		defer span.Finish()
		return n.Command.Run(n, rc)
	}
	if n.Expr != nil {
		v := rc.Eval.Eval(n.Expr)
		if null, ok := v.(*value.Null); ok && null.Err != "" {
			return Outcome{Kind: OutcomeError, Where: n.Where, Err: null.Err}
		}
	}
	return Next()
}
