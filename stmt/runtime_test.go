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

// External test package, so it can depend on registry (which itself
// depends on stmt) without an import cycle.
package stmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/registry"
	"github.com/kirkendall/jsoncalc-sub001/stmt"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

func run(t *testing.T, src string) stmt.Outcome {
	t.Helper()
	r := registry.New()
	p := stmt.NewParser(src, r, r)
	root, err := p.Parse()
	require.NoError(t, err)

	ctx := evalctx.New()
	ctx.Push(value.NewObject(), evalctx.Var|evalctx.Global)
	interrupt := false
	env := eval.NewEnv(ctx, r, &interrupt)
	rc := &stmt.RunContext{Ctx: ctx, Eval: env, RegisterUser: r.RegisterUser}
	return stmt.Run(root, rc)
}

func TestBreakStopsInnermostLoopOnly(t *testing.T) {
	out := run(t, `
		var total = 0;
		var i = 0;
		for (i = 0; i < 10; i = i + 1) {
			if (i == 3) { break; }
			total = total + 1;
		}
		return total;
	`)
	require.Equal(t, stmt.OutcomeReturn, out.Kind)
	assert.Equal(t, "3", out.Value.String())
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	out := run(t, `
		var total = 0;
		var i = 0;
		while (i < 5) {
			i = i + 1;
			if (i == 2) { continue; }
			total = total + i;
		}
		return total;
	`)
	require.Equal(t, stmt.OutcomeReturn, out.Kind)
	assert.Equal(t, "13", out.Value.String())
}

func TestErrorNullPropagatesAsCommandError(t *testing.T) {
	out := run(t, `1 / 0;`)
	assert.Equal(t, stmt.OutcomeError, out.Kind)
	assert.Contains(t, out.Err, "div0")
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	out := run(t, `
		if (true) {
			if (true) {
				return 99;
			}
		}
		return 1;
	`)
	require.Equal(t, stmt.OutcomeReturn, out.Kind)
	assert.Equal(t, "99", out.Value.String())
}
