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

package jsoncalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/jsonio"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// serialize renders v as compact JSON for assertions: the default format,
// with tables printed as JSON rather than as a grid.
func serialize(t *testing.T, v value.Value) string {
	t.Helper()
	f := jsonio.DefaultFormat()
	f.Table = jsonio.TableJSON
	return jsonio.Serialize(v, f)
}

// TestEvalArithmetic covers the spec.md §8 worked scalar examples.
func TestEvalArithmetic(t *testing.T) {
	var testCases = []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "5 + 3 * 2", "11"},
		{"string_concat", `"a" + 1`, `"a1"`},
		{"string_trim_subtract", `"a " - " b"`, `"a b"`},
		{"array_each", "[1,2,3,4] @ this * 2", "[2,4,6,8]"},
		{"object_merge", "{x:1, y:2} | {y:20, z:3}", `{"x":1,"y":20,"z":3}`},
		{"like", `"Hello" LIKE "h_llo"`, "true"},
		{"loose_eq", `0 == "0"`, "true"},
		{"strict_eq", `0 === "0"`, "false"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			e := NewDefault()
			defer e.Close()
			v, err := e.Eval(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, serialize(t, v))
		})
	}
}

// TestEvalSelectGroupBy covers the spec.md §8 worked SELECT example.
func TestEvalSelectGroupBy(t *testing.T) {
	e := NewDefault()
	defer e.Close()

	ctx, err := e.NewContext()
	require.NoError(t, err)

	data, err := jsonio.Parse([]byte(`[{"a":1,"b":2},{"a":1,"b":3},{"a":2,"b":4}]`), jsonio.DefaultFormat())
	require.NoError(t, err)
	scope := value.NewObject()
	scope.Set("data", data)
	require.NoError(t, e.Expose(ctx, "script", scope, evalctx.Var|evalctx.Global))

	n, err := e.ParseExpr("SELECT a, sum(b) FROM data GROUP BY a ORDER BY a")
	require.NoError(t, err)

	interrupt := false
	env := eval.NewEnv(ctx, e.Registry, &interrupt)
	got := env.Eval(n)
	assert.Equal(t, `[{"a":1,"b":5},{"a":2,"b":4}]`, serialize(t, got))
}

// TestEvalSelectNoDefaultTable covers §8 boundary property 10.
func TestEvalSelectNoDefaultTable(t *testing.T) {
	e := NewDefault()
	defer e.Close()
	v, err := e.Eval("SELECT a")
	require.NoError(t, err)
	null, ok := v.(*value.Null)
	require.True(t, ok)
	assert.Contains(t, null.Err, "noDefTable")
}

// TestEvalBoundaryLength covers §8 property 8.
func TestEvalBoundaryLength(t *testing.T) {
	var testCases = []struct {
		src  string
		want string
	}{
		{"null.length", "0"},
		{`"abc".length`, "3"},
		{"[1,2].length", "2"},
		{"{x:1}.length", "1"},
		{"[1,2,3][-1]", "3"},
	}
	for _, tt := range testCases {
		t.Run(tt.src, func(t *testing.T) {
			e := NewDefault()
			defer e.Close()
			v, err := e.Eval(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, serialize(t, v))
		})
	}
}

// TestRunStatements covers the statement runtime wrapping expressions
// into control-flow (entity H), including user-defined functions.
func TestRunStatements(t *testing.T) {
	e := NewDefault()
	defer e.Close()

	out, err := e.Run(`
		function double(x) { return x * 2; }
		var total = 0;
		var i = 0;
		for (i = 0; i < 5; i = i + 1) {
			if (i == 3) { continue; }
			total = total + double(i);
		}
		return total;
	`)
	require.NoError(t, err)
	assert.Equal(t, "14", serialize(t, out.Value))
}

// TestRunReadOnlyRejectsDeclarations ensures Engine.Config.IsReadOnly
// rejects var/const declarations (engine.go's requireReadOnly).
func TestRunReadOnlyRejectsDeclarations(t *testing.T) {
	e := New(&Config{IsReadOnly: true})
	defer e.Close()

	_, err := e.Run("var x = 1; return x;")
	assert.Error(t, err)

	out, err := e.Run("return 1 + 1;")
	require.NoError(t, err)
	assert.Equal(t, "2", serialize(t, out.Value))
}

// TestDivisionAndModByZero covers §7's div0/mod0 error nulls.
func TestDivisionAndModByZero(t *testing.T) {
	e := NewDefault()
	defer e.Close()

	v, err := e.Eval("1 / 0")
	require.NoError(t, err)
	null, ok := v.(*value.Null)
	require.True(t, ok)
	assert.Contains(t, null.Err, "div0")

	v, err = e.Eval("1 % 0")
	require.NoError(t, err)
	null, ok = v.(*value.Null)
	require.True(t, ok)
	assert.Contains(t, null.Err, "mod0")
}
