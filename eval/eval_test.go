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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// noFuncs is a FuncTable with nothing registered, enough for expressions
// that never call a function.
type noFuncs struct{}

func (noFuncs) Builtin(name string) (BuiltinFunc, bool)     { return nil, false }
func (noFuncs) Aggregate(name string) (AggregateFunc, bool) { return AggregateFunc{}, false }
func (noFuncs) User(name string) (*UserFunc, bool)          { return nil, false }

func evalSrc(t *testing.T, ctx *evalctx.Context, src string) value.Value {
	t.Helper()
	n, err := expr.Parse(src, nil)
	require.NoError(t, err)
	interrupt := false
	env := NewEnv(ctx, noFuncs{}, &interrupt)
	return env.Eval(n)
}

func TestEvalComparisons(t *testing.T) {
	ctx := evalctx.New()
	var testCases = []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{`1 == "1"`, true},
		{`1 === "1"`, false},
		{`"abc" =* "ABC"`, true},
		{"null == null", true},
		{"1 < null", false},
	}
	for _, tt := range testCases {
		t.Run(tt.src, func(t *testing.T) {
			got := evalSrc(t, ctx, tt.src)
			b, ok := got.(value.Bool)
			require.True(t, ok, "expected boolean, got %T (%v)", got, got)
			assert.Equal(t, tt.want, bool(b))
		})
	}
}

func TestEvalTernaryAndCoalesce(t *testing.T) {
	ctx := evalctx.New()
	assert.Equal(t, "1", evalSrc(t, ctx, "true ? 1 : 2").String())
	assert.Equal(t, "2", evalSrc(t, ctx, "false ? 1 : 2").String())
	assert.Equal(t, "5", evalSrc(t, ctx, "null ?? 5").String())
	assert.Equal(t, "3", evalSrc(t, ctx, "3 ?? 5").String())
}

func TestEvalObjectIntersect(t *testing.T) {
	ctx := evalctx.New()
	got := evalSrc(t, ctx, "{x:1,y:2} & {y:20,z:3}")
	obj, ok := got.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, 1, obj.Len())
	assert.NotNil(t, obj.Get("y"))
}

func TestEvalEachFilter(t *testing.T) {
	ctx := evalctx.New()
	ctx.Push(value.NewObject(), evalctx.Var|evalctx.Global)
	n, err := expr.Parse(`[{"a":3},{"a":1},{"a":2}] @ this.a > 1`, nil)
	require.NoError(t, err)
	interrupt := false
	env := NewEnv(ctx, noFuncs{}, &interrupt)
	got := env.Eval(n)
	arr, ok := got.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, 2, arr.Len())
}

func TestEvalJoinNatural(t *testing.T) {
	ctx := evalctx.New()
	n, err := expr.Parse(`[{"id":1,"a":"x"},{"id":2,"a":"y"}] @= [{"id":1,"b":"p"},{"id":3,"b":"q"}]`, nil)
	require.NoError(t, err)
	interrupt := false
	env := NewEnv(ctx, noFuncs{}, &interrupt)
	got := env.Eval(n)
	arr, ok := got.(*value.Array)
	require.True(t, ok)
	require.Equal(t, 1, arr.Len())
	row, ok := arr.At(0).(*value.Object)
	require.True(t, ok)
	assert.Equal(t, value.String("x"), row.Get("a"))
	assert.Equal(t, value.String("p"), row.Get("b"))
}

func TestEvalAssignmentAndAppend(t *testing.T) {
	ctx := evalctx.New()
	ctx.Push(value.NewObject(), evalctx.Var|evalctx.Global)
	interrupt := false
	env := NewEnv(ctx, noFuncs{}, &interrupt)

	n, err := expr.Parse(`x = 5`, nil)
	require.NoError(t, err)
	env.Eval(n)
	got, ok := ctx.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, "5", got.String())

	n, err = expr.Parse(`arr = []`, nil)
	require.NoError(t, err)
	env.Eval(n)

	n, err = expr.Parse(`arr << 1`, nil)
	require.NoError(t, err)
	env.Eval(n)
	arrVal, ok := ctx.Resolve("arr")
	require.True(t, ok)
	arr, ok := arrVal.(*value.Array)
	require.True(t, ok)
	assert.Equal(t, 1, arr.Len())
}
