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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/evalctx"
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

func TestNewPrePopulatesStatementBuiltins(t *testing.T) {
	r := New()
	for _, kw := range []string{"if", "while", "for", "break", "continue", "return", "var", "const", "function"} {
		_, ok := r.LookupCommand(kw)
		assert.True(t, ok, "expected %q to be registered", kw)
	}
}

func TestResolveFuncDispatchOrder(t *testing.T) {
	r := New()
	ref := r.ResolveFunc("sum")
	require.NotNil(t, ref)
	assert.Equal(t, expr.FuncAggregate, ref.Kind)

	r.RegisterUser("myfunc", []string{"x"}, nil)
	ref = r.ResolveFunc("myfunc")
	assert.Equal(t, expr.FuncUser, ref.Kind)

	ref = r.ResolveFunc("toUpperCase")
	assert.Equal(t, expr.FuncBuiltin, ref.Kind)
}

func TestRegisterFunctionOverridesBuiltin(t *testing.T) {
	r := New()
	called := false
	r.RegisterFunction("double", func(args []value.Value, extra eval.CallExtra) value.Value {
		called = true
		return value.NewInt(42)
	})
	fn, ok := r.Builtin("double")
	require.True(t, ok)
	got := fn(nil, eval.CallExtra{})
	assert.True(t, called)
	assert.Equal(t, int64(42), got.(*value.Number).Int())
}

func TestRegisterTablePrinterAndOutput(t *testing.T) {
	r := New()
	r.RegisterTablePrinter("custom", func(rows *value.Array, w func(string)) error {
		w("custom-output")
		return nil
	})
	p, ok := r.TablePrinter("custom")
	require.True(t, ok)

	var got string
	err := p(value.NewArray(), func(s string) { got = s })
	require.NoError(t, err)
	assert.Equal(t, "custom-output", got)
}

func TestUserOutputHook(t *testing.T) {
	r := New()
	var gotStyle, gotText string
	r.SetUserOutput(func(style, text string) {
		gotStyle, gotText = style, text
	})
	r.Output("warning", "careful")
	assert.Equal(t, "warning", gotStyle)
	assert.Equal(t, "careful", gotText)
}

func TestContextHooksRunInOrder(t *testing.T) {
	r := New()
	var order []int
	r.RegisterContextHook(func(ctx *evalctx.Context) { order = append(order, 1) })
	r.RegisterContextHook(func(ctx *evalctx.Context) { order = append(order, 2) })

	ctx := evalctx.New()
	r.RunHooks(ctx)
	assert.Equal(t, []int{1, 2}, order)
}
