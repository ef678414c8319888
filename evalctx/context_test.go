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

package evalctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

func TestResolveWalksParentChain(t *testing.T) {
	ctx := New()
	ctx.Push(value.NewObject(value.NewKey("outer", value.NewInt(1))), Global)
	ctx.Push(value.NewObject(value.NewKey("inner", value.NewInt(2))), Var)

	v, ok := ctx.Resolve("inner")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.(*value.Number).Int())

	v, ok = ctx.Resolve("outer")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*value.Number).Int())

	_, ok = ctx.Resolve("missing")
	assert.False(t, ok)
}

func TestResolveReturnsCopyNotAlias(t *testing.T) {
	ctx := New()
	obj := value.NewObject(value.NewKey("x", value.NewInt(1)))
	ctx.Push(obj, Var)

	v, ok := ctx.Resolve("x")
	require.True(t, ok)
	v.(*value.Number).I = 99
	got, _ := ctx.Resolve("x")
	assert.Equal(t, int64(1), got.(*value.Number).Int())
}

func TestAssignUpdatesDeclaringLayer(t *testing.T) {
	ctx := New()
	ctx.Push(value.NewObject(value.NewKey("x", value.NewInt(1))), Global)
	ctx.Push(value.NewObject(), Var)

	ctx.Assign("x", value.NewInt(5))
	v, _ := ctx.Resolve("x")
	assert.Equal(t, int64(5), v.(*value.Number).Int())
	// Assignment found "x" in the outer (Global) layer, not the top.
	_, ok := ctx.Top.Data.(*value.Object).Get("x").(*value.Number)
	assert.False(t, ok)
}

func TestAssignSkipsConstLayer(t *testing.T) {
	ctx := New()
	ctx.Push(value.NewObject(value.NewKey("x", value.NewInt(1))), Const)
	ctx.Assign("x", value.NewInt(9))
	// Assign skips the Const layer's "x"; the fallback declaration lands in
	// the top layer, which here is that same (only) layer.
	v, ok := ctx.Top.Data.(*value.Object).Get("x").(*value.Number)
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Int())
}

func TestDeclareCreatesInTopLayer(t *testing.T) {
	ctx := New()
	ctx.Push(value.NewObject(), Var)
	ctx.Declare("y", value.String("hi"))
	v, ok := ctx.Top.Data.(*value.Object).Get("y").(value.String)
	require.True(t, ok)
	assert.Equal(t, value.String("hi"), v)
}

func TestAutoloadFiresOnlyWithNoCache(t *testing.T) {
	ctx := New()
	l := ctx.Push(value.NewObject(), NoCache)
	l.Autoload = func(name string) (value.Value, bool) {
		if name == "lazy" {
			return value.NewInt(42), true
		}
		return nil, false
	}
	v, ok := ctx.Resolve("lazy")
	require.True(t, ok)
	assert.Equal(t, int64(42), v.(*value.Number).Int())
}

func TestFilesSelectTriggersWritebackOnModified(t *testing.T) {
	f := newFiles()
	f.Open("a.json", true, value.NewInt(1))
	f.Open("b.json", true, value.NewInt(2))
	f.Select(CursorNext, -1, nil)
	f.MarkModified()

	var wroteName string
	err := f.Select(CursorNext, -1, func(name string, data value.Value) error {
		wroteName = name
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a.json", wroteName)
	assert.Equal(t, int64(2), f.Current().(*value.Number).Int())
}
