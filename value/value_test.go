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

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseEqualNumberString(t *testing.T) {
	// spec.md §8 property 6: 0 == "0" but 0 !== "0".
	assert.True(t, LooseEqual(NewInt(0), String("0")))
	assert.False(t, DeepEqual(NewInt(0), String("0")))
}

func TestDeepEqualArraysAndObjects(t *testing.T) {
	a := NewArray(NewInt(1), NewInt(2))
	b := NewArray(NewInt(1), NewInt(2))
	assert.True(t, DeepEqual(a, b))

	oa := NewObject(NewKey("x", NewInt(1)), NewKey("y", NewInt(2)))
	ob := NewObject(NewKey("y", NewInt(2)), NewKey("x", NewInt(1)))
	assert.True(t, DeepEqual(oa, ob), "object equality is order-independent")
}

func TestCopyIsDisjoint(t *testing.T) {
	orig := NewArray(NewInt(1), NewInt(2))
	cp := orig.Copy(nil).(*Array)
	require.True(t, DeepEqual(orig, cp))

	cp.SetAt(0, NewInt(99))
	assert.False(t, DeepEqual(orig, cp), "mutating the copy must not affect the original")
	assert.Equal(t, int64(1), orig.At(0).(*Number).Int())
}

func TestObjectAppendReplacesSameName(t *testing.T) {
	o := NewObject()
	require.NoError(t, o.Append(NewKey("a", NewInt(1))))
	require.NoError(t, o.Append(NewKey("a", NewInt(2))))
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, int64(2), o.Get("a").(*Number).Int())
}

func TestObjectAppendRejectsNonKey(t *testing.T) {
	o := NewObject()
	err := o.Append(NewInt(1))
	assert.Error(t, err)
}

func TestArrayNegativeIndexWraps(t *testing.T) {
	// spec.md §8 property 9: [1,2,3][-1] === 3.
	a := NewArray(NewInt(1), NewInt(2), NewInt(3))
	assert.Equal(t, int64(3), a.At(-1).(*Number).Int())
}

func TestCompareOrdering(t *testing.T) {
	result, ok := Compare(NewInt(1), NewInt(2))
	require.True(t, ok)
	assert.Negative(t, result)

	_, ok = Compare(NewArray(), NewArray())
	assert.False(t, ok, "arrays are only comparable via ===/!==")
}

func TestNullErrorVsPlain(t *testing.T) {
	plain := NewNull()
	assert.False(t, plain.IsError())

	errv := NewError("div0", "division by 0")
	assert.True(t, errv.IsError())
	assert.Equal(t, "div0:division by 0", errv.Err)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "null", TypeOf(NewNull()))
	assert.Equal(t, "number", TypeOf(NewInt(1)))
	assert.Equal(t, "array", TypeOf(NewArray()))
	assert.Equal(t, "object", TypeOf(NewObject()))
}
