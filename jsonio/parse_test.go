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

package jsonio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

func TestParseScalars(t *testing.T) {
	var testCases = []struct {
		name string
		src  string
		tag  value.Tag
	}{
		{"null", `null`, value.TagNull},
		{"true", `true`, value.TagBool},
		{"false", `false`, value.TagBool},
		{"int", `42`, value.TagNumber},
		{"negfloat", `-3.5`, value.TagNumber},
		{"string", `"hi"`, value.TagString},
		{"array", `[1,2,3]`, value.TagArray},
		{"object", `{"a":1}`, value.TagObject},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.src), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, v.Tag())
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	v, err := Parse([]byte(`"a\tbA"`), nil)
	require.NoError(t, err)
	assert.Equal(t, value.String("a\tbA"), v)
}

func TestParseObjectLooseGet(t *testing.T) {
	v, err := Parse([]byte(`{"first-name":"Ann"}`), nil)
	require.NoError(t, err)
	obj, ok := v.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, value.String("Ann"), obj.Get("firstName"))
}

func TestParseEmptyObjectPolicy(t *testing.T) {
	f := DefaultFormat()
	f.EmptyObject = EmptyAsString
	v, err := Parse([]byte(`{}`), f)
	require.NoError(t, err)
	assert.Equal(t, value.String(""), v)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`{"a":}`), nil)
	assert.Error(t, err)
}

func TestParseUnterminatedArray(t *testing.T) {
	_, err := Parse([]byte(`[1,2`), nil)
	assert.Error(t, err)
}

func TestScanArraySpanCountsTopLevelCommasOnly(t *testing.T) {
	end, count, err := scanArraySpan([]byte(`[{"a":[1,2]},{"b":3}]`), 0)
	require.NoError(t, err)
	assert.Equal(t, 21, end)
	assert.Equal(t, 2, count)
}
