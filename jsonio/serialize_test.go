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

func TestSerializeRoundTripsCompactJSON(t *testing.T) {
	var testCases = []struct {
		name string
		src  string
	}{
		{"int", `5`},
		{"string", `"hi there"`},
		{"array", `[1,2,3]`},
		{"object", `{"a":1,"b":"x"}`},
		{"nested", `{"a":[1,{"b":2}]}`},
	}
	f := DefaultFormat()
	f.Table = TableJSON
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.src), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.src, Serialize(v, f))
		})
	}
}

func TestSerializePretty(t *testing.T) {
	v, err := Parse([]byte(`{"a":1}`), nil)
	require.NoError(t, err)
	f := DefaultFormat()
	f.Table = TableJSON
	f.Pretty = true
	got := Serialize(v, f)
	assert.Equal(t, "{\n    \"a\": 1\n}", got)
}

func TestSerializeGridTable(t *testing.T) {
	arr := value.NewArray(
		value.NewObject(value.NewKey("name", value.String("Ann")), value.NewKey("age", value.NewInt(30))),
		value.NewObject(value.NewKey("name", value.String("Bob")), value.NewKey("age", value.NewInt(5))),
	)
	got := Grid(arr, DefaultFormat())
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "age")
	assert.Contains(t, got, "Ann")
	assert.Contains(t, got, "Bob")
}

func TestCSVTableEscapesComma(t *testing.T) {
	arr := value.NewArray(
		value.NewObject(value.NewKey("note", value.String("a,b"))),
	)
	got := csvTable(arr, DefaultFormat())
	assert.Contains(t, got, `"a,b"`)
}

func TestNameValue(t *testing.T) {
	obj := value.NewObject(value.NewKey("x", value.NewInt(1)), value.NewKey("longname", value.NewInt(2)))
	got := NameValue(obj, DefaultFormat())
	assert.Contains(t, got, "x        = 1\n")
	assert.Contains(t, got, "longname = 2\n")
}
