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

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	var testCases = []struct {
		name   string
		src    string
		rootOp Op
	}{
		{"add_before_assign", "a = 1 + 2", OpAssign},
		{"mul_binds_tighter_than_add", "1 + 2 * 3", OpAdd},
		{"ternary", "a ? 1 : 2", OpTernary},
		{"coalesce", "a ?? b", OpCoalesce},
		{"or_looser_than_and", "a and b or c", OpOr},
		{"not_prefix", "not a", OpNot},
		{"comparison", "a == b", OpEq},
		{"between", "a between 1 and 10", OpBetween},
		{"like", "a like \"x%\"", OpLike},
		{"in", "a in b", OpIn},
		{"not_in", "a not in b", OpNotIn},
		{"is_null", "a is null", OpIsNull},
		{"is_not_null", "a is not null", OpIsNotNull},
		{"bitwise_and", "a & b", OpBitAnd},
		{"member", "a.b", OpMember},
		{"deep_member", "a..b", OpDeepMember},
		{"index", "a[1]", OpIndex},
		{"append", "a << 1", OpAppend},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.src, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.rootOp, n.Op)
		})
	}
}

func TestParseMethodCallTransform(t *testing.T) {
	n, err := Parse("x.f(1,2)", nil)
	require.NoError(t, err)
	require.Equal(t, OpCall, n.Op)
	assert.Equal(t, "f", n.Name)
	require.Len(t, n.Args, 3)
	assert.Equal(t, OpName, n.Args[0].Op)
	assert.Equal(t, "x", n.Args[0].Name)
}

func TestParseIndexKV(t *testing.T) {
	n, err := Parse(`a[name:"bob"]`, nil)
	require.NoError(t, err)
	require.Equal(t, OpIndexKV, n.Op)
	require.NotNil(t, n.Third)
}

func TestParseObjectNullSkipMember(t *testing.T) {
	n, err := Parse(`{a: 1, b ?: c}`, nil)
	require.NoError(t, err)
	require.Equal(t, OpObject, n.Op)
	require.Len(t, n.Children, 2)
	assert.False(t, n.Children[0].SkipIfNull)
	assert.True(t, n.Children[1].SkipIfNull)
}

func TestParseSelectPipeline(t *testing.T) {
	n, err := Parse("select a, b as c from t where x > 1 group by a having count(a) > 1 order by true a limit 10", fakeResolver{})
	require.NoError(t, err)
	require.Equal(t, OpSelect, n.Op)
	sel := n.Select
	require.Len(t, sel.Columns, 2)
	assert.Equal(t, "c", sel.Columns[1].Name)
	require.NotNil(t, sel.From)
	require.NotNil(t, sel.Where)
	require.Len(t, sel.GroupBy, 1)
	require.NotNil(t, sel.Having)
	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Descending)
	require.NotNil(t, sel.Limit)
}

func TestParseEnvVar(t *testing.T) {
	n, err := Parse("$HOME", nil)
	require.NoError(t, err)
	require.Equal(t, OpEnvVar, n.Op)
	assert.Equal(t, "HOME", n.Name)
}

func TestParseRegexDivideDisambiguation(t *testing.T) {
	n, err := Parse("a / 2", nil)
	require.NoError(t, err)
	assert.Equal(t, OpDiv, n.Op)

	n, err = Parse("/abc/gi", nil)
	require.NoError(t, err)
	require.Equal(t, OpRegex, n.Op)
	assert.True(t, n.RegexGlobal)
	assert.True(t, n.RegexIgnore)
}

func TestParseAggregateWrapsAG(t *testing.T) {
	n, err := Parse("sum(a) + 1", aggResolver{})
	require.NoError(t, err)
	require.Equal(t, OpAG, n.Op)
	require.Len(t, n.AGSites, 1)
	assert.Equal(t, OpAdd, n.Inner.Op)
}

func TestParseSyntaxErrorHasPosition(t *testing.T) {
	_, err := Parse("1 +", nil)
	assert.Error(t, err)
}

type fakeResolver struct{}

func (fakeResolver) ResolveFunc(name string) *FuncRef {
	return &FuncRef{Name: name, Kind: FuncBuiltin}
}

type aggResolver struct{}

func (aggResolver) ResolveFunc(name string) *FuncRef {
	if name == "sum" {
		return &FuncRef{Name: name, Kind: FuncAggregate, AGSize: 16}
	}
	return &FuncRef{Name: name, Kind: FuncBuiltin}
}
