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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

func newTestStore() *Store {
	s := New()
	obj := s.section("test", true)
	obj.Set("pretty", value.Bool(false))
	obj.Set("indent", value.NewInt(2))
	obj.Set("prefix", value.String(""))
	obj.Set("table-list", value.NewArray(value.String("json"), value.String("grid"), value.String("sh")))
	obj.Set("table", value.String("json"))
	obj.Set("sub", value.NewObject())
	sub := obj.Get("sub").(*value.Object)
	sub.Set("width", value.NewInt(80))
	return s
}

func TestParseNameEqualsValue(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Parse("test", "indent=4, prefix=\">> \""))
	assert.Equal(t, int64(4), s.Get("test", "indent").(*value.Number).Int())
}

func TestParseBareBooleanAndNegated(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Parse("test", "pretty"))
	assert.Equal(t, value.Bool(true), s.Get("test", "pretty"))

	require.NoError(t, s.Parse("test", "nopretty"))
	assert.Equal(t, value.Bool(false), s.Get("test", "pretty"))
}

func TestParseEnumBareValue(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Parse("test", "grid"))
	assert.Equal(t, value.String("grid"), s.Get("test", "table"))
}

func TestParseDottedSubSection(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Parse("test", "sub.width=120"))
	sub := s.Get("test", "sub").(*value.Object)
	assert.Equal(t, int64(120), sub.Get("width").(*value.Number).Int())
}

func TestParseUnknownOptionErrors(t *testing.T) {
	s := newTestStore()
	err := s.Parse("test", "bogus=1")
	assert.Error(t, err)
}

func TestParseTypeMismatchErrors(t *testing.T) {
	s := newTestStore()
	err := s.Parse("test", "indent=notanumber")
	assert.Error(t, err)
}

func TestStyleLookupClonesNormal(t *testing.T) {
	s := New()
	normal := s.Style("normal")
	require.NotNil(t, normal)
	assert.False(t, s.StyleExists("warning"))

	warning := s.Style("warning")
	require.NotNil(t, warning)
	assert.True(t, s.StyleExists("warning"))
	assert.Equal(t, normal.Len(), warning.Len())
}
