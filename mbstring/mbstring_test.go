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

package mbstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLike(t *testing.T) {
	// spec.md §8 end-to-end scenario: "Hello" LIKE "h_llo" -> true.
	assert.True(t, Like("Hello", "h_llo"))
	assert.True(t, Like("Hello, world", "hello%"))
	assert.False(t, Like("Hello", "h_llox"))
}

func TestAbbrev(t *testing.T) {
	assert.True(t, Abbrev("tuc", "toUpperCase"))
	assert.False(t, Abbrev("xyz", "toUpperCase"))
	assert.True(t, Abbrev("toUpperCase", "toUpperCase"))
}

func TestLen(t *testing.T) {
	assert.Equal(t, 3, Len("abc"))
	assert.Equal(t, 1, Len("é")) // precomposed, one rune
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	s := "hi\n\"there\"\\"
	escaped := Escape(s, false)
	back, err := Unescape(escaped)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestUnescapeSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, expressed as a pair of \u escapes for the
	// UTF-16 surrogates D83D and DE00.
	back, err := Unescape("\\uD83D\\uDE00")
	require.NoError(t, err)
	assert.Equal(t, "😀", back)
}

func TestShellQuote(t *testing.T) {
	got := ShellQuote(`it's`)
	assert.Equal(t, `'it'\''s'`, got)
}

func TestLooseKeyDiacriticFold(t *testing.T) {
	assert.Equal(t, LooseKey("café"), LooseKey("Cafe"))
}
