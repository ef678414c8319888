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

// Package mbstring implements the multibyte string layer used pervasively
// for comparisons, LIKE, key normalization, and serialization: UTF-8
// length/width/case/compare/escape operations, grounded on
// original_source/src/lib/mbstr.c.
package mbstring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Len returns the number of UTF-8 codepoints in s (not bytes).
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Width returns the terminal display width of s: combining marks count as
// zero width, East-Asian wide runes count as two, everything else as one.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Cf, r) {
		return 0
	}
	if isWide(r) {
		return 2
	}
	return 1
}

func isWide(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F, // Hangul Jamo
		r == 0x2329, r == 0x232A,
		r >= 0x2E80 && r <= 0xA4CF && r != 0x303F, // CJK ... Yi
		r >= 0xAC00 && r <= 0xD7A3, // Hangul syllables
		r >= 0xF900 && r <= 0xFAFF, // CJK compat ideographs
		r >= 0xFE30 && r <= 0xFE6F, // CJK compat forms
		r >= 0xFF00 && r <= 0xFF60, // Fullwidth forms
		r >= 0xFFE0 && r <= 0xFFE6,
		r >= 0x20000 && r <= 0x3FFFD:
		return true
	}
	return false
}

// Height returns the number of newline-delimited lines in s.
func Height(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}

// Line returns the 0-based n-th newline-delimited line of s.
func Line(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

// Wrap breaks s into lines no wider than width, breaking at word
// boundaries when possible and falling back to a hard character break
// for a single word wider than width.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		out = append(out, wrapLine(paragraph, width)...)
	}
	return out
}

func wrapLine(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, w := range words {
		cand := w
		if cur != "" {
			cand = cur + " " + w
		}
		if Width(cand) <= width || cur == "" {
			if Width(w) > width && cur == "" {
				lines = append(lines, hardBreak(w, width)...)
				cur = ""
				continue
			}
			cur = cand
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func hardBreak(s string, width int) []string {
	var lines []string
	runes := []rune(s)
	for len(runes) > 0 {
		n := width
		if n > len(runes) {
			n = len(runes)
		}
		lines = append(lines, string(runes[:n]))
		runes = runes[n:]
	}
	return lines
}

// EqualFold reports whether a and b are equal under a locale-insensitive
// case fold, ignoring trailing spaces on both (used by the =* operator).
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimRight(a, " "), strings.TrimRight(b, " "))
}

// Compare does a case-folded ordering comparison, returning -1, 0 or 1.
func Compare(a, b string) int {
	fa, fb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// Abbrev reports whether abbr is an abbreviation of full using the
// "initial-letters of camelCase words" rule jsoncalc uses for option
// matching, e.g. "tuc" matches "toUpperCase".
func Abbrev(abbr, full string) bool {
	if abbr == full {
		return true
	}
	if abbr == "" {
		return false
	}
	ai := 0
	ar := []rune(abbr)
	for _, r := range full {
		if ai >= len(ar) {
			return true
		}
		if unicode.ToLower(r) == unicode.ToLower(ar[ai]) {
			ai++
			continue
		}
		if unicode.IsUpper(r) {
			// Word boundary without a matching abbreviation letter: fail.
			return false
		}
	}
	return ai >= len(ar)
}

// Like implements SQL-style LIKE glob matching: % matches any run of
// characters, _ matches exactly one, comparison is case-insensitive.
func Like(s, pattern string) bool {
	return likeMatch([]rune(strings.ToLower(s)), []rune(strings.ToLower(pattern)))
}

func likeMatch(s, p []rune) bool {
	for len(p) > 0 {
		switch p[0] {
		case '%':
			// Collapse consecutive %.
			for len(p) > 0 && p[0] == '%' {
				p = p[1:]
			}
			if len(p) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if likeMatch(s[i:], p) {
					return true
				}
			}
			return false
		case '_':
			if len(s) == 0 {
				return false
			}
			s, p = s[1:], p[1:]
		default:
			if len(s) == 0 || s[0] != p[0] {
				return false
			}
			s, p = s[1:], p[1:]
		}
	}
	return len(s) == 0
}
