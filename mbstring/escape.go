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
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrBadEscape is returned by Unescape on a malformed \x/\u/\U sequence.
var ErrBadEscape = errors.NewKind("badescape:%s")

// Escape renders s as the interior of a JSON double-quoted string:
// control characters and backslashes are escaped; if asciiOnly is set,
// every non-ASCII rune is emitted as \uXXXX, using a surrogate pair for
// codepoints beyond the BMP.
func Escape(s string, asciiOnly bool) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				b.WriteString(`\u`)
				b.WriteString(hex4(uint16(r)))
			case r < 0x80:
				b.WriteRune(r)
			case asciiOnly:
				if r > 0xFFFF {
					r1, r2 := utf16.EncodeRune(r)
					b.WriteString(`\u`)
					b.WriteString(hex4(uint16(r1)))
					b.WriteString(`\u`)
					b.WriteString(hex4(uint16(r2)))
				} else {
					b.WriteString(`\u`)
					b.WriteString(hex4(uint16(r)))
				}
			default:
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func hex4(v uint16) string {
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// ShellQuote wraps s in single quotes for shell-mode output, escaping
// embedded single quotes by closing the quote, inserting \' and
// reopening.
func ShellQuote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'\''`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Unescape reverses JSON-style escapes plus \x, \u{...} and \U, combining
// \uXXXX\uYYYY surrogate pairs into a single codepoint.
func Unescape(s string) (string, error) {
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i+1 >= len(r) {
			b.WriteRune(r[i])
			continue
		}
		i++
		switch r[i] {
		case '"', '\\', '/':
			b.WriteRune(r[i])
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'x':
			if i+2 >= len(r) {
				return "", ErrBadEscape.New("truncated \\x escape")
			}
			v, err := strconv.ParseUint(string(r[i+1:i+3]), 16, 8)
			if err != nil {
				return "", ErrBadEscape.New(err.Error())
			}
			b.WriteByte(byte(v))
			i += 2
		case 'u':
			if i+1 < len(r) && r[i+1] == '{' {
				end := i + 2
				for end < len(r) && r[end] != '}' {
					end++
				}
				if end >= len(r) {
					return "", ErrBadEscape.New("unterminated \\u{...}")
				}
				v, err := strconv.ParseUint(string(r[i+2:end]), 16, 32)
				if err != nil {
					return "", ErrBadEscape.New(err.Error())
				}
				b.WriteRune(rune(v))
				i = end
				continue
			}
			if i+4 >= len(r) {
				return "", ErrBadEscape.New("truncated \\u escape")
			}
			v1, err := strconv.ParseUint(string(r[i+1:i+5]), 16, 32)
			if err != nil {
				return "", ErrBadEscape.New(err.Error())
			}
			i += 4
			rn := rune(v1)
			if utf16.IsSurrogate(rn) && i+6 < len(r) && r[i+1] == '\\' && r[i+2] == 'u' {
				v2, err := strconv.ParseUint(string(r[i+3:i+7]), 16, 32)
				if err == nil {
					combined := utf16.DecodeRune(rn, rune(v2))
					if combined != utf8.RuneError {
						b.WriteRune(combined)
						i += 6
						continue
					}
				}
			}
			b.WriteRune(rn)
		case 'U':
			if i+8 >= len(r) {
				return "", ErrBadEscape.New("truncated \\U escape")
			}
			v, err := strconv.ParseUint(string(r[i+1:i+9]), 16, 32)
			if err != nil {
				return "", ErrBadEscape.New(err.Error())
			}
			b.WriteRune(rune(v))
			i += 8
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String(), nil
}

// stripDiacritics folds precomposed accented Latin letters down to their
// base ASCII form (e.g. "é" -> "e") for loose key matching.
func stripDiacritics(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := diacriticFold[r]; ok {
			b.WriteRune(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var diacriticFold = buildDiacriticTable()

func buildDiacriticTable() map[rune]rune {
	pairs := []struct {
		folded string
		plain  rune
	}{
		{"àáâãäåāă", 'a'}, {"ÀÁÂÃÄÅĀĂ", 'A'},
		{"çćĉċč", 'c'}, {"ÇĆĈĊČ", 'C'},
		{"èéêëēĕėęě", 'e'}, {"ÈÉÊËĒĔĖĘĚ", 'E'},
		{"ìíîïĩīĭįı", 'i'}, {"ÌÍÎÏĨĪĬĮİ", 'I'},
		{"ñńņňŉ", 'n'}, {"ÑŃŅŇ", 'N'},
		{"òóôõöøōŏő", 'o'}, {"ÒÓÔÕÖØŌŎŐ", 'O'},
		{"ùúûüũūŭůűų", 'u'}, {"ÙÚÛÜŨŪŬŮŰŲ", 'U'},
		{"ýÿŷ", 'y'}, {"ÝŸŶ", 'Y'},
	}
	m := map[rune]rune{}
	for _, p := range pairs {
		for _, r := range p.folded {
			m[r] = p.plain
		}
	}
	return m
}

// LooseKey canonicalizes an object member name for forgiving lookup:
// case-folded, diacritic-stripped, underscore/hyphen-skipping, with any
// XML namespace prefix ("ns:name") stripped.
func LooseKey(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	name = stripDiacritics(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			continue
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
