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
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// ErrSyntax is returned for malformed JSON text.
var ErrSyntax = errors.NewKind("syntax error in JSON at offset %d: %s")

// ErrUnterminated is returned when a container never closes.
var ErrUnterminated = errors.NewKind("unterminated %s starting at offset %d")

// Parse decodes a single JSON value from data, always eagerly (no
// backing file, so deferred arrays aren't possible; use ParseFile for
// that).
func Parse(data []byte, format *Format) (value.Value, error) {
	if format == nil {
		format = DefaultFormat()
	}
	v, _, err := parseElement(data, 0, format, nil)
	return v, err
}

// ParseFile maps filename into memory and parses it, producing a
// deferred file-backed array (§4.D) if the top-level value is an array
// whose source text exceeds format.DeferSize bytes.
func ParseFile(filename string, format *Format) (value.Value, error) {
	if format == nil {
		format = DefaultFormat()
	}
	fr, err := value.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	v, _, err := parseElement(fr.Base, 0, format, fr)
	return v, err
}

// parseElement parses one JSON value from data starting at pos (an
// absolute offset into data, which never gets re-sliced so that a
// deferred array's driver can record absolute byte offsets).
func parseElement(data []byte, pos int, format *Format, file *value.FileRef) (value.Value, int, error) {
	pos = skipWS(data, pos)
	if pos >= len(data) {
		return nil, pos, ErrSyntax.New(pos, "unexpected end of input")
	}
	switch c := data[pos]; {
	case c == '{':
		return parseObject(data, pos, format)
	case c == '[':
		return parseArray(data, pos, format, file)
	case c == '"':
		return parseString(data, pos)
	case c == 't' || c == 'f':
		return parseBool(data, pos)
	case c == 'n':
		return parseNull(data, pos)
	case c == '-' || (c >= '0' && c <= '9'):
		return parseNumber(data, pos)
	default:
		return nil, pos, ErrSyntax.New(pos, "unexpected character")
	}
}

func skipWS(data []byte, pos int) int {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func parseBool(data []byte, pos int) (value.Value, int, error) {
	if hasPrefixAt(data, pos, "true") {
		return value.Bool(true), pos + 4, nil
	}
	if hasPrefixAt(data, pos, "false") {
		return value.Bool(false), pos + 5, nil
	}
	return nil, pos, ErrSyntax.New(pos, "invalid literal")
}

func parseNull(data []byte, pos int) (value.Value, int, error) {
	if hasPrefixAt(data, pos, "null") {
		return value.NewNull(), pos + 4, nil
	}
	return nil, pos, ErrSyntax.New(pos, "invalid literal")
}

func hasPrefixAt(data []byte, pos int, s string) bool {
	if pos+len(s) > len(data) {
		return false
	}
	return string(data[pos:pos+len(s)]) == s
}

func parseNumber(data []byte, pos int) (value.Value, int, error) {
	start := pos
	if data[pos] == '-' {
		pos++
	}
	for pos < len(data) && isDigit(data[pos]) {
		pos++
	}
	if pos < len(data) && data[pos] == '.' {
		pos++
		for pos < len(data) && isDigit(data[pos]) {
			pos++
		}
	}
	if pos < len(data) && (data[pos] == 'e' || data[pos] == 'E') {
		pos++
		if pos < len(data) && (data[pos] == '+' || data[pos] == '-') {
			pos++
		}
		for pos < len(data) && isDigit(data[pos]) {
			pos++
		}
	}
	if pos == start {
		return nil, pos, ErrSyntax.New(pos, "invalid number")
	}
	return value.NewNumberText(string(data[start:pos])), pos, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseString(data []byte, pos int) (value.Value, int, error) {
	start := pos
	pos++ // opening quote
	for pos < len(data) && data[pos] != '"' {
		if data[pos] == '\\' {
			pos++
		}
		pos++
	}
	if pos >= len(data) {
		return nil, pos, ErrUnterminated.New("string", start)
	}
	raw := string(data[start+1 : pos])
	pos++ // closing quote
	unescaped, err := mbstring.Unescape(raw)
	if err != nil {
		return nil, pos, err
	}
	return value.String(unescaped), pos, nil
}

func parseObject(data []byte, pos int, format *Format) (value.Value, int, error) {
	start := pos
	pos++ // '{'
	pos = skipWS(data, pos)
	obj := value.NewObject()
	if pos < len(data) && data[pos] == '}' {
		return emptyObjectLiteral(format), pos + 1, nil
	}
	for {
		pos = skipWS(data, pos)
		if pos >= len(data) || data[pos] != '"' {
			return nil, pos, ErrSyntax.New(pos, "expected object key")
		}
		keyVal, n, err := parseString(data, pos)
		if err != nil {
			return nil, n, err
		}
		pos = n
		pos = skipWS(data, pos)
		if pos >= len(data) || data[pos] != ':' {
			return nil, pos, ErrSyntax.New(pos, "expected ':'")
		}
		pos++
		val, n2, err := parseElement(data, pos, format, nil)
		if err != nil {
			return nil, n2, err
		}
		pos = n2
		obj.Set(string(keyVal.(value.String)), val)
		pos = skipWS(data, pos)
		if pos >= len(data) {
			return nil, pos, ErrUnterminated.New("object", start)
		}
		if data[pos] == ',' {
			pos++
			continue
		}
		if data[pos] == '}' {
			pos++
			break
		}
		return nil, pos, ErrSyntax.New(pos, "expected ',' or '}'")
	}
	return obj, pos, nil
}

func emptyObjectLiteral(format *Format) value.Value {
	if format != nil && format.EmptyObject == EmptyAsString {
		return value.String("")
	}
	return value.NewObject()
}

func parseArray(data []byte, pos int, format *Format, file *value.FileRef) (value.Value, int, error) {
	start := pos
	if file != nil && format != nil && format.DeferSize > 0 && len(data)-pos > format.DeferSize {
		return parseDeferredArray(data, pos, format, file)
	}
	pos++ // '['
	pos = skipWS(data, pos)
	arr := value.NewArray()
	if pos < len(data) && data[pos] == ']' {
		return arr, pos + 1, nil
	}
	for {
		val, n, err := parseElement(data, pos, format, nil)
		if err != nil {
			return nil, n, err
		}
		pos = n
		arr.Append(val)
		pos = skipWS(data, pos)
		if pos >= len(data) {
			return nil, pos, ErrUnterminated.New("array", start)
		}
		if data[pos] == ',' {
			pos++
			continue
		}
		if data[pos] == ']' {
			pos++
			break
		}
		return nil, pos, ErrSyntax.New(pos, "expected ',' or ']'")
	}
	return arr, pos, nil
}

// parseDeferredArray scans (without fully parsing each element) to find
// the array's matching ']' and a top-level-comma element count, then
// builds a value.FileArrayDriver over that span so elements are decoded
// on demand by the same parseElement function.
func parseDeferredArray(data []byte, pos int, format *Format, file *value.FileRef) (value.Value, int, error) {
	bodyStart := pos + 1

	var end, count int
	cached := false
	if format != nil && format.ScanCache != nil {
		if e, c, ok := format.ScanCache.Lookup(file, pos); ok {
			end, count, cached = e, c, true
		}
	}
	if !cached {
		var err error
		end, count, err = scanArraySpan(data, pos)
		if err != nil {
			return nil, pos, err
		}
		if format != nil && format.ScanCache != nil {
			format.ScanCache.Store(file, pos, end, count)
		}
	}

	parseOne := func(d []byte) (value.Value, int, error) {
		// d is file.Base[offset:], so the element parse is relative to
		// offset 0 of this sub-slice; that's fine, it's a fresh scan.
		return parseElement(d, 0, format, nil)
	}
	arr := value.NewFileArray(file, bodyStart, end-1, count, parseOne)
	return arr, end, nil
}

// scanArraySpan walks data starting at the '[' at pos, tracking bracket/
// brace/quote depth, and returns the offset just past the matching ']'
// plus the number of top-level comma-delimited elements.
func scanArraySpan(data []byte, pos int) (end int, count int, err error) {
	depth := 0
	inString := false
	i := pos
	for ; i < len(data); i++ {
		c := data[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1, count + boolToInt(hasContent(data, pos+1, i)), nil
			}
		case ',':
			if depth == 1 {
				count++
			}
		}
	}
	return 0, 0, ErrUnterminated.New("array", pos)
}

// hasContent reports whether data[from:to] holds any non-whitespace byte,
// i.e. whether the array body is non-empty.
func hasContent(data []byte, from, to int) bool {
	for i := from; i < to; i++ {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
