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
	"strconv"
	"strings"

	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Serialize renders v as text under format. If format.Table selects a
// tabular style and v qualifies as a table (§ GLOSSARY), the grid/sh/csv
// printers take over instead of plain JSON.
func Serialize(v value.Value, format *Format) string {
	if format == nil {
		format = DefaultFormat()
	}
	if arr, ok := v.(*value.Array); ok && arr.IsTable() && format.Table != TableJSON {
		switch format.Table {
		case TableGrid:
			return Grid(arr, format)
		case TableSh:
			return shellTable(arr, format)
		case TableCSV:
			return csvTable(arr, format)
		}
	}
	var b strings.Builder
	writeValue(&b, v, format, 0)
	s := b.String()
	if format.Shell {
		return mbstring.ShellQuote(s)
	}
	return s
}

func writeValue(b *strings.Builder, v value.Value, format *Format, depth int) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch tv := v.(type) {
	case *value.Null:
		if tv.IsError() && format.ErrorToErr {
			// The error's text is not written anywhere; plain null is
			// emitted into the value stream so downstream structure
			// stays valid JSON.
			b.WriteString("null")
			return
		}
		b.WriteString("null")
	case value.Bool:
		b.WriteString(tv.String())
	case *value.Number:
		writeNumber(b, tv, format)
	case value.String:
		writeString(b, string(tv), format)
	case *value.Array:
		writeArray(b, tv, format, depth)
	case *value.Object:
		writeObject(b, tv, format, depth)
	default:
		b.WriteString("null")
	}
}

func writeNumber(b *strings.Builder, n *value.Number, format *Format) {
	if !n.IsBinary && n.Text != "" {
		b.WriteString(n.Text)
		return
	}
	if n.IsFloat {
		b.WriteString(strconv.FormatFloat(n.Float(), 'g', format.FloatDigits, 64))
		return
	}
	b.WriteString(strconv.FormatInt(n.Int(), 10))
}

func writeString(b *strings.Builder, s string, format *Format) {
	if format.String == StringLiteral {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	b.WriteString(mbstring.Escape(s, format.ASCIIOnly))
	b.WriteByte('"')
}

func writeArray(b *strings.Builder, arr *value.Array, format *Format, depth int) {
	b.WriteByte('[')
	if !format.Pretty {
		first := true
		arr.ForEach(func(e value.Value) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeValue(b, e, format, depth+1)
			return true
		})
		b.WriteByte(']')
		return
	}
	n := arr.Len()
	if n == 0 {
		b.WriteByte(']')
		return
	}
	b.WriteByte('\n')
	i := 0
	arr.ForEach(func(e value.Value) bool {
		writeIndent(b, format, depth+1)
		writeValue(b, e, format, depth+1)
		i++
		if i < n {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		return true
	})
	writeIndent(b, format, depth)
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, obj *value.Object, format *Format, depth int) {
	b.WriteByte('{')
	n := len(obj.Keys)
	if n == 0 {
		b.WriteByte('}')
		return
	}
	if !format.Pretty {
		for i, k := range obj.Keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, k.Name, format)
			b.WriteByte(':')
			writeValue(b, k.Val, format, depth+1)
		}
		b.WriteByte('}')
		return
	}
	b.WriteByte('\n')
	for i, k := range obj.Keys {
		writeIndent(b, format, depth+1)
		writeString(b, k.Name, format)
		b.WriteString(": ")
		writeValue(b, k.Val, format, depth+1)
		if i < n-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	writeIndent(b, format, depth)
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, format *Format, depth int) {
	for i := 0; i < depth*format.Indent; i++ {
		b.WriteByte(' ')
	}
}
