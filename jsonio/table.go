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
	"strings"

	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// shellTable renders a table as whitespace-separated columns suitable for
// consumption by shell tools (awk, read, cut) rather than a human-facing
// grid: no borders, one header line, values shell-quoted when they
// contain whitespace.
func shellTable(arr *value.Array, format *Format) string {
	cols := columnsOf(arr, format)
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(shellField(c.name))
	}
	b.WriteByte('\n')
	arr.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(shellField(cellText(obj.Get(c.name), format)))
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

func shellField(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'$\\") {
		return mbstring.ShellQuote(s)
	}
	return s
}

func csvTable(arr *value.Array, format *Format) string {
	cols := columnsOf(arr, format)
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCSVField(&b, c.name)
	}
	b.WriteString("\r\n")
	arr.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCSVField(&b, cellText(obj.Get(c.name), format))
		}
		b.WriteString("\r\n")
		return true
	})
	return b.String()
}

func writeCSVField(b *strings.Builder, s string) {
	if !strings.ContainsAny(s, ",\"\r\n") {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}

// NameValue renders a single object as a two-column "name = value" list,
// the format jsoncalc uses for a non-table, non-array object at the top
// level of interactive output.
func NameValue(obj *value.Object, format *Format) string {
	width := 0
	for _, k := range obj.Keys {
		if w := len(k.Name); w > width {
			width = w
		}
	}
	var b strings.Builder
	for _, k := range obj.Keys {
		b.WriteString(k.Name)
		b.WriteString(strings.Repeat(" ", width-len(k.Name)))
		b.WriteString(" = ")
		b.WriteString(Serialize(k.Val, format))
		b.WriteByte('\n')
	}
	return b.String()
}
