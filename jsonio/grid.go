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

type column struct {
	name  string
	width int
}

// columnsOf collects header names and widths (§4.D Grid printer). For a
// deferred table, only format.DeferExplain rows are sampled for column
// statistics (grounded on original_source/src/lib/grid.c /
// jx_is_deferred_array + deferexplain).
func columnsOf(arr *value.Array, format *Format) []*column {
	var cols []*column
	byName := map[string]*column{}
	addName := func(name string) *column {
		if c, ok := byName[name]; ok {
			return c
		}
		c := &column{name: name, width: mbstring.Width(name)}
		byName[name] = c
		cols = append(cols, c)
		return c
	}

	limit := -1
	if arr.IsDeferred() && format.DeferExplain > 0 {
		limit = format.DeferExplain
	}
	n := 0
	arr.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		for _, k := range obj.Keys {
			c := addName(k.Name)
			w := cellWidth(k.Val, format)
			if w > c.width {
				c.width = w
			}
		}
		n++
		return limit < 0 || n < limit
	})
	return cols
}

func cellWidth(v value.Value, format *Format) int {
	maxW := 0
	for _, line := range strings.Split(cellText(v, format), "\n") {
		if w := mbstring.Width(line); w > maxW {
			maxW = w
		}
	}
	return maxW
}

func cellText(v value.Value, format *Format) string {
	switch tv := v.(type) {
	case nil:
		return format.Null
	case *value.Null:
		if !tv.IsError() {
			return format.Null
		}
		return tv.Err
	case *value.Array:
		if tv.IsTable() {
			return "[table]"
		}
		return "[array]"
	case *value.Object:
		return "{object}"
	case value.String:
		return string(tv)
	default:
		return Serialize(v, &Format{FloatDigits: format.FloatDigits, Null: format.Null})
	}
}

// Grid renders arr as an aligned-column table. Cells wider than their
// column's single-line content expand the row height (multi-line string
// cells).
func Grid(arr *value.Array, format *Format) string {
	cols := columnsOf(arr, format)
	var b strings.Builder
	writeGridRule(&b, cols, format)
	writeGridHeader(&b, cols, format)
	writeGridRule(&b, cols, format)
	arr.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		writeGridRow(&b, cols, obj, format)
		return true
	})
	writeGridRule(&b, cols, format)
	return b.String()
}

func writeGridRule(b *strings.Builder, cols []*column, format *Format) {
	corner, dash := "+", "-"
	if format.Graphic {
		corner, dash = "+", "-"
	}
	b.WriteString(corner)
	for _, c := range cols {
		b.WriteString(strings.Repeat(dash, c.width+2))
		b.WriteString(corner)
	}
	b.WriteByte('\n')
}

func writeGridHeader(b *strings.Builder, cols []*column, format *Format) {
	b.WriteString("|")
	for _, c := range cols {
		b.WriteByte(' ')
		b.WriteString(padTo(c.name, c.width))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

func writeGridRow(b *strings.Builder, cols []*column, obj *value.Object, format *Format) {
	// Compute row height from the tallest cell.
	height := 1
	lines := make([][]string, len(cols))
	for i, c := range cols {
		text := cellText(obj.Get(c.name), format)
		ls := strings.Split(text, "\n")
		lines[i] = ls
		if len(ls) > height {
			height = len(ls)
		}
	}
	for row := 0; row < height; row++ {
		b.WriteString("|")
		for i, c := range cols {
			line := ""
			if row < len(lines[i]) {
				line = lines[i][row]
			}
			b.WriteByte(' ')
			b.WriteString(padTo(line, c.width))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}
}

func padTo(s string, width int) string {
	w := mbstring.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
