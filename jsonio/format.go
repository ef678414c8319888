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

// Package jsonio implements value I/O (entity D): parsing JSON text into
// value.Value trees (eager or deferred per size threshold), serializing
// back out under a configurable format record, and the grid / name=value
// table printers.
package jsonio

import (
	"io"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// TableStyle selects how an array-of-objects "table" value is rendered.
type TableStyle int

const (
	TableJSON TableStyle = iota
	TableGrid
	TableSh
	TableCSV
)

// StringMode controls how bare (non-JSON-literal) strings are emitted.
type StringMode int

const (
	StringQuoted StringMode = iota
	StringLiteral
)

// EmptyObjectPolicy resolves the spec's open question about what an
// empty-object JSON literal `{}` decodes to.
type EmptyObjectPolicy int

const (
	EmptyAsObject EmptyObjectPolicy = iota
	EmptyAsString
)

// Format is the serialization format record (§4.D).
type Format struct {
	Indent      int  // indentation width for pretty-printing
	OneLine     int  // force compact output if shorter than this many chars
	FloatDigits int  // precision for floating point output
	Table       TableStyle
	String      StringMode
	Pretty      bool
	Elem        bool // one array element per line
	Shell       bool // shell-quote the whole output
	ErrorToErr  bool // Serialize emits plain null for error nulls either way and writes no error text
	ASCIIOnly   bool
	Color       bool
	Quick       bool // infer table headers from the first row only
	Graphic     bool // Grid draws the same ASCII +, - and | borders whether or not this is set
	Prefix      string
	Null        string // how "null" renders inside a table cell
	Dest        io.Writer

	EmptyObject  EmptyObjectPolicy
	DeferSize    int // bytes above which a top-level array is parsed deferred
	DeferExplain int // rows sampled for deferred-table column stats

	// ScanCache, when non-nil, lets parseDeferredArray skip re-scanning a
	// file-backed array's span/count on repeat runs over the same file.
	ScanCache *value.ScanCache
}

// DefaultFormat mirrors json_format_default's starting point: compact,
// pretty off, grid tables, 6 digits of float precision.
func DefaultFormat() *Format {
	return &Format{
		Indent:       4,
		OneLine:      80,
		FloatDigits:  6,
		Table:        TableGrid,
		Null:         "-",
		DeferSize:    1 << 20,
		DeferExplain: 100,
	}
}

// Clone returns a shallow copy, useful for styles.config_style-style
// named-variant cloning.
func (f *Format) Clone() *Format {
	cp := *f
	return &cp
}
