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

package value

import (
	"fmt"

	"github.com/kirkendall/jsoncalc-sub001/mbstring"
)

// Tag identifies the dynamic type of a Value.
type Tag int

const (
	TagNull Tag = iota
	TagBool
	TagNumber
	TagString
	TagArray
	TagObject
	TagKey
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "boolean"
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagArray:
		return "array"
	case TagObject:
		return "object"
	case TagKey:
		return "key"
	default:
		return "unknown"
	}
}

// TriState models the cached, opportunistically-set "is this array a
// table" hint carried on every Array node.
type TriState int

const (
	Unknown TriState = iota
	Yes
	No
)

// Where is a copied source-position span used for error-null diagnostics.
// It intentionally copies rather than borrows (see SPEC_FULL.md, Open
// Questions) so a Null never outlives the script buffer it was parsed
// from.
type Where struct {
	File   string
	Line   int
	Offset int
}

// Value is the common interface every JSON-shaped node implements. All
// containers own their children: copying is always deep, and there are no
// cycles (see spec's design notes).
type Value interface {
	Tag() Tag

	// Copy returns a deep copy of the receiver. If keep is non-nil, a
	// container's children are first filtered: only children for which
	// keep returns true are copied in.
	Copy(keep func(Value) bool) Value

	fmt.Stringer
}

// Null represents JSON null, and doubles as the error-value carrier. A
// Null with an empty Err is "plain"; non-empty is an "error null".
type Null struct {
	Err   string
	Where *Where
}

// NewNull returns a plain null.
func NewNull() *Null { return &Null{} }

// NewError returns an error null whose text is "code:msg" (§7).
func NewError(code, msg string) *Null {
	return &Null{Err: code + ":" + msg}
}

// NewErrorAt is NewError with a source position attached for diagnostics.
func NewErrorAt(code, msg string, where *Where) *Null {
	return &Null{Err: code + ":" + msg, Where: where}
}

func (n *Null) Tag() Tag { return TagNull }

func (n *Null) Copy(keep func(Value) bool) Value {
	if n == nil {
		return NewNull()
	}
	cp := *n
	if n.Where != nil {
		w := *n.Where
		cp.Where = &w
	}
	return &cp
}

func (n *Null) String() string {
	if n.IsError() {
		return "null(" + n.Err + ")"
	}
	return "null"
}

// IsError reports whether this null carries diagnostic text.
func (n *Null) IsError() bool { return n != nil && n.Err != "" }

// Bool is a JSON boolean.
type Bool bool

func (b Bool) Tag() Tag                        { return TagBool }
func (b Bool) Copy(keep func(Value) bool) Value { return b }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is a UTF-8 JSON string.
type String string

func (s String) Tag() Tag                        { return TagString }
func (s String) Copy(keep func(Value) bool) Value { return s }
func (s String) String() string                   { return string(s) }

// Number holds either a textual form copied from source, or a binary int
// or float form. Equality always compares by binary value regardless of
// which representation is present.
type Number struct {
	Text     string // textual form, if parsed from source; "" if synthesized
	IsFloat  bool
	IsBinary bool // true once I or F holds the authoritative value
	I        int64
	F        float64
}

// NewNumberText builds a Number from source text, parsing it to populate
// the binary form lazily on first use via Float()/Int().
func NewNumberText(text string) *Number {
	return &Number{Text: text}
}

// NewInt builds a binary integer Number.
func NewInt(i int64) *Number {
	return &Number{IsBinary: true, I: i}
}

// NewFloat builds a binary floating-point Number.
func NewFloat(f float64) *Number {
	return &Number{IsBinary: true, IsFloat: true, F: f}
}

func (n *Number) Tag() Tag { return TagNumber }

func (n *Number) Copy(keep func(Value) bool) Value {
	cp := *n
	return &cp
}

func (n *Number) String() string {
	if n.Text != "" {
		return n.Text
	}
	if n.IsFloat {
		return formatFloat(n.F)
	}
	return fmt.Sprintf("%d", n.I)
}

// Key is an Object member: a name paired with the value it owns. It only
// ever appears as a child of an Object.
type Key struct {
	Name string
	Val  Value

	looseSet bool
	loose    string
}

func NewKey(name string, val Value) *Key {
	return &Key{Name: name, Val: val}
}

func (k *Key) Tag() Tag { return TagKey }

func (k *Key) Copy(keep func(Value) bool) Value {
	var v Value
	if k.Val != nil {
		v = k.Val.Copy(keep)
	}
	return &Key{Name: k.Name, Val: v}
}

func (k *Key) String() string {
	if k.Val == nil {
		return k.Name + ":null"
	}
	return k.Name + ":" + k.Val.String()
}

// Loose returns the cached canonicalized form of the key name, computing
// and caching it on first use.
func (k *Key) Loose() string {
	if !k.looseSet {
		k.loose = mbstring.LooseKey(k.Name)
		k.looseSet = true
	}
	return k.loose
}
