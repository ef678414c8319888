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

// Package evalctx implements the context stack (entity G): a
// parent-linked chain of layers that name lookup, declaration, and
// assignment all walk.
package evalctx

import (
	uuid "github.com/satori/go.uuid"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Flag is a single bit in a layer's capability bitmask (§3.5).
type Flag uint

const (
	NoFree Flag = 1 << iota
	Var
	Const
	Global
	This
	Data
	Args
	NoCache
	Modified
)

// Has reports whether every bit in want is set in f.
func (f Flag) Has(want Flag) bool { return f&want == want }

// AutoloadFunc is invoked on a lookup miss in a layer with NoCache set,
// giving the layer a chance to materialize the name on demand.
type AutoloadFunc func(name string) (value.Value, bool)

// ModifiedFunc is invoked after a successful assignment into a layer.
type ModifiedFunc func(name string, newValue value.Value)

// Layer is one context-stack frame (§3.5 "entity G-layer").
type Layer struct {
	Parent   *Layer
	Data     value.Value
	Flags    Flag
	Autoload AutoloadFunc
	OnModify ModifiedFunc
}

// Context is the live context stack (entity G) for one evaluation.
type Context struct {
	Top   *Layer
	ID    string
	Files *Files
}

// New creates an empty context stack, tagging it with a fresh id for
// diagnostics (per SPEC_FULL.md's ambient-stack note on using uuids to
// tag which stack an error originated from).
func New() *Context {
	id, err := uuid.NewV4()
	if err != nil {
		return &Context{ID: "", Files: newFiles()}
	}
	return &Context{ID: id.String(), Files: newFiles()}
}

// Push adds a new top layer holding data, with the given flags.
func (c *Context) Push(data value.Value, flags Flag) *Layer {
	l := &Layer{Parent: c.Top, Data: data, Flags: flags}
	c.Top = l
	return l
}

// Pop removes the top layer, per §4.G "free top".
func (c *Context) Pop() {
	if c.Top != nil {
		c.Top = c.Top.Parent
	}
}

// Declare adds name=value as a new member of the top layer's data object,
// creating the object if the layer's data isn't one yet.
func (c *Context) Declare(name string, v value.Value) {
	if c.Top == nil {
		c.Push(value.NewObject(), Var)
	}
	obj, ok := c.Top.Data.(*value.Object)
	if !ok {
		obj = value.NewObject()
		c.Top.Data = obj
	}
	obj.Set(name, v)
}

// Resolve walks parent-ward looking for name, invoking each layer's
// Autoload hook on a miss when NoCache is set (§4.G). It returns a deep
// copy (per §4.F.2 "NAME ... returns a deep copy of the hit or plain
// null") and ok=false when nothing is found anywhere in the stack.
func (c *Context) Resolve(name string) (value.Value, bool) {
	for l := c.Top; l != nil; l = l.Parent {
		if obj, ok := l.Data.(*value.Object); ok {
			if hit := obj.Get(name); hit != nil {
				return hit.Copy(nil), true
			}
		}
		if l.Flags.Has(NoCache) && l.Autoload != nil {
			if v, ok := l.Autoload(name); ok {
				return v, true
			}
		}
	}
	return nil, false
}

// ResolveRef is like Resolve but returns the live value with no copy, for
// lvalue chains (§4.F.8) that need to mutate a container in place rather
// than replace it wholesale.
func (c *Context) ResolveRef(name string) (value.Value, bool) {
	for l := c.Top; l != nil; l = l.Parent {
		if obj, ok := l.Data.(*value.Object); ok {
			if hit := obj.Get(name); hit != nil {
				return hit, true
			}
		}
		if l.Flags.Has(NoCache) && l.Autoload != nil {
			if v, ok := l.Autoload(name); ok {
				return v, true
			}
		}
	}
	return nil, false
}

// ResolveLayer is like Resolve but returns the owning layer instead of
// the value. It does not consult Autoload hooks.
func (c *Context) ResolveLayer(name string) (*Layer, bool) {
	for l := c.Top; l != nil; l = l.Parent {
		if obj, ok := l.Data.(*value.Object); ok {
			if obj.Get(name) != nil {
				return l, true
			}
		}
	}
	return nil, false
}

// Assign stores v under name in the first writable layer that already
// declares it, falling back to declaring it fresh in the top layer if
// nothing does (§4.F.8, §4.G). Const layers are skipped.
func (c *Context) Assign(name string, v value.Value) {
	for l := c.Top; l != nil; l = l.Parent {
		if l.Flags.Has(Const) {
			continue
		}
		if obj, ok := l.Data.(*value.Object); ok {
			if obj.Get(name) != nil {
				obj.Set(name, v)
				l.Flags |= Modified
				if l.OnModify != nil {
					l.OnModify(name, v)
				}
				return
			}
		}
	}
	c.Declare(name, v)
}

// This returns the nearest "this" layer's data, or plain null.
func (c *Context) This() value.Value {
	for l := c.Top; l != nil; l = l.Parent {
		if l.Flags.Has(This) {
			return l.Data
		}
	}
	return value.NewNull()
}
