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

import "github.com/kirkendall/jsoncalc-sub001/mbstring"

// Object is an ordered sequence of Key children. Lookup tries an exact
// (case-sensitive) match first, then falls back to a loose match.
type Object struct {
	Keys []*Key
}

// NewObject builds an object from the given keys, in order.
func NewObject(keys ...*Key) *Object {
	return &Object{Keys: keys}
}

func (o *Object) Tag() Tag { return TagObject }

func (o *Object) Copy(keep func(Value) bool) Value {
	cp := &Object{Keys: make([]*Key, 0, len(o.Keys))}
	for _, k := range o.Keys {
		if keep != nil && !keep(k.Val) {
			continue
		}
		cp.Keys = append(cp.Keys, k.Copy(nil).(*Key))
	}
	return cp
}

func (o *Object) String() string {
	s := "{"
	for i, k := range o.Keys {
		if i > 0 {
			s += ","
		}
		s += k.String()
	}
	return s + "}"
}

// Append adds v appends a non-Key to an object, which is an error per
// §4.A. Use Set to add or replace a named member.
func (o *Object) Append(v Value) error {
	k, ok := v.(*Key)
	if !ok {
		return ErrAppendNonKey.New(v.Tag())
	}
	o.Set(k.Name, k.Val)
	return nil
}

// Set adds a new member, or replaces the value of an existing
// same-named Key (exact match only; this never disturbs loose-match
// siblings).
func (o *Object) Set(name string, v Value) {
	for _, k := range o.Keys {
		if k.Name == name {
			k.Val = v
			return
		}
	}
	o.Keys = append(o.Keys, NewKey(name, v))
}

// Get looks up a member by exact name, then by loose name, returning nil
// if neither matches.
func (o *Object) Get(name string) Value {
	for _, k := range o.Keys {
		if k.Name == name {
			return k.Val
		}
	}
	loose := mbstring.LooseKey(name)
	for _, k := range o.Keys {
		if k.Loose() == loose {
			return k.Val
		}
	}
	return nil
}

// GetKey is like Get but returns the owning Key node (or nil).
func (o *Object) GetKey(name string) *Key {
	for _, k := range o.Keys {
		if k.Name == name {
			return k
		}
	}
	loose := mbstring.LooseKey(name)
	for _, k := range o.Keys {
		if k.Loose() == loose {
			return k
		}
	}
	return nil
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.Keys) }
