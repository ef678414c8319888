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

// Package config implements the nested config tree and named styles
// (entity I, §4.I): typed merge/parse of option strings, and save/load
// of the persisted settings tree.
package config

import (
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// ErrUnknownOption backs a malformed or unrecognized "name=value" term.
var ErrUnknownOption = errors.NewKind("unknown option %q")

// ErrTypeMismatch is returned when a setting's value type doesn't match
// the type already stored under that name (§4.I "value type must match
// existing type").
var ErrTypeMismatch = errors.NewKind("option %q expects a %s value")

// ErrMalformed is returned for option strings with no parseable name.
var ErrMalformed = errors.NewKind("malformed option %q")

// Store is the config tree: a nested Object, plus a styles array
// addressable by name (§4.I).
type Store struct {
	Root   *value.Object
	Styles *value.Array
}

// New builds a Store with an empty root and a single "normal" style.
func New() *Store {
	normal := value.NewObject()
	normal.Set("style", value.String("normal"))
	styles := value.NewArray(normal)
	root := value.NewObject()
	root.Set("styles", styles)
	return &Store{Root: root, Styles: styles}
}

// Get returns the value at (section, key); section may be "" for the
// top level, and may contain "." to descend into nested objects (§4.I
// "name.sub=... descends into an object sub-section").
func (s *Store) Get(section, key string) value.Value {
	obj := s.section(section, false)
	if obj == nil {
		return nil
	}
	return obj.Get(key)
}

// Set installs value under (section, key), creating intermediate
// sections as needed. THIS FUNCTION DOESN'T VERIFY TYPES; use Parse for
// the typed-merge entry point.
func (s *Store) Set(section, key string, v value.Value) {
	obj := s.section(section, true)
	obj.Set(key, v)
}

// section resolves a dotted section path under Root, creating missing
// intermediate objects when create is true.
func (s *Store) section(path string, create bool) *value.Object {
	obj := s.Root
	if path == "" {
		return obj
	}
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			name := path[start:i]
			next := obj.Get(name)
			sub, ok := next.(*value.Object)
			if !ok {
				if !create {
					return nil
				}
				sub = value.NewObject()
				obj.Set(name, sub)
			}
			obj = sub
			start = i + 1
		}
	}
	return obj
}
