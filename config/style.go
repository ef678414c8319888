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

package config

import (
	"strings"

	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Style returns the named entry in config.styles, case-insensitively. If
// it doesn't exist, it's created by cloning "normal" (styles[0]) and
// naming the clone, matching §4.I "either returns an existing entry or
// clones normal into a new named entry".
func (s *Store) Style(name string) *value.Object {
	var found *value.Object
	s.Styles.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		styleName, _ := obj.Get("style").(value.String)
		if mbstring.LooseKey(string(styleName)) == mbstring.LooseKey(name) {
			found = obj
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	normal, _ := s.Styles.At(0).(*value.Object)
	clone, _ := normal.Copy(nil).(*value.Object)
	clone.Set("style", value.String(name))
	s.Styles.Append(clone)
	return clone
}

// StyleExists reports whether name is already a defined style
// (case-insensitively), without creating one.
func (s *Store) StyleExists(name string) bool {
	exists := false
	s.Styles.ForEach(func(v value.Value) bool {
		obj, ok := v.(*value.Object)
		if !ok {
			return true
		}
		styleName, _ := obj.Get("style").(value.String)
		if strings.EqualFold(string(styleName), name) {
			exists = true
			return false
		}
		return true
	})
	return exists
}
