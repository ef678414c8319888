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
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Parse merges a comma/whitespace-delimited option string into section
// (§4.I): "name=value" typed assignment, bare "name"/"noname" booleans,
// bare enum values matched against a "name-list" sibling, and "name.sub="
// nested descent. Returns an error describing the first malformed or
// unknown term.
func (s *Store) Parse(section, settings string) error {
	obj := s.section(section, true)
	return s.parseInto(obj, settings)
}

func (s *Store) parseInto(obj *value.Object, settings string) error {
	for len(settings) > 0 {
		settings = strings.TrimLeft(settings, " \t\n\r,")
		if settings == "" {
			break
		}
		negate := false
		if strings.HasPrefix(settings, "-") {
			negate = true
			settings = settings[1:]
		}
		name, rest := splitIdent(settings)
		if name == "" {
			return ErrMalformed.New(settings)
		}

		switch {
		case strings.HasPrefix(rest, "="):
			rawVal := rest[1:]
			consumed, err := s.assign(obj, name, rawVal)
			if err != nil {
				return err
			}
			settings = rawVal[consumed:]
			continue
		case strings.HasPrefix(rest, "."):
			sub, ok := obj.Get(name).(*value.Object)
			if !ok {
				return ErrUnknownOption.New(name)
			}
			if err := s.parseInto(sub, rest[1:]); err != nil {
				return err
			}
			return nil
		default:
			if err := s.bareTerm(obj, name, negate); err != nil {
				return err
			}
			settings = rest
		}
	}
	return nil
}

// assign handles "name=value", dispatching on the existing member's
// type, and returns how many bytes of value it consumed.
func (s *Store) assign(obj *value.Object, name, rest string) (int, error) {
	existing := obj.Get(name)
	if existing == nil {
		return 0, ErrUnknownOption.New(name)
	}
	switch existing.(type) {
	case value.Bool:
		word, n := splitIdent(rest)
		switch strings.ToLower(word) {
		case "true":
			obj.Set(name, value.Bool(true))
		case "false":
			obj.Set(name, value.Bool(false))
		default:
			return 0, ErrTypeMismatch.New(name, "boolean")
		}
		return n0(rest, n), nil
	case *value.Number:
		word, n := splitToken(rest)
		f, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return 0, ErrTypeMismatch.New(name, "number")
		}
		obj.Set(name, value.NewFloat(f))
		return n0(rest, n), nil
	case value.String:
		word, n := splitToken(rest)
		obj.Set(name, value.String(cast.ToString(word)))
		return n0(rest, n), nil
	case *value.Object:
		// "name=value" where name is an object: space-delimited list of
		// sub-settings for that object (§4.I "format=sh noquote" example).
		sub := existing.(*value.Object)
		if err := s.parseInto(sub, rest); err != nil {
			return 0, err
		}
		return len(rest), nil
	default:
		word, n := splitToken(rest)
		obj.Set(name, value.String(word))
		return n0(rest, n), nil
	}
}

// bareTerm handles a name with no "=value": a boolean flag (set true, or
// false if negated / "no"-prefixed), or an enum value matched against a
// "<name>-list" sibling array, setting the scalar member named by that
// list's own key minus "-list".
func (s *Store) bareTerm(obj *value.Object, name string, negate bool) error {
	if existing := obj.Get(name); existing != nil {
		if _, ok := existing.(value.Bool); ok {
			obj.Set(name, value.Bool(!negate))
			return nil
		}
	}
	if strings.HasPrefix(name, "no") {
		base := name[2:]
		if _, ok := obj.Get(base).(value.Bool); ok {
			obj.Set(base, value.Bool(false))
			return nil
		}
	}
	for _, k := range obj.Keys {
		if !strings.HasSuffix(k.Name, "-list") {
			continue
		}
		scalarName := strings.TrimSuffix(k.Name, "-list")
		list, ok := k.Val.(*value.Array)
		if !ok {
			continue
		}
		found := false
		list.ForEach(func(v value.Value) bool {
			if str, ok := v.(value.String); ok && string(str) == name {
				found = true
				return false
			}
			return true
		})
		if found {
			obj.Set(scalarName, value.String(name))
			return nil
		}
	}
	return ErrUnknownOption.New(name)
}

// splitIdent returns the leading alphanumeric identifier of s and the
// remainder starting right after it.
func splitIdent(s string) (string, string) {
	i := 0
	for i < len(s) && isAlnum(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// splitToken returns a value token: a quoted string (consuming the
// quotes) or a run of non-space, non-comma characters, plus its length
// in bytes.
func splitToken(s string) (string, int) {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		q := s[0]
		for i := 1; i < len(s); i++ {
			if s[i] == '\\' {
				i++
				continue
			}
			if s[i] == q {
				return s[1:i], i + 1
			}
		}
		return s[1:], len(s)
	}
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ',' && s[i] != '\n' {
		i++
	}
	return s[:i], i
}

func n0(s string, n int) int { _ = s; return n }

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
