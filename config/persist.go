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
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// omittedNames lists the persisted-state exclusions §6 names by key,
// "batch" and "pluginloaded"; toPlain also skips every "-list" key.
var omittedNames = map[string]bool{"batch": true, "pluginloaded": true}

// Save writes the config tree to path as YAML, skipping any member whose
// key ends in "-list" or is named "batch"/"pluginloaded" (§6 "Persisted
// state").
func (s *Store) Save(path string) error {
	plain := toPlain(s.Root)
	out, err := yaml.Marshal(plain)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, out, 0644)
}

// Load reads path as YAML and merges it into the Store's root, creating
// sections/keys as needed (types are inferred from the YAML scalars, not
// validated against any pre-existing member).
func (s *Store) Load(path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	var plain map[string]interface{}
	if err := yaml.Unmarshal(raw, &plain); err != nil {
		return err
	}
	mergePlain(s.Root, plain)
	return nil
}

func toPlain(obj *value.Object) map[string]interface{} {
	out := map[string]interface{}{}
	for _, k := range obj.Keys {
		if omittedNames[k.Name] || strings.HasSuffix(k.Name, "-list") {
			continue
		}
		out[k.Name] = toPlainValue(k.Val)
	}
	return out
}

func toPlainValue(v value.Value) interface{} {
	switch t := v.(type) {
	case *value.Object:
		return toPlain(t)
	case *value.Array:
		elems := t.Elems()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			out[i] = toPlainValue(e)
		}
		return out
	case value.String:
		return string(t)
	case value.Bool:
		return bool(t)
	case *value.Number:
		return t.Float()
	default:
		return nil
	}
}

func mergePlain(obj *value.Object, plain map[string]interface{}) {
	for k, v := range plain {
		switch t := v.(type) {
		case map[interface{}]interface{}:
			sub, ok := obj.Get(k).(*value.Object)
			if !ok {
				sub = value.NewObject()
				obj.Set(k, sub)
			}
			mergePlain(sub, toStringKeyed(t))
		case map[string]interface{}:
			sub, ok := obj.Get(k).(*value.Object)
			if !ok {
				sub = value.NewObject()
				obj.Set(k, sub)
			}
			mergePlain(sub, t)
		case []interface{}:
			arr := value.NewArray()
			for _, e := range t {
				arr.Append(fromPlainValue(e))
			}
			obj.Set(k, arr)
		default:
			obj.Set(k, fromPlainValue(v))
		}
	}
}

func toStringKeyed(m map[interface{}]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if ks, ok := k.(string); ok {
			out[ks] = v
		}
	}
	return out
}

func fromPlainValue(v interface{}) value.Value {
	switch t := v.(type) {
	case string:
		return value.String(t)
	case bool:
		return value.Bool(t)
	case int:
		return value.NewInt(int64(t))
	case float64:
		return value.NewFloat(t)
	case nil:
		return value.NewNull()
	case map[interface{}]interface{}:
		sub := value.NewObject()
		mergePlain(sub, toStringKeyed(t))
		return sub
	case []interface{}:
		arr := value.NewArray()
		for _, e := range t {
			arr.Append(fromPlainValue(e))
		}
		return arr
	default:
		return value.NewNull()
	}
}
