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

package registry

import (
	"math"
	"strings"

	"github.com/kirkendall/jsoncalc-sub001/eval"
	"github.com/kirkendall/jsoncalc-sub001/mbstring"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// installBuiltins registers the scalar and aggregate function library a
// fresh Registry starts with, the way the teacher's engine wires its
// function registry full of builtins at catalog-creation time (see
// sql/expression/function's registration list). These are ordinary
// registrations through RegisterFunction/RegisterAggregate — a plugin
// or an embedder can shadow any of them later.
func installBuiltins(r *Registry) {
	for name, fn := range scalarBuiltins {
		r.RegisterFunction(name, fn)
	}
	for name, agg := range aggregateBuiltins {
		r.RegisterAggregate(name, agg, 1)
	}
}

func asNumber(v value.Value) (*value.Number, bool) {
	n, ok := v.(*value.Number)
	return n, ok
}

var scalarBuiltins = map[string]eval.BuiltinFunc{
	"abs": func(args []value.Value, _ eval.CallExtra) value.Value {
		if len(args) != 1 {
			return value.NewError("args", "abs() takes one argument")
		}
		n, ok := asNumber(args[0])
		if !ok {
			return value.NewError("type", "abs() requires a number")
		}
		return value.NewFloat(math.Abs(n.Float()))
	},
	"floor": func(args []value.Value, _ eval.CallExtra) value.Value {
		n, ok := asNumber(argOrNil(args, 0))
		if !ok {
			return value.NewError("type", "floor() requires a number")
		}
		return value.NewFloat(math.Floor(n.Float()))
	},
	"ceil": func(args []value.Value, _ eval.CallExtra) value.Value {
		n, ok := asNumber(argOrNil(args, 0))
		if !ok {
			return value.NewError("type", "ceil() requires a number")
		}
		return value.NewFloat(math.Ceil(n.Float()))
	},
	"round": func(args []value.Value, _ eval.CallExtra) value.Value {
		n, ok := asNumber(argOrNil(args, 0))
		if !ok {
			return value.NewError("type", "round() requires a number")
		}
		return value.NewFloat(math.Round(n.Float()))
	},
	"toUpperCase": func(args []value.Value, _ eval.CallExtra) value.Value {
		s, ok := argOrNil(args, 0).(value.String)
		if !ok {
			return value.NewError("type", "toUpperCase() requires a string")
		}
		return value.String(strings.ToUpper(string(s)))
	},
	"toLowerCase": func(args []value.Value, _ eval.CallExtra) value.Value {
		s, ok := argOrNil(args, 0).(value.String)
		if !ok {
			return value.NewError("type", "toLowerCase() requires a string")
		}
		return value.String(strings.ToLower(string(s)))
	},
	"trim": func(args []value.Value, _ eval.CallExtra) value.Value {
		s, ok := argOrNil(args, 0).(value.String)
		if !ok {
			return value.NewError("type", "trim() requires a string")
		}
		return value.String(strings.TrimSpace(string(s)))
	},
	"typeof": func(args []value.Value, _ eval.CallExtra) value.Value {
		return value.String(value.ExtendedTypeOf(argOrNil(args, 0)))
	},
	"keys": func(args []value.Value, _ eval.CallExtra) value.Value {
		obj, ok := argOrNil(args, 0).(*value.Object)
		if !ok {
			return value.NewError("type", "keys() requires an object")
		}
		out := value.NewArray()
		for _, k := range obj.Keys {
			out.Append(value.String(k.Name))
		}
		return out
	},
	"values": func(args []value.Value, _ eval.CallExtra) value.Value {
		obj, ok := argOrNil(args, 0).(*value.Object)
		if !ok {
			return value.NewError("type", "values() requires an object")
		}
		out := value.NewArray()
		for _, k := range obj.Keys {
			out.Append(k.Val)
		}
		return out
	},
	"like": func(args []value.Value, _ eval.CallExtra) value.Value {
		if len(args) != 2 {
			return value.NewError("args", "like() takes two arguments")
		}
		s, ok1 := args[0].(value.String)
		p, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return value.NewError("type", "like() requires two strings")
		}
		return value.Bool(mbstring.Like(string(s), string(p)))
	},
}

func argOrNil(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.NewNull()
}

var aggregateBuiltins = map[string]eval.AggregateFunc{
	"count": {
		New: func() *eval.AggState { return eval.NewAggState(0) },
		Step: func(state *eval.AggState, row value.Value) {
			if _, isNull := row.(*value.Null); isNull {
				return
			}
			eval.SetAggInt(state, eval.AggInt(state)+1)
		},
		Finalize: func(state *eval.AggState) value.Value {
			return value.NewInt(eval.AggInt(state))
		},
	},
	"sum": {
		New: func() *eval.AggState { return eval.NewAggState(0.0) },
		Step: func(state *eval.AggState, row value.Value) {
			n, ok := asNumber(row)
			if !ok {
				return
			}
			eval.SetAggFloat(state, eval.AggFloat(state)+n.Float())
		},
		Finalize: func(state *eval.AggState) value.Value {
			return value.NewFloat(eval.AggFloat(state))
		},
	},
	"avg": {
		New: func() *eval.AggState { return eval.NewAggState(eval.AvgState{}) },
		Step: func(state *eval.AggState, row value.Value) {
			n, ok := asNumber(row)
			if !ok {
				return
			}
			avg := eval.AggAvg(state)
			avg.Sum += n.Float()
			avg.Count++
			eval.SetAggAvg(state, avg)
		},
		Finalize: func(state *eval.AggState) value.Value {
			avg := eval.AggAvg(state)
			if avg.Count == 0 {
				return value.NewNull()
			}
			return value.NewFloat(avg.Sum / float64(avg.Count))
		},
	},
	"min": {
		New: func() *eval.AggState { return eval.NewAggState(nil) },
		Step: func(state *eval.AggState, row value.Value) {
			cur := eval.AggValue(state)
			if cur == nil {
				eval.SetAggValue(state, row)
				return
			}
			if result, ok := value.Compare(row, cur); ok && result < 0 {
				eval.SetAggValue(state, row)
			}
		},
		Finalize: func(state *eval.AggState) value.Value {
			if v := eval.AggValue(state); v != nil {
				return v
			}
			return value.NewNull()
		},
	},
	"max": {
		New: func() *eval.AggState { return eval.NewAggState(nil) },
		Step: func(state *eval.AggState, row value.Value) {
			cur := eval.AggValue(state)
			if cur == nil {
				eval.SetAggValue(state, row)
				return
			}
			if result, ok := value.Compare(row, cur); ok && result > 0 {
				eval.SetAggValue(state, row)
			}
		},
		Finalize: func(state *eval.AggState) value.Value {
			if v := eval.AggValue(state); v != nil {
				return v
			}
			return value.NewNull()
		},
	},
}
