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
	"strconv"
	"strings"
)

// Float returns the Number's value as a float64, parsing the textual form
// on first use and caching the binary result.
func (n *Number) Float() float64 {
	n.materialize()
	if n.IsFloat {
		return n.F
	}
	return float64(n.I)
}

// Int returns the Number's value truncated to an int64, parsing the
// textual form on first use.
func (n *Number) Int() int64 {
	n.materialize()
	if n.IsFloat {
		return int64(n.F)
	}
	return n.I
}

func (n *Number) materialize() {
	if n.IsBinary {
		return
	}
	text := strings.TrimSpace(n.Text)
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			n.F, n.IsFloat = f, true
		}
	} else {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			n.I = i
		} else if f, ferr := strconv.ParseFloat(text, 64); ferr == nil {
			n.F, n.IsFloat = f, true
		}
	}
	n.IsBinary = true
}

// ParseClean attempts to parse s as a number for "==" coercion purposes.
// It reports whether the parse consumed the entire (trimmed) string.
func ParseClean(s string) (*Number, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, false
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return NewInt(i), true
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return NewFloat(f), true
	}
	return nil, false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
