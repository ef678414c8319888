// Copyright 2020-2022 Dolthub, Inc.
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

// This is an example of how to run jsoncalc in batch mode: read a
// script file named on argv, run it against a fresh engine, and print
// whatever it returns.
//
// > jsoncalc script.jc
//
// The interactive shell, its readline-backed history file, and a full
// CLI flag parser are explicitly out of scope (spec.md §1) and are an
// external host's concern; this is the minimal wiring an embedder
// needs to drive the engine from a file on disk.
package main

import (
	"fmt"
	"os"

	"github.com/kirkendall/jsoncalc-sub001/jsonio"
	"github.com/kirkendall/jsoncalc-sub001/stmt"
	jsoncalc "github.com/kirkendall/jsoncalc-sub001"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jsoncalc script.jc")
		os.Exit(2)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	engine := jsoncalc.NewDefault()
	defer engine.Close()

	out, err := engine.Run(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch out.Kind {
	case stmt.OutcomeReturn:
		fmt.Println(jsonio.Serialize(out.Value, engine.Format))
	case stmt.OutcomeError:
		fmt.Fprintf(os.Stderr, "%s:%d: %s\n", out.Where.File, out.Where.Line, out.Err)
		os.Exit(1)
	}
}
