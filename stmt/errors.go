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

// Package stmt implements the statement runtime (entity H): parsing
// source into a linked statement tree and running it against a context
// stack, producing one of the four outcomes §4.H defines.
package stmt

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnknownCommand names a statement whose leading keyword has no
	// registered command. The parser does not return it: such a
	// statement is parsed as an expression statement.
	ErrUnknownCommand = errors.NewKind("unknown statement command %q")

	// ErrExpectedExpr is returned when a command's argparser needed an
	// expression but the parser ran out of tokens or hit a syntax error.
	ErrExpectedExpr = errors.NewKind("expected expression: %s")

	// ErrBreakOutsideLoop describes a BREAK that propagates past the
	// outermost loop of a script (a bare "break;" at top level). Run does
	// not return it; a stray break reaches Run's caller as OutcomeBreak.
	ErrBreakOutsideLoop = errors.NewKind("break outside of a loop")

	// ErrContinueOutsideLoop mirrors ErrBreakOutsideLoop for "continue".
	ErrContinueOutsideLoop = errors.NewKind("continue outside of a loop")
)
