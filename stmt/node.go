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

package stmt

import (
	"github.com/kirkendall/jsoncalc-sub001/expr"
	"github.com/kirkendall/jsoncalc-sub001/value"
)

// Node is one statement in the statement tree (entity H-out, §3.6): a
// command descriptor plus up to three linked children. "sub" holds a
// nested block (if/while/for body, function body), "more" holds an
// alternate branch (if's else), and "next" chains to the following
// statement in the same block.
type Node struct {
	Where value.Where

	Command *Command
	Name    string // declared variable/function name, when applicable
	Flags   DeclFlags
	Expr    *expr.Node // condition/argument expression, when applicable

	Params []string // function's formal parameter names
	Init   *expr.Node // for-loop init clause
	Post   *expr.Node // for-loop post clause

	Sub  *Node // nested block
	More *Node // else-branch / alternate
	Next *Node // following statement
}

// DeclFlags qualifies a declaration statement (var/const/function).
type DeclFlags uint

const (
	FlagNone DeclFlags = 0
	FlagVar  DeclFlags = 1 << iota
	FlagConst
	FlagFunction
)

// Has reports whether all bits of want are set in f.
func (f DeclFlags) Has(want DeclFlags) bool { return f&want == want }

// Command is a registered statement kind: a keyword plus the two
// callbacks §4.H requires, an argparser to build a Node from source and
// a runner to execute one.
type Command struct {
	Keyword   string
	ArgParser func(p *Parser) (*Node, error)
	Run       func(n *Node, ctx *RunContext) Outcome
}

// OutcomeKind distinguishes the four §4.H statement outcomes.
type OutcomeKind int

const (
	OutcomeNext OutcomeKind = iota // continue to the following statement
	OutcomeBreak
	OutcomeContinue
	OutcomeReturn
	OutcomeError
)

// Outcome is the result of running one statement node.
type Outcome struct {
	Kind  OutcomeKind
	Value value.Value // OutcomeReturn's result
	Where value.Where // OutcomeError's source position
	Err   string       // OutcomeError's "code:message" text
}

// Next is the zero-value outcome: proceed to the following statement.
func Next() Outcome { return Outcome{Kind: OutcomeNext} }

// Break produces a BREAK outcome.
func Break() Outcome { return Outcome{Kind: OutcomeBreak} }

// Continue produces a CONTINUE outcome.
func Continue() Outcome { return Outcome{Kind: OutcomeContinue} }

// Return produces a RETURN outcome carrying v.
func Return(v value.Value) Outcome { return Outcome{Kind: OutcomeReturn, Value: v} }

// Error produces an ERROR outcome, mirroring the "code:message" error
// null convention used throughout value/eval.
func Error(where value.Where, code, msg string) Outcome {
	return Outcome{Kind: OutcomeError, Where: where, Err: code + ":" + msg}
}
