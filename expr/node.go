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

// Package expr implements the expression tokenizer and parser (entity E):
// a shunting-yard parser that turns source text into the tagged-union
// expression tree (entity E-out) the eval package walks.
package expr

import "github.com/kirkendall/jsoncalc-sub001/value"

// Op identifies which variant of the expression tree a Node is.
type Op int

const (
	OpLiteral Op = iota
	OpName
	OpEnvVar
	OpArray
	OpObject
	OpObjectMember // name:value pair inside an OpObject, with optional "?:" null-skip
	OpUnaryMinus
	OpBitNot
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpStrictEq
	OpNe
	OpStrictNe
	OpLt
	OpLe
	OpGe
	OpGt
	OpCaseEq  // =*
	OpCaseNe  // !=*
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBetween
	OpLike
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull
	OpTernary  // ?:
	OpCoalesce // ??
	OpRange    // …
	OpMember      // a.b
	OpDeepMember  // a..b
	OpIndex       // a[i]
	OpIndexKV     // a[k:v]
	OpCall
	OpRegex
	OpAG // aggregate-wrap
	OpSelect
	OpEach      // @  (WHERE-shaped each/filter, §4.F.6)
	OpGroupEach // @@ (GROUP BY-shaped each, §4.F.6)
	OpJoin      // @=, @<, @>
	OpAssign
	OpAssignIfNotNull // ?=
	OpAppend          // <<
)

// Node is the tagged-union expression tree node (entity E-out). Only the
// fields relevant to Op are populated; unrelated fields stay zero.
type Node struct {
	Op    Op
	Where value.Where

	// OpLiteral
	Literal value.Value

	// OpName, OpEnvVar, OpMember, OpDeepMember
	Name string

	// binary/unary operators, OpIndex, OpIndexKV, OpTernary, OpCoalesce
	Left  *Node
	Right *Node
	Third *Node // OpTernary's else-branch, OpIndexKV's value side

	// OpArray, OpObject: child list (OpObject holds OpObjectMember children)
	Children []*Node

	// OpObjectMember
	SkipIfNull bool

	// OpCall
	Func *FuncRef
	Args []*Node

	// OpRegex
	RegexSrc    string
	RegexGlobal bool
	RegexIgnore bool

	// OpAG
	Inner    *Node
	AGSites  []*Node // aggregate call sites in evaluation order
	AGOffset []int   // per-site storage offset within the shared scratch

	// OpSelect
	Select *SelectNode

	// OpJoin
	Join JoinKind
}

// FuncRef is the parser-resolved descriptor attached to an OpCall node
// (§4.F.7): which implementation kind to dispatch to and how much
// per-call aggregate scratch it needs.
type FuncRef struct {
	Name      string
	Kind      FuncKind
	AGSize    int
	FreeValue bool // agdata is a value.Value to Copy/free
}

// FuncKind distinguishes the three call-dispatch paths of §4.F.7.
type FuncKind int

const (
	FuncBuiltin FuncKind = iota
	FuncAggregate
	FuncUser
)

// SortKey is one ORDER BY term: an expression plus a descending flag.
type SortKey struct {
	Expr       *Node
	Descending bool
}

// SelectNode is the parsed SELECT pipeline (§4.F.6), lowered by eval into
// a composition of its primitive operators.
type SelectNode struct {
	Columns  []*Node // result expressions (each may carry an AS alias via Node.Name)
	From     *Node   // nil ⇒ default table
	Where    *Node
	GroupBy  []*Node
	Having   *Node
	OrderBy  []SortKey
	Limit    *Node
	Distinct bool
	Join     *JoinNode // not set by the parser; a join in FROM is an OpJoin node in From
}

// JoinKind distinguishes the three join operators of §4.F.6.
type JoinKind int

const (
	JoinNatural JoinKind = iota // @=
	JoinLeft                    // @<
	JoinRight                   // @>
)

// JoinNode pairs two table-valued expressions under a join operator.
type JoinNode struct {
	Kind  JoinKind
	Left  *Node
	Right *Node
}
