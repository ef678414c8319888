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

package expr

import (
	"regexp"
	"strings"

	pkgerrors "github.com/pkg/errors"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/kirkendall/jsoncalc-sub001/value"
)

// ErrParse reports a parser failure at a byte offset (§4.E "errors are
// reported with a source position").
var ErrParse = errors.NewKind("parse error at offset %d: %s")

// Resolver looks up a function name at parse time to attach a FuncRef
// (§4.F.7). It is supplied by the registry package; a nil Resolver makes
// every call resolve as FuncBuiltin with zero aggregate storage, which is
// enough for expressions with no aggregate/user functions.
type Resolver interface {
	ResolveFunc(name string) *FuncRef
}

// Parser turns source text into an expression tree (entity E).
type Parser struct {
	lex      *Lexer
	resolver Resolver
	tok      Token
	lastKind int // 0 = none, 1 = value-producing (so '/' means divide)
	agSites  []*Node
	err      error
}

// Parse compiles src into an expression tree. On failure it returns a nil
// tree and a non-nil error (§4.E).
func Parse(src string, resolver Resolver) (*Node, error) {
	p := &Parser{lex: NewLexer(src), resolver: resolver}
	if err := p.advance(); err != nil {
		return nil, pkgerrors.Wrap(err, "jsoncalc: parse")
	}
	n, err := p.parseAssign()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "jsoncalc: parse")
	}
	if p.tok.Kind != TokEOF {
		return nil, pkgerrors.Wrap(ErrParse.New(p.tok.Offset, "unexpected trailing input: "+p.tok.Text), "jsoncalc: parse")
	}
	if len(p.agSites) > 0 {
		n = wrapAG(n, p.agSites)
	}
	return n, nil
}

// wrapAG builds the §3.2/§4.E "AG node": a single aggregate-folding point
// carrying every aggregate callsite the parse collected, in evaluation
// order, with a storage offset reserved for each.
func wrapAG(inner *Node, sites []*Node) *Node {
	offsets := make([]int, len(sites))
	off := 0
	for i, s := range sites {
		offsets[i] = off
		if s.Func != nil {
			off += s.Func.AGSize
		}
	}
	return &Node{Op: OpAG, Inner: inner, AGSites: sites, AGOffset: offsets}
}

func (p *Parser) advance() error {
	// '/' following a value-producing token means divide, not regex.
	regexOK := p.lastKind != 1
	tok, err := p.lex.Next(regexOK)
	if err != nil {
		return err
	}
	p.tok = tok
	switch tok.Kind {
	case TokNumber, TokString, TokIdent, TokRegex:
		p.lastKind = 1
	case TokPunct:
		if tok.Text == ")" || tok.Text == "]" || tok.Text == "}" {
			p.lastKind = 1
		} else {
			p.lastKind = 0
		}
	default:
		p.lastKind = 0
	}
	return nil
}

func (p *Parser) isPunct(s string) bool { return p.tok.Kind == TokPunct && p.tok.Text == s }
func (p *Parser) isKeyword(s string) bool {
	return p.tok.Kind == TokKeyword && p.tok.Text == s
}

func (p *Parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return ErrParse.New(p.tok.Offset, "expected '"+s+"'")
	}
	return p.advance()
}

// checkpoint is a rewindable parse position, including the lexer's byte
// offset (the lexer is referenced by pointer, so copying *Parser alone
// does not capture its mutable scan position).
type checkpoint struct {
	tok      Token
	lastKind int
	lexPos   int
}

func (p *Parser) mark() checkpoint {
	return checkpoint{tok: p.tok, lastKind: p.lastKind, lexPos: p.lex.pos}
}

func (p *Parser) rewind(c checkpoint) {
	p.tok = c.tok
	p.lastKind = c.lastKind
	p.lex.pos = c.lexPos
}

// --- precedence tiers, loose to tight (§4.E) ---

func (p *Parser) parseAssign() (*Node, error) {
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isPunct("="):
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpAssign, Left: left, Right: right}, nil
	case p.isPunct("?="):
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpAssignIfNotNull, Left: left, Right: right}, nil
	case p.isPunct("<<"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpAppend, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseTernary() (*Node, error) {
	cond, err := p.parseEach()
	if err != nil {
		return nil, err
	}
	if p.isPunct("??") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		alt, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpCoalesce, Left: cond, Right: alt}, nil
	}
	if p.isPunct("?") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		then, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		els, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpTernary, Left: cond, Right: then, Third: els}, nil
	}
	return cond, nil
}

var joinOps = map[string]JoinKind{"@=": JoinNatural, "@<": JoinLeft, "@>": JoinRight}

func isJoinOp(s string) bool { _, ok := joinOps[s]; return ok }

// parseEach implements the '@' (each/WHERE-shaped), '@@' (GROUP BY-shaped)
// and '@=' / '@<' / '@>' (join) operators (§4.E, §4.F.6), used both
// standalone (e.g. "[1,2,3,4] @ this * 2") and as SELECT's lowering
// target.
func (p *Parser) parseEach() (*Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct("@"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpEach, Left: left, Right: right}
		case p.isPunct("@@"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpGroupEach, Left: left, Right: right}
		case p.tok.Kind == TokPunct && isJoinOp(p.tok.Text):
			kind := joinOps[p.tok.Text]
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpJoin, Join: kind, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (*Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (*Node, error) {
	if p.isKeyword("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpNot, Right: right}, nil
	}
	return p.parseComparison()
}

var compareOps = map[string]Op{
	"==": OpEq, "===": OpStrictEq, "!=": OpNe, "!==": OpStrictNe,
	"<": OpLt, "<=": OpLe, ">=": OpGe, ">": OpGt,
	"=*": OpCaseEq, "!=*": OpCaseNe,
}

func (p *Parser) parseComparison() (*Node, error) {
	left, err := p.parseBetweenLikeIn()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == TokPunct {
		if op, ok := compareOps[p.tok.Text]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseBetweenLikeIn()
			if err != nil {
				return nil, err
			}
			return &Node{Op: op, Left: left, Right: right}, nil
		}
	}
	return left, nil
}

func (p *Parser) parseBetweenLikeIn() (*Node, error) {
	left, err := p.parseBitwise()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isKeyword("between"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			lo, err := p.parseBitwise()
			if err != nil {
				return nil, err
			}
			if !p.isKeyword("and") {
				return nil, ErrParse.New(p.tok.Offset, "expected AND in BETWEEN")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			hi, err := p.parseBitwise()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpBetween, Left: left, Right: lo, Third: hi}
		case p.isKeyword("like"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			pat, err := p.parseBitwise()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpLike, Left: left, Right: pat}
		case p.isKeyword("in"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			set, err := p.parseBitwise()
			if err != nil {
				return nil, err
			}
			left = &Node{Op: OpIn, Left: left, Right: set}
		case p.isKeyword("not"):
			// lookahead for "not in"; anything else belongs to parseNot.
			save := p.mark()
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.isKeyword("in") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				set, err := p.parseBitwise()
				if err != nil {
					return nil, err
				}
				left = &Node{Op: OpNotIn, Left: left, Right: set}
				continue
			}
			p.rewind(save)
			return left, nil
		case p.isKeyword("is"):
			save := p.mark()
			if err := p.advance(); err != nil {
				return nil, err
			}
			negate := false
			if p.isKeyword("not") {
				negate = true
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			if p.isKeyword("null") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				if negate {
					left = &Node{Op: OpIsNotNull, Left: left}
				} else {
					left = &Node{Op: OpIsNull, Left: left}
				}
				continue
			}
			p.rewind(save)
			return left, nil
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseBitwise() (*Node, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch {
		case p.isPunct("&"):
			op = OpBitAnd
		case p.isPunct("|"):
			op = OpBitOr
		case p.isPunct("^"):
			op = OpBitXor
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseRange() (*Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.isPunct("…") || p.isPunct("...") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: OpRange, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (*Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch {
		case p.isPunct("+"):
			op = OpAdd
		case p.isPunct("-"):
			op = OpSub
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch {
		case p.isPunct("*"):
			op = OpMul
		case p.isPunct("/"):
			op = OpDiv
		case p.isPunct("%"):
			op = OpMod
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Node{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (*Node, error) {
	if p.isPunct("-") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpUnaryMinus, Right: right}, nil
	}
	if p.isPunct("~") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Op: OpBitNot, Right: right}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (*Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct(".."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != TokIdent && p.tok.Kind != TokKeyword {
				return nil, ErrParse.New(p.tok.Offset, "expected name after '..'")
			}
			name := p.tok.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
			left = &Node{Op: OpDeepMember, Left: left, Name: name}
		case p.isPunct("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != TokIdent && p.tok.Kind != TokKeyword {
				return nil, ErrParse.New(p.tok.Offset, "expected name after '.'")
			}
			name := p.tok.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.isPunct("(") {
				// x.f(args) -> f(x, args) (§4.E transform).
				call, err := p.parseCallArgs(name)
				if err != nil {
					return nil, err
				}
				call.Args = append([]*Node{left}, call.Args...)
				left = call
				continue
			}
			left = &Node{Op: OpMember, Left: left, Name: name}
		case p.isPunct("["):
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			if p.isPunct(":") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				val, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				if err := p.expectPunct("]"); err != nil {
					return nil, err
				}
				left = &Node{Op: OpIndexKV, Left: left, Right: idx, Third: val}
				continue
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			left = &Node{Op: OpIndex, Left: left, Right: idx}
		default:
			return left, nil
		}
	}
}

// parseCallArgs parses "(" arg, arg, ... ")" for a call already known to
// be named name, resolving its FuncRef and recording an aggregate
// callsite if the resolver says so (§4.F.7, §4.E AG-wrapping).
func (p *Parser) parseCallArgs(name string) (*Node, error) {
	if err := p.advance(); err != nil { // '('
		return nil, err
	}
	var args []*Node
	if !p.isPunct(")") {
		for {
			a, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.isPunct(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	var ref *FuncRef
	if p.resolver != nil {
		ref = p.resolver.ResolveFunc(name)
	}
	if ref == nil {
		ref = &FuncRef{Name: name, Kind: FuncBuiltin}
	}
	call := &Node{Op: OpCall, Name: name, Func: ref, Args: args}
	if ref.Kind == FuncAggregate {
		p.agSites = append(p.agSites, call)
	}
	return call, nil
}

func (p *Parser) parsePrimary() (*Node, error) {
	switch p.tok.Kind {
	case TokNumber:
		n := value.NewNumberText(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Op: OpLiteral, Literal: n}, nil
	case TokString:
		s := value.String(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Op: OpLiteral, Literal: s}, nil
	case TokRegex:
		parts := strings.SplitN(p.tok.Text, "\x00", 2)
		src, flags := parts[0], ""
		if len(parts) > 1 {
			flags = parts[1]
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := regexp.Compile(src); err != nil {
			return nil, ErrParse.New(p.tok.Offset, "invalid regex: "+err.Error())
		}
		return &Node{
			Op: OpRegex, RegexSrc: src,
			RegexGlobal: strings.Contains(flags, "g"),
			RegexIgnore: strings.Contains(flags, "i"),
		}, nil
	case TokKeyword:
		switch p.tok.Text {
		case "null":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Node{Op: OpLiteral, Literal: value.NewNull()}, nil
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Node{Op: OpLiteral, Literal: value.Bool(true)}, nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Node{Op: OpLiteral, Literal: value.Bool(false)}, nil
		case "select":
			return p.parseSelect()
		}
		return nil, ErrParse.New(p.tok.Offset, "unexpected keyword: "+p.tok.Text)
	case TokIdent:
		name := p.tok.Text
		if strings.HasPrefix(name, "$") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.isPunct("[") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				suffix, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				if err := p.expectPunct("]"); err != nil {
					return nil, err
				}
				return &Node{Op: OpEnvVar, Name: strings.TrimPrefix(name, "$"), Right: suffix}, nil
			}
			return &Node{Op: OpEnvVar, Name: strings.TrimPrefix(name, "$")}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.isPunct("(") {
			return p.parseCallArgs(name)
		}
		return &Node{Op: OpName, Name: name}, nil
	case TokPunct:
		switch p.tok.Text {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		}
	}
	return nil, ErrParse.New(p.tok.Offset, "unexpected token: "+p.tok.Text)
}

func (p *Parser) parseArrayLiteral() (*Node, error) {
	if err := p.advance(); err != nil { // '['
		return nil, err
	}
	n := &Node{Op: OpArray}
	if p.isPunct("]") {
		return n, p.advance()
	}
	for {
		e, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, e)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return n, p.expectPunct("]")
}

func (p *Parser) parseObjectLiteral() (*Node, error) {
	if err := p.advance(); err != nil { // '{'
		return nil, err
	}
	n := &Node{Op: OpObject}
	if p.isPunct("}") {
		return n, p.advance()
	}
	for {
		var name string
		switch p.tok.Kind {
		case TokString, TokIdent, TokKeyword:
			name = p.tok.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return nil, ErrParse.New(p.tok.Offset, "expected object key")
		}
		skip := false
		if p.isPunct("?:") {
			skip = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		val, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, &Node{Op: OpObjectMember, Name: name, Right: val, SkipIfNull: skip})
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return n, p.expectPunct("}")
}

func (p *Parser) parseSelect() (*Node, error) {
	if err := p.advance(); err != nil { // 'select'
		return nil, err
	}
	sel := &SelectNode{}
	if p.isKeyword("distinct") {
		sel.Distinct = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	for {
		col, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("as") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != TokIdent && p.tok.Kind != TokString {
				return nil, ErrParse.New(p.tok.Offset, "expected alias after AS")
			}
			col = &Node{Op: OpObjectMember, Name: p.tok.Text, Right: col}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		sel.Columns = append(sel.Columns, col)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.isKeyword("from") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		from, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		sel.From = from
	}
	if p.isKeyword("where") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		w, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		sel.Where = w
	}
	if p.isKeyword("group") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.isKeyword("by") {
			return nil, ErrParse.New(p.tok.Offset, "expected BY after GROUP")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			g, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			sel.GroupBy = append(sel.GroupBy, g)
			if p.isPunct(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if p.isKeyword("having") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		h, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		sel.Having = h
	}
	if p.isKeyword("order") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.isKeyword("by") {
			return nil, ErrParse.New(p.tok.Offset, "expected BY after ORDER")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			desc := false
			if p.isKeyword("true") {
				desc = true
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else if p.isKeyword("descending") {
				desc = true
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
			k, err := p.parseAssign()
			if err != nil {
				return nil, err
			}
			sel.OrderBy = append(sel.OrderBy, SortKey{Expr: k, Descending: desc})
			if p.isPunct(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if p.isKeyword("limit") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		lim, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		sel.Limit = lim
	}
	return &Node{Op: OpSelect, Select: sel}, nil
}
