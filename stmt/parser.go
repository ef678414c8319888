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

// CommandLookup resolves a statement's leading keyword to its Command,
// mirroring how expr.Resolver resolves a call's FuncRef. Satisfied by
// registry.Registry so stmt never imports registry (§6 "commands ...
// registered via a hook").
type CommandLookup interface {
	LookupCommand(keyword string) (*Command, bool)
}

// Parser turns source text into a statement tree. It owns its own rune
// cursor (statements are delimited by keywords and ';'/'{'/'}', which
// expr's tokenizer already recognizes) and hands balanced expression
// substrings off to expr.Parse.
type Parser struct {
	src      []rune
	pos      int
	lookup   CommandLookup
	resolver expr.Resolver
}

// NewParser builds a statement parser over src. lookup resolves command
// keywords; resolver resolves function names for embedded expressions
// (may be nil).
func NewParser(src string, lookup CommandLookup, resolver expr.Resolver) *Parser {
	return &Parser{src: []rune(src), lookup: lookup, resolver: resolver}
}

// Parse parses the whole source as a sequence of statements, returning
// the head of the linked "next" chain.
func (p *Parser) Parse() (*Node, error) {
	return p.parseSequence("")
}

// parseSequence parses statements until EOF or, when closer is
// non-empty, a punctuation token equal to closer (consumed).
func (p *Parser) parseSequence(closer string) (*Node, error) {
	var head, tail *Node
	for {
		p.skipSpace()
		if p.atEOF() {
			break
		}
		if closer != "" && p.peekPunct(closer) {
			p.advancePunct(closer)
			break
		}
		n, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		if head == nil {
			head = n
		} else {
			tail.Next = n
		}
		tail = n
	}
	return head, nil
}

// parseBlock parses a "{" statement* "}" block, or, if the next token
// isn't "{", a single statement (§3.6: a block is just a nested Node
// chain via Sub).
func (p *Parser) parseBlock() (*Node, error) {
	p.skipSpace()
	if p.peekPunct("{") {
		p.advancePunct("{")
		return p.parseSequence("}")
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() (*Node, error) {
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
		return nil, nil
	}
	where := p.where()
	if kw, ok := p.peekIdent(); ok {
		if cmd, ok := p.lookup.LookupCommand(kw); ok {
			p.advanceIdent(kw)
			n, err := cmd.ArgParser(p)
			if err != nil {
				return nil, err
			}
			if n != nil {
				n.Where = where
				n.Command = cmd
			}
			return n, nil
		}
	}
	return p.parseExprStatement(where)
}

// parseExprStatement parses a bare expression followed by an optional
// ';', used for both naked expressions and assignment statements (§4.F.8
// assignment is just an operator within an ordinary expression).
func (p *Parser) parseExprStatement(where value.Where) (*Node, error) {
	src, consumed := p.scanBalanced(";}")
	e, err := expr.Parse(src, p.resolver)
	if err != nil {
		return nil, ErrExpectedExpr.New(err.Error())
	}
	p.pos += consumed
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
	}
	return &Node{Where: where, Expr: e}, nil
}

// ParseExpr parses a single embedded expression (an if/while condition,
// a for-loop clause, a return value, ...), stopping at the first rune of
// stopSet found at bracket depth 0 (the caller consumes the stop token
// itself).
func (p *Parser) ParseExpr(stopSet string) (*expr.Node, error) {
	p.skipSpace()
	src, consumed := p.scanBalanced(stopSet)
	e, err := expr.Parse(src, p.resolver)
	if err != nil {
		return nil, ErrExpectedExpr.New(err.Error())
	}
	p.pos += consumed
	return e, nil
}

// scanBalanced returns the source slice from the current position up to
// (not including) the first rune in stopSet encountered at bracket depth
// 0, respecting quoted strings. It never crosses EOF.
func (p *Parser) scanBalanced(stopSet string) (string, int) {
	depth := 0
	i := p.pos
	inStr := rune(0)
	for i < len(p.src) {
		c := p.src[i]
		if inStr != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == inStr {
				inStr = 0
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			inStr = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 && containsRune(stopSet, c) {
				return string(p.src[p.pos:i]), i - p.pos
			}
			depth--
		default:
			if depth == 0 && containsRune(stopSet, c) {
				return string(p.src[p.pos:i]), i - p.pos
			}
		}
		i++
	}
	return string(p.src[p.pos:i]), i - p.pos
}

func containsRune(set string, r rune) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}

func (p *Parser) where() value.Where {
	return value.Where{Offset: p.pos}
}

func (p *Parser) atEOF() bool {
	p.skipSpace()
	return p.pos >= len(p.src)
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		break
	}
}

func (p *Parser) peekPunct(s string) bool {
	p.skipSpace()
	r := []rune(s)
	if p.pos+len(r) > len(p.src) {
		return false
	}
	for i, c := range r {
		if p.src[p.pos+i] != c {
			return false
		}
	}
	return true
}

func (p *Parser) advancePunct(s string) { p.pos += len([]rune(s)) }

func (p *Parser) peekIdent() (string, bool) {
	p.skipSpace()
	start := p.pos
	i := start
	for i < len(p.src) && (isIdentPart(p.src[i])) {
		i++
	}
	if i == start {
		return "", false
	}
	return string(p.src[start:i]), true
}

func (p *Parser) advanceIdent(s string) { p.pos += len([]rune(s)) }

func isIdentPart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
