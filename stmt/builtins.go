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

// Builtins returns the control-flow primitives §4.H calls out as
// "themselves commands registered this way": if/while/for/break/
// continue/return/var/const/function. The registry package merges these
// into its command table alongside any user/plugin-registered commands.
func Builtins() map[string]*Command {
	return map[string]*Command{
		"if":       {Keyword: "if", ArgParser: ifArgParser, Run: ifRunner},
		"while":    {Keyword: "while", ArgParser: whileArgParser, Run: whileRunner},
		"for":      {Keyword: "for", ArgParser: forArgParser, Run: forRunner},
		"break":    {Keyword: "break", ArgParser: breakArgParser, Run: breakRunner},
		"continue": {Keyword: "continue", ArgParser: continueArgParser, Run: continueRunner},
		"return":   {Keyword: "return", ArgParser: returnArgParser, Run: returnRunner},
		"var":      {Keyword: "var", ArgParser: declArgParser(FlagVar), Run: declRunner},
		"const":    {Keyword: "const", ArgParser: declArgParser(FlagConst), Run: declRunner},
		"function": {Keyword: "function", ArgParser: functionArgParser, Run: functionRunner},
	}
}

func ifArgParser(p *Parser) (*Node, error) {
	cond, err := parseParenExpr(p)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &Node{Expr: cond, Sub: then}
	p.skipSpace()
	if kw, ok := p.peekIdent(); ok && kw == "else" {
		p.advanceIdent(kw)
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		n.More = els
	}
	return n, nil
}

func ifRunner(n *Node, rc *RunContext) Outcome {
	if value.IsTrue(rc.Eval.Eval(n.Expr)) {
		return Run(n.Sub, rc)
	}
	if n.More != nil {
		return Run(n.More, rc)
	}
	return Next()
}

func whileArgParser(p *Parser) (*Node, error) {
	cond, err := parseParenExpr(p)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Node{Expr: cond, Sub: body}, nil
}

func whileRunner(n *Node, rc *RunContext) Outcome {
	for value.IsTrue(rc.Eval.Eval(n.Expr)) {
		if rc.Eval.Interrupt != nil && *rc.Eval.Interrupt {
			return Error(n.Where, "intr", "Interrupted")
		}
		out := Run(n.Sub, rc)
		switch out.Kind {
		case OutcomeBreak:
			return Next()
		case OutcomeContinue:
			continue
		case OutcomeReturn, OutcomeError:
			return out
		}
	}
	return Next()
}

func forArgParser(p *Parser) (*Node, error) {
	if !p.peekPunct("(") {
		return nil, ErrExpectedExpr.New("expected '(' after for")
	}
	p.advancePunct("(")
	var init *expr.Node
	if !p.peekPunct(";") {
		e, err := p.ParseExpr(";")
		if err != nil {
			return nil, err
		}
		init = e
	}
	if !p.peekPunct(";") {
		return nil, ErrExpectedExpr.New("expected ';' in for")
	}
	p.advancePunct(";")
	var cond *expr.Node
	if !p.peekPunct(";") {
		e, err := p.ParseExpr(";")
		if err != nil {
			return nil, err
		}
		cond = e
	}
	if !p.peekPunct(";") {
		return nil, ErrExpectedExpr.New("expected ';' in for")
	}
	p.advancePunct(";")
	var post *expr.Node
	if !p.peekPunct(")") {
		e, err := p.ParseExpr(")")
		if err != nil {
			return nil, err
		}
		post = e
	}
	if !p.peekPunct(")") {
		return nil, ErrExpectedExpr.New("expected ')' in for")
	}
	p.advancePunct(")")
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Node{Expr: cond, Init: init, Post: post, Sub: body}, nil
}

func forRunner(n *Node, rc *RunContext) Outcome {
	if n.Init != nil {
		rc.Eval.Eval(n.Init)
	}
	for n.Expr == nil || value.IsTrue(rc.Eval.Eval(n.Expr)) {
		if rc.Eval.Interrupt != nil && *rc.Eval.Interrupt {
			return Error(n.Where, "intr", "Interrupted")
		}
		out := Run(n.Sub, rc)
		switch out.Kind {
		case OutcomeBreak:
			return Next()
		case OutcomeReturn, OutcomeError:
			return out
		}
		if n.Post != nil {
			rc.Eval.Eval(n.Post)
		}
	}
	return Next()
}

func breakArgParser(p *Parser) (*Node, error) {
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
	}
	return &Node{}, nil
}
func breakRunner(n *Node, rc *RunContext) Outcome { return Break() }

func continueArgParser(p *Parser) (*Node, error) {
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
	}
	return &Node{}, nil
}
func continueRunner(n *Node, rc *RunContext) Outcome { return Continue() }

func returnArgParser(p *Parser) (*Node, error) {
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
		return &Node{}, nil
	}
	e, err := p.ParseExpr(";")
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peekPunct(";") {
		p.advancePunct(";")
	}
	return &Node{Expr: e}, nil
}

func returnRunner(n *Node, rc *RunContext) Outcome {
	if n.Expr == nil {
		return Return(value.NewNull())
	}
	return Return(rc.Eval.Eval(n.Expr))
}

func declArgParser(flag DeclFlags) func(p *Parser) (*Node, error) {
	return func(p *Parser) (*Node, error) {
		name, ok := p.peekIdent()
		if !ok {
			return nil, ErrExpectedExpr.New("expected identifier after var/const")
		}
		p.advanceIdent(name)
		p.skipSpace()
		var e *expr.Node
		if p.peekPunct("=") {
			p.advancePunct("=")
			var err error
			e, err = p.ParseExpr(";")
			if err != nil {
				return nil, err
			}
		}
		p.skipSpace()
		if p.peekPunct(";") {
			p.advancePunct(";")
		}
		return &Node{Name: name, Flags: flag, Expr: e}, nil
	}
}

func declRunner(n *Node, rc *RunContext) Outcome {
	var v value.Value = value.NewNull()
	if n.Expr != nil {
		v = rc.Eval.Eval(n.Expr)
	}
	rc.Ctx.Declare(n.Name, v)
	return Next()
}

func functionArgParser(p *Parser) (*Node, error) {
	name, ok := p.peekIdent()
	if !ok {
		return nil, ErrExpectedExpr.New("expected function name")
	}
	p.advanceIdent(name)
	p.skipSpace()
	if !p.peekPunct("(") {
		return nil, ErrExpectedExpr.New("expected '(' after function name")
	}
	p.advancePunct("(")
	var params []string
	for !p.peekPunct(")") {
		pn, ok := p.peekIdent()
		if !ok {
			return nil, ErrExpectedExpr.New("expected parameter name")
		}
		p.advanceIdent(pn)
		params = append(params, pn)
		p.skipSpace()
		if p.peekPunct(",") {
			p.advancePunct(",")
			continue
		}
		break
	}
	if !p.peekPunct(")") {
		return nil, ErrExpectedExpr.New("expected ')' after parameter list")
	}
	p.advancePunct(")")
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Node{Name: name, Flags: FlagFunction, Params: params, Sub: body}, nil
}

func functionRunner(n *Node, rc *RunContext) Outcome {
	if rc.RegisterUser != nil {
		rc.RegisterUser(n.Name, n.Params, n.Sub)
	}
	return Next()
}

func parseParenExpr(p *Parser) (*expr.Node, error) {
	if !p.peekPunct("(") {
		return nil, ErrExpectedExpr.New("expected '(' after keyword")
	}
	p.advancePunct("(")
	cond, err := p.ParseExpr(")")
	if err != nil {
		return nil, err
	}
	if !p.peekPunct(")") {
		return nil, ErrExpectedExpr.New("expected ')'")
	}
	p.advancePunct(")")
	return cond, nil
}
