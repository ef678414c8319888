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
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrLex reports a tokenizer failure at a byte offset.
var ErrLex = errors.NewKind("lex error at offset %d: %s")

// TokKind classifies a lexed token.
type TokKind int

const (
	TokEOF TokKind = iota
	TokNumber
	TokString
	TokIdent
	TokKeyword
	TokRegex
	TokPunct
)

// Token is one lexed unit, with its source offset for error reporting.
type Token struct {
	Kind   TokKind
	Text   string
	Offset int
}

var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "group": true, "by": true,
	"having": true, "order": true, "descending": true, "limit": true,
	"distinct": true, "as": true, "between": true, "like": true, "in": true,
	"not": true, "is": true, "null": true, "true": true, "false": true,
	"and": true, "or": true, "values": true,
}

// multi-char punctuation, longest first so the scanner is greedy.
var puncts = []string{
	"===", "!==", "!=*", "?:", "??", "...", "..", "==", "!=", "<=", ">=",
	"=*", "@@", "@=", "@<", "@>", "?=", "<<", "…",
	"(", ")", "[", "]", "{", "}", ",", ":", ";", ".", "?", "=",
	"<", ">", "+", "-", "*", "/", "%", "&", "|", "^", "~", "@", "$",
}

// Lexer turns source text into a token stream.
type Lexer struct {
	src []rune
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

func (l *Lexer) byteOffset() int {
	return len(string(l.src[:l.pos]))
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.pos++
			continue
		}
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
			l.pos += 2
			for l.pos+1 < len(l.src) && !(l.src[l.pos] == '*' && l.src[l.pos+1] == '/') {
				l.pos++
			}
			l.pos += 2
			continue
		}
		return
	}
}

// Next returns the next token, allowing the caller to hint whether a
// leading '/' should be lexed as a regex literal (true after an operator
// or '(', false after a value-producing token where '/' means division).
func (l *Lexer) Next(regexOK bool) (Token, error) {
	l.skipSpace()
	start := l.byteOffset()
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Offset: start}, nil
	}
	c := l.src[l.pos]

	if c == '"' || c == '\'' {
		return l.lexString(c, start)
	}
	if isDigit(c) {
		return l.lexNumber(start)
	}
	if isIdentStart(c) {
		return l.lexIdent(start)
	}
	if c == '$' {
		return l.lexEnvVar(start)
	}
	if c == '/' && regexOK {
		return l.lexRegex(start)
	}
	return l.lexPunct(start)
}

func (l *Lexer) lexString(quote rune, start int) (Token, error) {
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			b.WriteRune(l.src[l.pos])
			l.pos++
		}
		b.WriteRune(l.src[l.pos])
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{}, ErrLex.New(start, "unterminated string")
	}
	l.pos++ // closing quote
	return Token{Kind: TokString, Text: b.String(), Offset: start}, nil
}

func (l *Lexer) lexNumber(start int) (Token, error) {
	s := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && !(l.pos+1 < len(l.src) && l.src[l.pos+1] == '.') {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	return Token{Kind: TokNumber, Text: string(l.src[s:l.pos]), Offset: start}, nil
}

func (l *Lexer) lexIdent(start int) (Token, error) {
	s := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[s:l.pos])
	if keywords[strings.ToLower(text)] {
		return Token{Kind: TokKeyword, Text: strings.ToLower(text), Offset: start}, nil
	}
	return Token{Kind: TokIdent, Text: text, Offset: start}, nil
}

func (l *Lexer) lexEnvVar(start int) (Token, error) {
	l.pos++ // '$'
	s := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokIdent, Text: "$" + string(l.src[s:l.pos]), Offset: start}, nil
}

func (l *Lexer) lexRegex(start int) (Token, error) {
	l.pos++ // opening '/'
	s := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '/' {
		if l.src[l.pos] == '\\' {
			l.pos++
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{}, ErrLex.New(start, "unterminated regex")
	}
	pattern := string(l.src[s:l.pos])
	l.pos++ // closing '/'
	flagStart := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] == 'g' || l.src[l.pos] == 'i') {
		l.pos++
	}
	flags := string(l.src[flagStart:l.pos])
	return Token{Kind: TokRegex, Text: pattern + "\x00" + flags, Offset: start}, nil
}

func (l *Lexer) lexPunct(start int) (Token, error) {
	rest := string(l.src[l.pos:])
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len([]rune(p))
			return Token{Kind: TokPunct, Text: p, Offset: start}, nil
		}
	}
	return Token{}, ErrLex.New(start, "unrecognized character")
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c > 127
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
