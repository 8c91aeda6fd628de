// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package formula

import (
	"fmt"
	"unicode"
)

// Parse turns surface syntax into a formula tree.
//
// Grammar, loosest-binding first:
//
//	implies := or ('→' implies)?        right-associative
//	or      := and ('∨' and)*
//	and     := unary ('∧' unary)*
//	unary   := ('¬' | '□' | '◇') unary | '(' implies ')' | proposition
//
// ASCII aliases are accepted alongside the Unicode operators:
// '~' or '!' for ¬, '&' for ∧, '|' for ∨, "->" for →, "[]" for □ and
// "<>" for ◇. A proposition is any whitespace-free token containing none
// of the operator or parenthesis symbols.
func Parse(input string) (Formula, error) {
	p := &parser{input: []rune(input)}
	p.next()
	f, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("unexpected %q", p.tok.text)}
	}
	return f, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokProp
	tokNot
	tokBox
	tokDiamond
	tokAnd
	tokOr
	tokImplies
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	input []rune
	pos   int
	tok   token
}

// isOperatorRune reports whether r can never appear inside a proposition
// token. The ASCII alias characters count as operator symbols.
func isOperatorRune(r rune) bool {
	switch r {
	case '¬', '□', '◇', '∧', '∨', '→', '(', ')', '~', '!', '&', '|', '-', '>', '<', '[', ']':
		return true
	}
	return false
}

// next advances to the following token.
func (p *parser) next() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.input) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}

	r := p.input[p.pos]
	two := ""
	if p.pos+1 < len(p.input) {
		two = string(p.input[p.pos : p.pos+2])
	}

	switch {
	case r == '¬' || r == '~' || r == '!':
		p.pos++
		p.tok = token{kind: tokNot, text: string(r), pos: start}
	case r == '□':
		p.pos++
		p.tok = token{kind: tokBox, text: string(r), pos: start}
	case r == '◇':
		p.pos++
		p.tok = token{kind: tokDiamond, text: string(r), pos: start}
	case two == "[]":
		p.pos += 2
		p.tok = token{kind: tokBox, text: two, pos: start}
	case two == "<>":
		p.pos += 2
		p.tok = token{kind: tokDiamond, text: two, pos: start}
	case r == '∧' || r == '&':
		p.pos++
		p.tok = token{kind: tokAnd, text: string(r), pos: start}
	case r == '∨' || r == '|':
		p.pos++
		p.tok = token{kind: tokOr, text: string(r), pos: start}
	case r == '→':
		p.pos++
		p.tok = token{kind: tokImplies, text: string(r), pos: start}
	case two == "->":
		p.pos += 2
		p.tok = token{kind: tokImplies, text: two, pos: start}
	case r == '(':
		p.pos++
		p.tok = token{kind: tokLParen, text: "(", pos: start}
	case r == ')':
		p.pos++
		p.tok = token{kind: tokRParen, text: ")", pos: start}
	case isOperatorRune(r):
		// A lone alias character that forms no valid operator, e.g. '>'.
		p.pos++
		p.tok = token{kind: tokEOF, text: string(r), pos: start}
	default:
		for p.pos < len(p.input) && !unicode.IsSpace(p.input[p.pos]) && !isOperatorRune(p.input[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tokProp, text: string(p.input[start:p.pos]), pos: start}
	}
}

func (p *parser) parseImplies() (Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokImplies {
		p.next()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return Implies(left, right)
	}
	return left, nil
}

func (p *parser) parseOr() (Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left, err = Or(left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseAnd() (Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left, err = And(left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Formula, error) {
	switch p.tok.kind {
	case tokNot:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(operand)
	case tokBox:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Box(operand)
	case tokDiamond:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Diamond(operand)
	case tokLParen:
		open := p.tok.pos
		p.next()
		inner, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, &ParseError{Pos: open, Msg: "unclosed parenthesis"}
		}
		p.next()
		return inner, nil
	case tokProp:
		name := p.tok.text
		p.next()
		return Prop(name)
	case tokEOF:
		if p.tok.text != "" {
			return nil, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("unexpected symbol %q", p.tok.text)}
		}
		return nil, &ParseError{Pos: p.tok.pos, Msg: "unexpected end of input"}
	default:
		return nil, &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("unexpected %q", p.tok.text)}
	}
}
