// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parser is a recursive-descent parser over the tokens of one expression.
//
// Grammar, from the lowest to the highest precedence:
//
//	conditional    = comparison [ "?" conditional ":" conditional ]
//	comparison     = additive { ("<" | "<=" | ">" | ">=" | "==" | "!=" | "===" | "!==") additive }
//	additive       = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = unary { ("*" | "/" | "%") unary }
//	unary          = ("+" | "-") unary | power
//	power          = postfix [ ("^" | "**") unary ]
//	postfix        = primary [ "(" [ conditional { "," conditional } ] ")" ]
//	primary        = number | [ "Math" "." ] identifier | "(" conditional ")"
type parser struct {
	tokens []token
	next   int
}

func (p *parser) peek() token { return p.tokens[p.next] }

func (p *parser) advance() token {
	tok := p.tokens[p.next]
	if tok.kind != tokEOF {
		p.next++
	}
	return tok
}

// accept consumes the next token if it is one of the given operators.
func (p *parser) accept(ops ...string) (token, bool) {
	tok := p.peek()
	if tok.kind == tokOp && slices.Contains(ops, tok.text) {
		p.next++
		return tok, true
	}
	return tok, false
}

func (p *parser) expect(op string) token {
	tok, ok := p.accept(op)
	if !ok {
		throwAt(tok.pos, "expected %q, got %s", op, tok)
	}
	return tok
}

// parse the whole expression: all tokens must be consumed.
func (p *parser) parse() node {
	if p.peek().kind == tokEOF {
		return nanNode{}
	}
	root := p.conditional()
	if tok := p.peek(); tok.kind != tokEOF {
		throwAt(tok.pos, "unexpected %s", tok)
	}
	return root
}

func (p *parser) conditional() node {
	cond := p.comparison()
	if _, ok := p.accept("?"); !ok {
		return cond
	}
	then := p.conditional()
	p.expect(":")
	otherwise := p.conditional()
	return &conditionalNode{cond: cond, then: then, otherwise: otherwise}
}

func (p *parser) binaryLoop(operand func() node, ops ...string) node {
	left := operand()
	for {
		tok, ok := p.accept(ops...)
		if !ok {
			return left
		}
		left = &binaryNode{op: tok.text, pos: tok.pos, left: left, right: operand()}
	}
}

func (p *parser) comparison() node {
	return p.binaryLoop(p.additive, "<", "<=", ">", ">=", "==", "!=", "===", "!==")
}

func (p *parser) additive() node {
	return p.binaryLoop(p.multiplicative, "+", "-")
}

func (p *parser) multiplicative() node {
	return p.binaryLoop(p.unary, "*", "/", "%")
}

func (p *parser) unary() node {
	if tok, ok := p.accept("+", "-"); ok {
		return &unaryNode{op: tok.text, operand: p.unary()}
	}
	return p.power()
}

func (p *parser) power() node {
	base := p.postfix()
	tok, ok := p.accept("^", "**")
	if !ok {
		return base
	}
	return &binaryNode{op: tok.text, pos: tok.pos, left: base, right: p.unary()}
}

func (p *parser) postfix() node {
	start := p.peek()
	primary := p.primary()
	open := p.peek()
	if open.kind != tokOp || open.text != "(" {
		return primary
	}
	ident, isIdent := primary.(*identNode)
	if !isIdent || start.kind != tokIdent {
		throwAt(open.pos, "only named functions can be called")
	}
	p.advance()
	call := &callNode{name: ident.name, pos: ident.pos}
	if _, closed := p.accept(")"); closed {
		return call
	}
	for {
		call.args = append(call.args, p.conditional())
		if _, more := p.accept(","); !more {
			break
		}
	}
	p.expect(")")
	return call
}

func (p *parser) primary() node {
	tok := p.advance()
	switch tok.kind {
	case tokNumber:
		return &numberNode{value: parseNumber(tok)}
	case tokIdent:
		if tok.text == MathPrefix {
			p.expect(".")
			member := p.advance()
			if member.kind != tokIdent {
				throwAt(member.pos, "expected a member of %s, got %s", MathPrefix, member)
			}
			return &identNode{name: member.text, pos: member.pos}
		}
		return &identNode{name: tok.text, pos: tok.pos}
	case tokOp:
		if tok.text == "(" {
			inner := p.conditional()
			p.expect(")")
			return inner
		}
	}
	throwAt(tok.pos, "unexpected %s", tok)
	return nil
}

// parseNumber converts a number literal: integers in any Go/JavaScript base, or decimal floats.
// As in JavaScript, a leading 0 followed by non-octal digits is decimal ("08" is 8), and literals
// too large for a float64 become +Inf.
func parseNumber(tok token) float64 {
	i, err := strconv.ParseInt(tok.text, 0, 64)
	if err == nil {
		return float64(i)
	}
	if errors.Is(err, strconv.ErrRange) {
		if wide, ok := new(big.Int).SetString(tok.text, 0); ok {
			f, _ := new(big.Float).SetInt(wide).Float64()
			return f
		}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok.text, "_", ""), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v
		}
		throwAt(tok.pos, "invalid number %q", tok.text)
	}
	return v
}
