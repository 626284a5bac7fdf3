// SPDX-License-Identifier: MIT
package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses src. A single leading "=" is ignored.
func Parse(src string) (Node, error) {
	src = strings.TrimSpace(src)
	src = strings.TrimPrefix(src, "=")
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyFormula
	}

	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("%w %q at %d", ErrUnexpectedToken, tok.Value, tok.Pos)
	}

	return node, nil
}

func (p *Parser) current() Token { return p.tokens[p.pos] }

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}

	return tok
}

// matchOp consumes the current token when it is one of ops (operator or
// keyword, keywords case-insensitive) and returns its normalized spelling.
func (p *Parser) matchOp(ops ...string) (string, bool) {
	tok := p.current()
	var val string
	switch tok.Type {
	case TokenOp:
		val = tok.Value
	case TokenIdent:
		// a keyword followed by "(" is a call, not an operator
		if p.tokens[p.pos+1].Type == TokenLeftParen {
			return "", false
		}
		val = strings.ToUpper(tok.Value)
	default:
		return "", false
	}
	for _, op := range ops {
		if val == op {
			p.advance()
			return normalizeOp(val), true
		}
	}

	return "", false
}

func normalizeOp(op string) string {
	switch op {
	case "=":
		return "=="
	case "<>":
		return "!="
	case "AND":
		return "&&"
	case "OR":
		return "||"
	case "NOT":
		return "!"
	}

	return op
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (Node, error), ops ...string) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOp(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseOr() (Node, error) {
	return p.binaryLevel(p.parseAnd, "||", "OR")
}

func (p *Parser) parseAnd() (Node, error) {
	return p.binaryLevel(p.parseEquality, "&&", "AND")
}

func (p *Parser) parseEquality() (Node, error) {
	return p.binaryLevel(p.parseComparison, "==", "=", "!=", "<>")
}

func (p *Parser) parseComparison() (Node, error) {
	return p.binaryLevel(p.parseAdditive, ">=", "<=", ">", "<")
}

func (p *Parser) parseAdditive() (Node, error) {
	return p.binaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (Node, error) {
	return p.binaryLevel(p.parsePower, "*", "/", "%")
}

// parsePower is right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.matchOp("^"); !ok {
		return base, nil
	}
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &BinaryNode{Op: "^", Left: base, Right: exp}, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if op, ok := p.matchOp("-", "+", "!", "NOT"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Operand: operand}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q at %d", ErrUnexpectedToken, tok.Value, tok.Pos)
		}
		return &NumberNode{Value: v}, nil

	case TokenString:
		return &StringNode{Value: tok.Value}, nil

	case TokenRef:
		return &RefNode{Code: tok.Value}, nil

	case TokenIdent:
		if p.current().Type == TokenLeftParen {
			p.advance()
			return p.parseCall(strings.ToUpper(tok.Value))
		}
		return &IdentNode{Name: tok.Value}, nil

	case TokenLeftParen:
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.Type != TokenRightParen {
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrUnexpectedToken, closing.Pos)
		}
		return node, nil

	case TokenEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrUnexpectedToken)
	}

	return nil, fmt.Errorf("%w %q at %d", ErrUnexpectedToken, tok.Value, tok.Pos)
}

// parseCall parses arguments after the opening parenthesis.
func (p *Parser) parseCall(name string) (Node, error) {
	call := &CallNode{Name: name}
	if p.current().Type == TokenRightParen {
		p.advance()
		return call, nil
	}
	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		tok := p.advance()
		switch tok.Type {
		case TokenRightParen:
			return call, nil
		case TokenComma:
			continue
		}
		return nil, fmt.Errorf("%w: expected ',' or ')' in %s at %d", ErrUnexpectedToken, name, tok.Pos)
	}
}
