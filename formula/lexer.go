// SPDX-License-Identifier: MIT
package formula

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenRef
	TokenIdent
	TokenOp
	TokenComma
	TokenLeftParen
	TokenRightParen
)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // rune offset in input
}

// multi-character operators, longest first.
var operators = []string{"||", "&&", "==", "!=", "<>", ">=", "<=", ">", "<", "=", "+", "-", "*", "/", "%", "^", "!"}

// Lexer tokenizes formula expressions
type Lexer struct {
	runes []rune
	pos   int
}

// Tokenize splits src into tokens, ending with TokenEOF.
func Tokenize(src string) ([]Token, error) {
	lx := &Lexer{runes: []rune(src)}
	var out []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == TokenEOF {
			return out, nil
		}
	}
}

func (l *Lexer) peek(off int) rune {
	if l.pos+off >= len(l.runes) {
		return 0
	}

	return l.runes[l.pos+off]
}

func (l *Lexer) next() (Token, error) {
	for l.pos < len(l.runes) && unicode.IsSpace(l.runes[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.runes) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.runes[l.pos]
	switch {
	case ch == '(':
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil
	case ch == ')':
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil
	case ch == ',' || ch == ';':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil
	case ch == '"' || ch == '\'':
		return l.readString(ch)
	case ch == '[':
		return l.readRef()
	case unicode.IsDigit(ch) || (ch == '.' && unicode.IsDigit(l.peek(1))):
		return l.readNumber(), nil
	case unicode.IsLetter(ch) || ch == '_':
		return l.readIdent(), nil
	}

	rest := string(l.runes[l.pos:])
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			l.pos += len([]rune(op))
			return Token{Type: TokenOp, Value: op, Pos: start}, nil
		}
	}

	return Token{}, fmt.Errorf("%w %q at %d", ErrUnexpectedChar, ch, start)
}

// readString reads a quoted literal; a doubled quote escapes itself.
func (l *Lexer) readString(quote rune) (Token, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.runes) {
		ch := l.runes[l.pos]
		if ch == quote {
			if l.peek(1) == quote {
				sb.WriteRune(quote)
				l.pos += 2
				continue
			}
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
		}
		sb.WriteRune(ch)
		l.pos++
	}

	return Token{}, fmt.Errorf("%w: string at %d", ErrUnterminated, start)
}

// readRef reads "[code]"; the code is trimmed and may contain any rune but ']'.
func (l *Lexer) readRef() (Token, error) {
	start := l.pos
	end := start + 1
	for end < len(l.runes) && l.runes[end] != ']' {
		end++
	}
	if end >= len(l.runes) {
		return Token{}, fmt.Errorf("%w: reference at %d", ErrUnterminated, start)
	}
	code := strings.TrimSpace(string(l.runes[start+1 : end]))
	l.pos = end + 1

	return Token{Type: TokenRef, Value: code, Pos: start}, nil
}

func (l *Lexer) readNumber() Token {
	start := l.pos
	for l.pos < len(l.runes) && (unicode.IsDigit(l.runes[l.pos]) || l.runes[l.pos] == '.') {
		l.pos++
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		off := 1
		if s := l.peek(1); s == '+' || s == '-' {
			off = 2
		}
		if unicode.IsDigit(l.peek(off)) {
			l.pos += off
			for l.pos < len(l.runes) && unicode.IsDigit(l.runes[l.pos]) {
				l.pos++
			}
		}
	}

	return Token{Type: TokenNumber, Value: string(l.runes[start:l.pos]), Pos: start}
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.runes) {
		ch := l.runes[l.pos]
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' && ch != '.' {
			break
		}
		l.pos++
	}

	return Token{Type: TokenIdent, Value: string(l.runes[start:l.pos]), Pos: start}
}
