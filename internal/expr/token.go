// Package expr tokenizes, converts and evaluates the arithmetic expressions
// produced by the calculator keypad.
package expr

import (
	"strconv"
	"strings"
)

// Kind tags a Token.
type Kind int

const (
	Number Kind = iota
	Operator
	OpenParen
	CloseParen
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case OpenParen:
		return "open_paren"
	case CloseParen:
		return "close_paren"
	}
	return "unknown"
}

// Token is one lexical element of an expression. Value is set for Number
// tokens, Op for Operator tokens.
type Token struct {
	Kind  Kind
	Value float64
	Op    byte
}

func Num(v float64) Token { return Token{Kind: Number, Value: v} }

func Op(op byte) Token { return Token{Kind: Operator, Op: op} }

// IsOperator reports whether c is one of the four binary operators.
func IsOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case Operator:
		return string(t.Op)
	case OpenParen:
		return "("
	case CloseParen:
		return ")"
	}
	return "?"
}

// Join renders tokens separated by single spaces. Used for logs and span
// attributes.
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
