package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalRPNOperandOrder(t *testing.T) {
	v, err := EvalRPN([]Token{Num(10), Num(4), Op('-')})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = EvalRPN([]Token{Num(10), Num(4), Op('/')})
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestEvalRPNFailures(t *testing.T) {
	tests := []struct {
		name string
		rpn  []Token
		want error
	}{
		{name: "empty", rpn: nil, want: ErrInvalidExpression},
		{name: "operator underflow", rpn: []Token{Num(1), Op('+')}, want: ErrInvalidExpression},
		{name: "too many operands", rpn: []Token{Num(1), Num(2)}, want: ErrInvalidExpression},
		{name: "paren in rpn", rpn: []Token{{Kind: OpenParen}}, want: ErrInvalidExpression},
		{name: "divide by zero", rpn: []Token{Num(6), Num(0), Op('/')}, want: ErrDivisionByZero},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EvalRPN(tc.rpn)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
