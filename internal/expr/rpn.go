package expr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
)

// EvalRPN reduces a postfix token sequence to one value. The deeper of the
// two popped operands is the left-hand side.
func EvalRPN(rpn []Token) (float64, error) {
	stack := make([]float64, 0, len(rpn))

	for _, t := range rpn {
		if t.Kind == Number {
			stack = append(stack, t.Value)
			continue
		}
		if t.Kind != Operator {
			return 0, fmt.Errorf("unexpected %s token: %w", t.Kind, ErrInvalidExpression)
		}
		if len(stack) < 2 {
			return 0, fmt.Errorf("operator %c is missing an operand: %w", t.Op, ErrInvalidExpression)
		}

		a, b := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		var r float64
		switch t.Op {
		case '+':
			r = a + b
		case '-':
			r = a - b
		case '*':
			r = a * b
		case '/':
			if b == 0 {
				return 0, fmt.Errorf("%g / %g: %w", a, b, ErrDivisionByZero)
			}
			r = a / b
		default:
			return 0, fmt.Errorf("unknown operator %q: %w", t.Op, ErrInvalidExpression)
		}
		stack = append(stack, r)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("%d values left after evaluation: %w", len(stack), ErrInvalidExpression)
	}
	return stack[0], nil
}
