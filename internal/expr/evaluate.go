package expr

import (
	"fmt"
	"math"
	"strings"
)

// Evaluate runs the whole pipeline on s. Trailing operators are dropped
// first, so "3+" evaluates to 3.
func Evaluate(s string) (float64, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "+-*/")

	v, err := EvalRPN(ToRPN(Tokenize(s)))
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("result out of range: %w", ErrInvalidExpression)
	}
	return v, nil
}
