package expr

var precedence = map[byte]int{'+': 1, '-': 1, '*': 2, '/': 2}

// unaryPrecedence binds a rewritten unary minus tighter than every binary
// operator, so "3*-2" negates 2 before multiplying.
const unaryPrecedence = 3

type stackEntry struct {
	tok  Token
	prec int
}

// ToRPN converts infix tokens to postfix order with the shunting-yard
// algorithm. Parentheses are consumed; a ')' with no matching '(' is
// ignored. A '-' at the start, after an operator or after '(' is a unary
// minus and is emitted as "0 x -".
func ToRPN(tokens []Token) []Token {
	output := make([]Token, 0, len(tokens))
	var ops []stackEntry

	for i, t := range tokens {
		switch t.Kind {
		case Number:
			output = append(output, t)

		case Operator:
			if t.Op == '-' && isUnaryPosition(tokens, i) {
				output = append(output, Num(0))
				ops = append(ops, stackEntry{tok: t, prec: unaryPrecedence})
				continue
			}
			p := precedence[t.Op]
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.tok.Kind == OpenParen || top.prec < p {
					break
				}
				output = append(output, top.tok)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, stackEntry{tok: t, prec: p})

		case OpenParen:
			ops = append(ops, stackEntry{tok: t})

		case CloseParen:
			for len(ops) > 0 && ops[len(ops)-1].tok.Kind != OpenParen {
				output = append(output, ops[len(ops)-1].tok)
				ops = ops[:len(ops)-1]
			}
			if len(ops) > 0 {
				ops = ops[:len(ops)-1]
			}
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		// an unclosed '(' contributes nothing
		if top.tok.Kind == Operator {
			output = append(output, top.tok)
		}
	}

	return output
}

func isUnaryPosition(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return prev.Kind == Operator || prev.Kind == OpenParen
}
