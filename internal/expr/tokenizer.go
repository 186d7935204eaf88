package expr

import "strconv"

// Tokenize scans s left to right. A run of digits holding at most one '.'
// is a single Number; each of "()+-*/" is its own token. Any other byte is
// skipped, as is a run that is only a '.'.
func Tokenize(s string) []Token {
	var tokens []Token

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case isDigit(c) || c == '.':
			j, dot := i, false
			for j < len(s) && (isDigit(s[j]) || (s[j] == '.' && !dot)) {
				if s[j] == '.' {
					dot = true
				}
				j++
			}
			if lit := s[i:j]; lit != "." {
				// out of range literals come back as ±Inf and fail evaluation
				v, _ := strconv.ParseFloat(lit, 64)
				tokens = append(tokens, Num(v))
			}
			i = j
		case IsOperator(c):
			tokens = append(tokens, Op(c))
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: OpenParen})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: CloseParen})
			i++
		default:
			i++
		}
	}

	return tokens
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
