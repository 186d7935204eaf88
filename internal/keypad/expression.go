package keypad

import (
	"fmt"
	"strconv"
	"strings"

	"go-chi-calculator/internal/expr"
)

type itemKind int

const (
	numberItem itemKind = iota
	operatorItem
	openItem
	closeItem
)

type item struct {
	kind itemKind
	text string
	// atomic marks a number loaded from an exponent-notation result. It is
	// never edited character by character.
	atomic bool
}

// Expression is the pending input, kept as typed items rather than raw text
// so the guard never has to rescan characters to find the last token.
// The zero value is an empty expression.
type Expression struct {
	items []item
}

// String returns the expression text exactly as typed, ASCII operators
// included.
func (e *Expression) String() string {
	var b strings.Builder
	for _, it := range e.items {
		b.WriteString(it.text)
	}
	return b.String()
}

// Source returns text suitable for expr.Evaluate. It differs from String
// only for exponent-notation results, which are expanded to plain digits.
func (e *Expression) Source() string {
	return sourceOf(e.items)
}

func sourceOf(items []item) string {
	var b strings.Builder
	for _, it := range items {
		if it.atomic {
			v, err := strconv.ParseFloat(it.text, 64)
			if err == nil {
				b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
				continue
			}
		}
		b.WriteString(it.text)
	}
	return b.String()
}

func (e *Expression) Empty() bool { return len(e.items) == 0 }

func (e *Expression) Reset() { e.items = e.items[:0] }

// Depth is the count of '(' minus the count of ')'.
func (e *Expression) Depth() int {
	depth := 0
	for _, it := range e.items {
		switch it.kind {
		case openItem:
			depth++
		case closeItem:
			depth--
		}
	}
	return depth
}

func (e *Expression) last() *item {
	if len(e.items) == 0 {
		return nil
	}
	return &e.items[len(e.items)-1]
}

func (e *Expression) push(kind itemKind, text string) {
	e.items = append(e.items, item{kind: kind, text: text})
}

func (e *Expression) pop() {
	e.items = e.items[:len(e.items)-1]
}

// isUnary reports whether the operator at i negates the operand that
// follows it rather than combining two operands.
func (e *Expression) isUnary(i int) bool {
	if e.items[i].kind != operatorItem || e.items[i].text != "-" {
		return false
	}
	if i == 0 {
		return true
	}
	prev := e.items[i-1].kind
	return prev == operatorItem || prev == openItem
}

func (e *Expression) AppendDigit(d byte) {
	if last := e.last(); last != nil && last.kind == numberItem {
		if !last.atomic {
			last.text += string(d)
		}
		return
	}
	e.push(numberItem, string(d))
}

// AppendDecimal starts a fraction on the trailing number, inserting a
// leading zero when no number is open. A second point in one number is
// ignored.
func (e *Expression) AppendDecimal() {
	last := e.last()
	if last == nil || last.kind != numberItem {
		e.push(numberItem, "0.")
		return
	}
	if last.atomic || strings.Contains(last.text, ".") {
		return
	}
	last.text += "."
}

// AppendOperator applies a binary operator key. Only '-' may start an
// expression or follow '('. A '-' after '*' or '/' is kept as a unary
// minus; any other operator replaces the trailing one.
func (e *Expression) AppendOperator(op byte) {
	last := e.last()
	if last == nil || last.kind == openItem {
		if op == '-' {
			e.push(operatorItem, "-")
		}
		return
	}

	if last.kind != operatorItem {
		e.push(operatorItem, string(op))
		return
	}

	if e.isUnary(len(e.items) - 1) {
		if op == '-' {
			return
		}
		e.pop()
		e.AppendOperator(op)
		return
	}

	if op == '-' && (last.text == "*" || last.text == "/") {
		e.push(operatorItem, "-")
		return
	}
	last.text = string(op)
}

// ToggleParen opens a group when parentheses are balanced, with an implicit
// '*' after an operand, and closes one otherwise.
func (e *Expression) ToggleParen() {
	if e.Depth() > 0 {
		e.push(closeItem, ")")
		return
	}
	if last := e.last(); last != nil && last.kind != operatorItem && last.kind != openItem {
		e.push(operatorItem, "*")
	}
	e.push(openItem, "(")
}

// DeleteLast removes the final character. An exponent-notation result is
// removed whole.
func (e *Expression) DeleteLast() {
	last := e.last()
	if last == nil {
		return
	}
	if last.kind == numberItem && !last.atomic && len(last.text) > 1 {
		last.text = last.text[:len(last.text)-1]
		return
	}
	e.pop()
}

// Load replaces the expression with a formatted result.
func (e *Expression) Load(result string) {
	e.Reset()
	if rest, ok := strings.CutPrefix(result, "-"); ok {
		e.push(operatorItem, "-")
		result = rest
	}
	if result == "" {
		return
	}
	e.items = append(e.items, item{
		kind:   numberItem,
		text:   result,
		atomic: strings.ContainsAny(result, "eE"),
	})
}

// SplitPercent finds a trailing "<base><+|-><number>". ok is false when the
// expression does not end that way, or the sign is a unary minus.
func (e *Expression) SplitPercent() (base string, op byte, pct float64, ok bool) {
	n := len(e.items)
	if n < 3 {
		return "", 0, 0, false
	}

	num, sign, before := e.items[n-1], e.items[n-2], e.items[n-3]
	if num.kind != numberItem || sign.kind != operatorItem {
		return "", 0, 0, false
	}
	if sign.text != "+" && sign.text != "-" {
		return "", 0, 0, false
	}
	// A unary minus ("3*-10") is a sign, not a percent step: fall through to
	// the whole-expression path.
	if before.kind != numberItem && before.kind != closeItem {
		return "", 0, 0, false
	}

	pct, err := strconv.ParseFloat(num.text, 64)
	if err != nil {
		return "", 0, 0, false
	}
	return sourceOf(e.items[:n-2]), sign.text[0], pct, true
}

// Check verifies the grammar invariants: no operator pair unless the second
// is a unary minus, at most one point per number, and parentheses that
// never close below zero.
func (e *Expression) Check() error {
	depth := 0
	for i, it := range e.items {
		switch it.kind {
		case numberItem:
			if it.text == "" {
				return fmt.Errorf("empty number at item %d", i)
			}
			if !it.atomic && strings.Count(it.text, ".") > 1 {
				return fmt.Errorf("number %q has more than one decimal point", it.text)
			}
			if i > 0 && e.items[i-1].kind == numberItem {
				return fmt.Errorf("adjacent numbers at item %d", i)
			}
		case operatorItem:
			if len(it.text) != 1 || !expr.IsOperator(it.text[0]) {
				return fmt.Errorf("invalid operator %q", it.text)
			}
			if i == 0 || e.items[i-1].kind == openItem {
				if it.text != "-" {
					return fmt.Errorf("operator %q cannot start a group", it.text)
				}
				continue
			}
			if e.items[i-1].kind == operatorItem && (it.text != "-" || e.isUnary(i-1)) {
				return fmt.Errorf("adjacent operators %q%q", e.items[i-1].text, it.text)
			}
		case openItem:
			depth++
		case closeItem:
			depth--
			if depth < 0 {
				return fmt.Errorf("unmatched ')' at item %d", i)
			}
		}
	}
	return nil
}
