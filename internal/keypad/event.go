package keypad

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies the kind of keypad input.
type Key int

const (
	KeyDigit Key = iota + 1
	KeyOperator
	KeyDecimal
	KeyParenthesis
	KeyEquals
	KeyPercent
	KeyDelete
	KeyClear
)

var keyNames = map[Key]string{
	KeyDigit:       "digit",
	KeyOperator:    "operator",
	KeyDecimal:     "decimal",
	KeyParenthesis: "parenthesis",
	KeyEquals:      "equals",
	KeyPercent:     "percent",
	KeyDelete:      "delete",
	KeyClear:       "clear",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one symbolic keypress. Symbol carries the digit or the ASCII
// operator for KeyDigit and KeyOperator.
type Event struct {
	Key    Key
	Symbol byte
}

func Digit(d byte) Event { return Event{Key: KeyDigit, Symbol: d} }

func Operator(op byte) Event { return Event{Key: KeyOperator, Symbol: op} }

var (
	Decimal     = Event{Key: KeyDecimal}
	Parenthesis = Event{Key: KeyParenthesis}
	Equals      = Event{Key: KeyEquals}
	Percent     = Event{Key: KeyPercent}
	Delete      = Event{Key: KeyDelete}
	Clear       = Event{Key: KeyClear}
)

func (e Event) String() string {
	if e.Key == KeyDigit || e.Key == KeyOperator {
		return fmt.Sprintf("%s(%c)", e.Key, e.Symbol)
	}
	return e.Key.String()
}

var ErrUnknownKey = errors.New("unknown key")

var labels = map[string]Event{
	".":   Decimal,
	"( )": Parenthesis,
	"()":  Parenthesis,
	"(":   Parenthesis,
	")":   Parenthesis,
	"=":   Equals,
	"%":   Percent,
	"DEL": Delete,
	"C":   Clear,
	"+":   Operator('+'),
	"-":   Operator('-'),
	"*":   Operator('*'),
	"×":   Operator('*'),
	"/":   Operator('/'),
	"÷":   Operator('/'),
}

// ParseKey maps a keypad button label to its event. Both the display glyphs
// (× ÷) and their ASCII forms are accepted; "(" and ")" both press the
// single parenthesis key.
func ParseKey(label string) (Event, error) {
	label = strings.TrimSpace(label)
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Digit(label[0]), nil
	}
	if ev, ok := labels[strings.ToUpper(label)]; ok {
		return ev, nil
	}
	return Event{}, fmt.Errorf("%q: %w", label, ErrUnknownKey)
}

// ParseKeys parses every label, stopping at the first unknown one.
func ParseKeys(names []string) ([]Event, error) {
	events := make([]Event, 0, len(names))
	for i, l := range names {
		ev, err := ParseKey(l)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
