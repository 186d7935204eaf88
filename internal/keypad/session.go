// Package keypad is the calculator's input state machine: it turns one key
// event at a time into a well-formed pending expression and evaluates it on
// '=' or '%'.
package keypad

import (
	"fmt"
	"math"

	"go-chi-calculator/internal/expr"
)

// ErrorDisplay is shown in place of the expression after a failed
// evaluation.
const ErrorDisplay = "Error"

// Evaluation describes one '=' or '%' press, successful or not.
type Evaluation struct {
	Key        Key
	Expression string
	Result     float64
	Display    string
	Err        error
}

type Option func(*Session)

// WithHistoryLimit bounds the history log to n entries.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.log = NewHistoryLog(n) }
}

// WithEvaluationHook registers fn to run after every evaluation attempt.
func WithEvaluationHook(fn func(Evaluation)) Option {
	return func(s *Session) { s.hook = fn }
}

// Session is a single calculator. It is not safe for concurrent use.
type Session struct {
	expr         Expression
	history      string
	justComputed bool
	result       string
	errored      bool
	log          *HistoryLog
	hook         func(Evaluation)
}

func NewSession(opts ...Option) *Session {
	s := &Session{log: NewHistoryLog(DefaultHistoryLimit)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit applies one key event. It never fails: evaluation errors put the
// session into the Error display. Equals leaves the error showing; any other
// event starts over from an empty expression.
//
// JustComputed survives Parenthesis and Delete, so a digit typed after
// either still starts a fresh calculation.
func (s *Session) Submit(ev Event) {
	if s.errored {
		if ev.Key == KeyEquals {
			return
		}
		s.reset()
	}

	switch ev.Key {
	case KeyDigit:
		if ev.Symbol < '0' || ev.Symbol > '9' {
			return
		}
		if s.justComputed {
			s.reset()
		}
		s.expr.AppendDigit(ev.Symbol)

	case KeyDecimal:
		if s.justComputed {
			s.reset()
		}
		s.expr.AppendDecimal()

	case KeyOperator:
		if !expr.IsOperator(ev.Symbol) {
			return
		}
		s.justComputed = false
		s.expr.AppendOperator(ev.Symbol)

	case KeyParenthesis:
		s.expr.ToggleParen()

	case KeyDelete:
		s.expr.DeleteLast()

	case KeyClear:
		s.reset()

	case KeyEquals:
		s.equals()

	case KeyPercent:
		s.percent()
	}
}

// SubmitAll applies events in order.
func (s *Session) SubmitAll(events ...Event) {
	for _, ev := range events {
		s.Submit(ev)
	}
}

func (s *Session) reset() {
	s.expr.Reset()
	s.history = ""
	s.result = ""
	s.justComputed = false
	s.errored = false
}

// equals is a no-op on an empty expression and on an untouched result, so
// repeating '=' neither changes the display nor logs a duplicate.
func (s *Session) equals() {
	if s.expr.Empty() || (s.justComputed && s.expr.String() == s.result) {
		return
	}
	original := s.expr.String()
	v, err := expr.Evaluate(s.expr.Source())
	s.finish(KeyEquals, original, v, err)
}

// percent turns "<base>+<n>" into base plus n percent of base (likewise
// for '-'). Anything else is evaluated whole and divided by 100.
func (s *Session) percent() {
	if s.expr.Empty() {
		return
	}
	original := s.expr.String()

	var (
		v   float64
		err error
	)
	if base, op, pct, ok := s.expr.SplitPercent(); ok {
		v, err = percentOf(base, op, pct)
	} else {
		v, err = expr.Evaluate(s.expr.Source())
		v /= 100
	}
	s.finish(KeyPercent, original+"%", v, err)
}

func percentOf(base string, op byte, pct float64) (float64, error) {
	b, err := expr.Evaluate(base)
	if err != nil {
		return 0, fmt.Errorf("percent base %q: %w", base, err)
	}

	delta := b * pct / 100
	v := b + delta
	if op == '-' {
		v = b - delta
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("percent result out of range: %w", expr.ErrInvalidExpression)
	}
	return v, nil
}

func (s *Session) finish(key Key, historyText string, v float64, err error) {
	ev := Evaluation{Key: key, Expression: historyText, Err: err}

	if err != nil {
		s.errored = true
		s.justComputed = false
		ev.Display = ErrorDisplay
	} else {
		display := expr.FormatResult(v)
		s.expr.Load(display)
		s.result = display
		s.history = historyText
		s.justComputed = true
		s.log.Append(expr.DisplayGlyphs(historyText) + " = " + display)

		ev.Result = v
		ev.Display = display
	}

	if s.hook != nil {
		s.hook(ev)
	}
}

// Display is the current expression with display glyphs, or ErrorDisplay.
func (s *Session) Display() string {
	if s.errored {
		return ErrorDisplay
	}
	return expr.DisplayGlyphs(s.expr.String())
}

// HistoryLine is the expression behind the current result, with display
// glyphs.
func (s *Session) HistoryLine() string { return expr.DisplayGlyphs(s.history) }

// Expression is the raw pending expression with ASCII operators. It is
// empty while the Error display is showing, since the failed input can no
// longer be edited.
func (s *Session) Expression() string {
	if s.errored {
		return ""
	}
	return s.expr.String()
}

func (s *Session) JustComputed() bool { return s.justComputed }

func (s *Session) Errored() bool { return s.errored }

// HistoryLog returns the logged calculations, most recent last.
func (s *Session) HistoryLog() []string { return s.log.Entries() }

func (s *Session) ClearHistoryLog() { s.log.Clear() }

// CheckInvariants reports a grammar violation in the pending expression.
func (s *Session) CheckInvariants() error { return s.expr.Check() }

// State is a point-in-time copy of everything a front end renders.
type State struct {
	Display      string
	History      string
	Expression   string
	JustComputed bool
	Error        bool
	HistoryLog   []string
}

func (s *Session) Snapshot() State {
	return State{
		Display:      s.Display(),
		History:      s.HistoryLine(),
		Expression:   s.Expression(),
		JustComputed: s.justComputed,
		Error:        s.errored,
		HistoryLog:   s.HistoryLog(),
	}
}
