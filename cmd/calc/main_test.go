package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/expr"
	"go-chi-calculator/internal/keypad"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := runCmd(t, "", "eval", "(2+3)×4")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)
}

func TestEvalCommandJoinsArgs(t *testing.T) {
	out, err := runCmd(t, "", "eval", "2", "+", "3*4")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestEvalCommandFailure(t *testing.T) {
	_, err := runCmd(t, "", "eval", "6/0")
	require.ErrorIs(t, err, expr.ErrDivisionByZero)
}

func TestKeysCommand(t *testing.T) {
	out, err := runCmd(t, "", "keys", "1", "0", "0", "+", "1", "0", "%")
	require.NoError(t, err)
	assert.Equal(t, "100+10%\n110\n", out)
}

func TestKeysCommandCompactRuns(t *testing.T) {
	out, err := runCmd(t, "", "keys", "5(", "2", ")=")
	require.NoError(t, err)
	assert.Equal(t, "5×(2)\n10\n", out)
}

func TestKeysCommandUnknownKey(t *testing.T) {
	_, err := runCmd(t, "", "keys", "2^3")
	require.ErrorIs(t, err, keypad.ErrUnknownKey)
}

func TestKeysCommandBadLogLevel(t *testing.T) {
	_, err := runCmd(t, "", "--log-level", "loud", "keys", "1")
	require.ErrorContains(t, err, "--log-level")
}

func TestParseLine(t *testing.T) {
	events, err := parseLine("12+3= DEL C ×")
	require.NoError(t, err)
	assert.Equal(t, []keypad.Event{
		keypad.Digit('1'), keypad.Digit('2'), keypad.Operator('+'), keypad.Digit('3'), keypad.Equals,
		keypad.Delete, keypad.Clear, keypad.Operator('*'),
	}, events)
}

func TestREPL(t *testing.T) {
	color.NoColor = true

	in := strings.NewReader(strings.Join([]string{
		"5 (",
		"2 ) =",
		"",
		"6/0=",
		"8",
		"2^",
		":history",
		":clear-history",
		":history",
		":quit",
		"9",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, runREPL(in, &out, keypad.NewSession()))

	want := strings.Join([]string{
		"> 5×(",
		"> 5×(2)",
		"10",
		"> > Error",
		"> 8",
		`> in "2^": "^": unknown key`,
		">   1  5×(2) = 10",
		"> history cleared",
		"> (no history)",
		"> ",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestREPLEndOfInput(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	require.NoError(t, runREPL(strings.NewReader(""), &out, keypad.NewSession()))
	assert.Equal(t, "> \n", out.String())
}

func TestRenderEmptyDisplay(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	render(&out, keypad.NewSession())
	assert.Equal(t, "0\n", out.String())
}
