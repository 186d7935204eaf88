package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keypad"
)

var (
	historyColor = color.New(color.FgHiBlack)
	displayColor = color.New(color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	promptColor  = color.New(color.FgYellow)
)

func newREPLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type keys interactively",
		Long: `Type keys separated by spaces, or runs of single-character keys.
Commands: :history shows the log, :clear-history empties it, :quit exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), newSession(opts))
		},
	}
}

func runREPL(in io.Reader, out io.Writer, s *keypad.Session) error {
	scanner := bufio.NewScanner(in)

	for {
		promptColor.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":history":
			entries := s.HistoryLog()
			if len(entries) == 0 {
				historyColor.Fprintln(out, "(no history)")
			}
			for i, e := range entries {
				fmt.Fprintf(out, "%3d  %s\n", i+1, e)
			}
			continue
		case ":clear-history":
			s.ClearHistoryLog()
			historyColor.Fprintln(out, "history cleared")
			continue
		}

		events, err := parseLine(line)
		if err != nil {
			errorColor.Fprintln(out, err)
			continue
		}
		s.SubmitAll(events...)
		render(out, s)
	}
}

// render prints the history line above the display, as the keypad shows
// them. An empty display reads as 0.
func render(out io.Writer, s *keypad.Session) {
	if h := s.HistoryLine(); h != "" {
		historyColor.Fprintln(out, h)
	}

	display := s.Display()
	switch {
	case s.Errored():
		errorColor.Fprintln(out, display)
	case display == "":
		displayColor.Fprintln(out, "0")
	default:
		displayColor.Fprintln(out, display)
	}
}
