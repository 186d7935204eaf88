package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keypad"
)

func newKeysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <key>...",
		Short: "Replay keypad keys through a fresh session and print the result",
		Example: `  calc keys 1 0 0 + 1 0 %
  calc keys "5(" 2 ")="`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := parseLine(strings.Join(args, " "))
			if err != nil {
				return err
			}

			s := newSession(opts)
			s.SubmitAll(events...)

			render(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

// parseLine turns whitespace-separated keys into events. A field that is
// not a key label is read one character at a time, so "12+3=" is five keys.
func parseLine(line string) ([]keypad.Event, error) {
	var events []keypad.Event

	for _, field := range strings.Fields(line) {
		if ev, err := keypad.ParseKey(field); err == nil {
			events = append(events, ev)
			continue
		}

		for _, r := range field {
			ev, err := keypad.ParseKey(string(r))
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", field, err)
			}
			events = append(events, ev)
		}
	}

	return events, nil
}
