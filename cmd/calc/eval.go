package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/expr"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression and print the formatted result",
		Example: `  calc eval "2+3*4"
  calc eval "(2+3)×4"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := expr.ASCIIOperators(strings.Join(args, ""))

			v, err := expr.Evaluate(in)
			if err != nil {
				return fmt.Errorf("evaluate %q: %w", in, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), expr.FormatResult(v))
			return nil
		},
	}
}
