package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/observability"
)

type options struct {
	logLevel     string
	historyLimit int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "calc",
		Short: "Keypad calculator",
		Long: `calc evaluates arithmetic the way the keypad calculator does:
+ - * / (also × ÷), parentheses, decimals and percent.

Keys are the keypad labels: 0-9, + - × ÷ * /, ., ( or ), =, %, DEL and C.
Runs of single-character keys can be typed together, e.g. "12+3=".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zapcore.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			return observability.InitLogger(level)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&opts.historyLimit, "history-limit", keypad.DefaultHistoryLimit, "Maximum number of history entries kept")

	root.AddCommand(
		newEvalCmd(),
		newKeysCmd(opts),
		newREPLCmd(opts),
	)

	return root
}

// newSession returns a session that logs every evaluation at debug level.
func newSession(opts *options) *keypad.Session {
	return keypad.NewSession(
		keypad.WithHistoryLimit(opts.historyLimit),
		keypad.WithEvaluationHook(func(ev keypad.Evaluation) {
			if ev.Err != nil {
				observability.Logger.Debug("evaluation failed",
					zap.String("key", ev.Key.String()),
					zap.String("expression", ev.Expression),
					zap.Error(ev.Err),
				)
				return
			}
			observability.Logger.Debug("evaluation completed",
				zap.String("key", ev.Key.String()),
				zap.String("expression", ev.Expression),
				zap.Float64("result", ev.Result),
			)
		}),
	)
}
