// Package cli implements the schedcore command-line interface: run,
// serve, and validate, built with cobra in the teacher codebase's idiom
// (internal/cli holding the command tree, cmd/schedcore holding only main).
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kjorgen/schedcore/internal/logging"
)

var (
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the schedcore CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedcore",
		Short: "schedcore — deterministic job scheduling for parallel machines",
		Long:  "schedcore computes, serves, and validates job schedules for uniform-related parallel machines with dependencies, release times, and delivery/wait times.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newValidateCmd(),
	)

	return root
}
