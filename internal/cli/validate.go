package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <instance-file>",
		Short: "Check that an instance file is well-formed without scheduling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}

			if f := resolveJobExprContext(&inst); f != nil {
				return f
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d jobs, %d machines)\n", args[0], len(inst.Jobs), len(inst.MachineSpeeds))
			return nil
		},
	}
}
