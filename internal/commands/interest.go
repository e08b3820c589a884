package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInterestCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "interest",
		Short: "Apply interest to all savings accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			results, err := rt.interest.Run(cmd.Context())
			for _, r := range results {
				if r.Applied {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: credited %s\n", r.AccountNumber, r.Interest.StringFixed(2))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no interest applied\n", r.AccountNumber)
				}
			}
			return err
		},
	}
}
