package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWithdrawCommand(configPath *string) *cobra.Command {
	var customerID string

	cmd := &cobra.Command{
		Use:   "withdraw <account-number> <amount>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args[1])
			if err != nil {
				return err
			}

			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			balance, err := rt.bank.Withdraw(cmd.Context(), args[0], customerID, amount)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "withdrew %s, new balance %s\n",
				amount.StringFixed(2), balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID (required)")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}
