package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankcore-dev/bankcore/internal/bank"
	"github.com/bankcore-dev/bankcore/internal/model"
)

func newOpenCommand(configPath *string) *cobra.Command {
	var customerName string
	var customerID string
	var accountType string
	var initialDeposit string

	cmd := &cobra.Command{
		Use:   "open <account-number>",
		Short: "Open a checking or savings account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			account, err := rt.bank.Open(cmd.Context(), bank.OpenParams{
				AccountNumber:  args[0],
				CustomerName:   customerName,
				CustomerID:     customerID,
				Type:           model.AccountType(accountType),
				InitialDeposit: initialDeposit,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "opened %s account %s with balance %s\n",
				account.Type, account.AccountNumber, account.Balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&customerName, "customer-name", "", "customer name (required)")
	_ = cmd.MarkFlagRequired("customer-name")
	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID (required)")
	_ = cmd.MarkFlagRequired("customer-id")
	cmd.Flags().StringVar(&accountType, "type", "checking", "account type: checking or savings")
	cmd.Flags().StringVar(&initialDeposit, "initial-deposit", "0", "opening balance")

	return cmd
}
