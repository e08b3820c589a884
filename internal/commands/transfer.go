package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankcore-dev/bankcore/internal/model"
	"github.com/bankcore-dev/bankcore/internal/transfer"
)

func newTransferCommand(configPath *string) *cobra.Command {
	var customerID string
	var fromType string
	var toType string

	cmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args[2])
			if err != nil {
				return err
			}

			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			number, err := rt.transfers.Transfer(cmd.Context(), transfer.Params{
				FromAccount: args[0],
				ToAccount:   args[1],
				CustomerID:  customerID,
				Amount:      amount,
				FromType:    model.AccountType(fromType),
				ToType:      model.AccountType(toType),
			})
			if transfer.IsFatal(err) {
				rt.log.Fatal().Err(err).Msg("ledger requires operator intervention")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "transfer complete, transaction %s\n", number)
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID (required)")
	_ = cmd.MarkFlagRequired("customer-id")
	cmd.Flags().StringVar(&fromType, "from-type", "checking", "source account type")
	cmd.Flags().StringVar(&toType, "to-type", "checking", "destination account type")

	return cmd
}
