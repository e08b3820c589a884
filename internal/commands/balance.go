package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankcore-dev/bankcore/internal/model"
)

func newBalanceCommand(configPath *string) *cobra.Command {
	var customerID string
	var accountType string

	cmd := &cobra.Command{
		Use:   "balance [account-number]",
		Short: "Show an account balance",
		Long: "Show the balance of the given account number, or look up the " +
			"account by --customer-id and --type when no number is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			accountNumber := ""
			if len(args) > 0 {
				accountNumber = args[0]
			} else {
				if customerID == "" {
					return fmt.Errorf("either an account number or --customer-id is required")
				}
				number, found, err := rt.bank.AccountNumberFor(cmd.Context(), customerID, model.AccountType(accountType))
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintln(cmd.OutOrStdout(), "no account")
					return nil
				}
				accountNumber = number
			}

			balance, found, err := rt.bank.Balance(cmd.Context(), accountNumber)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "account %s not found\n", accountNumber)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", accountNumber, balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID for account lookup")
	cmd.Flags().StringVar(&accountType, "type", "checking", "account type for lookup: checking or savings")

	return cmd
}
