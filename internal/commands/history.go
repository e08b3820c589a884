package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankcore-dev/bankcore/internal/txlog"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	var customerID string
	var fromDate string
	var toDate string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Search transaction history by date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.close() //nolint:errcheck

			details, err := rt.query.Search(cmd.Context(), customerID, fromDate, toDate)
			if err != nil {
				return err
			}

			if asCSV {
				return txlog.WriteCSV(cmd.OutOrStdout(), details)
			}

			if len(details) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transactions")
				return nil
			}
			for _, d := range details {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %-15s %10s  %s -> %s\n",
					d.Date, d.Time, d.Type, d.Amount.StringFixed(2), orDash(d.FromAccount), orDash(d.ToAccount))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID (required)")
	_ = cmd.MarkFlagRequired("customer-id")
	cmd.Flags().StringVar(&fromDate, "from", "", "start date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&toDate, "to", "", "end date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of a table")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
