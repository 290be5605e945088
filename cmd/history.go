package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List a customer's past orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.store.Scan(customer)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No order history found for %s.\n", customer)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tCALORIES\tITEMS")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.PlacedAt, rec.TotalCalories, strings.Join(rec.Items, ", "))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer name (case-sensitive)")
	cobra.CheckErr(cmd.MarkFlagRequired("customer"))
	return cmd
}
