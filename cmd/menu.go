package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/spf13/cobra"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the menu with nutrients per item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ITEM\tCALORIES\tPROTEIN\tCARBS\tSUGARS\tFAT")
			for _, item := range a.catalog.All() {
				fmt.Fprintf(tw, "%s\t%s\t%sg\t%sg\t%sg\t%sg\n",
					item.Name,
					models.FormatCalories(item.Calories),
					formatGrams(item.Protein),
					formatGrams(item.Carbs),
					formatGrams(item.Sugars),
					formatGrams(item.Fat),
				)
			}
			return tw.Flush()
		},
	}
}
