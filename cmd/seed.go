package cmd

import (
	"fmt"
	"time"

	"github.com/chrisdamba/nutritrack/internal/factories"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		customers int
		orders    int
		maxItems  int
		days      int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Append synthetic order history for demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if customers < 1 || orders < 1 {
				return fmt.Errorf("--customers and --orders must be positive")
			}
			factory, err := factories.NewHistoryFactory(a.catalog, seed)
			if err != nil {
				return err
			}

			end := now()
			start := end.Add(-time.Duration(days) * 24 * time.Hour)
			written := 0
			for i := 0; i < customers; i++ {
				customer := factory.CreateCustomer()
				for j := 0; j < orders; j++ {
					rec, err := factory.CreateOrder(customer, start, end, maxItems).Record()
					if err != nil {
						return err
					}
					if err := a.store.Append(rec); err != nil {
						return fmt.Errorf("failed to append seeded order: %w", err)
					}
					written++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d orders\n", customer.Name, orders)
			}

			a.logger.Info().Int("orders", written).Int("customers", customers).Msg("seeded order history")
			return nil
		},
	}

	cmd.Flags().IntVar(&customers, "customers", 5, "number of customers to generate")
	cmd.Flags().IntVar(&orders, "orders", 10, "orders per customer")
	cmd.Flags().IntVar(&maxItems, "max-items", 4, "maximum items per order")
	cmd.Flags().IntVar(&days, "days", 30, "spread orders over this many past days")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}
