package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/spf13/cobra"
)

func newOrderCmd(a *app) *cobra.Command {
	var (
		customer string
		items    []string
	)

	cmd := &cobra.Command{
		Use:     "order",
		Short:   "Record an order for a customer",
		Example: `  nutritrack order --customer alice --item "Big Mac" --item "Small Fries"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateCustomer(customer); err != nil {
				return err
			}
			menuItems, err := a.resolveItems(items)
			if err != nil {
				return err
			}

			order := models.NewOrder(customer, now())
			for _, item := range menuItems {
				order.AddItem(item)
			}
			return a.placeOrder(cmd, order)
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer name")
	cmd.Flags().StringArrayVar(&items, "item", nil, "menu item to order (repeatable)")
	cobra.CheckErr(cmd.MarkFlagRequired("customer"))
	cobra.CheckErr(cmd.MarkFlagRequired("item"))
	return cmd
}

// resolveItems maps names, in any case, to catalog items.
func (a *app) resolveItems(names []string) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0, len(names))
	for _, name := range names {
		item, ok := a.catalog.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown menu item %q (menu: %s)", name, strings.Join(a.catalog.Names(), ", "))
		}
		items = append(items, item)
	}
	return items, nil
}

// validateCustomer rejects names the history log cannot hold: a blank name or
// one containing the field separator would produce a line every scan skips.
func validateCustomer(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("customer name must not be empty")
	}
	if strings.Contains(name, models.HistoryFieldSeparator) {
		return fmt.Errorf("customer name %q must not contain %q", name, models.HistoryFieldSeparator)
	}
	return nil
}

// placeOrder prints the order's nutrient summary and appends it to the log.
func (a *app) placeOrder(cmd *cobra.Command, order *models.Order) error {
	rec, err := order.Record()
	if errors.Is(err, models.ErrEmptyOrder) {
		return fmt.Errorf("nothing to order for %s", order.CustomerName)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order for %s on %s:\n", order.CustomerName, rec.PlacedAt)
	for _, item := range order.Items {
		fmt.Fprintf(out, "  %s (%s kcal)\n", item.Name, models.FormatCalories(item.Calories))
	}
	printNutrients(out, "  Total: ", order.Totals())

	if err := a.store.Append(rec); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	fmt.Fprintln(out, "Order saved.")
	return nil
}
