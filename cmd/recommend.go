package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/chrisdamba/nutritrack/internal/recommend"
	"github.com/spf13/cobra"
)

var strategyTitles = map[recommend.Strategy]string{
	recommend.Familiar: "Your usual",
	recommend.Nudge:    "Something new",
	recommend.Explore:  "Explore the menu",
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		customer string
		calories int
		session  string
		choose   int
		adds     []string
		removes  []int
	)

	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Suggest three orders within a calorie budget",
		Example: `  nutritrack recommend --customer alice --calories 900
  nutritrack recommend --customer alice --calories 900 --session "Big Mac" --choose 2
  nutritrack recommend --customer alice --calories 900 --choose 3 --remove 1 --add "Small Fries"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("calories") {
				calories = a.cfg.DefaultCalories
			}
			if err := validateCustomer(customer); err != nil {
				return err
			}
			if choose < 0 || choose > 3 {
				return fmt.Errorf("--choose must be between 1 and 3")
			}
			if choose == 0 && (len(adds) > 0 || len(removes) > 0) {
				return fmt.Errorf("--add and --remove edit the option picked with --choose")
			}
			additions, err := a.resolveItems(adds)
			if err != nil {
				return err
			}

			sessionItems, err := a.resolveItems(splitList(session))
			if err != nil {
				return err
			}
			sessionNames := make([]string, len(sessionItems))
			for i, item := range sessionItems {
				sessionNames[i] = item.Name
			}

			recs, err := a.engine.Generate(customer, calories, sessionNames)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: order history unavailable, suggestions use this session only: %v\n", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recommendations for %s (budget %d kcal):\n", customer, calories)
			for i, rec := range recs {
				fmt.Fprintf(out, "%d. %s: ", i+1, strategyTitles[rec.Strategy])
				if rec.IsEmpty() {
					fmt.Fprintln(out, "nothing fits")
					continue
				}
				fmt.Fprintln(out, strings.Join(rec.ItemNames(), ", "))
				printNutrients(out, "   ", rec.Totals())
			}

			if choose == 0 {
				return nil
			}
			order := recs[choose-1].Order(customer, now())
			if err := editOrder(order, removes, additions); err != nil {
				return err
			}
			if order.IsEmpty() {
				return fmt.Errorf("option %d is empty, nothing to order", choose)
			}
			return a.placeOrder(cmd, order)
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer name")
	cmd.Flags().IntVar(&calories, "calories", 0, "calorie budget (default from default_calories)")
	cmd.Flags().StringVar(&session, "session", "", "comma separated items already ordered this session")
	cmd.Flags().IntVar(&choose, "choose", 0, "order option 1, 2 or 3")
	cmd.Flags().StringArrayVar(&adds, "add", nil, "add a menu item to the chosen option (repeatable)")
	cmd.Flags().IntSliceVar(&removes, "remove", nil, "remove the item at this 1-based position of the chosen option (repeatable)")
	cobra.CheckErr(cmd.MarkFlagRequired("customer"))
	return cmd
}

// editOrder removes items by their 1-based position in the order as
// recommended, then appends additions.
func editOrder(order *models.Order, removes []int, additions []models.MenuItem) error {
	seen := make(map[int]bool, len(removes))
	for _, pos := range removes {
		if pos < 1 || pos > len(order.Items) {
			return fmt.Errorf("--remove %d is out of range, the option has %d items", pos, len(order.Items))
		}
		if seen[pos] {
			return fmt.Errorf("--remove %d given twice", pos)
		}
		seen[pos] = true
	}

	// highest position first so earlier positions stay valid
	positions := append([]int(nil), removes...)
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	for _, pos := range positions {
		order.RemoveItem(pos - 1)
	}

	for _, item := range additions {
		order.AddItem(item)
	}
	return nil
}
