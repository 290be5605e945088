package recommend

import (
	"time"

	"github.com/chrisdamba/nutritrack/internal/models"
)

// Strategy names how a candidate list was ordered before greedy selection.
type Strategy string

const (
	// Familiar considers only items the customer has ordered, most frequent first.
	Familiar Strategy = models.StrategyFamiliar
	// Nudge puts the alphabetically first new item ahead of the familiar ones.
	Nudge Strategy = models.StrategyNudge
	// Explore puts every new item, alphabetically, ahead of the familiar ones.
	Explore Strategy = models.StrategyExplore
)

type Recommendation struct {
	Strategy Strategy
	Items    []models.MenuItem
}

func (r Recommendation) IsEmpty() bool {
	return len(r.Items) == 0
}

func (r Recommendation) ItemNames() []string {
	names := make([]string, len(r.Items))
	for i, item := range r.Items {
		names[i] = item.Name
	}
	return names
}

func (r Recommendation) TotalCalories() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Calories
	}
	return total
}

func (r Recommendation) Totals() models.Nutrients {
	var totals models.Nutrients
	for _, item := range r.Items {
		totals = totals.Add(item.Nutrients())
	}
	return totals
}

// Order turns the recommendation into a new order the customer can still edit.
func (r Recommendation) Order(customer string, placedAt time.Time) *models.Order {
	order := models.NewOrder(customer, placedAt)
	for _, item := range r.Items {
		order.AddItem(item)
	}
	return order
}
