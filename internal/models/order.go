package models

import (
	"errors"
	"time"

	"github.com/lucsky/cuid"
)

var ErrEmptyOrder = errors.New("order has no items")

// Order is a customer's order while it is being assembled. Once its record has
// been appended to the history log it is treated as immutable.
type Order struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customer_name"`
	PlacedAt     time.Time  `json:"order_placed_at"`
	Items        []MenuItem `json:"items"`
}

func NewOrder(customerName string, placedAt time.Time) *Order {
	return &Order{
		ID:           cuid.New(),
		CustomerName: customerName,
		PlacedAt:     placedAt,
		Items:        make([]MenuItem, 0),
	}
}

func (o *Order) AddItem(item MenuItem) {
	o.Items = append(o.Items, item)
}

// RemoveItem drops the item at index and reports whether anything was removed.
func (o *Order) RemoveItem(index int) bool {
	if index < 0 || index >= len(o.Items) {
		return false
	}
	o.Items = append(o.Items[:index], o.Items[index+1:]...)
	return true
}

func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

func (o *Order) ItemNames() []string {
	names := make([]string, len(o.Items))
	for i, item := range o.Items {
		names[i] = item.Name
	}
	return names
}

func (o *Order) TotalCalories() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Calories
	}
	return total
}

// Totals sums every nutrient across the order's items.
func (o *Order) Totals() Nutrients {
	var totals Nutrients
	for _, item := range o.Items {
		totals = totals.Add(item.Nutrients())
	}
	return totals
}

// Record converts the order into its persisted form.
func (o *Order) Record() (HistoryRecord, error) {
	if o.IsEmpty() {
		return HistoryRecord{}, ErrEmptyOrder
	}
	return HistoryRecord{
		Customer:      o.CustomerName,
		PlacedAt:      FormatHistoryTime(o.PlacedAt),
		TotalCalories: FormatCalories(o.TotalCalories()),
		Items:         o.ItemNames(),
	}, nil
}
