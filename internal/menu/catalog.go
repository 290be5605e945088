package menu

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chrisdamba/nutritrack/internal/models"
)

var (
	// ErrDuplicateItem is returned when two items share a name, ignoring case.
	ErrDuplicateItem = errors.New("duplicate menu item")
	// ErrInvalidItem is returned for a blank name or a negative or NaN nutrient.
	ErrInvalidItem = errors.New("invalid menu item")
)

// Catalog is a fixed, read-only table of menu items. Iteration order is the
// order the items were defined in, which the recommendation engine relies on
// when breaking frequency ties.
type Catalog struct {
	items  []models.MenuItem
	byName map[string]int
}

// NewCatalog builds a catalog from items. Names must be non-blank and unique
// ignoring case, since lookups are case-insensitive. Nutrients must be
// non-negative.
func NewCatalog(items []models.MenuItem) (*Catalog, error) {
	c := &Catalog{
		items:  make([]models.MenuItem, len(items)),
		byName: make(map[string]int, len(items)),
	}
	copy(c.items, items)

	for i, item := range c.items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		key := strings.ToLower(item.Name)
		if _, exists := c.byName[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItem, item.Name)
		}
		c.byName[key] = i
	}
	return c, nil
}

func validateItem(item models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: blank name", ErrInvalidItem)
	}
	n := item.Nutrients()
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"calories", n.Calories},
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"sugars", n.Sugars},
		{"fat", n.Fat},
	} {
		if math.IsNaN(v.value) || v.value < 0 {
			return fmt.Errorf("%w: %q has %s %v", ErrInvalidItem, item.Name, v.name, v.value)
		}
	}
	return nil
}

// DefaultCatalog returns the built-in nine item menu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultItems())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultItems returns the built-in menu in definition order.
func DefaultItems() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Big Mac", Calories: 570, Protein: 24, Carbs: 46, Sugars: 8, Fat: 32},
		{Name: "McChicken", Calories: 400, Protein: 14, Carbs: 44, Sugars: 5, Fat: 22},
		{Name: "Filet-O-Fish", Calories: 410, Protein: 15, Carbs: 44, Sugars: 5, Fat: 20},
		{Name: "Cheeseburger", Calories: 290, Protein: 15, Carbs: 32, Sugars: 7, Fat: 11},
		{Name: "Small Fries", Calories: 220, Protein: 3, Carbs: 29, Sugars: 0, Fat: 10},
		{Name: "Medium Fries", Calories: 340, Protein: 5, Carbs: 45, Sugars: 0, Fat: 17},
		{Name: "Large Fries", Calories: 450, Protein: 6, Carbs: 63, Sugars: 0, Fat: 22},
		{Name: "McFlurry Regular", Calories: 650, Protein: 13, Carbs: 101, Sugars: 83, Fat: 22},
		{Name: "McFlurry Snack Size", Calories: 430, Protein: 9, Carbs: 66, Sugars: 54, Fat: 15},
	}
}

// Lookup finds an item by name, ignoring case.
func (c *Catalog) Lookup(name string) (models.MenuItem, bool) {
	i, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

// All returns a copy of the items in definition order.
func (c *Catalog) All() []models.MenuItem {
	items := make([]models.MenuItem, len(c.items))
	copy(items, c.items)
	return items
}

// Names lists item names in definition order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.Name
	}
	return names
}

// Len is the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}
