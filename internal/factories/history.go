package factories

import (
	"errors"
	"math/rand"
	"time"

	"github.com/chrisdamba/nutritrack/internal/menu"
	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/jaswdr/faker"
)

// Customer is a synthetic customer with a few favourite items it keeps coming
// back to, so generated history has real frequency patterns.
type Customer struct {
	Name       string
	Favourites []models.MenuItem
}

// HistoryFactory generates plausible order history for demos and load tests.
type HistoryFactory struct {
	catalog *menu.Catalog
	fake    faker.Faker
}

func NewHistoryFactory(catalog *menu.Catalog, seed int64) (*HistoryFactory, error) {
	if catalog.Len() == 0 {
		return nil, errors.New("cannot generate history from an empty catalog")
	}
	return &HistoryFactory{
		catalog: catalog,
		fake:    faker.NewWithSeed(rand.NewSource(seed)),
	}, nil
}

func (hf *HistoryFactory) CreateCustomer() Customer {
	items := hf.catalog.All()
	favouriteCount := hf.fake.IntBetween(1, min(3, len(items)))

	favourites := make([]models.MenuItem, 0, favouriteCount)
	for _, i := range hf.pick(len(items), favouriteCount) {
		favourites = append(favourites, items[i])
	}

	return Customer{
		Name:       hf.fake.Person().FirstName(),
		Favourites: favourites,
	}
}

// CreateOrder builds an order of 1 to maxItems items placed between start and
// end. Roughly 70% of the items come from the customer's favourites.
func (hf *HistoryFactory) CreateOrder(customer Customer, start, end time.Time, maxItems int) *models.Order {
	if maxItems < 1 {
		maxItems = 1
	}
	placedAt := hf.fake.Time().TimeBetween(start, end).Truncate(time.Minute)
	order := models.NewOrder(customer.Name, placedAt)

	items := hf.catalog.All()
	itemCount := hf.fake.IntBetween(1, maxItems)
	for i := 0; i < itemCount; i++ {
		if len(customer.Favourites) > 0 && hf.fake.IntBetween(0, 99) < 70 {
			order.AddItem(customer.Favourites[hf.fake.IntBetween(0, len(customer.Favourites)-1)])
		} else {
			order.AddItem(items[hf.fake.IntBetween(0, len(items)-1)])
		}
	}
	return order
}

// pick returns n distinct indexes in [0, size).
func (hf *HistoryFactory) pick(size, n int) []int {
	indexes := make([]int, size)
	for i := range indexes {
		indexes[i] = i
	}
	for i := 0; i < n; i++ {
		j := hf.fake.IntBetween(i, size-1)
		indexes[i], indexes[j] = indexes[j], indexes[i]
	}
	return indexes[:n]
}
