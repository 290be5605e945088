package frequency

import (
	"fmt"

	"github.com/chrisdamba/nutritrack/internal/history"
	"github.com/chrisdamba/nutritrack/internal/models"
)

// Map counts how many times each item name was ordered. Absent means zero.
type Map map[string]int

func (m Map) Count(name string) int {
	return m[name]
}

// Builder derives a customer's item counts from the history log plus items
// ordered this session that are not persisted yet.
type Builder struct {
	store history.Store
}

func NewBuilder(store history.Store) *Builder {
	return &Builder{store: store}
}

// Build scans the customer's records and adds one per item occurrence, then
// one per session item. If the log cannot be read the returned map still holds
// the session counts, alongside the error.
func (b *Builder) Build(customer string, sessionItems []string) (Map, error) {
	freq := make(Map)

	scanErr := b.store.Walk(customer, func(rec models.HistoryRecord) error {
		for _, name := range rec.Items {
			if name != "" {
				freq[name]++
			}
		}
		return nil
	})
	if scanErr != nil {
		// drop partial history so the result is session-only
		freq = make(Map)
		scanErr = fmt.Errorf("failed to read order history for %q: %w", customer, scanErr)
	}

	for _, name := range sessionItems {
		freq[name]++
	}
	return freq, scanErr
}
