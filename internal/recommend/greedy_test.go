package recommend

import (
	"math/rand"
	"testing"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGreedySkipsOverflowingItems(t *testing.T) {
	items := []models.MenuItem{
		{Name: "big", Calories: 600},
		{Name: "medium", Calories: 300},
		{Name: "huge", Calories: 900},
		{Name: "small", Calories: 100},
	}

	got := Greedy(items, 1000)
	assert.Equal(t, []models.MenuItem{items[0], items[1], items[3]}, got)
}

func TestGreedyExactFit(t *testing.T) {
	items := []models.MenuItem{{Name: "A", Calories: 100}, {Name: "B", Calories: 150}, {Name: "C", Calories: 200}}
	got := Greedy(items, 250)
	assert.Equal(t, []models.MenuItem{items[0], items[1]}, got)
}

func TestGreedyStaysWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		items := make([]models.MenuItem, rng.Intn(12))
		for i := range items {
			items[i] = models.MenuItem{Name: string(rune('a' + i)), Calories: float64(rng.Intn(700))}
		}
		budget := rng.Intn(2000) - 100

		selected := Greedy(items, budget)

		var sum float64
		next := 0
		for _, item := range selected {
			// selection preserves candidate order
			for next < len(items) && items[next] != item {
				next++
			}
			assert.Less(t, next, len(items))
			next++

			before := sum
			sum += item.Calories
			assert.GreaterOrEqual(t, sum, before)
		}
		if len(selected) > 0 {
			assert.LessOrEqual(t, sum, float64(budget))
		}
	}
}

func TestGreedyEmpty(t *testing.T) {
	assert.Empty(t, Greedy(nil, 1000))
	assert.Empty(t, Greedy([]models.MenuItem{{Name: "A", Calories: 1}}, 0))
}
