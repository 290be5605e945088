package menu

import (
	"math"
	"testing"

	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, 9, c.Len())
	assert.Equal(t, []string{
		"Big Mac", "McChicken", "Filet-O-Fish", "Cheeseburger", "Small Fries",
		"Medium Fries", "Large Fries", "McFlurry Regular", "McFlurry Snack Size",
	}, c.Names())
}

func TestLookupIgnoresCase(t *testing.T) {
	c := DefaultCatalog()

	item, ok := c.Lookup("big mac")
	require.True(t, ok)
	assert.Equal(t, "Big Mac", item.Name)
	assert.Equal(t, 570.0, item.Calories)

	_, ok = c.Lookup("BIG MAC")
	assert.True(t, ok)

	_, ok = c.Lookup("Big Mac ")
	assert.False(t, ok)
	_, ok = c.Lookup("Whopper")
	assert.False(t, ok)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]models.MenuItem{
		{Name: "Apple", Calories: 95},
		{Name: "APPLE", Calories: 100},
	})
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestAllReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	items := c.All()
	items[0].Name = "Changed"

	assert.Equal(t, "Big Mac", c.All()[0].Name)
}

func TestEmptyCatalog(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.All())
}

func TestNewCatalogRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item models.MenuItem
	}{
		{"empty name", models.MenuItem{Name: "", Calories: 10}},
		{"blank name", models.MenuItem{Name: "  ", Calories: 10}},
		{"negative calories", models.MenuItem{Name: "Neg", Calories: -200}},
		{"NaN calories", models.MenuItem{Name: "NaN", Calories: math.NaN()}},
		{"negative protein", models.MenuItem{Name: "Shake", Calories: 300, Protein: -1}},
		{"negative carbs", models.MenuItem{Name: "Shake", Calories: 300, Carbs: -1}},
		{"NaN sugars", models.MenuItem{Name: "Shake", Calories: 300, Sugars: math.NaN()}},
		{"negative fat", models.MenuItem{Name: "Shake", Calories: 300, Fat: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]models.MenuItem{{Name: "A", Calories: 300}, tt.item})
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

func TestNewCatalogAcceptsZeroNutrients(t *testing.T) {
	c, err := NewCatalog([]models.MenuItem{{Name: "Water"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Water"}, c.Names())
}
