package recommend

import (
	"sort"

	"github.com/chrisdamba/nutritrack/internal/frequency"
	"github.com/chrisdamba/nutritrack/internal/menu"
	"github.com/chrisdamba/nutritrack/internal/models"
	"github.com/rs/zerolog"
)

// FrequencySource supplies a customer's item counts.
type FrequencySource interface {
	Build(customer string, sessionItems []string) (frequency.Map, error)
}

// Engine recommends orders under a calorie budget from a fixed catalog and the
// customer's ordering frequency.
type Engine struct {
	catalog *menu.Catalog
	freq    FrequencySource
	logger  zerolog.Logger
}

func NewEngine(catalog *menu.Catalog, freq FrequencySource, logger zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		freq:    freq,
		logger:  logger,
	}
}

// Generate returns exactly three recommendations, in order Familiar, Nudge,
// Explore. Any of them may be empty; no budget is rejected.
//
// If the order history cannot be read, the recommendations are built from the
// session items alone and returned together with the error.
func (e *Engine) Generate(customer string, desiredCalories int, sessionItems []string) ([]Recommendation, error) {
	freq, err := e.freq.Build(customer, sessionItems)
	if err != nil {
		e.logger.Warn().Err(err).Str("customer", customer).Msg("history unavailable, using session items only")
	}

	candidates := Candidates(e.catalog.All(), freq)
	recs := make([]Recommendation, len(candidates))
	for i, c := range candidates {
		recs[i] = Recommendation{
			Strategy: c.Strategy,
			Items:    Greedy(c.Items, desiredCalories),
		}
	}

	e.logger.Debug().
		Str("customer", customer).
		Int("budget", desiredCalories).
		Int("familiar", len(candidates[0].Items)).
		Int("familiar_selected", len(recs[0].Items)).
		Int("nudge_selected", len(recs[1].Items)).
		Int("explore_selected", len(recs[2].Items)).
		Msg("generated recommendations")

	return recs, err
}

// Candidates splits items into familiar (count > 0) and novel ones and builds
// the three ordered candidate lists. Familiar items are sorted by count,
// highest first, with ties kept in catalog order; novel items by name.
func Candidates(items []models.MenuItem, freq frequency.Map) []Recommendation {
	var familiar, novel []models.MenuItem
	for _, item := range items {
		if freq.Count(item.Name) > 0 {
			familiar = append(familiar, item)
		} else {
			novel = append(novel, item)
		}
	}

	// must stay stable: equal counts keep catalog order
	sort.SliceStable(familiar, func(i, j int) bool {
		return freq.Count(familiar[i].Name) > freq.Count(familiar[j].Name)
	})
	sort.SliceStable(novel, func(i, j int) bool {
		return novel[i].Name < novel[j].Name
	})

	nudge := make([]models.MenuItem, 0, len(familiar)+1)
	if len(novel) > 0 {
		nudge = append(nudge, novel[0])
	}
	nudge = append(nudge, familiar...)

	explore := make([]models.MenuItem, 0, len(novel)+len(familiar))
	explore = append(explore, novel...)
	explore = append(explore, familiar...)

	return []Recommendation{
		{Strategy: Familiar, Items: append([]models.MenuItem(nil), familiar...)},
		{Strategy: Nudge, Items: nudge},
		{Strategy: Explore, Items: explore},
	}
}

// Greedy walks candidates once, keeping each item whose calories still fit in
// what is left of the budget. Items that overflow are skipped, so a later,
// smaller item can still be taken.
func Greedy(candidates []models.MenuItem, desiredCalories int) []models.MenuItem {
	budget := float64(desiredCalories)
	selected := make([]models.MenuItem, 0, len(candidates))
	var sum float64
	for _, item := range candidates {
		if sum+item.Calories <= budget {
			selected = append(selected, item)
			sum += item.Calories
		}
	}
	return selected
}
