package models

// Nutrients holds the five tracked nutrient values of an item or a whole order.
type Nutrients struct {
	Calories float64 `json:"calories" mapstructure:"calories"`
	Protein  float64 `json:"protein" mapstructure:"protein"`
	Carbs    float64 `json:"carbs" mapstructure:"carbs"`
	Sugars   float64 `json:"sugars" mapstructure:"sugars"`
	Fat      float64 `json:"fat" mapstructure:"fat"`
}

// Add returns the element-wise sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Sugars:   n.Sugars + o.Sugars,
		Fat:      n.Fat + o.Fat,
	}
}

// MenuItem is one catalog entry. Protein, carbs, sugars and fat are in grams.
type MenuItem struct {
	Name     string  `json:"name" mapstructure:"name"`
	Calories float64 `json:"calories" mapstructure:"calories"`
	Protein  float64 `json:"protein" mapstructure:"protein"`
	Carbs    float64 `json:"carbs" mapstructure:"carbs"`
	Sugars   float64 `json:"sugars" mapstructure:"sugars"`
	Fat      float64 `json:"fat" mapstructure:"fat"`
}

func (m MenuItem) Nutrients() Nutrients {
	return Nutrients{
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Sugars:   m.Sugars,
		Fat:      m.Fat,
	}
}

func (m MenuItem) String() string {
	return m.Name
}
