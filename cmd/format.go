package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrisdamba/nutritrack/internal/models"
)

func formatGrams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printNutrients(w io.Writer, indent string, n models.Nutrients) {
	fmt.Fprintf(w, "%scalories %s, protein %sg, carbs %sg, sugars %sg, fat %sg\n",
		indent,
		models.FormatCalories(n.Calories),
		formatGrams(n.Protein),
		formatGrams(n.Carbs),
		formatGrams(n.Sugars),
		formatGrams(n.Fat),
	)
}

// splitList parses a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
