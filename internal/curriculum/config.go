package curriculum

import "math"

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}

// TimeOption is a selectable time budget.
type TimeOption struct {
	Label   string
	Minutes int
}

// TimeOptions are the budgets offered on the home screen.
var TimeOptions = []TimeOption{
	{Label: "Speed (1h)", Minutes: 60},
	{Label: "Normal (2h)", Minutes: 120},
	{Label: "Deep (5h)", Minutes: 300},
	{Label: "Expert (10h+)", Minutes: 600},
}

// DefaultMinutes is the budget preselected on the home screen.
const DefaultMinutes = 120

// DefaultTimeOption returns the index of DefaultMinutes in TimeOptions.
func DefaultTimeOption() int {
	for i, o := range TimeOptions {
		if o.Minutes == DefaultMinutes {
			return i
		}
	}
	return 0
}

// ModuleCount is the number of modules requested for a budget: one per
// hour, rounded, never fewer than one. A non-positive budget returns 0,
// meaning the model chooses.
func ModuleCount(budgetMinutes int) int {
	if budgetMinutes <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(budgetMinutes)/60)))
}
