// Package score turns heterogeneous analysis payloads into a single 0-100
// score, a category name and a visual band.
package score

import "github.com/selimozcann/StrengthLens/internal/model"

// Unknown is the category shown when neither a prediction nor a crack time
// is available.
const Unknown = "Unknown"

const (
	minute = 60.0
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 30 * day
)

// Result is a normalized score with its category label.
type Result struct {
	Score    int
	Category string
}

// Normalize derives the display score, always within 0-100. A strength
// prediction wins over a crack time estimate.
func Normalize(a model.Analysis) Result {
	switch {
	case a.StrengthPrediction != nil:
		return Result{
			Score:    clamp(a.StrengthPrediction.Category * 25),
			Category: a.StrengthPrediction.CategoryName,
		}
	case a.CrackTime != nil:
		return Result{
			Score:    FromCrackSeconds(a.CrackTime.Seconds),
			Category: CategoryFromCrackScore(a.CrackTime.Score),
		}
	default:
		return Result{Score: 0, Category: Unknown}
	}
}

func clamp(score int) int {
	return min(max(score, 0), 100)
}

// FromCrackSeconds buckets a crack time estimate. A value exactly on a
// threshold falls into the higher bucket.
func FromCrackSeconds(s float64) int {
	switch {
	case s < 1:
		return 0
	case s < minute:
		return 15
	case s < hour:
		return 30
	case s < day:
		return 45
	case s < week:
		return 60
	case s < month:
		return 75
	default:
		return 90
	}
}

// CategoryFromCrackScore maps the backend's 0-4 crack score to a label.
func CategoryFromCrackScore(n int) string {
	switch {
	case n <= 1:
		return "Weak"
	case n == 2:
		return "Medium"
	case n == 3:
		return "Strong"
	default:
		return "Very Strong"
	}
}
