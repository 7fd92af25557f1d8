package risk

import "strings"

// Tier is the closed set of attack-vector risk classes.
type Tier int

const (
	// Generic is the lowest severity and the fallback for unknown types.
	Generic Tier = iota
	// Dictionary is medium severity.
	Dictionary
	// BruteForce is the highest severity.
	BruteForce
)

// Classify maps a free-form attack type to a tier by case-insensitive
// substring match.
func Classify(attackType string) Tier {
	t := strings.ToLower(attackType)
	switch {
	case strings.Contains(t, "brute_force"):
		return BruteForce
	case strings.Contains(t, "dictionary"):
		return Dictionary
	default:
		return Generic
	}
}

func (t Tier) String() string {
	switch t {
	case BruteForce:
		return "brute-force"
	case Dictionary:
		return "dictionary"
	default:
		return "generic"
	}
}

// Severity uses a low/medium/high scale for quick triage.
func (t Tier) Severity() string {
	switch t {
	case BruteForce:
		return "high"
	case Dictionary:
		return "medium"
	default:
		return "low"
	}
}
