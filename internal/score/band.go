package score

// Band is the five-tier visual identity of a score.
type Band int

const (
	Danger Band = iota
	Warning
	Caution
	Good
	Excellent
)

// BandFor returns the band a score falls into.
func BandFor(score int) Band {
	switch {
	case score < 25:
		return Danger
	case score < 50:
		return Warning
	case score < 75:
		return Caution
	case score < 90:
		return Good
	default:
		return Excellent
	}
}

func (b Band) String() string {
	switch b {
	case Danger:
		return "danger"
	case Warning:
		return "warning"
	case Caution:
		return "caution"
	case Good:
		return "good"
	default:
		return "excellent"
	}
}

// Color is the theme color name of the band.
func (b Band) Color() string {
	switch b {
	case Danger:
		return "red"
	case Warning:
		return "orange"
	case Caution:
		return "yellow"
	case Good:
		return "green"
	default:
		return "emerald"
	}
}

// Rising reports whether the strength bar shows an upward trend glyph.
func Rising(score int) bool {
	return score >= 50
}
