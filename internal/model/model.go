package model

import (
	"encoding/json"
	"strings"
)

// AnalyzeRequest is the body sent to the scoring service.
type AnalyzeRequest struct {
	Password string `json:"password"`
}

// CrackTime is the brute-force estimate reported by the backend.
type CrackTime struct {
	Seconds float64 `json:"crack_time_seconds"`
	Display *string `json:"crack_time_display,omitempty"`
	Score   int     `json:"score"`
}

// StrengthPrediction is the classifier output, category 0-4.
type StrengthPrediction struct {
	Category     int    `json:"category"`
	CategoryName string `json:"category_name"`
}

// Analysis holds the named metrics of a response. Pointer fields keep key
// presence: a nil field means the key was absent.
type Analysis struct {
	Length             *int                `json:"length,omitempty"`
	Entropy            *float64            `json:"entropy,omitempty"`
	CrackTime          *CrackTime          `json:"crack_time,omitempty"`
	StrengthPrediction *StrengthPrediction `json:"strength_prediction,omitempty"`
	HasUppercase       *bool               `json:"has_uppercase,omitempty"`
	HasLowercase       *bool               `json:"has_lowercase,omitempty"`
	HasDigit           *bool               `json:"has_digit,omitempty"`
	HasSpecial         *bool               `json:"has_special,omitempty"`
	CommonPatterns     []string            `json:"common_patterns,omitempty"`

	// keys counts every key of the decoded mapping, known or not.
	keys int
}

// UnmarshalJSON decodes the mapping and remembers how many keys it had.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*a = Analysis{}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain Analysis
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Analysis(p)
	a.keys = len(raw)

	// A flag sent as null is still present and reads as false.
	for key, flag := range map[string]**bool{
		"has_uppercase": &a.HasUppercase,
		"has_lowercase": &a.HasLowercase,
		"has_digit":     &a.HasDigit,
		"has_special":   &a.HasSpecial,
	} {
		if _, ok := raw[key]; ok && *flag == nil {
			*flag = new(bool)
		}
	}
	return nil
}

// Empty reports whether the mapping carried no keys at all.
func (a Analysis) Empty() bool {
	if a.keys > 0 {
		return false
	}
	return a.Length == nil &&
		a.Entropy == nil &&
		a.CrackTime == nil &&
		a.StrengthPrediction == nil &&
		a.HasUppercase == nil &&
		a.HasLowercase == nil &&
		a.HasDigit == nil &&
		a.HasSpecial == nil &&
		a.CommonPatterns == nil
}

// AttackVector is one plausible attack strategy against the password.
type AttackVector struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`
}

// AnalysisResponse is the full payload of the scoring service.
type AnalysisResponse struct {
	Analysis           Analysis       `json:"analysis"`
	Summary            string         `json:"summary,omitempty"`
	PrimaryWeakness    string         `json:"primary_weakness,omitempty"`
	TimeAnalysis       string         `json:"time_analysis,omitempty"`
	CharacterVariety   string         `json:"character_variety,omitempty"`
	PatternAnalysis    string         `json:"pattern_analysis,omitempty"`
	ImprovedSuggestion string         `json:"improved_suggestion,omitempty"`
	Suggestions        []string       `json:"suggestions,omitempty"`
	AttackVectors      []AttackVector `json:"attack_vectors,omitempty"`
	Error              string         `json:"error,omitempty"`
}
