package model

import (
	"encoding/json"
	"testing"
)

func TestAnalysisPresence(t *testing.T) {
	t.Parallel()
	body := `{"analysis":{"length":10,"has_uppercase":false,"crack_time":{"crack_time_seconds":3.5,"score":1}}}`

	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := resp.Analysis
	if a.Empty() {
		t.Fatal("analysis should not be empty")
	}
	if a.Length == nil || *a.Length != 10 {
		t.Fatalf("Length = %v, want 10", a.Length)
	}
	if a.HasUppercase == nil || *a.HasUppercase {
		t.Fatal("has_uppercase should be present and false")
	}
	if a.HasLowercase != nil {
		t.Fatal("has_lowercase should be absent")
	}
	if a.CrackTime == nil || a.CrackTime.Display != nil {
		t.Fatal("crack_time should be present without a display value")
	}
}

func TestAnalysisNullFlagIsPresentAndFalse(t *testing.T) {
	t.Parallel()
	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(`{"analysis":{"has_digit":null}}`), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := resp.Analysis
	if a.HasDigit == nil || *a.HasDigit {
		t.Fatalf("has_digit = %v, want present and false", a.HasDigit)
	}
	if a.HasUppercase != nil || a.HasLowercase != nil || a.HasSpecial != nil {
		t.Fatal("absent flags must stay nil")
	}
}

func TestAnalysisEmpty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "emptyObject", body: `{"analysis":{},"summary":"ignored"}`, want: true},
		{name: "null", body: `{"analysis":null}`, want: true},
		{name: "missing", body: `{"summary":"x"}`, want: true},
		{name: "unknownKeyOnly", body: `{"analysis":{"zxcvbn":1}}`, want: false},
		{name: "nullPatterns", body: `{"analysis":{"common_patterns":null}}`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var resp AnalysisResponse
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := resp.Analysis.Empty(); got != tt.want {
				t.Fatalf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalysisWrongShape(t *testing.T) {
	t.Parallel()
	var resp AnalysisResponse
	if err := json.Unmarshal([]byte(`{"analysis":"nope"}`), &resp); err == nil {
		t.Fatal("expected error for non-object analysis")
	}
}
