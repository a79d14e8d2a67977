package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		found bool
	}{
		{"gpt-4o-mini", true},
		{"claude-haiku-4-5-20251001", true},
		{"google/gemini-2.0-flash-001", true},
		{"mock", false},
		{"vendor/unknown", false},
	}
	for _, tt := range tests {
		if got := LookupCost(tt.model); (got != nil) != tt.found {
			t.Errorf("LookupCost(%q) found=%v, want %v", tt.model, got != nil, tt.found)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	got := c.Cost(2_000, 1_000)
	if math.Abs(got-0.007) > 1e-12 {
		t.Fatalf("Cost = %v, want 0.007", got)
	}
}
