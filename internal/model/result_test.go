package model

import (
	"encoding/json"
	"testing"
)

// TestPriorityValid verifies the priority enumeration.
func TestPriorityValid(t *testing.T) {
	t.Parallel()

	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if !p.Valid() {
			t.Errorf("priority %s should be valid", p)
		}
	}

	for _, p := range []Priority{"", "urgent", "critical", "HIGH"} {
		if p.Valid() {
			t.Errorf("priority %q should be invalid", p)
		}
	}
}

// TestCategoryValid verifies the category enumeration.
func TestCategoryValid(t *testing.T) {
	t.Parallel()

	for _, c := range AllCategories() {
		if !c.Valid() {
			t.Errorf("category %s should be valid", c)
		}
	}

	for _, c := range []Category{"", "seo", "performance", "Color"} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

// TestAnalysisResultCounts covers the priority counting helpers.
func TestAnalysisResultCounts(t *testing.T) {
	t.Parallel()

	result := &AnalysisResult{
		Issues: []Issue{
			{Description: "a", Priority: PriorityHigh, Category: CategoryColor},
			{Description: "b", Priority: PriorityHigh, Category: CategoryLayout},
			{Description: "c", Priority: PriorityLow, Category: CategorySpacing},
		},
		Suggestions: []Suggestion{{Description: "fix it"}},
	}

	if got := result.CountByPriority(PriorityHigh); got != 2 {
		t.Errorf("high count = %d, want 2", got)
	}
	if got := result.CountByPriority(PriorityMedium); got != 0 {
		t.Errorf("medium count = %d, want 0", got)
	}
	if got := result.CountByPriority(PriorityLow); got != 1 {
		t.Errorf("low count = %d, want 1", got)
	}

	if summary := result.Summary(); summary != "3 issues (2 high), 1 suggestions" {
		t.Errorf("unexpected summary: %q", summary)
	}
}

// TestInterchangeFieldNames pins the interchange JSON format: downstream
// tools and the run database parse these exact field names.
func TestInterchangeFieldNames(t *testing.T) {
	t.Parallel()

	result := AnalysisResult{
		Issues:      []Issue{{Description: "d", Priority: PriorityLow, Category: CategoryOther}},
		Suggestions: []Suggestion{{Description: "s", IssueRef: "d"}},
		Notes:       "n",
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"issues":[{"description":"d","priority":"low","category":"other"}],"suggestions":[{"description":"s","issue_ref":"d"}],"notes":"n"}`
	if string(data) != want {
		t.Errorf("interchange JSON mismatch:\n  got:  %s\n  want: %s", data, want)
	}
}

// TestSuggestionIssueRefOmitted verifies empty issue_ref is dropped.
func TestSuggestionIssueRefOmitted(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Suggestion{Description: "s"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(data) != `{"description":"s"}` {
		t.Errorf("expected issue_ref omitted, got %s", data)
	}
}
