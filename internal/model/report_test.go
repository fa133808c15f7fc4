package model

import "testing"

// TestNewReport verifies the report shell carries run metadata.
func TestNewReport(t *testing.T) {
	t.Parallel()

	page := &CapturedPage{URL: "https://example.com", Title: "Example"}
	cfg := ModelConfig{
		Provider:        ProviderOpenAI,
		ModelName:       "gpt-5-mini",
		Verbosity:       VerbosityLow,
		ReasoningEffort: EffortMinimal,
	}

	report := NewReport(page, GenreRecruiting, cfg)

	if report.URL != "https://example.com" {
		t.Errorf("URL = %q", report.URL)
	}
	if report.Title != "Example" {
		t.Errorf("Title = %q", report.Title)
	}
	if report.Genre != GenreRecruiting {
		t.Errorf("Genre = %q", report.Genre)
	}
	if report.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", report.Provider)
	}
	if report.ModelName != "gpt-5-mini" {
		t.Errorf("ModelName = %q", report.ModelName)
	}
	if report.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt not set")
	}
	if report.Succeeded() {
		t.Error("fresh report should not report success")
	}
}

// TestReportCounts covers the count helpers on success and failure paths.
func TestReportCounts(t *testing.T) {
	t.Parallel()

	t.Run("failed run counts zero", func(t *testing.T) {
		t.Parallel()

		report := &Report{ErrorMessage: "validation_exhausted"}

		if report.Succeeded() {
			t.Error("report with nil result should not succeed")
		}
		if report.TotalIssues() != 0 || report.HighCount() != 0 {
			t.Error("failed run should count zero issues")
		}
	})

	t.Run("successful run counts by priority", func(t *testing.T) {
		t.Parallel()

		report := &Report{
			Result: &AnalysisResult{
				Issues: []Issue{
					{Description: "a", Priority: PriorityHigh, Category: CategoryCTA},
					{Description: "b", Priority: PriorityMedium, Category: CategoryColor},
					{Description: "c", Priority: PriorityMedium, Category: CategoryCopy},
					{Description: "d", Priority: PriorityLow, Category: CategoryOther},
				},
			},
		}

		if !report.Succeeded() {
			t.Error("report with result should succeed")
		}
		if report.HighCount() != 1 || report.MediumCount() != 2 || report.LowCount() != 1 {
			t.Errorf("counts = %d/%d/%d, want 1/2/1",
				report.HighCount(), report.MediumCount(), report.LowCount())
		}
		if report.TotalIssues() != 4 {
			t.Errorf("total = %d, want 4", report.TotalIssues())
		}
	})
}
