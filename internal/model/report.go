package model

import "time"

// Report wraps an AnalysisResult with the run metadata needed for export.
//
// Design decision: We keep run metadata out of AnalysisResult itself because
// AnalysisResult is exactly what the model produced and validation approved;
// mixing in run context would blur the boundary the validator enforces.
type Report struct {
	// URL is the analyzed landing page.
	URL string `json:"url"`

	// Title is the page title when the capture layer found one.
	Title string `json:"title,omitempty"`

	// Genre is the landing-page category used for prompt selection.
	Genre Genre `json:"genre"`

	// Provider is the model backend that produced the result.
	Provider Provider `json:"provider"`

	// ModelName is the provider-specific model identifier.
	ModelName string `json:"model_name"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Attempts is how many provider invocations the run needed,
	// including validation retries.
	Attempts int `json:"attempts"`

	// Result is the validated critique. Nil when the run failed.
	Result *AnalysisResult `json:"result,omitempty"`

	// ErrorMessage describes the failure when Result is nil.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewReport creates a report shell for the given page and configuration.
// The result or error is attached by the caller once the run finishes.
func NewReport(page *CapturedPage, genre Genre, cfg ModelConfig) *Report {
	return &Report{
		URL:        page.URL,
		Title:      page.Title,
		Genre:      genre,
		Provider:   cfg.Provider,
		ModelName:  cfg.ModelName,
		AnalyzedAt: time.Now(),
	}
}

// Succeeded reports whether the run produced a validated result.
func (r *Report) Succeeded() bool {
	return r.Result != nil
}

// HighCount returns the number of high-priority issues, or zero for
// failed runs.
func (r *Report) HighCount() int {
	if r.Result == nil {
		return 0
	}
	return r.Result.CountByPriority(PriorityHigh)
}

// MediumCount returns the number of medium-priority issues.
func (r *Report) MediumCount() int {
	if r.Result == nil {
		return 0
	}
	return r.Result.CountByPriority(PriorityMedium)
}

// LowCount returns the number of low-priority issues.
func (r *Report) LowCount() int {
	if r.Result == nil {
		return 0
	}
	return r.Result.CountByPriority(PriorityLow)
}

// TotalIssues returns the total number of issues found.
func (r *Report) TotalIssues() int {
	if r.Result == nil {
		return 0
	}
	return len(r.Result.Issues)
}
