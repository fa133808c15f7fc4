package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// rawResult mirrors the interchange format with pointer fields so that
// "key absent" and "key present but empty" stay distinguishable. Unknown
// extra fields are tolerated and dropped by the decoder.
type rawResult struct {
	Issues      *[]rawIssue      `json:"issues"`
	Suggestions *[]rawSuggestion `json:"suggestions"`
	Notes       *string          `json:"notes"`
}

type rawIssue struct {
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

type rawSuggestion struct {
	Description string `json:"description"`
	IssueRef    string `json:"issue_ref"`
}

// Parse validates raw model output against the result schema.
//
// It is a pure transformation with no network or file I/O: the same input
// always yields the same result or the same error kind, which keeps unit
// tests deterministic with literal text fixtures.
//
// Failure modes:
//   - KindStructuredDecode when the text is not well-formed JSON
//   - KindSchemaViolation when required fields are absent, descriptions are
//     empty, or priority/category values fall outside the enumerated sets
//
// Model output is untrusted input; no field of the returned AnalysisResult
// is populated until every check has passed.
func Parse(raw string) (*model.AnalysisResult, error) {
	body := stripFences(raw)

	var decoded rawResult
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, &PipelineError{
			Kind:        KindStructuredDecode,
			RawResponse: raw,
			Err:         err,
		}
	}

	if err := checkSchema(&decoded); err != nil {
		return nil, &PipelineError{
			Kind:        KindSchemaViolation,
			RawResponse: raw,
			Err:         err,
		}
	}

	result := &model.AnalysisResult{
		Issues:      make([]model.Issue, 0, len(*decoded.Issues)),
		Suggestions: make([]model.Suggestion, 0, len(*decoded.Suggestions)),
	}
	for _, issue := range *decoded.Issues {
		result.Issues = append(result.Issues, model.Issue{
			Description: issue.Description,
			Priority:    model.Priority(issue.Priority),
			Category:    model.Category(issue.Category),
		})
	}
	for _, s := range *decoded.Suggestions {
		result.Suggestions = append(result.Suggestions, model.Suggestion{
			Description: s.Description,
			IssueRef:    s.IssueRef,
		})
	}
	if decoded.Notes != nil {
		result.Notes = *decoded.Notes
	}

	return result, nil
}

// checkSchema enforces the required-field and enumerated-value contract.
// It returns the first violation found; fixing one violation often changes
// the rest, so collecting all of them adds noise without value.
func checkSchema(decoded *rawResult) error {
	if decoded.Issues == nil {
		return fmt.Errorf("missing required field %q", "issues")
	}
	if decoded.Suggestions == nil {
		return fmt.Errorf("missing required field %q", "suggestions")
	}

	for i, issue := range *decoded.Issues {
		if issue.Description == "" {
			return fmt.Errorf("issues[%d]: missing description", i)
		}
		if !model.Priority(issue.Priority).Valid() {
			return fmt.Errorf("issues[%d]: priority %q outside enumerated set", i, issue.Priority)
		}
		if !model.Category(issue.Category).Valid() {
			return fmt.Errorf("issues[%d]: category %q outside enumerated set", i, issue.Category)
		}
	}

	for i, s := range *decoded.Suggestions {
		if s.Description == "" {
			return fmt.Errorf("suggestions[%d]: missing description", i)
		}
	}

	return nil
}

// stripFences removes a surrounding markdown code fence when present.
// Models occasionally wrap JSON output in ```json fences despite the
// output contract; the payload inside is otherwise valid, so unwrapping it
// is cheaper than burning a retry.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag such as "json" on the fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || !strings.ContainsAny(first, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
