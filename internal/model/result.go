package model

import "fmt"

// Priority represents how urgently an issue should be addressed.
type Priority string

const (
	// PriorityHigh marks issues with major visual impact that should be
	// fixed first.
	PriorityHigh Priority = "high"

	// PriorityMedium marks issues worth fixing after high-priority work.
	PriorityMedium Priority = "medium"

	// PriorityLow marks minor polish items.
	PriorityLow Priority = "low"
)

// Valid reports whether the priority is one of the enumerated levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

// Category classifies which visual aspect of the page an issue concerns.
// The set mirrors the audit axes of the analysis prompts; the validator
// rejects model output using categories outside this set.
type Category string

const (
	// CategoryTypography covers font sizing, line height, and text hierarchy.
	CategoryTypography Category = "typography"

	// CategoryColor covers color usage, contrast, and brand consistency.
	CategoryColor Category = "color"

	// CategoryLayout covers placement, alignment, and grid structure.
	CategoryLayout Category = "layout"

	// CategoryImagery covers photos, illustrations, and icons.
	CategoryImagery Category = "imagery"

	// CategorySpacing covers margins, padding, and whitespace balance.
	CategorySpacing Category = "spacing"

	// CategoryHierarchy covers visual emphasis and reading order.
	CategoryHierarchy Category = "hierarchy"

	// CategoryCTA covers call-to-action visibility and affordance.
	CategoryCTA Category = "cta"

	// CategoryCopy covers the visual presentation of text content.
	CategoryCopy Category = "copy"

	// CategoryOther covers visual issues outside the axes above.
	CategoryOther Category = "other"
)

// allCategories is the fixed set the validator checks against.
var allCategories = map[Category]bool{
	CategoryTypography: true,
	CategoryColor:      true,
	CategoryLayout:     true,
	CategoryImagery:    true,
	CategorySpacing:    true,
	CategoryHierarchy:  true,
	CategoryCTA:        true,
	CategoryCopy:       true,
	CategoryOther:      true,
}

// AllCategories returns every accepted category.
// The order is stable for prompt generation and display.
func AllCategories() []Category {
	return []Category{
		CategoryTypography,
		CategoryColor,
		CategoryLayout,
		CategoryImagery,
		CategorySpacing,
		CategoryHierarchy,
		CategoryCTA,
		CategoryCopy,
		CategoryOther,
	}
}

// Valid reports whether the category is part of the accepted set.
func (c Category) Valid() bool {
	return allCategories[c]
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Issue is one problem the model found on the page.
type Issue struct {
	// Description explains the problem and why it matters.
	Description string `json:"description"`

	// Priority is the urgency of fixing the problem.
	Priority Priority `json:"priority"`

	// Category is the visual aspect the problem concerns.
	Category Category `json:"category"`
}

// Suggestion is one improvement the model proposes.
type Suggestion struct {
	// Description explains the proposed change and its expected effect.
	Description string `json:"description"`

	// IssueRef optionally references the issue this suggestion addresses,
	// typically by quoting part of the issue description.
	IssueRef string `json:"issue_ref,omitempty"`
}

// AnalysisResult is the validated critique produced by one analysis run.
// It is the pipeline's sole success value: every AnalysisResult that leaves
// the pipeline has already passed schema validation, and it is never mutated
// after construction.
//
// The JSON field names form the interchange format used for file export and
// run persistence: issues[]{description, priority, category},
// suggestions[]{description, issue_ref}, notes.
type AnalysisResult struct {
	// Issues lists the problems found, unordered.
	Issues []Issue `json:"issues"`

	// Suggestions lists proposed improvements.
	Suggestions []Suggestion `json:"suggestions"`

	// Notes holds overall observations that fit neither list.
	Notes string `json:"notes"`
}

// CountByPriority returns how many issues carry the given priority.
func (r *AnalysisResult) CountByPriority(p Priority) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Priority == p {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the result for logging.
func (r *AnalysisResult) Summary() string {
	return fmt.Sprintf("%d issues (%d high), %d suggestions",
		len(r.Issues), r.CountByPriority(PriorityHigh), len(r.Suggestions))
}
