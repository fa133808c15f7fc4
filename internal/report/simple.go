package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, report)

	// Summary
	w.writeSummary(&sb, report)

	// Issues by priority
	w.writeIssues(&sb, report)

	// Suggestions
	w.writeSuggestions(&sb, report)

	// Notes
	w.writeNotes(&sb, report)

	// Footer
	w.writeFooter(&sb)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                   LANDING PAGE ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URL:         %s\n", report.URL))
	if report.Title != "" {
		sb.WriteString(fmt.Sprintf("Page Title:  %s\n", report.Title))
	}
	sb.WriteString(fmt.Sprintf("Genre:       %s\n", report.Genre.DisplayName()))
	sb.WriteString(fmt.Sprintf("Model:       %s (%s)\n", report.ModelName, report.Provider))
	sb.WriteString(fmt.Sprintf("Analyzed At: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))

	if report.Succeeded() {
		sb.WriteString("Status:      Complete\n")
	} else {
		sb.WriteString(fmt.Sprintf("Status:      FAILED - %s\n", report.ErrorMessage))
	}

	sb.WriteString("\n")
}

// writeSummary writes the priority summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PRIORITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  HIGH:   %d\n", report.HighCount()))
	sb.WriteString(fmt.Sprintf("  MEDIUM: %d\n", report.MediumCount()))
	sb.WriteString(fmt.Sprintf("  LOW:    %d\n", report.LowCount()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:  %d issues\n", report.TotalIssues()))
	sb.WriteString("\n")
}

// writeIssues writes all issues grouped by priority.
func (w *SimpleWriter) writeIssues(sb *strings.Builder, report *model.Report) {
	if report.TotalIssues() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ISSUES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.Result == nil {
		sb.WriteString("  No result available\n\n")
		return
	}

	// Write issues in order of priority (high first)
	priorities := []model.Priority{
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
	}

	for _, priority := range priorities {
		issues := issuesByPriority(report.Result, priority)
		if len(issues) == 0 && !w.showEmpty {
			continue
		}

		w.writeIssuesForPriority(sb, priority, issues)
	}
}

// writeIssuesForPriority writes issues of a specific priority level.
func (w *SimpleWriter) writeIssuesForPriority(sb *strings.Builder, priority model.Priority, issues []model.Issue) {
	// Priority header with visual indicator
	indicator := w.getPriorityIndicator(priority)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, strings.ToUpper(priority.String())))

	if len(issues) == 0 {
		sb.WriteString("  No issues\n\n")
		return
	}

	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("  * [%s] %s\n", issue.Category, issue.Description))
	}
	sb.WriteString("\n")
}

// getPriorityIndicator returns a visual indicator for the priority level.
func (w *SimpleWriter) getPriorityIndicator(priority model.Priority) string {
	switch priority {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!!"
	case model.PriorityLow:
		return "-"
	default:
		return "?"
	}
}

// writeSuggestions writes the improvement suggestions section.
func (w *SimpleWriter) writeSuggestions(sb *strings.Builder, report *model.Report) {
	if report.Result == nil {
		return
	}
	if len(report.Result.Suggestions) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUGGESTIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Result.Suggestions) == 0 {
		sb.WriteString("  No suggestions\n")
	} else {
		for _, s := range report.Result.Suggestions {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", s.Description))
			if w.verbose && s.IssueRef != "" {
				sb.WriteString(fmt.Sprintf("      Addresses: %s\n", s.IssueRef))
			}
		}
	}
	sb.WriteString("\n")
}

// writeNotes writes the overall notes section when the model provided any.
func (w *SimpleWriter) writeNotes(sb *strings.Builder, report *model.Report) {
	if report.Result == nil || report.Result.Notes == "" {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("NOTES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  %s\n\n", report.Result.Notes))
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by lpanalyzer\n")
	sb.WriteString("https://github.com/onitasu/lp-ai-analyzer\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
