package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// titleCaser renders enum values ("high", "typography") as display text.
var titleCaser = cases.Title(language.English)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Header
	w.writeHeader(md, report)

	// Summary
	w.writeSummary(md, report)

	// Issues by priority
	w.writeIssues(md, report)

	// Suggestions
	w.writeSuggestions(md, report)

	// Notes
	w.writeNotes(md, report)

	// Footer
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Landing Page Analysis Report")
	md.PlainText("")

	title := report.Title
	if title == "" {
		title = "-"
	}

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Page Title", title},
			{"Genre", report.Genre.DisplayName()},
			{"Provider", string(report.Provider)},
			{"Model", report.ModelName},
			{"Analyzed At", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Attempts", strconv.Itoa(report.Attempts)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.Report) string {
	if !report.Succeeded() {
		return "❌ Failed - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeSummary writes the priority summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Priority Summary")
	md.PlainText("")

	// Summary table
	md.Table(markdown.TableSet{
		Header: []string{"Priority", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(report.HighCount())},
			{"🟡 Medium", strconv.Itoa(report.MediumCount())},
			{"🔵 Low", strconv.Itoa(report.LowCount())},
			{"**Total**", "**" + strconv.Itoa(report.TotalIssues()) + "**"},
		},
	})
	md.PlainText("")

	// Add pie chart if there are issues
	if report.TotalIssues() > 0 {
		w.writePieChart(md, report)
	}

	// Add alert based on priority counts
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for priority distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Priority Distribution"),
		piechart.WithShowData(true),
	)

	if report.HighCount() > 0 {
		chart.LabelAndIntValue("High", uint64(report.HighCount()))
	}
	if report.MediumCount() > 0 {
		chart.LabelAndIntValue("Medium", uint64(report.MediumCount()))
	}
	if report.LowCount() > 0 {
		chart.LabelAndIntValue("Low", uint64(report.LowCount()))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on priority counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case !report.Succeeded():
		md.Cautionf("Analysis failed: %s", report.ErrorMessage)
	case report.HighCount() > 0:
		md.Warningf(
			"%d high priority issue(s) found. These have major visual impact and should be fixed first.",
			report.HighCount(),
		)
	case report.MediumCount() > 0:
		md.Importantf(
			"%d medium priority issue(s) found.",
			report.MediumCount(),
		)
	case report.TotalIssues() > 0:
		md.Note("Only low priority issues found.")
	default:
		md.Tip("No visual issues found.")
	}
	md.PlainText("")
}

// writeIssues writes all issues grouped by priority.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.Report) {
	md.H2("Issues")
	md.PlainText("")

	if report.TotalIssues() == 0 {
		md.PlainText("No issues found.")
		md.PlainText("")
		return
	}

	priorities := []struct {
		level  model.Priority
		header string
	}{
		{model.PriorityHigh, "### 🔴 High"},
		{model.PriorityMedium, "### 🟡 Medium"},
		{model.PriorityLow, "### 🔵 Low"},
	}

	for _, prio := range priorities {
		issues := issuesByPriority(report.Result, prio.level)
		if len(issues) == 0 {
			continue
		}

		md.PlainText(prio.header)
		md.PlainText("")
		w.writeIssuesTable(md, issues)
	}
}

// writeIssuesTable writes a table of issues with their categories.
func (w *MarkdownWriter) writeIssuesTable(md *markdown.Markdown, issues []model.Issue) {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{
			titleCaser.String(issue.Category.String()),
			issue.Description,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Description"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSuggestions writes the improvement suggestions section.
func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, report *model.Report) {
	if report.Result == nil {
		return
	}

	md.H2("Suggestions")
	md.PlainText("")

	if len(report.Result.Suggestions) == 0 {
		md.PlainText("No suggestions.")
		md.PlainText("")
		return
	}

	items := make([]string, 0, len(report.Result.Suggestions))
	for _, s := range report.Result.Suggestions {
		item := s.Description
		if s.IssueRef != "" {
			item += " (addresses: " + s.IssueRef + ")"
		}
		items = append(items, item)
	}

	md.BulletList(items...)
	md.PlainText("")
}

// writeNotes writes the overall notes section when the model provided any.
func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, report *model.Report) {
	if report.Result == nil || report.Result.Notes == "" {
		return
	}

	md.H2("Notes")
	md.PlainText("")
	md.PlainText(report.Result.Notes)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [lpanalyzer](https://github.com/onitasu/lp-ai-analyzer)*")
}
