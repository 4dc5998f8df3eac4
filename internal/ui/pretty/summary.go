package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/excmd/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats report totals as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 40 lines checked".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if totals.Issues == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", totals.Files, plural(totals.Files, wordFile, wordFiles))) + "\n"
	}

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}

	issueWord := plural(totals.Issues, "issue", "issues")
	head := fmt.Sprintf("%d %s", totals.Issues, issueWord)
	if len(severityParts) > 0 {
		head = fmt.Sprintf("%d %s (%s)", totals.Issues, issueWord, strings.Join(severityParts, ", "))
	}

	parts := []string{
		head + fmt.Sprintf(" in %d %s", totals.FilesWithIssues, plural(totals.FilesWithIssues, wordFile, wordFiles)),
		s.Dim.Render(fmt.Sprintf("%d lines checked", totals.Lines)),
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", totals.FilesErrored)))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats report totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(totals.Files)) + "\n")
	if totals.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " + s.Failure.Render(strconv.Itoa(totals.FilesWithIssues)) + "\n")
	}
	if totals.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " + s.Failure.Render(strconv.Itoa(totals.FilesErrored)) + "\n")
	}
	builder.WriteString("  Lines checked:     " + s.SummaryValue.Render(strconv.Itoa(totals.Lines)) + "\n")

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " + s.SummaryValue.Render(strconv.Itoa(totals.Issues)) + "\n")
	if totals.Errors > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(totals.Errors)) + "\n")
	}
	if totals.Warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(totals.Warnings)) + "\n")
	}
	if totals.Infos > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(totals.Infos)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case totals.Errors > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
