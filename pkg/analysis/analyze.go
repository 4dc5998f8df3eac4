// Package analysis turns a runner result into grouped, sorted views for reporting.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// severityCounts tallies entries by severity. An empty severity counts as an error.
type severityCounts struct {
	errors, warnings, infos int
}

func countSeverities(entries []DiagnosticEntry) severityCounts {
	var counts severityCounts
	for _, entry := range entries {
		switch config.Severity(entry.Severity) {
		case config.SeverityWarning:
			counts.warnings++
		case config.SeverityInfo:
			counts.infos++
		default:
			counts.errors++
		}
	}
	return counts
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	var entries []DiagnosticEntry
	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			report.FileErrors = append(report.FileErrors, FileError{
				FilePath: makeRelativePath(file.Path, opts.WorkingDir),
				Message:  file.Error.Error(),
			})
			continue
		}
		if file.Result == nil {
			continue
		}
		report.Totals.Lines += file.Result.Lines
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		for _, diag := range file.Result.Diagnostics {
			severity := diag.Severity
			if severity == "" {
				severity = config.SeverityError
			}
			entries = append(entries, DiagnosticEntry{
				FilePath: displayPath,
				Kind:     diag.Kind.String(),
				Code:     diag.Code,
				Severity: string(severity),
				Message:  diag.Message,
				Line:     diag.Line,
				Column:   diag.Column,
				Source:   diag.Source,
				Offset:   diag.Offset,
			})
		}
	}

	counts := countSeverities(entries)
	report.Totals.Issues = len(entries)
	report.Totals.Errors = counts.errors
	report.Totals.Warnings = counts.warnings
	report.Totals.Infos = counts.infos

	if opts.IncludeDiagnostics {
		report.Diagnostics = entries
	}
	if opts.IncludeByFile {
		report.ByFile = byFile(entries, opts)
	}
	if opts.IncludeByKind {
		report.ByKind = byKind(entries, opts)
	}
	return report
}

func byFile(entries []DiagnosticEntry, opts Options) []FileAnalysis {
	groups := lo.GroupBy(entries, func(entry DiagnosticEntry) string { return entry.FilePath })

	files := make([]FileAnalysis, 0, len(groups))
	for path, group := range groups {
		counts := countSeverities(group)
		kinds := lo.Uniq(lo.Map(group, func(entry DiagnosticEntry, _ int) string { return entry.Kind }))
		slices.Sort(kinds)
		files = append(files, FileAnalysis{
			Path:     path,
			Issues:   len(group),
			Errors:   counts.errors,
			Warnings: counts.warnings,
			Infos:    counts.infos,
			Kinds:    kinds,
		})
	}

	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareGroups(opts,
			groupKey{left.Path, left.Issues, left.Errors, left.Warnings},
			groupKey{right.Path, right.Issues, right.Errors, right.Warnings})
	})
	return files
}

func byKind(entries []DiagnosticEntry, opts Options) []KindAnalysis {
	groups := lo.GroupBy(entries, func(entry DiagnosticEntry) string { return entry.Kind })

	kinds := make([]KindAnalysis, 0, len(groups))
	for name, group := range groups {
		counts := countSeverities(group)
		files := lo.Uniq(lo.Map(group, func(entry DiagnosticEntry, _ int) string { return entry.FilePath }))
		slices.Sort(files)
		codes := lo.Uniq(lo.FilterMap(group, func(entry DiagnosticEntry, _ int) (string, bool) {
			return entry.Code, entry.Code != ""
		}))
		slices.Sort(codes)

		analysis := KindAnalysis{
			Kind:     name,
			Code:     strings.Join(codes, "/"),
			Issues:   len(group),
			Errors:   counts.errors,
			Warnings: counts.warnings,
			Infos:    counts.infos,
			Files:    files,
		}
		if kind, ok := exerr.ParseKind(name); ok {
			analysis.Description = kind.Description()
		}
		kinds = append(kinds, analysis)
	}

	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		return compareGroups(opts,
			groupKey{left.Kind, left.Issues, left.Errors, left.Warnings},
			groupKey{right.Kind, right.Issues, right.Errors, right.Warnings})
	})
	return kinds
}

type groupKey struct {
	name     string
	issues   int
	errors   int
	warnings int
}

// compareGroups orders two groups. Ties fall back to the name so output is stable.
func compareGroups(opts Options, left, right groupKey) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
		// Alphabetical sorting is always ascending.
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	case SortByCount:
		result = cmp.Compare(left.issues, right.issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(left.name, right.name))
}
