package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/pkg/check"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/runner"
)

func diag(kind exerr.Kind, code string, sev config.Severity, line int) check.Diagnostic {
	return check.Diagnostic{Kind: kind, Code: code, Severity: sev, Line: line, Column: 1, Message: code}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/a.vim",
				Result: &check.FileResult{Lines: 4, Diagnostics: []check.Diagnostic{
					diag(exerr.KindUnknownCommand, "E492", config.SeverityError, 1),
					diag(exerr.KindUnknownCommand, "E492", config.SeverityError, 2),
					diag(exerr.KindTrailingCharacters, "E488", config.SeverityWarning, 3),
				}},
			},
			{
				Path: "/work/b.ex",
				Result: &check.FileResult{Lines: 2, Diagnostics: []check.Diagnostic{
					diag(exerr.KindTrailingCharacters, "E488", config.SeverityWarning, 1),
				}},
			},
			{Path: "/work/c.md", Result: &check.FileResult{Lines: 1}},
			{Path: "/work/d.vim", Error: errors.New("permission denied")},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Zero(t, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByKind)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Lines:           7,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
	}, report.Totals)
	assert.True(t, report.Totals.HasErrors())
}

func TestAnalyze_FileErrors(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	assert.Equal(t, []FileError{{FilePath: "d.vim", Message: "permission denied"}}, report.FileErrors)
}

func TestAnalyze_Diagnostics(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.Diagnostics, 4)
	first := report.Diagnostics[0]
	assert.Equal(t, "a.vim", first.FilePath)
	assert.Equal(t, "unknown-command", first.Kind)
	assert.Equal(t, "E492", first.Code)
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "b.ex", report.Diagnostics[3].FilePath)
}

func TestAnalyze_GroupsByKind(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByKind, 2)

	// Equal counts fall back to the kind name.
	trailing := report.ByKind[0]
	assert.Equal(t, "trailing-characters", trailing.Kind)
	assert.Equal(t, "E488", trailing.Code)
	assert.Equal(t, 2, trailing.Issues)
	assert.Equal(t, 2, trailing.Warnings)
	assert.Equal(t, []string{"a.vim", "b.ex"}, trailing.Files)
	assert.Equal(t, exerr.KindTrailingCharacters.Description(), trailing.Description)

	unknown := report.ByKind[1]
	assert.Equal(t, "unknown-command", unknown.Kind)
	assert.Equal(t, 2, unknown.Errors)
	assert.Equal(t, []string{"a.vim"}, unknown.Files)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, FileAnalysis{
		Path: "a.vim", Issues: 3, Errors: 2, Warnings: 1,
		Kinds: []string{"trailing-characters", "unknown-command"},
	}, report.ByFile[0])
	assert.Equal(t, "b.ex", report.ByFile[1].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "z.vim", Result: &check.FileResult{Diagnostics: []check.Diagnostic{
			diag(exerr.KindTrailingCharacters, "E488", config.SeverityWarning, 1),
			diag(exerr.KindTrailingCharacters, "E488", config.SeverityWarning, 2),
		}}},
		{Path: "m.vim", Result: &check.FileResult{Diagnostics: []check.Diagnostic{
			diag(exerr.KindUnknownCommand, "E492", config.SeverityError, 1),
		}}},
		{Path: "a.vim", Result: &check.FileResult{Diagnostics: []check.Diagnostic{
			diag(exerr.KindNoBangAllowed, "E477", config.SeverityInfo, 1),
		}}},
	}}

	tests := []struct {
		name string
		sort SortField
		desc bool
		want []string
	}{
		{name: "count descending", sort: SortByCount, desc: true, want: []string{"z.vim", "a.vim", "m.vim"}},
		{name: "count ascending", sort: SortByCount, want: []string{"a.vim", "m.vim", "z.vim"}},
		{name: "alpha", sort: SortByAlpha, desc: true, want: []string{"a.vim", "m.vim", "z.vim"}},
		{name: "severity", sort: SortBySeverity, want: []string{"m.vim", "z.vim", "a.vim"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sort
			opts.SortDesc = tt.desc
			report := Analyze(result, opts)

			paths := make([]string, len(report.ByFile))
			for i, fa := range report.ByFile {
				paths[i] = fa.Path
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{})

	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByKind)
	assert.Equal(t, 4, report.Totals.Issues)
}
