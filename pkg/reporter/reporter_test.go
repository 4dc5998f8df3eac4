package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/pkg/check"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/reporter"
	"github.com/yaklabco/excmd/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/a.vim", Result: &check.FileResult{Path: "/w/a.vim", Lines: 3, Diagnostics: []check.Diagnostic{
			{
				FilePath: "/w/a.vim", Line: 2, Column: 1, Kind: exerr.KindUnknownCommand, Code: "E492",
				Severity: config.SeverityError, Message: "E492: Not an editor command: frobnicate",
				Source: "frobnicate", Offset: 0,
			},
			{
				FilePath: "/w/a.vim", Line: 3, Column: 2, Kind: exerr.KindNoRangeAllowed, Code: "E481",
				Severity: config.SeverityWarning, Message: "E481: No range allowed",
				Source: "3quit", Offset: 1,
			},
		}}},
		{Path: "/w/b.ex", Result: &check.FileResult{Path: "/w/b.ex", Lines: 1}},
		{Path: "/w/c.vim", Error: errors.New("permission denied")},
	}}
}

func cleanResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/b.ex", Result: &check.FileResult{Path: "/w/b.ex", Lines: 1}},
	}}
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = config.ColorNever
	opts.WorkingDir = "/w"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{input: "", want: config.FormatText},
		{input: "text", want: config.FormatText},
		{input: "JSON", want: config.FormatJSON},
		{input: "sarif", want: config.FormatSARIF},
		{input: "table", want: config.FormatTable},
		{input: "summary", want: config.FormatSummary},
		{input: "yaml", wantErr: true},
		{input: "diff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range append(config.CheckFormats(), "") {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
	assert.Nil(t, rep)
}

func TestTextReporter_Grouped(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	out, count := render(t, opts, sampleResult())

	want := "c.vim: error: permission denied\n" +
		"a.vim (2 issues)\n" +
		"  a.vim:2:1  error  E492: Not an editor command: frobnicate  (unknown-command)\n" +
		"        frobnicate\n" +
		"        ^\n" +
		"  a.vim:3:2  warning  E481: No range allowed  (no-range-allowed)\n" +
		"        3quit\n" +
		"         ^\n" +
		"\n" +
		"2 issues (1 errors, 1 warnings) in 1 file, 4 lines checked, 1 unreadable\n"
	assert.Equal(t, want, out)
	assert.Equal(t, 2, count)
}

func TestTextReporter_Flat(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{}, sampleResult())

	want := "c.vim: error: permission denied\n" +
		"  a.vim:2:1  error  E492: Not an editor command: frobnicate  (unknown-command)\n" +
		"  a.vim:3:2  warning  E481: No range allowed  (no-range-allowed)\n"
	assert.Equal(t, want, out)
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{ShowSummary: true}, nil)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", out)

	out, _ = render(t, reporter.Options{ShowSummary: true}, cleanResult())
	assert.Equal(t, "No issues found (1 file checked)\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatJSON}, sampleResult())
	assert.Equal(t, 2, count)

	var doc struct {
		Diagnostics []struct {
			FilePath string `json:"filePath"`
			Kind     string `json:"kind"`
			Code     string `json:"code"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
			Offset   int    `json:"offset"`
		} `json:"diagnostics"`
		FileErrors []struct {
			FilePath string `json:"filePath"`
		} `json:"fileErrors"`
		Summary struct {
			Files  int `json:"filesChecked"`
			Issues int `json:"totalIssues"`
			Lines  int `json:"linesChecked"`
		} `json:"summary"`
		ByKind []struct {
			Kind string `json:"kind"`
		} `json:"byKind"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	require.Len(t, doc.Diagnostics, 2)
	assert.Equal(t, "a.vim", doc.Diagnostics[0].FilePath)
	assert.Equal(t, "unknown-command", doc.Diagnostics[0].Kind)
	assert.Equal(t, 1, doc.Diagnostics[1].Offset)
	require.Len(t, doc.FileErrors, 1)
	assert.Equal(t, "c.vim", doc.FileErrors[0].FilePath)
	assert.Equal(t, 3, doc.Summary.Files)
	assert.Equal(t, 2, doc.Summary.Issues)
	assert.Equal(t, 4, doc.Summary.Lines)
	assert.Len(t, doc.ByKind, 2)
}

func TestJSONReporter_EmptyAndCompact(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatJSON}, nil)
	assert.Contains(t, out, `"diagnostics": []`)

	out, _ = render(t, reporter.Options{Format: config.FormatJSON, Compact: true}, sampleResult())
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, json.Valid([]byte(out)))
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatSARIF, ToolVersion: "1.2.3"}, sampleResult())
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "excmd", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "unknown-command", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, exerr.KindUnknownCommand.Description(), run.Tool.Driver.Rules[0].ShortDescription.Text)
	assert.Equal(t, "E492", run.Tool.Driver.Rules[0].Properties["vimCode"])

	require.Len(t, run.Results, 2)
	second := run.Results[1]
	assert.Equal(t, "no-range-allowed", second.RuleID)
	assert.Equal(t, 1, second.RuleIndex)
	assert.Equal(t, "warning", second.Level)
	region := second.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 3, region.StartLine)
	assert.Equal(t, 2, region.StartColumn)
	require.NotNil(t, region.Snippet)
	assert.Equal(t, "3quit", region.Snippet.Text)
	assert.Equal(t, "a.vim", second.Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSARIFReporter_Empty(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatSARIF}, nil)
	assert.Contains(t, out, `"results": []`)
	assert.Contains(t, out, `"rules": []`)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatTable, ShowSummary: true}, sampleResult())
	assert.Equal(t, 2, count)
	assert.Contains(t, out, "c.vim: permission denied")
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "E481: No range allowed")
	assert.Contains(t, out, " 3 files checked | 4 lines | 1 errors | 1 warnings")
	assert.NotContains(t, out, "Overall Summary")

	out, _ = render(t, reporter.Options{Format: config.FormatTable, ShowSummary: true, PerFile: true}, sampleResult())
	assert.Contains(t, out, "\na.vim\n")
	assert.Contains(t, out, " LOC")
	assert.Contains(t, out, "Overall Summary")
}

func TestTableReporter_NoIssues(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatTable, ShowSummary: true}, nil)
	assert.Equal(t, "No files to check.\n", out)

	out, _ = render(t, reporter.Options{Format: config.FormatTable, ShowSummary: true}, cleanResult())
	assert.Equal(t, "All files passed!\n1 files checked\n", out)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatSummary}, sampleResult())
	assert.Contains(t, out, "Kinds Summary")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "E492")
	assert.Contains(t, out, "Total: 2 issues (1 errors, 1 warnings) in 1 file")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReporter_WriteError(t *testing.T) {
	t.Parallel()

	for _, format := range config.CheckFormats() {
		rep, err := reporter.New(reporter.Options{
			Writer:      failingWriter{},
			Format:      format,
			Color:       config.ColorNever,
			ShowSummary: true,
		})
		require.NoError(t, err)

		_, err = rep.Report(context.Background(), sampleResult())
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "disk full")
	}
}
