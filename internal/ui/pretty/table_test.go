package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
)

func tableEntries() []analysis.DiagnosticEntry {
	return []analysis.DiagnosticEntry{
		{FilePath: "a.vim", Kind: "unknown-command", Severity: string(config.SeverityError),
			Message: "E492: Not an editor command: frobnicate", Line: 1, Column: 1},
		{FilePath: "a.vim", Kind: "no-range-allowed", Severity: string(config.SeverityError),
			Message: "E481: No range allowed", Line: 4, Column: 2},
		{FilePath: "b.ex", Kind: "no-bang-allowed", Severity: string(config.SeverityWarning),
			Message: "E477: No ! allowed", Line: 2, Column: 5},
	}
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)
	result := formatter.FormatTable(tableEntries())

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	// header, heavy, 2 rows, light, 1 row, heavy, legend
	assert.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "KIND")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[3], "4:2")
	assert.True(t, strings.HasPrefix(lines[4], "----"))
	assert.Contains(t, lines[5], "no-bang-allowed")
	assert.Contains(t, lines[7], "Legend")

	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTableFormatter_Truncation(t *testing.T) {
	t.Parallel()

	entries := []analysis.DiagnosticEntry{{
		FilePath: "very/deeply/nested/directory/structure/plugin.vim",
		Kind:     "invalid-argument",
		Severity: string(config.SeverityError),
		Message:  "E474: Invalid argument: " + strings.Repeat("x", 120),
		Line:     1,
		Column:   1,
	}}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	result := formatter.FormatTable(entries)

	assert.Contains(t, result, "...")
	assert.Contains(t, result, "plugin.vim")
	assert.NotContains(t, result, strings.Repeat("x", 120))
}

func TestTableFormatter_FormatFileTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	result := formatter.FormatFileTable(tableEntries())

	assert.True(t, strings.HasPrefix(result, " LOC"))
	assert.NotContains(t, result, "FILE")
	assert.Contains(t, result, "2 errors | 1 warnings")

	assert.Empty(t, formatter.FormatFileTable(nil))
}

func TestTableFormatter_FormatCommandTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)

	table := command.DefaultTable.Clone()
	result := formatter.FormatCommandTable(table.Specs(), map[string]string{"dup": "copy"})

	assert.Contains(t, result, "COMMAND")
	assert.Contains(t, result, "DESCRIPTION")
	assert.Contains(t, result, "d[elete]")
	assert.Contains(t, result, "alias for copy")
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	totals := analysis.Totals{Files: 3, Lines: 12, Issues: 3, Errors: 2, Warnings: 1}

	assert.Equal(t, " 3 files checked | 12 lines | 2 errors | 1 warnings | 10ms",
		formatter.FormatTableSummary(totals, "10ms"))
}
