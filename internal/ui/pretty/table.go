package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	yesSymbol        = "+"
)

// column describes one table column. At most one column per table is flexible;
// it gives up width when the table is wider than the terminal.
type column struct {
	title    string
	minWidth int
	flexible bool
	keepTail bool
}

// tableRow is one line of cells tinted by severity.
type tableRow struct {
	cells    []string
	severity config.Severity
}

// TableFormatter formats diagnostics and command listings as styled tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

//nolint:gochecknoglobals // Read-only column layouts.
var (
	diagnosticColumns = []column{
		{title: "FILE", minWidth: 20, keepTail: true},
		{title: "LOC", minWidth: 7},
		{title: "MESSAGE", minWidth: 35, flexible: true},
		{title: "KIND", minWidth: 8},
	}
	fileColumns = []column{
		{title: "LOC", minWidth: 7},
		{title: "MESSAGE", minWidth: 35, flexible: true},
		{title: "KIND", minWidth: 8},
	}
	commandColumns = []column{
		{title: "COMMAND", minWidth: 12},
		{title: "RANGE", minWidth: 5},
		{title: "BANG", minWidth: 4},
		{title: "DEFAULT", minWidth: 7},
		{title: "DESCRIPTION", minWidth: 20, flexible: true},
	}
)

// FormatTable formats diagnostics as one table, with a light separator between files.
func (t *TableFormatter) FormatTable(entries []analysis.DiagnosticEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var groups [][]tableRow
	lastPath := ""
	for _, entry := range entries {
		if len(groups) == 0 || entry.FilePath != lastPath {
			groups = append(groups, nil)
			lastPath = entry.FilePath
		}
		row := tableRow{
			cells:    []string{entry.FilePath, location(entry), entry.Message, entry.Kind},
			severity: config.Severity(entry.Severity),
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}

	var builder strings.Builder
	t.writeTable(&builder, diagnosticColumns, groups)
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")
	return builder.String()
}

// FormatFileTable formats one file's diagnostics without a FILE column.
func (t *TableFormatter) FormatFileTable(entries []analysis.DiagnosticEntry) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([]tableRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, tableRow{
			cells:    []string{location(entry), entry.Message, entry.Kind},
			severity: config.Severity(entry.Severity),
		})
	}

	var builder strings.Builder
	t.writeTable(&builder, fileColumns, [][]tableRow{rows})
	builder.WriteString(t.formatFileSummary(rows))
	builder.WriteString("\n")
	return builder.String()
}

// FormatCommandTable lists command specs. Aliases are appended after the specs.
func (t *TableFormatter) FormatCommandTable(specs []*command.Spec, aliases map[string]string) string {
	rows := make([]tableRow, 0, len(specs)+len(aliases))
	for _, spec := range specs {
		rows = append(rows, tableRow{cells: []string{
			spec.Usage(),
			yesNo(spec.Range),
			yesNo(spec.Bang),
			spec.Default.String(),
			spec.Description,
		}})
	}

	var groups [][]tableRow
	groups = append(groups, rows)
	if len(aliases) > 0 {
		names := slices.Sorted(maps.Keys(aliases))
		aliasRows := make([]tableRow, 0, len(names))
		for _, alias := range names {
			aliasRows = append(aliasRows, tableRow{cells: []string{alias, "", "", "", "alias for " + aliases[alias]}})
		}
		groups = append(groups, aliasRows)
	}

	var builder strings.Builder
	t.writeTable(&builder, commandColumns, groups)
	return builder.String()
}

func (t *TableFormatter) writeTable(builder *strings.Builder, columns []column, groups [][]tableRow) {
	widths := t.columnWidths(columns, groups)
	total := totalWidth(widths)

	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	builder.WriteString(t.styles.TableHeader.Render(formatCells(titles, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			builder.WriteString("\n")
		}
		for _, row := range group {
			cells := make([]string, len(row.cells))
			for c, cell := range row.cells {
				if columns[c].keepTail {
					cells[c] = truncateFilePath(cell, widths[c])
				} else {
					cells[c] = truncateString(cell, widths[c])
				}
			}
			builder.WriteString(t.getRowStyle(row.severity).Render(formatCells(cells, widths)))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")
}

// columnWidths fits each column to its content, then shrinks the flexible
// column and finally the others to their minimum until the table fits.
func (t *TableFormatter) columnWidths(columns []column, groups [][]tableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(col.minWidth, len(col.title))
	}
	for _, group := range groups {
		for _, row := range group {
			for i, cell := range row.cells {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	shrink := func(i int) {
		excess := totalWidth(widths) - t.termWidth
		if excess > 0 {
			widths[i] = max(columns[i].minWidth, widths[i]-excess)
		}
	}
	for i, col := range columns {
		if col.flexible {
			shrink(i)
		}
	}
	for i := range columns {
		shrink(i)
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i, cell := range cells {
		fmt.Fprintf(&b, "%-*s", widths[i]+tablePadding, cell)
	}
	return strings.TrimRight(b.String(), " ")
}

func location(entry analysis.DiagnosticEntry) string {
	return strconv.Itoa(entry.Line) + ":" + strconv.Itoa(entry.Column)
}

func yesNo(b bool) string {
	if b {
		return yesSymbol
	}
	return ""
}

// formatFileSummary formats a severity breakdown for one file's rows.
func (t *TableFormatter) formatFileSummary(rows []tableRow) string {
	var errors, warnings, infos int
	for _, row := range rows {
		switch row.severity {
		case config.SeverityWarning:
			warnings++
		case config.SeverityInfo:
			infos++
		default:
			errors++
		}
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	return " " + strings.Join(parts, " | ")
}

// getRowStyle returns the appropriate style for a severity level.
func (t *TableFormatter) getRowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend explains the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: rows are ordered by file, then line")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info ")))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, duration string) string {
	parts := []string{
		fmt.Sprintf("%d files checked", totals.Files),
		fmt.Sprintf("%d lines", totals.Lines),
	}
	if totals.Errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
