package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableRenderer formats reports as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	out       io.Writer
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, TerminalWidth(opts.Writer)),
		out:       opts.Writer,
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer flush(bw, &err)

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		}
		return nil
	}

	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(fileErr.FilePath), r.styles.Error.Render(fileErr.Message))
	}

	if report.Totals.Issues == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", report.Totals.Files)))
		}
		return nil
	}

	if r.opts.PerFile {
		r.renderPerFile(bw, report)
	} else {
		fmt.Fprint(bw, r.formatter.FormatTable(report.Diagnostics))
	}

	if r.opts.ShowSummary {
		if r.opts.PerFile {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Repeat("=", defaultTermWidth-20)))
			fmt.Fprintln(bw, r.styles.Bold.Render("Overall Summary"))
		}
		fmt.Fprintln(bw, r.formatter.FormatTableSummary(report.Totals, ""))
	}
	return nil
}

// renderPerFile writes one table for each file with issues.
func (r *TableRenderer) renderPerFile(w io.Writer, report *analysis.Report) {
	entries := report.Diagnostics
	for start := 0; start < len(entries); {
		end := start
		for end < len(entries) && entries[end].FilePath == entries[start].FilePath {
			end++
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, r.styles.Bold.Render(entries[start].FilePath))
		fmt.Fprint(w, r.formatter.FormatFileTable(entries[start:end]))

		start = end
	}
}

// TerminalWidth returns the width of the terminal behind writer, or a default
// when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
