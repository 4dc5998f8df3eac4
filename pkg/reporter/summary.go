package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90
	kindColWidth      = 24
	codeColWidth      = 8
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 8
	maxKindNameLength = 22
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats reports as aggregated kind and file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer flush(bw, &err)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(bw, r.styles.Success.Render("No issues found"))
		return nil
	}

	r.renderKindTable(bw, report.ByKind)
	fmt.Fprintln(bw)
	r.renderFileTable(bw, report.ByFile)
	fmt.Fprintln(bw)
	r.renderTotals(bw, report.Totals)
	return nil
}

func (r *SummaryRenderer) separator(w io.Writer) {
	fmt.Fprintln(w, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) rowName(name string, width, errors, warnings int) string {
	padded := padRight(name, width)
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) renderKindTable(w io.Writer, kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(w, r.styles.Bold.Render("Kinds Summary"))
	r.separator(w)
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padRight("Code", codeColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator(w)

	for _, kind := range kinds {
		name := kind.Kind
		if len(name) > maxKindNameLength {
			name = name[:maxKindNameLength] + "…"
		}
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			r.rowName(name, kindColWidth, kind.Errors, kind.Warnings),
			padRight(kind.Code, codeColWidth),
			padLeft(strconv.Itoa(kind.Issues), numColWidth),
			padLeft(strconv.Itoa(kind.Errors), numColWidth),
			padLeft(strconv.Itoa(kind.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(w io.Writer, files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(w, r.styles.Bold.Render("Files Summary"))
	r.separator(w)
	fmt.Fprintf(w, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator(w)

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}
		fmt.Fprintf(w, "%s %s %s %s\n",
			r.rowName(path, fileColWidth, file.Errors, file.Warnings),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(w io.Writer, totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	head := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}
	fmt.Fprintln(w, r.styles.Bold.Render("Total: ")+head+fmt.Sprintf(" in %d %s", totals.FilesWithIssues, fileWord))
}
