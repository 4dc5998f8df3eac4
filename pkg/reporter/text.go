package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/analysis"
)

// TextRenderer formats reports as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer flush(bw, &err)

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		}
		return nil
	}

	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.FilePath),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if r.opts.GroupByFile {
		r.renderGrouped(bw, report.Diagnostics)
	} else {
		for _, entry := range report.Diagnostics {
			fmt.Fprint(bw, r.styles.FormatDiagnostic(entry, r.opts.ShowContext))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}
	return nil
}

// renderGrouped writes a header per file followed by its diagnostics.
// Entries arrive ordered by file.
func (r *TextRenderer) renderGrouped(w io.Writer, entries []analysis.DiagnosticEntry) {
	for start := 0; start < len(entries); {
		end := start
		for end < len(entries) && entries[end].FilePath == entries[start].FilePath {
			end++
		}

		fmt.Fprintln(w, r.styles.FormatFileHeader(entries[start].FilePath, end-start))
		for _, entry := range entries[start:end] {
			fmt.Fprint(w, r.styles.FormatDiagnostic(entry, r.opts.ShowContext))
		}
		fmt.Fprintln(w)

		start = end
	}
}
