package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	Color config.ColorMode

	// ShowContext prints the command line with a caret under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups diagnostics by file (text format).
	GroupByFile bool

	// Compact uses minified output for JSON and SARIF.
	Compact bool

	// PerFile outputs a separate table for each file (table format only).
	PerFile bool

	// SortBy orders the kind and file tables of the summary format.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported by the SARIF driver.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       config.ColorAuto,
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		SortBy:      analysis.SortByCount,
		ToolVersion: "dev",
	}
}
