// Package reporter renders check results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade analyzes a result once and hands the report to a Renderer.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = analysis.SortByCount
	}
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByKind:      true,
			SortBy:             sortBy,
			SortDesc:           sortBy == analysis.SortByCount,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	var renderer Renderer
	switch format {
	case config.FormatText:
		renderer = NewTextRenderer(opts)
	case config.FormatTable:
		renderer = NewTableRenderer(opts)
	case config.FormatJSON:
		renderer = NewJSONRenderer(opts)
	case config.FormatSARIF:
		renderer = NewSARIFRenderer(opts)
	case config.FormatSummary:
		renderer = NewSummaryRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return newRendererFacade(renderer, opts), nil
}
