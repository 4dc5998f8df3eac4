package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/check"
)

// Runner checks discovered files with a shared Checker.
type Runner struct {
	Checker *check.Checker
}

// New creates a new Runner with the given checker.
func New(checker *check.Checker) *Runner {
	return &Runner{Checker: checker}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A file that cannot be read is recorded in its outcome and does not stop
// the run; cancelling ctx does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("checking files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome := FileOutcome{Path: path}
			fr, err := r.Checker.CheckFile(groupCtx, path)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = fr
			}
			outcomes[i] = outcome
			return nil
		})
	}

	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	logger.Debug("check complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldLinesChecked, result.Stats.LinesChecked,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)
	return result, nil
}
