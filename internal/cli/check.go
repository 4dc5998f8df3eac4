package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/check"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/reporter"
	"github.com/yaklabco/excmd/pkg/runner"
)

type checkFlags struct {
	format     string
	ignore     []string
	extensions []string
	noContext  bool
	compact    bool
	perFile    bool
	sortBy     string
	watch      bool
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Short:   "Check script files for invalid ex command lines",
		Long:    checkLongDescription,
		Example: checkExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.watch {
				return runWatch(cmd, args, &cfg, flags, info)
			}
			return runCheck(cmd, args, &cfg, flags, info)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check ex command lines in script files.

Every line of .vim, .exrc and .ex files is parsed the way Vim's command line
would parse it, as is every line of vim and ex code blocks in Markdown files.
Lines Vim would reject are reported with their error code. Ranges are not
resolved, so a pattern that matches nothing is not an error.`

const checkExamples = `  # Check the current directory, or two plugin directories
  excmd check
  excmd check plugin/ ftplugin/

  # SARIF for code scanning
  excmd check --format sarif

  # Fail on warnings as well
  excmd check --strict

  # Re-check whenever a file changes
  excmd check --watch docs/`

// checkRun is a prepared check: configuration, checker and reporter settings.
type checkRun struct {
	cfg        *config.Config
	checker    *check.Checker
	runOpts    runner.Options
	reportOpts reporter.Options
}

func prepareCheck(
	cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, info BuildInfo,
) (*checkRun, error) {
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, usageError(err)
		}
		cliCfg.Format = format
	}
	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return nil, usageError(fmt.Errorf("invalid sort %q (valid: count, alpha, severity)", flags.sortBy))
	}

	cliCfg.Ignore = flags.ignore
	cliCfg.Extensions = flags.extensions

	finalCfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return nil, err
	}

	checker, err := check.New(finalCfg)
	if err != nil {
		return nil, configError(err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	return &checkRun{
		cfg:     finalCfg,
		checker: checker,
		runOpts: runner.OptionsFromConfig(finalCfg, args, workDir),
		reportOpts: reporter.Options{
			Writer:      cmd.OutOrStdout(),
			ErrorWriter: cmd.ErrOrStderr(),
			Format:      finalCfg.Format,
			Color:       colorMode(cmd),
			ShowContext: !flags.noContext,
			ShowSummary: true,
			GroupByFile: true,
			Compact:     flags.compact,
			PerFile:     flags.perFile,
			SortBy:      sortBy,
			WorkingDir:  workDir,
			ToolVersion: info.Version,
		},
	}, nil
}

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, info BuildInfo) error {
	run, err := prepareCheck(cmd, args, cliCfg, flags, info)
	if err != nil {
		return err
	}
	return run.execute(commandContext(cmd))
}

// execute checks the files once and reports the result. Issues are returned
// as an *ExitError carrying the exit code.
func (c *checkRun) execute(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	logger.Debug("starting check run",
		logging.FieldPaths, c.runOpts.Paths,
		logging.FieldWorkingDir, c.runOpts.WorkingDir,
		logging.FieldJobs, c.runOpts.Jobs,
	)

	result, err := runner.New(c.checker).Run(ctx, c.runOpts)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: errors.Join(errors.New("check run failed"), err)}
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldLinesChecked, result.Stats.LinesChecked,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	rep, err := reporter.New(c.reportOpts)
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if exitCode := ExitCodeFromResult(result, c.cfg.Strict); exitCode != ExitSuccess {
		return issuesFound(exitCode)
	}
	return nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, table, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default .vim,.exrc,.ex,.md)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"order of summary tables: count, alpha, severity")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "re-check whenever a checked file changes")
}
