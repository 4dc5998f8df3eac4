package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/runner"
)

// Exit codes for excmd.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitErrors indicates a command line failed or a check found errors.
	ExitErrors = 1

	// ExitWarnings indicates a check found warnings (when strict mode).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound is returned when a command already reported its failures
// and only the exit code remains to be set.
var ErrIssuesFound = errors.New("issues found")

// ExitError carries the process exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func issuesFound(code int) error {
	return &ExitError{Code: code, Err: ErrIssuesFound}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitIOError
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errorCount := result.Stats.DiagnosticsBySeverity[config.SeverityError]
	warnings := result.Stats.DiagnosticsBySeverity[config.SeverityWarning]

	if errorCount > 0 {
		return ExitErrors
	}

	if strict && warnings > 0 {
		return ExitWarnings
	}

	if len(result.Errors()) > 0 {
		return ExitIOError
	}

	return ExitSuccess
}
