// Package check parses every command line found in a file and reports the
// lines the engine rejects as diagnostics.
package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/fsutil"
	"github.com/yaklabco/excmd/pkg/source"
)

// Diagnostic is one rejected command line.
type Diagnostic struct {
	// FilePath is the path to the file containing the line.
	FilePath string

	// Line is the 1-based line number where the command starts.
	Line int

	// Column is the 1-based byte column of the failure. Failures without a
	// position point at the start of the command.
	Column int

	// Kind classifies the failure.
	Kind exerr.Kind

	// Code is the Vim error code, e.g. "E492". Empty for scan errors.
	Code string

	// Severity comes from the configuration for Kind.
	Severity config.Severity

	// Message is the Vim status message including the code.
	Message string

	// Source is the command text that was checked.
	Source string

	// Offset is the byte offset of the failure within Source, or -1.
	Offset int
}

// FileResult holds the outcome of checking one file.
type FileResult struct {
	Path string

	// Kind is how command lines were read from the file.
	Kind source.Kind

	// Lines is the number of command lines checked.
	Lines int

	Diagnostics []Diagnostic
}

// CountBySeverity returns the number of diagnostics with severity sev.
func (r *FileResult) CountBySeverity(sev config.Severity) int {
	if r == nil {
		return 0
	}
	count := 0
	for _, diag := range r.Diagnostics {
		if diag.Severity == sev {
			count++
		}
	}
	return count
}

// Checker checks files against one configuration. It holds no per-file state
// and may be shared between goroutines.
type Checker struct {
	parser *command.Parser
	cfg    *config.Config
}

// New builds a Checker whose command table carries cfg's aliases.
func New(cfg *config.Config) (*Checker, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	table := command.DefaultTable
	if len(cfg.Aliases) > 0 {
		var err error
		table, err = command.DefaultTable.WithAliases(cfg.Aliases)
		if err != nil {
			return nil, fmt.Errorf("build command table: %w", err)
		}
	}

	return &Checker{parser: command.NewParser(table), cfg: cfg}, nil
}

// Table returns the command table lines are parsed with.
func (c *Checker) Table() *command.Table {
	return c.parser.Table()
}

// CheckFile reads path, detects its kind and checks it. Files of unknown kind
// produce an empty result.
func (c *Checker) CheckFile(ctx context.Context, path string) (*FileResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.CheckContent(ctx, path, content, source.Detect(path, content))
}

// CheckContent checks content read as kind. path is only used for reporting.
func (c *Checker) CheckContent(
	ctx context.Context, path string, content []byte, kind source.Kind,
) (*FileResult, error) {
	lines, err := source.Extract(ctx, content, kind)
	if err != nil {
		return nil, err
	}

	result := &FileResult{Path: path, Kind: kind, Lines: len(lines)}
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("check %s: %w", path, err)
		}
		for _, diag := range c.CheckLine(line) {
			diag.FilePath = path
			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}

	logging.FromContext(ctx).Debug("checked file",
		logging.FieldPath, path,
		logging.FieldKind, kind.String(),
		logging.FieldLinesChecked, result.Lines,
		logging.FieldDiagnosticsTotal, len(result.Diagnostics),
	)
	return result, nil
}

// CheckLine parses one command line. Commands chained with '|' are checked
// one by one. Disabled kinds are dropped.
func (c *Checker) CheckLine(line source.Line) []Diagnostic {
	var diags []Diagnostic
	for _, failure := range c.parseChain(line.Text) {
		if !c.cfg.KindEnabled(failure.Kind) {
			continue
		}
		column := line.Column + 1
		offset := -1
		if failure.Pos >= 0 {
			column += failure.Pos
			offset = failure.Pos
		}
		diags = append(diags, Diagnostic{
			Line:     line.Number,
			Column:   column,
			Kind:     failure.Kind,
			Code:     failure.Code,
			Severity: c.cfg.SeverityFor(failure.Kind),
			Message:  failure.Error(),
			Source:   line.Text,
			Offset:   offset,
		})
	}
	return diags
}

// parseChain parses text, splitting it at each bar the parser stops at.
// Positions of the returned errors are relative to text.
func (c *Checker) parseChain(text string) []*exerr.Error {
	var failures []*exerr.Error
	offset := 0
	for {
		rest := text[offset:]
		_, err := c.parser.Parse(rest)
		if err == nil {
			return failures
		}

		var engineErr *exerr.Error
		if !errors.As(err, &engineErr) {
			engineErr = exerr.Scan(0, "command", rest)
		}

		bar := engineErr.Pos
		if !errors.Is(engineErr, exerr.ErrTrailingCharacters) || bar < 0 || bar >= len(rest) || rest[bar] != '|' {
			return append(failures, engineErr.Shift(offset))
		}

		if _, err := c.parser.Parse(rest[:bar]); err != nil {
			if errors.As(err, &engineErr) {
				failures = append(failures, engineErr.Shift(offset))
			}
		}
		offset += bar + 1
	}
}
