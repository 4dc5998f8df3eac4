// Package engine ties the command parser and the address resolver together.
// It is the entry point editors and tools use to turn a command line into a
// descriptor and a concrete line range.
package engine

import (
	"context"
	"errors"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/exerr"
)

// Options configure an Engine.
type Options struct {
	// Table is the command table. Nil means command.DefaultTable.
	Table *command.Table

	// WrapScan lets search addresses wrap around the buffer ends.
	WrapScan bool
}

// DefaultOptions returns Vim's defaults.
func DefaultOptions() Options {
	return Options{WrapScan: true}
}

// Result is the outcome of running one command line.
type Result struct {
	Descriptor *command.Descriptor `json:"descriptor"          yaml:"descriptor"`

	// Resolved is nil for commands that take no range and were given none.
	Resolved *address.Resolved `json:"resolved,omitempty" yaml:"resolved,omitempty"`

	// LastPattern is the search pattern to remember after this line, if any.
	LastPattern string `json:"last_pattern,omitempty" yaml:"last_pattern,omitempty"`
}

// Engine parses and resolves command lines. It holds no per-line state.
type Engine struct {
	parser *command.Parser
	opts   Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	return &Engine{
		parser: command.NewParser(opts.Table),
		opts:   opts,
	}
}

// Table returns the command table in use.
func (e *Engine) Table() *command.Table {
	return e.parser.Table()
}

// Parse parses line into a descriptor.
func (e *Engine) Parse(ctx context.Context, line string) (*command.Descriptor, error) {
	logger := logging.FromContext(ctx)

	desc, err := e.parser.Parse(line)
	if err != nil {
		logFailure(ctx, line, err)
		return nil, err
	}

	logger.Debug("parsed command line",
		logging.FieldInput, line,
		logging.FieldCommand, desc.Name,
		logging.FieldForced, desc.Forced,
		logging.FieldRange, desc.Range.String(),
	)
	return desc, nil
}

// Resolve resolves the descriptor's range against buf. lastPattern seeds empty
// searches; when empty, buf is asked if it implements address.PatternSource.
func (e *Engine) Resolve(
	ctx context.Context, desc *command.Descriptor, buf address.Context, lastPattern string,
) (*Result, error) {
	result := &Result{Descriptor: desc}

	if desc.Range.IsEmpty() && desc.Name != "" {
		return result, nil
	}

	resolver := address.NewResolver(buf, address.Options{
		WrapScan:    e.opts.WrapScan,
		LastPattern: lastPattern,
	})

	resolved, err := resolver.Range(desc.Range)
	if err != nil {
		logFailure(ctx, desc.String(), err)
		return nil, err
	}

	result.Resolved = &resolved
	result.LastPattern = resolver.LastPattern()

	logging.FromContext(ctx).Debug("resolved range",
		logging.FieldCommand, desc.Name,
		logging.FieldRange, desc.Range.String(),
		logging.FieldResolved, resolved.String(),
	)
	return result, nil
}

// Run parses line and resolves it against buf.
func (e *Engine) Run(ctx context.Context, line string, buf address.Context, lastPattern string) (*Result, error) {
	desc, err := e.Parse(ctx, line)
	if err != nil {
		return nil, err
	}
	return e.Resolve(ctx, desc, buf, lastPattern)
}

// Tokens returns the token stream of line.
func (e *Engine) Tokens(line string) ([]Token, error) {
	return e.parser.Tokenize(line)
}

func logFailure(ctx context.Context, line string, err error) {
	var engineErr *exerr.Error
	if !errors.As(err, &engineErr) {
		logging.FromContext(ctx).Debug("command line failed", logging.FieldInput, line, logging.FieldError, err)
		return
	}
	logging.FromContext(ctx).Debug("command line failed",
		logging.FieldInput, line,
		logging.FieldKind, engineErr.Kind.String(),
		logging.FieldPos, engineErr.Pos,
		logging.FieldError, engineErr.Error(),
	)
}
