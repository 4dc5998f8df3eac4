package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/buffer"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
)

// stdinPath makes --file read the buffer from standard input.
const stdinPath = "-"

type resolveFlags struct {
	file        string
	line        int
	marks       []string
	noWrapScan  bool
	ignoreCase  bool
	lastPattern string
	format      string
	explain     bool
}

// resolveEntry is the outcome of resolving one line.
type resolveEntry struct {
	Input       string              `json:"input"                  yaml:"input"`
	Descriptor  *command.Descriptor `json:"descriptor,omitempty"   yaml:"descriptor,omitempty"`
	Canonical   string              `json:"canonical,omitempty"    yaml:"canonical,omitempty"`
	Resolved    *address.Resolved   `json:"resolved,omitempty"     yaml:"resolved,omitempty"`
	LastPattern string              `json:"last_pattern,omitempty" yaml:"last_pattern,omitempty"`
	Error       *lineError          `json:"error,omitempty"        yaml:"error,omitempty"`
}

func newResolveCommand() *cobra.Command {
	flags := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve LINE",
		Short: "Resolve the range of an ex command line against a file",
		Long: `Parse an ex command line and resolve its range against the lines of a
file. The cursor, marks and the remembered search pattern can be set with
flags. By default the result is printed as "first,last".`,
		Example: `  # From the next TODO to the end of the file
  excmd resolve --file notes.txt '/TODO/,$'

  # Marks and the cursor
  excmd resolve --file notes.txt --line 10 --mark a=3 "'a,.d"

  # Read the buffer from stdin
  cat notes.txt | excmd resolve --file - --format json '?^#?'`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "file to resolve against (- for stdin)")
	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "current line (default 1)")
	cmd.Flags().StringSliceVarP(&flags.marks, "mark", "m", nil, "set a mark, e.g. a=3")
	cmd.Flags().BoolVar(&flags.noWrapScan, "nowrapscan", false, "stop searches at the buffer ends")
	cmd.Flags().BoolVar(&flags.ignoreCase, "ignorecase", false, "match address patterns case-insensitively")
	cmd.Flags().StringVar(&flags.lastPattern, "last-pattern", "", "pattern reused by empty searches")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "print the descriptor along with the lines")

	return cmd
}

func runResolve(cmd *cobra.Command, line string, flags *resolveFlags) error {
	format, err := parseFormat(flags.format, config.FormatText, config.FormatJSON, config.FormatYAML)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{}
	if flags.noWrapScan {
		cliCfg.WrapScan = config.Bool(false)
	}
	if cmd.Flags().Changed("ignorecase") {
		cliCfg.IgnoreCase = config.Bool(flags.ignoreCase)
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	eng, err := newEngine(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	opts, err := bufferOptions(cfg, flags.marks)
	if err != nil {
		return err
	}
	buf, err := loadBuffer(cmd, flags.file, opts...)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("line") {
		if err := buf.SetCurrent(flags.line); err != nil {
			return usageError(fmt.Errorf("--line: %w", err))
		}
	}

	ctx := commandContext(cmd)
	logging.FromContext(ctx).Debug("resolving",
		logging.FieldInput, line,
		logging.FieldPath, buf.Path(),
		logging.FieldLine, buf.CurrentLine(),
		logging.FieldWrapScan, cfg.WrapScanEnabled(),
	)

	entry := resolveEntry{Input: line}
	result, runErr := eng.Run(ctx, line, buf, flags.lastPattern)
	if runErr != nil {
		entry.Error = newLineError(runErr)
	} else {
		entry.Descriptor = result.Descriptor
		entry.Canonical = result.Descriptor.String()
		entry.Resolved = result.Resolved
		entry.LastPattern = result.LastPattern
	}

	out := cmd.OutOrStdout()
	switch {
	case format != config.FormatText:
		err = encode(out, format, entry)
	case runErr != nil:
		_, err = io.WriteString(out, outputStyles(cmd).FormatEngineError(line, runErr))
	case flags.explain:
		_, err = io.WriteString(out, outputStyles(cmd).FormatResolved(result))
	case result.Resolved != nil:
		_, err = fmt.Fprintln(out, result.Resolved.String())
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if runErr != nil {
		return issuesFound(ExitErrors)
	}
	return nil
}

// bufferOptions turns configuration and --mark values into buffer options.
func bufferOptions(cfg *config.Config, marks []string) ([]buffer.Option, error) {
	opts := []buffer.Option{buffer.WithIgnoreCase(cfg.IgnoreCaseEnabled())}
	for _, spec := range marks {
		name, line, err := parseMark(spec)
		if err != nil {
			return nil, usageError(err)
		}
		opts = append(opts, buffer.WithMark(name, line))
	}
	return opts, nil
}

// parseMark parses "a=3" into a mark name and line.
func parseMark(spec string) (rune, int, error) {
	nameText, lineText, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid mark %q: want NAME=LINE", spec)
	}
	name, size := utf8.DecodeRuneInString(nameText)
	if size == 0 || size != len(nameText) {
		return 0, 0, fmt.Errorf("invalid mark %q: name must be one character", spec)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 0 {
		return 0, 0, fmt.Errorf("invalid mark %q: line must be a non-negative number", spec)
	}
	return name, line, nil
}

// loadBuffer reads the buffer from path, standard input, or nothing.
func loadBuffer(cmd *cobra.Command, path string, opts ...buffer.Option) (*buffer.Buffer, error) {
	switch path {
	case "":
		return buffer.New(nil, opts...), nil
	case stdinPath:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, &ExitError{Code: ExitIOError, Err: fmt.Errorf("read stdin: %w", err)}
		}
		return buffer.FromString(string(content), opts...), nil
	default:
		buf, err := buffer.Load(commandContext(cmd), path, opts...)
		if err != nil {
			return nil, &ExitError{Code: ExitIOError, Err: err}
		}
		return buf, nil
	}
}
