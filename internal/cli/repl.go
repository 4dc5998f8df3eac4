package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/buffer"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/engine"
)

const (
	replPrompt = "excmd> "

	// metaPrefix starts a session command. Ex addresses never put a letter
	// after a backslash.
	metaPrefix = '\\'

	historyFileName = "history"
)

// errQuit ends the session.
var errQuit = errors.New("quit")

var errNoBuffer = errors.New("no file loaded")

type replFlags struct {
	file       string
	noHistory  bool
	ignoreCase bool
}

func newReplCommand() *cobra.Command {
	flags := &replFlags{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse and resolve command lines interactively",
		Long: `Start an interactive session. Each line is parsed and its range resolved
against the loaded file. Going to a line moves the cursor, ":k" and ":mark"
set marks, and searches remember their pattern, as they would in Vim.
The file is reloaded when it changes on disk.

Session commands start with a backslash:
  \help            list session commands
  \edit FILE       load FILE as the buffer
  \reload          re-read the file
  \goto N          move the cursor to line N
  \mark X N        set mark X to line N
  \pattern P       set the last search pattern
  \tokens LINE     print the tokens of LINE
  \status          show the buffer state
  \quit            leave the session`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "file to load as the buffer")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not read or write the history file")
	cmd.Flags().BoolVar(&flags.ignoreCase, "ignorecase", false, "match address patterns case-insensitively")

	return cmd
}

func runRepl(cmd *cobra.Command, flags *replFlags) error {
	cliCfg := &config.Config{}
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

	ctx := logging.WithLogger(commandContext(cmd), logging.NewInteractive())
	sess := &session{
		eng:     eng,
		styles:  outputStyles(cmd),
		out:     cmd.OutOrStdout(),
		logger:  logging.FromContext(ctx),
		options: []buffer.Option{buffer.WithIgnoreCase(cfg.IgnoreCaseEnabled())},
	}
	sess.buf = buffer.New(nil, sess.options...)
	if flags.file != "" {
		if err := sess.edit(ctx, flags.file); err != nil {
			return &ExitError{Code: ExitIOError, Err: err}
		}
	}

	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return sess.runInteractive(ctx, !flags.noHistory)
	}
	return sess.runScript(ctx, in)
}

// session is the state of an interactive run.
type session struct {
	eng     *engine.Engine
	buf     *buffer.Buffer
	styles  *pretty.Styles
	out     io.Writer
	logger  *log.Logger
	options []buffer.Option
}

// runScript reads lines from r until EOF or \quit.
func (s *session) runScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := s.handle(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read input: %w", err)}
	}
	return nil
}

// runInteractive reads lines with line editing and history.
func (s *session) runInteractive(ctx context.Context, useHistory bool) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetCompleter(s.complete)

	historyPath := ""
	if useHistory {
		historyPath = replHistoryPath()
	}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
		defer s.saveHistory(state, historyPath)
	}

	for {
		line, err := state.Prompt(replPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			state.AppendHistory(line)
		}
		if err := s.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func (s *session) saveHistory(state *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Debug("history not saved", logging.FieldError, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		s.logger.Debug("history not saved", logging.FieldError, err)
		return
	}
	defer f.Close()
	if _, err := state.WriteHistory(f); err != nil {
		s.logger.Debug("history not saved", logging.FieldError, err)
	}
}

// replHistoryPath returns the history file under the user cache directory, or "".
func replHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "excmd", historyFileName)
}

// complete offers command names for the word being typed.
func (s *session) complete(line string) []string {
	if strings.HasPrefix(line, string(metaPrefix)) {
		var matches []string
		for _, name := range metaCommandNames {
			if strings.HasPrefix(name, line[1:]) {
				matches = append(matches, string(metaPrefix)+name)
			}
		}
		return matches
	}

	head := strings.TrimRightFunc(line, isCommandLetter)
	word := line[len(head):]
	if word == "" {
		return nil
	}
	var matches []string
	for _, name := range s.eng.Table().Names() {
		if strings.HasPrefix(name, word) {
			matches = append(matches, head+name)
		}
	}
	return matches
}

func isCommandLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// handle runs one input line. Failures of the line itself are printed, not returned.
func (s *session) handle(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if isMetaCommand(trimmed) {
		return s.meta(ctx, trimmed[1:])
	}

	s.refresh(ctx)

	result, err := s.eng.Run(ctx, line, s.buf, "")
	if err != nil {
		return s.write(s.styles.FormatEngineError(line, err))
	}
	s.apply(result)
	return s.write(s.styles.FormatResolved(result))
}

func isMetaCommand(line string) bool {
	if len(line) < 2 || line[0] != metaPrefix {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line[1:])
	return isCommandLetter(r)
}

// apply updates the buffer the way Vim would after the line ran.
func (s *session) apply(result *engine.Result) {
	if result.LastPattern != "" {
		s.buf.SetLastPattern(result.LastPattern)
	}
	if result.Resolved == nil {
		return
	}
	desc := result.Descriptor
	switch {
	case desc.Name == "":
		if err := s.buf.SetCurrent(result.Resolved.Last); err != nil {
			s.logger.Warn("cursor not moved", logging.FieldError, err)
		}
	case desc.Name == "mark":
		if params, ok := desc.Params.(command.MarkParams); ok {
			name, _ := utf8.DecodeRuneInString(params.Mark)
			s.buf.SetMark(name, result.Resolved.Last)
		}
	}
}

// refresh reloads the buffer when its file changed on disk.
func (s *session) refresh(ctx context.Context) {
	stale, err := s.buf.Stale(ctx)
	if err != nil {
		s.logger.Warn("cannot check file", logging.FieldPath, s.buf.Path(), logging.FieldError, err)
		return
	}
	if !stale {
		return
	}
	reloaded, err := s.buf.Reload(ctx)
	if err != nil {
		s.logger.Warn("reload failed", logging.FieldPath, s.buf.Path(), logging.FieldError, err)
		return
	}
	if reloaded {
		s.logger.Info("file changed on disk, reloaded", logging.FieldPath, s.buf.Path())
	}
}

func (s *session) edit(ctx context.Context, path string) error {
	buf, err := buffer.Load(ctx, path, s.options...)
	if err != nil {
		return err
	}
	s.buf = buf
	s.logger.Debug("loaded buffer", logging.FieldPath, path, logging.FieldLine, buf.LastLine())
	return nil
}

func (s *session) write(text string) error {
	if _, err := io.WriteString(s.out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // Read-only lookup table.
var metaCommandNames = []string{"edit", "goto", "help", "mark", "pattern", "quit", "reload", "status", "tokens"}

// meta runs a session command. body is the line without the backslash.
func (s *session) meta(ctx context.Context, body string) error {
	name, rest, _ := strings.Cut(body, " ")
	rest = strings.TrimSpace(rest)

	// \tokens takes a raw command line; the others take shell-style words.
	if name == "tokens" {
		return s.tokens(rest)
	}
	args, err := shlex.Split(rest)
	if err != nil {
		return s.metaError(name, err)
	}

	switch name {
	case "quit", "q":
		return errQuit
	case "help":
		return s.write("session commands: \\" + strings.Join(metaCommandNames, ", \\") + "\n")
	case "edit":
		if len(args) != 1 {
			return s.metaError(name, errors.New("usage: \\edit FILE"))
		}
		if err := s.edit(ctx, args[0]); err != nil {
			return s.metaError(name, err)
		}
		return s.status()
	case "reload":
		if s.buf.Path() == "" {
			return s.metaError(name, errNoBuffer)
		}
		reloaded, err := s.buf.Reload(ctx)
		if err != nil {
			return s.metaError(name, err)
		}
		if !reloaded {
			return s.write("unchanged\n")
		}
		return s.status()
	case "goto":
		line, err := oneNumber(args, "usage: \\goto N")
		if err != nil {
			return s.metaError(name, err)
		}
		if err := s.buf.SetCurrent(line); err != nil {
			return s.metaError(name, err)
		}
		return s.status()
	case "mark":
		if len(args) != 2 {
			return s.metaError(name, errors.New("usage: \\mark X N"))
		}
		mark, line, err := parseMark(args[0] + "=" + args[1])
		if err != nil {
			return s.metaError(name, err)
		}
		s.buf.SetMark(mark, line)
		return nil
	case "pattern":
		if len(args) != 1 {
			return s.metaError(name, errors.New("usage: \\pattern P"))
		}
		s.buf.SetLastPattern(args[0])
		return nil
	case "status":
		return s.status()
	default:
		return s.metaError(name, errors.New("unknown session command; try \\help"))
	}
}

func (s *session) tokens(line string) error {
	toks, err := s.eng.Tokens(line)
	if err != nil {
		return s.write(s.styles.FormatEngineError(line, err))
	}
	return s.write(s.styles.FormatTokens(line, toks))
}

func (s *session) status() error {
	path := s.buf.Path()
	if path == "" {
		path = "(no file)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d lines, line %d", path, s.buf.LastLine(), s.buf.CurrentLine())
	if pattern := s.buf.LastPattern(); pattern != "" {
		fmt.Fprintf(&b, ", pattern %q", pattern)
	}
	b.WriteString("\n")
	return s.write(b.String())
}

func (s *session) metaError(name string, err error) error {
	return s.write(s.styles.FormatEngineError("", fmt.Errorf("\\%s: %w", name, err)))
}

func oneNumber(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New(usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a line number: %q", args[0])
	}
	return n, nil
}
