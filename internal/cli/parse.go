package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/engine"
)

type parseFlags struct {
	format string
	tokens bool
}

// parseEntry is the outcome of parsing one line.
type parseEntry struct {
	Input      string              `json:"input"                yaml:"input"`
	Descriptor *command.Descriptor `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`
	Canonical  string              `json:"canonical,omitempty"  yaml:"canonical,omitempty"`
	Tokens     []engine.Token      `json:"tokens,omitempty"     yaml:"tokens,omitempty"`
	Error      *lineError          `json:"error,omitempty"      yaml:"error,omitempty"`

	err error
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse LINE...",
		Short: "Parse ex command lines into descriptors",
		Long: `Parse each argument as an ex command line and print its descriptor:
the command, whether it was forced with '!', its range and its arguments.`,
		Example: `  # Describe a delete over the whole file
  excmd parse '1,$d'

  # Show how a line is split into tokens
  excmd parse --tokens '.,/end/-1s/a/b/g'

  excmd parse --format json 'copy 0' 'g/x/d'`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.tokens, "tokens", false, "print the token stream of each line")

	return cmd
}

func runParse(cmd *cobra.Command, lines []string, flags *parseFlags) error {
	format, err := parseFormat(flags.format, config.FormatText, config.FormatJSON, config.FormatYAML)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	eng, err := newEngine(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	entries := make([]parseEntry, 0, len(lines))
	failed := false
	for _, line := range lines {
		entry := parseEntry{Input: line}
		desc, err := eng.Parse(ctx, line)
		if err != nil {
			entry.Error = newLineError(err)
			entry.err = err
			failed = true
		} else {
			entry.Descriptor = desc
			entry.Canonical = desc.String()
		}
		if flags.tokens && err == nil {
			entry.Tokens, _ = eng.Tokens(line)
		}
		entries = append(entries, entry)
	}

	out := cmd.OutOrStdout()
	if format == config.FormatText {
		if err := writeParseText(out, outputStyles(cmd), entries); err != nil {
			return err
		}
	} else if err := encode(out, format, entries); err != nil {
		return err
	}

	if failed {
		return issuesFound(ExitErrors)
	}
	return nil
}

func writeParseText(w io.Writer, styles *pretty.Styles, entries []parseEntry) error {
	var builder strings.Builder
	for i, entry := range entries {
		if i > 0 {
			builder.WriteString("\n")
		}
		if len(entries) > 1 {
			builder.WriteString(styles.Bold.Render(entry.Input) + "\n")
		}
		if entry.err != nil {
			builder.WriteString(styles.FormatEngineError(entry.Input, entry.err))
			continue
		}
		builder.WriteString(styles.FormatDescriptor(entry.Descriptor))
		if entry.Tokens != nil {
			builder.WriteString(styles.FormatTokens(entry.Input, entry.Tokens))
		}
	}
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
