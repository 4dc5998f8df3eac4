package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/reporter"
)

type commandsFlags struct {
	format string
}

// commandInfo represents a command in JSON and YAML output.
type commandInfo struct {
	Name         string `json:"name"                  yaml:"name"`
	Abbreviation string `json:"abbreviation"          yaml:"abbreviation"`
	Range        bool   `json:"range"                 yaml:"range"`
	Bang         bool   `json:"bang"                  yaml:"bang"`
	DefaultRange string `json:"default_range"         yaml:"default_range"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// commandListing is the machine-readable command table.
type commandListing struct {
	Commands []commandInfo    `json:"commands"          yaml:"commands"`
	Aliases  map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

func newCommandsCommand() *cobra.Command {
	flags := &commandsFlags{}

	cmd := &cobra.Command{
		Use:   "commands [NAME...]",
		Short: "List the ex commands excmd understands",
		Long: `List the command table: every command with its shortest abbreviation,
whether it takes a range or '!', and the range it uses when none is written.
Aliases from the configuration are listed after the built-in commands.

With arguments, only the commands those spellings resolve to are listed.`,
		Example: `  excmd commands

  # What do these abbreviations mean?
  excmd commands s d co

  excmd commands --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommands(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")

	return cmd
}

func runCommands(cmd *cobra.Command, names []string, flags *commandsFlags) error {
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
	table := eng.Table()

	specs := table.Specs()
	aliases := table.Aliases()
	if len(names) > 0 {
		specs, err = lookupSpecs(table, names)
		if err != nil {
			return err
		}
		aliases = nil
	}

	out := cmd.OutOrStdout()
	if format != config.FormatText {
		return encode(out, format, newCommandListing(specs, aliases))
	}

	styles := outputStyles(cmd)
	formatter := pretty.NewTableFormatter(styles,
		pretty.IsColorEnabled(colorMode(cmd), out), reporter.TerminalWidth(out))
	if _, err := io.WriteString(out, formatter.FormatCommandTable(specs, aliases)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// lookupSpecs resolves each spelling to its command, suggesting a name for unknown ones.
func lookupSpecs(table *command.Table, names []string) ([]*command.Spec, error) {
	specs := make([]*command.Spec, 0, len(names))
	var unknown []string
	for _, name := range names {
		spec, ok := table.Get(name)
		if !ok {
			msg := fmt.Sprintf("%q", name)
			if suggestion := table.Suggest(name); suggestion != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			unknown = append(unknown, msg)
			continue
		}
		specs = append(specs, spec)
	}
	if len(unknown) > 0 {
		return nil, usageError(fmt.Errorf("unknown command %s", strings.Join(unknown, ", ")))
	}
	return specs, nil
}

func newCommandListing(specs []*command.Spec, aliases map[string]string) commandListing {
	infos := make([]commandInfo, 0, len(specs))
	for _, spec := range specs {
		abbrev := spec.Abbrev
		if abbrev == "" {
			abbrev = spec.Name
		}
		infos = append(infos, commandInfo{
			Name:         spec.Name,
			Abbreviation: abbrev,
			Range:        spec.Range,
			Bang:         spec.Bang,
			DefaultRange: spec.Default.String(),
			Description:  spec.Description,
		})
	}
	return commandListing{Commands: infos, Aliases: aliases}
}
