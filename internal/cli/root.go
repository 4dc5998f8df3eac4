// Package cli provides the Cobra command structure for excmd.
package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/configloader"
	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLongDescription = `excmd understands the command line of Vim's ex mode.

It parses a line such as ":.,/end/-1s/foo/bar/g" into a structured command
descriptor, resolves its range against a buffer, and checks script files
(.vim, .exrc, .ex and vim code blocks in Markdown) for lines Vim would reject.`

// environmentHelp lists the configuration environment variables.
func environmentHelp() string {
	vars := configloader.ListEnvVars()
	names := slices.Sorted(maps.Keys(vars))

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var b strings.Builder
	b.WriteString("Environment:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-*s  %s", width, name, vars[name])
	}
	return b.String()
}

// NewRootCommand creates the root excmd command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "excmd",
		Short: "Parse, resolve and check Vim ex command lines",
		Long:  rootLongDescription + "\n\n" + environmentHelp(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			if _, err := config.ParseColorMode(color); err != nil {
				return usageError(err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newCommandsCommand())
	rootCmd.AddCommand(newReplCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// The flag is not parsed yet; an invalid value falls back to auto here and
	// is rejected by PersistentPreRunE.
	colorMode, err := config.ParseColorMode(os.Getenv("EXCMD_COLOR"))
	if err != nil {
		colorMode = config.ColorAuto
	}
	helpFormatter := NewHelpFormatter(colorMode, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
