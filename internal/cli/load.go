package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/configloader"
	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/engine"
)

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

// minArgs requires at least n positional arguments.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// exactArgs requires exactly n positional arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// commandContext returns the command's context, or a background context when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// newEngine builds an engine whose table carries the configured aliases.
func newEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	table := command.DefaultTable
	if len(cfg.Aliases) > 0 {
		var err error
		table, err = command.DefaultTable.WithAliases(cfg.Aliases)
		if err != nil {
			return nil, configError(fmt.Errorf("build command table: %w", err))
		}
		logger := logging.FromContext(ctx)
		for _, alias := range slices.Sorted(maps.Keys(cfg.Aliases)) {
			logger.Debug("alias", logging.FieldAlias, alias, logging.FieldCommand, cfg.Aliases[alias])
		}
	}
	return engine.New(engine.Options{Table: table, WrapScan: cfg.WrapScanEnabled()}), nil
}

// colorMode reads the persistent --color flag. Invalid values were already
// rejected before the command ran.
func colorMode(cmd *cobra.Command) config.ColorMode {
	name, err := cmd.Flags().GetString("color")
	if err != nil {
		return config.ColorAuto
	}
	mode, err := config.ParseColorMode(name)
	if err != nil {
		return config.ColorAuto
	}
	return mode
}

// outputStyles returns the pretty styles for the command's standard output.
func outputStyles(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
}
