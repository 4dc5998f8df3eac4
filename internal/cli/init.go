package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/excmd/internal/configloader"
	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

const (
	templateYAML = "yaml"
	templateJSON = "json"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	kinds  []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new excmd configuration file",
		Long: `Create a new .excmd.yml configuration file in the current directory.
The file sets search behavior, command aliases, the files "excmd check"
looks at, and the severity of each error kind.`,
		Example: `  # Minimal .excmd.yml
  excmd init

  # Document every error kind, or only unknown commands
  excmd init --full
  excmd init --full --kinds E492

  excmd init --format json
  excmd init --output custom.yml`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all error kinds documented")
	cmd.Flags().StringVar(&flags.format, "format", templateYAML, "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .excmd.yml or .excmd.json)")
	cmd.Flags().StringSliceVar(&flags.kinds, "kinds", nil, "Error kinds or Vim codes to document (with --full)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != templateYAML && flags.format != templateJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".excmd.yml"
		if flags.format == templateJSON {
			outputPath = ".excmd.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	kinds, err := normalizeKinds(flags.kinds)
	if err != nil {
		return err
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         flags.full,
		Format:       flags.format,
		IncludeKinds: kinds,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(commandContext(cmd), absPath, content, configFilePermissions)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}
	if !written {
		logger.Info("configuration file is already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every error kind")
	}
	logger.Info("run 'excmd commands' to see the command table")

	return nil
}

// normalizeKinds maps kind names, Vim codes and group names to kind names.
func normalizeKinds(keys []string) ([]string, error) {
	var kinds []string
	for _, key := range keys {
		if configloader.IsKindGroup(key) {
			kinds = append(kinds, configloader.GetGroupKinds(key)...)
			continue
		}
		name := configloader.NormalizeKindKey(key)
		if name == "" {
			return nil, usageError(fmt.Errorf("unknown error kind %q", key))
		}
		kinds = append(kinds, name)
	}
	return kinds, nil
}
