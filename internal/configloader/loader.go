// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/fsutil"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Verbose enables logging of configuration resolution steps.
	Verbose bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (EXCMD_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.excmd.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/excmd/config.yaml)
//  6. System config (/etc/excmd/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	// Resolve working directory
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	// Start with defaults
	cfg := config.NewConfig()

	// Discover config paths
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	// Handle explicit config path
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Load and merge in order (lowest to highest precedence)
	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}

	log := logging.FromContext(ctx)
	stack := []*config.Config{cfg}
	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}

		layerCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		// Report errors against the file that introduced them, under the
		// spelling the user wrote.
		if validation := ValidateWithFile(layerCfg, layer.path); !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		stack = append(stack, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)

		if opts.Verbose {
			log.Debug("loaded config", logging.FieldConfig, layer.path)
		}
	}

	cfg = MergeAll(stack...)

	// 5. Environment variables
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	// 6. CLI config (highest precedence)
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Normalize kind keys so users can write Vim codes or groups in config
	normalizeKindKeys(cfg, result)

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		// Return first error
		return nil, &validation.Errors[0]
	}

	// Add validation warnings to result
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// normalizeKindKeys converts Vim codes, snake_case spellings and group names
// in the kinds section to canonical kind names.
// Group entries are applied first so an explicit kind entry overrides its group.
// If a kind is specified more than once, warns and uses the last key in sorted order.
func normalizeKindKeys(cfg *config.Config, result *LoadResult) {
	if len(cfg.Kinds) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(cfg.Kinds))
	normalized := make(map[string]config.KindConfig, len(cfg.Kinds))

	for _, key := range keys {
		if !IsKindGroup(key) {
			continue
		}
		for _, name := range GetGroupKinds(key) {
			normalized[name] = cfg.Kinds[key]
		}
	}

	// canonical name -> original key
	seen := make(map[string]string)

	for _, key := range keys {
		if IsKindGroup(key) {
			continue
		}

		name := NormalizeKindKey(key)
		if name == "" {
			// Unknown kind - keep it as-is, validation will warn about it later
			normalized[key] = cfg.Kinds[key]
			continue
		}

		if originalKey, exists := seen[name]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate kind configuration: %q and %q both refer to %s; using %q",
					originalKey, key, name, key))
		}

		seen[name] = key
		normalized[name] = cfg.Kinds[key]
	}

	cfg.Kinds = normalized
}
