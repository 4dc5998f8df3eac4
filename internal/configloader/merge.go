package configloader

import (
	"maps"

	"github.com/yaklabco/excmd/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.WrapScan != nil {
		result.WrapScan = override.WrapScan
	}
	if override.IgnoreCase != nil {
		result.IgnoreCase = override.IgnoreCase
	}

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Strict can only be switched on by a later layer.
	if override.Strict {
		result.Strict = true
	}

	result.Kinds = mergeKinds(base.Kinds, override.Kinds)
	result.Aliases = mergeAliases(base.Aliases, override.Aliases)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeKinds performs deep merge of per-kind configurations.
func mergeKinds(base, override map[string]config.KindConfig) map[string]config.KindConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.KindConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Severity != nil {
			existing.Severity = val.Severity
		}
		result[key] = existing
	}

	return result
}

// mergeAliases combines alias maps; an alias in override replaces the same alias in base.
func mergeAliases(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
