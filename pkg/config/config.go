// Package config defines core configuration types for excmd.
// These types are pure data structures with no dependency on how they are loaded.
package config

import "github.com/yaklabco/excmd/pkg/exerr"

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// KindConfig holds per-error-kind options for the check command.
type KindConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
	FormatYAML    OutputFormat = "yaml"
)

// CheckFormats lists the formats accepted by the check command.
func CheckFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the root configuration structure for excmd.
type Config struct {
	// WrapScan lets searches wrap around the end of the buffer. Unset means true.
	WrapScan *bool `yaml:"wrapscan,omitempty"`

	// IgnoreCase makes address patterns case-insensitive. Unset means false.
	IgnoreCase *bool `yaml:"ignorecase,omitempty"`

	// SeverityDefault is the severity of diagnostics whose kind does not set one.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Kinds holds per-error-kind overrides keyed by kind name, e.g. "trailing-characters".
	Kinds map[string]KindConfig `yaml:"kinds,omitempty"`

	// Aliases maps a user command spelling to a canonical command name.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Extensions lists the file extensions the check command discovers.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Color controls styled output.
	Color ColorMode `yaml:"-"`

	// Strict makes warnings fail the check command.
	Strict bool `yaml:"-"`
}

// DefaultExtensions returns the file extensions checked when none are configured.
func DefaultExtensions() []string {
	return []string{".vim", ".exrc", ".ex", ".md"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityError),
		Kinds:           make(map[string]KindConfig),
		Aliases:         make(map[string]string),
		Extensions:      DefaultExtensions(),
		Format:          FormatText,
		Color:           ColorAuto,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// WrapScanEnabled reports the effective wrapscan setting.
func (c *Config) WrapScanEnabled() bool {
	if c == nil || c.WrapScan == nil {
		return true
	}
	return *c.WrapScan
}

// IgnoreCaseEnabled reports the effective ignorecase setting.
func (c *Config) IgnoreCaseEnabled() bool {
	if c == nil || c.IgnoreCase == nil {
		return false
	}
	return *c.IgnoreCase
}

// KindEnabled reports whether diagnostics of kind are reported.
func (c *Config) KindEnabled(kind exerr.Kind) bool {
	if c == nil {
		return true
	}
	kc, ok := c.Kinds[kind.String()]
	if !ok || kc.Enabled == nil {
		return true
	}
	return *kc.Enabled
}

// SeverityFor returns the severity of diagnostics of kind.
func (c *Config) SeverityFor(kind exerr.Kind) Severity {
	if c == nil {
		return SeverityError
	}
	if kc, ok := c.Kinds[kind.String()]; ok && kc.Severity != nil {
		return Severity(*kc.Severity)
	}
	if c.SeverityDefault != "" {
		return Severity(c.SeverityDefault)
	}
	return SeverityError
}

// Bool returns a pointer to b, for populating optional fields.
func Bool(b bool) *bool {
	return &b
}
