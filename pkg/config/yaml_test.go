package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Kinds map", func(t *testing.T) {
		t.Parallel()
		severity := "warning"
		original := &config.Config{
			Kinds: map[string]config.KindConfig{
				"trailing-characters": {Enabled: config.Bool(true), Severity: &severity},
			},
		}

		clone := original.Clone()
		require.Contains(t, clone.Kinds, "trailing-characters")
		assert.True(t, *clone.Kinds["trailing-characters"].Enabled)

		*clone.Kinds["trailing-characters"].Severity = "info"
		assert.Equal(t, "warning", *original.Kinds["trailing-characters"].Severity)
	})

	t.Run("deep copies slices and aliases", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Ignore:     []string{"vendor/**"},
			Extensions: []string{".vim"},
			Aliases:    map[string]string{"del": "delete"},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".md"
		clone.Aliases["del"] = "yank"

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, ".vim", original.Extensions[0])
		assert.Equal(t, "delete", original.Aliases["del"])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			WrapScan:        config.Bool(false),
			IgnoreCase:      config.Bool(true),
			SeverityDefault: "warning",
			Format:          config.FormatJSON,
			Jobs:            4,
			Color:           config.ColorNever,
			Strict:          true,
		}

		clone := original.Clone()
		assert.Equal(t, original, clone)
		assert.NotSame(t, original.WrapScan, clone.WrapScan)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{
			WrapScan:        config.Bool(false),
			SeverityDefault: "warning",
			Format:          config.FormatJSON,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "wrapscan: false")
		assert.Contains(t, string(data), "severity_default: warning")
		assert.NotContains(t, string(data), "format")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{SeverityDefault: "info"}
		data, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
		require.NoError(t, err)
		assert.Contains(t, string(data), "# excmd configuration\n")
		assert.Contains(t, string(data), "severity_default: info")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
wrapscan: false
ignorecase: true
severity_default: warning
aliases:
  del: delete
kinds:
  unknown-command:
    enabled: false
`))
		require.NoError(t, err)
		assert.False(t, cfg.WrapScanEnabled())
		assert.True(t, cfg.IgnoreCaseEnabled())
		assert.Equal(t, "warning", cfg.SeverityDefault)
		assert.Equal(t, "delete", cfg.Aliases["del"])
		require.Contains(t, cfg.Kinds, "unknown-command")
		assert.False(t, *cfg.Kinds["unknown-command"].Enabled)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.True(t, cfg.WrapScanEnabled())
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("wrapscann: true\n"))
		require.Error(t, err)
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()
		original := config.NewConfig()
		original.IgnoreCase = config.Bool(true)

		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original.IgnoreCase, parsed.IgnoreCase)
		assert.Equal(t, original.Extensions, parsed.Extensions)
	})
}
