package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
// Unknown keys are rejected so that typos surface as errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty document is a valid, empty configuration.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		SeverityDefault: c.SeverityDefault,
		Format:          c.Format,
		Jobs:            c.Jobs,
		Color:           c.Color,
		Strict:          c.Strict,
	}

	if c.WrapScan != nil {
		clone.WrapScan = Bool(*c.WrapScan)
	}
	if c.IgnoreCase != nil {
		clone.IgnoreCase = Bool(*c.IgnoreCase)
	}

	if c.Kinds != nil {
		clone.Kinds = make(map[string]KindConfig, len(c.Kinds))
		for k, v := range c.Kinds {
			clone.Kinds[k] = v.clone()
		}
	}

	if c.Aliases != nil {
		clone.Aliases = make(map[string]string, len(c.Aliases))
		maps.Copy(clone.Aliases, c.Aliases)
	}

	if c.Extensions != nil {
		clone.Extensions = make([]string, len(c.Extensions))
		copy(clone.Extensions, c.Extensions)
	}

	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}

	return clone
}

// clone creates a deep copy of a KindConfig.
func (kc KindConfig) clone() KindConfig {
	clone := KindConfig{}

	if kc.Enabled != nil {
		enabled := *kc.Enabled
		clone.Enabled = &enabled
	}

	if kc.Severity != nil {
		severity := *kc.Severity
		clone.Severity = &severity
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
