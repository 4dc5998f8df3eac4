package config

import (
	"fmt"
	"slices"
	"strings"
)

// ParseFormat parses a format name, accepting only the formats in allowed.
func ParseFormat(name string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(allowed, format) {
		return format, nil
	}

	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid format %q (valid: %s)", name, strings.Join(names, ", "))
}

// ParseColorMode parses a --color value.
func ParseColorMode(name string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(name))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (valid: auto, always, never)", name)
	}
}
