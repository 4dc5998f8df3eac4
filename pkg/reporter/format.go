package reporter

import (
	"strings"

	"github.com/yaklabco/excmd/pkg/config"
)

// ParseFormat parses a --format value for the check command. Empty means text.
func ParseFormat(name string) (config.OutputFormat, error) {
	if strings.TrimSpace(name) == "" {
		return config.FormatText, nil
	}
	return config.ParseFormat(name, config.CheckFormats()...)
}
