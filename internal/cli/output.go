package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
)

// lineError is the machine-readable form of a failed command line.
type lineError struct {
	Kind    string `json:"kind"             yaml:"kind"`
	Code    string `json:"code,omitempty"   yaml:"code,omitempty"`
	Message string `json:"message"          yaml:"message"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func newLineError(err error) *lineError {
	var engineErr *exerr.Error
	if !errors.As(err, &engineErr) {
		return &lineError{Message: err.Error()}
	}
	out := &lineError{
		Kind:    engineErr.Kind.String(),
		Code:    engineErr.Code,
		Message: engineErr.Message,
	}
	if engineErr.Pos >= 0 {
		out.Column = engineErr.Pos + 1
	}
	return out
}

// encode writes value as indented JSON or as YAML.
func encode(w io.Writer, format config.OutputFormat, value any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(config.YAMLIndent())
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("format %q cannot encode values", format)
	}
}

// parseFormat parses a --format value against the formats a command supports.
func parseFormat(name string, allowed ...config.OutputFormat) (config.OutputFormat, error) {
	format, err := config.ParseFormat(name, allowed...)
	if err != nil {
		return "", usageError(err)
	}
	return format, nil
}
