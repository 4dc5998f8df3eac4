package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/excmd/pkg/exerr"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every error kind.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeKinds limits the documented kinds to these names.
	// If empty, all kinds are included.
	IncludeKinds []string
}

// KindInfo describes an error kind for template generation.
type KindInfo struct {
	Name        string
	Code        string
	Description string
	Severity    Severity
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindCodes = map[exerr.Kind]string{
	exerr.KindUnknownCommand:     "E492",
	exerr.KindTrailingCharacters: "E488",
	exerr.KindInvalidRange:       "E14",
	exerr.KindInvalidAddress:     "E16",
	exerr.KindMarkNotSet:         "E20",
	exerr.KindPatternNotFound:    "E486",
	exerr.KindNoPreviousPattern:  "E35",
	exerr.KindInvalidArgument:    "E474",
	exerr.KindNoBangAllowed:      "E477",
	exerr.KindNoRangeAllowed:     "E481",
}

// KindInfos returns template information for every error kind.
func KindInfos() []KindInfo {
	kinds := exerr.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		infos = append(infos, KindInfo{
			Name:        kind.String(),
			Code:        kindCodes[kind],
			Description: kind.Description(),
			Severity:    SeverityError,
		})
	}
	return infos
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Let searches wrap around the end of the buffer
wrapscan: true

# Make address patterns case-insensitive
# ignorecase: false

# Default severity for all error kinds: error, warning, or info
# severity_default: error

# File extensions the check command reads
# extensions: [".vim", ".exrc", ".ex", ".md"]

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

# Extra command spellings, resolved once when the command table is built
# aliases:
#   del: delete

# Per-kind configuration
# kinds:
#   trailing-characters:
#     severity: warning
#   unknown-command:
#     enabled: false
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every kind documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every error kind with its default settings.
# Uncomment and modify settings as needed.

# Let searches wrap around the end of the buffer
wrapscan: true

# Make address patterns case-insensitive
ignorecase: false

# Default severity for all error kinds: error, warning, or info
severity_default: error

# File extensions the check command reads
extensions:
  - ".vim"
  - ".exrc"
  - ".ex"
  - ".md"

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - ".git/**"

# Extra command spellings, resolved once when the command table is built
# aliases:
#   del: delete

# Per-kind configuration
kinds:
`)

	for _, info := range filterKinds(KindInfos(), opts.IncludeKinds) {
		if info.Code != "" {
			fmt.Fprintf(&buf, "\n  # %s (%s)\n", info.Name, info.Code)
		} else {
			fmt.Fprintf(&buf, "\n  # %s\n", info.Name)
		}
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(info.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", info.Name)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", info.Severity)
	}

	return buf.Bytes()
}

func filterKinds(infos []KindInfo, include []string) []KindInfo {
	if len(include) == 0 {
		return infos
	}

	includeSet := make(map[string]bool, len(include))
	for _, name := range include {
		includeSet[name] = true
	}

	filtered := make([]KindInfo, 0, len(include))
	for _, info := range infos {
		if includeSet[info.Name] {
			filtered = append(filtered, info)
		}
	}
	return filtered
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the template as JSON, which cannot carry comments.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"wrapscan":         true,
		"ignorecase":       false,
		"severity_default": string(SeverityError),
		"extensions":       DefaultExtensions(),
	}

	if opts.Full {
		kinds := make(map[string]any)
		for _, info := range filterKinds(KindInfos(), opts.IncludeKinds) {
			kinds[info.Name] = map[string]any{
				"enabled":  true,
				"severity": string(info.Severity),
			}
		}
		cfg["kinds"] = kinds
		cfg["ignore"] = []string{"vendor/**", ".git/**"}
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# excmd configuration
# See: https://github.com/yaklabco/excmd`
}
