package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/excmd/pkg/analysis"
	"github.com/yaklabco/excmd/pkg/config"
	"github.com/yaklabco/excmd/pkg/exerr"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(entry analysis.DiagnosticEntry, showContext bool) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(entry.FilePath),
		entry.Line,
		entry.Column,
	)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(config.Severity(entry.Severity)),
		s.Message.Render(entry.Message),
		s.Kind.Render("("+entry.Kind+")"),
	)

	if showContext && entry.Source != "" {
		builder.WriteString(s.FormatSourceContext(entry.Source, entry.Offset+1))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
// Columns are 1-based; zero or less omits the caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := contextIndent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatEngineError formats an error returned for an interactive command line.
// Engine errors show the line with a caret at the failure; others are printed
// as they are.
func (s *Styles) FormatEngineError(line string, err error) string {
	var engineErr *exerr.Error
	if !errors.As(err, &engineErr) {
		return s.Error.Render("error") + "  " + s.Message.Render(err.Error()) + "\n"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s  %s  %s\n",
		s.Error.Render("error"),
		s.Message.Render(engineErr.Error()),
		s.Kind.Render("("+engineErr.Kind.String()+")"),
	)
	if engineErr.Pos >= 0 && line != "" {
		builder.WriteString(s.FormatSourceContext(line, engineErr.Pos+1))
	}
	return builder.String()
}
