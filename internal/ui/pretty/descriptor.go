package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/engine"
	"github.com/yaklabco/excmd/pkg/token"
)

const fieldWidth = 10

func (s *Styles) field(builder *strings.Builder, label, value string) {
	fmt.Fprintf(builder, "  %s %s\n", s.Label.Render(fmt.Sprintf("%-*s", fieldWidth, label+":")), value)
}

// FormatDescriptor formats a parsed command line field by field.
func (s *Styles) FormatDescriptor(desc *command.Descriptor) string {
	var builder strings.Builder

	name := desc.Name
	if name == "" {
		name = s.Dim.Render("(goto line)")
	} else {
		name = s.Command.Render(name)
	}
	s.field(&builder, "command", name)

	rangeText := s.Dim.Render("(none)")
	if !desc.Range.IsEmpty() {
		rangeText = s.Range.Render(desc.Range.String())
		if desc.RangeDefaulted {
			rangeText += s.Dim.Render(" (default)")
		}
	}
	s.field(&builder, "range", rangeText)

	if desc.Forced {
		s.field(&builder, "forced", "yes")
	}
	if desc.Params != nil {
		if args := desc.Params.Args(); args != "" {
			s.field(&builder, "args", s.Argument.Render(args))
		}
	}
	s.field(&builder, "canonical", s.Bold.Render(desc.String()))

	return builder.String()
}

// FormatTokens lists the tokens of line with their byte spans.
func (s *Styles) FormatTokens(line string, tokens []token.Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		span := strconv.Itoa(tok.Start) + ".." + strconv.Itoa(tok.End)
		text := ""
		if tok.Start >= 0 && tok.End <= len(line) && tok.Start <= tok.End {
			text = line[tok.Start:tok.End]
		}
		fmt.Fprintf(&builder, "  %-8s %s %s\n",
			span,
			s.TokenKind.Render(fmt.Sprintf("%-16s", tok.Kind.String())),
			s.Argument.Render(strconv.Quote(text)),
		)
	}
	return builder.String()
}

// FormatResolved formats a resolved command line.
func (s *Styles) FormatResolved(result *engine.Result) string {
	var builder strings.Builder
	builder.WriteString(s.FormatDescriptor(result.Descriptor))

	if result.Resolved == nil {
		s.field(&builder, "lines", s.Dim.Render("(no range)"))
	} else {
		lines := fmt.Sprintf("%d to %d", result.Resolved.First, result.Resolved.Last)
		s.field(&builder, "lines", s.Range.Render(lines)+s.Dim.Render(fmt.Sprintf(" (%d)", result.Resolved.Count())))
	}
	if result.LastPattern != "" {
		s.field(&builder, "pattern", s.Argument.Render(result.LastPattern))
	}
	return builder.String()
}
