package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/excmd/internal/ui/pretty"
	"github.com/yaklabco/excmd/pkg/config"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style

	// ExLine is a quoted ex command line inside an example.
	ExLine lipgloss.Style

	// Comment is a "#" line in an example block.
	Comment lipgloss.Style

	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			ExLine:      plain,
			Comment:     plain,
			Dim:         plain,
		}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		ExLine:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Comment:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders cobra help with excmd's styles.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode config.ColorMode, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ examples .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.Command.Render,
		"heading":                 h.styles.Heading.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"dim":                     h.styles.Dim.Render,
		"examples":                h.FormatExamples,
		"flags":                   h.FormatFlags,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// FormatExamples styles an example block line by line. Lines starting with
// "#" are comments; on other lines the program name, flags and quoted ex
// command lines are highlighted.
func (h *HelpFormatter) FormatExamples(block string) string {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		if strings.HasPrefix(trimmed, "#") {
			lines[i] = indent + h.styles.Comment.Render(trimmed)
			continue
		}
		lines[i] = indent + h.styleExampleLine(trimmed)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleExampleLine(line string) string {
	words := splitExampleWords(line)
	for i, word := range words {
		switch {
		case word == "excmd":
			words[i] = h.styles.Command.Render(word)
		case strings.HasPrefix(word, "'") || strings.HasPrefix(word, `"`):
			words[i] = h.styles.ExLine.Render(word)
		case strings.HasPrefix(word, "-") && len(word) > 1:
			words[i] = h.styles.Flag.Render(word)
		}
	}
	return strings.Join(words, "")
}

// splitExampleWords splits a shell line into words and the runs of spaces
// between them, keeping quoted words whole so the parts rejoin losslessly.
func splitExampleWords(line string) []string {
	var (
		words []string
		start int
		quote rune
	)
	flush := func(end int) {
		if end > start {
			words = append(words, line[start:end])
		}
		start = end
	}
	inSpace := false
	for idx, char := range line {
		switch {
		case quote != 0:
			if char == quote {
				quote = 0
			}
		case char == ' ':
			if !inSpace {
				flush(idx)
				inSpace = true
			}
		default:
			if inSpace {
				flush(idx)
				inSpace = false
			}
			if char == '\'' || char == '"' {
				quote = char
			}
		}
	}
	flush(len(line))
	return words
}

// FormatFlags lists the visible flags of set, one per line, with the
// descriptions aligned in a column.
func (h *HelpFormatter) FormatFlags(set *pflag.FlagSet) string {
	type row struct {
		names, kind, usage string
	}

	var rows []row
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Deprecated != "" {
			return
		}
		names := "    --" + flag.Name
		if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		kind, usage := pflag.UnquoteUsage(flag)
		if hasDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}
		plainWidth := len(names)
		if kind != "" {
			plainWidth += 1 + len(kind)
		}
		width = max(width, plainWidth)
		rows = append(rows, row{names: names, kind: kind, usage: usage})
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		plainWidth := len(r.names)
		left := h.styles.Flag.Render(r.names)
		if r.kind != "" {
			plainWidth += 1 + len(r.kind)
			left += " " + h.styles.Dim.Render(r.kind)
		}
		lines = append(lines, "  "+left+strings.Repeat(" ", width-plainWidth+3)+h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

func hasDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return flag.Value.Type() != "bool"
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
