package source

import (
	"bytes"
	"strings"
)

// rawLine is a physical line before comments and continuations are handled.
type rawLine struct {
	number int
	column int
	text   string
}

// splitRaw splits content into physical lines numbered from first.
// column is added to every line's offset.
func splitRaw(content []byte, first, column int) []rawLine {
	if len(content) == 0 {
		return nil
	}

	parts := bytes.Split(bytes.TrimSuffix(content, []byte("\n")), []byte("\n"))
	lines := make([]rawLine, len(parts))
	for i, part := range parts {
		lines[i] = rawLine{
			number: first + i,
			column: column,
			text:   string(bytes.TrimSuffix(part, []byte("\r"))),
		}
	}
	return lines
}

// scriptLines turns physical lines into command lines. Blank lines and lines
// whose first non-blank character is '"' are comments. With continuations, a
// line whose first non-blank character is '\' is appended to the command
// before it, without the backslash.
func scriptLines(raw []rawLine, continuations bool) []Line {
	var lines []Line
	for i, rl := range raw {
		body := strings.TrimLeft(rl.text, " \t")
		indent := len(rl.text) - len(body)

		switch {
		case body == "":
			continue
		case strings.HasPrefix(body, `"`):
			continue
		case i == 0 && rl.number == 1 && strings.HasPrefix(body, "#!"):
			continue
		case continuations && strings.HasPrefix(body, `\`) && len(lines) > 0:
			lines[len(lines)-1].Text += body[1:]
			continue
		}

		lines = append(lines, Line{
			Number: rl.number,
			Column: rl.column + indent,
			Text:   body,
		})
	}
	return lines
}
