package source

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fenceKinds maps fenced code block info strings to how their body is read.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceKinds = map[string]Kind{
	"vim":       KindVimScript,
	"vimscript": KindVimScript,
	"viml":      KindVimScript,
	"ex":        KindEx,
	"exrc":      KindEx,
}

// markdownLines returns the command lines of every fenced vim or ex block.
// An untagged block is read as ex when each of its commands starts with ':'.
func markdownLines(content []byte) []Line {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))
	starts := lineStarts(content)

	var lines []Line
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		raw := blockLines(block, content, starts)
		lang := strings.ToLower(string(block.Language(content)))

		if kind, ok := fenceKinds[lang]; ok {
			lines = append(lines, scriptLines(raw, kind == KindVimScript)...)
		} else if lang == "" {
			if found := scriptLines(raw, false); allPrompted(found) {
				lines = append(lines, found...)
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return lines
}

func blockLines(block *ast.FencedCodeBlock, content []byte, starts []int) []rawLine {
	segments := block.Lines()
	raw := make([]rawLine, 0, segments.Len())
	for i := range segments.Len() {
		segment := segments.At(i)
		number := lineNumber(starts, segment.Start)
		raw = append(raw, rawLine{
			number: number,
			column: segment.Start - starts[number-1],
			text:   strings.TrimRight(string(segment.Value(content)), "\r\n"),
		})
	}
	return raw
}

func allPrompted(lines []Line) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !strings.HasPrefix(line.Text, ":") {
			return false
		}
	}
	return true
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineNumber returns the 1-based line containing offset.
func lineNumber(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
}
