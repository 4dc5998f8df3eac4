// Package source finds ex command lines in files: Vim scripts, plain lists of
// ex commands and fenced vim code blocks inside Markdown documents.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind classifies a file by how command lines are embedded in it.
type Kind int

const (
	// KindUnknown files are skipped.
	KindUnknown Kind = iota

	// KindVimScript files hold one command per line, with comments and
	// line continuations.
	KindVimScript

	// KindEx files hold one command per line, like the input of "ex -s".
	KindEx

	// KindMarkdown files hold commands in fenced code blocks tagged vim or ex.
	KindMarkdown
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVimScript:
		return "vimscript"
	case KindEx:
		return "ex"
	case KindMarkdown:
		return "markdown"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// enry language names.
const (
	languageVimScript = "Vim Script"
	languageMarkdown  = "Markdown"
)

// Line is one command line found in a file.
type Line struct {
	// Number is the 1-based line in the file where the command starts.
	Number int `json:"line"`

	// Column is the 0-based byte offset of Text within that line.
	Column int `json:"column"`

	// Text is the command line. Continuation lines are joined into it.
	Text string `json:"text"`
}

// Detect classifies a file by its name, falling back to its content
// (shebang, then a Vim or Emacs modeline).
func Detect(path string, content []byte) Kind {
	base := filepath.Base(path)

	switch strings.ToLower(filepath.Ext(base)) {
	case ".ex":
		// enry assigns ".ex" to Elixir.
		return KindEx
	case ".exrc":
		return KindVimScript
	}

	strategies := []func(string, []byte, []string) []string{
		enry.GetLanguagesByFilename,
		enry.GetLanguagesByExtension,
		enry.GetLanguagesByShebang,
		enry.GetLanguagesByModeline,
	}
	for _, strategy := range strategies {
		// Ambiguous extensions such as ".md" yield several candidates.
		for _, lang := range strategy(base, content, nil) {
			if kind := kindOf(lang); kind != KindUnknown {
				return kind
			}
		}
	}
	return KindUnknown
}

func kindOf(lang string) Kind {
	switch {
	case strings.EqualFold(lang, languageVimScript):
		return KindVimScript
	case strings.EqualFold(lang, languageMarkdown):
		return KindMarkdown
	default:
		return KindUnknown
	}
}

// Extract returns the command lines of content, read as kind.
func Extract(ctx context.Context, content []byte, kind Kind) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	switch kind {
	case KindVimScript:
		return scriptLines(splitRaw(content, 1, 0), true), nil
	case KindEx:
		return scriptLines(splitRaw(content, 1, 0), false), nil
	case KindMarkdown:
		return markdownLines(content), nil
	default:
		return nil, nil
	}
}
