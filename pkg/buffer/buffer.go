// Package buffer provides an in-memory line buffer that satisfies address.Context.
// It stands in for the editor when command lines are resolved outside an editor.
package buffer

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/excmd/pkg/fsutil"
)

// Buffer is a list of lines with a cursor and marks. Lines are 1-based.
// A Buffer is safe for concurrent use.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	current    int
	marks      map[rune]int
	ignoreCase bool
	lastSearch string
	patterns   map[string]*regexp2.Regexp
	info       *fsutil.FileInfo
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithCurrent places the cursor on line n.
func WithCurrent(n int) Option {
	return func(b *Buffer) { b.current = n }
}

// WithMark sets mark name to line n.
func WithMark(name rune, n int) Option {
	return func(b *Buffer) { b.marks[name] = n }
}

// WithIgnoreCase makes searches case-insensitive unless a pattern says otherwise.
func WithIgnoreCase(ignore bool) Option {
	return func(b *Buffer) { b.ignoreCase = ignore }
}

// New returns a buffer holding lines. The cursor starts on line 1, or 0 when empty.
func New(lines []string, opts ...Option) *Buffer {
	b := &Buffer{
		lines:    lines,
		current:  min(1, len(lines)),
		marks:    make(map[rune]int),
		patterns: make(map[string]*regexp2.Regexp),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromString splits text into lines. A trailing newline does not add an empty line.
func FromString(text string, opts ...Option) *Buffer {
	return New(splitLines(text), opts...)
}

// Load reads the file at path into a new buffer.
func Load(ctx context.Context, path string, opts ...Option) (*Buffer, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load buffer: %w", err)
	}
	b := FromString(string(content), opts...)
	b.info = info
	return b, nil
}

// Reload re-reads the file the buffer was loaded from when it changed on disk.
// It reports whether the contents were replaced.
func (b *Buffer) Reload(ctx context.Context) (bool, error) {
	b.mu.RLock()
	info := b.info
	b.mu.RUnlock()

	if info == nil {
		return false, nil
	}

	modified, err := fsutil.CheckModified(ctx, info, fsutil.DepthContent)
	if err != nil || !modified {
		return false, err
	}

	content, newInfo, err := fsutil.ReadFile(ctx, info.Path)
	if err != nil {
		return false, fmt.Errorf("reload buffer: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = splitLines(string(content))
	b.info = newInfo
	b.current = min(max(b.current, min(1, len(b.lines))), len(b.lines))
	return true, nil
}

// Stale reports whether the file the buffer was loaded from looks changed on
// disk, judging by modification time and size only.
func (b *Buffer) Stale(ctx context.Context) (bool, error) {
	b.mu.RLock()
	info := b.info
	b.mu.RUnlock()

	if info == nil {
		return false, nil
	}
	stale, err := fsutil.CheckModified(ctx, info, fsutil.DepthStat)
	if err != nil {
		return false, fmt.Errorf("check buffer: %w", err)
	}
	return stale, nil
}

// Path returns the file the buffer was loaded from, or "".
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.info == nil {
		return ""
	}
	return b.info.Path
}

// CurrentLine returns the cursor line.
func (b *Buffer) CurrentLine() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// LastLine returns the number of lines.
func (b *Buffer) LastLine() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns line n, 1-based.
func (b *Buffer) Line(n int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 1 || n > len(b.lines) {
		return "", false
	}
	return b.lines[n-1], true
}

// SetCurrent moves the cursor. Lines outside the buffer are rejected.
func (b *Buffer) SetCurrent(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 0 || n > len(b.lines) {
		return fmt.Errorf("line %d out of range 0..%d", n, len(b.lines))
	}
	b.current = n
	return nil
}

// SetMark records mark name at line n.
func (b *Buffer) SetMark(name rune, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marks[name] = n
}

// LookupMark returns the line of a mark. '' and '` fall back to line 1 like a
// freshly opened Vim buffer.
func (b *Buffer) LookupMark(name rune) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line, ok := b.marks[name]; ok {
		return line, true
	}
	if (name == '\'' || name == '`') && len(b.lines) > 0 {
		return 1, true
	}
	return 0, false
}

// LastPattern returns the remembered search pattern.
func (b *Buffer) LastPattern() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastSearch
}

// SetLastPattern remembers pattern for empty searches.
func (b *Buffer) SetLastPattern(pattern string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSearch = pattern
}

// SearchForward implements address.Context. An invalid pattern never matches.
func (b *Buffer) SearchForward(pattern string, from int, wrap bool) (int, bool) {
	re, ok := b.compile(pattern)
	if !ok {
		return 0, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	last := len(b.lines)
	for line := from + 1; line <= last; line++ {
		if b.matches(re, line) {
			return line, true
		}
	}
	if wrap {
		for line := 1; line <= min(from, last); line++ {
			if b.matches(re, line) {
				return line, true
			}
		}
	}
	return 0, false
}

// SearchBackward implements address.Context. An invalid pattern never matches.
func (b *Buffer) SearchBackward(pattern string, from int, wrap bool) (int, bool) {
	re, ok := b.compile(pattern)
	if !ok {
		return 0, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	last := len(b.lines)
	for line := min(from-1, last); line >= 1; line-- {
		if b.matches(re, line) {
			return line, true
		}
	}
	if wrap {
		for line := last; line >= max(from, 1); line-- {
			if b.matches(re, line) {
				return line, true
			}
		}
	}
	return 0, false
}

func (b *Buffer) matches(re *regexp2.Regexp, line int) bool {
	ok, err := re.MatchString(b.lines[line-1])
	return err == nil && ok
}

func (b *Buffer) compile(pattern string) (*regexp2.Regexp, bool) {
	b.mu.RLock()
	re, ok := b.patterns[pattern]
	ignoreCase := b.ignoreCase
	b.mu.RUnlock()
	if ok {
		return re, re != nil
	}

	re, err := Compile(pattern, ignoreCase)
	if err != nil {
		re = nil
	}

	b.mu.Lock()
	b.patterns[pattern] = re
	b.mu.Unlock()
	return re, re != nil
}

func splitLines(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
