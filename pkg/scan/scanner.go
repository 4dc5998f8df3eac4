// Package scan provides the character-level cursor the ex grammars are built on.
//
// A Scanner owns a source string, the offset of the next unread character
// (position) and the offset where the token being built began (start).
// 0 <= start <= position <= len(source) holds after every operation.
// The scanner knows nothing about the grammar.
package scan

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/excmd/pkg/exerr"
)

// EOF is returned by Consume once the source is exhausted.
const EOF rune = -1

// Scanner is a cursor over one command line.
type Scanner struct {
	src   string
	start int
	pos   int

	// base is the offset of src within the line reported to the user, so that
	// errors raised by a sub-scanner point into the original command line.
	base int
}

// Checkpoint is a saved scanner position used for backtracking.
type Checkpoint struct {
	start int
	pos   int
}

// New returns a scanner positioned at the beginning of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// NewAt returns a scanner over src whose reported positions start at base.
func NewAt(src string, base int) *Scanner {
	return &Scanner{src: src, base: base}
}

// Source returns the full source text.
func (s *Scanner) Source() string {
	return s.src
}

// Pos returns the position of the next unread character, relative to the reported line.
func (s *Scanner) Pos() int {
	return s.base + s.pos
}

// Offset returns the position of the next unread character within Source.
func (s *Scanner) Offset() int {
	return s.pos
}

// Start returns the start of the pending token, relative to the reported line.
func (s *Scanner) Start() int {
	return s.base + s.start
}

// Base returns the offset of Source within the reported line.
func (s *Scanner) Base() int {
	return s.base
}

// AtEOF reports whether the whole source has been consumed.
func (s *Scanner) AtEOF() bool {
	return s.pos >= len(s.src)
}

// Rest returns the unread part of the source without consuming it.
func (s *Scanner) Rest() string {
	return s.src[s.pos:]
}

// Pending returns the text scanned since the last Emit or Ignore.
func (s *Scanner) Pending() string {
	return s.src[s.start:s.pos]
}

// Consume returns the next character and advances past it.
// At the end of the source it returns EOF and leaves the position unchanged.
func (s *Scanner) Consume() rune {
	if s.pos >= len(s.src) {
		return EOF
	}
	r, width := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += width
	return r
}

// Advance moves the position forward by n bytes, stopping at the end of the source.
func (s *Scanner) Advance(n int) {
	s.pos = min(s.pos+max(n, 0), len(s.src))
}

// Backup steps back over the last consumed character.
// It never moves before the start of the pending token.
func (s *Scanner) Backup() {
	if s.pos <= s.start {
		return
	}
	_, width := utf8.DecodeLastRuneInString(s.src[s.start:s.pos])
	s.pos -= width
}

// Next returns the next character without consuming it, or EOF.
func (s *Scanner) Next() rune {
	if s.pos >= len(s.src) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

// Skip advances past a maximal run of characters contained in charset.
func (s *Scanner) Skip(charset string) {
	s.SkipFunc(func(r rune) bool {
		return strings.ContainsRune(charset, r)
	})
}

// SkipRun is Skip for multi-class character sets; the contract is identical.
func (s *Scanner) SkipRun(charsets ...string) {
	s.Skip(strings.Join(charsets, ""))
}

// SkipFunc advances past a maximal run of characters satisfying fn.
func (s *Scanner) SkipFunc(fn func(rune) bool) {
	for s.pos < len(s.src) {
		r, width := utf8.DecodeRuneInString(s.src[s.pos:])
		if !fn(r) {
			return
		}
		s.pos += width
	}
}

// Emit returns the pending token text and commits it.
func (s *Scanner) Emit() string {
	text := s.src[s.start:s.pos]
	s.start = s.pos
	return text
}

// Ignore discards the pending token text.
func (s *Scanner) Ignore() {
	s.start = s.pos
}

// Save records the current position for a later Restore.
func (s *Scanner) Save() Checkpoint {
	return Checkpoint{start: s.start, pos: s.pos}
}

// Restore rewinds the scanner to a checkpoint taken with Save.
func (s *Scanner) Restore(cp Checkpoint) {
	s.start = cp.start
	s.pos = cp.pos
}

// Peek reports whether the next character is r, without consuming it.
func (s *Scanner) Peek(r rune) bool {
	return s.Next() == r
}

// PeekAny reports whether the next character is one of charset.
func (s *Scanner) PeekAny(charset string) bool {
	next := s.Next()
	return next != EOF && strings.ContainsRune(charset, next)
}

// PeekString reports whether the unread text starts with lit.
func (s *Scanner) PeekString(lit string) bool {
	return strings.HasPrefix(s.src[s.pos:], lit)
}

// PeekMatch reports whether re matches at the current position.
func (s *Scanner) PeekMatch(re *regexp.Regexp) bool {
	loc := re.FindStringIndex(s.src[s.pos:])
	return loc != nil && loc[0] == 0
}

// Accept consumes the next character if it is r.
func (s *Scanner) Accept(r rune) bool {
	if s.Peek(r) {
		s.Consume()
		return true
	}
	return false
}

// AcceptAny consumes the next character if it is one of charset and returns it.
func (s *Scanner) AcceptAny(charset string) (rune, bool) {
	if !s.PeekAny(charset) {
		return 0, false
	}
	return s.Consume(), true
}

// Match consumes the text matched by re at the current position and returns the
// submatches. On failure nothing is consumed.
func (s *Scanner) Match(re *regexp.Regexp) ([]string, bool) {
	loc := re.FindStringSubmatchIndex(s.src[s.pos:])
	if loc == nil || loc[0] != 0 {
		return nil, false
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = s.src[s.pos+loc[2*i] : s.pos+loc[2*i+1]]
		}
	}
	s.pos += loc[1]
	return groups, true
}

// Expect consumes one character and fails if it is not want.
func (s *Scanner) Expect(want rune) (rune, error) {
	at := s.Pos()
	got := s.Consume()
	if got != want {
		if got != EOF {
			s.Backup()
		}
		return got, exerr.Scan(at, quote(want), quote(got))
	}
	return got, nil
}

// ExpectMatch is Match that fails with a scan error carrying description.
func (s *Scanner) ExpectMatch(re *regexp.Regexp, description string) ([]string, error) {
	groups, ok := s.Match(re)
	if !ok {
		return nil, exerr.Scan(s.Pos(), description, quote(s.Next()))
	}
	return groups, nil
}

// ExpectEOF fails unless the source is exhausted.
func (s *Scanner) ExpectEOF() error {
	if s.AtEOF() {
		return nil
	}
	return exerr.Scan(s.Pos(), quote(EOF), quote(s.Next()))
}

// Digits consumes a maximal run of ASCII digits and returns it.
func (s *Scanner) Digits() string {
	from := s.pos
	s.SkipFunc(IsDigit)
	return s.src[from:s.pos]
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsBlank reports whether r is a space or a tab.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// SkipBlanks skips spaces and tabs.
func (s *Scanner) SkipBlanks() {
	s.SkipFunc(IsBlank)
}

func quote(r rune) string {
	if r == EOF {
		return "__EOF__"
	}
	return fmt.Sprintf("'%c'", r)
}
