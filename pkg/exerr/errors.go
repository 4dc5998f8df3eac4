// Package exerr defines the single error type surfaced by the ex command-line engine.
//
// Every failure carries a Kind, the byte offset in the command line where it was
// detected, and a message following Vim's error-code convention
// (e.g. "E488: Trailing characters").
package exerr

import (
	"fmt"
	"strings"
)

// Kind classifies an engine failure.
type Kind int

const (
	// KindScan is a low-level scanning failure: an unexpected character or a failed
	// anchored match. It indicates a grammar mismatch and is never retried.
	KindScan Kind = iota + 1

	// KindUnknownCommand means no Command Table entry matched.
	KindUnknownCommand

	// KindTrailingCharacters means input remained after a command's argument grammar
	// was satisfied, including an unescaped '|'.
	KindTrailingCharacters

	// KindInvalidRange means the resolved start line is after the end line.
	KindInvalidRange

	// KindInvalidAddress means a resolved line is outside [0, last line] or an
	// address is missing where one is required.
	KindInvalidAddress

	// KindMarkNotSet means a referenced mark has no recorded position.
	KindMarkNotSet

	// KindPatternNotFound means a search address found no match.
	KindPatternNotFound

	// KindNoPreviousPattern means an empty search pattern was used with no last pattern.
	KindNoPreviousPattern

	// KindInvalidArgument means a command's arguments did not fit its grammar.
	KindInvalidArgument

	// KindNoBangAllowed means '!' followed a command that does not accept it.
	KindNoBangAllowed

	// KindNoRangeAllowed means a range preceded a command that does not take one.
	KindNoRangeAllowed
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	KindScan:               "scan-error",
	KindUnknownCommand:     "unknown-command",
	KindTrailingCharacters: "trailing-characters",
	KindInvalidRange:       "invalid-range",
	KindInvalidAddress:     "invalid-address",
	KindMarkNotSet:         "mark-not-set",
	KindPatternNotFound:    "pattern-not-found",
	KindNoPreviousPattern:  "no-previous-pattern",
	KindInvalidArgument:    "invalid-argument",
	KindNoBangAllowed:      "no-bang-allowed",
	KindNoRangeAllowed:     "no-range-allowed",
}

// String returns the kebab-case name of the kind, as used in configuration files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindDescriptions = map[Kind]string{
	KindScan:               "A character did not fit the grammar at its position",
	KindUnknownCommand:     "No command matches the name written",
	KindTrailingCharacters: "Text remains after the command's arguments, including an unescaped bar",
	KindInvalidRange:       "The start of the range is after its end",
	KindInvalidAddress:     "A line number is outside the buffer or an address is missing",
	KindMarkNotSet:         "A referenced mark has no position",
	KindPatternNotFound:    "A search address found no matching line",
	KindNoPreviousPattern:  "An empty pattern was used before any search",
	KindInvalidArgument:    "The command's arguments do not fit its grammar",
	KindNoBangAllowed:      "The command does not accept !",
	KindNoRangeAllowed:     "The command does not accept a range",
}

// Description returns a one-line explanation of the kind.
func (k Kind) Description() string {
	return kindDescriptions[k]
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindScan; k <= KindNoRangeAllowed; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind looks a kind up by its kebab-case name.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Boundary refines KindPatternNotFound so the right "hit TOP/BOTTOM" message is produced.
type Boundary int

const (
	// BoundaryNone is used by every kind other than KindPatternNotFound.
	BoundaryNone Boundary = iota

	// BoundaryBottom means a forward search without wraparound reached the last line.
	BoundaryBottom

	// BoundaryTop means a backward search without wraparound reached the first line.
	BoundaryTop

	// BoundaryWrapped means a wrapping search came back to its start without a match.
	BoundaryWrapped
)

// Error is the engine's error value.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Boundary is set for KindPatternNotFound only.
	Boundary Boundary

	// Code is the Vim error code (e.g. "E488"); empty for scan errors.
	Code string

	// Pos is the byte offset in the command line where the failure was detected,
	// or -1 when the failure is not tied to a position (e.g. resolution failures).
	Pos int

	// Message is the human-readable text without the code prefix.
	Message string
}

// Error implements the error interface. The result is meant to be displayed verbatim.
func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Is reports whether target is a sentinel of the same kind. A sentinel with a
// Boundary only matches errors with that boundary.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Boundary == BoundaryNone || t.Boundary == e.Boundary
}

// WithPos returns a copy of the error positioned at pos.
func (e *Error) WithPos(pos int) *Error {
	clone := *e
	clone.Pos = pos
	return &clone
}

// Shift returns a copy of the error with its position moved by delta. Errors without
// a position are returned unchanged.
func (e *Error) Shift(delta int) *Error {
	if e.Pos < 0 {
		return e
	}
	return e.WithPos(e.Pos + delta)
}

// Sentinels for errors.Is matching.
//
//nolint:gochecknoglobals // Sentinel errors are package-level by convention.
var (
	ErrScan               = &Error{Kind: KindScan}
	ErrUnknownCommand     = &Error{Kind: KindUnknownCommand}
	ErrTrailingCharacters = &Error{Kind: KindTrailingCharacters}
	ErrInvalidRange       = &Error{Kind: KindInvalidRange}
	ErrInvalidAddress     = &Error{Kind: KindInvalidAddress}
	ErrMarkNotSet         = &Error{Kind: KindMarkNotSet}
	ErrPatternNotFound    = &Error{Kind: KindPatternNotFound}
	ErrSearchHitBottom    = &Error{Kind: KindPatternNotFound, Boundary: BoundaryBottom}
	ErrSearchHitTop       = &Error{Kind: KindPatternNotFound, Boundary: BoundaryTop}
	ErrNoPreviousPattern  = &Error{Kind: KindNoPreviousPattern}
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrNoBangAllowed      = &Error{Kind: KindNoBangAllowed}
	ErrNoRangeAllowed     = &Error{Kind: KindNoRangeAllowed}
)
