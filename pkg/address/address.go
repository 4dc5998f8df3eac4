// Package address implements ex line addresses: their grammar, the range
// combinator and resolution against a buffer context.
package address

import (
	"strconv"
	"strings"
)

// Kind is the atom an Address is built on.
type Kind int

// Address atoms.
const (
	Current Kind = iota + 1
	Last
	Line
	Mark
	SearchForward
	SearchBackward
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	Current:        "current",
	Last:           "last",
	Line:           "line",
	Mark:           "mark",
	SearchForward:  "search-forward",
	SearchBackward: "search-backward",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return &UnknownKindError{Name: string(text)}
}

// UnknownKindError is returned when decoding an unknown address kind.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "unknown address kind: " + e.Name
}

// Address is one line reference: an atom followed by signed offsets that are
// summed onto the atom's line after resolution.
type Address struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Line is the number for Kind Line.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Mark is the single-character mark name for Kind Mark.
	Mark string `json:"mark,omitempty" yaml:"mark,omitempty"`

	// Pattern is the search pattern for the search kinds. Empty reuses the last pattern.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	Offsets []int `json:"offsets,omitempty" yaml:"offsets,omitempty"`
}

// At returns an Address for an absolute line.
func At(n int, offsets ...int) *Address {
	return &Address{Kind: Line, Line: n, Offsets: offsets}
}

// Here returns the current-line address.
func Here(offsets ...int) *Address {
	return &Address{Kind: Current, Offsets: offsets}
}

// End returns the last-line address.
func End(offsets ...int) *Address {
	return &Address{Kind: Last, Offsets: offsets}
}

// String renders the address as ex text.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var b strings.Builder
	switch a.Kind {
	case Current:
		b.WriteByte('.')
	case Last:
		b.WriteByte('$')
	case Line:
		b.WriteString(strconv.Itoa(a.Line))
	case Mark:
		b.WriteByte('\'')
		b.WriteString(a.Mark)
	case SearchForward:
		b.WriteByte('/')
		b.WriteString(escapeDelimiter(a.Pattern, '/'))
		b.WriteByte('/')
	case SearchBackward:
		b.WriteByte('?')
		b.WriteString(escapeDelimiter(a.Pattern, '?'))
		b.WriteByte('?')
	}
	for _, off := range a.Offsets {
		if off >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(off))
	}
	return b.String()
}

// Separator joins the two addresses of a Range.
type Separator int

// Range separators.
const (
	NoSeparator Separator = iota
	Comma
	Semicolon
)

func (s Separator) String() string {
	switch s {
	case Comma:
		return ","
	case Semicolon:
		return ";"
	default:
		return ""
	}
}

// MarshalText encodes the separator as its character, or the empty string.
func (s Separator) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Range is zero, one or two addresses. End is only meaningful when Sep is set.
type Range struct {
	Start *Address  `json:"start,omitempty" yaml:"start,omitempty"`
	End   *Address  `json:"end,omitempty"   yaml:"end,omitempty"`
	Sep   Separator `json:"sep,omitempty"   yaml:"sep,omitempty"`

	// Whole is set when the range was written as '%'.
	Whole bool `json:"whole,omitempty" yaml:"whole,omitempty"`
}

// WholeFile returns the range written as '%': first line through last line.
func WholeFile() Range {
	return Range{Start: At(1), End: End(), Sep: Comma, Whole: true}
}

// IsEmpty reports whether no address was given.
func (r Range) IsEmpty() bool {
	return r.Start == nil && r.End == nil && r.Sep == NoSeparator && !r.Whole
}

// String renders the range as ex text.
func (r Range) String() string {
	if r.Whole {
		return "%"
	}
	var b strings.Builder
	b.WriteString(r.Start.String())
	if r.Sep != NoSeparator {
		b.WriteString(r.Sep.String())
		b.WriteString(r.End.String())
	}
	return b.String()
}

// Resolved is a validated, 1-based inclusive line span. First <= Last always holds.
type Resolved struct {
	First int `json:"first_line" yaml:"first_line"`
	Last  int `json:"last_line"  yaml:"last_line"`
}

// Count returns the number of lines in the span.
func (r Resolved) Count() int {
	return r.Last - r.First + 1
}

func (r Resolved) String() string {
	return strconv.Itoa(r.First) + "," + strconv.Itoa(r.Last)
}

func escapeDelimiter(pattern string, delim byte) string {
	if strings.IndexByte(pattern, delim) < 0 {
		return pattern
	}

	var b strings.Builder
	escaped := false
	for i := range len(pattern) {
		c := pattern[i]
		if c == delim && !escaped {
			b.WriteByte('\\')
		}
		escaped = c == '\\' && !escaped
		b.WriteByte(c)
	}
	return b.String()
}
