// Package token defines the lexical units produced while scanning an ex command line.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant of a Token.
type Kind int

// Token kinds.
const (
	EOF Kind = iota
	Digits
	Dot
	Dollar
	Percent
	Mark
	SearchForward
	SearchBackward
	Offset
	Comma
	Semicolon
	Command
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	EOF:            "eof",
	Digits:         "digits",
	Dot:            "dot",
	Dollar:         "dollar",
	Percent:        "percent",
	Mark:           "mark",
	SearchForward:  "search-forward",
	SearchBackward: "search-backward",
	Offset:         "offset",
	Comma:          "comma",
	Semicolon:      "semicolon",
	Command:        "command",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is one immutable lexical unit. Only the fields relevant to Kind are set,
// so two tokens compare equal exactly when every field matches.
type Token struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Start and End are byte offsets of the consumed text in the command line.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`

	// Value holds the number for Digits and the signed amount for Offset.
	Value int `json:"value,omitempty" yaml:"value,omitempty"`

	// Name holds the mark name for Mark and the canonical name for Command.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Pattern holds the search pattern; empty means reuse the last pattern.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Forced is set on a Command token written with '!'.
	Forced bool `json:"forced,omitempty" yaml:"forced,omitempty"`

	// Params holds the command's typed parameters.
	Params any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Len returns the number of bytes the token covers.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	switch t.Kind {
	case Digits:
		return strconv.Itoa(t.Value)
	case Dot:
		return "."
	case Dollar:
		return "$"
	case Percent:
		return "%"
	case Mark:
		return "'" + t.Name
	case SearchForward:
		return "/" + t.Pattern + "/"
	case SearchBackward:
		return "?" + t.Pattern + "?"
	case Offset:
		return fmt.Sprintf("%+d", t.Value)
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Command:
		if t.Forced {
			return t.Name + "!"
		}
		return t.Name
	case EOF:
		return "EOF"
	default:
		return t.Kind.String()
	}
}
