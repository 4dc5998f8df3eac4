// Package command holds the ex Command Table, the per-command argument grammars
// and the command-line parser that ties them to the address grammar.
package command

import (
	"fmt"
	"strings"
)

// DefaultRange is the range a command uses when none is written.
type DefaultRange int

const (
	// DefaultNone leaves the range empty. Used by commands that take no range.
	DefaultNone DefaultRange = iota

	// DefaultCurrent uses the current line.
	DefaultCurrent

	// DefaultWhole uses the whole buffer, as if '%' had been written.
	DefaultWhole
)

func (d DefaultRange) String() string {
	switch d {
	case DefaultCurrent:
		return "current"
	case DefaultWhole:
		return "whole"
	default:
		return "none"
	}
}

// MarshalText encodes the default range by name.
func (d DefaultRange) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ArgScanner parses the text following a command name into typed parameters.
// It must consume its input to the end or fail with TrailingCharacters.
type ArgScanner func(args *Args) (Params, error)

// Spec describes one ex command.
type Spec struct {
	// Name is the canonical full name (e.g. "delete").
	Name string

	// Abbrev is the shortest accepted spelling. Every prefix of Name at least as
	// long as Abbrev is registered.
	Abbrev string

	// Bang reports whether the command accepts a trailing '!'.
	Bang bool

	// Range reports whether the command accepts a line range.
	Range bool

	// Default is the range used when none is written.
	Default DefaultRange

	// Args parses the command's arguments.
	Args ArgScanner

	// Description is a one-line summary for listings.
	Description string
}

// Spellings returns every accepted spelling, longest first.
func (s *Spec) Spellings() []string {
	abbrev := s.Abbrev
	if abbrev == "" {
		abbrev = s.Name
	}

	spellings := make([]string, 0, len(s.Name)-len(abbrev)+1)
	for n := len(s.Name); n >= len(abbrev); n-- {
		spellings = append(spellings, s.Name[:n])
	}
	return spellings
}

// Usage renders the name with its optional part in brackets, as in ":d[elete]".
func (s *Spec) Usage() string {
	if s.Abbrev == "" || s.Abbrev == s.Name {
		return s.Name
	}
	return s.Abbrev + "[" + strings.TrimPrefix(s.Name, s.Abbrev) + "]"
}

func (s *Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("command spec has no name")
	}
	if s.Abbrev != "" && !strings.HasPrefix(s.Name, s.Abbrev) {
		return fmt.Errorf("command %q: abbreviation %q is not a prefix of the name", s.Name, s.Abbrev)
	}
	if s.Args == nil {
		return fmt.Errorf("command %q has no argument scanner", s.Name)
	}
	if !s.Range && s.Default != DefaultNone {
		return fmt.Errorf("command %q takes no range but declares a default one", s.Name)
	}
	return nil
}
