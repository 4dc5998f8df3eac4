package address

import (
	"unicode/utf8"

	"github.com/yaklabco/excmd/pkg/exerr"
)

// Context is the read-only view of the editor a Resolver needs.
// Line numbers are 1-based; LastLine is 0 for an empty buffer.
type Context interface {
	CurrentLine() int
	LastLine() int

	// LookupMark returns the line a mark points at.
	LookupMark(name rune) (int, bool)

	// SearchForward returns the first line after from that matches pattern. With wrap
	// set the search continues from line 1 up to and including from.
	SearchForward(pattern string, from int, wrap bool) (int, bool)

	// SearchBackward returns the first line before from, scanning upwards, that
	// matches pattern. With wrap set the search continues from the last line down to
	// and including from.
	SearchBackward(pattern string, from int, wrap bool) (int, bool)
}

// PatternSource is implemented by contexts that remember the last search pattern.
// It is consulted when Options.LastPattern is empty.
type PatternSource interface {
	LastPattern() string
}

// Options tune resolution.
type Options struct {
	// WrapScan lets searches continue past the buffer ends.
	WrapScan bool

	// LastPattern is used by searches written with an empty pattern.
	LastPattern string
}

// DefaultOptions returns the options matching Vim's defaults.
func DefaultOptions() Options {
	return Options{WrapScan: true}
}

// Resolver turns parsed ranges into concrete line numbers.
type Resolver struct {
	ctx         Context
	wrap        bool
	lastPattern string
}

// NewResolver returns a Resolver reading from ctx.
func NewResolver(ctx Context, opts Options) *Resolver {
	last := opts.LastPattern
	if source, ok := ctx.(PatternSource); ok && last == "" {
		last = source.LastPattern()
	}
	return &Resolver{ctx: ctx, wrap: opts.WrapScan, lastPattern: last}
}

// ResolveRange resolves rng against ctx.
func ResolveRange(rng Range, ctx Context, opts Options) (Resolved, error) {
	return NewResolver(ctx, opts).Range(rng)
}

// LastPattern returns the most recent search pattern, including patterns used
// by addresses resolved through this Resolver.
func (r *Resolver) LastPattern() string {
	return r.lastPattern
}

// Range resolves rng. An empty range resolves to the current line. A backwards
// range fails with InvalidRange and a line outside [0, last line] with
// InvalidAddress.
func (r *Resolver) Range(rng Range) (Resolved, error) {
	last := r.ctx.LastLine()
	if rng.Whole && last == 0 {
		return Resolved{}, nil
	}

	anchor := r.ctx.CurrentLine()

	start := rng.Start
	if start == nil {
		start = &Address{Kind: Current}
	}

	first, err := r.Address(start, anchor)
	if err != nil {
		return Resolved{}, err
	}

	end := first
	if rng.Sep != NoSeparator {
		if rng.Sep == Semicolon {
			anchor = first
		}

		if rng.End == nil {
			end = anchor
		} else {
			end, err = r.Address(rng.End, anchor)
			if err != nil {
				return Resolved{}, err
			}
		}
	}

	if first > end {
		return Resolved{}, exerr.InvalidRange()
	}
	if first < 0 || end > last {
		return Resolved{}, exerr.InvalidAddress()
	}

	return Resolved{First: first, Last: end}, nil
}

// Address resolves a single address relative to anchor. The result is not
// bounds-checked.
func (r *Resolver) Address(addr *Address, anchor int) (int, error) {
	var line int

	switch addr.Kind {
	case Current:
		line = anchor
	case Last:
		line = r.ctx.LastLine()
	case Line:
		line = addr.Line
	case Mark:
		name, _ := utf8.DecodeRuneInString(addr.Mark)
		found, ok := r.ctx.LookupMark(name)
		if !ok {
			return 0, exerr.MarkNotSet(name)
		}
		line = found
	case SearchForward, SearchBackward:
		found, err := r.search(addr, anchor)
		if err != nil {
			return 0, err
		}
		line = found
	default:
		return 0, exerr.MissingAddress(-1)
	}

	for _, off := range addr.Offsets {
		line += off
	}
	return line, nil
}

func (r *Resolver) search(addr *Address, from int) (int, error) {
	pattern := addr.Pattern
	if pattern == "" {
		if r.lastPattern == "" {
			return 0, exerr.NoPreviousPattern()
		}
		pattern = r.lastPattern
	}
	r.lastPattern = pattern

	var (
		line int
		ok   bool
	)
	if addr.Kind == SearchForward {
		line, ok = r.ctx.SearchForward(pattern, from, r.wrap)
	} else {
		line, ok = r.ctx.SearchBackward(pattern, from, r.wrap)
	}
	if ok {
		return line, nil
	}

	switch {
	case r.wrap:
		return 0, exerr.PatternNotFound(pattern)
	case addr.Kind == SearchForward:
		return 0, exerr.SearchHitBottom(pattern)
	default:
		return 0, exerr.SearchHitTop(pattern)
	}
}
