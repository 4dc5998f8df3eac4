package address

import (
	"strconv"
	"strings"

	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/scan"
	"github.com/yaklabco/excmd/pkg/token"
)

// MarkNames lists every character accepted after a quote in a mark address.
const MarkNames = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ'`<>[]"

// Parser reads addresses and ranges from a scanner.
// When a sink is set, every token recognised is passed to it in scan order.
type Parser struct {
	s    *scan.Scanner
	sink func(token.Token)
}

// NewParser returns a parser over s. sink may be nil.
func NewParser(s *scan.Scanner, sink func(token.Token)) *Parser {
	return &Parser{s: s, sink: sink}
}

// ParseAddress reads one address from s. It returns nil when no address is present.
// A '%' is not an address; use ParseRange for it.
func ParseAddress(s *scan.Scanner) (*Address, error) {
	return NewParser(s, nil).Address()
}

// ParseRange reads an optional range from s.
func ParseRange(s *scan.Scanner) (Range, error) {
	return NewParser(s, nil).Range()
}

// Address reads one address. It returns nil, nil when neither an atom nor an
// offset is present at the current position.
func (p *Parser) Address() (*Address, error) {
	addr, err := p.atom()
	if err != nil {
		return nil, err
	}

	offsets, err := p.offsets()
	if err != nil {
		return nil, err
	}

	if addr == nil {
		if len(offsets) == 0 {
			return nil, nil //nolint:nilnil // absence is not an error
		}
		addr = &Address{Kind: Current}
	}
	addr.Offsets = offsets
	return addr, nil
}

// Range reads an optional range. A leading '%' yields WholeFile and ends the range.
func (p *Parser) Range() (Range, error) {
	p.s.Ignore()
	if p.s.Peek('%') {
		p.s.Consume()
		p.emit(token.Token{Kind: token.Percent})
		return WholeFile(), nil
	}

	start, err := p.Address()
	if err != nil {
		return Range{}, err
	}

	rng := Range{Start: start}

	cp := p.s.Save()
	p.skipBlanks()

	sep, ok := p.s.AcceptAny(",;")
	if !ok {
		p.s.Restore(cp)
		return rng, nil
	}

	if sep == ',' {
		rng.Sep = Comma
		p.emit(token.Token{Kind: token.Comma})
	} else {
		rng.Sep = Semicolon
		p.emit(token.Token{Kind: token.Semicolon})
	}

	p.skipBlanks()

	end, err := p.Address()
	if err != nil {
		return Range{}, err
	}
	rng.End = end
	return rng, nil
}

func (p *Parser) atom() (*Address, error) {
	p.s.Ignore()

	switch next := p.s.Next(); {
	case scan.IsDigit(next):
		digits := p.s.Digits()
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, exerr.InvalidArgument(p.s.Start(), digits)
		}
		p.emit(token.Token{Kind: token.Digits, Value: n})
		return &Address{Kind: Line, Line: n}, nil

	case next == '.':
		p.s.Consume()
		p.emit(token.Token{Kind: token.Dot})
		return &Address{Kind: Current}, nil

	case next == '$':
		p.s.Consume()
		p.emit(token.Token{Kind: token.Dollar})
		return &Address{Kind: Last}, nil

	case next == '\'':
		return p.mark()

	case next == '/' || next == '?':
		return p.search()

	case next == '\\':
		return p.lastPatternSearch()
	}

	return nil, nil //nolint:nilnil // absence is not an error
}

func (p *Parser) mark() (*Address, error) {
	p.s.Consume()
	at := p.s.Pos()
	name, ok := p.s.AcceptAny(MarkNames)
	if !ok {
		got := p.s.Next()
		return nil, exerr.Scan(at, "a mark name", describe(got))
	}
	p.emit(token.Token{Kind: token.Mark, Name: string(name)})
	return &Address{Kind: Mark, Mark: string(name)}, nil
}

func (p *Parser) search() (*Address, error) {
	delim := p.s.Consume()
	pattern, _ := ScanDelimited(p.s, delim)

	if delim == '/' {
		p.emit(token.Token{Kind: token.SearchForward, Pattern: pattern})
		return &Address{Kind: SearchForward, Pattern: pattern}, nil
	}
	p.emit(token.Token{Kind: token.SearchBackward, Pattern: pattern})
	return &Address{Kind: SearchBackward, Pattern: pattern}, nil
}

// lastPatternSearch reads \/, \? and \&, which search with the last pattern.
func (p *Parser) lastPatternSearch() (*Address, error) {
	cp := p.s.Save()
	p.s.Consume()

	switch p.s.Consume() {
	case '/', '&':
		p.emit(token.Token{Kind: token.SearchForward})
		return &Address{Kind: SearchForward}, nil
	case '?':
		p.emit(token.Token{Kind: token.SearchBackward})
		return &Address{Kind: SearchBackward}, nil
	}

	p.s.Restore(cp)
	return nil, nil //nolint:nilnil // not an address
}

func (p *Parser) offsets() ([]int, error) {
	var offsets []int
	for {
		cp := p.s.Save()
		p.skipBlanks()

		sign, ok := p.s.AcceptAny("+-")
		if !ok {
			p.s.Restore(cp)
			return offsets, nil
		}

		n := 1
		if digits := p.s.Digits(); digits != "" {
			var err error
			n, err = strconv.Atoi(digits)
			if err != nil {
				return nil, exerr.InvalidArgument(p.s.Start(), digits)
			}
		}
		if sign == '-' {
			n = -n
		}
		offsets = append(offsets, n)
		p.emit(token.Token{Kind: token.Offset, Value: n})
	}
}

func (p *Parser) skipBlanks() {
	p.s.SkipBlanks()
	p.s.Ignore()
}

func (p *Parser) emit(tok token.Token) {
	tok.Start = p.s.Start()
	tok.End = p.s.Pos()
	p.s.Ignore()
	if p.sink != nil {
		p.sink(tok)
	}
}

// ScanDelimited consumes text up to an unescaped delim or the end of input and
// returns it, reporting whether the closing delimiter was found and consumed.
// A backslash before delim is dropped; every other escape is kept verbatim.
func ScanDelimited(s *scan.Scanner, delim rune) (string, bool) {
	var b strings.Builder
	for {
		r := s.Consume()
		switch r {
		case scan.EOF:
			return b.String(), false
		case delim:
			return b.String(), true
		case '\\':
			next := s.Consume()
			switch next {
			case scan.EOF:
				b.WriteRune('\\')
				return b.String(), false
			case delim:
				b.WriteRune(delim)
			default:
				b.WriteRune('\\')
				b.WriteRune(next)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func describe(r rune) string {
	if r == scan.EOF {
		return "__EOF__"
	}
	return "'" + string(r) + "'"
}
