package command

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/scan"
	"github.com/yaklabco/excmd/pkg/token"
)

// Parser turns command lines into Descriptors using a Table.
// A Parser holds no per-line state and may be shared between goroutines.
type Parser struct {
	table *Table
}

// NewParser returns a parser backed by table. A nil table means DefaultTable.
func NewParser(table *Table) *Parser {
	if table == nil {
		table = DefaultTable
	}
	return &Parser{table: table}
}

// Table returns the table the parser reads from.
func (p *Parser) Table() *Table {
	return p.table
}

// Parse parses line with the default table.
func Parse(line string) (*Descriptor, error) {
	return NewParser(nil).Parse(line)
}

// Tokenize tokenizes line with the default table.
func Tokenize(line string) ([]token.Token, error) {
	return NewParser(nil).Tokenize(line)
}

// Parse parses one command line. Leading ':' and blanks are ignored. An unescaped
// '|' fails with TrailingCharacters; command chaining must be split by the caller.
func (p *Parser) Parse(line string) (*Descriptor, error) {
	body, base := trimPrompt(line)
	if pos := findBar(body); pos >= 0 {
		return nil, exerr.TrailingCharacters(base+pos, body[pos:])
	}
	return p.parse(body, base, false)
}

// Tokenize parses line and returns its tokens in scan order, ending with an EOF
// token. Each token's End equals the Start of the next one unless blanks lie
// between them.
func (p *Parser) Tokenize(line string) ([]token.Token, error) {
	body, base := trimPrompt(line)
	if pos := findBar(body); pos >= 0 {
		return nil, exerr.TrailingCharacters(base+pos, body[pos:])
	}

	var tokens []token.Token
	sink := func(tok token.Token) { tokens = append(tokens, tok) }

	if _, err := p.parseWith(body, base, false, sink); err != nil {
		return nil, err
	}
	tokens = append(tokens, token.Token{Kind: token.EOF, Start: len(line), End: len(line)})
	return tokens, nil
}

func (p *Parser) parse(body string, base int, nested bool) (*Descriptor, error) {
	return p.parseWith(body, base, nested, nil)
}

func (p *Parser) parseWith(body string, base int, nested bool, sink func(token.Token)) (*Descriptor, error) {
	s := scan.NewAt(body, base)
	s.SkipBlanks()
	s.Ignore()

	rng, err := address.NewParser(s, sink).Range()
	if err != nil {
		return nil, err
	}

	s.SkipBlanks()
	s.Ignore()

	if s.AtEOF() {
		return &Descriptor{Range: rng}, nil
	}

	nameStart := s.Pos()
	spelling, spec, ok := p.table.Match(s.Rest())
	if !ok {
		word := leadingWord(s.Rest())
		return nil, exerr.UnknownCommand(nameStart, word, p.table.Suggest(word))
	}
	s.Advance(len(spelling))

	desc := &Descriptor{Name: spec.Name, Range: rng}

	// A '!' the command does not take is left for its argument scanner.
	strayBang := -1
	if s.Peek('!') {
		if spec.Bang {
			s.Consume()
			desc.Forced = true
		} else {
			strayBang = s.Pos()
		}
	}

	if !rng.IsEmpty() && !spec.Range {
		return nil, exerr.NoRangeAllowed(nameStart)
	}
	if rng.IsEmpty() {
		switch spec.Default {
		case DefaultCurrent:
			desc.Range = address.Range{Start: address.Here()}
			desc.RangeDefaulted = true
		case DefaultWhole:
			desc.Range = address.WholeFile()
			desc.RangeDefaulted = true
		case DefaultNone:
		}
	}

	argBase := s.Pos()
	argText, dropped := unescapeBars(s.Rest())
	args := &Args{
		S:      scan.NewAt(argText, argBase),
		Name:   spec.Name,
		Forced: desc.Forced,
		parser: p,
		nested: nested,
	}

	params, err := spec.Args(args)
	if err != nil {
		return nil, argError(err, argBase, dropped, strayBang)
	}
	desc.Params = params

	if sink != nil {
		sink(token.Token{
			Kind:   token.Command,
			Name:   spec.Name,
			Forced: desc.Forced,
			Params: params,
			Start:  nameStart,
			End:    base + len(body),
		})
	}
	return desc, nil
}

// trimPrompt strips leading ':' characters and blanks, returning the rest and
// its offset in line.
func trimPrompt(line string) (string, int) {
	body := strings.TrimLeft(line, ": \t")
	return body, len(line) - len(body)
}

// unescapeBars replaces each "\|" in text with "|". It also returns the offsets
// in the result at which a backslash was dropped, in ascending order.
func unescapeBars(text string) (string, []int) {
	if !strings.Contains(text, `\|`) {
		return text, nil
	}

	var (
		out     strings.Builder
		dropped []int
	)
	out.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && text[i+1] == '|' {
			dropped = append(dropped, out.Len())
			continue
		}
		out.WriteByte(text[i])
	}
	return out.String(), dropped
}

// argError moves the position of an argument scanner's error from the
// unescaped argument text back onto the command line. A scanner that fails
// on a '!' the command does not take reports NoBangAllowed instead.
func argError(err error, argBase int, dropped []int, strayBang int) error {
	var engineErr *exerr.Error
	if !errors.As(err, &engineErr) || engineErr != err || engineErr.Pos < argBase {
		return err
	}
	if engineErr.Pos == strayBang {
		return exerr.NoBangAllowed(strayBang)
	}
	if len(dropped) == 0 {
		return err
	}
	return engineErr.Shift(sort.SearchInts(dropped, engineErr.Pos-argBase+1))
}

// findBar returns the offset of the first '|' not escaped by a backslash, or -1.
func findBar(text string) int {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '|':
			return i
		}
	}
	return -1
}

func leadingWord(text string) string {
	end := strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsDigit(r) || r == '!' || r == '/'
	})
	if end < 0 {
		return text
	}
	if end == 0 {
		_, width := utf8.DecodeRuneInString(text)
		return text[:width]
	}
	return text[:end]
}
