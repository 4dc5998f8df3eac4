package command

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/scan"
)

// Character sets used by the argument grammars.
const (
	substituteFlags = "&cegiInp#lr"
	printFlags      = "l#p"
	sortFlags       = "bfinorux"
	markArgNames    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ'`<>[]"
	writeRegisters  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ\"*+_-"
	readRegisters   = writeRegisters + "0123456789.:%#/="
)

// Args is the state handed to an ArgScanner.
type Args struct {
	// S scans the text after the command name and bang, with "\|" already
	// unescaped. Its positions match the command line up to the first escaped
	// bar; the parser moves the positions of returned errors past each one.
	S *scan.Scanner

	// Name is the canonical name of the command being parsed.
	Name string

	// Forced reports whether the command takes '!' and one followed the name.
	Forced bool

	parser *Parser
	nested bool
}

// End fails with TrailingCharacters unless only blanks remain.
func (a *Args) End() error {
	a.S.SkipBlanks()
	if a.S.AtEOF() {
		return nil
	}
	return exerr.TrailingCharacters(a.S.Pos(), a.S.Rest())
}

// Count reads an optional positive count after blanks. It returns 0 when absent.
func (a *Args) Count() (int, error) {
	a.S.SkipBlanks()
	at := a.S.Pos()
	digits := a.S.Digits()
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return 0, exerr.InvalidArgument(at, digits)
	}
	return n, nil
}

// Flags reads a run of characters drawn from charset after blanks.
func (a *Args) Flags(charset string) string {
	a.S.SkipBlanks()
	from := a.S.Offset()
	a.S.Skip(charset)
	return a.S.Source()[from:a.S.Offset()]
}

// Delimiter reads a pattern delimiter: any character that is not a letter,
// digit, blank, '"', '|' or '\'.
func (a *Args) Delimiter() (rune, bool) {
	next := a.S.Next()
	if !isDelimiter(next) {
		return 0, false
	}
	return a.S.Consume(), true
}

func isDelimiter(r rune) bool {
	if r == scan.EOF || scan.IsBlank(r) {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return !strings.ContainsRune("\"|\\", r)
}

func scanNone(args *Args) (Params, error) {
	if err := args.End(); err != nil {
		return nil, err
	}
	return NoParams{}, nil
}

func scanRegisterCount(args *Args) (Params, error) {
	var params RegisterCountParams

	args.S.SkipBlanks()
	if r, ok := args.S.AcceptAny(writeRegisters); ok {
		params.Register = string(r)
	}

	count, err := args.Count()
	if err != nil {
		return nil, err
	}
	params.Count = count

	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}

func scanRegister(args *Args) (Params, error) {
	var params RegisterCountParams

	args.S.SkipBlanks()
	if r, ok := args.S.AcceptAny(readRegisters); ok {
		params.Register = string(r)
	}

	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}

func scanCountFlags(args *Args) (Params, error) {
	count, err := args.Count()
	if err != nil {
		return nil, err
	}

	params := CountFlagsParams{Count: count, Flags: args.Flags(printFlags)}
	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}

func scanShift(args *Args) (Params, error) {
	direction := args.Name
	params := ShiftParams{Direction: direction, Amount: 1}
	for args.S.PeekString(direction) {
		args.S.Advance(len(direction))
		params.Amount++
	}

	count, err := args.Count()
	if err != nil {
		return nil, err
	}
	params.Count = count

	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}

func scanDestination(args *Args) (Params, error) {
	args.S.SkipBlanks()
	args.S.Ignore()

	at := args.S.Pos()
	dest, err := address.ParseAddress(args.S)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, exerr.MissingAddress(at)
	}

	if err := args.End(); err != nil {
		return nil, err
	}
	return DestinationParams{Destination: dest}, nil
}

func scanSubstitute(args *Args) (Params, error) {
	params := SubstituteParams{Count: 1}

	delim, ok := args.Delimiter()
	if ok {
		params.Delimiter = string(delim)

		pattern, closed := address.ScanDelimited(args.S, delim)
		params.Pattern = pattern
		if closed {
			params.Replacement, closed = address.ScanDelimited(args.S, delim)
		}
		if !closed {
			return params, nil
		}
	} else {
		params.Repeat = true
	}

	// '&' keeps the previous flags and is only valid first.
	args.S.SkipBlanks()
	if args.S.Accept('&') {
		params.Flags = "&"
	}
	params.Flags += args.Flags(strings.TrimPrefix(substituteFlags, "&"))

	count, err := args.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		params.Count = count
		params.CountGiven = true
	}

	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}

func scanGlobal(args *Args) (Params, error) {
	at := args.S.Pos()
	if args.nested {
		return nil, exerr.RecursiveGlobal(at)
	}

	params := GlobalParams{Invert: args.Forced || args.Name == "vglobal"}

	args.S.SkipBlanks()
	delim, ok := args.Delimiter()
	if !ok {
		return nil, exerr.InvalidArgument(args.S.Pos(), args.S.Rest())
	}
	params.Delimiter = string(delim)
	params.Pattern, _ = address.ScanDelimited(args.S, delim)

	subBase := args.S.Pos()
	params.SubCommandLine = args.S.Rest()
	args.S.Advance(len(params.SubCommandLine))

	body, skip := trimPrompt(params.SubCommandLine)
	if strings.TrimSpace(body) == "" {
		body = "p"
	}

	desc, err := args.parser.parse(body, subBase+skip, true)
	if err != nil {
		return nil, err
	}
	params.Sub = desc
	return params, nil
}

func scanMark(args *Args) (Params, error) {
	args.S.SkipBlanks()
	at := args.S.Pos()
	r, ok := args.S.AcceptAny(markArgNames)
	if !ok {
		return nil, exerr.InvalidArgument(at, args.S.Rest())
	}

	if err := args.End(); err != nil {
		return nil, err
	}
	return MarkParams{Mark: string(r)}, nil
}

func scanText(args *Args) (Params, error) {
	args.S.SkipBlanks()
	text := strings.TrimRightFunc(args.S.Rest(), unicode.IsSpace)
	args.S.Advance(len(args.S.Rest()))
	return TextParams{Text: text}, nil
}

func scanMap(args *Args) (Params, error) {
	args.S.SkipBlanks()
	from := args.S.Offset()
	args.S.SkipFunc(func(r rune) bool { return !scan.IsBlank(r) })
	lhs := args.S.Source()[from:args.S.Offset()]

	args.S.SkipBlanks()
	rhs := args.S.Rest()
	args.S.Advance(len(rhs))

	return MapParams{LHS: lhs, RHS: rhs}, nil
}

func scanUnmap(args *Args) (Params, error) {
	args.S.SkipBlanks()
	at := args.S.Pos()
	lhs := strings.TrimRightFunc(args.S.Rest(), unicode.IsSpace)
	if lhs == "" {
		return nil, exerr.InvalidArgument(at, "")
	}
	args.S.Advance(len(args.S.Rest()))
	return MapParams{LHS: lhs}, nil
}

func scanSort(args *Args) (Params, error) {
	var params SortParams
	for {
		params.Flags += args.Flags(sortFlags)

		args.S.SkipBlanks()
		if params.Delimiter != "" {
			break
		}
		delim, ok := args.Delimiter()
		if !ok {
			break
		}
		params.Delimiter = string(delim)
		params.Pattern, _ = address.ScanDelimited(args.S, delim)
	}

	if err := args.End(); err != nil {
		return nil, err
	}
	return params, nil
}
