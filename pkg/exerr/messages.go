package exerr

import "fmt"

// Scan reports a low-level scanning failure at pos.
func Scan(pos int, expected, got string) *Error {
	return &Error{
		Kind:    KindScan,
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got %s instead", expected, got),
	}
}

// UnknownCommand reports that name is not in the command table.
// A non-empty suggestion is appended as a hint.
func UnknownCommand(pos int, name, suggestion string) *Error {
	msg := "Not an editor command: " + name
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &Error{Kind: KindUnknownCommand, Code: "E492", Pos: pos, Message: msg}
}

// TrailingCharacters reports input left over at pos.
func TrailingCharacters(pos int, rest string) *Error {
	msg := "Trailing characters"
	if rest != "" {
		msg += ": " + rest
	}
	return &Error{Kind: KindTrailingCharacters, Code: "E488", Pos: pos, Message: msg}
}

// InvalidRange reports a backwards range.
func InvalidRange() *Error {
	return &Error{Kind: KindInvalidRange, Code: "E14", Pos: -1, Message: "Invalid address"}
}

// InvalidAddress reports a line outside the buffer.
func InvalidAddress() *Error {
	return &Error{Kind: KindInvalidAddress, Code: "E16", Pos: -1, Message: "Invalid range"}
}

// MissingAddress reports that a required address is absent at pos.
func MissingAddress(pos int) *Error {
	return &Error{Kind: KindInvalidAddress, Code: "E14", Pos: pos, Message: "Invalid address"}
}

// MarkNotSet reports a mark without a recorded position.
func MarkNotSet(mark rune) *Error {
	return &Error{Kind: KindMarkNotSet, Code: "E20", Pos: -1, Message: fmt.Sprintf("Mark not set: %c", mark)}
}

// SearchHitBottom reports a forward search that reached the last line.
func SearchHitBottom(pattern string) *Error {
	return &Error{
		Kind:     KindPatternNotFound,
		Boundary: BoundaryBottom,
		Code:     "E385",
		Pos:      -1,
		Message:  "Search hit BOTTOM without match for: " + pattern,
	}
}

// SearchHitTop reports a backward search that reached the first line.
func SearchHitTop(pattern string) *Error {
	return &Error{
		Kind:     KindPatternNotFound,
		Boundary: BoundaryTop,
		Code:     "E384",
		Pos:      -1,
		Message:  "Search hit TOP without match for: " + pattern,
	}
}

// PatternNotFound reports a wrapping search that found nothing.
func PatternNotFound(pattern string) *Error {
	return &Error{
		Kind:     KindPatternNotFound,
		Boundary: BoundaryWrapped,
		Code:     "E486",
		Pos:      -1,
		Message:  "Pattern not found: " + pattern,
	}
}

// NoPreviousPattern reports an empty pattern with no remembered search.
func NoPreviousPattern() *Error {
	return &Error{Kind: KindNoPreviousPattern, Code: "E35", Pos: -1, Message: "No previous regular expression"}
}

// InvalidArgument reports an argument that does not fit the command's grammar.
func InvalidArgument(pos int, arg string) *Error {
	msg := "Invalid argument"
	if arg != "" {
		msg += ": " + arg
	}
	return &Error{Kind: KindInvalidArgument, Code: "E474", Pos: pos, Message: msg}
}

// RecursiveGlobal reports a global command nested inside another.
func RecursiveGlobal(pos int) *Error {
	return &Error{Kind: KindInvalidArgument, Code: "E147", Pos: pos, Message: "Cannot do :global recursive"}
}

// NoBangAllowed reports '!' after a command that does not accept it.
func NoBangAllowed(pos int) *Error {
	return &Error{Kind: KindNoBangAllowed, Code: "E477", Pos: pos, Message: "No ! allowed"}
}

// NoRangeAllowed reports a range before a command that does not take one.
func NoRangeAllowed(pos int) *Error {
	return &Error{Kind: KindNoRangeAllowed, Code: "E481", Pos: pos, Message: "No range allowed"}
}
