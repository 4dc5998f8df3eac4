package command

import (
	"strconv"
	"strings"

	"github.com/yaklabco/excmd/pkg/address"
)

// Params is the typed argument value of a parsed command.
type Params interface {
	// Args renders the arguments as ex text, without the separating blank.
	Args() string
}

// attached is implemented by params whose text follows the command name
// without a separating blank.
type attached interface {
	attached() bool
}

// NoParams is used by commands that take no arguments.
type NoParams struct{}

// Args implements Params.
func (NoParams) Args() string { return "" }

// RegisterCountParams is used by delete, yank and put.
type RegisterCountParams struct {
	Register string `json:"register,omitempty" yaml:"register,omitempty"`
	Count    int    `json:"count,omitempty"    yaml:"count,omitempty"`
}

// Args implements Params.
func (p RegisterCountParams) Args() string {
	return joinArgs(p.Register, countText(p.Count))
}

// CountFlagsParams is used by print, list, number and join.
type CountFlagsParams struct {
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
	Flags string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Args implements Params.
func (p CountFlagsParams) Args() string {
	return joinArgs(countText(p.Count), p.Flags)
}

// ShiftParams is used by the < and > commands. Amount counts the repeated
// command characters, so ">>>" shifts three times.
type ShiftParams struct {
	Direction string `json:"direction"       yaml:"direction"`
	Amount    int    `json:"amount"          yaml:"amount"`
	Count     int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Args implements Params.
func (p ShiftParams) Args() string {
	extra := strings.Repeat(p.Direction, max(p.Amount-1, 0))
	if p.Count > 0 {
		return extra + " " + strconv.Itoa(p.Count)
	}
	return extra
}

func (ShiftParams) attached() bool { return true }

// DestinationParams is used by copy and move.
type DestinationParams struct {
	Destination *address.Address `json:"destination" yaml:"destination"`
}

// Args implements Params.
func (p DestinationParams) Args() string {
	return p.Destination.String()
}

// SubstituteParams is used by substitute.
type SubstituteParams struct {
	Pattern     string `json:"pattern"               yaml:"pattern"`
	Replacement string `json:"replacement"           yaml:"replacement"`
	Delimiter   string `json:"delimiter,omitempty"   yaml:"delimiter,omitempty"`
	Flags       string `json:"flags,omitempty"       yaml:"flags,omitempty"`

	// Count is the number of lines to operate on, starting at the last line of the
	// range. It is 1 unless written.
	Count int `json:"count" yaml:"count"`

	// CountGiven reports whether Count was written.
	CountGiven bool `json:"count_given,omitempty" yaml:"count_given,omitempty"`

	// Repeat is set for a bare ":s", which repeats the last substitute.
	Repeat bool `json:"repeat,omitempty" yaml:"repeat,omitempty"`
}

// Args implements Params.
func (p SubstituteParams) Args() string {
	var b strings.Builder
	if !p.Repeat {
		delim := p.Delimiter
		if delim == "" {
			delim = "/"
		}
		b.WriteString(delim)
		b.WriteString(escape(p.Pattern, delim))
		b.WriteString(delim)
		b.WriteString(escape(p.Replacement, delim))
		b.WriteString(delim)
	}
	b.WriteString(p.Flags)
	if p.CountGiven {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(p.Count))
	}
	if p.Repeat && b.Len() > 0 {
		// Flags written straight after the name would read as a delimiter.
		return " " + b.String()
	}
	return b.String()
}

func (SubstituteParams) attached() bool { return true }

// GlobalParams is used by global and vglobal.
type GlobalParams struct {
	Pattern   string `json:"pattern"             yaml:"pattern"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`

	// Invert selects the lines that do not match, as written with vglobal or global!.
	Invert bool `json:"invert,omitempty" yaml:"invert,omitempty"`

	// SubCommandLine is the command run on every selected line, as written.
	SubCommandLine string `json:"sub_command_line" yaml:"sub_command_line"`

	// Sub is SubCommandLine parsed; its range is resolved per selected line.
	Sub *Descriptor `json:"sub" yaml:"sub"`
}

// Args implements Params.
func (p GlobalParams) Args() string {
	delim := p.Delimiter
	if delim == "" {
		delim = "/"
	}
	return delim + escape(p.Pattern, delim) + delim + p.SubCommandLine
}

func (GlobalParams) attached() bool { return true }

// MarkParams is used by mark and k.
type MarkParams struct {
	Mark string `json:"mark" yaml:"mark"`
}

// Args implements Params.
func (p MarkParams) Args() string {
	return p.Mark
}

// TextParams carries a free-form argument such as a file name or keys.
type TextParams struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Args implements Params.
func (p TextParams) Args() string {
	return p.Text
}

// MapParams is used by the map family.
type MapParams struct {
	LHS string `json:"lhs,omitempty" yaml:"lhs,omitempty"`
	RHS string `json:"rhs,omitempty" yaml:"rhs,omitempty"`
}

// Args implements Params.
func (p MapParams) Args() string {
	return joinArgs(p.LHS, p.RHS)
}

// SortParams is used by sort.
type SortParams struct {
	Flags     string `json:"flags,omitempty"     yaml:"flags,omitempty"`
	Pattern   string `json:"pattern,omitempty"   yaml:"pattern,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// Args implements Params.
func (p SortParams) Args() string {
	if p.Delimiter == "" {
		return p.Flags
	}
	return joinArgs(p.Flags, p.Delimiter+escape(p.Pattern, p.Delimiter)+p.Delimiter)
}

func joinArgs(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func countText(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func escape(text, delim string) string {
	if delim == "" || !strings.Contains(text, delim) {
		return text
	}

	var b strings.Builder
	escaped := false
	for _, r := range text {
		if string(r) == delim && !escaped {
			b.WriteByte('\\')
		}
		escaped = r == '\\' && !escaped
		b.WriteRune(r)
	}
	return b.String()
}
