package buffer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern match against one line.
const matchTimeout = 250 * time.Millisecond

// Compile translates a Vim "magic" pattern into a regexp2 expression and compiles it.
//
// Supported: \( \) \| \+ \= \? \{n,m} grouping and repetition, \< \> word
// boundaries, \c and \C case switches, \s \S \d \D \w \W classes, and \v for
// "very magic" patterns, which are passed through unchanged.
func Compile(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	expr, fold := translate(pattern, ignoreCase)

	opts := regexp2.None
	if fold {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

func translate(pattern string, ignoreCase bool) (string, bool) {
	var b strings.Builder
	fold := ignoreCase
	veryMagic := false
	inBrace := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if c != '\\' {
			switch {
			case c == '}' && inBrace:
				inBrace = false
			case !veryMagic && strings.IndexByte("()|+?{}", c) >= 0:
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(pattern) {
			b.WriteString(`\\`)
			break
		}
		i++
		next := pattern[i]

		switch next {
		case 'c':
			fold = true
		case 'C':
			fold = false
		case 'v':
			veryMagic = true
		case '<', '>':
			b.WriteString(`\b`)
		case '{':
			inBrace = !veryMagic
			if veryMagic {
				b.WriteByte('\\')
			}
			b.WriteByte(next)
		case '(', ')', '|', '+', '?', '}':
			if next == '}' {
				inBrace = false
			}
			if veryMagic {
				b.WriteByte('\\')
			}
			b.WriteByte(next)
		case '=':
			b.WriteByte('?')
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
	}
	return b.String(), fold
}
