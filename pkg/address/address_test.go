package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/scan"
	"github.com/yaklabco/excmd/pkg/token"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want *Address
		rest string
	}{
		{name: "absent", src: "delete", want: nil, rest: "delete"},
		{name: "line", src: "42d", want: At(42), rest: "d"},
		{name: "zero", src: "0", want: At(0)},
		{name: "current", src: ".", want: Here()},
		{name: "last", src: "$", want: End()},
		{name: "mark", src: "'a,", want: &Address{Kind: Mark, Mark: "a"}, rest: ","},
		{name: "visual mark", src: "'<", want: &Address{Kind: Mark, Mark: "<"}},
		{name: "forward", src: "/abc/d", want: &Address{Kind: SearchForward, Pattern: "abc"}, rest: "d"},
		{name: "forward unterminated", src: "/abc", want: &Address{Kind: SearchForward, Pattern: "abc"}},
		{name: "forward escaped delimiter", src: `/a\/b/`, want: &Address{Kind: SearchForward, Pattern: "a/b"}},
		{name: "forward keeps other escapes", src: `/\<x\>/`, want: &Address{Kind: SearchForward, Pattern: `\<x\>`}},
		{name: "forward empty", src: "//", want: &Address{Kind: SearchForward}},
		{name: "backward", src: "?x?", want: &Address{Kind: SearchBackward, Pattern: "x"}},
		{name: "last pattern forward", src: `\/`, want: &Address{Kind: SearchForward}},
		{name: "last pattern backward", src: `\?`, want: &Address{Kind: SearchBackward}},
		{name: "last substitute pattern", src: `\&`, want: &Address{Kind: SearchForward}},
		{name: "offset only", src: "+3", want: Here(3)},
		{name: "bare plus", src: "+", want: Here(1)},
		{name: "bare minus", src: "--", want: Here(-1, -1)},
		{name: "offset chain", src: "$-2+1 +4", want: End(-2, 1, 4)},
		{name: "blank before offset", src: ". +2 d", want: Here(2), rest: " d"},
		{name: "no offset keeps blanks", src: "5 d", want: At(5), rest: " d"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := scan.New(testCase.src)
			got, err := ParseAddress(s)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.rest, s.Rest())
		})
	}
}

func TestParseAddress_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseAddress(scan.New("'1"))
	require.ErrorIs(t, err, exerr.ErrScan)
	assert.Equal(t, "expected a mark name, got '1' instead", err.Error())

	_, err = ParseAddress(scan.New("'"))
	require.ErrorIs(t, err, exerr.ErrScan)

	_, err = ParseAddress(scan.New("99999999999999999999999"))
	require.ErrorIs(t, err, exerr.ErrInvalidArgument)
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Range
		rest string
	}{
		{name: "empty", src: "d", want: Range{}, rest: "d"},
		{name: "single", src: "3d", want: Range{Start: At(3)}, rest: "d"},
		{name: "comma", src: "2,4delete", want: Range{Start: At(2), End: At(4), Sep: Comma}, rest: "delete"},
		{name: "semicolon", src: "/a/;+2", want: Range{
			Start: &Address{Kind: SearchForward, Pattern: "a"},
			End:   Here(2),
			Sep:   Semicolon,
		}},
		{name: "blanks around separator", src: "1 , $ d", want: Range{Start: At(1), End: End(), Sep: Comma}, rest: " d"},
		{name: "missing end", src: "3,d", want: Range{Start: At(3), Sep: Comma}, rest: "d"},
		{name: "missing start", src: ",5", want: Range{End: At(5), Sep: Comma}},
		{name: "whole file", src: "%s/a/b/", want: WholeFile(), rest: "s/a/b/"},
		{name: "whole file stops the range", src: "%,3", want: WholeFile(), rest: ",3"},
		{name: "current plus", src: ".,+3d", want: Range{Start: Here(), End: Here(3), Sep: Comma}, rest: "d"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := scan.New(testCase.src)
			got, err := ParseRange(s)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.rest, s.Rest())
		})
	}
}

func TestParser_Tokens(t *testing.T) {
	t.Parallel()

	var got []token.Token
	p := NewParser(scan.New("'a;/x/+2"), func(tok token.Token) { got = append(got, tok) })

	_, err := p.Range()
	require.NoError(t, err)

	want := []token.Token{
		{Kind: token.Mark, Name: "a", Start: 0, End: 2},
		{Kind: token.Semicolon, Start: 2, End: 3},
		{Kind: token.SearchForward, Pattern: "x", Start: 3, End: 6},
		{Kind: token.Offset, Value: 2, Start: 6, End: 8},
	}
	assert.Equal(t, want, got)
}

func TestAddress_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"2,4", "2,4"},
		{"%", "%"},
		{"+3", ".+3"},
		{"'a;/x\\/y/-1", "'a;/x\\/y/-1"},
		{"?p?,$", "?p?,$"},
		{"3,", "3,"},
	}

	for _, testCase := range tests {
		t.Run(testCase.src, func(t *testing.T) {
			t.Parallel()

			rng, err := ParseRange(scan.New(testCase.src))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, rng.String())
		})
	}
}

func TestKind_Text(t *testing.T) {
	t.Parallel()

	text, err := SearchBackward.MarshalText()
	require.NoError(t, err)

	var kind Kind
	require.NoError(t, kind.UnmarshalText(text))
	assert.Equal(t, SearchBackward, kind)

	var unknown *UnknownKindError
	require.ErrorAs(t, kind.UnmarshalText([]byte("nope")), &unknown)
}
