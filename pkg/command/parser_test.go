package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/exerr"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want *Descriptor
	}{
		{
			name: "range and full name",
			line: "2,4delete",
			want: &Descriptor{
				Name:   "delete",
				Range:  address.Range{Start: address.At(2), End: address.At(4), Sep: address.Comma},
				Params: RegisterCountParams{},
			},
		},
		{
			name: "prompt and blanks are stripped",
			line: ":: 2,4 d",
			want: &Descriptor{
				Name:   "delete",
				Range:  address.Range{Start: address.At(2), End: address.At(4), Sep: address.Comma},
				Params: RegisterCountParams{},
			},
		},
		{
			name: "relative range",
			line: ".,+3d",
			want: &Descriptor{
				Name:   "delete",
				Range:  address.Range{Start: address.Here(), End: address.Here(3), Sep: address.Comma},
				Params: RegisterCountParams{},
			},
		},
		{
			name: "default range and destination",
			line: "copy0",
			want: &Descriptor{
				Name:           "copy",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         DestinationParams{Destination: address.At(0)},
			},
		},
		{
			name: "alias",
			line: "'a,'bt$",
			want: &Descriptor{
				Name: "copy",
				Range: address.Range{
					Start: &address.Address{Kind: address.Mark, Mark: "a"},
					End:   &address.Address{Kind: address.Mark, Mark: "b"},
					Sep:   address.Comma,
				},
				Params: DestinationParams{Destination: address.End()},
			},
		},
		{
			name: "register and count",
			line: "3d a 2",
			want: &Descriptor{
				Name:   "delete",
				Range:  address.Range{Start: address.At(3)},
				Params: RegisterCountParams{Register: "a", Count: 2},
			},
		},
		{
			name: "forced zero argument command",
			line: "close!",
			want: &Descriptor{Name: "close", Forced: true, Params: NoParams{}},
		},
		{
			name: "whole file default",
			line: "w! out.txt",
			want: &Descriptor{
				Name:           "write",
				Forced:         true,
				Range:          address.WholeFile(),
				RangeDefaulted: true,
				Params:         TextParams{Text: "out.txt"},
			},
		},
		{
			name: "substitute",
			line: "%s/foo/bar/gi 3",
			want: &Descriptor{
				Name:  "substitute",
				Range: address.WholeFile(),
				Params: SubstituteParams{
					Pattern: "foo", Replacement: "bar", Delimiter: "/", Flags: "gi", Count: 3, CountGiven: true,
				},
			},
		},
		{
			name: "substitute other delimiter",
			line: "s#a/b#c#",
			want: &Descriptor{
				Name:           "substitute",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         SubstituteParams{Pattern: "a/b", Replacement: "c", Delimiter: "#", Count: 1},
			},
		},
		{
			name: "substitute elided delimiter",
			line: "s/x",
			want: &Descriptor{
				Name:           "substitute",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         SubstituteParams{Pattern: "x", Delimiter: "/", Count: 1},
			},
		},
		{
			name: "substitute bang delimiter",
			line: "s!a!b!",
			want: &Descriptor{
				Name:           "substitute",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         SubstituteParams{Pattern: "a", Replacement: "b", Delimiter: "!", Count: 1},
			},
		},
		{
			name: "ranged substitute bang delimiter",
			line: "2,3s!x!y!g",
			want: &Descriptor{
				Name:   "substitute",
				Range:  address.Range{Start: address.At(2), End: address.At(3), Sep: address.Comma},
				Params: SubstituteParams{Pattern: "x", Replacement: "y", Delimiter: "!", Flags: "g", Count: 1},
			},
		},
		{
			name: "bang kept as argument text",
			line: "r!cmd",
			want: &Descriptor{
				Name:           "read",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         TextParams{Text: "!cmd"},
			},
		},
		{
			name: "repeat substitute",
			line: "s &g",
			want: &Descriptor{
				Name:           "substitute",
				Range:          address.Range{Start: address.Here()},
				RangeDefaulted: true,
				Params:         SubstituteParams{Flags: "&g", Count: 1, Repeat: true},
			},
		},
		{
			name: "shift",
			line: "5>> 2",
			want: &Descriptor{
				Name:   ">",
				Range:  address.Range{Start: address.At(5)},
				Params: ShiftParams{Direction: ">", Amount: 2, Count: 2},
			},
		},
		{
			name: "mark",
			line: "$ka",
			want: &Descriptor{
				Name:   "mark",
				Range:  address.Range{Start: address.End()},
				Params: MarkParams{Mark: "a"},
			},
		},
		{
			name: "map",
			line: "nnoremap <leader>w :w<CR>",
			want: &Descriptor{Name: "nnoremap", Params: MapParams{LHS: "<leader>w", RHS: ":w<CR>"}},
		},
		{
			name: "sort",
			line: "sort! n /\\d\\+/",
			want: &Descriptor{
				Name:           "sort",
				Forced:         true,
				Range:          address.WholeFile(),
				RangeDefaulted: true,
				Params:         SortParams{Flags: "n", Pattern: `\d\+`, Delimiter: "/"},
			},
		},
		{
			name: "range only",
			line: ":42",
			want: &Descriptor{Range: address.Range{Start: address.At(42)}},
		},
		{
			name: "empty",
			line: ":",
			want: &Descriptor{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(testCase.line)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParse_Global(t *testing.T) {
	t.Parallel()

	got, err := Parse("g/TODO/d")
	require.NoError(t, err)
	assert.Equal(t, "global", got.Name)
	assert.Equal(t, address.WholeFile(), got.Range)

	params, ok := got.Params.(GlobalParams)
	require.True(t, ok)
	assert.Equal(t, "TODO", params.Pattern)
	assert.Equal(t, "d", params.SubCommandLine)
	assert.False(t, params.Invert)
	require.NotNil(t, params.Sub)
	assert.Equal(t, "delete", params.Sub.Name)

	got, err = Parse("1,5g!/x/")
	require.NoError(t, err)
	params, ok = got.Params.(GlobalParams)
	require.True(t, ok)
	assert.True(t, params.Invert)
	assert.Equal(t, "print", params.Sub.Name)

	got, err = Parse("v/x/s/a/b/")
	require.NoError(t, err)
	params, ok = got.Params.(GlobalParams)
	require.True(t, ok)
	assert.True(t, params.Invert)
	assert.Equal(t, "substitute", params.Sub.Name)

	got, err = Parse("g/x/:d")
	require.NoError(t, err)
	params, ok = got.Params.(GlobalParams)
	require.True(t, ok)
	assert.Equal(t, ":d", params.SubCommandLine)
	assert.Equal(t, "delete", params.Sub.Name)

	got, err = Parse("g/x/ :")
	require.NoError(t, err)
	params, ok = got.Params.(GlobalParams)
	require.True(t, ok)
	assert.Equal(t, "print", params.Sub.Name)
}

func TestParse_GlobalSubCommandPosition(t *testing.T) {
	t.Parallel()

	_, err := Parse("g/x/: frobnicate")
	require.ErrorIs(t, err, exerr.ErrUnknownCommand)

	var engineErr *exerr.Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, 6, engineErr.Pos)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		wantErr error
		wantPos int
		wantMsg string
	}{
		{name: "unknown", line: "frobnicate", wantErr: exerr.ErrUnknownCommand, wantPos: 0},
		{name: "unescaped bar", line: "d|p", wantErr: exerr.ErrTrailingCharacters, wantPos: 1,
			wantMsg: "E488: Trailing characters: |p"},
		{name: "bar after prompt", line: ":s/a|b/", wantErr: exerr.ErrTrailingCharacters, wantPos: 4},
		{name: "zero argument command with argument", line: "only x", wantErr: exerr.ErrTrailingCharacters,
			wantPos: 5},
		{name: "bang where an address belongs", line: "copy! 3", wantErr: exerr.ErrNoBangAllowed, wantPos: 4,
			wantMsg: "E477: No ! allowed"},
		{name: "bang on move", line: "m! 3", wantErr: exerr.ErrNoBangAllowed, wantPos: 1},
		{name: "blank then bang", line: "only !", wantErr: exerr.ErrTrailingCharacters,
			wantPos: 5},
		{name: "position past escaped bar", line: `s/a\|b/c/z`, wantErr: exerr.ErrTrailingCharacters,
			wantPos: 9, wantMsg: "E488: Trailing characters: z"},
		{name: "position past two escaped bars", line: `s/\|\|/c/ 0`, wantErr: exerr.ErrInvalidArgument,
			wantPos: 10},
		{name: "range not allowed", line: "3quit", wantErr: exerr.ErrNoRangeAllowed, wantPos: 1},
		{name: "missing destination", line: "copy", wantErr: exerr.ErrInvalidAddress, wantPos: 4},
		{name: "nested global", line: "g/a/g/b/d", wantErr: exerr.ErrInvalidArgument, wantPos: 5,
			wantMsg: "E147: Cannot do :global recursive"},
		{name: "zero count", line: "d 0", wantErr: exerr.ErrInvalidArgument, wantPos: 2},
		{name: "bad mark", line: "mark 1", wantErr: exerr.ErrInvalidArgument, wantPos: 5},
		{name: "bad mark address", line: "'1d", wantErr: exerr.ErrScan, wantPos: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(testCase.line)
			require.ErrorIs(t, err, testCase.wantErr)

			var engineErr *exerr.Error
			require.ErrorAs(t, err, &engineErr)
			assert.Equal(t, testCase.wantPos, engineErr.Pos)
			if testCase.wantMsg != "" {
				assert.Equal(t, testCase.wantMsg, err.Error())
			}
		})
	}
}

func TestParse_EscapedBar(t *testing.T) {
	t.Parallel()

	got, err := Parse(`s/a\|b/x\|y/`)
	require.NoError(t, err)

	params, ok := got.Params.(SubstituteParams)
	require.True(t, ok)
	assert.Equal(t, "a|b", params.Pattern)
	assert.Equal(t, "x|y", params.Replacement)
}

func TestParse_UnknownSuggests(t *testing.T) {
	t.Parallel()

	_, err := Parse("bogus")
	require.ErrorIs(t, err, exerr.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "Not an editor command: bogus")

	_, err = Parse("fnoremap x y")
	require.ErrorIs(t, err, exerr.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "did you mean")
}

func TestDescriptor_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want string
	}{
		{"2,4d", "2,4delete"},
		{"copy0", "copy 0"},
		{"%s/a\\/b/c/g", "%substitute/a\\/b/c/g"},
		{"g/x/d", "global/x/d"},
		{"close!", "close!"},
		{"5>>>", "5>>>"},
		{"'a,'bm$-1", "'a,'bmove $-1"},
		{"nn x y", "nnoremap x y"},
		{"3", "3"},
	}

	for _, testCase := range tests {
		t.Run(testCase.line, func(t *testing.T) {
			t.Parallel()

			desc, err := Parse(testCase.line)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, desc.String())

			reparsed, err := Parse(desc.String())
			require.NoError(t, err)
			assert.Equal(t, desc.Name, reparsed.Name)
			assert.Equal(t, desc.Range, reparsed.Range)
		})
	}
}

func TestDescriptor_Encoding(t *testing.T) {
	t.Parallel()

	desc, err := Parse("2,4copy0")
	require.NoError(t, err)

	data, err := desc.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "copy"`)
	assert.Contains(t, string(data), `"kind": "line"`)
	assert.Contains(t, string(data), `"sep": ","`)

	data, err = desc.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: copy")
	assert.Contains(t, string(data), "kind: line")
}
