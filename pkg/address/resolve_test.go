package address

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/excmd/pkg/exerr"
	"github.com/yaklabco/excmd/pkg/scan"
)

// fakeContext is a buffer of lines matched by substring.
type fakeContext struct {
	lines   []string
	current int
	marks   map[rune]int
}

func (f *fakeContext) CurrentLine() int { return f.current }
func (f *fakeContext) LastLine() int    { return len(f.lines) }

func (f *fakeContext) LookupMark(name rune) (int, bool) {
	line, ok := f.marks[name]
	return line, ok
}

func (f *fakeContext) SearchForward(pattern string, from int, wrap bool) (int, bool) {
	last := len(f.lines)
	for line := from + 1; line <= last; line++ {
		if strings.Contains(f.lines[line-1], pattern) {
			return line, true
		}
	}
	if !wrap {
		return 0, false
	}
	for line := 1; line <= from && line <= last; line++ {
		if strings.Contains(f.lines[line-1], pattern) {
			return line, true
		}
	}
	return 0, false
}

func (f *fakeContext) SearchBackward(pattern string, from int, wrap bool) (int, bool) {
	for line := from - 1; line >= 1; line-- {
		if strings.Contains(f.lines[line-1], pattern) {
			return line, true
		}
	}
	if !wrap {
		return 0, false
	}
	for line := len(f.lines); line >= from && line >= 1; line-- {
		if strings.Contains(f.lines[line-1], pattern) {
			return line, true
		}
	}
	return 0, false
}

func newFake(n, current int) *fakeContext {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return &fakeContext{lines: lines, current: current, marks: map[rune]int{}}
}

func resolve(t *testing.T, src string, ctx Context, opts Options) (Resolved, error) {
	t.Helper()

	rng, err := ParseRange(scan.New(src))
	require.NoError(t, err)
	return ResolveRange(rng, ctx, opts)
}

func TestResolveRange(t *testing.T) {
	t.Parallel()

	ctx := newFake(10, 5)
	ctx.lines[6] = "abc here"
	ctx.lines[1] = "abc there"
	ctx.marks['a'] = 3
	ctx.marks['b'] = 6

	tests := []struct {
		src  string
		want Resolved
	}{
		{"", Resolved{5, 5}},
		{"2,4", Resolved{2, 4}},
		{".,+3", Resolved{5, 8}},
		{"+3", Resolved{8, 8}},
		{"-", Resolved{4, 4}},
		{"$", Resolved{10, 10}},
		{"%", Resolved{1, 10}},
		{"'a,'b", Resolved{3, 6}},
		{"'a+1,'b-1", Resolved{4, 5}},
		{"/abc/", Resolved{7, 7}},
		{"?abc?", Resolved{2, 2}},
		{"/abc/,/abc/", Resolved{7, 7}},
		{"/abc/;/abc/", Resolved{7, 2}},
		{"3,", Resolved{3, 5}},
		{"3;", Resolved{3, 3}},
		{"2;+3", Resolved{2, 5}},
		{"2,+3", Resolved{2, 8}},
		{",7", Resolved{5, 7}},
		{"0", Resolved{0, 0}},
		{"0,$", Resolved{0, 10}},
	}

	for _, testCase := range tests {
		t.Run(testCase.src, func(t *testing.T) {
			t.Parallel()

			got, err := resolve(t, testCase.src, ctx, DefaultOptions())
			if testCase.want.First > testCase.want.Last {
				require.ErrorIs(t, err, exerr.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestResolveRange_Errors(t *testing.T) {
	t.Parallel()

	ctx := newFake(10, 5)

	tests := []struct {
		name    string
		src     string
		opts    Options
		wantErr error
		wantMsg string
	}{
		{name: "backwards", src: "3,2", wantErr: exerr.ErrInvalidRange, wantMsg: "E14: Invalid address"},
		{name: "past end", src: "1,11", wantErr: exerr.ErrInvalidAddress, wantMsg: "E16: Invalid range"},
		{name: "negative", src: "-9,3", wantErr: exerr.ErrInvalidAddress},
		{name: "backwards wins over bounds", src: "20,3", wantErr: exerr.ErrInvalidRange},
		{name: "mark", src: "'z", wantErr: exerr.ErrMarkNotSet, wantMsg: "E20: Mark not set: z"},
		{
			name: "forward no wrap", src: "/abc/", wantErr: exerr.ErrSearchHitBottom,
			wantMsg: "E385: Search hit BOTTOM without match for: abc",
		},
		{
			name: "backward no wrap", src: "?abc?", wantErr: exerr.ErrSearchHitTop,
			wantMsg: "E384: Search hit TOP without match for: abc",
		},
		{
			name: "wrapped", src: "/abc/", opts: DefaultOptions(), wantErr: exerr.ErrPatternNotFound,
			wantMsg: "E486: Pattern not found: abc",
		},
		{name: "no previous pattern", src: "//", wantErr: exerr.ErrNoPreviousPattern},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := resolve(t, testCase.src, ctx, testCase.opts)
			require.ErrorIs(t, err, testCase.wantErr)
			if testCase.wantMsg != "" {
				assert.Equal(t, testCase.wantMsg, err.Error())
			}
		})
	}
}

func TestResolveRange_Wrap(t *testing.T) {
	t.Parallel()

	ctx := newFake(10, 8)
	ctx.lines[2] = "target"

	_, err := resolve(t, "/target/", ctx, Options{})
	require.ErrorIs(t, err, exerr.ErrSearchHitBottom)

	got, err := resolve(t, "/target/", ctx, Options{WrapScan: true})
	require.NoError(t, err)
	assert.Equal(t, Resolved{3, 3}, got)
}

func TestResolver_LastPattern(t *testing.T) {
	t.Parallel()

	ctx := newFake(10, 1)
	ctx.lines[4] = "needle"
	ctx.lines[8] = "needle"

	got, err := resolve(t, "//", ctx, Options{LastPattern: "needle"})
	require.NoError(t, err)
	assert.Equal(t, Resolved{5, 5}, got)

	r := NewResolver(ctx, Options{})
	rng, err := ParseRange(scan.New("/needle/;//"))
	require.NoError(t, err)
	got, err = r.Range(rng)
	require.NoError(t, err)
	assert.Equal(t, Resolved{5, 9}, got)
	assert.Equal(t, "needle", r.LastPattern())
}

func TestResolveRange_EmptyBuffer(t *testing.T) {
	t.Parallel()

	ctx := newFake(0, 0)

	got, err := resolve(t, "0", ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0, 0}, got)

	got, err = resolve(t, "%", ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, Resolved{0, 0}, got)

	_, err = resolve(t, "0,1", ctx, Options{})
	require.ErrorIs(t, err, exerr.ErrInvalidAddress)
}

func TestResolveRange_DigitRanges(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		last := rapid.IntRange(1, 5000).Draw(t, "last")
		first := rapid.IntRange(1, last).Draw(t, "first")
		end := rapid.IntRange(first, last).Draw(t, "end")
		current := rapid.IntRange(1, last).Draw(t, "current")

		rng, err := ParseRange(scan.New(fmt.Sprintf("%d,%d", first, end)))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		got, err := ResolveRange(rng, newFake(last, current), DefaultOptions())
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got != (Resolved{First: first, Last: end}) {
			t.Fatalf("got %v, want %d,%d", got, first, end)
		}
	})
}
