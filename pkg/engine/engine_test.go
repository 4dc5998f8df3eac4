package engine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/excmd/internal/logging"
	"github.com/yaklabco/excmd/pkg/address"
	"github.com/yaklabco/excmd/pkg/buffer"
	"github.com/yaklabco/excmd/pkg/command"
	"github.com/yaklabco/excmd/pkg/exerr"
)

func tenLines(opts ...buffer.Option) *buffer.Buffer {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return buffer.New(lines, opts...)
}

func TestEngine_Scenarios(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name     string
		line     string
		current  int
		wrap     bool
		wantName string
		want     *address.Resolved
		wantErr  error
		wantMsg  string
	}{
		{name: "digit range", line: "2,4delete", current: 1, wantName: "delete", want: &address.Resolved{First: 2, Last: 4}},
		{name: "relative range", line: ".,+3d", current: 5, wantName: "delete", want: &address.Resolved{First: 5, Last: 8}},
		{name: "copy to zero", line: "copy0", current: 7, wantName: "copy", want: &address.Resolved{First: 7, Last: 7}},
		{name: "search without wrap", line: "/abc/d", current: 1, wantErr: exerr.ErrSearchHitBottom, wantMsg: "hit BOTTOM"},
		{name: "search with wrap", line: "/abc/d", current: 1, wrap: true, wantErr: exerr.ErrPatternNotFound},
		{name: "backwards range", line: "3,2delete", current: 1, wantErr: exerr.ErrInvalidRange, wantMsg: "E14: Invalid address"},
		{name: "whole file default", line: "g/line/d", current: 3, wantName: "global", want: &address.Resolved{First: 1, Last: 10}},
		{name: "no range", line: "close!", current: 3, wantName: "close"},
		{name: "range only", line: ":$-1", current: 3, want: &address.Resolved{First: 9, Last: 9}},
		{name: "found search", line: "/line 6/;+2p", current: 1, wantName: "print", want: &address.Resolved{First: 6, Last: 8}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			eng := New(Options{WrapScan: testCase.wrap})
			result, err := eng.Run(ctx, testCase.line, tenLines(buffer.WithCurrent(testCase.current)), "")

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				if testCase.wantMsg != "" {
					assert.Contains(t, err.Error(), testCase.wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantName, result.Descriptor.Name)
			assert.Equal(t, testCase.want, result.Resolved)
		})
	}
}

func TestEngine_LastPattern(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eng := New(DefaultOptions())
	buf := tenLines()

	result, err := eng.Run(ctx, "/line 4/p", buf, "")
	require.NoError(t, err)
	assert.Equal(t, "line 4", result.LastPattern)

	result, err = eng.Run(ctx, "//p", buf, result.LastPattern)
	require.NoError(t, err)
	assert.Equal(t, &address.Resolved{First: 4, Last: 4}, result.Resolved)

	_, err = eng.Run(ctx, "//p", buf, "")
	require.ErrorIs(t, err, exerr.ErrNoPreviousPattern)

	buf.SetLastPattern("line 9")
	result, err = eng.Run(ctx, "//p", buf, "")
	require.NoError(t, err)
	assert.Equal(t, &address.Resolved{First: 9, Last: 9}, result.Resolved)
}

func TestEngine_Logging(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&out, "debug"))

	eng := New(DefaultOptions())
	_, err := eng.Run(ctx, "2,3d", tenLines(), "")
	require.NoError(t, err)

	_, err = eng.Parse(ctx, "3,2d|p")
	require.Error(t, err)

	logs := out.String()
	assert.Contains(t, logs, "parsed command line")
	assert.Contains(t, logs, "resolved=2,3")
	assert.Contains(t, logs, "kind=trailing-characters")
	assert.Equal(t, 3, strings.Count(logs, "\n"))
}

func TestEngine_CustomTable(t *testing.T) {
	t.Parallel()

	table := command.DefaultTable.Clone()
	require.NoError(t, table.RegisterAlias("zap", "delete"))

	eng := New(Options{Table: table})
	assert.Same(t, table, eng.Table())

	desc, err := eng.Parse(context.Background(), "zap")
	require.NoError(t, err)
	assert.Equal(t, "delete", desc.Name)

	tokens, err := eng.Tokens("1,2zap")
	require.NoError(t, err)
	assert.Len(t, tokens, 5)
}
