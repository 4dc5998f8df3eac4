package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		content string
		want    Kind
	}{
		{"plugin/foo.vim", "", KindVimScript},
		{"/home/u/.vimrc", "", KindVimScript},
		{".exrc", "", KindVimScript},
		{"edits.ex", "", KindEx},
		{"EDITS.EX", "", KindEx},
		{"README.md", "# title\n", KindMarkdown},
		{"docs/guide.markdown", "", KindMarkdown},
		{"main.go", "package main\n", KindUnknown},
		{"script", "#!/usr/bin/env python\n", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vimscript", KindVimScript.String())
	assert.Equal(t, "markdown", KindMarkdown.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestExtract_VimScript(t *testing.T) {
	t.Parallel()

	content := "#!/usr/bin/env vim -S\n" +
		"\" comment line\n" +
		"\n" +
		"  :1,$d\n" +
		"g/foo/\n" +
		"      \\ s/a/b/\n" +
		"\t\" indented comment\n" +
		"copy 0\r\n"

	lines, err := Extract(context.Background(), []byte(content), KindVimScript)
	require.NoError(t, err)

	assert.Equal(t, []Line{
		{Number: 4, Column: 2, Text: ":1,$d"},
		{Number: 5, Column: 0, Text: "g/foo/ s/a/b/"},
		{Number: 8, Column: 0, Text: "copy 0"},
	}, lines)
}

func TestExtract_Ex(t *testing.T) {
	t.Parallel()

	lines, err := Extract(context.Background(), []byte("1d\n\\/x/d\n"), KindEx)
	require.NoError(t, err)

	assert.Equal(t, []Line{
		{Number: 1, Column: 0, Text: "1d"},
		{Number: 2, Column: 0, Text: `\/x/d`},
	}, lines, "ex input has no continuation lines")
}

func TestExtract_Markdown(t *testing.T) {
	t.Parallel()

	content := "# Editing\n" +
		"\n" +
		"```vim\n" +
		"\" delete everything\n" +
		"%d\n" +
		"```\n" +
		"\n" +
		"```go\n" +
		"x := 1\n" +
		"```\n" +
		"\n" +
		"```\n" +
		":2,3p\n" +
		":$\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"plain text\n" +
		"```\n" +
		"\n" +
		"- item\n" +
		"\n" +
		"  ```ex\n" +
		"  1,2m$\n" +
		"  ```\n"

	lines, err := Extract(context.Background(), []byte(content), KindMarkdown)
	require.NoError(t, err)

	assert.Equal(t, []Line{
		{Number: 5, Column: 0, Text: "%d"},
		{Number: 13, Column: 0, Text: ":2,3p"},
		{Number: 14, Column: 0, Text: ":$"},
		{Number: 24, Column: 2, Text: "1,2m$"},
	}, lines)
}

func TestExtract_Unknown(t *testing.T) {
	t.Parallel()

	lines, err := Extract(context.Background(), []byte("anything"), KindUnknown)
	require.NoError(t, err)
	assert.Empty(t, lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Extract(ctx, []byte("1d"), KindEx)
	require.Error(t, err)
}

func TestLineNumber(t *testing.T) {
	t.Parallel()

	starts := lineStarts([]byte("ab\ncd\n\nef"))
	assert.Equal(t, []int{0, 3, 6, 7}, starts)
	assert.Equal(t, 1, lineNumber(starts, 0))
	assert.Equal(t, 1, lineNumber(starts, 2))
	assert.Equal(t, 2, lineNumber(starts, 3))
	assert.Equal(t, 3, lineNumber(starts, 6))
	assert.Equal(t, 4, lineNumber(starts, 8))
}
