package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text         string
		wantSpelling string
		wantName     string
	}{
		{"copy0", "copy", "copy"},
		{"co 3", "co", "copy"},
		{"t.", "t", "copy"},
		{"delete", "delete", "delete"},
		{"d", "d", "delete"},
		{"ma a", "ma", "mark"},
		{"m0", "m", "move"},
		{"nnoremap", "nnoremap", "nnoremap"},
		{"nor x", "nor", "noremap"},
		{"norm dd", "norm", "normal"},
		{"noh", "noh", "nohlsearch"},
		{"red", "red", "redo"},
		{"re file", "re", "read"},
		{"wq", "wq", "wq"},
		{"wqa", "wqa", "wqall"},
		{"xit", "xit", "exit"},
		{"sor", "sor", "sort"},
		{"s/a/b/", "s", "substitute"},
		{"tabn", "tabn", "tabnext"},
	}

	for _, testCase := range tests {
		t.Run(testCase.text, func(t *testing.T) {
			t.Parallel()

			spelling, spec, ok := DefaultTable.Match(testCase.text)
			require.True(t, ok)
			assert.Equal(t, testCase.wantSpelling, spelling)
			assert.Equal(t, testCase.wantName, spec.Name)
		})
	}

	_, _, ok := DefaultTable.Match("frob")
	assert.False(t, ok)
}

func TestTable_Register(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(Spec{Name: "delete", Abbrev: "d", Args: scanNone}))
	require.NoError(t, table.Register(Spec{Name: "display", Abbrev: "di", Args: scanNone}))
	require.NoError(t, table.Register(Spec{Name: "dig", Abbrev: "d", Args: scanNone}))

	spec, ok := table.Get("d")
	require.True(t, ok)
	assert.Equal(t, "delete", spec.Name, "first registered keeps a shared spelling")

	spec, ok = table.Get("di")
	require.True(t, ok)
	assert.Equal(t, "display", spec.Name)

	spec, ok = table.Get("dig")
	require.True(t, ok)
	assert.Equal(t, "dig", spec.Name, "full names win over abbreviations")

	assert.Equal(t, []string{"delete", "dig", "display"}, table.Names())
	assert.Equal(t, []string{"delete", "delet", "dele", "del", "de", "d"}, table.Spelled("delete"))

	require.Error(t, table.Register(Spec{Name: "delete", Args: scanNone}), "duplicate name")
	require.Error(t, table.Register(Spec{Name: "x", Abbrev: "y", Args: scanNone}), "abbrev not a prefix")
	require.Error(t, table.Register(Spec{Name: "x"}), "no scanner")
	require.Error(t, table.Register(Spec{Name: "x", Default: DefaultWhole, Args: scanNone}), "default without range")
}

func TestTable_RegisterAlias(t *testing.T) {
	t.Parallel()

	table := DefaultTable.Clone()
	require.NoError(t, table.RegisterAlias("zap", "delete"))

	desc, err := NewParser(table).Parse("3zap")
	require.NoError(t, err)
	assert.Equal(t, "delete", desc.Name)

	_, err = NewParser(DefaultTable).Parse("3zap")
	require.Error(t, err, "clone must not leak into the default table")

	require.Error(t, table.RegisterAlias("zz", "nosuchcommand"))
	require.Error(t, table.RegisterAlias("a b", "delete"))
	require.Error(t, table.RegisterAlias("copy", "delete"))
	assert.Equal(t, "delete", table.Aliases()["zap"])
}

func TestTable_WithAliases(t *testing.T) {
	t.Parallel()

	table, err := DefaultTable.WithAliases(map[string]string{
		"zap":   "d",
		"yoink": "yank",
	})
	require.NoError(t, err)

	desc, err := NewParser(table).Parse("zap")
	require.NoError(t, err)
	assert.Equal(t, "delete", desc.Name)

	desc, err = NewParser(table).Parse("yoink a")
	require.NoError(t, err)
	assert.Equal(t, "yank", desc.Name)

	table, err = DefaultTable.WithAliases(map[string]string{
		"zap":  "delete",
		"zz":   "nosuchcommand",
		"copy": "delete",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "nosuchcommand"`)
	assert.Contains(t, err.Error(), `alias "copy" shadows command "copy"`)
	assert.Equal(t, "delete", table.Aliases()["zap"], "valid aliases are still registered")
}

func TestTable_Suggest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "substitute", DefaultTable.Suggest("sbstitute"))
	assert.Equal(t, "tabclose", DefaultTable.Suggest("tabclsoe"))
	assert.Empty(t, DefaultTable.Suggest("zzzzzzzzzz"))
	assert.Empty(t, DefaultTable.Suggest(""))
	assert.Equal(t, "delete", DefaultTable.Suggest("dlete"))

	for _, word := range []string{":d", "<x", "d", "&&"} {
		got := DefaultTable.Suggest(word)
		assert.NotContains(t, []string{"<", ">", "&", "~", "!", "="}, got, "word %q", word)
	}
}

func TestSpec_Usage(t *testing.T) {
	t.Parallel()

	spec, ok := DefaultTable.Get("delete")
	require.True(t, ok)
	assert.Equal(t, "d[elete]", spec.Usage())

	spec, ok = DefaultTable.Get("wq")
	require.True(t, ok)
	assert.Equal(t, "wq", spec.Usage())
}
