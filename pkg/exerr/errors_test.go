package exerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"trailing", TrailingCharacters(3, "x"), "E488: Trailing characters: x"},
		{"trailing without rest", TrailingCharacters(3, ""), "E488: Trailing characters"},
		{"invalid range", InvalidRange(), "E14: Invalid address"},
		{"invalid address", InvalidAddress(), "E16: Invalid range"},
		{"mark", MarkNotSet('a'), "E20: Mark not set: a"},
		{"bottom", SearchHitBottom("abc"), "E385: Search hit BOTTOM without match for: abc"},
		{"top", SearchHitTop("abc"), "E384: Search hit TOP without match for: abc"},
		{"wrapped", PatternNotFound("abc"), "E486: Pattern not found: abc"},
		{"scan", Scan(0, "__EOF__", "'x'"), "expected __EOF__, got 'x' instead"},
		{"unknown", UnknownCommand(0, "dleete", "delete"), `E492: Not an editor command: dleete (did you mean "delete"?)`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resolve: %w", SearchHitBottom("abc"))

	assert.ErrorIs(t, wrapped, ErrPatternNotFound)
	assert.ErrorIs(t, wrapped, ErrSearchHitBottom)
	assert.NotErrorIs(t, wrapped, ErrSearchHitTop)
	assert.NotErrorIs(t, wrapped, ErrInvalidRange)

	var engineErr *Error
	require.ErrorAs(t, wrapped, &engineErr)
	assert.Equal(t, KindPatternNotFound, engineErr.Kind)
	assert.Equal(t, BoundaryBottom, engineErr.Boundary)
}

func TestError_Shift(t *testing.T) {
	t.Parallel()

	err := TrailingCharacters(2, "x")
	shifted := err.Shift(5)

	assert.Equal(t, 7, shifted.Pos)
	assert.Equal(t, 2, err.Pos, "original must not change")

	unpositioned := InvalidRange()
	assert.Equal(t, -1, unpositioned.Shift(5).Pos)
}

func TestKind_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		parsed, ok := ParseKind(kind.String())
		require.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)
	}

	_, ok := ParseKind("no-such-kind")
	assert.False(t, ok)
	assert.True(t, errors.Is(RecursiveGlobal(0), ErrInvalidArgument))
}
