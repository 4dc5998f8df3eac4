package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Digits, Value: 12}, "12"},
		{Token{Kind: Dot}, "."},
		{Token{Kind: Dollar}, "$"},
		{Token{Kind: Percent}, "%"},
		{Token{Kind: Mark, Name: "a"}, "'a"},
		{Token{Kind: SearchForward, Pattern: "x"}, "/x/"},
		{Token{Kind: SearchBackward, Pattern: "x"}, "?x?"},
		{Token{Kind: Offset, Value: 3}, "+3"},
		{Token{Kind: Offset, Value: -2}, "-2"},
		{Token{Kind: Comma}, ","},
		{Token{Kind: Semicolon}, ";"},
		{Token{Kind: Command, Name: "close", Forced: true}, "close!"},
		{Token{Kind: EOF}, "EOF"},
	}

	for _, testCase := range tests {
		t.Run(testCase.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.tok.String())
		})
	}
}

func TestToken_Equality(t *testing.T) {
	t.Parallel()

	forced := Token{Kind: Command, Name: "close", Forced: true}
	plain := Token{Kind: Command, Name: "close"}

	assert.NotEqual(t, forced, plain, "forced is part of a token's identity")
	assert.Equal(t, forced, Token{Kind: Command, Name: "close", Forced: true})
	assert.Equal(t, 3, Token{Start: 2, End: 5}.Len())
	assert.Equal(t, "search-forward", SearchForward.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
