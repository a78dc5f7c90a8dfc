package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		caption   string
		terminals []string
		input     string
		want      []string
	}{
		{
			caption:   "tokens split on whitespace",
			terminals: []string{"+", "id"},
			input:     "id + id",
			want:      []string{"id", "+", "id", "$"},
		},
		{
			caption:   "operator characters split without surrounding spaces",
			terminals: []string{"(", ")", "*", "+", "id"},
			input:     "id+id*(id)",
			want:      []string{"id", "+", "id", "*", "(", "id", ")", "$"},
		},
		{
			caption:   "blank input yields just the end marker",
			terminals: []string{"id"},
			input:     "   ",
			want:      []string{"$"},
		},
		{
			caption:   "multi-character terminals stay whole",
			terminals: []string{"num", "plus"},
			input:     "num plus num",
			want:      []string{"num", "plus", "num", "$"},
		},
		{
			caption:   "an interior end marker passes validation",
			terminals: []string{"id"},
			input:     "id $ id",
			want:      []string{"id", "$", "id", "$"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := NewTokenizer(tt.terminals).Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, toks)
		})
	}
}

func TestTokenize_unknownToken(t *testing.T) {
	_, err := NewTokenizer([]string{"+", "id"}).Tokenize("id - id")
	require.Error(t, err)

	lexErr, ok := err.(*LexError)
	require.True(t, ok, "want a LexError, got: %v", err)
	assert.Equal(t, "-", lexErr.Token)
	assert.Equal(t, -1, lexErr.Pos)
	assert.Equal(t, []string{"+", "id"}, lexErr.Terminals)
	assert.Equal(t, "Unknown token: '-'. Valid terminals: +, id", lexErr.Error())
}

func TestTokenizeGreedy(t *testing.T) {
	tests := []struct {
		caption   string
		terminals []string
		input     string
		want      []string
	}{
		{
			caption:   "the longest terminal wins",
			terminals: []string{"=", "==", "id"},
			input:     "id==id",
			want:      []string{"id", "==", "id", "$"},
		},
		{
			caption:   "a shorter terminal still matches on its own",
			terminals: []string{"=", "==", "id"},
			input:     "id = id",
			want:      []string{"id", "=", "id", "$"},
		},
		{
			caption:   "overlapping terminals resolve position by position",
			terminals: []string{"a", "ab"},
			input:     "aab",
			want:      []string{"a", "ab", "$"},
		},
		{
			caption:   "whitespace between matches is skipped",
			terminals: []string{"a", "ab"},
			input:     "  a \t ab ",
			want:      []string{"a", "ab", "$"},
		},
		{
			caption:   "blank input yields just the end marker",
			terminals: []string{"a"},
			input:     "",
			want:      []string{"$"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := NewTokenizer(tt.terminals).TokenizeGreedy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, toks)
		})
	}
}

func TestTokenizeGreedy_unknownCharacter(t *testing.T) {
	_, err := NewTokenizer([]string{"a", "b"}).TokenizeGreedy("a!b")
	require.Error(t, err)

	lexErr, ok := err.(*LexError)
	require.True(t, ok, "want a LexError, got: %v", err)
	assert.Equal(t, "!", lexErr.Token)
	assert.Equal(t, 1, lexErr.Pos)
	assert.Nil(t, lexErr.Terminals)
	assert.Equal(t, "Unknown token: '!' at position 1", lexErr.Error())
}

func TestTokenizeGreedy_reusesTheCompiledMatcher(t *testing.T) {
	tok := NewTokenizer([]string{"a", "ab"})

	first, err := tok.TokenizeGreedy("ab")
	require.NoError(t, err)
	second, err := tok.TokenizeGreedy("a ab a")
	require.NoError(t, err)

	assert.Equal(t, []string{"ab", "$"}, first)
	assert.Equal(t, []string{"a", "ab", "a", "$"}, second)
}
