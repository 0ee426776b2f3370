package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(tokens []Token) []string {
	var out []string
	for _, token := range tokens {
		out = append(out, token.Word)
	}

	return out
}

func TestTokens_WordBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace only", text: "  \t\n", want: nil},
		{name: "single word", text: "grace", want: []string{"grace"}},
		{name: "digits split words", text: "abc123def", want: []string{"abc", "def"}},
		{name: "punctuation splits words", text: "stop. go, now!", want: []string{"stop", "go", "now"}},
		{name: "hyphen joins letters", text: "crystal-clear water", want: []string{"crystal-clear", "water"}},
		{name: "double hyphen splits", text: "long--dash", want: []string{"long", "dash"}},
		{name: "trailing hyphen dropped", text: "well- done", want: []string{"well", "done"}},
		{name: "leading hyphen dropped", text: "-begin", want: []string{"begin"}},
		{name: "apostrophe splits", text: "don't", want: []string{"don", "t"}},
		{name: "unicode letters", text: "Θεός λόγος", want: []string{"Θεός", "λόγος"}},
		{name: "bom is boundary", text: "\uFEFFIn the beginning", want: []string{"In", "the", "beginning"}},
		{name: "exact case preserved", text: "The the THE", want: []string{"The", "the", "THE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, words(Tokens(tt.text)))
		})
	}
}

func TestTokens_SkipsMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "verse marker", text: `\v 1 The word`, want: []string{"The", "word"}},
		{name: "paragraph marker", text: "\\p\nIn the land", want: []string{"In", "the", "land"}},
		{name: "numbered marker", text: `\toc1 The Book of Jonah`, want: []string{"The", "Book", "of", "Jonah"}},
		{name: "closing marker", text: `\f + note \f* after`, want: []string{"note", "after"}},
		{name: "marker glued to word", text: `\id JON`, want: []string{"JON"}},
		{name: "lone backslash", text: `a \ b`, want: []string{"a", "b"}},
		{name: "backslash at end", text: `word \`, want: []string{"word"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, words(Tokens(tt.text)))
		})
	}
}

func TestTokens_ByteSpans(t *testing.T) {
	text := `\v 1 The the them theme.`

	tokens := Tokens(text)
	require.Len(t, tokens, 4)

	assert.Equal(t, Token{Word: "The", Start: 5, End: 8}, tokens[0])
	assert.Equal(t, Token{Word: "the", Start: 9, End: 12}, tokens[1])
	assert.Equal(t, Token{Word: "them", Start: 13, End: 17}, tokens[2])
	assert.Equal(t, Token{Word: "theme", Start: 18, End: 23}, tokens[3])

	for _, token := range tokens {
		assert.Equal(t, token.Word, text[token.Start:token.End])
	}
}

func TestTokenizer_Reset(t *testing.T) {
	tokenizer := NewTokenizer("one two")

	first, ok := tokenizer.Next()
	require.True(t, ok)

	tokenizer.Reset()

	again, ok := tokenizer.Next()
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestReplaceWholeWords(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		target      string
		replacement string
		want        string
		replaced    int
	}{
		{
			name:        "whole word only",
			text:        `\v 1 The the them theme.`,
			target:      "the",
			replacement: "teh",
			want:        `\v 1 The teh them theme.`,
			replaced:    1,
		},
		{
			name:        "case sensitive",
			text:        "The the THE",
			target:      "The",
			replacement: "A",
			want:        "A the THE",
			replaced:    1,
		},
		{
			name:        "substring untouched",
			text:        "the other breathe them",
			target:      "the",
			replacement: "X",
			want:        "X other breathe them",
			replaced:    1,
		},
		{
			name:        "multiple matches",
			text:        "go and go and go",
			target:      "go",
			replacement: "went",
			want:        "went and went and went",
			replaced:    3,
		},
		{
			name:        "no match returns input",
			text:        "nothing here",
			target:      "absent",
			replacement: "x",
			want:        "nothing here",
			replaced:    0,
		},
		{
			name:        "hyphenated token is one word",
			text:        "crystal-clear and clear",
			target:      "clear",
			replacement: "bright",
			want:        "crystal-clear and bright",
			replaced:    1,
		},
		{
			name:        "replacement longer than target",
			text:        "a b a",
			target:      "a",
			replacement: "alpha",
			want:        "alpha b alpha",
			replaced:    2,
		},
		{
			name:        "marker text never replaced",
			text:        `\p p p`,
			target:      "p",
			replacement: "q",
			want:        `\p q q`,
			replaced:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced := replaceWholeWords(tt.text, tt.target, tt.replacement)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.replaced, replaced)
		})
	}
}
