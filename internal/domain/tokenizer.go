// Package domain implements the word-indexing and correction engine for
// USFM text repositories.
package domain

import (
	"unicode"
	"unicode/utf8"
)

// Token is one word found in a text, with the byte span it occupies.
type Token struct {
	Word  string
	Start int // byte offset of the first letter
	End   int // byte offset just past the last letter
}

// Tokenizer walks raw USFM text and yields (word, span) tokens.
//
// A word is a maximal run of Unicode letters. A single '-' flanked by a
// letter on both sides is part of the word, so "crystal-clear" is one
// token; apostrophes are boundaries. USFM markers (backslash followed by
// the marker name, e.g. `\v`, `\p`, `\f*`) are skipped whole and never
// indexed; the numeral arguments that follow markers are boundaries like
// any other digits. Everything else (digits, punctuation, whitespace) is
// a boundary.
type Tokenizer struct {
	text string
	pos  int
}

// NewTokenizer returns a tokenizer positioned at the start of text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{text: text}
}

// Reset rewinds the tokenizer to the start of the text.
func (t *Tokenizer) Reset() {
	t.pos = 0
}

// Next returns the next token, or ok=false when the text is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])

		switch {
		case r == '\\':
			t.skipMarker()
		case unicode.IsLetter(r):
			return t.scanWord(), true
		default:
			t.pos += size
		}
	}

	return Token{}, false
}

// skipMarker consumes a backslash plus the marker name that follows it
// (letters, optional trailing digits, optional closing '*').
func (t *Tokenizer) skipMarker() {
	t.pos++ // consume the backslash

	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		t.pos += size
	}

	// End markers like \f* close with an asterisk.
	if t.pos < len(t.text) && t.text[t.pos] == '*' {
		t.pos++
	}
}

// scanWord consumes a maximal letter run starting at the current position.
func (t *Tokenizer) scanWord() Token {
	start := t.pos

	for t.pos < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:])

		if unicode.IsLetter(r) {
			t.pos += size
			continue
		}

		// A hyphen continues the word only when a letter follows it.
		if r == '-' && t.pos > start {
			next, _ := utf8.DecodeRuneInString(t.text[t.pos+size:])
			if unicode.IsLetter(next) {
				t.pos += size
				continue
			}
		}

		break
	}

	return Token{
		Word:  t.text[start:t.pos],
		Start: start,
		End:   t.pos,
	}
}

// Tokens drains a fresh tokenizer over text and returns every token.
func Tokens(text string) []Token {
	var tokens []Token

	tokenizer := NewTokenizer(text)

	for {
		token, ok := tokenizer.Next()
		if !ok {
			return tokens
		}

		tokens = append(tokens, token)
	}
}

// replaceWholeWords substitutes every whole-word exact match of target in
// text with replacement, using the same boundary rule as the tokenizer.
// Anything the index reports as an occurrence is exactly what gets
// replaced, and nothing else. Returns the rewritten text and the number
// of replacements.
func replaceWholeWords(text, target, replacement string) (string, int) {
	var (
		out      []byte
		last     int
		replaced int
	)

	tokenizer := NewTokenizer(text)

	for {
		token, ok := tokenizer.Next()
		if !ok {
			break
		}

		if token.Word != target {
			continue
		}

		out = append(out, text[last:token.Start]...)
		out = append(out, replacement...)
		last = token.End
		replaced++
	}

	if replaced == 0 {
		return text, 0
	}

	out = append(out, text[last:]...)

	return string(out), replaced
}
