package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefsCmd_ListsOccurrences(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.usfm", "\\v 1 the word\n\\v 2 another word\n")
	writeFixture(t, dir, "b.usfm", "\\v 1 word again\n")

	out, _, err := executeRoot(t, "refs", "word", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "word: 3 occurrence(s)")
	assert.Contains(t, out, "a.usfm:1")
	assert.Contains(t, out, "a.usfm:2")
	assert.Contains(t, out, "b.usfm:1")
	assert.Contains(t, out, `\v 1 the word`)
}

func TestRefsCmd_UnknownWord(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.usfm", "word")

	_, _, err := executeRoot(t, "refs", "absent", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}
