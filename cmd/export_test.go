package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.usfm", "the the lamp")

	output := filepath.Join(t.TempDir(), "word_list.csv")

	out, _, err := executeRoot(t, "export", dir, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, out, "Word list exported to")
	assert.Contains(t, out, "2 words")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Word,Count\nlamp,1\nthe,2\n", string(data))
}

func TestExportCmd_MissingDirectory(t *testing.T) {
	output := filepath.Join(t.TempDir(), "word_list.csv")

	_, _, err := executeRoot(t, "export", filepath.Join(t.TempDir(), "absent"), "-o", output)
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
