package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCmd_PrintsFrequencyTable(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "file1.usfm", `\v 1 The the them theme.`)
	writeFixture(t, dir, "file2.usfm", `\v 1 Nothing here.`)

	out, errOut, err := executeRoot(t, "scan", dir)
	require.NoError(t, err)

	for _, word := range []string{"The", "the", "them", "theme", "Nothing", "here"} {
		assert.Contains(t, out, word)
	}

	assert.Contains(t, strings.ToLower(out), "6 words")
	assert.Empty(t, errOut)
}

func TestScanCmd_ReportsSkippedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "good.usfm", "fine")
	writeFixture(t, dir, "bad.usfm", string([]byte{0xff, 0xfe, 'a'}))

	out, errOut, err := executeRoot(t, "scan", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "fine")
	assert.Contains(t, errOut, "1 file(s) skipped")
	assert.Contains(t, errOut, "bad.usfm")
}

func TestScanCmd_MissingDirectory(t *testing.T) {
	_, _, err := executeRoot(t, "scan", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestScanCmd_ExcludeFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup(excludeFlagName)
	t.Cleanup(func() {
		require.NoError(t, flag.Value.(pflag.SliceValue).Replace(nil))
		flag.Changed = false
	})

	dir := t.TempDir()
	writeFixture(t, dir, "01-GEN.usfm", "kept")
	writeFixture(t, dir, "99-XXA.usfm", "dropped")

	out, _, err := executeRoot(t, "scan", dir, "-x", "99-*.usfm")
	require.NoError(t, err)

	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "dropped")
}
