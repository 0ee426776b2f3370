package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend.dev/pkg/emend/internal/model"
)

func TestCSVWordListStore_Export(t *testing.T) {
	index := model.NewIndex(".")
	index.Add("the", model.Occurrence{File: "a.usfm", Offset: 0})
	index.Add("the", model.Occurrence{File: "a.usfm", Offset: 10})
	index.Add("The", model.Occurrence{File: "a.usfm", Offset: 20})
	index.Add("lamp", model.Occurrence{File: "b.usfm", Offset: 0})

	path := filepath.Join(t.TempDir(), "word_list.csv")

	store := NewCSVWordListStore()
	require.NoError(t, store.Export(index, model.Path(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Word,Count\nThe,1\nlamp,1\nthe,2\n", string(data))
}

func TestCSVWordListStore_ExportEmptyIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "word_list.csv")

	store := NewCSVWordListStore()
	require.NoError(t, store.Export(model.NewIndex("."), model.Path(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Word,Count\n", string(data))
}

func TestCSVWordListStore_QuotesAwkwardWords(t *testing.T) {
	index := model.NewIndex(".")
	index.Add("a,b", model.Occurrence{File: "a.usfm"})

	path := filepath.Join(t.TempDir(), "word_list.csv")

	store := NewCSVWordListStore()
	require.NoError(t, store.Export(index, model.Path(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Word,Count\n\"a,b\",1\n", string(data))
}
