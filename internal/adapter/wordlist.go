package adapter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"emend.dev/pkg/emend/internal/model"
	"emend.dev/pkg/emend/pkg"
)

// WordListStore persists the word list of an index for use outside the
// tool (review spreadsheets, hand-off to consultants).
type WordListStore interface {
	Export(index *model.Index, path model.Path) error
}

// CSVWordListStore writes the word list as CSV: a Word,Count header, then
// one row per distinct word in ascending word order.
type CSVWordListStore struct{}

// NewCSVWordListStore constructs a CSVWordListStore.
func NewCSVWordListStore() *CSVWordListStore {
	return &CSVWordListStore{}
}

// Export writes the word list to path atomically.
func (s *CSVWordListStore) Export(index *model.Index, path model.Path) error {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Word", "Count"}); err != nil {
		return err
	}

	for _, word := range index.Words() {
		entry := index.Entries[word]
		if err := writer.Write([]string{word, strconv.Itoa(entry.Count())}); err != nil {
			return err
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return err
	}

	if err := pkg.WriteFileAtomic(string(path), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export word list: %w", err)
	}

	return nil
}
