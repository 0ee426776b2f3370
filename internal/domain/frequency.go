package domain

import (
	"sort"
	"strings"

	m "emend.dev/pkg/emend/internal/model"
)

// FrequencyRow is one row of the word-frequency view: a distinct word and
// its occurrence count.
type FrequencyRow struct {
	Word  string
	Count int
}

// Frequencies derives the frequency view from an index: rows sorted by
// count descending, ties broken by word ascending. A non-empty filter
// keeps only words containing it, case-insensitively (the filter is a
// display affordance; matching in the index itself stays exact-case).
// Read-only projection; no independent state.
func Frequencies(index *m.Index, filter string) []FrequencyRow {
	if index == nil {
		return nil
	}

	needle := strings.ToLower(filter)

	rows := make([]FrequencyRow, 0, len(index.Entries))

	for word, entry := range index.Entries {
		if needle != "" && !strings.Contains(strings.ToLower(word), needle) {
			continue
		}

		rows = append(rows, FrequencyRow{Word: word, Count: entry.Count()})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}

		return rows[i].Word < rows[j].Word
	})

	return rows
}

// TotalOccurrences sums the occurrence counts of every entry.
func TotalOccurrences(index *m.Index) int {
	if index == nil {
		return 0
	}

	total := 0
	for _, entry := range index.Entries {
		total += entry.Count()
	}

	return total
}
