// Package model defines the data structures for USFM word indexing and correction.
package model

import "sort"

// Path represents a file system path.
type Path string

// Occurrence is one located instance of a word in one file.
type Occurrence struct {
	File    Path
	Offset  int    // byte offset of the first letter of the word
	Line    int    // 1-based line number, for display
	Context string // surrounding line text captured at index time; display only
}

// WordEntry collects every occurrence of one distinct word.
//
// Matching is exact-case: "The" and "the" are separate entries, since
// scripture text is case-sensitive.
type WordEntry struct {
	Word        string
	Occurrences []Occurrence
}

// Count returns the number of recorded occurrences.
func (e *WordEntry) Count() int {
	return len(e.Occurrences)
}

// Files returns the distinct files containing the word, in occurrence order.
func (e *WordEntry) Files() []Path {
	var files []Path

	seen := make(map[Path]struct{})

	for _, occ := range e.Occurrences {
		if _, ok := seen[occ.File]; ok {
			continue
		}

		seen[occ.File] = struct{}{}
		files = append(files, occ.File)
	}

	return files
}

// Index maps each distinct word to its entry. It is a snapshot of the
// on-disk content at the moment the scan completed; external modification
// of the files invalidates it until the next rebuild.
//
// Invariant: a word has an entry if and only if its occurrence list is
// non-empty, and every occurrence list is ordered by (file, offset).
type Index struct {
	Root     Path
	Entries  map[string]*WordEntry
	Files    []Path // scanned files in traversal order (lexicographic)
	Warnings []Warning
}

// NewIndex returns an empty index rooted at root.
func NewIndex(root Path) *Index {
	return &Index{
		Root:    root,
		Entries: make(map[string]*WordEntry),
	}
}

// Lookup returns the entry for word, if any.
func (ix *Index) Lookup(word string) (*WordEntry, bool) {
	entry, ok := ix.Entries[word]
	return entry, ok
}

// Words returns all distinct words in ascending order.
func (ix *Index) Words() []string {
	words := make([]string, 0, len(ix.Entries))
	for word := range ix.Entries {
		words = append(words, word)
	}

	sort.Strings(words)

	return words
}

// Add appends an occurrence for word, creating the entry when needed.
// Callers must append in (file, offset) order to preserve the ordering
// invariant.
func (ix *Index) Add(word string, occ Occurrence) {
	entry, ok := ix.Entries[word]
	if !ok {
		entry = &WordEntry{Word: word}
		ix.Entries[word] = entry
	}

	entry.Occurrences = append(entry.Occurrences, occ)
}

// Warning records a per-file problem encountered during a scan. The file
// is excluded from the index but the scan as a whole still succeeds.
type Warning struct {
	File Path
	Err  error
}

// CorrectionResult is the per-file outcome of a correction operation.
type CorrectionResult struct {
	File     Path
	Replaced int
	Err      error
}
