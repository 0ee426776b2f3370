package domain

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"emend.dev/pkg/emend/internal/adapter"
	m "emend.dev/pkg/emend/internal/model"
)

const defaultFileMode = 0o644

// Corrector applies a global spelling correction: every whole-word exact
// match of a target word is rewritten across every file that contains it.
// Each file transitions independently from original to corrected via an
// atomic rename, so a crash mid-batch leaves some files corrected and
// others untouched; the per-file result list surfaces exactly which.
type Corrector struct {
	fs       adapter.SourceFS
	progress ProgressFunc
}

// NewCorrector constructs a Corrector over the given filesystem. progress
// may be nil.
func NewCorrector(fs adapter.SourceFS, progress ProgressFunc) *Corrector {
	return &Corrector{fs: fs, progress: progress}
}

// Correct rewrites every occurrence of target with replacement and patches
// the index afterwards so its invariants hold. It fails up front with
// WordNotFoundError when target has no entry; after that point a failure
// on one file never aborts correction of the others.
func (c *Corrector) Correct(ctx context.Context, index *m.Index, target, replacement string) ([]m.CorrectionResult, error) {
	entry, ok := index.Lookup(target)
	if !ok {
		return nil, &m.WordNotFoundError{Word: target}
	}

	files := entry.Files()
	results := make([]m.CorrectionResult, 0, len(files))
	rewritten := make(map[m.Path]string, len(files))

	for i, file := range files {
		// Cancellation is honored between files only; an individual file
		// is always either fully replaced or left alone.
		if err := ctx.Err(); err != nil {
			results = append(results, m.CorrectionResult{File: file, Err: err})
			continue
		}

		result := c.correctFile(file, target, replacement, rewritten)
		results = append(results, result)

		if result.Err == nil && c.progress != nil {
			c.progress((i+1)*100/len(files), "Corrected "+filepath.Base(string(file)))
		}
	}

	patchIndex(index, rewritten)

	slog.Debug("correction complete",
		"word", target,
		"replacement", replacement,
		"files", len(files),
	)

	return results, nil
}

// correctFile re-reads one file from disk (never the cached context, so a
// second correction in the same session cannot compound stale state),
// replaces whole-word matches, and writes the result back atomically.
// Successfully processed content is recorded in rewritten for the index
// patch.
func (c *Corrector) correctFile(file m.Path, target, replacement string, rewritten map[m.Path]string) m.CorrectionResult {
	data, err := c.fs.ReadFile(file)
	if err != nil {
		return m.CorrectionResult{File: file, Err: &m.ReadError{File: file, Err: err}}
	}

	if !utf8.Valid(data) {
		return m.CorrectionResult{File: file, Err: &m.EncodingError{File: file}}
	}

	text, replaced := replaceWholeWords(string(data), target, replacement)
	if replaced == 0 {
		// File changed on disk since the scan; nothing matches anymore.
		rewritten[file] = text
		return m.CorrectionResult{File: file}
	}

	perm := c.fileMode(file)

	if err := c.fs.WriteFileAtomic(file, []byte(text), perm); err != nil {
		return m.CorrectionResult{File: file, Err: &m.WriteError{File: file, Err: err}}
	}

	rewritten[file] = text

	return m.CorrectionResult{File: file, Replaced: replaced}
}

func (c *Corrector) fileMode(file m.Path) os.FileMode {
	info, err := c.fs.Stat(file)
	if err != nil {
		return defaultFileMode
	}

	return info.Mode().Perm()
}

// FilePreview is the would-be outcome of a correction on one file,
// computed without writing anything.
type FilePreview struct {
	File     m.Path
	Before   string
	After    string
	Replaced int
	Err      error
}

// Preview computes what Correct would do, file by file, with no writes
// and no index update.
func (c *Corrector) Preview(index *m.Index, target, replacement string) ([]FilePreview, error) {
	entry, ok := index.Lookup(target)
	if !ok {
		return nil, &m.WordNotFoundError{Word: target}
	}

	files := entry.Files()
	previews := make([]FilePreview, 0, len(files))

	for _, file := range files {
		data, err := c.fs.ReadFile(file)
		if err != nil {
			previews = append(previews, FilePreview{File: file, Err: &m.ReadError{File: file, Err: err}})
			continue
		}

		before := string(data)
		after, replaced := replaceWholeWords(before, target, replacement)

		previews = append(previews, FilePreview{
			File:     file,
			Before:   before,
			After:    after,
			Replaced: replaced,
		})
	}

	return previews, nil
}

// patchIndex re-tokenizes the corrected files and splices their
// occurrences back into the index: every entry loses its occurrences in
// those files, gains the re-scanned ones, and keeps (file, offset) order.
// Entries left empty are dropped, so the index invariants hold without a
// full directory re-scan.
func patchIndex(index *m.Index, rewritten map[m.Path]string) {
	if len(rewritten) == 0 {
		return
	}

	touched := make(map[string]struct{})

	for word, entry := range index.Entries {
		kept := entry.Occurrences[:0]

		for _, occ := range entry.Occurrences {
			if _, ok := rewritten[occ.File]; ok {
				touched[word] = struct{}{}
				continue
			}

			kept = append(kept, occ)
		}

		entry.Occurrences = kept
	}

	for file, text := range rewritten {
		for _, wo := range tokenizeFile(file, text) {
			index.Add(wo.word, wo.occ)
			touched[wo.word] = struct{}{}
		}
	}

	for word := range touched {
		entry, ok := index.Entries[word]
		if !ok {
			continue
		}

		if len(entry.Occurrences) == 0 {
			delete(index.Entries, word)
			continue
		}

		occs := entry.Occurrences
		sort.Slice(occs, func(i, j int) bool {
			if occs[i].File != occs[j].File {
				return occs[i].File < occs[j].File
			}

			return occs[i].Offset < occs[j].Offset
		})
	}
}
