package domain

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"emend.dev/pkg/emend/internal/adapter"
	m "emend.dev/pkg/emend/internal/model"
)

// ProgressFunc receives progress events from long-running operations so
// the presentation layer can display or log them.
type ProgressFunc func(percent int, message string)

const (
	defaultScanWorkers = 4

	// maxContextBytes bounds the context window captured per occurrence.
	maxContextBytes = 120

	usfmExt = ".usfm"
)

// IndexBuilder walks a directory tree of USFM files and builds a
// word-to-occurrence index. Files are read concurrently but merged in
// lexicographic path order, so the resulting occurrence order is
// deterministic: directory order first, in-file offset order second.
type IndexBuilder struct {
	fs       adapter.SourceFS
	exclude  []string
	workers  int
	progress ProgressFunc
}

// BuilderOption configures an IndexBuilder.
type BuilderOption func(*IndexBuilder)

// WithExclude skips files whose root-relative path matches any of the
// given doublestar glob patterns (e.g. "**/99-*.usfm").
func WithExclude(patterns []string) BuilderOption {
	return func(b *IndexBuilder) {
		b.exclude = patterns
	}
}

// WithWorkers sets the number of concurrent file readers.
func WithWorkers(n int) BuilderOption {
	return func(b *IndexBuilder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithProgress subscribes fn to per-file progress events.
func WithProgress(fn ProgressFunc) BuilderOption {
	return func(b *IndexBuilder) {
		b.progress = fn
	}
}

// NewIndexBuilder constructs an IndexBuilder over the given filesystem.
func NewIndexBuilder(fs adapter.SourceFS, options ...BuilderOption) *IndexBuilder {
	builder := &IndexBuilder{
		fs:      fs,
		workers: defaultScanWorkers,
	}

	for _, option := range options {
		option(builder)
	}

	return builder
}

// fileScan is the outcome of tokenizing one file.
type fileScan struct {
	path m.Path
	occs []wordOccurrence
	warn *m.Warning
}

type wordOccurrence struct {
	word string
	occ  m.Occurrence
}

// Build scans root and returns a fresh index, or a ScanError when root is
// missing or not a directory. Per-file read and decode failures become
// warnings on the index; they never abort the scan. A cancelled context
// aborts the whole build with the context's error and no index.
func (b *IndexBuilder) Build(ctx context.Context, root m.Path) (*m.Index, error) {
	info, err := b.fs.Stat(root)
	if err != nil {
		return nil, &m.ScanError{Root: root, Err: err}
	}

	if !info.IsDir() {
		return nil, &m.ScanError{Root: root, Err: errors.New("not a directory")}
	}

	files, walkWarnings, err := b.collectFiles(root)
	if err != nil {
		return nil, &m.ScanError{Root: root, Err: err}
	}

	scans := make([]*fileScan, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)

	for i, path := range files {
		i, path := i, path

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			scans[i] = b.scanFile(path)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	index := m.NewIndex(root)
	index.Warnings = walkWarnings

	for i, scan := range scans {
		if scan.warn != nil {
			index.Warnings = append(index.Warnings, *scan.warn)
			continue
		}

		index.Files = append(index.Files, scan.path)

		for _, wo := range scan.occs {
			index.Add(wo.word, wo.occ)
		}

		b.report((i+1)*100/len(scans), "Indexed "+filepath.Base(string(scan.path)))
	}

	slog.Debug("scan complete",
		"root", root,
		"files", len(index.Files),
		"words", len(index.Entries),
		"warnings", len(index.Warnings),
	)

	return index, nil
}

// collectFiles enumerates USFM files under root in lexicographic path
// order. Walk errors below the root are demoted to per-file warnings.
func (b *IndexBuilder) collectFiles(root m.Path) ([]m.Path, []m.Warning, error) {
	var (
		files    []m.Path
		warnings []m.Warning
	)

	err := b.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == string(root) {
				return err
			}

			warnings = append(warnings, m.Warning{
				File: m.Path(path),
				Err:  &m.ReadError{File: m.Path(path), Err: err},
			})

			return nil
		}

		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), usfmExt) {
			return nil
		}

		if b.excluded(root, m.Path(path)) {
			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, warnings, nil
}

// excluded reports whether the root-relative path matches an exclude glob.
func (b *IndexBuilder) excluded(root, path m.Path) bool {
	if len(b.exclude) == 0 {
		return false
	}

	rel, err := b.fs.RelPath(root, path)
	if err != nil {
		rel = path
	}

	slashed := filepath.ToSlash(string(rel))

	for _, pattern := range b.exclude {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}

	return false
}

// scanFile reads and tokenizes one file. Failures are returned as a
// warning rather than an error so one bad file never aborts the scan.
func (b *IndexBuilder) scanFile(path m.Path) *fileScan {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return &fileScan{
			path: path,
			warn: &m.Warning{File: path, Err: &m.ReadError{File: path, Err: err}},
		}
	}

	if !utf8.Valid(data) {
		return &fileScan{
			path: path,
			warn: &m.Warning{File: path, Err: &m.EncodingError{File: path}},
		}
	}

	text := string(data)

	return &fileScan{
		path: path,
		occs: tokenizeFile(path, text),
	}
}

// tokenizeFile produces the occurrences for one file in offset order.
func tokenizeFile(path m.Path, text string) []wordOccurrence {
	var occs []wordOccurrence

	lines := newLineTable(text)
	tokenizer := NewTokenizer(text)

	for {
		token, ok := tokenizer.Next()
		if !ok {
			return occs
		}

		line := lines.lineFor(token.Start)

		occs = append(occs, wordOccurrence{
			word: token.Word,
			occ: m.Occurrence{
				File:    path,
				Offset:  token.Start,
				Line:    line,
				Context: lines.contextFor(text, token, line),
			},
		})
	}
}

func (b *IndexBuilder) report(percent int, message string) {
	if b.progress != nil {
		b.progress(percent, message)
	}
}

// lineTable maps byte offsets to 1-based line numbers.
type lineTable struct {
	starts []int // byte offset of each line start
	length int
}

func newLineTable(text string) *lineTable {
	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &lineTable{starts: starts, length: len(text)}
}

func (lt *lineTable) lineFor(offset int) int {
	// First line whose start is past the offset; the offset's line is the
	// one before it.
	n := sort.Search(len(lt.starts), func(i int) bool { return lt.starts[i] > offset })

	return n
}

// contextFor returns the line containing the token, clipped around the
// token when the line exceeds maxContextBytes. Display only;
// it may go stale after a correction until the next re-index.
func (lt *lineTable) contextFor(text string, token Token, line int) string {
	start := lt.starts[line-1]

	end := lt.length
	if line < len(lt.starts) {
		end = lt.starts[line] - 1
	}

	lineText := strings.TrimRight(text[start:end], "\r")
	if len(lineText) <= maxContextBytes {
		return lineText
	}

	lineEnd := start + len(lineText)
	margin := (maxContextBytes - (token.End - token.Start)) / 2

	if margin < 0 {
		margin = 0
	}

	clipStart := token.Start - margin
	if clipStart < start {
		clipStart = start
	}

	clipEnd := token.End + margin
	if clipEnd > lineEnd {
		clipEnd = lineEnd
	}

	// Snap to rune boundaries.
	for clipStart > start && !utf8.RuneStart(text[clipStart]) {
		clipStart--
	}

	for clipEnd < lineEnd && !utf8.RuneStart(text[clipEnd]) {
		clipEnd++
	}

	return text[clipStart:clipEnd]
}
