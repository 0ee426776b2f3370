package domain

import (
	"context"
	"sync"

	"emend.dev/pkg/emend/internal/adapter"
	m "emend.dev/pkg/emend/internal/model"
)

// Session owns the index for one open USFM directory. It is the only
// cross-operation shared state: the index is read by the presentation
// layer and replaced or patched only here, under a single-writer,
// multiple-reader discipline.
//
// Scans and corrections share the same on-disk files, so they serialize
// on the busy lock; a second long-running operation fails fast with
// ErrBusy instead of reading a file mid-rewrite.
type Session struct {
	fs       adapter.SourceFS
	progress ProgressFunc

	busy sync.Mutex // serializes scan and correction

	mu    sync.RWMutex // guards index
	index *m.Index
}

// NewSession constructs a session over the given filesystem. progress may
// be nil; when set it receives scan and correction progress events.
func NewSession(fs adapter.SourceFS, progress ProgressFunc) *Session {
	return &Session{fs: fs, progress: progress}
}

// Index returns the current index, or nil before the first scan. The
// returned snapshot stays valid until the next scan replaces it.
func (s *Session) Index() *m.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.index
}

// Scan builds a fresh index for root and installs it atomically. On any
// failure, cancellation included, the previous index remains in effect
// unchanged; a partial index is never visible.
func (s *Session) Scan(ctx context.Context, root m.Path, options ...BuilderOption) (*m.Index, error) {
	if !s.busy.TryLock() {
		return nil, m.ErrBusy
	}
	defer s.busy.Unlock()

	options = append(options, WithProgress(s.progress))

	index, err := NewIndexBuilder(s.fs, options...).Build(ctx, root)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()

	return index, nil
}

// Correct rewrites every occurrence of target with replacement and
// patches the index in place. The write lock is held for the duration so
// no reader ever iterates an entry mid-patch.
func (s *Session) Correct(ctx context.Context, target, replacement string) ([]m.CorrectionResult, error) {
	if !s.busy.TryLock() {
		return nil, m.ErrBusy
	}
	defer s.busy.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return nil, m.ErrNoIndex
	}

	return NewCorrector(s.fs, s.progress).Correct(ctx, s.index, target, replacement)
}

// Occurrences returns the recorded occurrences of word in scan order.
func (s *Session) Occurrences(word string) ([]m.Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return nil, m.ErrNoIndex
	}

	entry, ok := s.index.Lookup(word)
	if !ok {
		return nil, &m.WordNotFoundError{Word: word}
	}

	occs := make([]m.Occurrence, len(entry.Occurrences))
	copy(occs, entry.Occurrences)

	return occs, nil
}

// Frequencies projects the current index into the frequency view.
func (s *Session) Frequencies(filter string) []FrequencyRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Frequencies(s.index, filter)
}
