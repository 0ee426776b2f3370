package domain

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emend.dev/pkg/emend/internal/adapter"
	m "emend.dev/pkg/emend/internal/model"
)

func newTestSession(progress ProgressFunc) *Session {
	return NewSession(adapter.NewLocalSourceFS(), progress)
}

func TestSession_ScanInstallsIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.usfm", "word word")

	session := newTestSession(nil)
	assert.Nil(t, session.Index())

	index, err := session.Scan(context.Background(), m.Path(dir))
	require.NoError(t, err)
	require.NotNil(t, index)

	assert.Same(t, index, session.Index())

	entry, ok := session.Index().Lookup("word")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Count())
}

func TestSession_FailedScanKeepsPreviousIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.usfm", "word")

	session := newTestSession(nil)

	first, err := session.Scan(context.Background(), m.Path(dir))
	require.NoError(t, err)

	_, err = session.Scan(context.Background(), m.Path(dir+"/absent"))

	var scanErr *m.ScanError
	require.ErrorAs(t, err, &scanErr)

	assert.Same(t, first, session.Index())
}

func TestSession_ScanWhileBusyFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.usfm", "word")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	var once bool

	session := newTestSession(func(int, string) {
		if !once {
			once = true
			close(started)
			<-release
		}
	})

	go func() {
		defer close(done)

		_, err := session.Scan(context.Background(), m.Path(dir))
		assert.NoError(t, err)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("scan never reported progress")
	}

	_, err := session.Scan(context.Background(), m.Path(dir))
	assert.ErrorIs(t, err, m.ErrBusy)

	_, err = session.Correct(context.Background(), "word", "term")
	assert.ErrorIs(t, err, m.ErrBusy)

	close(release)
	<-done
}

func TestSession_CorrectRequiresIndex(t *testing.T) {
	session := newTestSession(nil)

	_, err := session.Correct(context.Background(), "word", "term")
	assert.ErrorIs(t, err, m.ErrNoIndex)
}

func TestSession_CorrectPatchesSharedIndex(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.usfm", "teh word")

	session := newTestSession(nil)

	_, err := session.Scan(context.Background(), m.Path(dir))
	require.NoError(t, err)

	results, err := session.Correct(context.Background(), "teh", "the")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Replaced)

	data, err := os.ReadFile(string(file))
	require.NoError(t, err)
	assert.Equal(t, "the word", string(data))

	_, ok := session.Index().Lookup("teh")
	assert.False(t, ok)

	occs, err := session.Occurrences("the")
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, 0, occs[0].Offset)
}

func TestSession_Occurrences(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.usfm", "word other word")

	session := newTestSession(nil)

	_, err := session.Occurrences("word")
	assert.ErrorIs(t, err, m.ErrNoIndex)

	_, err = session.Scan(context.Background(), m.Path(dir))
	require.NoError(t, err)

	occs, err := session.Occurrences("word")
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, 0, occs[0].Offset)
	assert.Equal(t, 11, occs[1].Offset)

	_, err = session.Occurrences("absent")

	var notFound *m.WordNotFoundError
	require.ErrorAs(t, err, &notFound)

	// The returned slice is a copy; mutating it never corrupts the index.
	occs[0].Offset = 999

	fresh, err := session.Occurrences("word")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh[0].Offset)
}

func TestSession_Frequencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.usfm", "the the lamp")

	session := newTestSession(nil)

	assert.Nil(t, session.Frequencies(""))

	_, err := session.Scan(context.Background(), m.Path(dir))
	require.NoError(t, err)

	rows := session.Frequencies("")
	assert.Equal(t, []FrequencyRow{
		{Word: "the", Count: 2},
		{Word: "lamp", Count: 1},
	}, rows)

	assert.Equal(t, []FrequencyRow{{Word: "lamp", Count: 1}}, session.Frequencies("LA"))
}
