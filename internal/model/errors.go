package model

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a scan or correction is requested while another
// one is already running against the same session.
var ErrBusy = errors.New("another scan or correction is in progress")

// ErrNoIndex is returned when an operation needs an index but no scan has
// completed yet.
var ErrNoIndex = errors.New("no index loaded; scan a directory first")

// ScanError reports that the scan root itself was missing or unreadable.
// It is fatal to the scan; any previously built index remains in effect.
type ScanError struct {
	Root Path
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// WordNotFoundError reports a correction requested for a word that has no
// entry in the index. No files are written.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word %q not found in index", e.Word)
}

// ReadError is a per-file read failure. The file is skipped and the
// surrounding multi-file operation continues.
type ReadError struct {
	File Path
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is a per-file rewrite failure during a correction. Other
// files in the batch are still corrected.
type WriteError struct {
	File Path
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.File, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// EncodingError marks a file that is not valid UTF-8. The file is excluded
// from the index and from corrections.
type EncodingError struct {
	File Path
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: not valid UTF-8", e.File)
}
