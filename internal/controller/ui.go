// Package controller provides output adapters for displaying word
// frequencies, occurrences, and correction results.
package controller

import (
	"os"

	"golang.org/x/term"

	"emend.dev/pkg/emend/internal/domain"
	m "emend.dev/pkg/emend/internal/model"
)

// UI defines the interface for presenting scan and correction output.
// Implementations can use different output methods (plain tables, TUI).
type UI interface {
	// Progress receives progress events from scans and corrections; the
	// implementation decides whether to display or log them.
	Progress(percent int, message string)

	DisplayFrequencies(rows []domain.FrequencyRow, warnings []m.Warning) error
	DisplayOccurrences(word string, occurrences []m.Occurrence) error
	DisplayCorrectionResults(word, replacement string, results []m.CorrectionResult) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
