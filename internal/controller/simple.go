package controller

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"emend.dev/pkg/emend/internal/domain"
	m "emend.dev/pkg/emend/internal/model"
)

// SimpleUI implements UI using the cobra Command's printer. It is the
// non-interactive output path used by scan, refs, and fix.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Progress logs progress events; the plain output path does not render a
// live progress display.
func (s *SimpleUI) Progress(percent int, message string) {
	slog.Debug("progress", "percent", percent, "message", message)
}

// DisplayFrequencies prints the frequency-ranked word table followed by
// any per-file scan warnings.
func (s *SimpleUI) DisplayFrequencies(rows []domain.FrequencyRow, warnings []m.Warning) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Word", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	total := 0

	for _, row := range rows {
		table.Append([]string{row.Word, strconv.Itoa(row.Count)})

		total += row.Count
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d words", len(rows)),
		strconv.Itoa(total),
	})

	table.Render()

	s.cmd.Printf("\n%s", buf.String())

	s.printWarnings(warnings)

	return nil
}

// DisplayOccurrences prints every occurrence of word with its location
// and context line.
func (s *SimpleUI) DisplayOccurrences(word string, occurrences []m.Occurrence) error {
	s.cmd.Printf("%s: %d occurrence(s)\n\n", word, len(occurrences))

	for _, occ := range occurrences {
		s.cmd.Printf("  %s:%d: %s\n", occ.File, occ.Line, occ.Context)
	}

	return nil
}

// DisplayCorrectionResults prints the per-file outcome of a correction.
func (s *SimpleUI) DisplayCorrectionResults(word, replacement string, results []m.CorrectionResult) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Replaced", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	totalReplaced := 0
	failures := 0

	for _, result := range results {
		status := "ok"
		if result.Err != nil {
			status = result.Err.Error()
			failures++
		}

		table.Append([]string{
			string(result.File),
			strconv.Itoa(result.Replaced),
			status,
		})

		totalReplaced += result.Replaced
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d file(s), %d failed", len(results), failures),
		strconv.Itoa(totalReplaced),
		"",
	})

	table.Render()

	s.cmd.Printf("\nCorrected %q -> %q\n%s", word, replacement, buf.String())

	return nil
}

func (s *SimpleUI) printWarnings(warnings []m.Warning) {
	if len(warnings) == 0 {
		return
	}

	s.cmd.PrintErrf("\n%d file(s) skipped:\n", len(warnings))

	for _, warning := range warnings {
		s.cmd.PrintErrf("  %v\n", warning.Err)
	}
}
