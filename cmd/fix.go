package cmd

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"emend.dev/pkg/emend/internal/domain"
)

var fixDryRunFlag bool
var fixDiffFlag bool

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix <word> <replacement> [path]",
		Short: "Replace a word everywhere it occurs",
		Long: `Apply a global spelling correction: every whole-word exact match of
<word> is replaced with <replacement> in every USFM file that contains
it. Files are rewritten atomically; a failure on one file never aborts
correction of the others.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, replacement := args[0], args[1]
			root := resolveRoot(argAt(args, 2))

			if _, err := scanRoot(cmd.Context(), root); err != nil {
				return err
			}

			if fixDryRunFlag || fixDiffFlag {
				return previewFix(cmd, word, replacement)
			}

			results, err := session.Correct(cmd.Context(), word, replacement)
			if err != nil {
				return err
			}

			if err := ui.DisplayCorrectionResults(word, replacement, results); err != nil {
				return err
			}

			failures := 0
			for _, result := range results {
				if result.Err != nil {
					failures++
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d file(s) could not be corrected", failures)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&fixDryRunFlag, "dry-run", "n", false, "report what would change without writing")
	cmd.Flags().BoolVar(&fixDiffFlag, "diff", false, "print a unified diff of each file instead of writing")

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

// previewFix prints the would-be changes without touching any file.
func previewFix(cmd *cobra.Command, word, replacement string) error {
	previews, err := domain.NewCorrector(fsAdapter, nil).Preview(session.Index(), word, replacement)
	if err != nil {
		return err
	}

	total := 0

	for _, preview := range previews {
		if preview.Err != nil {
			cmd.PrintErrf("%s: %v\n", preview.File, preview.Err)
			continue
		}

		total += preview.Replaced

		if !fixDiffFlag {
			cmd.Printf("%s: %d replacement(s)\n", preview.File, preview.Replaced)
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(preview.Before),
			B:        difflib.SplitLines(preview.After),
			FromFile: string(preview.File),
			ToFile:   string(preview.File) + " (corrected)",
			Context:  2,
		})
		if err != nil {
			return err
		}

		cmd.Print(diff)
	}

	cmd.Printf("\nWould replace %d occurrence(s) of %q with %q in %d file(s). No files written.\n",
		total, word, replacement, len(previews))

	return nil
}
