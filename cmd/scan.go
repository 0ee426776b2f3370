package cmd

import (
	"github.com/spf13/cobra"

	"emend.dev/pkg/emend/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a USFM directory and list word frequencies",
		Long: `Walk the directory tree, index every word in the USFM files, and print
the frequency-ranked word list. Files that cannot be read or decoded are
reported as warnings and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := resolveRoot(argAt(args, 0))

			index, err := scanRoot(cmd.Context(), root)
			if err != nil {
				return err
			}

			return ui.DisplayFrequencies(domain.Frequencies(index, ""), index.Warnings)
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// argAt returns args[i] or "" when the optional argument is absent.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}

	return ""
}
