package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"emend.dev/pkg/emend/internal/controller"
	"emend.dev/pkg/emend/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [path]",
		Short: "Browse the word list interactively",
		Long: `Scan the directory and open an interactive browser: frequency-ranked
words on the left, occurrences of the selected word on the right.
Filter with /, correct the selected word with c.

Falls back to the plain frequency table when stdout is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := resolveRoot(argAt(args, 0))

			index, err := scanRoot(cmd.Context(), root)
			if err != nil {
				return err
			}

			if !controller.IsTTY(os.Stdout) {
				return ui.DisplayFrequencies(domain.Frequencies(index, ""), index.Warnings)
			}

			return controller.RunTUI(session, os.Stdout)
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
