package cmd

import (
	"github.com/spf13/cobra"
)

// refsCmd represents the refs command.
var refsCmd = newRefsCmd()

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <word> [path]",
		Short: "Show every occurrence of a word in context",
		Long: `Scan the directory and print every occurrence of the given word with its
file, line number, and surrounding text. Matching is exact-case and
whole-word.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			root := resolveRoot(argAt(args, 1))

			if _, err := scanRoot(cmd.Context(), root); err != nil {
				return err
			}

			occurrences, err := session.Occurrences(word)
			if err != nil {
				return err
			}

			return ui.DisplayOccurrences(word, occurrences)
		},
	}
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
