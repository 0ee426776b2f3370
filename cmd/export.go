package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "emend.dev/pkg/emend/internal/model"
)

var exportOutputFlag string

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export the word list as CSV",
		Long:  "Scan the directory and write the word list (Word,Count) as a CSV file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := resolveRoot(argAt(args, 0))

			index, err := scanRoot(cmd.Context(), root)
			if err != nil {
				return err
			}

			output := m.Path(viper.GetString(exportOutputKey))

			if err := wordListStore.Export(index, output); err != nil {
				return err
			}

			cmd.Printf("Word list exported to %s (%d words)\n", output, len(index.Entries))

			return nil
		},
	}

	cmd.Flags().StringVarP(&exportOutputFlag, "output", "o", viper.GetString(exportOutputKey), "output file for the word list")
	bindFlagToConfig(cmd.Flags().Lookup("output"), exportOutputKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
