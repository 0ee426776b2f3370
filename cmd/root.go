// Package cmd provides the root command and CLI setup for emend.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"emend.dev/pkg/emend/internal/adapter"
	"emend.dev/pkg/emend/internal/controller"
	"emend.dev/pkg/emend/internal/domain"
	m "emend.dev/pkg/emend/internal/model"
)

var fsAdapter adapter.SourceFS
var session *domain.Session
var ui controller.UI
var wordListStore adapter.WordListStore

// traceFlag enables verbose diagnostic logging of scan/correction progress.
var traceFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

// excludePatterns filters files out of scans (doublestar globs).
var excludePatterns []string

// parallelFlag sets the number of concurrent file readers for scans.
var parallelFlag int

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFS()
	session = domain.NewSession(fsAdapter, ui.Progress)
	wordListStore = adapter.NewCSVWordListStore()
}

const rootLongDescription = `Emend helps scripture translators fix spelling across a directory of
USFM text files: it builds a frequency-ranked word list, shows every
occurrence of a word in context, and applies a global whole-word
correction that rewrites the word everywhere it appears — then stages,
commits, and pushes the changed files.

The directory argument defaults to repo.dir from emend.yaml, then to
the current directory.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emend",
		Short: "USFM spelling correction tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, traceFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&traceFlag, traceFlagName, false, "enable verbose diagnostic logging")

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(scanParallelKey), "number of concurrent file readers")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), scanParallelKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// resolveRoot picks the scan root: explicit argument, then repo.dir from
// config, then the current directory.
func resolveRoot(arg string) m.Path {
	if arg != "" {
		return m.Path(arg)
	}

	if dir := viper.GetString(repoDirKey); dir != "" {
		return m.Path(dir)
	}

	return "."
}

// scanRoot runs a full scan of root through the shared session.
func scanRoot(ctx context.Context, root m.Path) (*m.Index, error) {
	return session.Scan(ctx, root,
		domain.WithExclude(viper.GetStringSlice(excludeConfigKey)),
		domain.WithWorkers(viper.GetInt(scanParallelKey)),
	)
}
