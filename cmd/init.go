package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default emend.yaml configuration file",
		Long: `Create an emend.yaml in the current working directory populated with the
current defaults so it can be edited manually. The git password is
deliberately absent: it is only ever read from the environment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if _, err := os.Stat(targetPath); err == nil {
				return fmt.Errorf("config file %s already exists", targetPath)
			}

			data, err := yaml.Marshal(defaultConfig())
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			if err := os.WriteFile(targetPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// defaultConfig snapshots the persistable settings with their current
// values. Keys mirror the viper key scheme.
func defaultConfig() map[string]any {
	return map[string]any{
		"version": currentConfigVersion,
		"repo": map[string]any{
			"dir": viper.GetString(repoDirKey),
		},
		"scan": map[string]any{
			"exclude":  viper.GetStringSlice(excludeConfigKey),
			"parallel": viper.GetInt(scanParallelKey),
		},
		"user": map[string]any{
			"name":  viper.GetString(userNameKey),
			"email": viper.GetString(userEmailKey),
		},
		"git": map[string]any{
			"user":    viper.GetString(gitUserKey),
			"remote":  viper.GetString(gitRemoteKey),
			"message": viper.GetString(gitMessageKey),
		},
		"export": map[string]any{
			"output": viper.GetString(exportOutputKey),
		},
		"log": map[string]any{
			"filename":    viper.GetString(logFilenameKey),
			"max_size":    viper.GetInt(logMaxSizeKey),
			"max_backups": viper.GetInt(logMaxBackupsKey),
			"max_age":     viper.GetInt(logMaxAgeKey),
			"compress":    viper.GetBool(logCompressKey),
		},
	}
}
