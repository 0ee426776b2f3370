package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"emend.dev/pkg/emend/internal/adapter"
	m "emend.dev/pkg/emend/internal/model"
)

var pushNameFlag string
var pushEmailFlag string
var pushUserFlag string
var pushRemoteFlag string
var pushMessageFlag string

// pushCmd represents the push command.
var pushCmd = newPushCmd()

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [path]",
		Short: "Stage, commit, and push corrected USFM files",
		Long: `Stage every changed USFM file in the repository, commit with the
configured author, and push to the remote.

The remote password is read from ` + envPrefix + `_GIT_PASSWORD and is never
written to disk. Transport and auth errors from the remote are reported
as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := resolveRoot(argAt(args, 0))

			return pushChanges(cmd, root)
		},
	}

	cmd.Flags().StringVar(&pushNameFlag, "name", viper.GetString(userNameKey), "author name for the commit")
	bindFlagToConfig(cmd.Flags().Lookup("name"), userNameKey)

	cmd.Flags().StringVar(&pushEmailFlag, "email", viper.GetString(userEmailKey), "author email for the commit")
	bindFlagToConfig(cmd.Flags().Lookup("email"), userEmailKey)

	cmd.Flags().StringVar(&pushUserFlag, "user", viper.GetString(gitUserKey), "remote account user id")
	bindFlagToConfig(cmd.Flags().Lookup("user"), gitUserKey)

	cmd.Flags().StringVar(&pushRemoteFlag, "remote", viper.GetString(gitRemoteKey), "git remote to push to")
	bindFlagToConfig(cmd.Flags().Lookup("remote"), gitRemoteKey)

	cmd.Flags().StringVarP(&pushMessageFlag, "message", "m", viper.GetString(gitMessageKey), "commit message")
	bindFlagToConfig(cmd.Flags().Lookup("message"), gitMessageKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func pushChanges(cmd *cobra.Command, root m.Path) error {
	name := viper.GetString(userNameKey)
	email := viper.GetString(userEmailKey)

	if name == "" || email == "" {
		return errors.New("author name and email required: set user.name and user.email in emend.yaml or pass --name/--email")
	}

	repo, err := adapter.OpenGitRepository(root)
	if err != nil {
		return err
	}

	changed, err := repo.ChangedFiles()
	if err != nil {
		return err
	}

	usfm := filterUSFM(changed)
	if len(usfm) == 0 {
		cmd.Println("No changed USFM files to push.")
		return nil
	}

	cmd.Printf("Staging %d file(s)...\n", len(usfm))

	if err := repo.Stage(usfm); err != nil {
		return err
	}

	hash, err := repo.Commit(viper.GetString(gitMessageKey), name, email)
	if err != nil {
		return err
	}

	cmd.Printf("Committed %s\n", hash[:8])

	remote := viper.GetString(gitRemoteKey)

	err = repo.Push(cmd.Context(), remote, viper.GetString(gitUserKey), viper.GetString(gitPasswordKey))
	if err != nil {
		return fmt.Errorf("push to %s: %w", remote, err)
	}

	cmd.Printf("Pushed to %s.\n", remote)

	return nil
}

func filterUSFM(paths []m.Path) []m.Path {
	var usfm []m.Path

	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(string(path)), ".usfm") {
			usfm = append(usfm, path)
		}
	}

	return usfm
}
