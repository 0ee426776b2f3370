package adapter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	m "emend.dev/pkg/emend/internal/model"
)

// Repository abstracts the version-control operations the correction
// workflow needs: list changed files, stage, commit, push. Transport and
// auth errors are surfaced verbatim to the caller; nothing here
// interprets them.
type Repository interface {
	// ChangedFiles returns worktree-relative paths of files that differ
	// from HEAD, including untracked files.
	ChangedFiles() ([]m.Path, error)

	// Stage adds the given worktree-relative paths to the git index.
	Stage(paths []m.Path) error

	// Commit records the staged changes and returns the commit hash.
	Commit(message, name, email string) (string, error)

	// Push publishes the current branch to the named remote using HTTP
	// basic-auth credentials. Credentials are used for this call only and
	// never stored.
	Push(ctx context.Context, remote, username, password string) error
}

// GitRepository implements Repository over a local git worktree.
type GitRepository struct {
	repo *git.Repository
}

// OpenGitRepository opens the repository containing root, searching
// parent directories for the .git directory the way the git CLI does.
func OpenGitRepository(root m.Path) (*GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(string(root), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", root, err)
	}

	return &GitRepository{repo: repo}, nil
}

// ChangedFiles lists modified and untracked files, sorted for
// deterministic staging order.
func (r *GitRepository) ChangedFiles() ([]m.Path, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	var changed []m.Path

	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified {
			continue
		}

		changed = append(changed, m.Path(path))
	}

	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

	return changed, nil
}

// Stage adds each path to the git index.
func (r *GitRepository) Stage(paths []m.Path) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if _, err := worktree.Add(filepath.ToSlash(string(path))); err != nil {
			return fmt.Errorf("stage %s: %w", path, err)
		}
	}

	return nil
}

// Commit records the staged changes with the given author.
func (r *GitRepository) Commit(message, name, email string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", err
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  strings.TrimSpace(name),
			Email: strings.TrimSpace(email),
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return hash.String(), nil
}

// Push publishes the current branch. An already-up-to-date remote is not
// an error.
func (r *GitRepository) Push(ctx context.Context, remote, username, password string) error {
	options := &git.PushOptions{RemoteName: remote}

	if username != "" {
		options.Auth = &githttp.BasicAuth{Username: username, Password: password}
	}

	err := r.repo.PushContext(ctx, options)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}

	return err
}
