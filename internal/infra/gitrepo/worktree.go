package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/seqvault/seqvault/internal/domain"
)

const (
	commitAuthorName  = "seqvault"
	commitAuthorEmail = "seqvault@local"
)

// StageUntracked adds every untracked file in the working tree to the
// index and returns their paths. Stray untracked files are swept in
// deliberately: the backup commit captures the whole working tree.
func (s *Store) StageUntracked(ctx context.Context, repoPath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	worktree, err := openWorktree(repoPath)
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}

	var staged []string
	for file, fileStatus := range status {
		if fileStatus.Worktree != git.Untracked {
			continue
		}
		if _, err := worktree.Add(file); err != nil {
			return nil, fmt.Errorf("stage %s: %w", file, err)
		}
		staged = append(staged, file)
	}
	sort.Strings(staged)
	return staged, nil
}

// CommitAll commits staged and tracked changes. A clean tree yields
// domain.ErrNothingToCommit rather than an empty commit.
func (s *Store) CommitAll(ctx context.Context, repoPath, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	worktree, err := openWorktree(repoPath)
	if err != nil {
		return "", err
	}

	author := &object.Signature{
		Name:  commitAuthorName,
		Email: commitAuthorEmail,
		When:  time.Now().UTC(),
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{All: true, Author: author})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", domain.ErrNothingToCommit
		}
		return "", fmt.Errorf("commit changes: %w", err)
	}

	return hash.String(), nil
}

func openWorktree(repoPath string) (*git.Worktree, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open git repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	return worktree, nil
}
