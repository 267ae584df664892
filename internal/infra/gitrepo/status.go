package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/seqvault/seqvault/internal/domain"
)

func (s *Store) LoadStatus(ctx context.Context, path string) (domain.RepoStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.RepoStatus{}, err
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return domain.RepoStatus{}, fmt.Errorf("open git repo: %w", err)
	}

	status := domain.RepoStatus{}

	worktree, err := repo.Worktree()
	if err != nil {
		if !errors.Is(err, git.ErrIsBareRepository) {
			return domain.RepoStatus{}, fmt.Errorf("open worktree: %w", err)
		}
		status.IsBare = true
	}

	ref, err := repo.Head()
	if err == nil {
		status.HasHead = true
		status.HeadHash = ref.Hash().String()
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) && !errors.Is(err, plumbing.ErrObjectNotFound) {
		return domain.RepoStatus{}, fmt.Errorf("read HEAD: %w", err)
	}

	if worktree != nil {
		wtStatus, err := worktree.Status()
		if err != nil {
			return domain.RepoStatus{}, fmt.Errorf("read worktree status: %w", err)
		}
		for file, fileStatus := range wtStatus {
			if fileStatus.Worktree == git.Untracked {
				status.Untracked = append(status.Untracked, file)
			}
		}
		sort.Strings(status.Untracked)
	}

	return status, nil
}
