package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const defaultRemoteName = "origin"

// Store implements the repository ports on top of go-git. The remote is a
// bare hub; the local side is a real working clone.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Exists reports whether path holds a git repository (bare or not).
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := git.PlainOpen(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, nil
	}
	return false, fmt.Errorf("open git repo: %w", err)
}

func (s *Store) InitBare(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create remote dir: %w", err)
	}

	_, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
		Bare:        true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return fmt.Errorf("repository already exists: %w", err)
		}
		return fmt.Errorf("init bare repo: %w", err)
	}

	return nil
}
