package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

func (s *Store) Clone(ctx context.Context, url, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ensureClonePath(path); err != nil {
		return err
	}

	auth, err := authForURL(url)
	if err != nil {
		return err
	}

	_, err = git.PlainCloneContext(ctx, path, false, &git.CloneOptions{URL: url, Auth: auth})
	if err != nil {
		// A freshly bootstrapped hub has no commits yet; go-git refuses
		// to clone it, so initialize the working copy by hand instead.
		if errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return initFromEmptyRemote(url, path)
		}
		return fmt.Errorf("clone git repo: %w", err)
	}

	return nil
}

func initFromEmptyRemote(url, path string) error {
	repo, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})
	if err != nil {
		return fmt.Errorf("init local repo: %w", err)
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: defaultRemoteName,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("configure origin: %w", err)
	}
	return nil
}

func ensureClonePath(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("clone path already exists: %w", os.ErrExist)
		}
		return fmt.Errorf("clone path is a file: %w", os.ErrExist)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check clone path: %w", err)
	}

	parent := filepath.Dir(path)
	if parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}

	return nil
}
