package repo

import (
	"context"
	"fmt"
	"strings"
)

// BootstrapService guarantees the remote bare hub and the local working
// clone both exist and are linked before a run proceeds. When both are
// already present it performs no mutating operations.
type BootstrapService struct {
	store Store
}

type BootstrapResult struct {
	RemoteCreated bool
	LocalCloned   bool
}

func NewBootstrapService(store Store) *BootstrapService {
	return &BootstrapService{store: store}
}

func (s *BootstrapService) Bootstrap(ctx context.Context, remotePath, localPath string) (BootstrapResult, error) {
	remotePath = strings.TrimSpace(remotePath)
	if remotePath == "" {
		return BootstrapResult{}, ErrRemotePathRequired
	}
	localPath = strings.TrimSpace(localPath)
	if localPath == "" {
		return BootstrapResult{}, ErrLocalPathRequired
	}

	result := BootstrapResult{}

	remoteExists, err := s.store.Exists(ctx, remotePath)
	if err != nil {
		return result, fmt.Errorf("%w: check remote: %w", ErrBootstrapFailed, err)
	}
	if !remoteExists {
		if err := s.store.InitBare(ctx, remotePath); err != nil {
			return result, fmt.Errorf("%w: init remote: %w", ErrBootstrapFailed, err)
		}
		result.RemoteCreated = true
	}

	localExists, err := s.store.Exists(ctx, localPath)
	if err != nil {
		return result, fmt.Errorf("%w: check local: %w", ErrBootstrapFailed, err)
	}
	if !localExists {
		if err := s.store.Clone(ctx, remotePath, localPath); err != nil {
			return result, fmt.Errorf("%w: clone local: %w", ErrBootstrapFailed, err)
		}
		result.LocalCloned = true
	}

	return result, nil
}
