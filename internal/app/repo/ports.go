package repo

import (
	"context"

	"github.com/seqvault/seqvault/internal/domain"
)

type Store interface {
	Exists(ctx context.Context, path string) (bool, error)
	InitBare(ctx context.Context, path string) error
	Clone(ctx context.Context, url, path string) error
}

type StatusStore interface {
	LoadStatus(ctx context.Context, path string) (domain.RepoStatus, error)
}
