package backup

import (
	"context"
	"time"

	"github.com/seqvault/seqvault/internal/app/repo"
	"github.com/seqvault/seqvault/internal/domain"
)

type Bootstrapper interface {
	Bootstrap(ctx context.Context, remotePath, localPath string) (repo.BootstrapResult, error)
}

type Fetcher interface {
	Resolve(ctx context.Context, name string) (string, error)
	Fetch(ctx context.Context, name string) (domain.Artifact, error)
}

type Canonicalizer interface {
	Canonicalize(ctx context.Context, format domain.DefinitionFormat, input []byte) ([]byte, error)
	Pretty(ctx context.Context, format domain.DefinitionFormat, input []byte) ([]byte, error)
}

type Hasher interface {
	SumHex(data []byte) string
}

type Workspace interface {
	ReadSnapshot(ctx context.Context, path string) ([]byte, bool, error)
	WriteSnapshot(ctx context.Context, path string, data []byte) error
	EnsureDir(ctx context.Context, path string) error
}

type Exporter interface {
	ExportArtifact(ctx context.Context, name string) (domain.ExportBundle, error)
}

type Archiver interface {
	WriteArchive(ctx context.Context, path string, bundle domain.ExportBundle) error
}

type Publisher interface {
	StageUntracked(ctx context.Context, repoPath string) ([]string, error)
	CommitAll(ctx context.Context, repoPath, message string) (string, error)
	Push(ctx context.Context, repoPath string) error
}

type Journal interface {
	Append(ctx context.Context, rec domain.RunRecord) error
}

type Differ interface {
	MergeDiff(ctx context.Context, before, after []byte) ([]byte, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() (string, error)
}
