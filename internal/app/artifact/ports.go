package artifact

import (
	"context"

	"github.com/seqvault/seqvault/internal/domain"
)

type Definitions interface {
	GetDefinition(ctx context.Context, name string) (domain.Artifact, error)
}

type Lister interface {
	ListArtifacts(ctx context.Context) ([]string, error)
}

// Selector picks one artifact name from the console inventory. The CLI
// installs an interactive prompt; automation contexts install a
// first-match selector.
type Selector interface {
	SelectOne(ctx context.Context, candidates []string) (string, error)
}
