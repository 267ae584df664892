package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seqvault/seqvault/internal/domain"
)

type FetchService struct {
	definitions Definitions
	lister      Lister
	selector    Selector
}

func NewFetchService(definitions Definitions, lister Lister, selector Selector) *FetchService {
	return &FetchService{
		definitions: definitions,
		lister:      lister,
		selector:    selector,
	}
}

// Resolve returns the artifact name to back up. An empty name falls back
// to the console inventory and the configured selector.
func (s *FetchService) Resolve(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		candidates, err := s.lister.ListArtifacts(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: list artifacts: %w", ErrFetchFailed, err)
		}
		if len(candidates) == 0 {
			return "", ErrNoArtifacts
		}
		name, err = s.selector.SelectOne(ctx, candidates)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
	}

	if !domain.IsValidArtifactName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidArtifactName, name)
	}
	return name, nil
}

// Fetch retrieves the current definition. Always live, never cached.
func (s *FetchService) Fetch(ctx context.Context, name string) (domain.Artifact, error) {
	art, err := s.definitions.GetDefinition(ctx, name)
	if err != nil {
		if errors.Is(err, ErrArtifactNotFound) {
			return domain.Artifact{}, err
		}
		return domain.Artifact{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return art, nil
}
