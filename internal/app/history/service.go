package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/seqvault/seqvault/internal/domain"
)

const defaultLimit = 20

var ErrInvalidLimit = errors.New("limit must not be negative")

type Journal interface {
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
}

// Service reads the run journal for the history command.
type Service struct {
	journal Journal
}

func NewService(journal Journal) *Service {
	return &Service{journal: journal}
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = defaultLimit
	}

	records, err := s.journal.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read run journal: %w", err)
	}
	return records, nil
}
