package jsonmerge

import (
	"context"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Differ summarizes what changed between two JSON definitions as an
// RFC 7386 merge patch.
type Differ struct{}

func (Differ) MergeDiff(ctx context.Context, before, after []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return patch, nil
}
