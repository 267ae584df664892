package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrRepoPathRequired = errors.New("repo path is required")

func NormalizeRepoPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrRepoPathRequired
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve repo path: %w", err)
	}

	return absPath, nil
}
