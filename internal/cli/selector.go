package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrNoSelection = errors.New("no artifact selected")

// PromptSelector asks the operator to pick an artifact from the console
// inventory by number or exact name.
type PromptSelector struct {
	In  io.Reader
	Out io.Writer
}

func (s PromptSelector) SelectOne(ctx context.Context, candidates []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrNoSelection
	}

	fmt.Fprintln(s.Out, "Available task sequences:")
	for i, name := range candidates {
		fmt.Fprintf(s.Out, "  %d) %s\n", i+1, name)
	}
	fmt.Fprintf(s.Out, "Select [1-%d]: ", len(candidates))

	scanner := bufio.NewScanner(s.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read selection: %w", err)
		}
		return "", ErrNoSelection
	}
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return "", ErrNoSelection
	}

	if index, err := strconv.Atoi(input); err == nil {
		if index < 1 || index > len(candidates) {
			return "", fmt.Errorf("%w: %d is out of range", ErrNoSelection, index)
		}
		return candidates[index-1], nil
	}
	for _, name := range candidates {
		if name == input {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not in the list", ErrNoSelection, input)
}

// FirstSelector backs --non-interactive runs: no prompt, first entry wins.
type FirstSelector struct{}

func (FirstSelector) SelectOne(ctx context.Context, candidates []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrNoSelection
	}
	return candidates[0], nil
}
