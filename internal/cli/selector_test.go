package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPromptSelectorByNumber(t *testing.T) {
	var out bytes.Buffer
	sel := PromptSelector{In: strings.NewReader("2\n"), Out: &out}

	name, err := sel.SelectOne(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if name != "beta" {
		t.Fatalf("expected beta, got %q", name)
	}
	if !strings.Contains(out.String(), "1) alpha") {
		t.Fatalf("expected numbered listing, got %q", out.String())
	}
}

func TestPromptSelectorByName(t *testing.T) {
	var out bytes.Buffer
	sel := PromptSelector{In: strings.NewReader("alpha\n"), Out: &out}

	name, err := sel.SelectOne(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if name != "alpha" {
		t.Fatalf("expected alpha, got %q", name)
	}
}

func TestPromptSelectorOutOfRange(t *testing.T) {
	var out bytes.Buffer
	sel := PromptSelector{In: strings.NewReader("3\n"), Out: &out}

	if _, err := sel.SelectOne(context.Background(), []string{"alpha", "beta"}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestPromptSelectorUnknownName(t *testing.T) {
	var out bytes.Buffer
	sel := PromptSelector{In: strings.NewReader("gamma\n"), Out: &out}

	if _, err := sel.SelectOne(context.Background(), []string{"alpha", "beta"}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestPromptSelectorEmptyInput(t *testing.T) {
	var out bytes.Buffer
	sel := PromptSelector{In: strings.NewReader("\n"), Out: &out}

	if _, err := sel.SelectOne(context.Background(), []string{"alpha"}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestFirstSelector(t *testing.T) {
	name, err := FirstSelector{}.SelectOne(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if name != "alpha" {
		t.Fatalf("expected alpha, got %q", name)
	}

	if _, err := (FirstSelector{}).SelectOne(context.Background(), nil); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}
