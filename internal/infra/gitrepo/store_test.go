package gitrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/seqvault/seqvault/internal/domain"
)

func TestExistsAndInitBare(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hub.git")

	exists, err := store.Exists(ctx, path)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if exists {
		t.Fatalf("repository must not exist yet")
	}

	if err := store.InitBare(ctx, path); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}

	exists, err = store.Exists(ctx, path)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !exists {
		t.Fatalf("repository must exist after init")
	}

	status, err := store.LoadStatus(ctx, path)
	if err != nil {
		t.Fatalf("LoadStatus returned error: %v", err)
	}
	if !status.IsBare {
		t.Fatalf("expected bare repository")
	}
	if status.HasHead {
		t.Fatalf("fresh hub must have no HEAD commit")
	}
}

func TestCloneEmptyHubCreatesLinkedClone(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := t.TempDir()
	hub := filepath.Join(base, "hub.git")
	clone := filepath.Join(base, "clone")

	if err := store.InitBare(ctx, hub); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}
	if err := store.Clone(ctx, hub, clone); err != nil {
		t.Fatalf("Clone returned error: %v", err)
	}

	repo, err := git.PlainOpen(clone)
	if err != nil {
		t.Fatalf("open clone: %v", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		t.Fatalf("read origin: %v", err)
	}
	urls := remote.Config().URLs
	if len(urls) != 1 || urls[0] != hub {
		t.Fatalf("unexpected origin urls: %v", urls)
	}
}

func TestCloneRefusesExistingPath(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := t.TempDir()
	hub := filepath.Join(base, "hub.git")
	clone := filepath.Join(base, "clone")

	if err := store.InitBare(ctx, hub); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}
	if err := os.MkdirAll(clone, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := store.Clone(ctx, hub, clone); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected os.ErrExist, got %v", err)
	}
}

func TestStageCommitPushRoundtrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := t.TempDir()
	hub := filepath.Join(base, "hub.git")
	clone := filepath.Join(base, "clone")

	if err := store.InitBare(ctx, hub); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}
	if err := store.Clone(ctx, hub, clone); err != nil {
		t.Fatalf("Clone returned error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(clone, "seq.xml"), []byte("<sequence/>"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(clone, "Exports"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(clone, "Exports", "seq.zip"), []byte("zip"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	staged, err := store.StageUntracked(ctx, clone)
	if err != nil {
		t.Fatalf("StageUntracked returned error: %v", err)
	}
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged files, got %v", staged)
	}
	if staged[0] != "Exports/seq.zip" || staged[1] != "seq.xml" {
		t.Fatalf("expected sorted staged files, got %v", staged)
	}

	hash, err := store.CommitAll(ctx, clone, "Task sequence backup 2026-08-23T14:30:05Z")
	if err != nil {
		t.Fatalf("CommitAll returned error: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected commit hash")
	}

	if err := store.Push(ctx, clone); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}

	hubStatus, err := store.LoadStatus(ctx, hub)
	if err != nil {
		t.Fatalf("LoadStatus returned error: %v", err)
	}
	if !hubStatus.HasHead || hubStatus.HeadHash != hash {
		t.Fatalf("expected hub HEAD %s, got %+v", hash, hubStatus)
	}

	// A second push with nothing new is a no-op.
	if err := store.Push(ctx, clone); err != nil {
		t.Fatalf("repeat Push returned error: %v", err)
	}
}

func TestCommitAllEmptyTree(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := t.TempDir()
	hub := filepath.Join(base, "hub.git")
	clone := filepath.Join(base, "clone")

	if err := store.InitBare(ctx, hub); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}
	if err := store.Clone(ctx, hub, clone); err != nil {
		t.Fatalf("Clone returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(clone, "seq.xml"), []byte("<sequence/>"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := store.StageUntracked(ctx, clone); err != nil {
		t.Fatalf("StageUntracked returned error: %v", err)
	}
	if _, err := store.CommitAll(ctx, clone, "first"); err != nil {
		t.Fatalf("CommitAll returned error: %v", err)
	}

	_, err := store.CommitAll(ctx, clone, "second")
	if !errors.Is(err, domain.ErrNothingToCommit) {
		t.Fatalf("expected ErrNothingToCommit, got %v", err)
	}
}

func TestLoadStatusListsUntracked(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := t.TempDir()
	hub := filepath.Join(base, "hub.git")
	clone := filepath.Join(base, "clone")

	if err := store.InitBare(ctx, hub); err != nil {
		t.Fatalf("InitBare returned error: %v", err)
	}
	if err := store.Clone(ctx, hub, clone); err != nil {
		t.Fatalf("Clone returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(clone, "b.xml"), []byte("<b/>"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(clone, "a.xml"), []byte("<a/>"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	status, err := store.LoadStatus(ctx, clone)
	if err != nil {
		t.Fatalf("LoadStatus returned error: %v", err)
	}
	if status.IsBare {
		t.Fatalf("clone must not be bare")
	}
	if len(status.Untracked) != 2 || status.Untracked[0] != "a.xml" || status.Untracked[1] != "b.xml" {
		t.Fatalf("expected sorted untracked files, got %v", status.Untracked)
	}
}
