package runjournal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/seqvault/seqvault/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestAppendAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	records := []domain.RunRecord{
		{RunID: "01A", Artifact: "alpha", StartedAt: base, Changed: false},
		{RunID: "01B", Artifact: "alpha", StartedAt: base.Add(time.Hour), Changed: true, CommitHash: "abc", ArchivePath: "/x.zip"},
		{RunID: "01C", Artifact: "beta", StartedAt: base.Add(2 * time.Hour), Changed: true, DiffSummary: `{"a":1}`},
	}
	for _, rec := range records {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	listed, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 records, got %d", len(listed))
	}
	if listed[0].RunID != "01C" || listed[2].RunID != "01A" {
		t.Fatalf("expected newest-first ordering, got %v", listed)
	}
	if !listed[0].StartedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("unexpected started_at: %v", listed[0].StartedAt)
	}
	if listed[1].CommitHash != "abc" || listed[1].ArchivePath != "/x.zip" {
		t.Fatalf("unexpected record: %+v", listed[1])
	}
	if listed[0].DiffSummary != `{"a":1}` {
		t.Fatalf("unexpected diff summary: %q", listed[0].DiffSummary)
	}
}

func TestListRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := domain.RunRecord{
			RunID:     string(rune('A' + i)),
			Artifact:  "alpha",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	listed, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(listed))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestAppendRejectsDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := domain.RunRecord{RunID: "01A", Artifact: "alpha", StartedAt: time.Now()}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := store.Append(ctx, rec); err == nil {
		t.Fatalf("expected primary key violation")
	}
}
