package runjournal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/seqvault/seqvault/internal/domain"
)

// Store is the SQLite journal of backup runs. It lives outside the
// working clone so journal writes never appear as untracked repo files.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path required")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS backup_runs (
			run_id TEXT PRIMARY KEY,
			artifact TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			changed INTEGER NOT NULL,
			commit_hash TEXT NOT NULL DEFAULT '',
			archive_path TEXT NOT NULL DEFAULT '',
			diff_summary TEXT NOT NULL DEFAULT ''
		)
	`); err != nil {
		return fmt.Errorf("create backup_runs table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS backup_runs_artifact
		ON backup_runs (artifact, started_at)
	`); err != nil {
		return fmt.Errorf("create backup_runs index: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, rec domain.RunRecord) error {
	changed := 0
	if rec.Changed {
		changed = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO backup_runs
			(run_id, artifact, started_at, changed, commit_hash, archive_path, diff_summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.Artifact, rec.StartedAt.UTC().Unix(), changed, rec.CommitHash, rec.ArchivePath, rec.DiffSummary)
	if err != nil {
		return fmt.Errorf("append run record: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, artifact, started_at, changed, commit_hash, archive_path, diff_summary
		FROM backup_runs
		ORDER BY started_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var startedAt int64
		var changed int
		if err := rows.Scan(&rec.RunID, &rec.Artifact, &startedAt, &changed, &rec.CommitHash, &rec.ArchivePath, &rec.DiffSummary); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0).UTC()
		rec.Changed = changed != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return records, nil
}
