package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqvault/seqvault/internal/domain"
)

// RunService drives one backup run end to end: bootstrap the repository
// pair, fetch the live definition, compare it against the last snapshot,
// and when it changed write the snapshot plus a timestamped export
// archive and publish a commit to the hub.
type RunService struct {
	cfg       domain.Config
	bootstrap Bootstrapper
	fetcher   Fetcher
	canon     Canonicalizer
	hasher    Hasher
	workspace Workspace
	exporter  Exporter
	archiver  Archiver
	publisher Publisher
	journal   Journal
	differ    Differ
	clock     Clock
	ids       IDGenerator
	logger    *slog.Logger
}

type RunServiceDeps struct {
	Bootstrap Bootstrapper
	Fetcher   Fetcher
	Canon     Canonicalizer
	Hasher    Hasher
	Workspace Workspace
	Exporter  Exporter
	Archiver  Archiver
	Publisher Publisher
	Journal   Journal
	Differ    Differ
	Clock     Clock
	IDs       IDGenerator
	Logger    *slog.Logger
}

func NewRunService(cfg domain.Config, deps RunServiceDeps) *RunService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RunService{
		cfg:       cfg,
		bootstrap: deps.Bootstrap,
		fetcher:   deps.Fetcher,
		canon:     deps.Canon,
		hasher:    deps.Hasher,
		workspace: deps.Workspace,
		exporter:  deps.Exporter,
		archiver:  deps.Archiver,
		publisher: deps.Publisher,
		journal:   deps.Journal,
		differ:    deps.Differ,
		clock:     deps.Clock,
		ids:       deps.IDs,
		logger:    logger,
	}
}

func (s *RunService) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	runID, err := s.ids.NewID()
	if err != nil {
		return RunResult{}, fmt.Errorf("assign run id: %w", err)
	}
	startedAt := s.clock.Now()
	result := RunResult{RunID: runID}

	if _, err := s.bootstrap.Bootstrap(ctx, s.cfg.RemotePath(), s.cfg.LocalPath()); err != nil {
		return result, err
	}

	name, err := s.fetcher.Resolve(ctx, firstNonEmpty(opts.Artifact, s.cfg.Artifact))
	if err != nil {
		return result, err
	}
	result.Artifact = name

	art, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return result, err
	}

	canonical, err := s.canon.Canonicalize(ctx, art.Format, art.Definition)
	if err != nil {
		return result, fmt.Errorf("%w: canonicalize definition: %w", ErrCompareFailed, err)
	}

	localPath := s.cfg.LocalPath()
	result.SnapshotPath = filepath.Join(localPath, name+art.Format.Ext())

	changed, previous, err := s.detectChange(ctx, art.Format, result.SnapshotPath, canonical)
	if err != nil {
		return result, err
	}
	result.Changed = changed

	if changed && previous != nil && art.Format == domain.FormatJSON {
		result.DiffSummary = s.summarizeDiff(ctx, previous, canonical)
	}

	if !changed {
		s.logger.Info("definition unchanged, nothing to back up", "artifact", name, "run_id", runID)
		s.appendJournal(ctx, runID, startedAt, result)
		return result, nil
	}

	if err := s.writeOutputs(ctx, name, art, startedAt, &result); err != nil {
		return result, err
	}

	if err := s.publish(ctx, localPath, opts, startedAt, &result); err != nil {
		return result, err
	}

	s.appendJournal(ctx, runID, startedAt, result)
	return result, nil
}

// detectChange compares the canonical form of the live definition with
// the canonical form of the stored snapshot. A missing snapshot is a
// change. A snapshot that no longer parses is treated as changed so the
// next run rewrites it.
func (s *RunService) detectChange(ctx context.Context, format domain.DefinitionFormat, snapshotPath string, canonical []byte) (bool, []byte, error) {
	previous, exists, err := s.workspace.ReadSnapshot(ctx, snapshotPath)
	if err != nil {
		return false, nil, fmt.Errorf("%w: read snapshot: %w", ErrCompareFailed, err)
	}
	if !exists {
		return true, nil, nil
	}

	previousCanonical, err := s.canon.Canonicalize(ctx, format, previous)
	if err != nil {
		s.logger.Warn("stored snapshot does not parse, treating as changed", "path", snapshotPath, "error", err)
		return true, nil, nil
	}

	changed := s.hasher.SumHex(previousCanonical) != s.hasher.SumHex(canonical)
	return changed, previousCanonical, nil
}

func (s *RunService) summarizeDiff(ctx context.Context, before, after []byte) string {
	patch, err := s.differ.MergeDiff(ctx, before, after)
	if err != nil {
		s.logger.Warn("diff summary unavailable", "error", err)
		return ""
	}
	return string(patch)
}

func (s *RunService) writeOutputs(ctx context.Context, name string, art domain.Artifact, startedAt time.Time, result *RunResult) error {
	pretty, err := s.canon.Pretty(ctx, art.Format, art.Definition)
	if err != nil {
		return fmt.Errorf("%w: format snapshot: %w", ErrWriteFailed, err)
	}
	if err := s.workspace.WriteSnapshot(ctx, result.SnapshotPath, pretty); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	exportsDir := filepath.Join(s.cfg.LocalPath(), domain.ExportDirName)
	if err := s.workspace.EnsureDir(ctx, exportsDir); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	bundle, err := s.exporter.ExportArtifact(ctx, name)
	if err != nil {
		s.logger.Warn("console export unavailable, archiving fetched definition", "artifact", name, "error", err)
		bundle = domain.ExportBundle{Name: name, Format: art.Format, Definition: art.Definition}
	}

	result.ArchivePath = filepath.Join(exportsDir, domain.ArchiveFileName(name, startedAt))
	if err := s.archiver.WriteArchive(ctx, result.ArchivePath, bundle); err != nil {
		return fmt.Errorf("%w: write archive: %w", ErrWriteFailed, err)
	}
	return nil
}

func (s *RunService) publish(ctx context.Context, localPath string, opts RunOptions, startedAt time.Time, result *RunResult) error {
	staged, err := s.publisher.StageUntracked(ctx, localPath)
	if err != nil {
		return fmt.Errorf("%w: stage files: %w", ErrPublishFailed, err)
	}
	result.StagedFiles = staged

	record := domain.CommitRecord{
		Header:       s.commitHeader(startedAt),
		Body:         strings.TrimSpace(opts.Message),
		ChangedFiles: staged,
	}
	result.Message = record.Message()

	hash, err := s.publisher.CommitAll(ctx, localPath, record.Message())
	if err != nil {
		if errors.Is(err, domain.ErrNothingToCommit) {
			s.logger.Info("working tree already committed, skipping push", "run_id", result.RunID)
			return nil
		}
		return fmt.Errorf("%w: commit: %w", ErrPublishFailed, err)
	}
	result.CommitHash = hash

	if err := s.publisher.Push(ctx, localPath); err != nil {
		if errors.Is(err, domain.ErrSyncConflict) {
			return err
		}
		return fmt.Errorf("%w: push: %w", ErrPublishFailed, err)
	}
	result.Pushed = true
	return nil
}

func (s *RunService) commitHeader(at time.Time) string {
	header := s.cfg.CommitHeader
	header = strings.ReplaceAll(header, "{timestamp}", at.UTC().Format(time.RFC3339))
	header = strings.ReplaceAll(header, "{site}", s.cfg.SiteCode)
	return strings.TrimSpace(header)
}

// appendJournal records the run outcome. Journal failures are logged
// and swallowed: the backup itself already succeeded.
func (s *RunService) appendJournal(ctx context.Context, runID string, startedAt time.Time, result RunResult) {
	if s.journal == nil {
		return
	}
	rec := domain.RunRecord{
		RunID:       runID,
		Artifact:    result.Artifact,
		StartedAt:   startedAt,
		Changed:     result.Changed,
		CommitHash:  result.CommitHash,
		ArchivePath: result.ArchivePath,
		DiffSummary: result.DiffSummary,
	}
	if err := s.journal.Append(ctx, rec); err != nil {
		s.logger.Warn("journal append failed", "run_id", runID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
