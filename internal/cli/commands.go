package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	artifactapp "github.com/seqvault/seqvault/internal/app/artifact"
	backupapp "github.com/seqvault/seqvault/internal/app/backup"
	historyapp "github.com/seqvault/seqvault/internal/app/history"
	repoapp "github.com/seqvault/seqvault/internal/app/repo"
	"github.com/seqvault/seqvault/internal/domain"
	"github.com/seqvault/seqvault/internal/infra/archive"
	"github.com/seqvault/seqvault/internal/infra/canonical"
	"github.com/seqvault/seqvault/internal/infra/configfile"
	"github.com/seqvault/seqvault/internal/infra/console"
	"github.com/seqvault/seqvault/internal/infra/gitrepo"
	"github.com/seqvault/seqvault/internal/infra/hash"
	"github.com/seqvault/seqvault/internal/infra/ident"
	"github.com/seqvault/seqvault/internal/infra/jsonmerge"
	"github.com/seqvault/seqvault/internal/infra/runjournal"
	"github.com/seqvault/seqvault/internal/infra/workdir"
	"github.com/seqvault/seqvault/internal/platform"
)

func newBackupCmd(opts *RootOptions) *cobra.Command {
	var artifactName string
	var message string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up a task sequence when its definition changed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			store := gitrepo.NewStore()
			client := console.NewClient(cfg.ConsoleURL)
			fetcher := artifactapp.NewFetchService(client, client, newSelector(cmd, opts))

			deps := backupapp.RunServiceDeps{
				Bootstrap: repoapp.NewBootstrapService(store),
				Fetcher:   fetcher,
				Canon:     canonical.Codec{},
				Hasher:    hash.SHA256{},
				Workspace: workdir.Workspace{},
				Exporter:  client,
				Archiver:  archive.Writer{},
				Publisher: store,
				Differ:    jsonmerge.Differ{},
				Clock:     platform.RealClock{},
				IDs:       ident.NewULIDGenerator(),
			}
			if journal, err := runjournal.Open(cfg.JournalPath); err != nil {
				slog.Warn("run journal unavailable", "path", cfg.JournalPath, "error", err)
			} else {
				defer func() {
					_ = journal.Close()
				}()
				deps.Journal = journal
			}

			service := backupapp.NewRunService(cfg, deps)

			var result backupapp.RunResult
			spin := spinnerEnabled(cmd.ErrOrStderr(), opts.JSONOutput)
			label := newRenderer(cmd.ErrOrStderr(), opts.JSONOutput).accent("Backing up")
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), spin, label, func() error {
				var err error
				result, err = service.Run(cmd.Context(), backupapp.RunOptions{
					Artifact: artifactName,
					Message:  message,
				})
				return err
			})
			if err != nil {
				return err
			}
			return writeBackupResult(cmd, result, opts.JSONOutput)
		},
	}
	cmd.Flags().StringVar(&artifactName, "artifact", "", "Task sequence name (prompts from the console inventory when empty)")
	cmd.Flags().StringVar(&message, "message", "", "Optional commit message body")
	return cmd
}

func newInitCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the bare hub and the working clone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			service := repoapp.NewBootstrapService(gitrepo.NewStore())
			result, err := service.Bootstrap(cmd.Context(), cfg.RemotePath(), cfg.LocalPath())
			if err != nil {
				return err
			}
			return writeBootstrapResult(cmd, cfg, result, opts.JSONOutput)
		},
	}
}

func newStatusCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working clone status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			service := repoapp.NewStatusService(gitrepo.NewStore())
			status, err := service.Status(cmd.Context(), cfg.LocalPath())
			if err != nil {
				return err
			}
			return writeStatus(cmd, status, opts.JSONOutput)
		},
	}
}

func newArtifactsCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artifacts",
		Short: "List task sequences available on the console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			client := console.NewClient(cfg.ConsoleURL)
			names, err := client.ListArtifacts(cmd.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", artifactapp.ErrFetchFailed, err)
			}
			return writeArtifacts(cmd, names, opts.JSONOutput)
		},
	}
}

func newHistoryCmd(opts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent backup runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			journal, err := runjournal.Open(cfg.JournalPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = journal.Close()
			}()

			service := historyapp.NewService(journal)
			records, err := service.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeHistory(cmd, records, opts.JSONOutput)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum runs to list (default 20)")
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *RootOptions) (domain.Config, error) {
	return configfile.Source{}.Load(cmd.Context(), opts.ConfigPath)
}

func newSelector(cmd *cobra.Command, opts *RootOptions) artifactapp.Selector {
	if opts.NonInteractive {
		return FirstSelector{}
	}
	return PromptSelector{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
}

type backupOutput struct {
	RunID    string   `json:"run_id"`
	Artifact string   `json:"artifact"`
	Changed  bool     `json:"changed"`
	Snapshot string   `json:"snapshot,omitempty"`
	Archive  string   `json:"archive,omitempty"`
	Commit   string   `json:"commit,omitempty"`
	Pushed   bool     `json:"pushed"`
	Staged   []string `json:"staged,omitempty"`
	Message  string   `json:"message,omitempty"`
}

type bootstrapOutput struct {
	RemotePath    string `json:"remote_path"`
	LocalPath     string `json:"local_path"`
	RemoteCreated bool   `json:"remote_created"`
	LocalCloned   bool   `json:"local_cloned"`
}

type statusOutput struct {
	Path      string   `json:"path"`
	Bare      bool     `json:"bare"`
	Head      string   `json:"head,omitempty"`
	Untracked []string `json:"untracked,omitempty"`
}

type historyOutput struct {
	Runs []historyRunOutput `json:"runs"`
}

type historyRunOutput struct {
	RunID       string `json:"run_id"`
	Artifact    string `json:"artifact"`
	StartedAt   string `json:"started_at"`
	Changed     bool   `json:"changed"`
	Commit      string `json:"commit,omitempty"`
	Archive     string `json:"archive,omitempty"`
	DiffSummary string `json:"diff_summary,omitempty"`
}

func writeBackupResult(cmd *cobra.Command, result backupapp.RunResult, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := backupOutput{
			RunID:    result.RunID,
			Artifact: result.Artifact,
			Changed:  result.Changed,
			Snapshot: result.SnapshotPath,
			Archive:  result.ArchivePath,
			Commit:   result.CommitHash,
			Pushed:   result.Pushed,
			Staged:   result.StagedFiles,
			Message:  result.Message,
		}
		if !result.Changed {
			payload.Snapshot = ""
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	ui := newRenderer(out, asJSON)
	if err := writeKV(out, ui, "Artifact", result.Artifact); err != nil {
		return err
	}
	if !result.Changed {
		_, err := fmt.Fprintf(out, "%s: definition unchanged\n", ui.ok("Up to date"))
		return err
	}
	if err := writeKV(out, ui, "Snapshot", result.SnapshotPath); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Archive", result.ArchivePath); err != nil {
		return err
	}
	if result.CommitHash != "" {
		if err := writeKV(out, ui, "Commit", result.CommitHash); err != nil {
			return err
		}
	}
	pushed := ui.warn("false")
	if result.Pushed {
		pushed = ui.ok("true")
	}
	return writeKV(out, ui, "Pushed", pushed)
}

func writeBootstrapResult(cmd *cobra.Command, cfg domain.Config, result repoapp.BootstrapResult, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := bootstrapOutput{
			RemotePath:    cfg.RemotePath(),
			LocalPath:     cfg.LocalPath(),
			RemoteCreated: result.RemoteCreated,
			LocalCloned:   result.LocalCloned,
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	ui := newRenderer(out, asJSON)
	if err := writeKV(out, ui, "Remote", cfg.RemotePath()); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Local", cfg.LocalPath()); err != nil {
		return err
	}
	state := ui.dim("already initialized")
	if result.RemoteCreated || result.LocalCloned {
		state = ui.ok("initialized")
	}
	_, err := fmt.Fprintf(out, "%s\n", state)
	return err
}

func writeStatus(cmd *cobra.Command, status domain.RepoStatus, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		output := statusOutput{
			Path:      status.Path,
			Bare:      status.IsBare,
			Untracked: status.Untracked,
		}
		if status.HasHead {
			output.Head = status.HeadHash
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	ui := newRenderer(out, asJSON)
	if err := writeKV(out, ui, "Path", status.Path); err != nil {
		return err
	}
	if err := writeKV(out, ui, "Bare", fmt.Sprintf("%t", status.IsBare)); err != nil {
		return err
	}
	if status.HasHead {
		if err := writeKV(out, ui, "Head", status.HeadHash); err != nil {
			return err
		}
	} else {
		if err := writeKV(out, ui, "Head", ui.dim("(none)")); err != nil {
			return err
		}
	}
	if len(status.Untracked) == 0 {
		return writeKV(out, ui, "Untracked", ui.dim("(none)"))
	}
	if err := writeKV(out, ui, "Untracked", fmt.Sprintf("%d file(s)", len(status.Untracked))); err != nil {
		return err
	}
	for _, file := range status.Untracked {
		if _, err := fmt.Fprintf(out, "- %s\n", file); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifacts(cmd *cobra.Command, names []string, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := struct {
			Artifacts []string `json:"artifacts"`
		}{Artifacts: names}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	ui := newRenderer(out, asJSON)
	if len(names) == 0 {
		_, err := fmt.Fprintln(out, ui.dim("(no task sequences)"))
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

func writeHistory(cmd *cobra.Command, records []domain.RunRecord, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		payload := historyOutput{Runs: make([]historyRunOutput, 0, len(records))}
		for _, rec := range records {
			payload.Runs = append(payload.Runs, historyRunOutput{
				RunID:       rec.RunID,
				Artifact:    rec.Artifact,
				StartedAt:   rec.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
				Changed:     rec.Changed,
				Commit:      rec.CommitHash,
				Archive:     rec.ArchivePath,
				DiffSummary: rec.DiffSummary,
			})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	ui := newRenderer(out, asJSON)
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, ui.dim("(no runs recorded)"))
		return err
	}
	for _, rec := range records {
		state := ui.dim("unchanged")
		if rec.Changed {
			state = ui.ok("changed")
		}
		commit := rec.CommitHash
		if commit == "" {
			commit = "-"
		}
		if _, err := fmt.Fprintf(out, "%s %s %s %s %s\n",
			rec.StartedAt.Format("2006-01-02T15:04:05Z07:00"), rec.RunID, rec.Artifact, state, commit); err != nil {
			return err
		}
	}
	return nil
}

func writeKV(out io.Writer, ui renderer, key, value string) error {
	_, err := fmt.Fprintf(out, "%s: %s\n", ui.key(key), value)
	return err
}
