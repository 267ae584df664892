package backup

// RunOptions are the per-invocation knobs; everything else comes from
// the configuration.
type RunOptions struct {
	Artifact string
	Message  string
}

type RunResult struct {
	RunID        string
	Artifact     string
	Changed      bool
	SnapshotPath string
	ArchivePath  string
	CommitHash   string
	Pushed       bool
	StagedFiles  []string
	DiffSummary  string
	Message      string
}
