package domain

import "time"

// RunRecord is the journal row appended after every run, changed or not.
type RunRecord struct {
	RunID       string
	Artifact    string
	StartedAt   time.Time
	Changed     bool
	CommitHash  string
	ArchivePath string
	DiffSummary string
}

// CommitRecord is assembled transiently per run; it survives only as
// version-control history.
type CommitRecord struct {
	Header       string
	Body         string
	ChangedFiles []string
}

// Message renders the commit message: header always, body separated by a
// blank line only when non-empty.
func (c CommitRecord) Message() string {
	if c.Body == "" {
		return c.Header
	}
	return c.Header + "\n\n" + c.Body
}
