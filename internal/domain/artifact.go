package domain

import "time"

// Artifact is a named task sequence definition fetched live from the
// management console. Definition is the authoritative structured content.
type Artifact struct {
	Name       string
	Format     DefinitionFormat
	Definition []byte
}

// ExportBundle is the console's point-in-time export of an artifact,
// packaged into the timestamped archive next to the snapshot.
type ExportBundle struct {
	Name       string
	Format     DefinitionFormat
	Definition []byte
	Metadata   []byte
}

// ArchiveTimeFormat is filesystem-safe and sorts lexicographically,
// so archives from successive runs never collide.
const ArchiveTimeFormat = "20060102T150405"

// ExportDirName is the archive directory under the working clone root.
const ExportDirName = "Exports"

func ArchiveFileName(name string, at time.Time) string {
	return name + " - " + at.UTC().Format(ArchiveTimeFormat) + ".zip"
}
