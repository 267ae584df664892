package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const DefaultCommitHeader = "Task sequence backup {timestamp}"

// Config carries every setting a run needs. It replaces ambient globals:
// the CLI builds one from the config file and hands it to the services.
type Config struct {
	RepoName     string
	RemoteRoot   string
	LocalRoot    string
	ConsoleURL   string
	Artifact     string
	CommitHeader string
	SiteCode     string
	JournalPath  string
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.CommitHeader) == "" {
		c.CommitHeader = DefaultCommitHeader
	}
	if strings.TrimSpace(c.JournalPath) == "" && strings.TrimSpace(c.LocalRoot) != "" {
		c.JournalPath = filepath.Join(c.LocalRoot, "seqvault-runs.db")
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.RepoName) == "" {
		return ErrRepoNameRequired
	}
	if strings.TrimSpace(c.RemoteRoot) == "" {
		return ErrRemoteRootRequired
	}
	if strings.TrimSpace(c.LocalRoot) == "" {
		return ErrLocalRootRequired
	}
	if strings.TrimSpace(c.ConsoleURL) == "" {
		return ErrConsoleURLRequired
	}
	return nil
}

// RemotePath is the bare hub repository location.
func (c Config) RemotePath() string {
	return filepath.Join(c.RemoteRoot, c.RepoName+".git")
}

// LocalPath is the working clone location.
func (c Config) LocalPath() string {
	return filepath.Join(c.LocalRoot, c.RepoName)
}

type DefinitionFormat string

const (
	FormatXML  DefinitionFormat = "xml"
	FormatJSON DefinitionFormat = "json"
)

const DefaultDefinitionFormat = FormatXML

func (f DefinitionFormat) IsValid() bool {
	return f == FormatXML || f == FormatJSON
}

// Ext is the snapshot file extension for the format.
func (f DefinitionFormat) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".xml"
}

func ParseDefinitionFormat(value string) (DefinitionFormat, error) {
	parsed := DefinitionFormat(strings.TrimSpace(strings.ToLower(value)))
	if parsed == "" {
		return "", fmt.Errorf("definition format is required")
	}
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid definition format: %s", value)
	}
	return parsed, nil
}

func NormalizeDefinitionFormat(f DefinitionFormat) DefinitionFormat {
	if f.IsValid() {
		return f
	}
	return DefaultDefinitionFormat
}
