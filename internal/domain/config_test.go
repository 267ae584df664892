package domain

import (
	"errors"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		RepoName:   "sequences",
		RemoteRoot: "/srv/git",
		LocalRoot:  "/var/lib/seqvault",
		ConsoleURL: "https://console.example.com",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing repo name", mutate: func(c *Config) { c.RepoName = " " }, wantErr: ErrRepoNameRequired},
		{name: "missing remote root", mutate: func(c *Config) { c.RemoteRoot = "" }, wantErr: ErrRemoteRootRequired},
		{name: "missing local root", mutate: func(c *Config) { c.LocalRoot = "" }, wantErr: ErrLocalRootRequired},
		{name: "missing console url", mutate: func(c *Config) { c.ConsoleURL = "" }, wantErr: ErrConsoleURLRequired},
	}

	for _, tt := range tests {
		cfg := validConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if tt.wantErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := validConfig().WithDefaults()

	if cfg.CommitHeader != DefaultCommitHeader {
		t.Fatalf("expected default commit header, got %q", cfg.CommitHeader)
	}
	want := filepath.Join("/var/lib/seqvault", "seqvault-runs.db")
	if cfg.JournalPath != want {
		t.Fatalf("expected journal path %q, got %q", want, cfg.JournalPath)
	}
}

func TestConfigWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.CommitHeader = "Backup at {timestamp}"
	cfg.JournalPath = "/tmp/runs.db"
	cfg = cfg.WithDefaults()

	if cfg.CommitHeader != "Backup at {timestamp}" {
		t.Fatalf("commit header overwritten: %q", cfg.CommitHeader)
	}
	if cfg.JournalPath != "/tmp/runs.db" {
		t.Fatalf("journal path overwritten: %q", cfg.JournalPath)
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := validConfig()

	if got, want := cfg.RemotePath(), filepath.Join("/srv/git", "sequences.git"); got != want {
		t.Fatalf("expected remote path %q, got %q", want, got)
	}
	if got, want := cfg.LocalPath(), filepath.Join("/var/lib/seqvault", "sequences"); got != want {
		t.Fatalf("expected local path %q, got %q", want, got)
	}
}

func TestParseDefinitionFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    DefinitionFormat
		wantErr bool
	}{
		{input: "xml", want: FormatXML},
		{input: "JSON", want: FormatJSON},
		{input: " xml ", want: FormatXML},
		{input: "", wantErr: true},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDefinitionFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("expected %v, got %v for %q", tt.want, got, tt.input)
		}
	}
}

func TestDefinitionFormatExt(t *testing.T) {
	if got := FormatXML.Ext(); got != ".xml" {
		t.Fatalf("expected .xml, got %q", got)
	}
	if got := FormatJSON.Ext(); got != ".json" {
		t.Fatalf("expected .json, got %q", got)
	}
	if got := DefinitionFormat("bogus").Ext(); got != ".xml" {
		t.Fatalf("expected fallback .xml, got %q", got)
	}
}
