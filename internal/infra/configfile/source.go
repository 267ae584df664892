package configfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/seqvault/seqvault/internal/domain"
)

//go:embed config_schema.json
var schemaBytes []byte

var ErrConfigInvalid = errors.New("config file is invalid")

type fileConfig struct {
	RepoName     string `json:"repo_name"`
	RemoteRoot   string `json:"remote_root"`
	LocalRoot    string `json:"local_root"`
	ConsoleURL   string `json:"console_url"`
	Artifact     string `json:"artifact"`
	CommitHeader string `json:"commit_header"`
	SiteCode     string `json:"site_code"`
	JournalPath  string `json:"journal_path"`
}

// Source loads and validates the JSON configuration file.
type Source struct{}

func (Source) Load(ctx context.Context, path string) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := validate(data); err != nil {
		return domain.Config{}, err
	}

	var parsed fileConfig
	if err := json.Unmarshal(data, &parsed); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	cfg := domain.Config{
		RepoName:     parsed.RepoName,
		RemoteRoot:   parsed.RemoteRoot,
		LocalRoot:    parsed.LocalRoot,
		ConsoleURL:   parsed.ConsoleURL,
		Artifact:     parsed.Artifact,
		CommitHeader: parsed.CommitHeader,
		SiteCode:     parsed.SiteCode,
		JournalPath:  parsed.JournalPath,
	}
	if strings.TrimSpace(cfg.SiteCode) == "" {
		cfg.SiteCode = SiteCodeFromHost()
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config_schema.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	schema, err := compiler.Compile("config_schema.json")
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// SiteCodeFromHost derives a three-character site identifier from the
// local hostname, matching the console's site naming convention.
func SiteCodeFromHost() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	var code []rune
	for _, r := range hostname {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			code = append(code, unicode.ToUpper(r))
		}
		if len(code) == 3 {
			break
		}
	}
	return string(code)
}
