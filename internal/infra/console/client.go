package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/seqvault/seqvault/internal/app/artifact"
	"github.com/seqvault/seqvault/internal/domain"
)

const (
	envConsoleToken = "SEQVAULT_CONSOLE_TOKEN"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 32 << 20
)

// Client talks to the management console's admin service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTP is used by tests to install a custom transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	client := NewClient(baseURL)
	if httpClient != nil {
		client.httpClient = httpClient
	}
	return client
}

type sequenceEntry struct {
	Name string `json:"name"`
}

func (c *Client) ListArtifacts(ctx context.Context) ([]string, error) {
	body, _, err := c.get(ctx, c.baseURL+"/api/v1/sequences")
	if err != nil {
		return nil, err
	}

	var entries []sequenceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode sequence list: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) GetDefinition(ctx context.Context, name string) (domain.Artifact, error) {
	body, contentType, err := c.get(ctx, c.sequenceURL(name)+"/definition")
	if err != nil {
		return domain.Artifact{}, err
	}

	return domain.Artifact{
		Name:       name,
		Format:     formatFromContentType(contentType),
		Definition: body,
	}, nil
}

// ExportArtifact assembles the console's point-in-time export: the live
// definition plus the sequence metadata document.
func (c *Client) ExportArtifact(ctx context.Context, name string) (domain.ExportBundle, error) {
	art, err := c.GetDefinition(ctx, name)
	if err != nil {
		return domain.ExportBundle{}, err
	}

	metadata, _, err := c.get(ctx, c.sequenceURL(name))
	if err != nil {
		return domain.ExportBundle{}, err
	}

	return domain.ExportBundle{
		Name:       name,
		Format:     art.Format,
		Definition: art.Definition,
		Metadata:   metadata,
	}, nil
}

func (c *Client) sequenceURL(name string) string {
	return c.baseURL + "/api/v1/sequences/" + url.PathEscape(name)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build console request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/xml")
	if token := strings.TrimSpace(os.Getenv(envConsoleToken)); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("console request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("read console response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", artifact.ErrArtifactNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, "", fmt.Errorf("console returned %s", resp.Status)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func formatFromContentType(contentType string) domain.DefinitionFormat {
	contentType = strings.ToLower(contentType)
	if strings.Contains(contentType, "json") {
		return domain.FormatJSON
	}
	return domain.FormatXML
}
