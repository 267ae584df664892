package console

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seqvault/seqvault/internal/app/artifact"
	"github.com/seqvault/seqvault/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithHTTP(server.URL, server.Client())
}

func TestListArtifacts(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sequences" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"alpha"},{"name":" "},{"name":"beta"}]`))
	})

	names, err := client.ListArtifacts(context.Background())
	if err != nil {
		t.Fatalf("ListArtifacts returned error: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestGetDefinitionXML(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/v1/sequences/Deploy%20Windows%2011/definition" {
			t.Fatalf("unexpected path %s", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte("<sequence/>"))
	})

	art, err := client.GetDefinition(context.Background(), "Deploy Windows 11")
	if err != nil {
		t.Fatalf("GetDefinition returned error: %v", err)
	}
	if art.Format != domain.FormatXML {
		t.Fatalf("expected xml format, got %s", art.Format)
	}
	if string(art.Definition) != "<sequence/>" {
		t.Fatalf("unexpected definition: %q", art.Definition)
	}
}

func TestGetDefinitionJSONContentType(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"steps":[]}`))
	})

	art, err := client.GetDefinition(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("GetDefinition returned error: %v", err)
	}
	if art.Format != domain.FormatJSON {
		t.Fatalf("expected json format, got %s", art.Format)
	}
}

func TestGetDefinitionNotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetDefinition(context.Background(), "gone")
	if !errors.Is(err, artifact.ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestGetDefinitionServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.GetDefinition(context.Background(), "alpha"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestExportArtifact(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/api/v1/sequences/alpha/definition":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte("<sequence/>"))
		case "/api/v1/sequences/alpha":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"name":"alpha"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.EscapedPath())
		}
	})

	bundle, err := client.ExportArtifact(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("ExportArtifact returned error: %v", err)
	}
	if string(bundle.Definition) != "<sequence/>" {
		t.Fatalf("unexpected definition: %q", bundle.Definition)
	}
	if string(bundle.Metadata) != `{"id":7,"name":"alpha"}` {
		t.Fatalf("unexpected metadata: %q", bundle.Metadata)
	}
}

func TestBearerTokenFromEnv(t *testing.T) {
	t.Setenv("SEQVAULT_CONSOLE_TOKEN", "secret")

	var gotAuth string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := client.ListArtifacts(context.Background()); err != nil {
		t.Fatalf("ListArtifacts returned error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}
