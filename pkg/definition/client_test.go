package definition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/procview/pkg/cache"
	"github.com/matzehuels/procview/pkg/connector"
	perrors "github.com/matzehuels/procview/pkg/errors"
)

const definitionJSON = `{
	"processProperties": {"streaming": true},
	"edgesForNodes": [
		{"nodeId": {"type": "Filter"}, "edges": [{"type": "FilterTrue"}, {"type": "FilterFalse"}]},
		{"nodeId": {"type": "SubprocessInput", "id": "sub1"}, "edges": [{"type": "edge3"}]},
		{"nodeId": {"type": "Sink"}, "edges": [null]}
	]
}`

func wantCatalog() connector.Catalog {
	return connector.Catalog{
		{NodeMatcher: connector.NodeMatcher{Type: "Filter"}, Edges: []*connector.Spec{{Type: "FilterTrue"}, {Type: "FilterFalse"}}},
		{NodeMatcher: connector.NodeMatcher{Type: "SubprocessInput", ID: "sub1"}, Edges: []*connector.Spec{{Type: "edge3"}}},
		{NodeMatcher: connector.NodeMatcher{Type: "Sink"}, Edges: []*connector.Spec{nil}},
	}
}

func newTestClient(t *testing.T, url string, c cache.Cache) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:  url,
		Cache:    c,
		Headers:  map[string]string{"Authorization": "Basic YWRtaW46YWRtaW4="},
		Attempts: 3,
		Delay:    time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestClientCatalog(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/api/processDefinitionData/streaming" {
			t.Errorf("path = %s, want /api/processDefinitionData/streaming", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got == "" {
			t.Error("Authorization header not sent")
		}
		w.Write([]byte(definitionJSON))
	}))
	defer server.Close()

	fc, _ := cache.NewFileCache(t.TempDir())
	client := newTestClient(t, server.URL+"/", fc)
	ctx := context.Background()

	got, err := client.Catalog(ctx, "streaming", false)
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if diff := cmp.Diff(wantCatalog(), got); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}

	// Served from cache.
	got, err = client.Catalog(ctx, "streaming", false)
	if err != nil {
		t.Fatalf("cached Catalog() error: %v", err)
	}
	if diff := cmp.Diff(wantCatalog(), got); diff != "" {
		t.Errorf("cached Catalog() mismatch (-want +got):\n%s", diff)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1", n)
	}

	if _, err := client.Catalog(ctx, "streaming", true); err != nil {
		t.Fatalf("refreshed Catalog() error: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server calls after refresh = %d, want 2", n)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(definitionJSON))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	if _, err := client.Catalog(context.Background(), "streaming", false); err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server calls = %d, want 3", n)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   perrors.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, "", perrors.ErrCodeNotFound, 1},
		{"persistent 5xx", http.StatusInternalServerError, "", perrors.ErrCodeNetwork, 3},
		{"bad request", http.StatusBadRequest, "", perrors.ErrCodeNetwork, 1},
		{"garbage body", http.StatusOK, "<html>", perrors.ErrCodeInvalidInput, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, nil)
			_, err := client.Catalog(context.Background(), "streaming", false)
			if got := perrors.GetCode(err); got != tt.code {
				t.Errorf("Catalog() code = %q, want %q (err: %v)", got, tt.code, err)
			}
			if n := calls.Load(); n != tt.calls {
				t.Errorf("server calls = %d, want %d", n, tt.calls)
			}
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	for _, u := range []string{"", "ftp://defs", "defs.local"} {
		if _, err := NewClient(Options{BaseURL: u}); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("NewClient(%q) error = %v, want INVALID_INPUT", u, err)
		}
	}

	c, err := NewClient(Options{BaseURL: "http://defs.local"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if _, err := c.Catalog(context.Background(), "", false); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("Catalog(\"\") error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "definition.json")
	bare := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(full, []byte(definitionJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bare, []byte(`
		[{"nodeId": {"type": "Filter"}, "edges": [{"type": "FilterTrue"}, {"type": "FilterFalse"}]},
		 {"nodeId": {"type": "SubprocessInput", "id": "sub1"}, "edges": [{"type": "edge3"}]},
		 {"nodeId": {"type": "Sink"}, "edges": [null]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{full, bare} {
		got, err := LoadCatalogFile(path)
		if err != nil {
			t.Fatalf("LoadCatalogFile(%s) error: %v", filepath.Base(path), err)
		}
		if diff := cmp.Diff(wantCatalog(), got); diff != "" {
			t.Errorf("LoadCatalogFile(%s) mismatch (-want +got):\n%s", filepath.Base(path), diff)
		}
	}

	if _, err := LoadCatalogFile(filepath.Join(dir, "missing.json")); !perrors.IsNotFound(err) {
		t.Errorf("LoadCatalogFile(missing) error = %v, want NOT_FOUND", err)
	}
}
