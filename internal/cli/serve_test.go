package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/observability"
	"github.com/matzehuels/packnav/pkg/source"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := fixture(t)
	c := testCLI(t, dir)

	fetcher, closeFetcher, err := c.NewFetcher(true)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(closeFetcher)

	root, err := LoadTree(context.Background(), fetcher, filepath.Join(dir, "root.json"))
	if err != nil {
		t.Fatal(err)
	}
	payloads := source.Router{Files: source.Files{Root: dir}}
	ts := httptest.NewServer(c.newServer(root, payloads, fetcher))
	t.Cleanup(ts.Close)
	t.Cleanup(observability.Reset)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServeEndpoints(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"health", "/healthz", http.StatusOK, "ok"},
		{"tree", "/tree", http.StatusOK, `"docs"`},
		{"payload by key", "/payloads/src", http.StatusOK, `"render"`},
		{"payload by file name", "/payloads/src.json", http.StatusOK, `"pack"`},
		{"missing payload", "/payloads/nope", http.StatusNotFound, ""},
		{"dotted payload key", "/payloads/a..b", http.StatusBadRequest, ""},
		{"snapshot", "/snapshot.svg", http.StatusOK, ">docs</text>"},
		{"snapshot along path", "/snapshot.svg?path=src", http.StatusOK, ">render</text>"},
		{"snapshot unknown path", "/snapshot.svg?path=nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			if status != tt.status {
				t.Fatalf("GET %s = %d, want %d (%s)", tt.path, status, tt.status, body)
			}
			if tt.contains != "" && !strings.Contains(body, tt.contains) {
				t.Errorf("GET %s body is missing %s", tt.path, tt.contains)
			}
		})
	}
}

func TestServeTreeIsValidJSON(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts.URL+"/tree")
	tree, err := pnio.ParseJSON([]byte(body))
	if err != nil {
		t.Fatalf("parse /tree: %v", err)
	}
	if tree.Name != "root" || tree.Count() != 6 {
		t.Errorf("tree = %s with %d nodes, want root with 6", tree.Name, tree.Count())
	}
}

func TestServeSnapshotsAreIndependent(t *testing.T) {
	ts := newTestServer(t)

	if status, _ := get(t, ts.URL+"/snapshot.svg?path=src"); status != http.StatusOK {
		t.Fatalf("zoomed snapshot status %d", status)
	}
	_, body := get(t, ts.URL+"/snapshot.svg")
	if strings.Contains(body, ">render</text>") {
		t.Error("an earlier zoom leaked into a fresh snapshot")
	}
	_, body = get(t, ts.URL+"/snapshot.svg?labels=0")
	if strings.Contains(body, "<text") {
		t.Error("labels=0 should omit text")
	}
}

func TestServeStatsCountExpansions(t *testing.T) {
	ts := newTestServer(t)

	if status, _ := get(t, ts.URL+"/snapshot.svg?path=src"); status != http.StatusOK {
		t.Fatalf("snapshot status %d", status)
	}
	status, body := get(t, ts.URL+"/stats")
	if status != http.StatusOK {
		t.Fatalf("stats status %d", status)
	}
	var got struct {
		Expansions    int    `json:"expansions"`
		LevelsCreated int    `json:"levels_created"`
		Renders       int    `json:"renders"`
		Uptime        string `json:"uptime"`
	}
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if got.Expansions != 1 || got.LevelsCreated < 2 || got.Renders == 0 || got.Uptime == "" {
		t.Errorf("stats = %+v", got)
	}
}
