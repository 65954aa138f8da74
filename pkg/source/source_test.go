package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packnav/pkg/httputil"
	"github.com/matzehuels/packnav/pkg/pack"
)

const treeJSON = `{"name":"root","children":[{"name":"a","url":"mem://a"},{"name":"b"}]}`

func quietHTTP(opts ...HTTPOption) *HTTP {
	opts = append([]HTTPOption{WithHTTPLogger(log.New(io.Discard)), WithRetry(3, time.Millisecond)}, opts...)
	return NewHTTP(opts...)
}

func TestHTTPFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/tree.json":
			if r.Header.Get("X-Token") != "secret" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = io.WriteString(w, treeJSON)
		case "/flaky.json":
			if hits.Load() < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = io.WriteString(w, treeJSON)
		case "/broken.json":
			_, _ = io.WriteString(w, `{"children":[{}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("decodes and prepares", func(t *testing.T) {
		h := quietHTTP(WithHeaders(map[string]string{"X-Token": "secret"}))
		tree, err := h.Fetch(context.Background(), srv.URL+"/tree.json")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if tree.Name != "root" || len(tree.Children) != 2 || tree.Children[0].Parent != tree {
			t.Errorf("tree = %+v", tree)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := quietHTTP().Fetch(context.Background(), srv.URL+"/missing.json")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("client error is not retried", func(t *testing.T) {
		before := hits.Load()
		_, err := quietHTTP().Fetch(context.Background(), srv.URL+"/tree.json")
		if !errors.Is(err, ErrNetwork) || httputil.IsRetryable(err) {
			t.Errorf("err = %v", err)
		}
		if hits.Load()-before != 1 {
			t.Errorf("requests = %d, want 1", hits.Load()-before)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		if _, err := quietHTTP().Fetch(context.Background(), srv.URL+"/broken.json"); err == nil {
			t.Error("Fetch() accepted an unnamed node")
		}
	})

	t.Run("retries server errors", func(t *testing.T) {
		hits.Store(0)
		tree, err := quietHTTP().Fetch(context.Background(), srv.URL+"/flaky.json")
		if err != nil || tree.Name != "root" {
			t.Fatalf("Fetch() = %v, %v", tree, err)
		}
		if hits.Load() != 3 {
			t.Errorf("requests = %d, want 3", hits.Load())
		}
	})
}

func TestHTTPCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, treeJSON)
	}))
	defer srv.Close()

	cache, _ := httputil.NewCache(t.TempDir(), time.Hour)
	h := quietHTTP(WithCache(cache))
	for range 2 {
		tree, err := h.Fetch(context.Background(), srv.URL)
		if err != nil || tree.Count() != 3 {
			t.Fatalf("Fetch() = %v, %v", tree, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("requests = %d, want 1 (second served from cache)", hits.Load())
	}

	if _, err := quietHTTP(WithCache(cache), WithRefresh(true)).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("requests = %d, want 2 after refresh", hits.Load())
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tree.json"), []byte(treeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Files{Root: dir}

	for _, u := range []string{"tree.json", "file://" + filepath.ToSlash(filepath.Join(dir, "tree.json"))} {
		tree, err := f.Fetch(context.Background(), u)
		if err != nil || tree.Name != "root" {
			t.Errorf("Fetch(%q) = %v, %v", u, tree, err)
		}
	}
	if _, err := f.Fetch(context.Background(), "nope.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "payloads.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer store.Close()

	tree := &pack.Node{Name: "A", Children: []*pack.Node{{Name: "x"}, {Name: "y"}}}
	if err := store.Put(ctx, "sqlite://a", tree); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "b", &pack.Node{Name: "B"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "bad", &pack.Node{}); err == nil {
		t.Error("Put() accepted an unnamed root")
	}

	got, err := store.Fetch(ctx, "sqlite://a")
	if err != nil || got.Name != "A" || len(got.Children) != 2 {
		t.Fatalf("Fetch() = %+v, %v", got, err)
	}
	if _, err := store.Fetch(ctx, "sqlite://missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key err = %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil || len(entries) != 2 || entries[0].Key != "a" || entries[0].Nodes != 3 {
		t.Errorf("List() = %+v, %v", entries, err)
	}

	if ok, err := store.Delete(ctx, "sqlite://a"); !ok || err != nil {
		t.Errorf("Delete() = %v, %v", ok, err)
	}
	if ok, _ := store.Delete(ctx, "a"); ok {
		t.Error("second Delete() reported a row")
	}
}

type stub string

func (s stub) Fetch(context.Context, string) (*pack.Node, error) {
	return &pack.Node{Name: string(s)}, nil
}

func TestRouter(t *testing.T) {
	r := Router{HTTP: stub("http"), Files: stub("file"), Store: stub("sqlite")}
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/a.json", "http"},
		{"HTTP://example.com/a.json", "http"},
		{"file:///tmp/a.json", "file"},
		{"trees/a.json", "file"},
		{"sqlite://a", "sqlite"},
	}
	for _, tt := range tests {
		got, err := r.Fetch(context.Background(), tt.url)
		if err != nil || got.Name != tt.want {
			t.Errorf("Fetch(%q) = %v, %v; want %s", tt.url, got, err, tt.want)
		}
	}

	if _, err := r.Fetch(context.Background(), "ftp://x"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("ftp err = %v", err)
	}
	if _, err := (Router{}).Fetch(context.Background(), "https://x"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("disabled scheme err = %v", err)
	}
}
