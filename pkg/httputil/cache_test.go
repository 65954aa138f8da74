package httputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type payload struct {
	Name     string    `json:"name"`
	Children []payload `json:"children,omitempty"`
}

func TestCache_GetSet(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	tests := []struct {
		name  string
		key   string
		value payload
	}{
		{"leaf", "https://example.com/leaf.json", payload{Name: "leaf"}},
		{"nested", "https://example.com/tree.json", payload{Name: "root", Children: []payload{{Name: "a"}, {Name: "b"}}}},
		{"odd key", "sqlite://with spaces/and?query=1", payload{Name: "odd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			var got payload
			ok, err := c.Get(tt.key, &got)
			if err != nil || !ok {
				t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
			}
			if got.Name != tt.value.Name || len(got.Children) != len(tt.value.Children) {
				t.Errorf("Get() = %+v, want %+v", got, tt.value)
			}
		})
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var result payload
	ok, err := c.Get("missing", &result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var res string
	ok, err := c.Get("key", &res)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err = c.Get("key", &res)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired key")
	}
}

func TestCache_KeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	if c.keyPath("test") != c.keyPath("test") {
		t.Error("path should be deterministic")
	}
	if c.keyPath("test") == c.keyPath("other") {
		t.Error("different keys should produce different paths")
	}
}

func TestNewCache_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}
	if want := filepath.Join(home, ".cache", "packnav"); c.Dir() != want {
		t.Errorf("got Dir = %s, want %s", c.Dir(), want)
	}
	if c.TTL() != time.Hour {
		t.Errorf("got TTL = %v, want 1h", c.TTL())
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	remote := c.Namespace("payload:")
	local := c.Namespace("file:")

	if err := remote.Set("tree.json", "remote"); err != nil {
		t.Fatal(err)
	}
	if err := local.Set("tree.json", "local"); err != nil {
		t.Fatal(err)
	}

	var r, l string
	if ok, _ := remote.Get("tree.json", &r); !ok || r != "remote" {
		t.Errorf("remote.Get() = %q", r)
	}
	if ok, _ := local.Get("tree.json", &l); !ok || l != "local" {
		t.Errorf("local.Get() = %q", l)
	}
	if found, _ := c.Get("tree.json", &r); found {
		t.Error("value accessible without namespace")
	}

	nested := remote.Namespace("v2:")
	_ = nested.Set("k", "v")
	if found, _ := c.Namespace("payload:v2:").Get("k", &r); !found || r != "v" {
		t.Error("nested namespace does not chain prefixes")
	}
	if nested.Dir() != c.Dir() || nested.TTL() != c.TTL() {
		t.Error("namespace changed dir or TTL")
	}
}

func TestCache_DeleteClear(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewCache(dir, 0)
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(k, k)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.Delete("a"); err != nil {
		t.Errorf("Delete() of missing key = %v", err)
	}
	var v string
	if ok, _ := c.Get("a", &v); ok {
		t.Error("deleted key still present")
	}

	n, err := c.Clear()
	if err != nil || n != 2 {
		t.Errorf("Clear() = %d, %v; want 2, nil", n, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "README")); err != nil {
		t.Error("Clear() removed a file it did not write")
	}
}
