package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/source"
)

func TestStoreImportListDelete(t *testing.T) {
	dir := fixture(t)
	db := filepath.Join(dir, "store.db")

	if err := runCLI(t, dir, "store", "import", "--db", db, "sqlite://src", filepath.Join(dir, "src.json")); err != nil {
		t.Fatalf("import: %v", err)
	}

	store, err := source.OpenSQLite(db)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := store.List(context.Background())
	store.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Key != "src" || entries[0].Nodes != 3 {
		t.Fatalf("entries = %+v, want one src entry with 3 nodes", entries)
	}

	if err := runCLI(t, dir, "store", "list", "--db", db); err != nil {
		t.Errorf("list: %v", err)
	}
	if err := runCLI(t, dir, "store", "delete", "--db", db, "src"); err != nil {
		t.Errorf("delete: %v", err)
	}
	err = runCLI(t, dir, "store", "delete", "--db", db, "src")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second delete err = %v, want NOT_FOUND", err)
	}
}

func TestStoreImportInvalidFile(t *testing.T) {
	dir := fixture(t)
	writeFile(t, filepath.Join(dir, "bad.json"), `{"children": [`)

	err := runCLI(t, dir, "store", "import", "--db", filepath.Join(dir, "s.db"), "bad", filepath.Join(dir, "bad.json"))
	if err == nil {
		t.Fatal("importing malformed JSON should fail")
	}
}

func TestStoreBacksSQLiteURLs(t *testing.T) {
	dir := fixture(t)
	db := filepath.Join(dir, "store.db")
	writeFile(t, filepath.Join(dir, "root.json"), strings.Replace(rootJSON, `"src.json"`, `"sqlite://src"`, 1))
	writeFile(t, filepath.Join(dir, "packnav.toml"), fmt.Sprintf("[source]\nbase_dir = %q\nstore = %q\nno_cache = true\n", dir, db))
	if err := os.Remove(filepath.Join(dir, "src.json")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "payload.json"), srcJSON)

	if err := runCLI(t, dir, "store", "import", "src", filepath.Join(dir, "payload.json")); err != nil {
		t.Fatalf("import: %v", err)
	}
	out := filepath.Join(dir, "src.svg")
	if err := runCLI(t, dir, "render", filepath.Join(dir, "root.json"), "--path", "src", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">render</text>") {
		t.Error("nested level from the store should be rendered")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), "2020-01-02"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
