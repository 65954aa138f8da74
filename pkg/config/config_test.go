package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/packnav/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
[navigator]
radius = 300
color = "#FF8800"
speed_ms = 100

[pager]
width = 12

[source]
cache_ttl = "2h"
`)
	t.Setenv("PACKNAV_NAVIGATOR_RADIUS", "320")
	t.Setenv("PACKNAV_SOURCE_NO_CACHE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Navigator.Radius != 320 {
		t.Errorf("radius = %v, want env override 320", cfg.Navigator.Radius)
	}
	if cfg.Navigator.Color != "#FF8800" || cfg.Navigator.Speed() != 100*time.Millisecond {
		t.Errorf("navigator = %+v", cfg.Navigator)
	}
	if cfg.Pager.Width != 12 || cfg.Pager.RadiusRatio != Default().Pager.RadiusRatio {
		t.Errorf("pager = %+v", cfg.Pager)
	}
	if cfg.Source.CacheTTL != 2*time.Hour || !cfg.Source.NoCache {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Viewer.Title != "packnav" {
		t.Errorf("untouched section lost its default: %+v", cfg.Viewer)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		path  func(t *testing.T) string
		code  errors.Code
		field string
	}{
		{
			name: "missing explicit file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			code: errors.ErrCodeNotFound,
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string { return writeConfig(t, "[navigator\nradius = ") },
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name:  "invalid radius",
			path:  func(t *testing.T) string { return writeConfig(t, "[navigator]\nradius = -1\n") },
			code:  errors.ErrCodeInvalidConfig,
			field: "navigator.radius",
		},
		{
			name:  "invalid color",
			path:  func(t *testing.T) string { return writeConfig(t, "[navigator]\ncolor = \"blue\"\n") },
			code:  errors.ErrCodeInvalidConfig,
			field: "navigator.color",
		},
		{
			name:  "gap too large",
			path:  func(t *testing.T) string { return writeConfig(t, "[pager]\ngap_size = 360\n") },
			code:  errors.ErrCodeInvalidConfig,
			field: "pager.gap_size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Fatalf("Load() error = %v, want %s", err, tt.code)
			}
			if tt.field != "" {
				if e, ok := err.(*errors.Error); !ok || e.Field != tt.field {
					t.Errorf("field = %v, want %s", err, tt.field)
				}
			}
		})
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("PACKNAV_PAGER_WIDTH", "wide")
	if _, err := Load(writeConfig(t, "")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestNavigatorOptions(t *testing.T) {
	c := Default()
	if got := len(c.NavigatorOptions()); got != 6 {
		t.Errorf("len(NavigatorOptions()) = %d", got)
	}
	if c.Canvas() != 2*(450+20) {
		t.Errorf("Canvas() = %v", c.Canvas())
	}
}
