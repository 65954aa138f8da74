// Package config loads packnav settings from a TOML file and the
// environment.
//
// Values are layered: built-in defaults, then the file, then PACKNAV_*
// variables, then command-line flags (applied by the CLI). For example
// PACKNAV_NAVIGATOR_RADIUS overrides [navigator] radius.
//
//	[navigator]
//	radius = 450
//	color = "#3182BD"
//	speed_ms = 250
//
//	[source]
//	cache_ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/navigator"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PACKNAV_"

// Config is the full application configuration.
type Config struct {
	Navigator NavigatorConfig `toml:"navigator" envPrefix:"NAVIGATOR_"`
	Pager     PagerConfig     `toml:"pager" envPrefix:"PAGER_"`
	Source    SourceConfig    `toml:"source" envPrefix:"SOURCE_"`
	Viewer    ViewerConfig    `toml:"viewer" envPrefix:"VIEWER_"`
	Serve     ServeConfig     `toml:"serve" envPrefix:"SERVE_"`
}

type NavigatorConfig struct {
	Radius         float64 `toml:"radius" env:"RADIUS"`
	Margin         float64 `toml:"margin" env:"MARGIN"`
	Color          string  `toml:"color" env:"COLOR"`
	SpeedMS        int     `toml:"speed_ms" env:"SPEED_MS"`
	OverflowBudget int     `toml:"overflow_budget" env:"OVERFLOW_BUDGET"`
}

type PagerConfig struct {
	Width       int     `toml:"width" env:"WIDTH"`
	GapSize     float64 `toml:"gap_size" env:"GAP_SIZE"`
	RadiusRatio float64 `toml:"radius_ratio" env:"RADIUS_RATIO"`
}

type SourceConfig struct {
	CacheDir string        `toml:"cache_dir" env:"CACHE_DIR"`
	CacheTTL time.Duration `toml:"cache_ttl" env:"CACHE_TTL"`
	NoCache  bool          `toml:"no_cache" env:"NO_CACHE"`
	Timeout  time.Duration `toml:"timeout" env:"TIMEOUT"`
	BaseDir  string        `toml:"base_dir" env:"BASE_DIR"`
	Store    string        `toml:"store" env:"STORE"`
}

type ViewerConfig struct {
	Width  int    `toml:"width" env:"WIDTH"`
	Height int    `toml:"height" env:"HEIGHT"`
	Title  string `toml:"title" env:"TITLE"`
}

type ServeConfig struct {
	Addr string `toml:"addr" env:"ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Navigator: NavigatorConfig{
			Radius:         450,
			Margin:         20,
			Color:          navigator.DefaultColor,
			SpeedMS:        int(navigator.DefaultSpeed / time.Millisecond),
			OverflowBudget: navigator.DefaultOverflowBudget,
		},
		Pager: PagerConfig{
			Width:       navigator.DefaultPagerOptions.Width,
			GapSize:     navigator.DefaultPagerOptions.GapSize,
			RadiusRatio: navigator.DefaultPagerOptions.RadiusRatio,
		},
		Source: SourceConfig{
			CacheTTL: 24 * time.Hour,
			Timeout:  10 * time.Second,
		},
		Viewer: ViewerConfig{Width: 940, Height: 940, Title: "packnav"},
		Serve:  ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns ~/.config/packnav/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "packnav", "config.toml")
}

// Load builds the configuration from path and the environment. An empty
// path reads DefaultPath if that file exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !os.IsNotExist(err) {
				return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
			}
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	n, p := c.Navigator, c.Pager
	switch {
	case n.Radius <= 0:
		return errors.Config("navigator.radius", "must be positive, got %v", n.Radius)
	case n.Margin < 0:
		return errors.Config("navigator.margin", "must not be negative, got %v", n.Margin)
	case n.SpeedMS < 0:
		return errors.Config("navigator.speed_ms", "must not be negative, got %d", n.SpeedMS)
	case n.OverflowBudget < 1:
		return errors.Config("navigator.overflow_budget", "must be at least 1, got %d", n.OverflowBudget)
	case p.Width < 1:
		return errors.Config("pager.width", "must be at least 1, got %d", p.Width)
	case p.GapSize < 0 || p.GapSize >= 360:
		return errors.Config("pager.gap_size", "must be in [0, 360), got %v", p.GapSize)
	case p.RadiusRatio <= 0 || p.RadiusRatio > 1:
		return errors.Config("pager.radius_ratio", "must be in (0, 1], got %v", p.RadiusRatio)
	case c.Source.Timeout < 0:
		return errors.Config("source.timeout", "must not be negative")
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return errors.Config("viewer", "size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if _, err := colorful.Hex(n.Color); err != nil {
		return errors.Config("navigator.color", "must be a #RRGGBB color, got %q", n.Color)
	}
	return nil
}

// Speed returns the enter and exit transition duration.
func (n NavigatorConfig) Speed() time.Duration {
	return time.Duration(n.SpeedMS) * time.Millisecond
}

// NavigatorOptions converts the navigator and pager sections.
func (c Config) NavigatorOptions() []navigator.Option {
	n := c.Navigator
	return []navigator.Option{
		navigator.WithRadius(n.Radius),
		navigator.WithMargin(navigator.Margin{Top: n.Margin, Left: n.Margin, Bottom: n.Margin, Right: n.Margin}),
		navigator.WithColor(n.Color),
		navigator.WithSpeed(n.Speed()),
		navigator.WithOverflowBudget(n.OverflowBudget),
		navigator.WithPager(navigator.PagerOptions{
			Width:       c.Pager.Width,
			GapSize:     c.Pager.GapSize,
			RadiusRatio: c.Pager.RadiusRatio,
		}),
	}
}

// Canvas returns the side of the square a navigator with this config
// occupies, margins included.
func (c Config) Canvas() float64 {
	return 2 * (c.Navigator.Radius + c.Navigator.Margin)
}
