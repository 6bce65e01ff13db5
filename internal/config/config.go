// Package config loads and validates the packforge configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceKind classifies an asset root; it decides which obfuscator
// namespace applies to the files found under it.
type SourceKind string

const (
	KindModels   SourceKind = "models"
	KindTextures SourceKind = "textures"
	KindFiles    SourceKind = "files"
)

// Source is one asset root contributing resources to the pack.
type Source struct {
	Path    string     `yaml:"path"`
	Overlay string     `yaml:"overlay,omitempty"` // empty = pack root
	Kind    SourceKind `yaml:"kind,omitempty"`    // defaults to files
	Git     *GitSource `yaml:"git,omitempty"`     // optional git-backed root
}

// GitSource configures fetching an asset root from a git remote before the
// scan.
type GitSource struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// PackConfig selects the build mode and its outputs.
type PackConfig struct {
	Mode        string `yaml:"mode"`                // folder|zip|none
	Directory   string `yaml:"directory,omitempty"` // folder mode sync root
	Archive     string `yaml:"archive,omitempty"`   // zip mode output path
	Comment     string `yaml:"comment,omitempty"`   // zip archive comment
	Obfuscation bool   `yaml:"obfuscation"`
	CacheDir    string `yaml:"cache_dir,omitempty"`
	Workers     int    `yaml:"workers,omitempty"` // 0 = NumCPU
}

// DaemonConfig controls the watch/rebuild daemon. Durations are strings in
// time.ParseDuration format.
type DaemonConfig struct {
	Watch       bool   `yaml:"watch"`
	QuietWindow string `yaml:"quiet_window,omitempty"`
	MaxDelay    string `yaml:"max_delay,omitempty"`
	Interval    string `yaml:"interval,omitempty"` // periodic rebuild, empty = disabled
	DataDir     string `yaml:"data_dir,omitempty"`
}

// NotifyConfig controls NATS change notifications.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint exposed by the daemon.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen,omitempty"`
}

// HistoryConfig controls the SQLite build history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // defaults under daemon data dir
}

// Config is the application configuration.
type Config struct {
	Sources []Source      `yaml:"sources"`
	Pack    PackConfig    `yaml:"pack"`
	Daemon  DaemonConfig  `yaml:"daemon"`
	Notify  NotifyConfig  `yaml:"notify"`
	Metrics MetricsConfig `yaml:"metrics"`
	History HistoryConfig `yaml:"history"`
}

// Load reads the configuration file, applies .env files, environment
// overrides, defaults, and validation.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env/.env.local into the process environment. Existing
// variables are never overwritten; a missing file is not an error.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", name)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Pack.Mode == "" {
		cfg.Pack.Mode = "none"
	}
	if cfg.Pack.Directory == "" {
		cfg.Pack.Directory = "./pack"
	}
	if cfg.Pack.Archive == "" {
		cfg.Pack.Archive = "./pack.zip"
	}
	if cfg.Pack.CacheDir == "" {
		cfg.Pack.CacheDir = "./.packforge"
	}
	if cfg.Daemon.QuietWindow == "" {
		cfg.Daemon.QuietWindow = "2s"
	}
	if cfg.Daemon.MaxDelay == "" {
		cfg.Daemon.MaxDelay = "30s"
	}
	if cfg.Daemon.DataDir == "" {
		cfg.Daemon.DataDir = "./daemon-data"
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "packforge.builds"
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9190"
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].Kind == "" {
			cfg.Sources[i].Kind = KindFiles
		}
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Pack.Mode {
	case "folder", "zip", "none":
	default:
		return fmt.Errorf("invalid pack mode %q (want folder, zip, or none)", c.Pack.Mode)
	}
	for i, src := range c.Sources {
		if src.Path == "" {
			return fmt.Errorf("sources[%d]: path is required", i)
		}
		switch src.Kind {
		case KindModels, KindTextures, KindFiles:
		default:
			return fmt.Errorf("sources[%d]: invalid kind %q", i, src.Kind)
		}
		if src.Git != nil && src.Git.URL == "" {
			return fmt.Errorf("sources[%d]: git.url is required when git is set", i)
		}
	}
	if _, err := c.Daemon.QuietWindowDuration(); err != nil {
		return fmt.Errorf("daemon.quiet_window: %w", err)
	}
	if _, err := c.Daemon.MaxDelayDuration(); err != nil {
		return fmt.Errorf("daemon.max_delay: %w", err)
	}
	if _, err := c.Daemon.IntervalDuration(); err != nil {
		return fmt.Errorf("daemon.interval: %w", err)
	}
	if c.Notify.Enabled && c.Notify.URL == "" {
		return fmt.Errorf("notify.url is required when notify is enabled")
	}
	return nil
}

// QuietWindowDuration parses the debounce quiet window.
func (d *DaemonConfig) QuietWindowDuration() (time.Duration, error) {
	return time.ParseDuration(d.QuietWindow)
}

// MaxDelayDuration parses the debounce max delay.
func (d *DaemonConfig) MaxDelayDuration() (time.Duration, error) {
	return time.ParseDuration(d.MaxDelay)
}

// IntervalDuration parses the periodic rebuild interval. Empty means
// disabled and parses as zero.
func (d *DaemonConfig) IntervalDuration() (time.Duration, error) {
	if d.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(d.Interval)
}
