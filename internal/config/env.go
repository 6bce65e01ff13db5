package config

import "os"

// applyEnvOverrides maps PACKFORGE_* environment variables onto config
// fields. Environment wins over the file; CLI flags (handled by the caller)
// win over both.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PACKFORGE_MODE"); v != "" {
		cfg.Pack.Mode = v
	}
	if v := os.Getenv("PACKFORGE_DIRECTORY"); v != "" {
		cfg.Pack.Directory = v
	}
	if v := os.Getenv("PACKFORGE_ARCHIVE"); v != "" {
		cfg.Pack.Archive = v
	}
	if v := os.Getenv("PACKFORGE_CACHE_DIR"); v != "" {
		cfg.Pack.CacheDir = v
	}
	if v := os.Getenv("PACKFORGE_NATS_URL"); v != "" {
		cfg.Notify.URL = v
	}
	if v := os.Getenv("PACKFORGE_OBFUSCATION"); v != "" {
		cfg.Pack.Obfuscation = v == "1" || v == "true"
	}
}
