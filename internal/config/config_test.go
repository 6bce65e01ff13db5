package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - path: ./assets
pack:
  mode: zip
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "zip", cfg.Pack.Mode)
	assert.Equal(t, "./pack.zip", cfg.Pack.Archive)
	assert.Equal(t, "./.packforge", cfg.Pack.CacheDir)
	assert.Equal(t, KindFiles, cfg.Sources[0].Kind)
	assert.Equal(t, "packforge.builds", cfg.Notify.Subject)

	quiet, err := cfg.Daemon.QuietWindowDuration()
	require.NoError(t, err)
	assert.Equal(t, "2s", quiet.String())
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	path := writeConfig(t, `
pack:
  mode: tarball
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid pack mode")
}

func TestLoadRejectsSourceWithoutPath(t *testing.T) {
	path := writeConfig(t, `
sources:
  - overlay: v2
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "path is required")
}

func TestLoadRejectsNotifyWithoutURL(t *testing.T) {
	path := writeConfig(t, `
notify:
  enabled: true
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "notify.url is required")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
daemon:
  quiet_window: soon
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "quiet_window")
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("PACKFORGE_MODE", "folder")
	t.Setenv("PACKFORGE_DIRECTORY", "/tmp/pack-out")

	path := writeConfig(t, `
pack:
  mode: zip
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "folder", cfg.Pack.Mode)
	assert.Equal(t, "/tmp/pack-out", cfg.Pack.Directory)
}

func TestIntervalEmptyMeansDisabled(t *testing.T) {
	path := writeConfig(t, `
pack:
  mode: none
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	interval, err := cfg.Daemon.IntervalDuration()
	require.NoError(t, err)
	assert.Zero(t, interval)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packforge.yaml")
	require.NoError(t, Init(path, false))
	assert.Error(t, Init(path, false))
	assert.NoError(t, Init(path, true))

	// The generated starter config must load.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zip", cfg.Pack.Mode)
}
