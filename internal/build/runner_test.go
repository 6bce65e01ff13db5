package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/packforge/internal/config"
	"git.home.luguber.info/inful/packforge/internal/history"
	"git.home.luguber.info/inful/packforge/internal/pack"
)

func testConfig(t *testing.T, mode string) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hi"), 0o644))

	out := t.TempDir()
	return &config.Config{
		Sources: []config.Source{{Path: root, Kind: config.KindFiles}},
		Pack: config.PackConfig{
			Mode:      mode,
			Directory: filepath.Join(out, "pack"),
			Archive:   filepath.Join(out, "pack.zip"),
			CacheDir:  filepath.Join(out, "cache"),
		},
	}
}

func TestRunnerRunsInMemoryBuild(t *testing.T) {
	runner := NewRunner(testConfig(t, "none"))
	res, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Equal(t, 1, res.Len())
}

func TestRunnerZipModeDetectsUnchanged(t *testing.T) {
	cfg := testConfig(t, "zip")
	runner := NewRunner(cfg)

	res, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.FileExists(t, cfg.Pack.Archive)

	res, err = runner.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Changed(), "the second identical build is a no-op")
}

func TestRunnerRecordsHistory(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	runner := NewRunner(testConfig(t, "none")).WithHistory(store)
	res, err := runner.Run(context.Background())
	require.NoError(t, err)

	builds, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, res.Hash(), builds[0].Hash)
	assert.Equal(t, "none", builds[0].Mode)
	assert.True(t, builds[0].Changed)
	assert.NotEmpty(t, builds[0].ID)
}

func TestRunnerGeneratorSelection(t *testing.T) {
	cfg := testConfig(t, "folder")
	gen, err := NewRunner(cfg).Generator()
	require.NoError(t, err)
	assert.IsType(t, &pack.FolderGenerator{}, gen)

	cfg.Pack.Mode = "zip"
	gen, err = NewRunner(cfg).Generator()
	require.NoError(t, err)
	assert.IsType(t, &pack.ZipGenerator{}, gen)

	cfg.Pack.Mode = "none"
	gen, err = NewRunner(cfg).Generator()
	require.NoError(t, err)
	assert.IsType(t, &pack.MemoryGenerator{}, gen)

	cfg.Pack.Mode = "bogus"
	_, err = NewRunner(cfg).Generator()
	assert.Error(t, err)
}
