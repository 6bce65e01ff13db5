package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pferrors "git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/history"
)

func writeStatusConfig(t *testing.T, historyEnabled bool, dbPath string) string {
	t.Helper()
	cfg := fmt.Sprintf(`
pack:
  mode: none
history:
  enabled: %v
  path: %s
`, historyEnabled, dbPath)
	path := filepath.Join(t.TempDir(), "packforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestStatusShowsRecordedBuilds(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), history.Build{
		ID:        "build-1",
		CreatedAt: time.Now(),
		Mode:      "zip",
		Hash:      "abc",
		Changed:   true,
		Resources: 3,
		Duration:  120 * time.Millisecond,
	}))
	require.NoError(t, store.Close())

	root := &CLI{Config: writeStatusConfig(t, true, dbPath)}
	cmd := &StatusCmd{Limit: 10}
	assert.NoError(t, cmd.Run(&Global{}, root))
}

func TestStatusOnEmptyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	root := &CLI{Config: writeStatusConfig(t, true, dbPath)}
	cmd := &StatusCmd{Limit: 10}
	assert.NoError(t, cmd.Run(&Global{}, root))
}

func TestStatusRequiresHistoryEnabled(t *testing.T) {
	root := &CLI{Config: writeStatusConfig(t, false, "")}
	cmd := &StatusCmd{Limit: 10}
	err := cmd.Run(&Global{}, root)
	require.Error(t, err)
	assert.True(t, pferrors.IsCategory(err, pferrors.CategoryConfig))
}
