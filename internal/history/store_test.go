package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	first := Build{
		ID:        "build-1",
		CreatedAt: base.Add(-time.Minute),
		Mode:      "zip",
		Hash:      "aaa",
		Changed:   true,
		Resources: 12,
		Duration:  250 * time.Millisecond,
	}
	second := Build{
		ID:        "build-2",
		CreatedAt: base,
		Mode:      "zip",
		Hash:      "aaa",
		Changed:   false,
		Resources: 12,
		Duration:  40 * time.Millisecond,
	}
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	builds, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	assert.Equal(t, "build-2", builds[0].ID, "newest first")
	assert.False(t, builds[0].Changed)
	assert.Equal(t, "build-1", builds[1].ID)
	assert.True(t, builds[1].Changed)
	assert.Equal(t, 250*time.Millisecond, builds[1].Duration)
	assert.True(t, builds[1].CreatedAt.Equal(first.CreatedAt))
}

func TestRecentHonorsLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, Build{
			ID:        "build-" + string(rune('a'+i)),
			CreatedAt: time.Now(),
			Mode:      "none",
			Hash:      "h",
		}))
	}
	builds, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, builds, 3)
}

func TestRecentOnEmptyStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	builds, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, builds)
}
