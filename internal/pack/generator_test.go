package pack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/packforge/internal/executor"
)

// staticProvider serves a fixed resource set. Resources are rebuilt on
// every call because a Resource's payload is consumed once per build.
type staticProvider struct {
	meta  any
	files map[Key]string
	fail  map[Key]error
}

func (p *staticProvider) BuildResources() (any, []*Resource, error) {
	var resources []*Resource
	for key, content := range p.files {
		if err, ok := p.fail[key]; ok {
			resources = append(resources, NewResource(key.Overlay, key.Path, int64(len(content)), func() ([]byte, error) {
				return nil, err
			}))
			continue
		}
		resources = append(resources, NewResource(key.Overlay, key.Path, int64(len(content)), func() ([]byte, error) {
			return []byte(content), nil
		}))
	}
	return p.meta, resources, nil
}

func testPool() *executor.Pool { return executor.New(4) }

func TestMemoryGeneratorAlwaysChanged(t *testing.T) {
	provider := &staticProvider{files: map[Key]string{
		{Path: "a.txt"}: "hi",
		{Path: "b.txt"}: "ho",
	}}
	gen := NewMemory()

	for i := 0; i < 2; i++ {
		res, err := gen.Generate(context.Background(), provider, testPool())
		require.NoError(t, err)
		assert.True(t, res.Changed(), "in-memory builds have no prior state to compare against")
		assert.Equal(t, 2, res.Len())
		assert.Empty(t, res.TargetDir())
	}
}

func TestMemoryGeneratorHashStableAcrossRuns(t *testing.T) {
	provider := &staticProvider{files: map[Key]string{
		{Path: "models/x.json"}:           "model",
		{Path: "textures/y.png"}:          "texture",
		{Overlay: "v2", Path: "a/b.json"}: "overlay",
	}}
	gen := NewMemory()

	first, err := gen.Generate(context.Background(), provider, testPool())
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), provider, testPool())
	require.NoError(t, err)
	assert.Equal(t, first.Hash(), second.Hash())
}

func TestAssembleAbortsOnResourceFailure(t *testing.T) {
	boom := errors.New("texture render failed")
	provider := &staticProvider{
		files: map[Key]string{
			{Path: "good.txt"}: "ok",
			{Path: "bad.txt"}:  "",
		},
		fail: map[Key]error{{Path: "bad.txt"}: boom},
	}

	_, err := NewMemory().Generate(context.Background(), provider, testPool())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestAssembleHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &staticProvider{files: map[Key]string{{Path: "a.txt"}: "hi"}}
	_, err := NewMemory().Generate(ctx, provider, testPool())
	assert.ErrorIs(t, err, context.Canceled)
}
