package pack

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/packforge/internal/executor"
)

// Mode selects how a finished resource set is materialized.
type Mode string

const (
	// ModeFolder keeps a directory tree in sync with the resource set.
	ModeFolder Mode = "folder"
	// ModeZip writes a single compressed archive, skipping identical
	// rewrites.
	ModeZip Mode = "zip"
	// ModeNone assembles the pack in memory without touching storage.
	ModeNone Mode = "none"
)

// Generator materializes the resource set produced by a Provider. The three
// implementations share this contract; they differ in their side effect
// (directory sync, archive write, or nothing) and in how the result's
// change flag is derived.
type Generator interface {
	Generate(ctx context.Context, provider Provider, pool *executor.Pool) (*Result, error)
}

// assemble runs every resource through the pool and collects the payloads
// into a fresh result, with no side effects on disk. The first production
// failure aborts the whole build.
func assemble(ctx context.Context, provider Provider, pool *executor.Pool) (*Result, error) {
	meta, resources, err := provider.BuildResources()
	if err != nil {
		return nil, fmt.Errorf("build resources: %w", err)
	}
	res := newResult(meta)
	err = executor.ForEach(ctx, pool, resources, resourceWeight, func(r *Resource) error {
		data, err := r.Bytes()
		if err != nil {
			return fmt.Errorf("produce %s: %w", r.Key().ArchivePath(), err)
		}
		res.Put(r.Key(), data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func resourceWeight(r *Resource) int64 { return r.EstimatedSize() }
