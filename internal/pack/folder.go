package pack

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"git.home.luguber.info/inful/packforge/internal/executor"
)

// FolderGenerator keeps a directory tree in sync with the produced resource
// set: it writes only files whose length differs, creates what is missing,
// and removes what is no longer produced.
type FolderGenerator struct {
	Dir string
}

// NewFolder creates a generator syncing into dir.
func NewFolder(dir string) *FolderGenerator {
	return &FolderGenerator{Dir: dir}
}

func (g *FolderGenerator) Generate(ctx context.Context, provider Provider, pool *executor.Pool) (*Result, error) {
	meta, resources, err := provider.BuildResources()
	if err != nil {
		return nil, fmt.Errorf("build resources: %w", err)
	}
	if err := os.MkdirAll(g.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create sync root %s: %w", g.Dir, err)
	}
	idx, err := snapshotDirectory(g.Dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot sync root: %w", err)
	}

	res := newResult(meta)
	res.targetDir = g.Dir
	var changed atomic.Bool

	err = executor.ForEach(ctx, pool, resources, resourceWeight, func(r *Resource) error {
		data, err := r.Bytes()
		if err != nil {
			return fmt.Errorf("produce %s: %w", r.Key().ArchivePath(), err)
		}
		res.Put(r.Key(), data)

		rel := filepath.FromSlash(r.Key().ArchivePath())
		target := filepath.Join(g.Dir, rel)
		if !idx.claim(rel) {
			if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
				return fmt.Errorf("create parent for %s: %w", rel, err)
			}
		}

		// Length is the only per-file change heuristic. A rewrite with
		// different bytes of identical length is not detected; the
		// whole-build hash path (zip mode) is the one that catches it.
		if info, err := os.Stat(target); err == nil && info.Size() == int64(len(data)) {
			return nil
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		changed.Store(true)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if stale := idx.len(); stale > 0 {
		slog.Debug("Removing stale pack files", "count", stale, "dir", g.Dir)
	}
	for _, rel := range idx.remaining() {
		if err := os.Remove(filepath.Join(g.Dir, rel)); err != nil {
			return nil, fmt.Errorf("remove stale %s: %w", rel, err)
		}
		changed.Store(true)
	}

	res.freeze(changed.Load())
	return res, nil
}
