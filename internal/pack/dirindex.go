package pack

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
)

// directoryIndex snapshots the files under the sync root at build start.
// Entries are claimed (removed) as resources map onto existing files; what
// remains after the build is stale output from a previous run.
type directoryIndex struct {
	mu      sync.Mutex
	entries map[string]struct{}
}

func snapshotDirectory(root string) (*directoryIndex, error) {
	idx := &directoryIndex{entries: make(map[string]struct{})}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		idx.entries[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// claim removes rel from the index, reporting whether it was present. Safe
// for concurrent producers.
func (idx *directoryIndex) claim(rel string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.entries[rel]; ok {
		delete(idx.entries, rel)
		return true
	}
	return false
}

// remaining lists unclaimed entries in reverse lexicographic order, so
// children enumerate before their parents during cleanup.
func (idx *directoryIndex) remaining() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]string, 0, len(idx.entries))
	for rel := range idx.entries {
		out = append(out, rel)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

func (idx *directoryIndex) len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.entries)
}
