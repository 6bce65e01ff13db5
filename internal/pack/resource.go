package pack

import "sync"

// Key identifies one produced resource within a build: a slash-separated
// relative path inside an overlay. The empty overlay is the pack root.
type Key struct {
	Overlay string
	Path    string
}

// ArchivePath folds the overlay into a single slash-separated relative path,
// the form used for archive entry names and sync targets.
func (k Key) ArchivePath() string {
	if k.Overlay == "" {
		return k.Path
	}
	return k.Overlay + "/" + k.Path
}

// Less orders keys canonically: by overlay, then by path.
func (k Key) Less(other Key) bool {
	if k.Overlay != other.Overlay {
		return k.Overlay < other.Overlay
	}
	return k.Path < other.Path
}

// Resource is one lazily-computed unit of pack output. The payload is
// produced at most once; the estimated size is a scheduling weight only and
// carries no correctness meaning.
type Resource struct {
	key  Key
	size int64
	once sync.Once
	data []byte
	err  error
	load func() ([]byte, error)
}

// NewResource creates a resource whose payload is computed by load on first
// access.
func NewResource(overlay, path string, estimatedSize int64, load func() ([]byte, error)) *Resource {
	return &Resource{key: Key{Overlay: overlay, Path: path}, size: estimatedSize, load: load}
}

// Key returns the resource's (overlay, path) identity.
func (r *Resource) Key() Key { return r.key }

// EstimatedSize returns the scheduling weight for this resource.
func (r *Resource) EstimatedSize() int64 { return r.size }

// Bytes computes the resource payload, invoking the loader at most once.
// Concurrent callers observe the same payload and error.
func (r *Resource) Bytes() ([]byte, error) {
	r.once.Do(func() {
		r.data, r.err = r.load()
		r.load = nil
	})
	return r.data, r.err
}

// Provider produces the full logical resource set for one build, together
// with opaque build metadata that is passed through to the Result unchanged.
type Provider interface {
	BuildResources() (meta any, resources []*Resource, err error)
}
