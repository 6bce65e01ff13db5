package pack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
)

// Result is the in-memory outcome of one finished build: a table of
// produced bytes keyed by (overlay, path), the provider's metadata, and a
// write-once change flag frozen by the producing generator.
type Result struct {
	mu        sync.Mutex
	entries   map[Key][]byte
	meta      any
	targetDir string
	frozen    bool
	changed   bool
}

func newResult(meta any) *Result {
	return &Result{entries: make(map[Key][]byte), meta: meta}
}

// Meta returns the provider metadata, passed through unchanged.
func (r *Result) Meta() any { return r.meta }

// TargetDir returns the filesystem root this result is tied to. It is empty
// for archive and in-memory builds.
func (r *Result) TargetDir() string { return r.targetDir }

// Put inserts one produced resource. Safe for concurrent producers.
func (r *Result) Put(key Key, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("pack: Put on frozen result")
	}
	r.entries[key] = data
}

// Len returns the number of produced resources.
func (r *Result) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Bytes returns the payload stored under key.
func (r *Result) Bytes(key Key) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.entries[key]
	return data, ok
}

// Keys returns all keys in canonical order (overlay, then path). Iterating
// a finished result in this order is what makes byte-identical inputs
// produce byte-identical archives.
func (r *Result) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Hash returns a hex-encoded sha256 digest over the canonical key/byte
// view. Insertion order does not influence the digest.
func (r *Result) Hash() string {
	h := sha256.New()
	for _, key := range r.Keys() {
		data, _ := r.Bytes(key)
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00", key.Overlay, key.Path, len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// freeze records the change outcome. A result is frozen exactly once, by
// the generator that produced it.
func (r *Result) freeze(changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("pack: result frozen twice")
	}
	r.frozen = true
	r.changed = changed
}

// Changed reports whether this build differed from the previous one.
// Calling it before the generator has frozen the result is a bug and
// panics.
func (r *Result) Changed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.frozen {
		panic("pack: Changed read before freeze")
	}
	return r.changed
}
