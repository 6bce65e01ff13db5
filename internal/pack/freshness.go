package pack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Freshness persists the previous build hash in a marker file under a
// private cache directory and reports whether a new hash differs. It is the
// whole-build counterpart to the per-file length heuristic used by the
// folder generator. Checking and recording are separate steps: the marker
// is committed only after the caller has durably written the output, so a
// failed write keeps the build detectable as changed on the next run.
type Freshness struct {
	dir string
}

// NewFreshness creates a detector storing markers under
// cacheDir/freshness.
func NewFreshness(cacheDir string) *Freshness {
	return &Freshness{dir: filepath.Join(cacheDir, "freshness")}
}

// Changed compares hash against the marker recorded for key (typically the
// configured output path). A missing or unreadable marker counts as
// changed. Read-only; the marker is untouched.
func (f *Freshness) Changed(key, hash string) bool {
	prev, err := os.ReadFile(f.markerPath(key))
	return err != nil || string(prev) != hash
}

// Commit records hash as the current marker for key. Call it only once the
// output the hash describes is in place.
func (f *Freshness) Commit(key, hash string) error {
	if err := os.MkdirAll(f.dir, 0o750); err != nil {
		return fmt.Errorf("create freshness dir: %w", err)
	}
	if err := os.WriteFile(f.markerPath(key), []byte(hash), 0o644); err != nil {
		return fmt.Errorf("write freshness marker: %w", err)
	}
	return nil
}

// markerPath derives a stable marker filename from the detector key so
// independent outputs get independent markers.
func (f *Freshness) markerPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:8])+".hash")
}
