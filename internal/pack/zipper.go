package pack

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"git.home.luguber.info/inful/packforge/internal/executor"
)

// DefaultArchiveComment is attached to every generated archive.
const DefaultArchiveComment = "generated by packforge"

// ZipGenerator writes the assembled pack into a single compressed archive,
// but only when the whole-build hash differs from the previous run. The
// archive is written to a temporary file and renamed into place, so a
// failed write never leaves a truncated archive at the configured path.
type ZipGenerator struct {
	Path    string
	Comment string
	fresh   *Freshness
}

// NewZip creates a generator writing the archive at path, using fresh to
// decide whether a rewrite is needed at all.
func NewZip(path string, fresh *Freshness) *ZipGenerator {
	return &ZipGenerator{Path: path, Comment: DefaultArchiveComment, fresh: fresh}
}

func (g *ZipGenerator) Generate(ctx context.Context, provider Provider, pool *executor.Pool) (*Result, error) {
	res, err := assemble(ctx, provider, pool)
	if err != nil {
		return nil, err
	}

	changed := g.fresh.Changed(g.Path, res.Hash())
	res.freeze(changed)
	if !changed {
		return res, nil
	}

	if err := g.write(res); err != nil {
		return nil, fmt.Errorf("write archive %s: %w", g.Path, err)
	}
	// The marker moves only once the archive is in place; a failed write
	// above leaves the old marker, so a retried build writes again.
	if err := g.fresh.Commit(g.Path, res.Hash()); err != nil {
		return nil, err
	}
	return res, nil
}

func (g *ZipGenerator) write(res *Result) error {
	if dir := filepath.Dir(g.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(g.Path), ".packforge-*.zip")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	if err := zw.SetComment(g.Comment); err != nil {
		return err
	}

	for _, key := range res.Keys() {
		data, _ := res.Bytes(key)
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   key.ArchivePath(),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, g.Path); err != nil {
		return err
	}
	ok = true
	return nil
}
