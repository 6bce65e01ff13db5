// Package source turns configured asset roots into the lazily-computed
// resource set consumed by the pack generators.
package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/packforge/internal/config"
	"git.home.luguber.info/inful/packforge/internal/logfields"
	"git.home.luguber.info/inful/packforge/internal/pack"
)

// Meta describes one scan of the asset roots. It travels through the build
// unchanged and ends up on the Result.
type Meta struct {
	BuildID   string
	ScannedAt time.Time
	Sources   int
}

// Provider scans the configured asset roots and exposes each file as a
// lazily-read resource. File bytes are read on first access, at most once.
type Provider struct {
	sources []config.Source
	obf     pack.Pair
}

// NewProvider creates a provider over the given roots. The obfuscator pair
// is applied to model and texture file stems when enabled.
func NewProvider(sources []config.Source, obf pack.Pair) *Provider {
	return &Provider{sources: sources, obf: obf}
}

// BuildResources scans every root and returns the full logical resource set
// for this build. Scanning reads directory metadata only; payloads stay
// lazy.
func (p *Provider) BuildResources() (any, []*pack.Resource, error) {
	var resources []*pack.Resource
	for _, src := range p.sources {
		scanned, err := p.scanRoot(src)
		if err != nil {
			return nil, nil, fmt.Errorf("scan source %s: %w", src.Path, err)
		}
		slog.Debug("Scanned asset source",
			logfields.Source(src.Path),
			logfields.Overlay(src.Overlay),
			logfields.Resources(len(scanned)))
		resources = append(resources, scanned...)
	}
	meta := Meta{
		BuildID:   uuid.NewString(),
		ScannedAt: time.Now(),
		Sources:   len(p.sources),
	}
	return meta, resources, nil
}

func (p *Provider) scanRoot(src config.Source) ([]*pack.Resource, error) {
	var out []*pack.Resource
	err := filepath.WalkDir(src.Path, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src.Path, fp)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath := p.packPath(src.Kind, filepath.ToSlash(rel))
		out = append(out, pack.NewResource(src.Overlay, relPath, info.Size(), loader(fp)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// packPath normalizes a scanned relative path into its in-pack form: NFC
// unicode normalization so identical-looking names from different
// filesystems key identically, plus stem obfuscation for model and texture
// roots.
func (p *Provider) packPath(kind config.SourceKind, rel string) string {
	rel = norm.NFC.String(rel)
	obf := p.obfuscatorFor(kind)
	if obf == nil {
		return rel
	}
	dir, file := path.Split(rel)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	return dir + obf.Obfuscate(stem) + ext
}

func (p *Provider) obfuscatorFor(kind config.SourceKind) pack.Obfuscator {
	switch kind {
	case config.KindModels:
		return p.obf.Models
	case config.KindTextures:
		return p.obf.Textures
	default:
		return nil
	}
}

func loader(path string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}
