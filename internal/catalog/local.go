package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

// LocalProvider lists runtimes installed under Dir, one subdirectory per
// version. Subdirectories whose names are not complete semantic versions
// (for example "lts" or "latest" aliases) and regular files are ignored.
type LocalProvider struct {
	Platform       string
	Dir            string
	DefaultVersion string
	Logger         *slog.Logger
}

var _ Provider = (*LocalProvider)(nil)

// Source returns SourceLocal.
func (p *LocalProvider) Source() Source {
	return SourceLocal
}

// Catalog scans Dir. A missing Dir yields an empty catalog, not an error.
func (p *LocalProvider) Catalog(ctx context.Context) (*Catalog, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	cat := &Catalog{
		Platform: p.Platform,
		Source:   SourceLocal,
		Default:  p.DefaultVersion,
	}

	logger.Debug("listing installed versions", "platform", p.Platform, "dir", p.Dir)

	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("install directory does not exist", "platform", p.Platform, "dir", p.Dir)
			cat.Supported = []string{}
			return cat, nil
		}
		return nil, errors.Mark(
			errors.Wrapf(err, "listing installed %s versions in %s", p.Platform, p.Dir),
			errors.ErrCatalogLoad)
	}

	var names []string
	for _, entry := range entries {
		if !p.isDir(entry) {
			continue
		}
		name := entry.Name()
		if !resolver.IsStrict(name) {
			logger.Debug("ignoring non-version directory", "platform", p.Platform, "name", name)
			continue
		}
		names = append(names, name)
	}

	cat.Supported = resolver.Sort(names)
	logger.Debug("found installed versions", "platform", p.Platform, "count", len(cat.Supported))
	return cat, nil
}

// isDir follows symlinks so aliased installs are listed.
func (p *LocalProvider) isDir(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(p.Dir, entry.Name()))
	return err == nil && info.IsDir()
}
