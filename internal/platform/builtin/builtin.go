// Package builtin registers the detectors shipped with platdetect.
package builtin

import (
	"log/slog"

	"github.com/thoreinstein/platdetect/internal/catalog"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/platform/dotnet"
	"github.com/thoreinstein/platdetect/internal/platform/nodejs"
	"github.com/thoreinstein/platdetect/internal/platform/php"
	"github.com/thoreinstein/platdetect/internal/platform/python"
)

// NewDetector returns the detector for name backed by versions.
func NewDetector(name string, versions platform.VersionResolver, logger *slog.Logger) (platform.Detector, error) {
	switch name {
	case paths.PlatformDotNet:
		return dotnet.New(versions, logger), nil
	case paths.PlatformPHP:
		return php.New(versions, logger), nil
	case paths.PlatformPython:
		return python.New(versions, logger), nil
	case paths.PlatformNodeJS:
		return nodejs.New(versions, logger), nil
	default:
		return nil, errors.Wrapf(platform.ErrUnknownPlatform, "%q", name)
	}
}

// Registry registers one detector per platform in set. Platforms missing
// from set are skipped.
func Registry(set catalog.Set, logger *slog.Logger) (*platform.Registry, error) {
	reg := platform.NewRegistry()
	for _, name := range paths.Platforms() {
		versions, ok := set[name]
		if !ok {
			continue
		}
		d, err := NewDetector(name, versions, logger)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
