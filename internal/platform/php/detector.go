// Package php detects PHP applications managed with Composer.
package php

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/platform"
)

// ComposerFile is the Composer manifest.
const ComposerFile = "composer.json"

// Detector recognizes PHP source trees.
type Detector struct {
	versions platform.VersionResolver
	logger   *slog.Logger
}

var _ platform.Detector = (*Detector)(nil)

// New creates a detector resolving versions through versions. A nil logger
// discards output.
func New(versions platform.VersionResolver, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Detector{
		versions: versions,
		logger:   logger.With("platform", paths.PlatformPHP),
	}
}

// Name returns "php".
func (d *Detector) Name() string {
	return paths.PlatformPHP
}

// Detect matches only when composer.json exists at the root. The version
// constraint is require.php.
func (d *Detector) Detect(ctx context.Context, dctx *platform.DetectionContext) platform.Result {
	r := dctx.Repo
	if !r.FileExists(ComposerFile) {
		d.logger.Debug("no composer.json at root")
		return platform.NoMatch()
	}

	return platform.ResolveVersion(ctx, d.versions, dctx, paths.PlatformPHP, d.logger,
		platform.JSONField(r, ComposerFile, "require.php", d.logger))
}
