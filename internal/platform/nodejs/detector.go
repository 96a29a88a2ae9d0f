// Package nodejs detects Node.js applications and static sites built with
// Node tooling.
package nodejs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

const (
	PackageJSONFile     = "package.json"
	PackageLockJSONFile = "package-lock.json"
	YarnLockFile        = "yarn.lock"
	NvmrcFile           = ".nvmrc"
	NodeVersionFile     = ".node-version"
)

// manifestFiles identify a Node.js project on their own.
var manifestFiles = []string{PackageJSONFile, PackageLockJSONFile, YarnLockFile}

// entryFiles suggest a Node.js server when no manifest exists.
var entryFiles = []string{"server.js", "app.js"}

// startupPages belong to sites served by IIS. Any of them rules out the
// entry-file fallback.
var startupPages = []string{
	"default.htm",
	"default.html",
	"default.asp",
	"index.htm",
	"index.html",
	"iisstart.htm",
	"default.aspx",
	"index.php",
}

// Detector recognizes Node.js source trees.
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
		logger:   logger.With("platform", paths.PlatformNodeJS),
	}
}

// Name returns "nodejs".
func (d *Detector) Name() string {
	return paths.PlatformNodeJS
}

// Detect matches on a manifest or lock file, then a Hugo configuration, then
// server.js or app.js without any IIS startup page. The version constraint
// comes from engines.node in package.json, then .nvmrc or .node-version.
func (d *Detector) Detect(ctx context.Context, dctx *platform.DetectionContext) platform.Result {
	r := dctx.Repo
	if !d.isNodeApp(r) {
		return platform.NoMatch()
	}

	return platform.ResolveVersion(ctx, d.versions, dctx, paths.PlatformNodeJS, d.logger,
		platform.JSONField(r, PackageJSONFile, "engines.node", d.logger),
		d.versionFile(r))
}

func (d *Detector) isNodeApp(r repo.SourceRepo) bool {
	for _, name := range manifestFiles {
		if r.FileExists(name) {
			d.logger.Debug("found manifest", "file", name)
			return true
		}
	}

	if IsHugoSite(r, d.logger) {
		d.logger.Debug("found hugo site configuration")
		return true
	}

	hasEntry := false
	for _, name := range entryFiles {
		if r.FileExists(name) {
			hasEntry = true
			break
		}
	}
	if !hasEntry {
		d.logger.Debug("no node manifest or entry file")
		return false
	}

	for _, page := range startupPages {
		if r.FileExists(page) {
			d.logger.Debug("startup page rules out node entry file", "file", page)
			return false
		}
	}
	return true
}

// versionFile reads the first line of .nvmrc or .node-version. A leading "v"
// is dropped and aliases such as "lts/*" or "node" are ignored.
func (d *Detector) versionFile(r repo.SourceRepo) string {
	for _, name := range []string{NvmrcFile, NodeVersionFile} {
		if !r.FileExists(name) {
			continue
		}
		lines, err := r.ReadAllLines(name)
		if err != nil || len(lines) == 0 {
			continue
		}

		hint := strings.TrimSpace(lines[0])
		hint = strings.TrimPrefix(strings.TrimPrefix(hint, "v"), "V")
		if !resolver.Valid(hint) {
			d.logger.Debug("ignoring unusable version file", "file", name, "content", hint)
			continue
		}
		return hint
	}
	return ""
}
