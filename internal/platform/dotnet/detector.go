// Package dotnet detects .NET Core applications from their project files.
package dotnet

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
)

// Project describes the project file an inspector chose.
type Project struct {
	// File is the project path relative to the tree root.
	File string

	// TargetFramework is the framework moniker, e.g. "netcoreapp3.1".
	TargetFramework string

	// RuntimeVersion is the runtime constraint derived from TargetFramework,
	// empty when the moniker does not name a .NET Core runtime.
	RuntimeVersion string
}

// ProjectInspector locates a .NET project in a source tree.
type ProjectInspector interface {
	// Inspect returns the project and true when r holds one.
	Inspect(ctx context.Context, r repo.SourceRepo) (Project, bool)
}

// Option configures a Detector.
type Option func(*Detector)

// WithInspector replaces the default project file inspector.
func WithInspector(i ProjectInspector) Option {
	return func(d *Detector) {
		d.inspector = i
	}
}

// Detector recognizes .NET Core source trees.
type Detector struct {
	versions  platform.VersionResolver
	inspector ProjectInspector
	logger    *slog.Logger
}

var _ platform.Detector = (*Detector)(nil)

// New creates a detector resolving versions through versions. A nil logger
// discards output. Without WithInspector, root *.csproj files are read.
func New(versions platform.VersionResolver, logger *slog.Logger, opts ...Option) *Detector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	d := &Detector{
		versions: versions,
		logger:   logger.With("platform", paths.PlatformDotNet),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.inspector == nil {
		d.inspector = &CSProjInspector{Logger: d.logger}
	}
	return d
}

// Name returns "dotnet".
func (d *Detector) Name() string {
	return paths.PlatformDotNet
}

// Detect matches when the inspector finds a project. The version constraint
// is the runtime version the project targets.
func (d *Detector) Detect(ctx context.Context, dctx *platform.DetectionContext) platform.Result {
	project, ok := d.inspector.Inspect(ctx, dctx.Repo)
	if !ok {
		d.logger.Debug("no .NET project found")
		return platform.NoMatch()
	}

	d.logger.Debug("found project",
		"file", project.File,
		"target_framework", project.TargetFramework,
		"runtime", project.RuntimeVersion)

	return platform.ResolveVersion(ctx, d.versions, dctx, paths.PlatformDotNet, d.logger, project.RuntimeVersion)
}
