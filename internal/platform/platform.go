package platform

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/repo"
)

// Status is the outcome kind of a single detector run.
type Status int

const (
	// StatusNoMatch means the source tree does not target the platform.
	StatusNoMatch Status = iota

	// StatusMatched means the platform was recognized and a version resolved.
	StatusMatched

	// StatusFailed means the platform was recognized but its version could
	// not be resolved. A failed result ends the detection pass.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoMatch:
		return "no_match"
	case StatusMatched:
		return "matched"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what a Detector reports for one source tree.
type Result struct {
	Status   Status
	Platform string
	Version  string
	Err      error

	// Constraint is the version constraint that was resolved. Empty selects
	// the catalog default.
	Constraint string
}

// NoMatch returns a result meaning "not this platform".
func NoMatch() Result {
	return Result{Status: StatusNoMatch}
}

// Match returns a successful result.
func Match(platform, version string) Result {
	return Result{Status: StatusMatched, Platform: platform, Version: version}
}

// Fail returns a result carrying a fatal error.
func Fail(platform string, err error) Result {
	return Result{Status: StatusFailed, Platform: platform, Err: err}
}

// DetectionContext is the input of a detection pass. It is not modified by
// detectors.
type DetectionContext struct {
	// Repo is the source tree under inspection.
	Repo repo.SourceRepo

	// ResolvedVersions holds versions already chosen for a platform, keyed by
	// platform name. A present entry takes precedence over any hint found in
	// the tree.
	ResolvedVersions map[string]string
}

// ResolvedVersion returns the preset version for platform, if any.
func (c *DetectionContext) ResolvedVersion(platform string) (string, bool) {
	if c == nil || c.ResolvedVersions == nil {
		return "", false
	}
	v, ok := c.ResolvedVersions[platform]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Detector recognizes one platform from structural signals in a source tree.
//
// Implementations must not modify the tree and must be safe for concurrent use.
type Detector interface {
	// Name returns the platform identifier (dotnet, php, python, nodejs).
	Name() string

	// Detect evaluates the tree. It returns StatusFailed only when the
	// platform matched but version resolution failed.
	Detect(ctx context.Context, dctx *DetectionContext) Result
}

// VersionResolver turns a version constraint into a concrete supported
// version. An empty constraint selects the platform default.
type VersionResolver interface {
	Resolve(ctx context.Context, constraint string) (string, error)
}

// ResolveVersion completes a structural match. The constraint is the preset
// version from dctx when present, otherwise the first non-empty hint in
// order, otherwise empty so the resolver applies the default. The logger is
// expected to carry the platform attribute already; a nil logger falls back to
// the context logger scoped to platform.
func ResolveVersion(
	ctx context.Context,
	versions VersionResolver,
	dctx *DetectionContext,
	platform string,
	logger *slog.Logger,
	hints ...string,
) Result {
	if logger == nil {
		logger = logging.FromContext(ctx).With("platform", platform)
	}

	constraint, ok := dctx.ResolvedVersion(platform)
	if ok {
		logger.Debug("using preset version", "constraint", constraint)
	} else {
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				constraint = hint
				break
			}
		}
	}

	version, err := versions.Resolve(ctx, constraint)
	if err != nil {
		logger.Debug("version resolution failed", "constraint", constraint, "error", err)
		res := Fail(platform, err)
		res.Constraint = constraint
		return res
	}

	logger.Debug("resolved version", "constraint", constraint, "version", version)
	res := Match(platform, version)
	res.Constraint = constraint
	return res
}

// Malformed tags a manifest decoding failure. Such failures are logged and
// never returned from a detector.
func Malformed(err error, file string) error {
	return errors.Mark(errors.Wrapf(err, "parsing %s", file), errors.ErrMalformedManifest)
}
