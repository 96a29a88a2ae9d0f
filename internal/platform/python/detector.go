// Package python detects Python applications.
package python

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

const (
	RequirementsFile  = "requirements.txt"
	SetupPyFile       = "setup.py"
	PyprojectFile     = "pyproject.toml"
	RuntimeFile       = "runtime.txt"
	PythonVersionFile = ".python-version"

	// RuntimePrefix precedes the version in runtime.txt, e.g. "python-3.8.2".
	RuntimePrefix = "python-"

	sourcePattern = "*.py"
)

// packagingFiles declare Python dependencies or packaging.
var packagingFiles = []string{RequirementsFile, SetupPyFile, PyprojectFile}

// Detector recognizes Python source trees.
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
		logger:   logger.With("platform", paths.PlatformPython),
	}
}

// Name returns "python".
func (d *Detector) Name() string {
	return paths.PlatformPython
}

// Detect requires a packaging descriptor at the root and either a root *.py
// file or a runtime.txt naming a Python version. The version constraint
// comes from runtime.txt, then .python-version, then requires-python in
// pyproject.toml.
func (d *Detector) Detect(ctx context.Context, dctx *platform.DetectionContext) platform.Result {
	r := dctx.Repo

	descriptor := ""
	for _, name := range packagingFiles {
		if r.FileExists(name) {
			descriptor = name
			break
		}
	}
	if descriptor == "" {
		d.logger.Debug("no requirements.txt, setup.py or pyproject.toml at root")
		return platform.NoMatch()
	}
	d.logger.Debug("found packaging descriptor", "file", descriptor)

	runtimeVersion := d.runtimeVersion(r)
	if runtimeVersion == "" {
		files, err := r.EnumerateFiles(sourcePattern, false)
		if err != nil {
			d.logger.Debug("cannot list root source files", "error", err)
		}
		if len(files) == 0 {
			d.logger.Debug("no python source files at root")
			return platform.NoMatch()
		}
	}

	return platform.ResolveVersion(ctx, d.versions, dctx, paths.PlatformPython, d.logger,
		runtimeVersion,
		d.pythonVersionFile(r),
		d.requiresPython(r))
}

// runtimeVersion returns the version following the python- prefix in
// runtime.txt, matched case-insensitively.
func (d *Detector) runtimeVersion(r repo.SourceRepo) string {
	if !r.FileExists(RuntimeFile) {
		return ""
	}

	text, err := r.ReadFile(RuntimeFile)
	if err != nil {
		d.logger.Warn("cannot read runtime file", "file", RuntimeFile, "error", err)
		return ""
	}

	text = strings.TrimSpace(text)
	if len(text) < len(RuntimePrefix) || !strings.EqualFold(text[:len(RuntimePrefix)], RuntimePrefix) {
		d.logger.Debug("runtime file does not name a python version", "file", RuntimeFile)
		return ""
	}

	version := text[len(RuntimePrefix):]
	if i := strings.IndexAny(version, "\r\n"); i >= 0 {
		version = version[:i]
	}
	d.logger.Debug("found version in runtime file", "version", version)
	return strings.TrimSpace(version)
}

// pythonVersionFile returns the first usable line of .python-version.
func (d *Detector) pythonVersionFile(r repo.SourceRepo) string {
	if !r.FileExists(PythonVersionFile) {
		return ""
	}

	lines, err := r.ReadAllLines(PythonVersionFile)
	if err != nil {
		d.logger.Debug("cannot read version file", "file", PythonVersionFile, "error", err)
		return ""
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if resolver.Valid(line) {
			return line
		}
		d.logger.Debug("ignoring unusable version file entry", "file", PythonVersionFile, "content", line)
		return ""
	}
	return ""
}

// pyproject is the part of pyproject.toml consulted for a version.
type pyproject struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

// requiresPython returns project.requires-python when it parses as a
// constraint. PEP 440 operators without a semver equivalent, such as "~=",
// are ignored.
func (d *Detector) requiresPython(r repo.SourceRepo) string {
	if !r.FileExists(PyprojectFile) {
		return ""
	}

	text, err := r.ReadFile(PyprojectFile)
	if err != nil {
		d.logger.Warn("cannot read manifest", "file", PyprojectFile, "error", err)
		return ""
	}

	var doc pyproject
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		d.logger.Warn("ignoring malformed manifest", "error", platform.Malformed(err, PyprojectFile))
		return ""
	}

	constraint := strings.TrimSpace(doc.Project.RequiresPython)
	if constraint == "" || !resolver.Valid(constraint) {
		if constraint != "" {
			d.logger.Debug("ignoring unusable requires-python", "constraint", constraint)
		}
		return ""
	}
	return constraint
}
