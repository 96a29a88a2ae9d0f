package dotnet

import (
	"context"
	"encoding/xml"
	"log/slog"
	"regexp"
	"strings"

	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
)

// ProjectFilePattern matches C# project files.
const ProjectFilePattern = "*.csproj"

// monikerPattern matches netcoreappX.Y and netX.Y monikers, ignoring an OS
// suffix such as "-windows".
var monikerPattern = regexp.MustCompile(`^net(?:coreapp)?(\d+\.\d+)(?:-.*)?$`)

// CSProjInspector reads TargetFramework from project files at the tree root.
type CSProjInspector struct {
	Logger *slog.Logger
}

var _ ProjectInspector = (*CSProjInspector)(nil)

type projectFile struct {
	PropertyGroups []struct {
		TargetFramework  string `xml:"TargetFramework"`
		TargetFrameworks string `xml:"TargetFrameworks"`
	} `xml:"PropertyGroup"`
}

// Inspect picks the first root project, in name order, that targets a .NET
// Core runtime, or else the first project found. A project whose XML cannot
// be decoded still counts as a project without a version.
func (i *CSProjInspector) Inspect(ctx context.Context, r repo.SourceRepo) (Project, bool) {
	logger := i.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	files, err := r.EnumerateFiles(ProjectFilePattern, false)
	if err != nil {
		logger.Debug("cannot list project files", "error", err)
		return Project{}, false
	}
	if len(files) == 0 {
		return Project{}, false
	}

	first := Project{File: files[0]}
	for n, file := range files {
		project := Project{File: file}

		text, err := r.ReadFile(file)
		if err != nil {
			logger.Warn("cannot read project file", "file", file, "error", err)
			continue
		}

		var doc projectFile
		if err := xml.Unmarshal([]byte(text), &doc); err != nil {
			logger.Warn("ignoring malformed project file", "error", platform.Malformed(err, file))
			continue
		}

		project.TargetFramework = targetFramework(doc)
		project.RuntimeVersion = RuntimeVersion(project.TargetFramework)
		if project.RuntimeVersion != "" {
			return project, true
		}
		if n == 0 {
			first = project
		}
	}
	return first, true
}

// targetFramework returns the first framework declared by any property group.
func targetFramework(doc projectFile) string {
	for _, g := range doc.PropertyGroups {
		if tf := strings.TrimSpace(g.TargetFramework); tf != "" {
			return tf
		}
		for _, tf := range strings.Split(g.TargetFrameworks, ";") {
			if tf = strings.TrimSpace(tf); RuntimeVersion(tf) != "" {
				return tf
			}
		}
	}
	return ""
}

// RuntimeVersion maps a target framework moniker to a runtime version
// constraint: "netcoreapp3.1" and "net5.0" give "3.1" and "5.0". Monikers of
// .NET Framework ("net48") and .NET Standard give "".
func RuntimeVersion(moniker string) string {
	m := monikerPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(moniker)))
	if m == nil {
		return ""
	}
	return m[1]
}
