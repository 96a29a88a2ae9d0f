package dotnet

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/thoreinstein/platdetect/internal/catalog"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
)

const webProject = `<Project Sdk="Microsoft.NET.Sdk.Web">
  <PropertyGroup>
    <TargetFramework>netcoreapp3.1</TargetFramework>
  </PropertyGroup>
</Project>`

func testVersions() *catalog.Versions {
	return catalog.NewVersions("dotnet", &catalog.StaticProvider{
		Platform:       "dotnet",
		Versions:       []string{"2.1.17", "3.1.2", "3.1.3", "5.0.0"},
		DefaultVersion: "3.1.2",
	})
}

type fakeInspector struct {
	project Project
	found   bool
}

func (f fakeInspector) Inspect(context.Context, repo.SourceRepo) (Project, bool) {
	return f.project, f.found
}

func TestDetector_WithInspector(t *testing.T) {
	tests := []struct {
		name       string
		inspector  fakeInspector
		wantStatus platform.Status
		want       string
	}{
		{name: "no project", inspector: fakeInspector{}, wantStatus: platform.StatusNoMatch},
		{
			name:       "runtime hint",
			inspector:  fakeInspector{project: Project{File: "web.csproj", RuntimeVersion: "3.1"}, found: true},
			wantStatus: platform.StatusMatched,
			want:       "3.1.3",
		},
		{
			name:       "no hint uses default",
			inspector:  fakeInspector{project: Project{File: "web.csproj"}, found: true},
			wantStatus: platform.StatusMatched,
			want:       "3.1.2",
		},
		{
			name:       "unsupported runtime",
			inspector:  fakeInspector{project: Project{File: "web.csproj", RuntimeVersion: "6.0"}, found: true},
			wantStatus: platform.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(testVersions(), logging.ForTest(t), WithInspector(tt.inspector))
			res := d.Detect(context.Background(), &platform.DetectionContext{Repo: repo.New(fstest.MapFS{})})

			if res.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v (err %v)", res.Status, tt.wantStatus, res.Err)
			}
			if tt.wantStatus == platform.StatusFailed && !errors.Is(res.Err, errors.ErrUnsupportedVersion) {
				t.Errorf("Err = %v, want ErrUnsupportedVersion", res.Err)
			}
			if res.Version != tt.want {
				t.Errorf("Version = %q, want %q", res.Version, tt.want)
			}
		})
	}
}

func TestDetector_DefaultInspector(t *testing.T) {
	fsys := fstest.MapFS{
		"web.csproj": {Data: []byte(webProject)},
		"Program.cs": {Data: []byte("class Program {}")},
	}

	res := New(testVersions(), logging.ForTest(t)).Detect(context.Background(),
		&platform.DetectionContext{Repo: repo.New(fsys)})
	if res.Status != platform.StatusMatched {
		t.Fatalf("Status = %v, want matched (err %v)", res.Status, res.Err)
	}
	if res.Platform != "dotnet" || res.Version != "3.1.3" {
		t.Errorf("Detect() = %s %s, want dotnet 3.1.3", res.Platform, res.Version)
	}
}
