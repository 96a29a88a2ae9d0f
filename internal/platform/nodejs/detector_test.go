package nodejs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/thoreinstein/platdetect/internal/catalog"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/repo"
)

func testVersions() *catalog.Versions {
	return catalog.NewVersions("nodejs", &catalog.StaticProvider{
		Platform:       "nodejs",
		Versions:       []string{"12.2.0", "14.1.0", "14.3.0", "16.0.0"},
		DefaultVersion: "12.2.0",
	})
}

func file(text string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(text)}
}

func detect(t *testing.T, fsys fstest.MapFS, dctx *platform.DetectionContext) platform.Result {
	t.Helper()
	if dctx == nil {
		dctx = &platform.DetectionContext{}
	}
	dctx.Repo = repo.New(fsys)
	return New(testVersions(), logging.ForTest(t)).Detect(context.Background(), dctx)
}

func TestDetector_Structure(t *testing.T) {
	tests := []struct {
		name  string
		fsys  fstest.MapFS
		match bool
	}{
		{name: "package.json", fsys: fstest.MapFS{"package.json": file(`{}`)}, match: true},
		{name: "package-lock.json", fsys: fstest.MapFS{"package-lock.json": file(`{}`)}, match: true},
		{name: "yarn.lock", fsys: fstest.MapFS{"yarn.lock": file("")}, match: true},
		{name: "app.js only", fsys: fstest.MapFS{"app.js": file("")}, match: true},
		{name: "server.js only", fsys: fstest.MapFS{"server.js": file("")}, match: true},
		{name: "index.php only", fsys: fstest.MapFS{"index.php": file("<?php")}, match: false},
		{name: "app.js with iisstart.htm", fsys: fstest.MapFS{"app.js": file(""), "iisstart.htm": file("")}, match: false},
		{name: "server.js with default.aspx", fsys: fstest.MapFS{"server.js": file(""), "default.aspx": file("")}, match: false},
		{
			name:  "manifest beats startup page",
			fsys:  fstest.MapFS{"package.json": file(`{}`), "index.html": file("")},
			match: true,
		},
		{name: "nested manifest ignored", fsys: fstest.MapFS{"web/package.json": file(`{}`)}, match: false},
		{name: "empty", fsys: fstest.MapFS{}, match: false},
		{name: "hugo config.toml", fsys: fstest.MapFS{"config.toml": file(`baseURL = "https://example.org/"`)}, match: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detect(t, tt.fsys, nil)
			if res.Err != nil {
				t.Fatalf("Detect() error = %v", res.Err)
			}
			if got := res.Status == platform.StatusMatched; got != tt.match {
				t.Errorf("matched = %v, want %v", got, tt.match)
			}
		})
	}
}

func TestDetector_Version(t *testing.T) {
	tests := []struct {
		name   string
		fsys   fstest.MapFS
		preset map[string]string
		want   string
	}{
		{
			name: "engines.node caret",
			fsys: fstest.MapFS{"package.json": file(`{"engines": {"node": "^14.0.0"}}`)},
			want: "14.3.0",
		},
		{
			name: "byte order mark before package.json",
			fsys: fstest.MapFS{"package.json": file("\ufeff{\"engines\":{\"node\":\"^14.0.0\"}}")},
			want: "14.3.0",
		},
		{
			name: "byte order mark before nvmrc",
			fsys: fstest.MapFS{"package.json": file(`{}`), ".nvmrc": file("\ufeffv14.1.0\n")},
			want: "14.1.0",
		},
		{
			name: "no engines uses default",
			fsys: fstest.MapFS{"package.json": file(`{"name": "web"}`)},
			want: "12.2.0",
		},
		{
			name: "malformed package.json uses default",
			fsys: fstest.MapFS{"package.json": file(`{"engines": {"node": "14"`)},
			want: "12.2.0",
		},
		{
			name: "non-string engines.node uses default",
			fsys: fstest.MapFS{"package.json": file(`{"engines": {"node": 14}}`)},
			want: "12.2.0",
		},
		{
			name: "nvmrc with v prefix",
			fsys: fstest.MapFS{"package.json": file(`{}`), ".nvmrc": file("v14.1.0\n")},
			want: "14.1.0",
		},
		{
			name: "nvmrc alias ignored",
			fsys: fstest.MapFS{"app.js": file(""), ".nvmrc": file("lts/*\n"), ".node-version": file("16")},
			want: "16.0.0",
		},
		{
			name: "engines beats nvmrc",
			fsys: fstest.MapFS{"package.json": file(`{"engines":{"node":"14.1"}}`), ".nvmrc": file("16")},
			want: "14.1.0",
		},
		{
			name:   "preset beats engines",
			fsys:   fstest.MapFS{"package.json": file(`{"engines":{"node":"16"}}`)},
			preset: map[string]string{"nodejs": "14"},
			want:   "14.3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detect(t, tt.fsys, &platform.DetectionContext{ResolvedVersions: tt.preset})
			if res.Status != platform.StatusMatched {
				t.Fatalf("Status = %v, want matched (err %v)", res.Status, res.Err)
			}
			if res.Version != tt.want {
				t.Errorf("Version = %q, want %q", res.Version, tt.want)
			}
			if res.Platform != "nodejs" {
				t.Errorf("Platform = %q, want nodejs", res.Platform)
			}
		})
	}
}

func TestDetector_UnsupportedVersion(t *testing.T) {
	res := detect(t, fstest.MapFS{"package.json": file(`{"engines":{"node":">=18"}}`)}, nil)
	if res.Status != platform.StatusFailed {
		t.Fatalf("Status = %v, want failed", res.Status)
	}
	if !errors.Is(res.Err, errors.ErrUnsupportedVersion) {
		t.Errorf("Err = %v, want ErrUnsupportedVersion", res.Err)
	}
}

func TestDetector_CatalogFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	versions := catalog.NewVersions("nodejs", &catalog.RemoteProvider{
		Platform: "nodejs",
		BaseURL:  srv.URL,
		Client:   srv.Client(),
	})
	d := New(versions, logging.ForTest(t))

	res := d.Detect(context.Background(), &platform.DetectionContext{
		Repo: repo.New(fstest.MapFS{"package.json": file(`{}`)}),
	})
	if res.Status != platform.StatusFailed {
		t.Fatalf("Status = %v, want failed", res.Status)
	}
	if !errors.Is(res.Err, errors.ErrCatalogLoad) {
		t.Errorf("Err = %v, want ErrCatalogLoad", res.Err)
	}
}

func TestDetector_Name(t *testing.T) {
	if got := New(testVersions(), nil).Name(); got != "nodejs" {
		t.Errorf("Name() = %q, want nodejs", got)
	}
}
